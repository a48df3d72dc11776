package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cEvolve05/minesweeper/internal/config"
	"github.com/cEvolve05/minesweeper/internal/game"
)

var (
	errUnknownCommand = errors.New("unknown command")
	errArgs           = errors.New("invalid number of arguments")
)

// command is one line sent by the renderer:
//
//	o x y     open (chords an opened cell)
//	c x y     chord
//	f x y     toggle flag
//	n [query] restart, optionally with a new game config
//	g         send the full view
type command struct {
	name  string
	x, y  int
	query string
}

var commandNargs = map[string][2]int{
	"o": {2, 2},
	"c": {2, 2},
	"f": {2, 2},
	"n": {0, 1},
	"g": {0, 0},
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = fmt.Errorf("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = fmt.Errorf("second argument must be an int")
		return
	}
	return
}

func parseCommand(line string) (command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return command{}, errUnknownCommand
	}

	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return command{}, fmt.Errorf("%w: %q", errUnknownCommand, parts[0])
	}
	if n := len(parts) - 1; n < nargs[0] || n > nargs[1] {
		return command{}, fmt.Errorf("%w for %q: %d", errArgs, parts[0], n)
	}

	cmd := command{name: parts[0]}
	switch cmd.name {
	case "o", "c", "f":
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return command{}, err
		}
		cmd.x, cmd.y = x, y
	case "n":
		if len(parts) == 2 {
			cmd.query = parts[1]
		}
	}
	return cmd, nil
}

// apply runs cmd against s. full is set when the renderer should be sent
// the whole view rather than the incremental updates. A bare restart of a
// session that never started uses fallback.
func (cmd command) apply(
	s *game.Session, log logrus.FieldLogger, fallback config.Game,
) (full bool, err error) {
	switch cmd.name {
	case "o":
		return false, s.Open(cmd.x, cmd.y)
	case "c":
		return false, s.Chord(cmd.x, cmd.y)
	case "f":
		return false, s.ToggleFlag(cmd.x, cmd.y)
	case "n":
		cfg := s.Config()
		if cfg == (config.Game{}) {
			cfg = fallback
		}
		if cmd.query != "" {
			values, err := url.ParseQuery(cmd.query)
			if err != nil {
				return false, fmt.Errorf("invalid restart query: %w", err)
			}
			if cfg, err = config.ParseGame(log, values); err != nil {
				return false, err
			}
		}
		if err := s.Restart(cfg); err != nil {
			return false, err
		}
		return true, nil
	case "g":
		return true, nil
	}
	return false, errUnknownCommand
}
