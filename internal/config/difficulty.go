package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/schema"
	"github.com/sirupsen/logrus"
)

type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	Custom
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

var difficultyNames = map[Difficulty]string{
	Easy:   "easy",
	Medium: "medium",
	Hard:   "hard",
	Custom: "custom",
}

// Difficulty implements [fmt.Stringer]
func (d Difficulty) String() string {
	if name, ok := difficultyNames[d]; ok {
		return name
	}
	return fmt.Sprintf("difficulty(%d)", int(d))
}

func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, name := range difficultyNames {
		if s == name {
			return d, nil
		}
	}
	return Easy, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// Game is the board configuration a session is started with.
type Game struct {
	Difficulty Difficulty `json:"difficulty"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	MineCount  int        `json:"mine_count"`
}

var presets = map[Difficulty]Game{
	Easy:   {Difficulty: Easy, Width: 9, Height: 9, MineCount: 10},
	Medium: {Difficulty: Medium, Width: 16, Height: 16, MineCount: 40},
	Hard:   {Difficulty: Hard, Width: 30, Height: 16, MineCount: 99},
}

func Preset(d Difficulty) (Game, bool) {
	g, ok := presets[d]
	return g, ok
}

// GameFor maps a difficulty to its board. Custom takes the given
// dimensions as they are; validating them is up to the session. Any other
// value falls back to Easy with a warning.
func GameFor(log logrus.FieldLogger, d Difficulty, width, height, mineCount int) Game {
	if d == Custom {
		return Game{Difficulty: Custom, Width: width, Height: height, MineCount: mineCount}
	}
	if g, ok := presets[d]; ok {
		return g
	}
	log.WithField("difficulty", d).Warn("unknown difficulty, using easy as default")
	return presets[Easy]
}

// Game implements [fmt.Stringer]
func (g Game) String() string {
	return fmt.Sprintf("%s %dx%d(%d)", g.Difficulty, g.Width, g.Height, g.MineCount)
}

type GameDTO struct {
	Difficulty string `schema:"difficulty"`
	Width      int    `schema:"width"`
	Height     int    `schema:"height"`
	MineCount  int    `schema:"mine_count"`
}

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

// ParseGame reads a game configuration from query values such as
// "difficulty=custom&width=20&height=10&mine_count=30". A missing
// difficulty means Easy; an unrecognised one is logged and also means Easy.
func ParseGame(log logrus.FieldLogger, src url.Values) (Game, error) {
	var dto GameDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return Game{}, fmt.Errorf("unable to decode game config: %w", err)
	}
	d := Easy
	if dto.Difficulty != "" {
		var err error
		if d, err = ParseDifficulty(dto.Difficulty); err != nil {
			log.WithError(err).Warn("unknown difficulty, using easy as default")
			return presets[Easy], nil
		}
	}
	return GameFor(log, d, dto.Width, dto.Height, dto.MineCount), nil
}
