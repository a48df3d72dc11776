package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/cEvolve05/minesweeper/internal/config"
	"github.com/cEvolve05/minesweeper/internal/game"
	"github.com/cEvolve05/minesweeper/internal/mines"
)

type updateFrame struct {
	Updates        []mines.CellUpdate `json:"updates"`
	Status         game.Status        `json:"status"`
	FlagsRemaining int                `json:"flags_remaining"`
	ElapsedSeconds int                `json:"elapsed_seconds"`
}

type viewFrame struct {
	View game.View `json:"view"`
}

type errorFrame struct {
	Error string `json:"error"`
}

// GameHandler bridges a renderer connected over a websocket to a game
// session. Each connection owns exactly one session.
type GameHandler struct {
	log      logrus.FieldLogger
	app      *config.App
	ws       *config.WebSocket
	reporter game.Reporter
	interval time.Duration
	options  []game.Option
}

func NewGameHandler(
	log logrus.FieldLogger,
	app *config.App,
	ws *config.WebSocket,
	reporter game.Reporter,
) *GameHandler {
	return &GameHandler{
		log:      log,
		app:      app,
		ws:       ws,
		reporter: reporter,
		interval: time.Second,
	}
}

// WithTickInterval changes how often the game clock advances. Tests use it
// to run the clock faster than real time.
func (h *GameHandler) WithTickInterval(d time.Duration) *GameHandler {
	h.interval = d
	return h
}

// WithSessionOptions adds options applied to every session after the
// handler's own.
func (h *GameHandler) WithSessionOptions(opts ...game.Option) *GameHandler {
	h.options = append(h.options, opts...)
	return h
}

func (h *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	cfg := h.app.DefaultGame(h.log)
	if query.Has("difficulty") {
		var err error
		if cfg, err = config.ParseGame(h.log, query); err != nil {
			sendErrorOrLog(w, h.log, http.StatusBadRequest, err)
			return
		}
	}
	player := query.Get("name")

	conn, err := h.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		h.log.WithError(err).Error("unable to upgrade")
		return
	}
	defer conn.Close()

	log := h.log.WithFields(logrus.Fields{
		"remote": r.RemoteAddr,
		"player": player,
	})
	log.Info("renderer connected")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	messages := make(chan string)

	g.Go(func() error {
		defer close(messages)
		for {
			mt, message, err := conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) &&
					ctx.Err() == nil {
					log.WithError(err).Warn("abnormal ws break")
				}
				return nil
			}
			if mt != websocket.TextMessage {
				continue
			}
			select {
			case messages <- string(message):
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		// unblocks the reader once the control loop is done
		defer conn.Close()
		defer cancel()

		c := &connection{
			conn:     conn,
			log:      log,
			messages: messages,
			events:   make(chan func()),
			fallback: h.app.DefaultGame(log),
		}
		timer := game.NewTickerTimer(ctx, c.events, h.interval)
		defer timer.Stop()

		opts := []game.Option{
			game.WithLogger(log),
			game.WithTimer(timer),
			game.WithReporter(h.reporter),
			game.WithPlayer(player),
		}
		c.session = game.NewSession(append(opts, h.options...)...)
		return c.run(ctx, cfg)
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("renderer connection failed")
		return
	}
	log.Info("renderer disconnected")
}

// connection is the control loop of one renderer. Every session call
// happens on its goroutine.
type connection struct {
	conn     *websocket.Conn
	log      logrus.FieldLogger
	session  *game.Session
	messages <-chan string
	events   chan func()
	fallback config.Game
}

func (c *connection) run(ctx context.Context, cfg config.Game) error {
	if err := c.session.Configure(cfg); err != nil {
		c.log.WithError(err).WithField("game", cfg.String()).Warn("unable to start game")
		if err := c.sendError(err); err != nil {
			return err
		}
	} else if err := c.sendView(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case text, ok := <-c.messages:
			if !ok {
				return nil
			}
			if err := c.handle(text); err != nil {
				return err
			}

		case fire := <-c.events:
			before := c.session.Elapsed()
			fire()
			if c.session.Elapsed() == before {
				continue
			}
			if err := c.sendUpdates(); err != nil {
				return err
			}
		}
	}
}

func (c *connection) handle(text string) error {
	text = strings.TrimSpace(text)
	c.log.Debugf("\t> %s", text)

	full := false
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err == nil {
			var f bool
			f, err = cmd.apply(c.session, c.log, c.fallback)
			full = full || f
		}
		if err != nil {
			entry := c.log.WithError(err).WithField("command", line)
			if errors.Is(err, mines.ErrOutOfBounds) {
				entry.Error("move outside the board")
			} else {
				entry.Warn("unable to process command")
			}
			if err := c.sendError(err); err != nil {
				return err
			}
		}
	}

	if full {
		return c.sendView()
	}
	return c.sendUpdates()
}

func (c *connection) sendUpdates() error {
	updates := c.session.Updates()
	if updates == nil {
		updates = []mines.CellUpdate{}
	}
	return c.conn.WriteJSON(updateFrame{
		Updates:        updates,
		Status:         c.session.Status(),
		FlagsRemaining: c.session.FlagsRemaining(),
		ElapsedSeconds: c.session.Elapsed(),
	})
}

func (c *connection) sendView() error {
	// the view already contains whatever is queued
	c.session.Updates()
	return c.conn.WriteJSON(viewFrame{View: c.session.View()})
}

func (c *connection) sendError(err error) error {
	return c.conn.WriteJSON(errorFrame{Error: err.Error()})
}
