package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/cEvolve05/minesweeper/internal/config"
	"github.com/cEvolve05/minesweeper/internal/middleware"
	"github.com/cEvolve05/minesweeper/internal/scoreboard"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	log        logrus.FieldLogger
	config     *config.App
	router     *http.ServeMux
	ws         *config.WebSocket
	scoreboard *scoreboard.Board
}

func New(log logrus.FieldLogger, cfg *config.App) *App {
	a := &App{
		log:        log,
		config:     cfg,
		router:     http.NewServeMux(),
		ws:         config.NewWebSocket(cfg),
		scoreboard: scoreboard.New(log, cfg.ScoreboardLimit),
	}
	a.loadRoutes()
	return a
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Logging(a.log),
		middleware.Cors(a.config.Development, a.config.AllowedOrigins...),
	)
}

// Start serves on the configured address until ctx is done, then shuts
// the server down gracefully.
func (a *App) Start(ctx context.Context) error {
	l, err := net.Listen("tcp", a.config.Addr)
	if err != nil {
		return fmt.Errorf("unable to listen on %s: %w", a.config.Addr, err)
	}
	return a.Serve(ctx, l)
}

func (a *App) Serve(ctx context.Context, l net.Listener) error {
	server := &http.Server{
		Handler: a.Handler(),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.WithField("addr", l.Addr().String()).Info("server listening")
		err := server.Serve(l)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.log.Info("shutting down")
		return server.Shutdown(sctx)
	})
	return g.Wait()
}
