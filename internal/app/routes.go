package app

import (
	"github.com/cEvolve05/minesweeper/internal/handlers"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(a.log, a.config, a.ws, a.scoreboard)
	scores := handlers.NewScoreboardHandler(a.log, a.scoreboard)

	a.router.HandleFunc("GET /status", handlers.Status)
	a.router.HandleFunc("GET /scoreboard", scores.Fetch)
	a.router.HandleFunc("GET /game/connect", game.ConnectWS)
}
