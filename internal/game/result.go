package game

import (
	"time"

	"github.com/cEvolve05/minesweeper/internal/config"
)

// Result describes a finished game.
type Result struct {
	Player         string      `json:"player,omitempty"`
	Status         Status      `json:"status"`
	Game           config.Game `json:"game"`
	ElapsedSeconds int         `json:"elapsed_seconds"`
	FinishedAt     time.Time   `json:"finished_at"`
}

func (r Result) Won() bool {
	return r.Status == Won
}

// Reporter receives the result of every finished game, once.
type Reporter interface {
	Report(Result)
}

type ReporterFunc func(Result)

// ReporterFunc implements [Reporter]
func (f ReporterFunc) Report(r Result) {
	f(r)
}

type nopReporter struct{}

func (nopReporter) Report(Result) {}
