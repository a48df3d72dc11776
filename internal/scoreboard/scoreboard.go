package scoreboard

import (
	"slices"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/cEvolve05/minesweeper/internal/config"
	"github.com/cEvolve05/minesweeper/internal/game"
)

type Stats struct {
	Played int `json:"played"`
	Won    int `json:"won"`
	Lost   int `json:"lost"`
}

// Board keeps the best winning times per preset difficulty. Custom games
// are counted in the stats but never ranked, since their boards are not
// comparable. Safe for concurrent use.
type Board struct {
	log   logrus.FieldLogger
	limit int

	mu     sync.Mutex
	ranked map[config.Difficulty][]game.Result
	stats  map[config.Difficulty]Stats
}

func New(log logrus.FieldLogger, limit int) *Board {
	return &Board{
		log:    log,
		limit:  limit,
		ranked: make(map[config.Difficulty][]game.Result),
		stats:  make(map[config.Difficulty]Stats),
	}
}

func better(a, b game.Result) bool {
	if a.ElapsedSeconds != b.ElapsedSeconds {
		return a.ElapsedSeconds < b.ElapsedSeconds
	}
	return a.FinishedAt.Before(b.FinishedAt)
}

// Report implements [game.Reporter]
func (b *Board) Report(r game.Result) {
	d := r.Game.Difficulty

	b.mu.Lock()
	defer b.mu.Unlock()

	st := b.stats[d]
	st.Played++
	if !r.Won() {
		st.Lost++
		b.stats[d] = st
		return
	}
	st.Won++
	b.stats[d] = st

	if d == config.Custom {
		return
	}

	list := b.ranked[d]
	i, _ := slices.BinarySearchFunc(list, r, func(e, target game.Result) int {
		if better(e, target) || !better(target, e) {
			return -1
		}
		return 1
	})
	if i >= b.limit {
		return
	}
	list = slices.Insert(list, i, r)
	if len(list) > b.limit {
		list = list[:b.limit]
	}
	b.ranked[d] = list

	b.log.WithFields(logrus.Fields{
		"difficulty": d.String(),
		"player":     r.Player,
		"elapsed":    r.ElapsedSeconds,
		"rank":       i + 1,
	}).Info("new high score")
}

// Top returns up to n of the best results for d, best first. n <= 0 means
// all of them.
func (b *Board) Top(d config.Difficulty, n int) []game.Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.ranked[d]
	if n <= 0 || n > len(list) {
		n = len(list)
	}
	return slices.Clone(list[:n])
}

func (b *Board) Stats(d config.Difficulty) Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats[d]
}
