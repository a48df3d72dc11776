package mines

import "github.com/sirupsen/logrus"

type Outcome int8

const (
	Absorbed      Outcome = iota // nothing changed
	Revealed                     // one or more safe cells opened
	MineTriggered                // a mine was opened
)

// Outcome implements [fmt.Stringer]
func (o Outcome) String() string {
	switch o {
	case Absorbed:
		return "absorbed"
	case Revealed:
		return "revealed"
	case MineTriggered:
		return "mine triggered"
	default:
		return "unknown"
	}
}

// Reveal performs player moves on a board owned by the caller. It does not
// know whether the game is still running; callers gate on that.
type Reveal struct {
	board     *Board
	triggered bool
}

func NewReveal(b *Board) *Reveal {
	return &Reveal{board: b}
}

// Open opens the cell at (x, y). Flagged cells are left alone, an already
// opened cell is treated as a chord request.
func (r *Reveal) Open(x, y int) (Outcome, error) {
	c, err := r.board.Get(x, y)
	if err != nil {
		return Absorbed, err
	}
	switch {
	case c.Flagged:
		return Absorbed, nil
	case c.Opened:
		return r.OpenAround(x, y)
	}
	return r.open(x, y, true), nil
}

func (r *Reveal) open(x, y int, flood bool) Outcome {
	c := r.board.cells[y*r.board.width+x]
	if c.Opened || c.Flagged {
		return Absorbed
	}
	// only the first mine opened is the one that ended the game
	trigger := c.Mine && !r.triggered
	r.mustSet(x, y, func(c *Cell) {
		c.Opened = true
		c.Triggered = trigger
	})
	if c.Mine {
		r.triggered = true
		Log.WithFields(logrus.Fields{"x": x, "y": y}).Debug("mine triggered")
		return MineTriggered
	}
	if flood && c.Around == 0 {
		r.openConnectedBlank(x, y)
	}
	return Revealed
}

// openConnectedBlank opens the region of blank cells connected to (x, y)
// together with its numbered border. The visited list only grows and
// doubles as the expansion queue, so each cell is examined once.
func (r *Reveal) openConnectedBlank(x, y int) {
	b := r.board
	seen := make([]bool, len(b.cells))
	seen[y*b.width+x] = true

	visited := []Point{{x, y}}
	queue := []Point{{x, y}}
	for head := 0; head < len(queue); head++ {
		p := queue[head]
		for _, n := range b.Neighbors(p.X, p.Y) {
			i := n.Y*b.width + n.X
			if seen[i] {
				continue
			}
			seen[i] = true
			visited = append(visited, n)
			if c := b.cells[i]; !c.Mine && c.Around == 0 {
				queue = append(queue, n)
			}
		}
	}

	for _, p := range visited {
		r.open(p.X, p.Y, false)
	}

	Log.WithFields(logrus.Fields{
		"x": x, "y": y, "visited": len(visited), "expanded": len(queue),
	}).Debug("flood open")
}

// OpenAround is the chord move: when the flags around an opened cell
// match its mine count, every closed neighbour is opened. All of them are
// opened even if one turns out to be a mine.
func (r *Reveal) OpenAround(x, y int) (Outcome, error) {
	b := r.board
	c, err := b.Get(x, y)
	if err != nil {
		return Absorbed, err
	}
	if !c.Opened || c.Mine {
		return Absorbed, nil
	}

	mineCount := b.CountNeighbors(x, y, IsMine)
	flagCount := b.CountNeighbors(x, y, IsFlagged)
	if mineCount == 0 || flagCount != mineCount {
		return Absorbed, nil
	}

	outcome := Absorbed
	for _, p := range b.Neighbors(x, y) {
		if !IsClosed(b.cells[p.Y*b.width+p.X]) {
			continue
		}
		switch r.open(p.X, p.Y, true) {
		case MineTriggered:
			outcome = MineTriggered
		case Revealed:
			if outcome != MineTriggered {
				outcome = Revealed
			}
		}
	}
	return outcome, nil
}

// ToggleFlag flips the flag on a closed cell. It returns the change to
// apply to the flags-remaining counter: -1 for a new flag, +1 for a removed
// one, 0 when the cell is already open.
func (r *Reveal) ToggleFlag(x, y int) (int, error) {
	c, err := r.board.Get(x, y)
	if err != nil {
		return 0, err
	}
	if c.Opened {
		return 0, nil
	}
	r.mustSet(x, y, func(c *Cell) {
		c.Flagged = !c.Flagged
	})
	if c.Flagged {
		return +1, nil
	}
	return -1, nil
}

// RevealMines opens every mine after a loss. Flags on mines are cleared so
// the whole layout shows; the triggering mine keeps its own state.
func (r *Reveal) RevealMines() {
	b := r.board
	for i, c := range b.cells {
		if c.Mine && !c.Opened {
			r.mustSet(i%b.width, i/b.width, func(c *Cell) {
				c.Flagged = false
				c.Opened = true
			})
		}
	}
}

// Cleared reports whether every safe cell is open.
func (r *Reveal) Cleared() bool {
	return r.board.SafeRemaining() == 0
}

// panics [AssertionError]
func (r *Reveal) mustSet(x, y int, mutate func(*Cell)) {
	if err := r.board.Set(x, y, mutate); err != nil {
		panic(AssertionError{err.Error()})
	}
}
