package mines

import (
	"fmt"
)

// Board is the mine field of one game. It owns its cells; Get hands out
// copies and every mutation goes through Set.
type Board struct {
	width, height int
	mineTotal     int
	cells         []Cell
	placed        bool

	opened     int
	openedSafe int
	flagged    int

	updates []CellUpdate
}

// MaxCells bounds the board size a caller may ask for.
const MaxCells = 1 << 20

func ValidateParams(width, height, mineCount int) error {
	switch {
	case width <= 0 || height <= 0:
		return fmt.Errorf("%w: dimensions must be positive, got %dx%d",
			ErrInvalidConfig, width, height)
	case width > MaxCells/height:
		return fmt.Errorf("%w: %dx%d exceeds %d cells",
			ErrInvalidConfig, width, height, MaxCells)
	case mineCount < 0:
		return fmt.Errorf("%w: negative mine count %d", ErrInvalidConfig, mineCount)
	case mineCount >= width*height:
		return fmt.Errorf("%w: %d mines leave no safe cell on a %dx%d board",
			ErrInvalidConfig, mineCount, width, height)
	}
	return nil
}

func NewBoard(width, height, mineCount int) (*Board, error) {
	if err := ValidateParams(width, height, mineCount); err != nil {
		return nil, err
	}
	b := &Board{
		width:     width,
		height:    height,
		mineTotal: mineCount,
		cells:     make([]Cell, width*height),
	}
	return b, nil
}

func (b *Board) Width() int     { return b.width }
func (b *Board) Height() int    { return b.height }
func (b *Board) MineTotal() int { return b.mineTotal }

func (b *Board) OpenedCount() int  { return b.opened }
func (b *Board) FlaggedCount() int { return b.flagged }

// SafeRemaining is the number of non-mine cells still to be opened.
func (b *Board) SafeRemaining() int {
	return b.width*b.height - b.mineTotal - b.openedSafe
}

func (b *Board) InBounds(x, y int) bool {
	return 0 <= x && x < b.width && 0 <= y && y < b.height
}

func (b *Board) checkBounds(x, y int) error {
	if !b.InBounds(x, y) {
		return fmt.Errorf("%w: (%d, %d) on a %dx%d board",
			ErrOutOfBounds, x, y, b.width, b.height)
	}
	return nil
}

func (b *Board) Get(x, y int) (Cell, error) {
	if err := b.checkBounds(x, y); err != nil {
		return Cell{}, err
	}
	return b.cells[y*b.width+x], nil
}

// Set applies mutate to the cell at (x, y), keeps the board counters in
// step and records a [CellUpdate] if the visible state changed.
//
// panics [AssertionError] if mutate breaks a cell invariant
func (b *Board) Set(x, y int, mutate func(*Cell)) error {
	if err := b.checkBounds(x, y); err != nil {
		return err
	}
	i := y*b.width + x
	before := b.cells[i]
	after := before
	mutate(&after)

	switch {
	case after.Mine != before.Mine || after.Around != before.Around:
		panic(AssertionError{"mine layout changed after placement"})
	case before.Opened && !after.Opened:
		panic(AssertionError{"opened cell closed again"})
	case after.Opened && after.Flagged:
		panic(AssertionError{"flag on an opened cell"})
	}

	b.cells[i] = after
	if !before.Opened && after.Opened {
		b.opened++
		if !after.Mine {
			b.openedSafe++
		}
	}
	if before.Flagged != after.Flagged {
		if after.Flagged {
			b.flagged++
		} else {
			b.flagged--
		}
	}
	if s := after.State(); s != before.State() {
		b.updates = append(b.updates, CellUpdate{X: x, Y: y, State: s})
	}
	return nil
}

// Neighbors returns the in-bounds cells at Chebyshev distance 1.
func (b *Board) Neighbors(x, y int) []Point {
	points := make([]Point, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if b.InBounds(x+dx, y+dy) {
				points = append(points, Point{x + dx, y + dy})
			}
		}
	}
	return points
}

func (b *Board) CountNeighbors(x, y int, pred CellPredicate) int {
	n := 0
	for _, p := range b.Neighbors(x, y) {
		if pred(b.cells[p.Y*b.width+p.X]) {
			n++
		}
	}
	return n
}

func (b *Board) States() Grid {
	grid := make(Grid, len(b.cells))
	for i, c := range b.cells {
		grid[i] = c.State()
	}
	return grid
}

// Updates drains the cell updates recorded since the previous call, in the
// order they happened.
func (b *Board) Updates() []CellUpdate {
	updates := b.updates
	b.updates = nil
	return updates
}

// Redraw queues an update for every cell, for renderers starting from
// scratch.
func (b *Board) Redraw() {
	for i, c := range b.cells {
		b.updates = append(b.updates, CellUpdate{
			X: i % b.width, Y: i / b.width, State: c.State(),
		})
	}
}

// Board implements [fmt.Stringer]
func (b *Board) String() string {
	return fmt.Sprintf("%dx%d(%d)", b.width, b.height, b.mineTotal)
}
