package mines

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

// PlaceMines places the board's mines anywhere on the grid. Nothing is
// held back for the first click.
func (b *Board) PlaceMines(r *rand.Rand) error {
	return b.PlaceMinesExcluding(b.mineTotal, nil, r)
}

// PlaceMinesExcluding marks count distinct cells as mines, chosen uniformly
// from the cells not listed in excluded, and fills in the neighbour counts.
// Excluded points outside the grid are ignored.
func (b *Board) PlaceMinesExcluding(count int, excluded []Point, r *rand.Rand) error {
	if b.placed {
		return fmt.Errorf("%w: mines already placed on %s", ErrInvalidConfig, b)
	}
	if count != b.mineTotal {
		return fmt.Errorf("%w: board expects %d mines, asked to place %d",
			ErrInvalidConfig, b.mineTotal, count)
	}

	skip := make(map[Point]struct{}, len(excluded))
	for _, p := range excluded {
		skip[p] = struct{}{}
	}

	/*
	 * Write down the list of possible mine locations.
	 */
	candidates := make([]int, 0, len(b.cells))
	for y := range b.height {
		for x := range b.width {
			if _, ok := skip[Point{x, y}]; !ok {
				candidates = append(candidates, y*b.width+x)
			}
		}
	}
	if len(candidates) < count {
		return fmt.Errorf("%w: %d mines do not fit in %d free cells",
			ErrInvalidConfig, count, len(candidates))
	}

	/*
	 * Now pick count off the list at random.
	 */
	k := len(candidates)
	for range count {
		i := r.IntN(k)
		b.cells[candidates[i]].Mine = true
		k--
		candidates[i] = candidates[k]
	}

	b.finishPlacement()

	Log.WithFields(logrus.Fields{
		"board": b.String(), "excluded": len(skip),
	}).Debug("mines placed")
	return nil
}

// PlaceMinesAt places mines exactly at points, which must be distinct,
// in bounds and as many as the board expects.
func (b *Board) PlaceMinesAt(points []Point) error {
	if b.placed {
		return fmt.Errorf("%w: mines already placed on %s", ErrInvalidConfig, b)
	}
	if len(points) != b.mineTotal {
		return fmt.Errorf("%w: board expects %d mines, got %d positions",
			ErrInvalidConfig, b.mineTotal, len(points))
	}
	seen := make(map[Point]struct{}, len(points))
	for _, p := range points {
		if err := b.checkBounds(p.X, p.Y); err != nil {
			return err
		}
		if _, ok := seen[p]; ok {
			return fmt.Errorf("%w: duplicate mine at (%d, %d)",
				ErrInvalidConfig, p.X, p.Y)
		}
		seen[p] = struct{}{}
	}
	for _, p := range points {
		b.cells[p.Y*b.width+p.X].Mine = true
	}
	b.finishPlacement()
	return nil
}

func (b *Board) finishPlacement() {
	for i := range b.cells {
		x, y := i%b.width, i/b.width
		b.cells[i].Around = int8(b.CountNeighbors(x, y, IsMine))
	}
	b.placed = true
}

func (b *Board) MinesPlaced() bool {
	return b.placed
}

// Layout renders the real mine positions, for debugging.
func (b *Board) Layout() string {
	grid := make(Grid, len(b.cells))
	for i, c := range b.cells {
		if c.Mine {
			grid[i] = OpenedMine
		} else {
			grid[i] = CellState(c.Around)
		}
	}
	return grid.ToString(b.width)
}
