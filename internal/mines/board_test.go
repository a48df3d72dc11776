package mines

import (
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	Log.SetOutput(io.Discard)
	m.Run()
}

func newTestBoard(t *testing.T, width, height int, mines ...Point) *Board {
	t.Helper()
	b, err := NewBoard(width, height, len(mines))
	require.NoError(t, err)
	require.NoError(t, b.PlaceMinesAt(mines))
	return b
}

func TestNewBoardValidation(t *testing.T) {
	tests := []struct {
		name                     string
		width, height, mineCount int
		ok                       bool
	}{
		{"easy", 9, 9, 10, true},
		{"no mines", 3, 3, 0, true},
		{"one safe cell", 3, 3, 8, true},
		{"zero width", 0, 9, 1, false},
		{"negative height", 9, -1, 1, false},
		{"negative mines", 9, 9, -1, false},
		{"all mines", 3, 3, 9, false},
		{"too many mines", 3, 3, 10, false},
		{"largest board", 1024, 1024, 1, true},
		{"too wide", MaxCells + 1, 1, 1, false},
		{"too large", 100000, 100000, 1, false},
		{"overflowing size", math.MaxInt, 2, 1, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b, err := NewBoard(test.width, test.height, test.mineCount)
			if !test.ok {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				assert.Nil(t, b)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.width, b.Width())
			assert.Equal(t, test.height, b.Height())
			assert.Equal(t, test.mineCount, b.MineTotal())
			closed := 0
			for _, s := range b.States() {
				if s == Closed {
					closed++
				}
			}
			assert.Equal(t, test.width*test.height, closed)
		})
	}
}

func TestNeighbors(t *testing.T) {
	b, err := NewBoard(4, 3, 0)
	require.NoError(t, err)

	tests := []struct {
		name string
		x, y int
		want []Point
	}{
		{"corner", 0, 0, []Point{{1, 0}, {0, 1}, {1, 1}}},
		{"edge", 1, 0, []Point{{0, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}}},
		{"inner", 1, 1, []Point{
			{0, 0}, {1, 0}, {2, 0}, {0, 1}, {2, 1}, {0, 2}, {1, 2}, {2, 2},
		}},
		{"far corner", 3, 2, []Point{{2, 1}, {3, 1}, {2, 2}}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.ElementsMatch(t, test.want, b.Neighbors(test.x, test.y))
		})
	}
}

func TestCountNeighbors(t *testing.T) {
	b := newTestBoard(t, 3, 3, Point{0, 0}, Point{2, 0}, Point{1, 2})

	assert.Equal(t, 3, b.CountNeighbors(1, 1, IsMine))
	assert.Equal(t, 2, b.CountNeighbors(0, 1, IsMine))
	assert.Equal(t, 0, b.CountNeighbors(1, 1, IsFlagged))

	require.NoError(t, b.Set(0, 0, func(c *Cell) { c.Flagged = true }))
	require.NoError(t, b.Set(2, 1, func(c *Cell) { c.Opened = true }))
	assert.Equal(t, 1, b.CountNeighbors(1, 1, IsFlagged))
	assert.Equal(t, 1, b.CountNeighbors(1, 1, IsOpened))
	assert.Equal(t, 6, b.CountNeighbors(1, 1, IsClosed))
}

func TestGetSetOutOfBounds(t *testing.T) {
	b := newTestBoard(t, 2, 2)

	for _, p := range []Point{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		_, err := b.Get(p.X, p.Y)
		assert.ErrorIs(t, err, ErrOutOfBounds)
		assert.ErrorIs(t, b.Set(p.X, p.Y, func(*Cell) {}), ErrOutOfBounds)
	}
}

func TestSetRecordsStateChanges(t *testing.T) {
	b := newTestBoard(t, 2, 2, Point{1, 1})

	require.NoError(t, b.Set(0, 0, func(c *Cell) { c.Flagged = true }))
	require.NoError(t, b.Set(0, 0, func(c *Cell) {}))
	require.NoError(t, b.Set(0, 0, func(c *Cell) { c.Flagged = false }))
	require.NoError(t, b.Set(0, 0, func(c *Cell) { c.Opened = true }))

	assert.Equal(t, []CellUpdate{
		{0, 0, Flagged},
		{0, 0, Closed},
		{0, 0, CellState(1)},
	}, b.Updates())
	assert.Empty(t, b.Updates(), "updates are drained")
	assert.Equal(t, 1, b.OpenedCount())
	assert.Equal(t, 0, b.FlaggedCount())
	assert.Equal(t, 2, b.SafeRemaining())
}

func TestSetInvariants(t *testing.T) {
	b := newTestBoard(t, 2, 2, Point{1, 1})
	require.NoError(t, b.Set(0, 0, func(c *Cell) { c.Opened = true }))

	tests := []struct {
		name   string
		x, y   int
		mutate func(*Cell)
	}{
		{"close opened cell", 0, 0, func(c *Cell) { c.Opened = false }},
		{"flag opened cell", 0, 0, func(c *Cell) { c.Flagged = true }},
		{"move mine", 1, 0, func(c *Cell) { c.Mine = true }},
		{"rewrite count", 1, 0, func(c *Cell) { c.Around = 5 }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Panics(t, func() { _ = b.Set(test.x, test.y, test.mutate) })
		})
	}
}

func TestCellState(t *testing.T) {
	tests := []struct {
		cell Cell
		want CellState
	}{
		{Cell{}, Closed},
		{Cell{Mine: true}, Closed},
		{Cell{Flagged: true}, Flagged},
		{Cell{Flagged: true, Mine: true}, Flagged},
		{Cell{Opened: true}, Opened},
		{Cell{Opened: true, Around: 3}, CellState(3)},
		{Cell{Opened: true, Mine: true, Around: 2}, OpenedMine},
		{Cell{Opened: true, Mine: true, Triggered: true}, TriggeredMine},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, test.cell.State(), "%+v", test.cell)
	}
}

func TestGridToString(t *testing.T) {
	grid := Grid{Closed, Flagged, Opened, CellState(2), OpenedMine, TriggeredMine}
	assert.Equal(t, "- F . \n2 * X \n", grid.ToString(3))
}
