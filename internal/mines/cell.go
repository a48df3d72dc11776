package mines

// Cell holds everything the engine knows about one grid position.
type Cell struct {
	Mine      bool
	Opened    bool
	Flagged   bool
	Triggered bool // the mine that ended the game
	Around    int8 // mines among the neighbours, set when mines are placed
}

// State derives the player-visible state from the cell's fields.
func (c Cell) State() CellState {
	switch {
	case c.Opened && c.Mine && c.Triggered:
		return TriggeredMine
	case c.Opened && c.Mine:
		return OpenedMine
	case c.Opened:
		return CellState(c.Around)
	case c.Flagged:
		return Flagged
	default:
		return Closed
	}
}

type CellPredicate func(Cell) bool

func IsMine(c Cell) bool    { return c.Mine }
func IsFlagged(c Cell) bool { return c.Flagged }
func IsOpened(c Cell) bool  { return c.Opened }
func IsClosed(c Cell) bool  { return !c.Opened && !c.Flagged }

type Point struct {
	X, Y int
}
