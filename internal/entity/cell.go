package entity

// Cell is the content of one board square.
type Cell uint8

const (
	EmptyCell Cell = iota
	CellX
	CellO
)

// Mark returns the side occupying the cell, or NoMark for an empty cell.
func (that Cell) Mark() Mark {
	switch that {
	case CellX:
		return PlayerX
	case CellO:
		return PlayerO
	default:
		return NoMark
	}
}

func (that Cell) String() string {
	switch that {
	case CellX:
		return "X"
	case CellO:
		return "O"
	default:
		return "."
	}
}
