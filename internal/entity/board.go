package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	BoardSize = 3
	CellCount = BoardSize * BoardSize
)

// WinCombos lists the 8 winning lines as row-major indexes: 3 rows, 3 columns, 2 diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Move identifies a cell by row and column, both in [0, BoardSize).
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// MoveFromIndex converts a row-major index into a Move.
func MoveFromIndex(index int) Move {
	return Move{Row: index / BoardSize, Col: index % BoardSize}
}

func (that Move) IsValid() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

// Index returns the row-major index of the move.
func (that Move) Index() int {
	return that.Row*BoardSize + that.Col
}

func (that Move) String() string {
	return fmt.Sprintf("(%d, %d)", that.Row, that.Col)
}

// Board is a passive 3x3 position stored row-major. It is a value type: copies are independent.
type Board [CellCount]Cell

// ParseBoard reads a board from its textual form. X and O are marks, '.', '_' and '-' are empty
// cells; '/', '|', ',' and whitespace are ignored so "XO./.X./..O" and "XO..X...O" are equal.
func ParseBoard(s string) (Board, error) {
	var board Board

	n := 0
	for _, r := range s {
		var cell Cell

		switch r {
		case 'X', 'x':
			cell = CellX
		case 'O', 'o':
			cell = CellO
		case '.', '_', '-':
			cell = EmptyCell
		case '/', '|', ',', ' ', '\t', '\n', '\r':
			continue
		default:
			return Board{}, fmt.Errorf("%w: unexpected character %q", apperror.ErrInvalidBoard, r)
		}

		if n >= CellCount {
			return Board{}, fmt.Errorf("%w: more than %d cells", apperror.ErrInvalidBoard, CellCount)
		}

		board[n] = cell
		n++
	}

	if n != CellCount {
		return Board{}, fmt.Errorf("%w: got %d cells, want %d", apperror.ErrInvalidBoard, n, CellCount)
	}

	return board, nil
}

// At returns the content of the cell addressed by move. The move must be valid.
func (that Board) At(move Move) Cell {
	return that[move.Index()]
}

// LegalMoves returns every empty cell in row-major order.
func (that Board) LegalMoves() []Move {
	moves := make([]Move, 0, CellCount)
	for i, cell := range that {
		if cell == EmptyCell {
			moves = append(moves, MoveFromIndex(i))
		}
	}

	return moves
}

// Apply returns a copy of the board with move's cell set to mark. The receiver is never modified.
func (that Board) Apply(move Move, mark Mark) (Board, error) {
	if !move.IsValid() {
		return that, fmt.Errorf("%w: %s", apperror.ErrInvalidCell, move)
	}

	if !mark.IsValid() {
		return that, fmt.Errorf("%w: %d", apperror.ErrInvalidMark, mark)
	}

	if that.At(move) != EmptyCell {
		return that, fmt.Errorf("%w: %s", apperror.ErrCellOccupied, move)
	}

	return that.Place(move, mark), nil
}

// Place is Apply without validation. Callers must pass a legal move and a valid mark.
func (that Board) Place(move Move, mark Mark) Board {
	that[move.Index()] = mark.Cell()
	return that
}

// Verdict scans the winning lines, then checks for empty cells.
//
// Under the alternation invariant both marks can never hold a winning line at the same time,
// so the first winning line found decides the winner.
func (that Board) Verdict() Verdict {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return Verdict{Outcome: Won, Winner: a.Mark()}
		}
	}

	// the game continues until all the squares are full
	for _, cell := range that {
		if cell == EmptyCell {
			return Verdict{Outcome: InProgress}
		}
	}

	return Verdict{Outcome: Tie}
}

// Count returns the number of cells holding the given value.
func (that Board) Count(cell Cell) int {
	n := 0
	for _, c := range that {
		if c == cell {
			n++
		}
	}

	return n
}

// Key is the compact 9-character form of the board, used as a cache key.
func (that Board) Key() string {
	var sb strings.Builder
	sb.Grow(CellCount)

	for _, cell := range that {
		sb.WriteString(cell.String())
	}

	return sb.String()
}

// String renders the board as three rows separated by '/'.
func (that Board) String() string {
	var sb strings.Builder

	for i, cell := range that {
		if i > 0 && i%BoardSize == 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(cell.String())
	}

	return sb.String()
}
