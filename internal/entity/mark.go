package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// Mark is the symbol a side places on the board. X always moves first.
type Mark uint8

const (
	NoMark Mark = iota
	PlayerX
	PlayerO
)

// ParseMark accepts "X" or "O" in any case.
func ParseMark(s string) (Mark, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "X":
		return PlayerX, nil
	case "O":
		return PlayerO, nil
	default:
		return NoMark, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, s)
	}
}

func (that Mark) IsValid() bool {
	return that == PlayerX || that == PlayerO
}

// Opponent returns the other side. NoMark has no opponent and maps to itself.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return NoMark
	}
}

// Cell returns the cell value this mark leaves on the board.
func (that Mark) Cell() Cell {
	switch that {
	case PlayerX:
		return CellX
	case PlayerO:
		return CellO
	default:
		return EmptyCell
	}
}

func (that Mark) String() string {
	switch that {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return "-"
	}
}

func (that Mark) MarshalText() ([]byte, error) {
	if !that.IsValid() {
		return []byte(""), nil
	}
	return []byte(that.String()), nil
}

func (that *Mark) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*that = NoMark
		return nil
	}

	mark, err := ParseMark(string(text))
	if err != nil {
		return err
	}

	*that = mark
	return nil
}
