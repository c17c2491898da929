package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// Mode selects who plays the second side.
type Mode string

const (
	ModeTwoPlayers Mode = "2P"
	ModeComputer   Mode = "CPU"
)

// ParseMode accepts "2P" or "CPU" in any case.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToUpper(strings.TrimSpace(s))) {
	case ModeTwoPlayers:
		return ModeTwoPlayers, nil
	case ModeComputer:
		return ModeComputer, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}

// Scores counts finished games across the lifetime of a session.
type Scores struct {
	X    int `json:"x"`
	O    int `json:"o"`
	Ties int `json:"ties"`
}

// Session is the live game owned by the presentation layer. The search engine never sees it,
// only Snapshot values of its board.
type Session struct {
	ID      string  `json:"id"`
	Board   Board   `json:"board"`
	Turn    Mark    `json:"turn"`
	Moves   int     `json:"moves"`
	Verdict Verdict `json:"verdict"`
	Scores  Scores  `json:"scores"`

	// Games counts NewGame calls, so results computed for an earlier game can be told apart.
	Games int `json:"games"`

	// Mode and HumanMark are the settings of the game in progress. AIMark is NoMark in two-player mode.
	Mode      Mode `json:"mode"`
	HumanMark Mark `json:"human_mark"`
	AIMark    Mark `json:"ai_mark,omitempty"`

	pendingMode      Mode
	pendingHumanMark Mark
}

func NewSession(id string, mode Mode, humanMark Mark) *Session {
	session := &Session{
		ID:               id,
		pendingMode:      mode,
		pendingHumanMark: humanMark,
	}
	session.NewGame()

	return session
}

// SetMode selects the mode for the next game.
func (that *Session) SetMode(mode Mode) {
	that.pendingMode = mode
}

// SetHumanMark selects the human's mark for the next computer game.
func (that *Session) SetHumanMark(mark Mark) {
	if mark.IsValid() {
		that.pendingHumanMark = mark
	}
}

// PendingMode returns the mode the next game will use.
func (that *Session) PendingMode() Mode {
	return that.pendingMode
}

// PendingHumanMark returns the human mark the next game will use.
func (that *Session) PendingHumanMark() Mark {
	return that.pendingHumanMark
}

// NewGame clears the board and applies pending settings. Scores are kept. X always starts.
func (that *Session) NewGame() {
	that.Games++
	that.Board = Board{}
	that.Turn = PlayerX
	that.Moves = 0
	that.Verdict = Verdict{Outcome: InProgress}

	that.Mode = that.pendingMode
	if that.Mode != ModeComputer {
		that.Mode = ModeTwoPlayers
	}

	that.HumanMark = that.pendingHumanMark
	if !that.HumanMark.IsValid() {
		that.HumanMark = PlayerX
	}

	that.AIMark = NoMark
	if that.Mode == ModeComputer {
		that.AIMark = that.HumanMark.Opponent()
	}
}

// MakeTurn places mark on move for the side whose turn it is.
func (that *Session) MakeTurn(mark Mark, move Move) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	board, err := that.Board.Apply(move, mark)
	if err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	that.Board = board
	that.Moves++
	that.updateGameState()

	return nil
}

func (that *Session) updateGameState() {
	that.Verdict = that.Board.Verdict()

	switch that.Verdict.Outcome {
	// one player wins
	case Won:
		if that.Verdict.Winner == PlayerX {
			that.Scores.X++
		} else {
			that.Scores.O++
		}
	// tie
	case Tie:
		that.Scores.Ties++
	// game continues
	default:
		that.Turn = that.Turn.Opponent()
	}
}

// ResetScores zeroes the win and tie counters.
func (that *Session) ResetScores() {
	that.Scores = Scores{}
}

func (that *Session) IsFinished() bool {
	return that.Verdict.IsTerminal()
}

// IsAITurn reports whether the computer should move now.
func (that *Session) IsAITurn() bool {
	return that.Mode == ModeComputer && !that.IsFinished() && that.Turn == that.AIMark
}

// Snapshot returns a copy of the board that the caller may use freely.
func (that *Session) Snapshot() Board {
	return that.Board
}
