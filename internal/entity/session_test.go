package entity

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	t.Run("Computer mode gives the AI the other mark", func(t *testing.T) {
		// When: a session is created where the human plays O
		session := NewSession("123", ModeComputer, PlayerO)

		// Then: X starts and the AI plays X, so it opens
		assert.Equal(t, PlayerX, session.Turn)
		assert.Equal(t, PlayerX, session.AIMark)
		assert.Equal(t, PlayerO, session.HumanMark)
		assert.True(t, session.IsAITurn())
		assert.Equal(t, Board{}, session.Board)
		assert.Equal(t, 1, session.Games)
	})

	t.Run("Two players mode has no AI", func(t *testing.T) {
		session := NewSession("123", ModeTwoPlayers, PlayerX)

		assert.Equal(t, NoMark, session.AIMark)
		assert.False(t, session.IsAITurn())
	})
}

func TestSession_MakeTurn(t *testing.T) {
	t.Run("MakeTurn", func(t *testing.T) {
		// Given: a new two player session
		session := NewSession("123", ModeTwoPlayers, PlayerX)

		// When: X plays the centre
		err := session.MakeTurn(PlayerX, Move{Row: 1, Col: 1})

		// Then: the board, move counter and turn are updated
		require.NoError(t, err)
		assert.Equal(t, CellX, session.Board.At(Move{Row: 1, Col: 1}))
		assert.Equal(t, 1, session.Moves)
		assert.Equal(t, PlayerO, session.Turn)
		assert.Equal(t, Verdict{Outcome: InProgress}, session.Verdict)
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		// Given: a new session
		session := NewSession("123", ModeTwoPlayers, PlayerX)

		// When: O moves first
		err := session.MakeTurn(PlayerO, Move{Row: 0, Col: 0})

		// Then: ErrNotYourTurn is returned and the state is unchanged
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, 0, session.Moves)
		assert.Equal(t, Board{}, session.Board)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		session := NewSession("123", ModeTwoPlayers, PlayerX)
		require.NoError(t, session.MakeTurn(PlayerX, Move{Row: 0, Col: 0}))

		err := session.MakeTurn(PlayerO, Move{Row: 0, Col: 0})

		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, PlayerO, session.Turn)
		assert.Equal(t, 1, session.Moves)
	})

	t.Run("Win updates scores and stops the game", func(t *testing.T) {
		// Given: X is about to complete the top row
		session := NewSession("123", ModeTwoPlayers, PlayerX)
		for _, turn := range []Move{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
			require.NoError(t, session.MakeTurn(session.Turn, turn))
		}

		// When: X completes the row
		require.NoError(t, session.MakeTurn(PlayerX, Move{Row: 0, Col: 2}))

		// Then: X wins, the score is counted and no further moves are accepted
		assert.Equal(t, Verdict{Outcome: Won, Winner: PlayerX}, session.Verdict)
		assert.Equal(t, Scores{X: 1}, session.Scores)
		assert.True(t, session.IsFinished())

		err := session.MakeTurn(PlayerO, Move{Row: 2, Col: 2})
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Tie is counted", func(t *testing.T) {
		session := NewSession("123", ModeTwoPlayers, PlayerX)
		turns := []Move{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {1, 0}, {1, 2}, {2, 1}, {2, 0}, {2, 2}}
		for _, turn := range turns {
			require.NoError(t, session.MakeTurn(session.Turn, turn))
		}

		assert.Equal(t, Verdict{Outcome: Tie}, session.Verdict)
		assert.Equal(t, Scores{Ties: 1}, session.Scores)
		assert.Equal(t, CellCount, session.Moves)
	})
}

func TestSession_NewGame(t *testing.T) {
	t.Run("Pending settings apply on the next game and scores survive", func(t *testing.T) {
		// Given: a session with a recorded score
		session := NewSession("123", ModeTwoPlayers, PlayerX)
		session.Scores = Scores{X: 2, O: 1, Ties: 3}

		// When: the mode and mark are changed
		session.SetMode(ModeComputer)
		session.SetHumanMark(PlayerO)

		// Then: the running game is not affected
		assert.Equal(t, ModeTwoPlayers, session.Mode)
		assert.Equal(t, NoMark, session.AIMark)

		// When: a new game starts
		session.NewGame()

		// Then: the new settings are active and scores are kept
		assert.Equal(t, 2, session.Games)
		assert.Equal(t, ModeComputer, session.Mode)
		assert.Equal(t, PlayerX, session.AIMark)
		assert.Equal(t, Scores{X: 2, O: 1, Ties: 3}, session.Scores)
	})

	t.Run("ResetScores", func(t *testing.T) {
		session := NewSession("123", ModeTwoPlayers, PlayerX)
		session.Scores = Scores{X: 2, O: 1, Ties: 3}

		session.ResetScores()

		assert.Equal(t, Scores{}, session.Scores)
	})

	t.Run("Snapshot is independent of the session", func(t *testing.T) {
		session := NewSession("123", ModeTwoPlayers, PlayerX)
		snapshot := session.Snapshot()

		require.NoError(t, session.MakeTurn(PlayerX, Move{Row: 0, Col: 0}))

		assert.Equal(t, Board{}, snapshot)
	})
}
