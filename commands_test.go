package main

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// execute runs the root command with a config path that does not exist, so defaults apply.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "missing.yml")))

	err := cmd.Execute()

	return out.String(), err
}

func TestVerdictCmd(t *testing.T) {
	tests := []struct {
		name  string
		board string
		want  string
	}{
		{name: "In progress", board: "X../.O./...", want: "in progress\n"},
		{name: "X wins", board: "XXX/OO./...", want: "X wins\n"},
		{name: "O wins on a diagonal", board: "OXX/XO./..O", want: "O wins\n"},
		{name: "Tie", board: "XOX/XOO/OXX", want: "tie\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, "verdict", "--board", tt.board)

			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	t.Run("Malformed board", func(t *testing.T) {
		_, err := execute(t, "verdict", "--board", "XX")

		require.ErrorIs(t, err, apperror.ErrInvalidBoard)
	})
}

func TestBestMoveCmd(t *testing.T) {
	t.Run("Takes the winning cell", func(t *testing.T) {
		// Given: X can complete the top row
		// When: asking for X's move
		out, err := execute(t, "best-move", "--board", "XX./OO./...", "--mark", "X")

		// Then: the answer is row 0, column 2
		require.NoError(t, err)
		assert.Equal(t, "0 2\n", out)
	})

	t.Run("Empty board opens in the corner", func(t *testing.T) {
		out, err := execute(t, "best-move", "-b", ".........", "-m", "o")

		require.NoError(t, err)
		assert.Equal(t, "0 0\n", out)
	})

	t.Run("Finished game has no move", func(t *testing.T) {
		_, err := execute(t, "best-move", "--board", "XXX/OO./...", "--mark", "O")

		require.ErrorIs(t, err, apperror.ErrNoLegalMoves)
	})

	t.Run("Mark is required", func(t *testing.T) {
		_, err := execute(t, "best-move", "--board", ".........")

		require.Error(t, err)
	})

	t.Run("Unknown mark", func(t *testing.T) {
		_, err := execute(t, "best-move", "--board", ".........", "--mark", "Z")

		require.ErrorIs(t, err, apperror.ErrInvalidMark)
	})
}

func TestAnalyzeCmd(t *testing.T) {
	// Given: O must block the top row
	out, err := execute(t, "analyze", "--board", "XX./.O./...", "--mark", "O")

	// Then: every legal move is listed row-major and only the block holds the draw
	require.NoError(t, err)
	assert.Equal(t, "0 2 +0\n1 0 -1\n1 2 -1\n2 0 -1\n2 1 -1\n2 2 -1\n", out)
}

func TestSelfPlayCmd(t *testing.T) {
	out, err := execute(t, "selfplay")

	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, "1. X (0, 0)  X../.../...", lines[0])
	assert.Equal(t, "tie", lines[9])
}
