package application

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestBuildBot(t *testing.T) {
	ctx := context.Background()

	for _, driver := range []string{config.CacheMemory, config.CacheNone} {
		t.Run(driver, func(t *testing.T) {
			// Given: a config selecting the cache driver
			conf := &config.Config{Cache: config.Cache{Driver: driver}}

			// When: the bot is built
			bot, err := BuildBot(ctx, newTestLogger(), conf)
			require.NoError(t, err)
			t.Cleanup(func() { assert.NoError(t, bot.Close()) })

			// Then: it answers and its metrics land in the registry
			decision, err := bot.Service.Suggest(ctx, entity.Board{}, entity.PlayerX)
			require.NoError(t, err)
			assert.Equal(t, entity.Move{Row: 0, Col: 0}, decision.Move)

			count, err := testutil.GatherAndCount(bot.Registry, "tictactoe_bot_moves_total")
			require.NoError(t, err)
			assert.Equal(t, 1, count)
		})
	}

	t.Run("Memory cache serves repeated positions", func(t *testing.T) {
		conf := &config.Config{Cache: config.Cache{Driver: config.CacheMemory}}

		bot, err := BuildBot(ctx, newTestLogger(), conf)
		require.NoError(t, err)

		board, err := entity.ParseBoard("X../.O./...")
		require.NoError(t, err)

		first, err := bot.Service.Suggest(ctx, board, entity.PlayerX)
		require.NoError(t, err)
		second, err := bot.Service.Suggest(ctx, board, entity.PlayerX)
		require.NoError(t, err)

		assert.Equal(t, first, second)

		count, err := testutil.GatherAndCount(bot.Registry, "tictactoe_bot_moves_total")
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}

func TestRunSelfPlay(t *testing.T) {
	// Given: a bot without cache
	conf := &config.Config{Cache: config.Cache{Driver: config.CacheNone}}
	bot, err := BuildBot(context.Background(), newTestLogger(), conf)
	require.NoError(t, err)

	var out bytes.Buffer

	// When: it plays itself
	verdict, err := RunSelfPlay(context.Background(), newTestLogger(), bot.Service, &out)

	// Then: perfect play ends in a tie after nine moves
	require.NoError(t, err)
	assert.Equal(t, entity.Verdict{Outcome: entity.Tie}, verdict)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, entity.CellCount+1)
	assert.Equal(t, "tie", lines[entity.CellCount])
}
