package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBot(t *testing.T) {
	// Given: a fresh registry
	reg := prometheus.NewRegistry()

	// When: the collectors are registered and used
	bot := NewBot(reg)
	bot.Moves.WithLabelValues("search").Inc()
	bot.Moves.WithLabelValues("cache").Add(2)
	bot.CacheErrors.Inc()
	bot.SearchDuration.WithLabelValues("9").Observe(0.01)

	// Then: the values are exposed through the registry
	assert.InDelta(t, 1, testutil.ToFloat64(bot.Moves.WithLabelValues("search")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(bot.Moves.WithLabelValues("cache")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(bot.CacheErrors), 0)

	count, err := testutil.GatherAndCount(reg, "tictactoe_search_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewBot_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewBot(reg)

	assert.Panics(t, func() { NewBot(reg) })
}
