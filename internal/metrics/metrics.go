// Package metrics holds the Prometheus collectors for the bot.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tictactoe"

// Bot instruments optimal-move queries.
type Bot struct {
	// Moves counts decisions returned, labelled by source ("cache" or "search").
	Moves *prometheus.CounterVec
	// CacheErrors counts position cache failures that were ignored.
	CacheErrors prometheus.Counter
	// SearchDuration tracks the latency of uncached searches by number of empty cells.
	SearchDuration *prometheus.HistogramVec
}

// NewBot registers the collectors with reg. Pass a fresh prometheus.NewRegistry in tests.
func NewBot(reg prometheus.Registerer) *Bot {
	factory := promauto.With(reg)

	return &Bot{
		Moves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bot_moves_total",
			Help:      "Total optimal-move decisions by source",
		}, []string{"source"}),
		CacheErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bot_cache_errors_total",
			Help:      "Total position cache errors",
		}),
		SearchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Minimax search duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10us to ~2.6s
		}, []string{"empty_cells"}),
	}
}
