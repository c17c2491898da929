package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const (
	sourceCache  = "cache"
	sourceSearch = "search"
)

type BotService interface {
	Suggest(ctx context.Context, board entity.Board, mark entity.Mark) (entity.Decision, error)
	Analyze(ctx context.Context, board entity.Board, mark entity.Mark) ([]tictactoe.MoveScore, error)
}

type positionRepo interface {
	Get(ctx context.Context, board entity.Board, mark entity.Mark) (*entity.Decision, error)
	Save(ctx context.Context, board entity.Board, mark entity.Mark, decision entity.Decision) error
}

type botService struct {
	logger *slog.Logger

	positionRepo positionRepo
	metrics      *metrics.Bot
	parallel     bool
}

// NewBotService returns a bot that always plays the optimal move. positionRepo may be nil to
// disable caching; parallel searches root moves concurrently.
func NewBotService(logger *slog.Logger, positionRepo positionRepo, botMetrics *metrics.Bot, parallel bool) BotService {
	return &botService{
		logger:       logger.With("component", "bot"),
		positionRepo: positionRepo,
		metrics:      botMetrics,
		parallel:     parallel,
	}
}

func (that *botService) Suggest(ctx context.Context, board entity.Board, mark entity.Mark) (entity.Decision, error) {
	log := that.logger.With("method", "Suggest", "board", board.String(), "mark", mark.String())

	if verdict := tictactoe.Verdict(board); verdict.IsTerminal() {
		return entity.Decision{}, fmt.Errorf("%w: game is over (%s)", apperror.ErrNoLegalMoves, verdict)
	}

	if decision, ok := that.fromCache(ctx, log, board, mark); ok {
		that.metrics.Moves.WithLabelValues(sourceCache).Inc()
		log.Debug("decision served from cache", "move", decision.Move.String())

		return decision, nil
	}

	start := time.Now()

	var decision entity.Decision
	var err error
	if that.parallel {
		decision, err = tictactoe.DecideParallel(ctx, board, mark)
	} else {
		decision, err = tictactoe.Decide(board, mark)
	}

	if err != nil {
		return entity.Decision{}, fmt.Errorf("failed to search position: %w", err)
	}

	elapsed := time.Since(start)
	emptyCells := strconv.Itoa(board.Count(entity.EmptyCell))
	that.metrics.SearchDuration.WithLabelValues(emptyCells).Observe(elapsed.Seconds())
	that.metrics.Moves.WithLabelValues(sourceSearch).Inc()

	log.Debug("decision searched", "move", decision.Move.String(), "score", decision.Score, "elapsed", elapsed)

	if that.positionRepo != nil {
		if err = that.positionRepo.Save(ctx, board, mark, decision); err != nil {
			that.metrics.CacheErrors.Inc()
			log.Warn("failed to cache decision", "error", err)
		}
	}

	return decision, nil
}

func (that *botService) Analyze(ctx context.Context, board entity.Board, mark entity.Mark) ([]tictactoe.MoveScore, error) {
	var scores []tictactoe.MoveScore
	var err error
	if that.parallel {
		scores, err = tictactoe.AnalyzeParallel(ctx, board, mark)
	} else {
		scores, err = tictactoe.Analyze(board, mark)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to analyze position: %w", err)
	}

	return scores, nil
}

// fromCache never fails: cache errors are logged and treated as misses.
func (that *botService) fromCache(ctx context.Context, log *slog.Logger, board entity.Board, mark entity.Mark) (entity.Decision, bool) {
	if that.positionRepo == nil || !mark.IsValid() {
		return entity.Decision{}, false
	}

	decision, err := that.positionRepo.Get(ctx, board, mark)
	switch {
	case err == nil:
		return *decision, true
	case errors.Is(err, repository.ErrPositionNotFound):
		return entity.Decision{}, false
	default:
		that.metrics.CacheErrors.Inc()
		log.Warn("failed to read cached decision", "error", err)

		return entity.Decision{}, false
	}
}
