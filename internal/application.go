package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/transport/rest"
	"github.com/rocketscienceinc/tictactoe-engine/internal/transport/tui"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// Bot is a ready to use BotService plus the resources it holds.
type Bot struct {
	Service  service.BotService
	Registry *prometheus.Registry

	closeFn func() error
}

// Close releases the cache connection, if any.
func (that *Bot) Close() error {
	if that.closeFn == nil {
		return nil
	}

	return that.closeFn()
}

// BuildBot wires the position cache selected by conf.Cache.Driver and the bot metrics.
func BuildBot(ctx context.Context, logger *slog.Logger, conf *config.Config) (*Bot, error) {
	log := logger.With("component", "app")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	bot := &Bot{Registry: registry}

	var positionRepo repository.PositionRepository

	switch conf.Cache.Driver {
	case config.CacheRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, ErrAddrNotFound
		}

		redisStorage, err := storage.New(ctx, redisAddrString)
		if err != nil {
			return nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		bot.closeFn = redisStorage.Close
		positionRepo = repository.NewPositionRepository(redisStorage, conf.Cache.TTL)
	case config.CacheMemory:
		positionRepo = repository.NewMemoryPositionRepository()
	}

	log.Debug("bot configured", "cache", conf.Cache.Driver, "parallel", conf.Game.ParallelSearch)

	// positionRepo stays nil for the "none" driver, which disables caching
	bot.Service = service.NewBotService(logger, positionRepo, metrics.NewBot(registry), conf.Game.ParallelSearch)

	return bot, nil
}

// RunApp - runs the terminal game until the user quits or a signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signalContext(log)
	defer cancel()

	bot, err := BuildBot(ctx, logger, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = bot.Close(); err != nil {
			log.Error("could not close position cache", "error", err)
		}
	}()

	// run metrics server
	httpErrCh := make(chan error, 1)
	if conf.MetricsPort != "" {
		go func() {
			if httpErr := rest.New(logger, bot.Registry).Start(ctx, conf.MetricsPort); httpErr != nil {
				log.Error("HTTP server error", "error", httpErr)
				httpErrCh <- httpErr
				cancel()
			}
		}()
	}

	gamePlay := service.NewGamePlayService(logger, bot.Service)
	session := entity.NewSession(uuid.NewString(), conf.Game.ParsedMode(), conf.Game.ParsedHumanMark())

	log.Info("starting terminal game", "session", session.ID, "mode", session.Mode)

	model := tui.New(ctx, logger, gamePlay, bot.Service, session, conf.Game.AIDelay)
	if err = tui.Run(ctx, model); err != nil {
		return err
	}

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	default:
		log.Info("game closed", "scores", session.Scores)
		return nil
	}
}

// RunSelfPlay lets the bot play both sides from an empty board and writes every position to w.
func RunSelfPlay(ctx context.Context, logger *slog.Logger, bot service.BotService, w io.Writer) (entity.Verdict, error) {
	gamePlay := service.NewGamePlayService(logger, bot)
	session := entity.NewSession(uuid.NewString(), entity.ModeTwoPlayers, entity.PlayerX)

	// a two-player session where every move is the engine's hint for the side to move
	for !session.IsFinished() {
		mark := session.Turn

		decision, err := gamePlay.Hint(ctx, session)
		if err != nil {
			return entity.Verdict{}, fmt.Errorf("self-play stopped after %d moves: %w", session.Moves, err)
		}

		if err = gamePlay.MakeTurn(ctx, session, decision.Move); err != nil {
			return entity.Verdict{}, fmt.Errorf("self-play stopped after %d moves: %w", session.Moves, err)
		}

		if _, err = fmt.Fprintf(w, "%d. %s %s  %s\n", session.Moves, mark, decision.Move, session.Board); err != nil {
			return entity.Verdict{}, fmt.Errorf("failed to write position: %w", err)
		}
	}

	if _, err := fmt.Fprintln(w, session.Verdict); err != nil {
		return entity.Verdict{}, fmt.Errorf("failed to write verdict: %w", err)
	}

	return session.Verdict, nil
}

func signalContext(log *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigs)
	}()

	return ctx, cancel
}
