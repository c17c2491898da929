package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe-engine/internal"
	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const defaultConfigPath = "config.yml"

type options struct {
	configPath string
	board      string
	mark       string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "tictactoe",
		Short:        "Tic-tac-toe with a perfect minimax opponent",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", defaultConfigPath, "Path to the YAML config file")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal against the computer or a friend",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runPlay(opts)
		},
	}

	bestMoveCmd := &cobra.Command{
		Use:   "best-move",
		Short: "Print the optimal move as \"row col\"",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBestMove(cmd, opts)
		},
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print the minimax score of every legal move",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, opts)
		},
	}

	verdictCmd := &cobra.Command{
		Use:   "verdict",
		Short: "Print whether the game is in progress, won, or tied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			board, err := entity.ParseBoard(opts.board)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), tictactoe.Verdict(board))

			return nil
		},
	}

	selfPlayCmd := &cobra.Command{
		Use:   "selfplay",
		Short: "Let the computer play both sides from an empty board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSelfPlay(cmd, opts)
		},
	}

	for _, cmd := range []*cobra.Command{bestMoveCmd, analyzeCmd, verdictCmd} {
		cmd.Flags().StringVarP(&opts.board, "board", "b", "", "Board as 9 cells of X, O or '.', rows may be separated by '/'")
		_ = cmd.MarkFlagRequired("board")
	}

	for _, cmd := range []*cobra.Command{bestMoveCmd, analyzeCmd} {
		cmd.Flags().StringVarP(&opts.mark, "mark", "m", "", "Side to move: X or O")
		_ = cmd.MarkFlagRequired("mark")
	}

	rootCmd.AddCommand(playCmd, bestMoveCmd, analyzeCmd, verdictCmd, selfPlayCmd)

	return rootCmd
}

func runPlay(opts *options) error {
	conf, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	// the terminal belongs to the UI, so logs go to a file
	logFile, err := os.OpenFile(conf.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logger := initLogger(conf.LogLevel, logFile)

	if err = app.RunApp(logger, conf); err != nil {
		return fmt.Errorf("app run failed: %w", err)
	}

	return nil
}

func runBestMove(cmd *cobra.Command, opts *options) error {
	board, mark, err := parsePosition(opts)
	if err != nil {
		return err
	}

	return withBot(cmd, opts, func(ctx context.Context, _ *slog.Logger, bot *app.Bot) error {
		decision, err := bot.Service.Suggest(ctx, board, mark)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d %d\n", decision.Move.Row, decision.Move.Col)

		return nil
	})
}

func runAnalyze(cmd *cobra.Command, opts *options) error {
	board, mark, err := parsePosition(opts)
	if err != nil {
		return err
	}

	return withBot(cmd, opts, func(ctx context.Context, _ *slog.Logger, bot *app.Bot) error {
		scores, err := bot.Service.Analyze(ctx, board, mark)
		if err != nil {
			return err
		}

		for _, score := range scores {
			fmt.Fprintf(cmd.OutOrStdout(), "%d %d %+d\n", score.Move.Row, score.Move.Col, score.Score)
		}

		return nil
	})
}

func runSelfPlay(cmd *cobra.Command, opts *options) error {
	return withBot(cmd, opts, func(ctx context.Context, logger *slog.Logger, bot *app.Bot) error {
		_, err := app.RunSelfPlay(ctx, logger, bot.Service, cmd.OutOrStdout())
		return err
	})
}

// withBot loads the config, builds a bot logging to stderr and hands it to fn.
func withBot(cmd *cobra.Command, opts *options, fn func(ctx context.Context, logger *slog.Logger, bot *app.Bot) error) error {
	conf, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	logger := initLogger(conf.LogLevel, cmd.ErrOrStderr())
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	bot, err := app.BuildBot(ctx, logger, conf)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := bot.Close(); closeErr != nil {
			logger.Error("could not close position cache", "error", closeErr)
		}
	}()

	return fn(ctx, logger, bot)
}

func parsePosition(opts *options) (entity.Board, entity.Mark, error) {
	board, err := entity.ParseBoard(opts.board)
	if err != nil {
		return entity.Board{}, entity.NoMark, err
	}

	mark, err := entity.ParseMark(opts.mark)
	if err != nil {
		return entity.Board{}, entity.NoMark, err
	}

	return board, mark, nil
}
