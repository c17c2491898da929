package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var ErrStaleSnapshot = errors.New("position changed since the move was computed")

type GamePlayService interface {
	NewGame(ctx context.Context, session *entity.Session) error

	MakeTurn(ctx context.Context, session *entity.Session, move entity.Move) error
	BotTurn(ctx context.Context, session *entity.Session) (entity.Move, error)
	ApplyBotMove(ctx context.Context, session *entity.Session, snapshot entity.Board, move entity.Move) error

	Hint(ctx context.Context, session *entity.Session) (entity.Decision, error)
}

type gamePlayService struct {
	logger *slog.Logger

	botService BotService
}

func NewGamePlayService(logger *slog.Logger, botService BotService) GamePlayService {
	return &gamePlayService{
		logger:     logger.With("component", "gameplay"),
		botService: botService,
	}
}

// NewGame starts a fresh game and lets the computer open when it plays X.
func (that *gamePlayService) NewGame(ctx context.Context, session *entity.Session) error {
	session.NewGame()

	that.logger.Info("new game", "session", session.ID, "mode", session.Mode, "human", session.HumanMark.String())

	if session.IsAITurn() {
		if _, err := that.BotTurn(ctx, session); err != nil {
			return fmt.Errorf("bot failed to make first turn: %w", err)
		}
	}

	return nil
}

// MakeTurn plays a human move for the side to move. Moves are refused while the computer is to play.
func (that *gamePlayService) MakeTurn(_ context.Context, session *entity.Session, move entity.Move) error {
	if session.IsAITurn() {
		return apperror.ErrNotYourTurn
	}

	mark := session.Turn
	if err := session.MakeTurn(mark, move); err != nil {
		return fmt.Errorf("failed to make turn: %w", err)
	}

	that.logTurn(session, mark, move)

	return nil
}

// BotTurn plays the engine's move. It is only allowed while the computer is to play.
func (that *gamePlayService) BotTurn(ctx context.Context, session *entity.Session) (entity.Move, error) {
	if !session.IsAITurn() {
		return entity.Move{}, apperror.ErrNotYourTurn
	}

	snapshot := session.Snapshot()

	decision, err := that.botService.Suggest(ctx, snapshot, session.Turn)
	if err != nil {
		return entity.Move{}, fmt.Errorf("bot failed to choose a move: %w", err)
	}

	if err = that.ApplyBotMove(ctx, session, snapshot, decision.Move); err != nil {
		return entity.Move{}, err
	}

	return decision.Move, nil
}

// ApplyBotMove applies a move computed from snapshot, unless the session has moved on since or
// the side to move is no longer the computer's.
func (that *gamePlayService) ApplyBotMove(_ context.Context, session *entity.Session, snapshot entity.Board, move entity.Move) error {
	if !session.IsAITurn() || session.Board != snapshot {
		return ErrStaleSnapshot
	}

	mark := session.Turn
	if err := session.MakeTurn(mark, move); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	that.logTurn(session, mark, move)

	return nil
}

// Hint returns the engine's recommendation for the side to move.
func (that *gamePlayService) Hint(ctx context.Context, session *entity.Session) (entity.Decision, error) {
	if session.IsFinished() {
		return entity.Decision{}, apperror.ErrGameFinished
	}

	decision, err := that.botService.Suggest(ctx, session.Snapshot(), session.Turn)
	if err != nil {
		return entity.Decision{}, fmt.Errorf("failed to get hint: %w", err)
	}

	return decision, nil
}

func (that *gamePlayService) logTurn(session *entity.Session, mark entity.Mark, move entity.Move) {
	log := that.logger.With("session", session.ID, "mark", mark.String(), "move", move.String())

	if session.IsFinished() {
		log.Info("game finished", "verdict", session.Verdict.String(), "scores", session.Scores)
		return
	}

	log.Debug("turn played")
}
