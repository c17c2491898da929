// Package tictactoe is the decision core: terminal-state detection and exhaustive minimax
// search over 3x3 positions. Every function is a pure function of its arguments.
package tictactoe

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Scores are always from the perspective mark's fixed point of view.
const (
	WinScore  = 1
	TieScore  = 0
	LossScore = -1
)

// MoveScore is the minimax value of playing Move at the root.
type MoveScore struct {
	Move  entity.Move `json:"move"`
	Score int         `json:"score"`
}

// Verdict classifies the board as in progress, won or tied.
func Verdict(board entity.Board) entity.Verdict {
	return board.Verdict()
}

// BestMove returns the optimal move for perspective. Among equally valued moves the earliest in
// row-major order wins.
func BestMove(board entity.Board, perspective entity.Mark) (entity.Move, error) {
	decision, err := Decide(board, perspective)
	if err != nil {
		return entity.Move{}, err
	}

	return decision.Move, nil
}

// Decide is BestMove that also reports the value of the chosen move.
func Decide(board entity.Board, perspective entity.Mark) (entity.Decision, error) {
	scores, err := Analyze(board, perspective)
	if err != nil {
		return entity.Decision{}, err
	}

	return pickBest(scores), nil
}

// DecideParallel is Decide with root moves searched concurrently. The result is identical.
func DecideParallel(ctx context.Context, board entity.Board, perspective entity.Mark) (entity.Decision, error) {
	scores, err := AnalyzeParallel(ctx, board, perspective)
	if err != nil {
		return entity.Decision{}, err
	}

	return pickBest(scores), nil
}

// Analyze scores every legal root move, in row-major order.
func Analyze(board entity.Board, perspective entity.Mark) ([]MoveScore, error) {
	moves, err := rootMoves(board, perspective)
	if err != nil {
		return nil, err
	}

	scores := make([]MoveScore, len(moves))
	for i, move := range moves {
		child := board.Place(move, perspective)
		scores[i] = MoveScore{Move: move, Score: Score(child, perspective.Opponent(), perspective)}
	}

	return scores, nil
}

// AnalyzeParallel is Analyze with one goroutine per root move. Each goroutine works on its own
// copy of the board, so nothing is shared between them.
func AnalyzeParallel(ctx context.Context, board entity.Board, perspective entity.Mark) ([]MoveScore, error) {
	moves, err := rootMoves(board, perspective)
	if err != nil {
		return nil, err
	}

	scores := make([]MoveScore, len(moves))

	group, gCtx := errgroup.WithContext(ctx)
	for i, move := range moves {
		group.Go(func() error {
			if ctxErr := gCtx.Err(); ctxErr != nil {
				return ctxErr
			}

			child := board.Place(move, perspective)
			scores[i] = MoveScore{Move: move, Score: Score(child, perspective.Opponent(), perspective)}

			return nil
		})
	}

	if err = group.Wait(); err != nil {
		return nil, fmt.Errorf("search canceled: %w", err)
	}

	return scores, nil
}

// Score is the minimax value of board with toMove to play, seen from perspective. Nodes where
// toMove is perspective maximize, the others minimize. The search always reaches terminal
// positions; there is no depth limit and no heuristic.
func Score(board entity.Board, toMove, perspective entity.Mark) int {
	if verdict := board.Verdict(); verdict.IsTerminal() {
		return terminalScore(verdict, perspective)
	}

	maximizing := toMove == perspective

	best := WinScore + 1
	if maximizing {
		best = LossScore - 1
	}

	for _, move := range board.LegalMoves() {
		score := Score(board.Place(move, toMove), toMove.Opponent(), perspective)

		if (maximizing && score > best) || (!maximizing && score < best) {
			best = score
		}
	}

	return best
}

func terminalScore(verdict entity.Verdict, perspective entity.Mark) int {
	switch {
	case verdict.Outcome == entity.Tie:
		return TieScore
	case verdict.Winner == perspective:
		return WinScore
	default:
		return LossScore
	}
}

func rootMoves(board entity.Board, perspective entity.Mark) ([]entity.Move, error) {
	if !perspective.IsValid() {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidMark, perspective)
	}

	if verdict := board.Verdict(); verdict.IsTerminal() {
		return nil, fmt.Errorf("%w: game is over (%s)", apperror.ErrNoLegalMoves, verdict)
	}

	moves := board.LegalMoves()
	if len(moves) == 0 {
		return nil, apperror.ErrNoLegalMoves
	}

	return moves, nil
}

// pickBest keeps the first move with a strictly greater score, so ties go to the earliest
// move in row-major order.
func pickBest(scores []MoveScore) entity.Decision {
	best := entity.Decision{Move: scores[0].Move, Score: scores[0].Score}
	for _, candidate := range scores[1:] {
		if candidate.Score > best.Score {
			best = entity.Decision{Move: candidate.Move, Score: candidate.Score}
		}
	}

	return best
}
