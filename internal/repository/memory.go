package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type memoryPosition struct {
	mu        sync.RWMutex
	decisions map[string]entity.Decision
}

// NewMemoryPositionRepository keeps decisions in process memory. Safe for concurrent use.
func NewMemoryPositionRepository() PositionRepository {
	return &memoryPosition{
		decisions: make(map[string]entity.Decision),
	}
}

func (that *memoryPosition) Save(_ context.Context, board entity.Board, mark entity.Mark, decision entity.Decision) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.decisions[positionKey(board, mark)] = decision

	return nil
}

func (that *memoryPosition) Get(_ context.Context, board entity.Board, mark entity.Mark) (*entity.Decision, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	decision, ok := that.decisions[positionKey(board, mark)]
	if !ok {
		return nil, ErrPositionNotFound
	}

	return &decision, nil
}
