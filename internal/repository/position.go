package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var ErrPositionNotFound = errors.New("position not found")

// PositionRepository caches search decisions keyed by board value and the mark to move.
type PositionRepository interface {
	Get(ctx context.Context, board entity.Board, mark entity.Mark) (*entity.Decision, error)
	Save(ctx context.Context, board entity.Board, mark entity.Mark, decision entity.Decision) error
}

func positionKey(board entity.Board, mark entity.Mark) string {
	return "position:" + board.Key() + ":" + mark.String()
}

type dbPosition struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPositionRepository stores decisions in Redis. A zero ttl keeps entries forever.
func NewPositionRepository(client *redis.Client, ttl time.Duration) PositionRepository {
	return &dbPosition{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbPosition) Save(ctx context.Context, board entity.Board, mark entity.Mark, decision entity.Decision) error {
	decisionJSON, err := json.Marshal(decision)
	if err != nil {
		return fmt.Errorf("could not marshal decision: %w", err)
	}

	if err = that.client.Set(ctx, positionKey(board, mark), decisionJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set position: %w", err)
	}

	return nil
}

func (that *dbPosition) Get(ctx context.Context, board entity.Board, mark entity.Mark) (*entity.Decision, error) {
	response, err := that.client.Get(ctx, positionKey(board, mark)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrPositionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get position: %w", err)
	}

	var decision entity.Decision
	if err = json.Unmarshal([]byte(response), &decision); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decision: %w", err)
	}

	return &decision, nil
}
