package repository

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionRepository_Save(t *testing.T) {
	ctx, st := suite.New(t)

	positionRepo := NewPositionRepository(st.Storage, time.Minute)

	// Given: a decision for the empty board
	decision := entity.Decision{Move: entity.Move{Row: 0, Col: 0}, Score: 0}

	// When: Save is called
	err := positionRepo.Save(ctx, entity.Board{}, entity.PlayerX, decision)

	// Then: no error should be returned, and the key is stored with a ttl
	require.NoError(t, err)

	ttl, err := st.Storage.TTL(ctx, "position:.........:X").Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)
}

func TestPositionRepository_Get(t *testing.T) {
	t.Run("Get_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		positionRepo := NewPositionRepository(st.Storage, 0)

		// Given: a stored decision
		board, err := entity.ParseBoard("XX./.O./...")
		require.NoError(t, err)

		decision := entity.Decision{Move: entity.Move{Row: 0, Col: 2}, Score: 0}
		require.NoError(t, positionRepo.Save(ctx, board, entity.PlayerO, decision))

		// When: Get is called with the same board and mark
		retrieved, err := positionRepo.Get(ctx, board, entity.PlayerO)

		// Then: the stored decision is returned
		require.NoError(t, err)
		require.Equal(t, decision, *retrieved)
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		positionRepo := NewPositionRepository(st.Storage, 0)

		// Given: a decision stored for X only
		require.NoError(t, positionRepo.Save(ctx, entity.Board{}, entity.PlayerX, entity.Decision{}))

		// When: Get is called for the other mark
		retrieved, err := positionRepo.Get(ctx, entity.Board{}, entity.PlayerO)

		// Then: an ErrPositionNotFound error should be returned
		require.ErrorIs(t, err, ErrPositionNotFound)
		assert.Nil(t, retrieved)
	})
}
