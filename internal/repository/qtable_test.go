package repository

import (
	"testing"

	"github.com/aitic/ai-tic-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQTableRepository_Get(t *testing.T) {
	t.Run("Returns zero for an absent pair", func(t *testing.T) {
		ctx, st := suite.New(t)

		qtable := NewQTableRepository(st.Storage.Connection)

		// Given: an empty table
		// When: reading a pair that was never written
		value, err := qtable.Get(ctx, "X,,O,,,,,,", 4)

		// Then: the value defaults to zero without an error
		require.NoError(t, err)
		assert.Zero(t, value)
	})

	t.Run("Returns the last written value", func(t *testing.T) {
		ctx, st := suite.New(t)

		qtable := NewQTableRepository(st.Storage.Connection)

		// Given: a pair written twice
		require.NoError(t, qtable.Set(ctx, "X,,O,,,,,,", 4, 0.25))
		require.NoError(t, qtable.Set(ctx, "X,,O,,,,,,", 4, 0.75))

		// When: reading the pair back
		value, err := qtable.Get(ctx, "X,,O,,,,,,", 4)

		// Then: the upserted value wins
		require.NoError(t, err)
		assert.InDelta(t, 0.75, value, 1e-9)
	})

	t.Run("Actions at the same state are independent", func(t *testing.T) {
		ctx, st := suite.New(t)

		qtable := NewQTableRepository(st.Storage.Connection)

		// Given: two actions written at the same state
		require.NoError(t, qtable.Set(ctx, ",,,,,,,,", 0, -1))
		require.NoError(t, qtable.Set(ctx, ",,,,,,,,", 8, 1))

		// When: reading each action
		first, err := qtable.Get(ctx, ",,,,,,,,", 0)
		require.NoError(t, err)
		second, err := qtable.Get(ctx, ",,,,,,,,", 8)
		require.NoError(t, err)

		// Then: the values do not overwrite each other
		assert.InDelta(t, -1, first, 1e-9)
		assert.InDelta(t, 1, second, 1e-9)
	})
}

func TestQTableRepository_MaxValue(t *testing.T) {
	t.Run("Returns zero for an unknown state", func(t *testing.T) {
		ctx, st := suite.New(t)

		qtable := NewQTableRepository(st.Storage.Connection)

		// When: asking for the max of a state with no entries
		value, err := qtable.MaxValue(ctx, "O,O,,,,,,,")

		// Then: the default is zero
		require.NoError(t, err)
		assert.Zero(t, value)
	})

	t.Run("Returns the maximum among stored actions", func(t *testing.T) {
		ctx, st := suite.New(t)

		qtable := NewQTableRepository(st.Storage.Connection)

		// Given: several actions at one state
		require.NoError(t, qtable.Set(ctx, "X,O,,,,,,,", 2, -0.5))
		require.NoError(t, qtable.Set(ctx, "X,O,,,,,,,", 3, 0.8))
		require.NoError(t, qtable.Set(ctx, "X,O,,,,,,,", 4, 0.1))

		// When: asking for the max value at that state
		value, err := qtable.MaxValue(ctx, "X,O,,,,,,,")

		// Then: the largest stored value is returned
		require.NoError(t, err)
		assert.InDelta(t, 0.8, value, 1e-9)
	})

	t.Run("Returns a negative maximum when all values are negative", func(t *testing.T) {
		ctx, st := suite.New(t)

		qtable := NewQTableRepository(st.Storage.Connection)

		// Given: a state holding only losing values
		require.NoError(t, qtable.Set(ctx, "O,X,X,,,,,,", 5, -1))
		require.NoError(t, qtable.Set(ctx, "O,X,X,,,,,,", 6, -0.4))

		// When: asking for the max value
		value, err := qtable.MaxValue(ctx, "O,X,X,,,,,,")

		// Then: the max of stored entries is reported, not the absent-state default
		require.NoError(t, err)
		assert.InDelta(t, -0.4, value, 1e-9)
	})
}
