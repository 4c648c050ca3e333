package service

import (
	"context"
	"testing"
	"time"

	"github.com/aitic/ai-tic-backend/internal/apperror"
	"github.com/aitic/ai-tic-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHintLearner struct {
	move  int
	calls int
}

func (that *fakeHintLearner) ChooseBestAction(context.Context, entity.Board) (int, error) {
	that.calls++
	return that.move, nil
}

type memoryHintQuota struct {
	counts map[string]int
}

func (that *memoryHintQuota) key(userID string, day time.Time) string {
	return userID + "@" + day.Format("2006-01-02")
}

func (that *memoryHintQuota) UsageFor(_ context.Context, userID string, day time.Time) (int, error) {
	return that.counts[that.key(userID, day)], nil
}

func (that *memoryHintQuota) Increment(_ context.Context, userID string, day time.Time) error {
	that.counts[that.key(userID, day)]++
	return nil
}

func TestHintService_HintMove(t *testing.T) {
	t.Run("Serves hints until the daily limit, then rejects", func(t *testing.T) {
		ctx := context.Background()
		learner := &fakeHintLearner{move: 4}
		quota := &memoryHintQuota{counts: map[string]int{}}
		hints := NewHintService(learner, quota, 3)

		board := entity.NewBoard()

		// When: requesting hints up to the limit
		for want := 2; want >= 0; want-- {
			move, remaining, err := hints.HintMove(ctx, "user-1", board)

			// Then: each hint succeeds and the remaining count steps down
			require.NoError(t, err)
			assert.Equal(t, 4, move)
			assert.Equal(t, want, remaining)
		}

		// When: requesting one hint past the limit
		_, _, err := hints.HintMove(ctx, "user-1", board)

		// Then: the request is rejected before touching the learner
		assert.ErrorIs(t, err, apperror.ErrHintLimitReached)
		assert.Equal(t, 3, learner.calls)
	})

	t.Run("Quota is per user", func(t *testing.T) {
		ctx := context.Background()
		learner := &fakeHintLearner{move: 0}
		quota := &memoryHintQuota{counts: map[string]int{}}
		hints := NewHintService(learner, quota, 1)

		board := entity.NewBoard()

		// Given: the first user exhausted their quota
		_, _, err := hints.HintMove(ctx, "user-1", board)
		require.NoError(t, err)
		_, _, err = hints.HintMove(ctx, "user-1", board)
		require.ErrorIs(t, err, apperror.ErrHintLimitReached)

		// When: another user asks for a hint
		_, remaining, err := hints.HintMove(ctx, "user-2", board)

		// Then: they are served from their own counter
		require.NoError(t, err)
		assert.Zero(t, remaining)
	})
}
