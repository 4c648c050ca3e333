package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aitic/ai-tic-backend/internal/apperror"
	"github.com/aitic/ai-tic-backend/internal/entity"
)

type hintQuotaRepo interface {
	UsageFor(ctx context.Context, userID string, day time.Time) (int, error)
	Increment(ctx context.Context, userID string, day time.Time) error
}

type hintLearner interface {
	ChooseBestAction(ctx context.Context, board entity.Board) (int, error)
}

type HintService interface {
	HintMove(ctx context.Context, userID string, board entity.Board) (move, remaining int, err error)
}

// hintService - wraps the learner's best-action lookup behind a per-user
// daily quota. An exhausted quota is rejected before any Q-Table access.
type hintService struct {
	learner   hintLearner
	quotaRepo hintQuotaRepo

	dailyLimit int
	now        func() time.Time
}

func NewHintService(learner hintLearner, quotaRepo hintQuotaRepo, dailyLimit int) HintService {
	return &hintService{
		learner:    learner,
		quotaRepo:  quotaRepo,
		dailyLimit: dailyLimit,
		now:        time.Now,
	}
}

func (that *hintService) HintMove(ctx context.Context, userID string, board entity.Board) (int, int, error) {
	day := that.now()

	usage, err := that.quotaRepo.UsageFor(ctx, userID, day)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get hint usage: %w", err)
	}

	if usage >= that.dailyLimit {
		return 0, 0, apperror.ErrHintLimitReached
	}

	move, err := that.learner.ChooseBestAction(ctx, board)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to choose hint move: %w", err)
	}

	if err = that.quotaRepo.Increment(ctx, userID, day); err != nil {
		return 0, 0, fmt.Errorf("failed to increment hint usage: %w", err)
	}

	return move, that.dailyLimit - usage - 1, nil
}
