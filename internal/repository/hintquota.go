package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const dayFormat = "2006-01-02"

// HintQuotaRepository - per-user daily hint counters.
type HintQuotaRepository interface {
	UsageFor(ctx context.Context, userID string, day time.Time) (int, error)
	Increment(ctx context.Context, userID string, day time.Time) error
}

type dbHintQuota struct {
	db *sql.DB
}

func NewHintQuotaRepository(db *sql.DB) HintQuotaRepository {
	return &dbHintQuota{
		db: db,
	}
}

func (that *dbHintQuota) UsageFor(ctx context.Context, userID string, day time.Time) (int, error) {
	query := `SELECT count FROM daily_hint_usage WHERE user_id = ? AND day = ?`

	var count int
	err := that.db.QueryRowContext(ctx, query, userID, day.Format(dayFormat)).Scan(&count)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}

	if err != nil {
		return 0, fmt.Errorf("failed to get hint usage: %w", err)
	}

	return count, nil
}

func (that *dbHintQuota) Increment(ctx context.Context, userID string, day time.Time) error {
	query := `INSERT INTO daily_hint_usage (user_id, day, count) VALUES (?, ?, 1)
		ON CONFLICT (user_id, day) DO UPDATE SET count = count + 1`

	if _, err := that.db.ExecContext(ctx, query, userID, day.Format(dayFormat)); err != nil {
		return fmt.Errorf("failed to increment hint usage: %w", err)
	}

	return nil
}
