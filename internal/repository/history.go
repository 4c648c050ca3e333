package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// MatchResult - the outcome summary emitted once a game concludes.
type MatchResult struct {
	Result     string
	PlayerMark string
	AIMark     string
	MovesCount int
	Duration   time.Duration
}

type HistoryRepository interface {
	Record(ctx context.Context, result MatchResult) error
}

type dbHistory struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) HistoryRepository {
	return &dbHistory{
		db: db,
	}
}

func (that *dbHistory) Record(ctx context.Context, result MatchResult) error {
	query := `INSERT INTO game_history (result, player_mark, ai_mark, moves_count, duration) VALUES (?, ?, ?, ?, ?)`

	_, err := that.db.ExecContext(ctx, query,
		result.Result, result.PlayerMark, result.AIMark, result.MovesCount, result.Duration.Seconds())
	if err != nil {
		return fmt.Errorf("failed to record match result: %w", err)
	}

	return nil
}
