package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// QTableRepository - the learned-value store. Keys are a genuine two-part
// composite: the encoded board state selects a Redis hash, the action index
// selects a field inside it. An absent pair reads as 0 with a nil error;
// a store failure is reported as an error, never silently mapped to 0.
type QTableRepository interface {
	Get(ctx context.Context, state string, action int) (float64, error)
	Set(ctx context.Context, state string, action int, value float64) error
	MaxValue(ctx context.Context, state string) (float64, error)
}

type dbQTable struct {
	client *redis.Client
}

func NewQTableRepository(client *redis.Client) QTableRepository {
	return &dbQTable{
		client: client,
	}
}

func stateHashKey(state string) string {
	return "qtable:" + state
}

func (that *dbQTable) Get(ctx context.Context, state string, action int) (float64, error) {
	raw, err := that.client.HGet(ctx, stateHashKey(state), strconv.Itoa(action)).Result()

	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	if err != nil {
		return 0, fmt.Errorf("failed to get q-value: %w", err)
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse q-value: %w", err)
	}

	return value, nil
}

func (that *dbQTable) Set(ctx context.Context, state string, action int, value float64) error {
	err := that.client.HSet(ctx, stateHashKey(state), strconv.Itoa(action), strconv.FormatFloat(value, 'g', -1, 64)).Err()
	if err != nil {
		return fmt.Errorf("failed to set q-value: %w", err)
	}

	return nil
}

func (that *dbQTable) MaxValue(ctx context.Context, state string) (float64, error) {
	raws, err := that.client.HVals(ctx, stateHashKey(state)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list q-values: %w", err)
	}

	var maxValue float64
	for i, raw := range raws {
		value, parseErr := strconv.ParseFloat(raw, 64)
		if parseErr != nil {
			return 0, fmt.Errorf("failed to parse q-value: %w", parseErr)
		}

		if i == 0 || value > maxValue {
			maxValue = value
		}
	}

	return maxValue, nil
}
