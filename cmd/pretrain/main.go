// Command pretrain populates the Q-Table offline by enumerating every raw
// board encoding. One pass back-fills from terminal states; extra passes are
// available for reconvergence after the table has drifted.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/aitic/ai-tic-backend/internal/config"
	"github.com/aitic/ai-tic-backend/internal/entity"
	"github.com/aitic/ai-tic-backend/internal/repository"
	"github.com/aitic/ai-tic-backend/internal/repository/storage"
	"github.com/aitic/ai-tic-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "./config.yml", "path to config file")
	aiMark := flag.String("ai", entity.PlayerO, "mark the table is trained for")
	passes := flag.Int("passes", 1, "number of pretraining passes")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := run(logger, *configPath, *aiMark, *passes); err != nil {
		logger.Error("pretraining failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, configPath, aiMark string, passes int) error {
	if aiMark != entity.PlayerX && aiMark != entity.PlayerO {
		return fmt.Errorf("invalid ai mark %q", aiMark)
	}

	conf := config.MustLoad(configPath)

	ctx := context.Background()

	redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}
	defer func() {
		_ = redisStorage.Close()
	}()

	qtableRepo := repository.NewQTableRepository(redisStorage.Connection)
	learner := service.NewLearner(logger, qtableRepo,
		conf.AI.Alpha, conf.AI.Gamma, 0,
		rand.New(rand.NewSource(time.Now().UnixNano()))) //nolint:gosec // game randomness, not crypto

	opponentMark := entity.OppositeMark(aiMark)

	for pass := 1; pass <= passes; pass++ {
		started := time.Now()

		if err = learner.Pretrain(ctx, aiMark, opponentMark); err != nil {
			return fmt.Errorf("pass %d failed: %w", pass, err)
		}

		logger.Info("pass finished", "pass", pass, "elapsed", time.Since(started).String())
	}

	return nil
}
