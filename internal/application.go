package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aitic/ai-tic-backend/internal/broker"
	"github.com/aitic/ai-tic-backend/internal/config"
	"github.com/aitic/ai-tic-backend/internal/repository"
	"github.com/aitic/ai-tic-backend/internal/repository/storage"
	"github.com/aitic/ai-tic-backend/internal/repository/storage/sqlite"
	"github.com/aitic/ai-tic-backend/internal/service"
	"github.com/aitic/ai-tic-backend/transport/rest"
	"github.com/aitic/ai-tic-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - wires the storages, services and servers together and runs until a
// signal or a server failure.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := sqlite.New(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	qtableRepo := repository.NewQTableRepository(redisStorage.Connection)
	historyRepo := repository.NewHistoryRepository(sqliteStorage.Connection)
	hintQuotaRepo := repository.NewHintQuotaRepository(sqliteStorage.Connection)

	learner := service.NewLearner(logger, qtableRepo,
		conf.AI.Alpha, conf.AI.Gamma, conf.AI.Epsilon,
		rand.New(rand.NewSource(time.Now().UnixNano()))) //nolint:gosec // game randomness, not crypto
	botService := service.NewBotService(rand.New(rand.NewSource(time.Now().UnixNano()))) //nolint:gosec // game randomness, not crypto
	hintService := service.NewHintService(learner, hintQuotaRepo, conf.Hints.DailyLimit)
	scores := service.NewScoreBoard()

	gameBroker := broker.New(logger, historyRepo)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		restServer := rest.New(logger, botService, hintService, learner, scores, historyRepo, conf.AI.Difficulty)
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run WebSocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameBroker)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
