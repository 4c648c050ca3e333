package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aitic/ai-tic-backend/internal/entity"
	"github.com/aitic/ai-tic-backend/internal/repository"
	"github.com/aitic/ai-tic-backend/internal/service"
)

type learnerService interface {
	Update(ctx context.Context, prevBoard entity.Board, action int, reward float64, nextBoard entity.Board) error
}

type Server struct {
	logger *slog.Logger

	bot        service.BotService
	hints      service.HintService
	learner    learnerService
	scores     *service.ScoreBoard
	history    repository.HistoryRepository
	difficulty string
}

func New(logger *slog.Logger, bot service.BotService, hints service.HintService, learner learnerService, scores *service.ScoreBoard, history repository.HistoryRepository, difficulty string) *Server {
	return &Server{
		logger:     logger,
		bot:        bot,
		hints:      hints,
		learner:    learner,
		scores:     scores,
		history:    history,
		difficulty: difficulty,
	}
}

// Start - starts the HTTP server and shuts it down when ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", pingHandler)
	mux.HandleFunc("/api/ai/move", that.handleAIMove)
	mux.HandleFunc("/api/ai/hint", that.handleHint)
	mux.HandleFunc("/api/ai/learn", that.handleLearn)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
