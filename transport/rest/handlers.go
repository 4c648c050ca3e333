package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/aitic/ai-tic-backend/internal/apperror"
	"github.com/aitic/ai-tic-backend/internal/entity"
	"github.com/aitic/ai-tic-backend/internal/repository"
	"github.com/aitic/ai-tic-backend/internal/service"
)

func pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

type aiMoveRequest struct {
	Board        []string `json:"board"`
	PlayerSymbol string   `json:"player_symbol"`
	Difficulty   string   `json:"difficulty"`
}

type aiMoveResponse struct {
	Move   *int           `json:"move"`
	Board  entity.Board   `json:"board"`
	Winner string         `json:"winner,omitempty"`
	Scores service.Scores `json:"scores"`
}

// handleAIMove - plays one AI turn in a single-player game. The board state is
// client-held; the server validates it, answers with the bot's move and resets
// the board in the response once the game ends.
func (that *Server) handleAIMove(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleAIMove")

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req aiMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	board, err := boardFromCells(req.Board)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid board")
		return
	}

	playerSymbol := req.PlayerSymbol
	if playerSymbol != entity.PlayerX && playerSymbol != entity.PlayerO {
		playerSymbol = entity.PlayerX
	}
	aiSymbol := entity.OppositeMark(playerSymbol)

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = that.difficulty
	}

	// the player's own move may already have ended the game
	if winner, finished := gameResult(board); finished {
		that.finishGame(r.Context(), winner, playerSymbol, aiSymbol)

		writeJSON(w, aiMoveResponse{Move: nil, Board: entity.NewBoard(), Winner: winner, Scores: that.scores.Snapshot()})
		return
	}

	move, err := that.bot.ChooseMove(board, aiSymbol, difficulty)
	if err != nil {
		log.Error("failed to choose bot move", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to choose a move")
		return
	}

	board[move] = aiSymbol

	resp := aiMoveResponse{Move: &move, Board: board, Scores: that.scores.Snapshot()}

	if winner, finished := gameResult(board); finished {
		that.finishGame(r.Context(), winner, playerSymbol, aiSymbol)

		resp.Winner = winner
		resp.Board = entity.NewBoard()
		resp.Scores = that.scores.Snapshot()
	}

	writeJSON(w, resp)
}

type hintRequest struct {
	Board  []string `json:"board"`
	UserID string   `json:"user_id"`
}

type hintResponse struct {
	HintMove  int `json:"hint_move"`
	Remaining int `json:"remaining"`
}

// handleHint - answers the learner's best known move, gated by the per-user
// daily quota.
func (that *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleHint")

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req hintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	board, err := boardFromCells(req.Board)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid board")
		return
	}

	move, remaining, err := that.hints.HintMove(r.Context(), req.UserID, board)

	if errors.Is(err, apperror.ErrHintLimitReached) {
		writeError(w, http.StatusForbidden, "Daily hint limit reached")
		return
	}

	if err != nil {
		log.Error("failed to generate hint", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to generate a hint")
		return
	}

	writeJSON(w, hintResponse{HintMove: move, Remaining: remaining})
}

type learnRequest struct {
	PrevBoard []string `json:"prev_board"`
	Action    int      `json:"action"`
	Reward    float64  `json:"reward"`
	Board     []string `json:"board"`
}

// handleLearn - applies one observed transition to the Q-Table.
func (that *Server) handleLearn(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleLearn")

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req learnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prevBoard, err := boardFromCells(req.PrevBoard)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid board")
		return
	}

	nextBoard, err := boardFromCells(req.Board)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid board")
		return
	}

	if req.Action < 0 || req.Action >= entity.BoardSize {
		writeError(w, http.StatusBadRequest, "invalid action")
		return
	}

	if err = that.learner.Update(r.Context(), prevBoard, req.Action, req.Reward, nextBoard); err != nil {
		log.Error("failed to apply update", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to apply update")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// finishGame - tallies the advisory score and fires the history notification.
func (that *Server) finishGame(ctx context.Context, winner, playerSymbol, aiSymbol string) {
	that.scores.Add(winner)

	if that.history == nil {
		return
	}

	result := repository.MatchResult{
		Result:     winner,
		PlayerMark: playerSymbol,
		AIMark:     aiSymbol,
	}

	go func() {
		recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		if err := that.history.Record(recordCtx, result); err != nil {
			that.logger.Error("failed to record match result", "error", err)
		}
	}()
}

func boardFromCells(cells []string) (entity.Board, error) {
	if len(cells) != entity.BoardSize {
		return entity.Board{}, apperror.ErrInvalidBoard
	}

	var board entity.Board
	for i, cell := range cells {
		if cell != entity.PlayerX && cell != entity.PlayerO && cell != entity.EmptyCell {
			return entity.Board{}, apperror.ErrInvalidBoard
		}
		board[i] = cell
	}

	return board, nil
}

// gameResult - the post-move outcome: the winner mark, PlayerTie for a full
// board, or not finished at all.
func gameResult(board entity.Board) (string, bool) {
	if winner := board.CheckWinner(); winner != entity.EmptyCell {
		return winner, true
	}

	if board.IsFull() {
		return entity.PlayerTie, true
	}

	return "", false
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
