package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aitic/ai-tic-backend/internal/broker"
	"github.com/aitic/ai-tic-backend/internal/entity"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type gameBroker interface {
	Join(roomID, playerID, requestedMark string, conn broker.Conn) (entity.Player, error)
	Leave(roomID, playerID string)
	ApplyMove(roomID, mark string, cell int) error
	Continue(roomID, mark string) error
	Exit(roomID, mark string) error
	Chat(roomID, sender, text string) error
}

type Server struct {
	logger *slog.Logger
	broker gameBroker

	upgrader websocket.Upgrader
}

func New(logger *slog.Logger, gameBroker gameBroker) *Server {
	return &Server{
		logger: logger,
		broker: gameBroker,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Start - starts the WebSocket server and shuts it down when ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/game/", that.handleGame)

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 0, // connections are long-lived
		IdleTimeout: 30 * time.Second,
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

// handleGame - upgrades the connection and admits the player into the room
// named by the path. An optional ?symbol= query requests a specific mark; a
// rejected join closes the socket without emitting any event.
func (that *Server) handleGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleGame")

	roomID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/ws/game/"), "/")
	if roomID == "" {
		http.Error(w, "room name is required", http.StatusBadRequest)
		return
	}

	socket, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := newConnection(socket)
	go conn.writePump()

	playerID := uuid.NewString()

	player, err := that.broker.Join(roomID, playerID, r.URL.Query().Get("symbol"), conn)
	if err != nil {
		log.Info("join rejected", "room", roomID, "error", err)
		conn.close()
		return
	}

	log.Info("player joined", "room", roomID, "player", playerID, "mark", player.Mark)

	defer func() {
		that.broker.Leave(roomID, playerID)
		conn.close()
		log.Info("player left", "room", roomID, "player", playerID)
	}()

	that.readLoop(conn, roomID, player)
}

// readLoop - processes inbound client actions until the socket closes.
func (that *Server) readLoop(conn *connection, roomID string, player entity.Player) {
	log := that.logger.With("method", "readLoop", "room", roomID)

	for {
		_, data, err := conn.socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("connection errored", "error", err)
			}
			return
		}

		var envelope map[string]any
		if err = json.Unmarshal(data, &envelope); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			_ = conn.Send(newErrorResponse("malformed message"))
			continue
		}

		action, _ := envelope["action"].(string)

		if err = that.handleAction(roomID, player, action, envelope); err != nil {
			log.Error("failed to handle action", "action", action, "error", err)
			_ = conn.Send(newErrorResponse(err.Error()))
		}
	}
}

func (that *Server) handleAction(roomID string, player entity.Player, action string, envelope map[string]any) error {
	switch action {
	case actionMove:
		var payload movePayload
		if err := decodePayload(envelope, &payload); err != nil {
			return err
		}

		if len(payload.Board) != 0 && len(payload.Board) != entity.BoardSize {
			return fmt.Errorf("invalid board: expected %d cells, got %d", entity.BoardSize, len(payload.Board))
		}

		return that.broker.ApplyMove(roomID, player.Mark, payload.Move)

	case actionContinue:
		return that.broker.Continue(roomID, player.Mark)

	case actionExit:
		return that.broker.Exit(roomID, player.Mark)

	case actionChat:
		var payload chatPayload
		if err := decodePayload(envelope, &payload); err != nil {
			return err
		}

		if payload.Message.Player == "" {
			payload.Message.Player = player.Mark
		}

		return that.broker.Chat(roomID, payload.Message.Player, payload.Message.Text)

	default:
		return fmt.Errorf("unknown action %q", action)
	}
}
