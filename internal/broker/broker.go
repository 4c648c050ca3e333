// Package broker owns live match rooms: player admission and symbol
// assignment, serialized mutation of shared match state, and event fan-out to
// connected players.
package broker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aitic/ai-tic-backend/internal/apperror"
	"github.com/aitic/ai-tic-backend/internal/entity"
	"github.com/aitic/ai-tic-backend/internal/repository"
)

const recordTimeout = 5 * time.Second

// Conn - the outbound fan-out primitive: one player's connection.
type Conn interface {
	Send(event any) error
}

type historyRecorder interface {
	Record(ctx context.Context, result repository.MatchResult) error
}

// Broker - the room table. Rooms are created on first join and discarded when
// the last player leaves. Join and Leave hold the broker lock through the
// seat change, so a room cannot be destroyed while a player is being seated;
// moves and relays take only the room's own mutex.
type Broker struct {
	logger   *slog.Logger
	recorder historyRecorder

	mu    sync.RWMutex
	rooms map[string]*room
}

func New(logger *slog.Logger, recorder historyRecorder) *Broker {
	return &Broker{
		logger:   logger.With("component", "broker"),
		recorder: recorder,
		rooms:    make(map[string]*room),
	}
}

// Join - admits the player into the room, creating it on first join. Returns
// the player with their assigned mark; rejects when the room is full or the
// requested mark is taken.
func (that *Broker) Join(roomID, playerID, requestedMark string, conn Conn) (entity.Player, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	current, ok := that.rooms[roomID]
	if !ok {
		current = newRoom(roomID)
		that.rooms[roomID] = current
	}

	player, err := current.join(entity.Player{ID: playerID}, requestedMark, conn)
	if err != nil {
		return entity.Player{}, fmt.Errorf("failed to join room %s: %w", roomID, err)
	}

	return player, nil
}

// Leave - removes the player; an empty room is discarded, it is not preserved
// for later rejoining.
func (that *Broker) Leave(roomID, playerID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	current, ok := that.rooms[roomID]
	if !ok {
		return
	}

	if empty := current.leave(playerID); empty {
		delete(that.rooms, roomID)
	}
}

// ApplyMove - writes the mark into the cell and broadcasts the new board, or
// game_over when the move ends the game. Rejects occupied cells, out-of-turn
// moves and moves before both seats are filled.
func (that *Broker) ApplyMove(roomID, mark string, cell int) error {
	current, err := that.room(roomID)
	if err != nil {
		return err
	}

	outcome, err := current.applyMove(mark, cell)

	if outcome.finished {
		that.recordResult(roomID, outcome)
	}

	if err != nil {
		return fmt.Errorf("failed to apply move in room %s: %w", roomID, err)
	}

	return nil
}

// Continue - relays a player's wish for a rematch, without board mutation.
func (that *Broker) Continue(roomID, mark string) error {
	current, err := that.room(roomID)
	if err != nil {
		return err
	}

	if err = current.relayContinue(mark); err != nil {
		return fmt.Errorf("failed to relay continue in room %s: %w", roomID, err)
	}

	return nil
}

// Exit - relays a player's announced departure, without board mutation.
func (that *Broker) Exit(roomID, mark string) error {
	current, err := that.room(roomID)
	if err != nil {
		return err
	}

	if err = current.relayExit(mark); err != nil {
		return fmt.Errorf("failed to relay exit in room %s: %w", roomID, err)
	}

	return nil
}

// Chat - broadcasts a chat message verbatim; no persistence, no moderation.
func (that *Broker) Chat(roomID, sender, text string) error {
	current, err := that.room(roomID)
	if err != nil {
		return err
	}

	if err = current.relayChat(sender, text); err != nil {
		return fmt.Errorf("failed to relay chat in room %s: %w", roomID, err)
	}

	return nil
}

func (that *Broker) room(roomID string) (*room, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	current, ok := that.rooms[roomID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, roomID)
	}

	return current, nil
}

// recordResult - fire-and-forget outcome notification; the broker never reads
// this data back.
func (that *Broker) recordResult(roomID string, outcome moveOutcome) {
	if that.recorder == nil {
		return
	}

	result := repository.MatchResult{
		Result:     outcome.winner,
		PlayerMark: entity.PlayerX,
		AIMark:     entity.PlayerO,
		MovesCount: outcome.moves,
		Duration:   outcome.duration,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		if err := that.recorder.Record(ctx, result); err != nil {
			that.logger.Error("failed to record match result", "room", roomID, "error", err)
		}
	}()
}
