package broker

import (
	"errors"
	"sync"
	"time"

	"github.com/aitic/ai-tic-backend/internal/apperror"
	"github.com/aitic/ai-tic-backend/internal/entity"
)

// seat - one occupied side of a room: the player identity plus the outbound
// connection events are fanned out to.
type seat struct {
	player entity.Player
	conn   Conn
}

// room - exclusive owner of one match's board and seat list. Every mutating
// operation runs under the room's own mutex, so unrelated rooms never block
// each other.
type room struct {
	id string

	mu        sync.Mutex
	board     entity.Board
	status    string
	turn      string
	seats     []*seat
	moves     int
	startedAt time.Time
}

func newRoom(id string) *room {
	return &room{
		id:     id,
		board:  entity.NewBoard(),
		status: entity.StatusWaiting,
		turn:   entity.PlayerX,
	}
}

// join - admits a player, honoring a requested mark when free. Auto-assign
// hands X to the first joiner and O to the second. Both rejection cases
// (room full, mark taken) emit no event.
func (that *room) join(player entity.Player, requestedMark string, conn Conn) (entity.Player, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.seats) >= 2 {
		return entity.Player{}, apperror.ErrRoomFull
	}

	mark := requestedMark
	if mark != entity.PlayerX && mark != entity.PlayerO {
		mark = entity.EmptyCell
	}

	if mark != entity.EmptyCell {
		for _, st := range that.seats {
			if st.player.Mark == mark {
				return entity.Player{}, apperror.ErrMarkTaken
			}
		}
	} else {
		mark = entity.PlayerX
		for _, st := range that.seats {
			if st.player.Mark == entity.PlayerX {
				mark = entity.PlayerO
			}
		}
	}

	player.Mark = mark
	that.seats = append(that.seats, &seat{player: player, conn: conn})

	if len(that.seats) == 2 {
		that.status = entity.StatusOngoing
		that.startedAt = time.Now()
	}

	// every current member learns their own symbol and whether both seats
	// are now filled
	var errs []error
	opponentJoined := len(that.seats) == 2
	for _, st := range that.seats {
		if err := st.conn.Send(PlayerInfoEvent{
			Type:           EventPlayerInfo,
			Symbol:         st.player.Mark,
			OpponentJoined: opponentJoined,
		}); err != nil {
			errs = append(errs, err)
		}
	}

	return player, errors.Join(errs...)
}

// leave - removes the player's seat. Reports whether the room is now empty
// and should be discarded.
func (that *room) leave(playerID string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	seats := that.seats[:0]
	for _, st := range that.seats {
		if st.player.ID != playerID {
			seats = append(seats, st)
		}
	}
	that.seats = seats

	if len(that.seats) < 2 && that.status == entity.StatusOngoing {
		that.status = entity.StatusWaiting
	}

	return len(that.seats) == 0
}

type moveOutcome struct {
	finished bool
	winner   string
	moves    int
	duration time.Duration
}

// applyMove - validates and applies one move, then broadcasts either
// update_board or game_over. On game over the room resets to a fresh board so
// the same pair can play again without rejoining.
func (that *room) applyMove(mark string, cell int) (moveOutcome, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if cell < 0 || cell >= entity.BoardSize {
		return moveOutcome{}, apperror.ErrInvalidCell
	}

	if that.status != entity.StatusOngoing {
		return moveOutcome{}, apperror.ErrGameIsNotStarted
	}

	if that.turn != mark {
		return moveOutcome{}, apperror.ErrNotYourTurn
	}

	if that.board[cell] != entity.EmptyCell {
		return moveOutcome{}, apperror.ErrCellOccupied
	}

	that.board[cell] = mark
	that.moves++

	winner := that.board.CheckWinner()
	if winner == entity.EmptyCell && !that.board.IsFull() {
		that.turn = entity.OppositeMark(mark)
		return moveOutcome{}, that.broadcast(UpdateBoardEvent{
			Type:   EventUpdateBoard,
			Board:  that.board,
			Player: mark,
		})
	}

	if winner == entity.EmptyCell {
		winner = entity.PlayerTie
	}

	outcome := moveOutcome{
		finished: true,
		winner:   winner,
		moves:    that.moves,
		duration: time.Since(that.startedAt),
	}

	err := that.broadcast(GameOverEvent{
		Type:   EventGameOver,
		Winner: winner,
		Board:  that.board,
	})

	// fresh board for a rematch; continue/exit stay pure relays
	that.board = entity.NewBoard()
	that.turn = entity.PlayerX
	that.moves = 0
	that.startedAt = time.Now()

	return outcome, err
}

func (that *room) relayContinue(mark string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.broadcast(PlayerContinueEvent{Type: EventPlayerContinue, Player: mark})
}

func (that *room) relayExit(mark string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.broadcast(PlayerExitEvent{Type: EventPlayerExit, Player: mark})
}

func (that *room) relayChat(sender, text string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.broadcast(ChatEvent{
		Type:    EventChat,
		Message: ChatMessage{Player: sender, Text: text},
	})
}

// broadcast - sends the event to every seat. Callers hold the room mutex, so
// events reach each member in the order the room applied them.
func (that *room) broadcast(event any) error {
	var errs []error
	for _, st := range that.seats {
		if err := st.conn.Send(event); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
