package websocket

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

var errConnectionClosed = errors.New("connection is closed")

const sendBufferSize = 16

// connection - one player's socket plus its outbound queue. All writes go
// through a single pump goroutine, so events reach the client in the order the
// broker sent them.
type connection struct {
	socket *websocket.Conn

	sendCh chan any

	closeOnce sync.Once
	done      chan struct{}
}

func newConnection(socket *websocket.Conn) *connection {
	return &connection{
		socket: socket,
		sendCh: make(chan any, sendBufferSize),
		done:   make(chan struct{}),
	}
}

// Send - queues an event for delivery. Implements broker.Conn.
func (that *connection) Send(event any) error {
	select {
	case <-that.done:
		return errConnectionClosed
	case that.sendCh <- event:
		return nil
	}
}

// writePump - drains the outbound queue onto the socket until the connection
// closes.
func (that *connection) writePump() {
	for {
		select {
		case <-that.done:
			return
		case event := <-that.sendCh:
			if err := that.socket.WriteJSON(event); err != nil {
				that.close()
				return
			}
		}
	}
}

func (that *connection) close() {
	that.closeOnce.Do(func() {
		close(that.done)
		_ = that.socket.Close()
	})
}
