package websocket

import (
	"fmt"

	"github.com/aitic/ai-tic-backend/internal/broker"
	"github.com/mitchellh/mapstructure"
)

// Inbound client actions. Names are part of the wire protocol.
const (
	actionMove     = "move"
	actionContinue = "continue"
	actionExit     = "exit"
	actionChat     = "chat"
)

type movePayload struct {
	Board  []string `mapstructure:"board"`
	Player string   `mapstructure:"player"`
	Move   int      `mapstructure:"move"`
}

type chatPayload struct {
	Message broker.ChatMessage `mapstructure:"message"`
}

// decodePayload - maps the loosely-typed inbound envelope onto the action's
// payload struct.
func decodePayload(raw map[string]any, target any) error {
	if err := mapstructure.Decode(raw, target); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}

	return nil
}

type errorResponse struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func newErrorResponse(message string) errorResponse {
	return errorResponse{Type: "error", Error: message}
}
