package broker

import "github.com/aitic/ai-tic-backend/internal/entity"

// Event type names are the wire protocol contract with connected clients and
// must not change.
const (
	EventPlayerInfo     = "player_info"
	EventUpdateBoard    = "update_board"
	EventGameOver       = "game_over"
	EventPlayerContinue = "player_continue"
	EventPlayerExit     = "player_exit"
	EventChat           = "chat"
)

type PlayerInfoEvent struct {
	Type           string `json:"type"`
	Symbol         string `json:"symbol"`
	OpponentJoined bool   `json:"opponent_joined"`
}

type UpdateBoardEvent struct {
	Type   string       `json:"type"`
	Board  entity.Board `json:"board"`
	Player string       `json:"player"`
}

type GameOverEvent struct {
	Type   string       `json:"type"`
	Winner string       `json:"winner"`
	Board  entity.Board `json:"board"`
}

type PlayerContinueEvent struct {
	Type   string `json:"type"`
	Player string `json:"player"`
}

type PlayerExitEvent struct {
	Type   string `json:"type"`
	Player string `json:"player"`
}

type ChatMessage struct {
	Player string `json:"player"`
	Text   string `json:"text"`
}

type ChatEvent struct {
	Type    string      `json:"type"`
	Message ChatMessage `json:"message"`
}
