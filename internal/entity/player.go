package entity

// Player - a room-scoped identity: a connection plus its assigned mark.
type Player struct {
	ID   string `json:"id"`
	Mark string `json:"mark,omitempty"`
}
