package service

import (
	"sync"

	"github.com/aitic/ai-tic-backend/internal/entity"
)

// Scores - advisory win/draw counters. Not authoritative game state; the
// match history recorder is the durable record of outcomes.
type Scores struct {
	X    int `json:"X"`
	O    int `json:"O"`
	Draw int `json:"draw"`
}

// ScoreBoard - explicit cross-game tally owned by the AI gameplay surface.
type ScoreBoard struct {
	mu     sync.Mutex
	scores Scores
}

func NewScoreBoard() *ScoreBoard {
	return &ScoreBoard{}
}

// Add - counts one finished game for the given winner mark, or a draw for
// entity.PlayerTie.
func (that *ScoreBoard) Add(winner string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	switch winner {
	case entity.PlayerX:
		that.scores.X++
	case entity.PlayerO:
		that.scores.O++
	case entity.PlayerTie:
		that.scores.Draw++
	}
}

func (that *ScoreBoard) Snapshot() Scores {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.scores
}
