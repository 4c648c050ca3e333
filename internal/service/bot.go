package service

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/aitic/ai-tic-backend/internal/apperror"
	"github.com/aitic/ai-tic-backend/internal/engine"
	"github.com/aitic/ai-tic-backend/internal/entity"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// mediumEngineChance - how often the medium bot plays the engine's move
// instead of a random one.
const mediumEngineChance = 0.5

type BotService interface {
	ChooseMove(board entity.Board, botMark, difficulty string) (int, error)
}

// botService - the difficulty policy layered on top of the search engine.
// The engine itself is difficulty-agnostic: easy ignores it entirely, medium
// consults it half the time, hard always plays it.
type botService struct {
	randMu sync.Mutex
	rnd    *rand.Rand
}

func NewBotService(rnd *rand.Rand) BotService {
	return &botService{
		rnd: rnd,
	}
}

func (that *botService) ChooseMove(board entity.Board, botMark, difficulty string) (int, error) {
	empty := board.EmptyCells()
	if len(empty) == 0 {
		return 0, apperror.ErrNoAvailableMoves
	}

	switch difficulty {
	case DifficultyEasy:
		return empty[that.randIntn(len(empty))], nil
	case DifficultyMedium:
		if that.randFloat() < mediumEngineChance {
			return empty[that.randIntn(len(empty))], nil
		}
	case DifficultyHard:
	default:
		return 0, fmt.Errorf("unknown difficulty %q", difficulty)
	}

	move, ok := engine.BestMove(board, botMark, entity.OppositeMark(botMark))
	if !ok {
		return 0, apperror.ErrNoAvailableMoves
	}

	return move, nil
}

func (that *botService) randIntn(n int) int {
	that.randMu.Lock()
	defer that.randMu.Unlock()
	return that.rnd.Intn(n)
}

func (that *botService) randFloat() float64 {
	that.randMu.Lock()
	defer that.randMu.Unlock()
	return that.rnd.Float64()
}
