package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/aitic/ai-tic-backend/internal/apperror"
	"github.com/aitic/ai-tic-backend/internal/entity"
)

type qTable interface {
	Get(ctx context.Context, state string, action int) (float64, error)
	Set(ctx context.Context, state string, action int, value float64) error
	MaxValue(ctx context.Context, state string) (float64, error)
}

// Learner - tabular one-step Q-learning over board states. The backing table
// is shared across all rooms and games, so everything learned in one match is
// available to every other.
type Learner struct {
	logger *slog.Logger
	qtable qTable

	alpha   float64 // learning rate
	gamma   float64 // discount factor
	epsilon float64 // exploration rate

	randMu sync.Mutex
	rnd    *rand.Rand
}

func NewLearner(logger *slog.Logger, qtable qTable, alpha, gamma, epsilon float64, rnd *rand.Rand) *Learner {
	return &Learner{
		logger:  logger,
		qtable:  qtable,
		alpha:   alpha,
		gamma:   gamma,
		epsilon: epsilon,
		rnd:     rnd,
	}
}

// ChooseAction - epsilon-greedy selection: with probability epsilon a uniform
// random empty cell, otherwise a random pick among the highest-valued empty
// cells. Returns ErrNoAvailableMoves on a full board.
func (that *Learner) ChooseAction(ctx context.Context, board entity.Board) (int, error) {
	return that.chooseAction(ctx, board, that.epsilon)
}

// ChooseBestAction - pure exploitation, used for hint generation. Ties between
// equally-valued actions still resolve randomly so unlearned states don't bias
// toward low indices.
func (that *Learner) ChooseBestAction(ctx context.Context, board entity.Board) (int, error) {
	return that.chooseAction(ctx, board, 0)
}

func (that *Learner) chooseAction(ctx context.Context, board entity.Board, epsilon float64) (int, error) {
	empty := board.EmptyCells()
	if len(empty) == 0 {
		return 0, apperror.ErrNoAvailableMoves
	}

	if epsilon > 0 && that.randFloat() < epsilon {
		return empty[that.randIntn(len(empty))], nil
	}

	state := board.StateKey()

	best := make([]int, 0, len(empty))
	var maxQ float64

	for i, action := range empty {
		value, err := that.qtable.Get(ctx, state, action)
		if err != nil {
			return 0, fmt.Errorf("failed to read q-value: %w", err)
		}

		switch {
		case i == 0 || value > maxQ:
			maxQ = value
			best = append(best[:0], action)
		case value == maxQ:
			best = append(best, action)
		}
	}

	return best[that.randIntn(len(best))], nil
}

// Update - one-step temporal-difference update:
// Q(s,a) += alpha * (reward + gamma * max Q(s') - Q(s,a)).
// The reward is supplied by the caller; the learner never derives it itself.
func (that *Learner) Update(ctx context.Context, prevBoard entity.Board, action int, reward float64, nextBoard entity.Board) error {
	prevState := prevBoard.StateKey()

	currentQ, err := that.qtable.Get(ctx, prevState, action)
	if err != nil {
		return fmt.Errorf("failed to read q-value: %w", err)
	}

	maxNextQ, err := that.qtable.MaxValue(ctx, nextBoard.StateKey())
	if err != nil {
		return fmt.Errorf("failed to read successor q-values: %w", err)
	}

	newQ := currentQ + that.alpha*(reward+that.gamma*maxNextQ-currentQ)

	if err = that.qtable.Set(ctx, prevState, action, newQ); err != nil {
		return fmt.Errorf("failed to store q-value: %w", err)
	}

	return nil
}

// Pretrain - offline exhaustive pass over all 3^9 raw board encodings,
// including boards unreachable by legal play; over-generation is cheap and
// harmless. Terminal boards get their raw reward for every empty action;
// non-terminal boards get the best stored value of the successor reached by
// placing aiMark. Cells are generated mark-first, so a successor (one empty
// cell replaced by a mark) always enumerates before its parent and a single
// pass back-fills values from terminal states upward.
func (that *Learner) Pretrain(ctx context.Context, aiMark, opponentMark string) error {
	log := that.logger.With("method", "Pretrain")

	var visited int

	var visit func(board entity.Board, cell int) error
	visit = func(board entity.Board, cell int) error {
		if cell == entity.BoardSize {
			visited++
			return that.pretrainBoard(ctx, board, aiMark, opponentMark)
		}

		for _, mark := range [3]string{entity.PlayerX, entity.PlayerO, entity.EmptyCell} {
			board[cell] = mark
			if err := visit(board, cell+1); err != nil {
				return err
			}
		}

		return nil
	}

	if err := visit(entity.Board{}, 0); err != nil {
		return fmt.Errorf("pretraining failed: %w", err)
	}

	log.Info("pretraining pass complete", "boards", visited)

	return nil
}

func (that *Learner) pretrainBoard(ctx context.Context, board entity.Board, aiMark, opponentMark string) error {
	empty := board.EmptyCells()
	if len(empty) == 0 {
		return nil
	}

	state := board.StateKey()
	reward, terminal := terminalReward(board, aiMark, opponentMark)

	for _, action := range empty {
		if terminal {
			if err := that.qtable.Set(ctx, state, action, reward); err != nil {
				return fmt.Errorf("failed to store terminal reward: %w", err)
			}
			continue
		}

		next := board
		next[action] = aiMark
		nextState := next.StateKey()

		var maxNextQ float64
		for _, nextAction := range next.EmptyCells() {
			value, err := that.qtable.Get(ctx, nextState, nextAction)
			if err != nil {
				return fmt.Errorf("failed to read successor q-value: %w", err)
			}
			if value > maxNextQ {
				maxNextQ = value
			}
		}

		if err := that.qtable.Set(ctx, state, action, maxNextQ); err != nil {
			return fmt.Errorf("failed to store q-value: %w", err)
		}
	}

	return nil
}

// terminalReward - the fixed payoff once a board is terminal: +1 for an
// aiMark win, -1 for an opponentMark win, 0 for a draw. The second return
// value is false while the game is still ongoing.
func terminalReward(board entity.Board, aiMark, opponentMark string) (float64, bool) {
	switch board.CheckWinner() {
	case aiMark:
		return 1, true
	case opponentMark:
		return -1, true
	}

	if board.IsFull() {
		return 0, true
	}

	return 0, false
}

func (that *Learner) randFloat() float64 {
	that.randMu.Lock()
	defer that.randMu.Unlock()
	return that.rnd.Float64()
}

func (that *Learner) randIntn(n int) int {
	that.randMu.Lock()
	defer that.randMu.Unlock()
	return that.rnd.Intn(n)
}
