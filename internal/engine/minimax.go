// Package engine implements exhaustive adversarial search over a tic-tac-toe
// board. The search is pure and stateless: every call works on its own copy of
// the board, so concurrent searches never observe each other's scratch moves.
package engine

import "github.com/aitic/ai-tic-backend/internal/entity"

const (
	winScore  = 1
	loseScore = -1
	drawScore = 0
)

// BestMove - returns the empty cell index with the highest minimax value for
// aiMark, assuming opponentMark replies optimally. Ties resolve to the lowest
// index. The second return value is false only when the board has no empty
// cell.
func BestMove(board entity.Board, aiMark, opponentMark string) (int, bool) {
	bestScore := loseScore - 1
	move := -1

	for i := range board {
		if board[i] != entity.EmptyCell {
			continue
		}

		board[i] = aiMark
		score := minimax(board, false, aiMark, opponentMark)
		board[i] = entity.EmptyCell

		if score > bestScore {
			bestScore = score
			move = i
		}
	}

	if move < 0 {
		return 0, false
	}

	return move, true
}

// minimax - full-depth search, no pruning. The board fits in 9 plies so the
// whole tree is cheap to expand.
func minimax(board entity.Board, isMaximizing bool, aiMark, opponentMark string) int {
	switch board.CheckWinner() {
	case aiMark:
		return winScore
	case opponentMark:
		return loseScore
	}

	if board.IsFull() {
		return drawScore
	}

	if isMaximizing {
		bestScore := loseScore - 1
		for i := range board {
			if board[i] != entity.EmptyCell {
				continue
			}

			board[i] = aiMark
			if score := minimax(board, false, aiMark, opponentMark); score > bestScore {
				bestScore = score
			}
			board[i] = entity.EmptyCell
		}

		return bestScore
	}

	bestScore := winScore + 1
	for i := range board {
		if board[i] != entity.EmptyCell {
			continue
		}

		board[i] = opponentMark
		if score := minimax(board, true, aiMark, opponentMark); score < bestScore {
			bestScore = score
		}
		board[i] = entity.EmptyCell
	}

	return bestScore
}
