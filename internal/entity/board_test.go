package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_CheckWinner(t *testing.T) {
	t.Run("Returns winner for every winning line", func(t *testing.T) {
		// Given: each of the 8 winning lines filled with a single mark
		for _, combo := range WinCombos {
			board := NewBoard()
			for _, idx := range combo {
				board[idx] = PlayerX
			}

			// When: checking the winner
			winner := board.CheckWinner()

			// Then: it should return that mark
			assert.Equal(t, PlayerX, winner, "line %v", combo)
		}
	})

	t.Run("Returns empty on a full board with no winner", func(t *testing.T) {
		// Given: a full board where no line is owned by one mark
		board := Board{
			PlayerX, PlayerO, PlayerX,
			PlayerX, PlayerO, PlayerO,
			PlayerO, PlayerX, PlayerX,
		}

		// When: checking the winner
		winner := board.CheckWinner()

		// Then: no winner is reported and the board is full
		assert.Equal(t, EmptyCell, winner)
		assert.True(t, board.IsFull())
	})

	t.Run("Returns empty on an ongoing board", func(t *testing.T) {
		// Given: a partially filled board without a completed line
		board := Board{PlayerX, EmptyCell, PlayerO, EmptyCell, PlayerX, EmptyCell, EmptyCell, EmptyCell, EmptyCell}

		// When: checking the winner
		winner := board.CheckWinner()

		// Then: no winner is reported and the board is not full
		assert.Equal(t, EmptyCell, winner)
		assert.False(t, board.IsFull())
	})
}

func TestBoard_EmptyCells(t *testing.T) {
	t.Run("Returns all indices for a new board", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: listing empty cells
		cells := board.EmptyCells()

		// Then: all 9 indices come back in ascending order
		require.Len(t, cells, BoardSize)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, cells)
	})

	t.Run("Skips occupied cells", func(t *testing.T) {
		// Given: a board with two occupied cells
		board := NewBoard()
		board[0] = PlayerX
		board[4] = PlayerO

		// When: listing empty cells
		cells := board.EmptyCells()

		// Then: the occupied indices are absent
		assert.Equal(t, []int{1, 2, 3, 5, 6, 7, 8}, cells)
	})
}

func TestBoard_StateKey(t *testing.T) {
	t.Run("Encodes empty cells as empty tokens", func(t *testing.T) {
		// Given: a board with a few marks
		board := NewBoard()
		board[0] = PlayerX
		board[2] = PlayerO

		// When: encoding the state key
		key := board.StateKey()

		// Then: cells are comma-joined in board order
		assert.Equal(t, "X,,O,,,,,,", key)
	})

	t.Run("Identical boards encode identically", func(t *testing.T) {
		// Given: two boards with the same cell contents
		first := Board{PlayerX, EmptyCell, PlayerO, EmptyCell, PlayerX, EmptyCell, EmptyCell, EmptyCell, PlayerO}
		second := Board{PlayerX, EmptyCell, PlayerO, EmptyCell, PlayerX, EmptyCell, EmptyCell, EmptyCell, PlayerO}

		// When: encoding both
		// Then: the keys match
		assert.Equal(t, first.StateKey(), second.StateKey())
	})
}

func TestOppositeMark(t *testing.T) {
	assert.Equal(t, PlayerO, OppositeMark(PlayerX))
	assert.Equal(t, PlayerX, OppositeMark(PlayerO))
}
