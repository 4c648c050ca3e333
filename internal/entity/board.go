package entity

import "strings"

const (
	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "draw"

	EmptyCell = ""

	BoardSize = 9
)

// Room statuses. A finished game immediately resets to a fresh board with
// both seats kept, so a room is only ever waiting or ongoing.
const (
	StatusWaiting = "waiting"
	StatusOngoing = "ongoing"
)

// WinCombos - the 8 fixed winning lines: 3 rows, 3 columns, 2 diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board - a 3x3 grid in row-major order, each cell PlayerX, PlayerO or EmptyCell.
type Board [BoardSize]string

func NewBoard() Board {
	return Board{}
}

// CheckWinner - returns the mark owning a fully-matched line, or EmptyCell if
// no line matches. Lines are checked in the fixed WinCombos order, so on an
// illegal board where both marks have completed a line the first matched line
// wins the tie-break.
func (that Board) CheckWinner() string {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return EmptyCell
}

// IsFull - reports whether no empty cell remains.
func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// EmptyCells - returns the indices of all empty cells in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

// StateKey - canonical encoding of the board used as a learning-table key.
// Cells are joined with commas in board order; empty cells render as empty
// tokens, so an untouched board encodes as ",,,,,,,,".
func (that Board) StateKey() string {
	return strings.Join(that[:], ",")
}

// OppositeMark - returns the other player's mark.
func OppositeMark(mark string) string {
	if mark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
