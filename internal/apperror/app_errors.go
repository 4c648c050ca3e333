package apperror

import "errors"

var (
	ErrRoomFull         = errors.New("room already has two players")
	ErrRoomNotFound     = errors.New("room not found")
	ErrMarkTaken        = errors.New("requested mark is already taken")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrInvalidBoard     = errors.New("invalid board")
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrHintLimitReached = errors.New("daily hint limit reached")
)
