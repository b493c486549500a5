package apperror

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrIllegalMove     = errors.New("illegal move")
	ErrGameFinished    = errors.New("game is already finished")
	ErrGamePaused      = errors.New("game is paused")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrNothingToUndo   = errors.New("nothing to undo")
	ErrNoHint          = errors.New("no move to suggest")
	ErrUnknownGame     = errors.New("unknown game kind")
	ErrUnknownMode     = errors.New("unknown game mode")
	ErrInvalidSide     = errors.New("invalid side")
)
