package engine

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by Place wraps exactly one of them.
var (
	// ErrValidation means the caller supplied a value outside the accepted domain
	ErrValidation = errors.New("validation error")

	// ErrState means the move is well-formed but the board cannot accept it now
	ErrState = errors.New("state error")
)

var (
	ErrInvalidTeam   = fmt.Errorf("%w: invalid team", ErrValidation)
	ErrInvalidColumn = fmt.Errorf("%w: invalid column", ErrValidation)
	ErrColumnFull    = fmt.Errorf("%w: column full", ErrState)
	ErrGameOver      = fmt.Errorf("%w: game over", ErrState)
)
