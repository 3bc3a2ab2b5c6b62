package service

import (
	"context"
	"errors"
	"fmt"
)

// BoardService defines all board operations exposed to the transport layers
type BoardService interface {
	// Render returns the board text plus the status line once decided
	Render(ctx context.Context) (string, error)

	// Reset restores the empty board, full columns and the generator seed
	Reset(ctx context.Context) error

	// Randomize fills the interior from the seeded generator
	Randomize(ctx context.Context) (string, error)

	// Place drops a token for team ("cookie" or "milk") into a 1-based column
	Place(ctx context.Context, team string, column int) (string, error)

	// Snapshot returns a structured view of the board
	Snapshot(ctx context.Context) (*BoardSnapshot, error)
}

var (
	// ErrConcurrency is the category for lock failures
	ErrConcurrency = errors.New("concurrency error")

	// ErrLockPoisoned means an earlier write panicked while holding the lock
	ErrLockPoisoned = fmt.Errorf("%w: lock poisoned", ErrConcurrency)
)
