package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/wricardo/mcp-training/cookieboard/game/engine"
)

// boardServiceImpl implements the BoardService interface
type boardServiceImpl struct {
	board    *engine.Board
	poisoned bool
	mu       sync.RWMutex
}

// NewBoardService creates a service owning a freshly reset board
func NewBoardService() BoardService {
	return &boardServiceImpl{
		board: engine.NewBoard(),
	}
}

// Render returns the current board text
func (s *boardServiceImpl) Render(ctx context.Context) (string, error) {
	var text string
	err := s.read(func(b *engine.Board) {
		text = b.Render()
	})
	return text, err
}

// Snapshot returns a structured copy of the board state
func (s *boardServiceImpl) Snapshot(ctx context.Context) (*BoardSnapshot, error) {
	var snap *BoardSnapshot
	err := s.read(func(b *engine.Board) {
		snap = snapshotOf(b)
	})
	return snap, err
}

// Reset restores the canonical empty board
func (s *boardServiceImpl) Reset(ctx context.Context) error {
	return s.write(func(b *engine.Board) error {
		b.Reset()
		return nil
	})
}

// Randomize fills the board from the seeded generator
func (s *boardServiceImpl) Randomize(ctx context.Context) (string, error) {
	var text string
	err := s.write(func(b *engine.Board) error {
		text = b.Randomize()
		return nil
	})
	return text, err
}

// Place validates the team name and applies a single move
func (s *boardServiceImpl) Place(ctx context.Context, team string, column int) (string, error) {
	var text string
	err := s.write(func(b *engine.Board) error {
		token, err := engine.ParseTeam(team)
		if err != nil {
			return err
		}
		text, err = b.Place(token, column)
		return err
	})
	return text, err
}

// read runs fn under the shared lock
func (s *boardServiceImpl) read(fn func(b *engine.Board)) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.poisoned {
		return ErrLockPoisoned
	}
	fn(s.board)
	return nil
}

// write runs fn under the exclusive lock. A panic inside fn poisons the
// service; the deferred recover runs before the unlock.
func (s *boardServiceImpl) write(fn func(b *engine.Board) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.poisoned {
		return ErrLockPoisoned
	}

	defer func() {
		if r := recover(); r != nil {
			s.poisoned = true
			log.Printf("Board lock poisoned by panic: %v", r)
			err = fmt.Errorf("%w: %v", ErrLockPoisoned, r)
		}
	}()

	return fn(s.board)
}

// snapshotOf copies the board into a BoardSnapshot
func snapshotOf(b *engine.Board) *BoardSnapshot {
	status := b.Status()
	snap := &BoardSnapshot{
		Rows:     b.RenderRows(),
		Capacity: b.Capacities(),
		Status:   status.Outcome.String(),
		Message:  status.Line(),
		Moves:    b.Moves(),
		Text:     b.Render(),
	}
	if status.Outcome == engine.Won {
		snap.Winner = status.Winner.String()
	}
	return snap
}
