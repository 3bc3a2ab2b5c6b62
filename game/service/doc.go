// Package service provides the business logic layer for the Cookie & Milk board.
//
// The service package implements:
//   - Ownership of the single board instance
//   - Reader-writer locking around every board operation
//   - Lock poisoning when a write panics mid-mutation
//   - JSON-friendly snapshots for the transport layers
//
// Core Interfaces:
//
// BoardService is the façade used by the HTTP, WebSocket and MCP
// layers. Render and Snapshot share a read lock; Reset, Randomize and Place
// take the write lock for the whole operation, so no caller ever observes a
// half-applied move.
//
// Usage:
//
//	boardService := service.NewBoardService()
//
//	text, err := boardService.Place(ctx, "cookie", 1)
//	switch {
//	case errors.Is(err, engine.ErrValidation):
//		// bad input
//	case errors.Is(err, engine.ErrState):
//		// board not accepting moves
//	case errors.Is(err, service.ErrConcurrency):
//		// engine corrupted, restart required
//	}
//
// Poisoning:
//
// A panic while the write lock is held is recovered and converted into
// ErrLockPoisoned. From then on every operation, reads included, returns
// ErrLockPoisoned until the process is restarted.
package service
