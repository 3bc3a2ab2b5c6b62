// Package websocket provides WebSocket transport for the Cookie & Milk board.
//
// The websocket package implements:
//   - Real-time push of the board after every mutation
//   - Connection lifecycle management with ping/pong keepalive
//   - Per-client buffered send queues
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Register, unregister and broadcast requests all go
// through channels served by Hub.Run, so the client set is only touched by
// that goroutine. Each client runs a read pump and a write pump.
//
// Message Protocol:
//
// Outgoing messages are JSON:
//
//	{"event": "board_update", "board": "<rendered text>", "snapshot": {...}}
//
// Incoming messages are read only to keep the connection alive.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	http.HandleFunc("/ws", hub.ServeWS)
//	hub.BroadcastBoard(snapshot)
package websocket
