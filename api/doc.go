// Package api provides the HTTP handlers for the Cookie & Milk board.
//
// Endpoints:
//
// Board Operations (text/plain):
//   - GET /12/board - Current board, plus status line once decided
//   - POST /12/reset - Reset the board, empty body
//   - GET /12/random-board - Deterministic random fill of the board
//   - POST /12/place/{team}/{column} - Drop a cookie or milk token
//
// Structured Views (JSON):
//   - GET /api/board - Board snapshot with capacities and status
//   - GET /health - Liveness, reports unhealthy once the board is poisoned
//
// Streaming:
//   - GET /ws - WebSocket feed of board updates
//
// Error Handling:
//
// Errors are returned as JSON with the status code chosen by category:
//
//	400 Bad Request          invalid team or column
//	503 Service Unavailable  column full or game over
//	500 Internal Server Error board lock poisoned
//
//	{"error": "validation error: invalid column: 7 not in [1,4]"}
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	server := api.NewServer(service.NewBoardService(), hub)
//	http.ListenAndServe(":8080", server)
package api
