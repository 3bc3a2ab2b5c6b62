// Package mcp provides a Model Context Protocol server for the Cookie & Milk board.
//
// MCP Tools:
//   - show_board: Current board text
//   - reset_board: Reset to the empty board
//   - randomize_board: Deterministic random fill
//   - place_token: Drop a cookie or milk token into a column
//   - board_snapshot: Capacities, status and move count
//   - board_rules: Rules and glyph legend
//
// The server is a thin client: every tool proxies to the HTTP API, so the
// same board is shared with REST and WebSocket users.
//
// Transport Modes:
//   - Stdio: server.ServeStdio(client.GetMCPServer())
//   - HTTP: the /mcp endpoint feeds request bodies to HandleMessage
package mcp
