// Package mcp provides the Model Context Protocol server for Dragons Aside.
//
// The mcp package implements:
//   - MCP tool definitions for every game action and query
//   - A default session so agents can play without passing session IDs
//   - Text rendering of results via the view package
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - new_session: Create a session (optional seed) and make it the default
//   - list_sessions: List all active sessions
//   - game_state: Board, status and hand as text or JSON
//   - draw_tile: Draw the next tile
//   - rotate_hand: Rotate the held tile clockwise
//   - place_tile: Place the held tile at x,y
//   - select_cell: Highlight a cell
//   - rotate_selected: Rotate the highlighted cell
//   - new_game: Deal a fresh game in the session
//   - game_events: Page through the event log
//   - game_instructions: Rules and legend
//
// Transport:
//
// Tools run in-process against a service.GameService and are served over
// stdio with ServeStdio.
//
// Usage:
//
//	srv := mcp.NewServer("dragons-aside", gameService, logger)
//	if err := srv.ServeStdio(); err != nil {
//		log.Fatal(err)
//	}
//
// Rule violations (placing on an occupied cell, drawing with a full hand) are
// returned as tool errors with the current board attached, never as protocol
// errors.
package mcp
