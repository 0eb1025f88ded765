// Package service provides the business logic layer for Dragons Aside.
//
// The service package implements:
//   - Multi-session game management
//   - Turn actions (draw, rotate, place, select)
//   - Event log paging
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
//
// Architecture:
//
// The service layer sits between the transport layer (terminal REPL and MCP)
// and the game engine. Each session owns its own engine and random source and
// is locked independently, so sessions never block each other.
//
// Usage:
//
//	sessionMgr := session.NewManager(logger)
//	gameService := service.NewGameService(sessionMgr, logger)
//
//	info, err := gameService.CreateSession(ctx, 42)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Draw(ctx, info.ID)
//
// Rule violations such as placing on an occupied cell come back as an
// ActionResult with Success false. Errors are returned only for unknown
// sessions and cancelled contexts.
package service
