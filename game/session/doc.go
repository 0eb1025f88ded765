// Package session provides session management for Dragons Aside.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the in-memory session store. Each service.Session wraps one
// engine.GameEngine dealt from its own seed, plus creation and last access
// times. Games are not persisted; a restart starts from nothing.
//
// Session Identifiers:
//
// Generated IDs are 4 hex characters from crypto/rand, redrawn on collision.
// Callers may also pick their own IDs (letters, digits, '-' and '_'). Lookups
// are case-insensitive.
//
// Usage:
//
//	manager := session.NewManager(logger, 0)
//
//	sess, err := manager.Create("", seed)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sessionID)
//
// Cleanup:
//
// CleanupExpiredSessions drops sessions idle longer than a given age.
// RunCleanup does so on a ticker until its context is cancelled.
package session
