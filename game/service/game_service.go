package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wricardo/dragons-aside/game/engine"
)

// ErrNoSelection is reported when rotating without a selected cell
var ErrNoSelection = errors.New("no cell selected")

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, seed int64) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	NewGame(ctx context.Context, sessionID string) (*ActionResult, error)
	Draw(ctx context.Context, sessionID string) (*ActionResult, error)
	RotateHand(ctx context.Context, sessionID string) (*ActionResult, error)
	Place(ctx context.Context, sessionID string, x, y int) (*ActionResult, error)
	Select(ctx context.Context, sessionID string, x, y int) (*ActionResult, error)
	Deselect(ctx context.Context, sessionID string) (*ActionResult, error)
	RotateSelected(ctx context.Context, sessionID string) (*ActionResult, error)

	// Game State
	GetState(ctx context.Context, sessionID string) (*engine.Snapshot, error)
	GetEvents(ctx context.Context, sessionID string, opts EventOptions) (*EventsResponse, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, seed int64) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, seed int64) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// Session represents an active game session. The engine is only touched while
// holding the session lock; the access time is read and written atomically.
type Session struct {
	ID        string
	Engine    *engine.GameEngine
	Seed      int64
	CreatedAt time.Time

	mu           sync.Mutex
	lastAccessed atomic.Int64 // UnixNano
}

// NewSession creates a session around a freshly dealt, seeded engine
func NewSession(id string, seed int64, eventLimit int) *Session {
	now := time.Now()
	s := &Session{
		ID:        id,
		Engine:    engine.NewGameEngine(engine.NewRandomSource(seed), engine.NewEventLog(eventLimit)),
		Seed:      seed,
		CreatedAt: now,
	}
	s.SetLastAccessed(now)
	return s
}

// LastAccessed returns when the session was last used
func (s *Session) LastAccessed() time.Time {
	return time.Unix(0, s.lastAccessed.Load())
}

// SetLastAccessed records t as the last use of the session
func (s *Session) SetLastAccessed(t time.Time) {
	s.lastAccessed.Store(t.UnixNano())
}

// Touch marks the session as used now
func (s *Session) Touch() {
	s.SetLastAccessed(time.Now())
}

// WithEngine runs fn while holding the session lock
func (s *Session) WithEngine(fn func(e *engine.GameEngine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.Engine)
}
