package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/wricardo/dragons-aside/game/engine"
	"github.com/wricardo/dragons-aside/logging"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	log      logrus.FieldLogger
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, log logrus.FieldLogger) GameService {
	if log == nil {
		log = logging.Discard()
	}
	return &gameServiceImpl{
		sessions: sessions,
		log:      log,
	}
}

// CreateSession creates a new game session. A zero seed picks a random one.
func (s *gameServiceImpl) CreateSession(ctx context.Context, seed int64) (*SessionInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if seed == 0 {
		var err error
		if seed, err = engine.NewSeed(); err != nil {
			return nil, fmt.Errorf("failed to seed session: %w", err)
		}
	}

	// Let session manager generate a 4-character ID
	sess, err := s.sessions.Create("", seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.log.WithFields(logrus.Fields{"session": sess.ID, "seed": seed}).Info("session created")
	return sessionInfo(sess, true), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionInfo(sess, true), nil
}

// ListSessions returns all active sessions ordered by creation time
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess, false))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("session not found: %w", err)
	}
	s.log.WithField("session", sessionID).Info("session deleted")
	return nil
}

// NewGame deals a fresh game in an existing session
func (s *gameServiceImpl) NewGame(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.act(ctx, sessionID, "new_game", func(e *engine.GameEngine) (*engine.Tile, error) {
		e.NewGame()
		return nil, nil
	})
}

// Draw takes the next tile from the pile
func (s *gameServiceImpl) Draw(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.act(ctx, sessionID, "draw", func(e *engine.GameEngine) (*engine.Tile, error) {
		tile, err := e.DrawNext()
		if err != nil {
			return nil, err
		}
		return &tile, nil
	})
}

// RotateHand turns the held tile clockwise
func (s *gameServiceImpl) RotateHand(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.act(ctx, sessionID, "rotate_hand", func(e *engine.GameEngine) (*engine.Tile, error) {
		return nil, e.RotateHand()
	})
}

// Place puts the held tile on x,y
func (s *gameServiceImpl) Place(ctx context.Context, sessionID string, x, y int) (*ActionResult, error) {
	return s.act(ctx, sessionID, "place", func(e *engine.GameEngine) (*engine.Tile, error) {
		return nil, e.PlaceTile(x, y)
	})
}

// Select highlights a board cell
func (s *gameServiceImpl) Select(ctx context.Context, sessionID string, x, y int) (*ActionResult, error) {
	return s.act(ctx, sessionID, "select", func(e *engine.GameEngine) (*engine.Tile, error) {
		return nil, e.Select(x, y)
	})
}

// Deselect clears the board highlight
func (s *gameServiceImpl) Deselect(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.act(ctx, sessionID, "deselect", func(e *engine.GameEngine) (*engine.Tile, error) {
		e.Deselect()
		return nil, nil
	})
}

// RotateSelected rotates the selected board cell
func (s *gameServiceImpl) RotateSelected(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.act(ctx, sessionID, "rotate_selected", func(e *engine.GameEngine) (*engine.Tile, error) {
		if e.IsGameOver() {
			return nil, engine.ErrGameOver
		}
		if _, ok := e.Board().Selected(); !ok {
			return nil, ErrNoSelection
		}
		e.RotateSelected()
		return nil, nil
	})
}

// GetState returns a snapshot of the session's game
func (s *gameServiceImpl) GetState(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	var snap *engine.Snapshot
	sess.WithEngine(func(e *engine.GameEngine) {
		snap = e.Snapshot()
	})
	return snap, nil
}

// GetEvents returns a page of the session's event log
func (s *gameServiceImpl) GetEvents(ctx context.Context, sessionID string, opts EventOptions) (*EventsResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	var events []engine.Event
	resp := &EventsResponse{}
	sess.WithEngine(func(e *engine.GameEngine) {
		events = e.Events().Since(opts.Since)
		resp.LastSeq = e.Events().LastSeq()
		resp.Retained = e.Events().Len()
	})

	if opts.Order == "desc" {
		for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
			events[i], events[j] = events[j], events[i]
		}
	}
	if opts.Limit > 0 && len(events) > opts.Limit {
		events = events[:opts.Limit]
		resp.HasMore = true
	}
	if events == nil {
		events = []engine.Event{}
	}
	resp.Events = events
	return resp, nil
}

// act runs a single engine action under the session lock. Rule violations are
// reported in the result, not as an error.
func (s *gameServiceImpl) act(ctx context.Context, sessionID, action string, fn func(e *engine.GameEngine) (*engine.Tile, error)) (*ActionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	result := &ActionResult{Action: action}
	sess.WithEngine(func(e *engine.GameEngine) {
		before := e.Events().LastSeq()
		drawn, actErr := fn(e)

		result.Success = actErr == nil
		result.Drawn = drawn
		result.Events = e.Events().Since(before)
		result.Snapshot = e.Snapshot()

		switch {
		case actErr != nil:
			result.Message = actErr.Error()
		case len(result.Events) > 0:
			result.Message = result.Events[len(result.Events)-1].Message
		default:
			result.Message = "OK"
		}

		entry := s.log.WithFields(logrus.Fields{
			"session": sess.ID,
			"action":  action,
			"phase":   e.Phase(),
		})
		if actErr != nil {
			entry.WithError(actErr).Debug("action rejected")
		} else {
			entry.Debug("action applied")
		}
	})
	return result, nil
}

// session looks up a session and marks it accessed
func (s *gameServiceImpl) session(sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	_ = s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

func sessionInfo(sess *Session, withState bool) *SessionInfo {
	info := &SessionInfo{
		ID:             sess.ID,
		Seed:           sess.Seed,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessed(),
	}
	sess.WithEngine(func(e *engine.GameEngine) {
		info.GameID = e.GameID()
		info.Phase = e.Phase()
		if withState {
			info.State = e.Snapshot()
		}
	})
	return info
}
