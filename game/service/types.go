package service

import (
	"time"

	"github.com/wricardo/dragons-aside/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string           `json:"id"`
	Seed           int64            `json:"seed"`
	GameID         string           `json:"game_id"`
	Phase          engine.Phase     `json:"phase"`
	CreatedAt      time.Time        `json:"created_at"`
	LastAccessedAt time.Time        `json:"last_accessed_at"`
	State          *engine.Snapshot `json:"state,omitempty"`
}

// ActionResult contains the outcome of a single player action. Events holds
// only the entries that action appended to the log.
type ActionResult struct {
	Success  bool             `json:"success"`
	Action   string           `json:"action"`
	Message  string           `json:"message"`
	Drawn    *engine.Tile     `json:"drawn,omitempty"`
	Snapshot *engine.Snapshot `json:"state"`
	Events   []engine.Event   `json:"events,omitempty"`
}

// EventOptions configures event log retrieval
type EventOptions struct {
	Since int    `json:"since"` // return events with Seq > Since
	Limit int    `json:"limit"` // 0 means everything retained
	Order string `json:"order"` // "asc" or "desc"
}

// EventsResponse contains a page of the event log
type EventsResponse struct {
	Events   []engine.Event `json:"events"`
	LastSeq  int            `json:"last_seq"`
	Retained int            `json:"retained"`
	HasMore  bool           `json:"has_more"`
}
