package engine

import "time"

// EventType classifies entries in the event log
type EventType string

const (
	EventNewGame            EventType = "new_game"
	EventDraw               EventType = "draw"
	EventPlace              EventType = "place"
	EventRotate             EventType = "rotate"
	EventEquipmentCollected EventType = "equipment_collected"
	EventDragonLanded       EventType = "dragon_landed"
	EventDragonRepelled     EventType = "dragon_repelled"
	EventDragonDiscarded    EventType = "dragon_discarded"
	EventPileExhausted      EventType = "pile_exhausted"
	EventVictory            EventType = "victory"
)

// Event is a single entry in a game's event log
type Event struct {
	Seq       int       `json:"seq"`
	GameID    string    `json:"game_id"`
	Type      EventType `json:"type"`
	Message   string    `json:"message"`
	Position  *Position `json:"position,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// EventLog is a bounded, owned record of game events. Once full, the oldest
// entries are dropped.
type EventLog struct {
	limit   int
	nextSeq int
	events  []Event
	now     func() time.Time
}

// NewEventLog creates a log keeping at most limit entries (EventLogLimit when limit <= 0)
func NewEventLog(limit int) *EventLog {
	if limit <= 0 {
		limit = EventLogLimit
	}
	return &EventLog{limit: limit, nextSeq: 1, now: time.Now}
}

// Append records an event and returns it with its sequence number assigned
func (l *EventLog) Append(e Event) Event {
	e.Seq = l.nextSeq
	l.nextSeq++
	if e.Timestamp.IsZero() {
		e.Timestamp = l.now()
	}
	l.events = append(l.events, e)
	if len(l.events) > l.limit {
		l.events = l.events[len(l.events)-l.limit:]
	}
	return e
}

// Events returns a copy of the retained events, oldest first
func (l *EventLog) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Since returns the retained events with a sequence number greater than seq
func (l *EventLog) Since(seq int) []Event {
	var out []Event
	for _, e := range l.events {
		if e.Seq > seq {
			out = append(out, e)
		}
	}
	return out
}

// LastSeq returns the sequence number of the most recent event, or 0
func (l *EventLog) LastSeq() int {
	return l.nextSeq - 1
}

// Len returns the number of retained events
func (l *EventLog) Len() int {
	return len(l.events)
}
