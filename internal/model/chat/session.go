package chat

import "time"

// MaxHistory bounds the rolling conversation history per session.
const MaxHistory = 10

// State tracks a connection through its lifecycle.
type State int

const (
	StateConnecting State = iota
	StateOpen
	StateReceiving
	StateProcessing
	StateClosing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateReceiving:
		return "receiving"
	case StateProcessing:
		return "processing"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Session captures per-connection state. It is owned by the goroutine
// handling that connection and is never shared across sessions, so it
// carries no locking.
type Session struct {
	ID         string
	History    []Turn
	State      State
	LastActive time.Time
}

// NewSession creates a session in the connecting state.
func NewSession(id string) *Session {
	return &Session{
		ID:         id,
		History:    make([]Turn, 0, MaxHistory),
		State:      StateConnecting,
		LastActive: time.Now().UTC(),
	}
}

// AppendTurn adds a turn to the history, evicting the oldest entry
// once the history exceeds MaxHistory.
func (s *Session) AppendTurn(t Turn) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	s.History = append(s.History, t)
	if len(s.History) > MaxHistory {
		s.History = s.History[len(s.History)-MaxHistory:]
	}
}

// Touch records inbound activity.
func (s *Session) Touch() {
	s.LastActive = time.Now().UTC()
}
