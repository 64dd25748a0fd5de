package session

import (
	"sync"

	chatmodel "github.com/zhouzirui/emovoice/backend/internal/model/chat"
)

// Registry tracks active sessions process-wide. It exists for counting
// and introspection only; session state itself is owned by each
// connection's goroutine.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*chatmodel.Session
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*chatmodel.Session)}
}

// Add registers a session handle.
func (r *Registry) Add(s *chatmodel.Session) {
	if s == nil || s.ID == "" {
		return
	}
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
}

// Remove deregisters a session. Safe to call multiple times.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Count returns the number of active sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Handles returns the active session handles.
func (r *Registry) Handles() []*chatmodel.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handles := make([]*chatmodel.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		handles = append(handles, s)
	}
	return handles
}
