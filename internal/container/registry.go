package container

import (
	"sync"
	"time"
)

// Registry records when each container was started. Entries are never
// removed.
type Registry struct {
	mu      sync.RWMutex
	started map[string]time.Time
}

func NewRegistry() *Registry {
	return &Registry{started: make(map[string]time.Time)}
}

// Register records the start instant of id. A later registration of the
// same id replaces the earlier one.
func (r *Registry) Register(id string, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started[id] = at
}

// StartedAt returns the recorded start instant of id.
func (r *Registry) StartedAt(id string) (time.Time, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	at, ok := r.started[id]
	return at, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.started)
}
