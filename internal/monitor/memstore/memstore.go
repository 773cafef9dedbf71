// Package memstore provides an in-memory implementation of monitor.Store.
package memstore

import (
	"context"
	"sync"

	"github.com/linnemanlabs/harken/internal/sound"
)

// Store holds alert events in memory. Suitable for dev/testing.
type Store struct {
	mu     sync.RWMutex
	events []*sound.Event
}

// New initializes a new in-memory Store.
func New() *Store {
	return &Store{}
}

// Append stores a copy of the event.
func (s *Store) Append(_ context.Context, ev *sound.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *ev
	s.events = append(s.events, &cp)
	return nil
}

// Recent returns up to limit events, newest first. Returns copies.
func (s *Store) Recent(_ context.Context, limit int) ([]*sound.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.events) {
		limit = len(s.events)
	}
	out := make([]*sound.Event, 0, limit)
	for i := len(s.events) - 1; i >= 0 && len(out) < limit; i-- {
		cp := *s.events[i]
		out = append(out, &cp)
	}
	return out, nil
}
