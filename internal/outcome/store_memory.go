package outcome

import (
	"context"
	"sync"
)

// InMemoryStore accumulates events for tests and development.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

// NewInMemoryStore constructs an empty in-memory event store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *InMemoryStore) ListByChat(_ context.Context, chatID int64) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Event
	for _, e := range s.events {
		if e.ChatID == chatID {
			out = append(out, e)
		}
	}
	return out, nil
}
