package entrance

import (
	"context"
	"sync"

	pkgerrors "github.com/btx638/policr-mini/pkg/errors"
)

// InMemoryMessageIDStore keeps the chat → message id mapping in a map.
type InMemoryMessageIDStore struct {
	mu  sync.RWMutex
	ids map[int64]int64
}

// NewInMemoryMessageIDStore constructs an empty in-memory message id store.
func NewInMemoryMessageIDStore() *InMemoryMessageIDStore {
	return &InMemoryMessageIDStore{ids: make(map[int64]int64)}
}

func (s *InMemoryMessageIDStore) Get(_ context.Context, chatID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.ids[chatID]
	if !ok {
		return 0, pkgerrors.Newf(pkgerrors.CodeNotFound, "no entrance message for chat %d", chatID)
	}
	return id, nil
}

func (s *InMemoryMessageIDStore) Set(_ context.Context, chatID, messageID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[chatID] = messageID
	return nil
}

func (s *InMemoryMessageIDStore) Delete(_ context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, chatID)
	return nil
}
