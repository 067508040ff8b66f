package chat

import (
	"context"
	"sync"

	pkgerrors "github.com/btx638/policr-mini/pkg/errors"
)

// InMemoryStore holds chat records for tests and single-node development.
type InMemoryStore struct {
	mu    sync.RWMutex
	chats map[int64]*Chat
}

// NewInMemoryStore constructs an empty in-memory chat store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{chats: make(map[int64]*Chat)}
}

func (s *InMemoryStore) GetByID(_ context.Context, chatID int64) (*Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.chats[chatID]
	if !ok {
		return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "chat %d not found", chatID)
	}
	copied := *c
	return &copied, nil
}

// Put inserts or replaces a chat record. Test seam; production chats come from
// the administrative surface.
func (s *InMemoryStore) Put(c *Chat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *c
	s.chats[c.ID] = &copied
}
