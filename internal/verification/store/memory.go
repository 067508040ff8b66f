package store

import (
	"context"
	"sync"

	"github.com/btx638/policr-mini/internal/verification/models"
	pkgerrors "github.com/btx638/policr-mini/pkg/errors"
)

// InMemoryStore keeps verifications in a map. Used by tests and single-node
// development runs.
type InMemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]*models.Verification
}

// NewInMemory constructs an empty in-memory verification store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{nextID: 1, items: make(map[int64]*models.Verification)}
}

func (s *InMemoryStore) Create(_ context.Context, v *models.Verification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v.ID == 0 {
		v.ID = s.nextID
		s.nextID++
	} else if v.ID >= s.nextID {
		s.nextID = v.ID + 1
	}
	if v.Status == "" {
		v.Status = models.StatusWaiting
	}
	copied := cloneVerification(v)
	s.items[v.ID] = copied
	return nil
}

func (s *InMemoryStore) GetByID(_ context.Context, id int64) (*models.Verification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[id]
	if !ok {
		return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "verification %d not found", id)
	}
	return cloneVerification(v), nil
}

func (s *InMemoryStore) UpdateStatus(_ context.Context, id int64, status models.Status) error {
	if !status.Valid() {
		return pkgerrors.Newf(pkgerrors.CodePersistence, "invalid status %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.items[id]
	if !ok {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "verification %d not found", id)
	}
	if v.Status.Terminal() && v.Status != status {
		return pkgerrors.Newf(pkgerrors.CodePersistence,
			"verification %d is %s and cannot become %s", id, v.Status, status)
	}
	v.Status = status
	return nil
}

func (s *InMemoryStore) UpdateChosen(_ context.Context, id int64, chosen int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.items[id]
	if !ok {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "verification %d not found", id)
	}
	c := chosen
	v.Chosen = &c
	return nil
}

func (s *InMemoryStore) CountWaitingByChat(_ context.Context, chatID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, v := range s.items {
		if v.ChatID == chatID && v.Status == models.StatusWaiting {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryStore) FindLatestWaitingByChat(_ context.Context, chatID int64) (*models.Verification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *models.Verification
	for _, v := range s.items {
		if v.ChatID != chatID || v.Status != models.StatusWaiting {
			continue
		}
		if latest == nil || v.CreatedAt.After(latest.CreatedAt) ||
			(v.CreatedAt.Equal(latest.CreatedAt) && v.ID > latest.ID) {
			latest = v
		}
	}
	if latest == nil {
		return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "no waiting verification in chat %d", chatID)
	}
	return cloneVerification(latest), nil
}

func cloneVerification(v *models.Verification) *models.Verification {
	copied := *v
	copied.CorrectIndices = append([]int(nil), v.CorrectIndices...)
	if v.Chosen != nil {
		c := *v.Chosen
		copied.Chosen = &c
	}
	return &copied
}

// InMemorySchemeStore serves per-chat schemes from a map.
type InMemorySchemeStore struct {
	mu      sync.RWMutex
	schemes map[int64]*models.Scheme
}

// NewInMemorySchemes constructs an empty in-memory scheme store.
func NewInMemorySchemes() *InMemorySchemeStore {
	return &InMemorySchemeStore{schemes: make(map[int64]*models.Scheme)}
}

// Put inserts or replaces a scheme.
func (s *InMemorySchemeStore) Put(scheme *models.Scheme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *scheme
	s.schemes[scheme.ChatID] = &copied
}

func (s *InMemorySchemeStore) FetchByChat(_ context.Context, chatID int64) (*models.Scheme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scheme, ok := s.schemes[chatID]
	if !ok {
		return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "no scheme for chat %d", chatID)
	}
	copied := *scheme
	return &copied, nil
}
