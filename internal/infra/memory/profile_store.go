package memory

import (
	"context"
	"sync"

	"trivia-client/internal/domain"
)

// ProfileStore is an in-memory profile store for tests and demos.
type ProfileStore struct {
	mu      sync.RWMutex
	profile *domain.Profile
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{}
}

func (s *ProfileStore) Load(_ context.Context) (domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return domain.Profile{}, domain.ErrProfileNotFound
	}
	return *s.profile, nil
}

func (s *ProfileStore) Save(_ context.Context, profile domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = &profile
	return nil
}

// Delete clears the stored profile.
func (s *ProfileStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = nil
	return nil
}
