package risk

import (
	"sync"

	"github.com/google/uuid"

	"github.com/findosh/sextant/internal/models"
)

// MemoryProfileStore is an in-process ProfileStore. Useful for tests and
// for running the engine without a database; the sqlite-backed store lives
// in internal/storage.
type MemoryProfileStore struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]models.RiskProfile
}

// NewMemoryProfileStore creates an empty in-memory profile store
func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{
		profiles: make(map[uuid.UUID]models.RiskProfile),
	}
}

// Save stores a copy of the profile, replacing any existing one
func (s *MemoryProfileStore) Save(profile *models.RiskProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UserID] = *profile
	return nil
}

// Get returns a copy of the stored profile, or (nil, nil) when absent
func (s *MemoryProfileStore) Get(userID uuid.UUID) (*models.RiskProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}
