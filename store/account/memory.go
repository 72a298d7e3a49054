package account

import (
	"context"
	"sync"

	"lending/core"
)

type memoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]core.HealthSnapshot
}

// Memory in-memory health snapshot store
func Memory() core.IAccountStore {
	return &memoryStore{
		snapshots: make(map[string]core.HealthSnapshot),
	}
}

func (s *memoryStore) SaveHealth(ctx context.Context, snapshot *core.HealthSnapshot) error {
	s.mu.Lock()
	s.snapshots[snapshot.UserID] = *snapshot
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) FindHealth(ctx context.Context, userID string) (*core.HealthSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.snapshots[userID]
	if !ok {
		return nil, nil
	}

	return &snapshot, nil
}
