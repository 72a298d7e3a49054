package asset

import (
	"context"
	"sort"
	"sync"
	"time"

	"lending/core"
	"lending/store/event"
)

type memoryStore struct {
	mu     sync.RWMutex
	tokens map[string]core.AllowedToken
	events *event.Memory
}

// Memory in-memory allow-list store appending its events to events
func Memory(events *event.Memory) core.IAssetStore {
	return &memoryStore{
		tokens: make(map[string]core.AllowedToken),
		events: events,
	}
}

func (s *memoryStore) Save(ctx context.Context, token *core.AllowedToken, e *core.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if prev, ok := s.tokens[token.AssetID]; ok {
		token.CreatedAt = prev.CreatedAt
	} else {
		token.CreatedAt = now
	}
	token.UpdatedAt = now

	s.tokens[token.AssetID] = *token
	s.events.Append(e)
	return nil
}

func (s *memoryStore) Find(ctx context.Context, assetID string) (*core.AllowedToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, ok := s.tokens[assetID]
	if !ok {
		return nil, core.ErrNotAllowed
	}

	return &token, nil
}

func (s *memoryStore) All(ctx context.Context) ([]*core.AllowedToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tokens := make([]*core.AllowedToken, 0, len(s.tokens))
	for _, t := range s.tokens {
		token := t
		tokens = append(tokens, &token)
	}

	sort.Slice(tokens, func(i, j int) bool {
		return tokens[i].AssetID < tokens[j].AssetID
	})

	return tokens, nil
}
