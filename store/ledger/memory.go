package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"lending/core"
	"lending/pkg/number"
	"lending/store/event"

	"github.com/fox-one/pkg/store/db"
)

type positionKey struct {
	userID  string
	assetID string
}

type memoryStore struct {
	mu        sync.RWMutex
	positions map[positionKey]*core.Position
	events    *event.Memory
}

// Memory in-memory ledger appending its events to events
func Memory(events *event.Memory) core.ILedgerStore {
	return &memoryStore{
		positions: make(map[positionKey]*core.Position),
		events:    events,
	}
}

func (s *memoryStore) Find(ctx context.Context, userID, assetID string) (*core.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.positions[positionKey{userID, assetID}]; ok {
		return p.Clone(), nil
	}

	return core.NewPosition(userID, assetID), nil
}

func (s *memoryStore) FindByUser(ctx context.Context, userID string) ([]*core.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var positions []*core.Position
	for key, p := range s.positions {
		if key.userID == userID {
			positions = append(positions, p.Clone())
		}
	}

	sort.Slice(positions, func(i, j int) bool {
		return positions[i].AssetID < positions[j].AssetID
	})

	return positions, nil
}

func (s *memoryStore) Borrowers(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var users []string
	for key, p := range s.positions {
		if p.Borrowed.IsZero() || seen[key.userID] {
			continue
		}

		seen[key.userID] = true
		users = append(users, key.userID)
	}

	sort.Strings(users)
	return users, nil
}

func (s *memoryStore) Totals(ctx context.Context, assetID string) (*core.PoolTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := &core.PoolTotals{Deposited: number.Zero(), Borrowed: number.Zero()}
	for key, p := range s.positions {
		if key.assetID != assetID {
			continue
		}

		var ok bool
		if totals.Deposited, ok = number.Add(totals.Deposited, p.Deposited); !ok {
			return nil, core.ErrArithmeticOverflow
		}

		if totals.Borrowed, ok = number.Add(totals.Borrowed, p.Borrowed); !ok {
			return nil, core.ErrArithmeticOverflow
		}
	}

	return totals, nil
}

func (s *memoryStore) Commit(ctx context.Context, p *core.Position, e *core.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := positionKey{p.UserID, p.AssetID}
	current := int64(0)
	if prev, ok := s.positions[key]; ok {
		current = prev.Version
	}

	if current != p.Version {
		return db.ErrOptimisticLock
	}

	now := time.Now()
	if p.Version == 0 {
		p.CreatedAt = now
	}
	p.Version++
	p.UpdatedAt = now

	s.positions[key] = p.Clone()
	s.events.Append(e)
	return nil
}
