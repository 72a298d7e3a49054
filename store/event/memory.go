package event

import (
	"context"
	"sort"
	"sync"

	"lending/core"
)

// Memory in-memory event log
type Memory struct {
	mu     sync.RWMutex
	events []*core.Event
}

// NewMemory new in-memory event log
func NewMemory() *Memory {
	return &Memory{}
}

// Append assigns the next id and appends the event
func (m *Memory) Append(e *core.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e.ID = int64(len(m.events) + 1)
	c := *e
	m.events = append(m.events, &c)
}

func (m *Memory) List(ctx context.Context, offset int64, limit int) ([]*core.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// ids are dense and start from 1
	from := sort.Search(len(m.events), func(i int) bool {
		return m.events[i].ID > offset
	})

	events := make([]*core.Event, 0, limit)
	for _, e := range m.events[from:] {
		if len(events) >= limit {
			break
		}

		c := *e
		events = append(events, &c)
	}

	return events, nil
}
