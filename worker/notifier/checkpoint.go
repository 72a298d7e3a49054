package notifier

import (
	"context"
	"sync/atomic"

	"github.com/fox-one/pkg/property"
)

const checkpointKey = "notifier:checkpoint"

// Checkpoint id of the last delivered event
type Checkpoint interface {
	Load(ctx context.Context) (int64, error)
	Save(ctx context.Context, offset int64) error
}

// PropertyCheckpoint checkpoint kept in a property store
func PropertyCheckpoint(store property.Store) Checkpoint {
	return &propertyCheckpoint{store: store}
}

type propertyCheckpoint struct {
	store property.Store
}

func (c *propertyCheckpoint) Load(ctx context.Context) (int64, error) {
	v, err := c.store.Get(ctx, checkpointKey)
	if err != nil {
		return 0, err
	}

	return v.Int64(), nil
}

func (c *propertyCheckpoint) Save(ctx context.Context, offset int64) error {
	return c.store.Save(ctx, checkpointKey, offset)
}

// MemoryCheckpoint checkpoint lost on restart, pairs with the in-memory event log
func MemoryCheckpoint() Checkpoint {
	return &memoryCheckpoint{}
}

type memoryCheckpoint struct {
	offset int64
}

func (c *memoryCheckpoint) Load(ctx context.Context) (int64, error) {
	return atomic.LoadInt64(&c.offset), nil
}

func (c *memoryCheckpoint) Save(ctx context.Context, offset int64) error {
	atomic.StoreInt64(&c.offset, offset)
	return nil
}
