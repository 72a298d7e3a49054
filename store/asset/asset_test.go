package asset

import (
	"context"
	"testing"
	"time"

	"lending/core"
	"lending/store/event"

	"github.com/fox-one/pkg/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	events := event.NewMemory()
	s := Memory(events)

	asset := uuid.New()
	_, err := s.Find(ctx, asset)
	assert.ErrorIs(t, err, core.ErrNotAllowed)

	err = s.Save(ctx, &core.AllowedToken{AssetID: asset, PriceFeed: "feed-1"}, core.NewAllowedTokenSetEvent(uuid.New(), asset, "feed-1"))
	require.Nil(t, err)

	token, err := s.Find(ctx, asset)
	require.Nil(t, err)
	assert.Equal(t, "feed-1", token.PriceFeed)
	created := token.CreatedAt

	// re-registering overwrites the mapping
	err = s.Save(ctx, &core.AllowedToken{AssetID: asset, PriceFeed: "feed-2"}, core.NewAllowedTokenSetEvent(uuid.New(), asset, "feed-2"))
	require.Nil(t, err)

	token, _ = s.Find(ctx, asset)
	assert.Equal(t, "feed-2", token.PriceFeed)
	assert.Equal(t, created, token.CreatedAt)

	tokens, _ := s.All(ctx)
	assert.Len(t, tokens, 1)

	logged, _ := events.List(ctx, 0, 10)
	assert.Len(t, logged, 2)
}

func TestCacheStore(t *testing.T) {
	ctx := context.Background()
	s := Cache(Memory(event.NewMemory()), time.Minute)

	asset := uuid.New()
	_, err := s.Find(ctx, asset)
	assert.ErrorIs(t, err, core.ErrNotAllowed)

	require.Nil(t, s.Save(ctx, &core.AllowedToken{AssetID: asset, PriceFeed: "feed-1"}, core.NewAllowedTokenSetEvent(uuid.New(), asset, "feed-1")))
	token, err := s.Find(ctx, asset)
	require.Nil(t, err)
	assert.Equal(t, "feed-1", token.PriceFeed)

	// cached entry is dropped on save
	require.Nil(t, s.Save(ctx, &core.AllowedToken{AssetID: asset, PriceFeed: "feed-2"}, core.NewAllowedTokenSetEvent(uuid.New(), asset, "feed-2")))
	token, err = s.Find(ctx, asset)
	require.Nil(t, err)
	assert.Equal(t, "feed-2", token.PriceFeed)
}

type slowStore struct {
	core.IAssetStore
	loaded  chan struct{}
	release chan struct{}
}

func (s *slowStore) Find(ctx context.Context, assetID string) (*core.AllowedToken, error) {
	token, err := s.IAssetStore.Find(ctx, assetID)
	s.loaded <- struct{}{}
	<-s.release
	return token, err
}

func TestCacheStoreSaveDuringLoad(t *testing.T) {
	ctx := context.Background()
	inner := Memory(event.NewMemory())
	slow := &slowStore{
		IAssetStore: inner,
		loaded:      make(chan struct{}, 4),
		release:     make(chan struct{}),
	}
	s := Cache(slow, time.Minute)

	asset := uuid.New()
	require.Nil(t, inner.Save(ctx, &core.AllowedToken{AssetID: asset, PriceFeed: "feed-1"}, core.NewAllowedTokenSetEvent(uuid.New(), asset, "feed-1")))

	done := make(chan struct{})
	go func() {
		defer close(done)
		token, err := s.Find(ctx, asset)
		assert.Nil(t, err)
		assert.Equal(t, "feed-1", token.PriceFeed)
	}()

	// the load has read feed-1 and is still in flight
	<-slow.loaded
	require.Nil(t, s.Save(ctx, &core.AllowedToken{AssetID: asset, PriceFeed: "feed-2"}, core.NewAllowedTokenSetEvent(uuid.New(), asset, "feed-2")))
	close(slow.release)
	<-done

	token, err := s.Find(ctx, asset)
	require.Nil(t, err)
	assert.Equal(t, "feed-2", token.PriceFeed)
}
