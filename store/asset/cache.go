package asset

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"lending/core"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

// Cache caches allow-list lookups, entries are dropped on Save
func Cache(store core.IAssetStore, exp time.Duration) core.IAssetStore {
	return &cacheAssetStore{
		IAssetStore: store,
		cache:       gcache.New(2048).LRU().Build(),
		sf:          &singleflight.Group{},
		exp:         exp,
	}
}

type cacheAssetStore struct {
	core.IAssetStore
	cache gcache.Cache
	sf    *singleflight.Group
	exp   time.Duration
	// bumped by every Save, loads started before a Save are not cached
	generation uint64
}

func (s *cacheAssetStore) Save(ctx context.Context, token *core.AllowedToken, e *core.Event) error {
	if err := s.IAssetStore.Save(ctx, token, e); err != nil {
		return err
	}

	key := s.tokenKey(token.AssetID)
	atomic.AddUint64(&s.generation, 1)
	s.sf.Forget(key)
	s.cache.Remove(key)
	return nil
}

func (s *cacheAssetStore) Find(ctx context.Context, assetID string) (*core.AllowedToken, error) {
	key := s.tokenKey(assetID)
	if v, err := s.cache.Get(key); err == nil {
		if token, ok := v.(core.AllowedToken); ok {
			return &token, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		generation := atomic.LoadUint64(&s.generation)
		token, err := s.IAssetStore.Find(ctx, assetID)
		if err != nil {
			return nil, err
		}

		if atomic.LoadUint64(&s.generation) == generation {
			_ = s.cache.SetWithExpire(key, *token, s.exp)
		}
		return *token, nil
	})
	if err != nil {
		return nil, err
	}

	token := v.(core.AllowedToken)
	return &token, nil
}

func (s *cacheAssetStore) tokenKey(assetID string) string {
	return fmt.Sprintf("token:asset:%s", assetID)
}
