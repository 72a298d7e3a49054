package account

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lending/core"

	"github.com/go-redis/redis"
)

type accountStore struct {
	Redis *redis.Client
	ttl   time.Duration
}

// New new health snapshot store backed by redis
func New(redis *redis.Client, ttl time.Duration) core.IAccountStore {
	return &accountStore{
		Redis: redis,
		ttl:   ttl,
	}
}

func (s *accountStore) SaveHealth(ctx context.Context, snapshot *core.HealthSnapshot) error {
	bs, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	return s.Redis.Set(s.healthCacheKey(snapshot.UserID), bs, s.ttl).Err()
}

func (s *accountStore) FindHealth(ctx context.Context, userID string) (*core.HealthSnapshot, error) {
	bs, err := s.Redis.Get(s.healthCacheKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}

		return nil, err
	}

	var snapshot core.HealthSnapshot
	if err := json.Unmarshal(bs, &snapshot); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

func (s *accountStore) healthCacheKey(userID string) string {
	return fmt.Sprintf("lending:health:%s", userID)
}
