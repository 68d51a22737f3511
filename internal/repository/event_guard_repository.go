package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// EventGuardRepository collapses duplicate gateway events and serializes get-or-create work across
// bot replicas. Without a redis client every key is granted.
type EventGuardRepository struct {
	Log     *zap.Logger
	DBCache *redis.Client
}

func NewEventGuardRepository(zap *zap.Logger, dbCache *redis.Client) *EventGuardRepository {
	return &EventGuardRepository{
		Log:     zap,
		DBCache: dbCache,
	}
}

// Redis - Cache
func (repository *EventGuardRepository) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if repository.DBCache == nil {
		return true, nil
	}

	guardKey := fmt.Sprintf("guard:%s", key)
	acquired, err := repository.DBCache.SetNX(ctx, guardKey, time.Now().UTC().Unix(), ttl).Result()
	if err != nil {
		return false, err
	}

	return acquired, nil
}

func (repository *EventGuardRepository) Release(ctx context.Context, key string) error {
	if repository.DBCache == nil {
		return nil
	}

	guardKey := fmt.Sprintf("guard:%s", key)
	err := repository.DBCache.Del(ctx, guardKey).Err()
	if err != nil {
		return err
	}

	return nil
}
