package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"ticksy/internal/config"
)

type Redis struct {
	Client *redis.Client
}

func NewRedis(cfg config.RedisConfig) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Redis{Client: client}
}

const settlementLockTTL = 2 * time.Minute

// AcquireSettlementLock guards an order against concurrent STK pushes.
// Returns false when another push already holds the lock.
func (r *Redis) AcquireSettlementLock(ctx context.Context, orderID string) (bool, error) {
	key := "settlement_lock:" + orderID
	ok, err := r.Client.SetNX(ctx, key, orderID, settlementLockTTL).Result()
	return ok, err
}

// ReleaseSettlementLock frees the lock once settlement is recorded. A
// missing key is fine, the TTL may have expired it.
func (r *Redis) ReleaseSettlementLock(ctx context.Context, orderID string) error {
	key := fmt.Sprintf("settlement_lock:%s", orderID)
	val, err := r.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}
	if val == orderID {
		_, err := r.Client.Del(ctx, key).Result()
		return err
	}
	return nil
}

func (r *Redis) Close() error {
	return r.Client.Close()
}
