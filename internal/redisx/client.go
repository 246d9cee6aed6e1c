package redisx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

func Exists(ctx context.Context, rdb redis.Cmdable, key string) (bool, error) {
	n, err := rdb.Exists(ctx, key).Result()
	return n > 0, err
}

// MarkOnce sets key if absent and reports whether this call set it. It is the
// dedup primitive for at-least-once consumers.
func MarkOnce(ctx context.Context, rdb redis.Cmdable, key string, ttl time.Duration) (bool, error) {
	return rdb.SetNX(ctx, key, "1", ttl).Result()
}

type CachedStatus struct {
	Status    string    `json:"status"`
	UserID    string    `json:"user_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StatusCache keeps the latest known status per order. It is a read-through
// shortcut only; Postgres stays the source of truth.
type StatusCache struct{ RDB redis.Cmdable }

// putNewest writes the entry unless the stored one carries a later
// timestamp (unix micros, exact in a Lua number).
var putNewest = redis.NewScript(`
local cur = redis.call('HGET', KEYS[1], 'ts')
if cur and tonumber(cur) > tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1], 'ts', ARGV[1], 'doc', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

func (c StatusCache) Get(ctx context.Context, orderID string) (CachedStatus, bool, error) {
	var cs CachedStatus
	s, err := c.RDB.HGet(ctx, fmt.Sprintf(KeyOrderStatus, orderID), "doc").Result()
	if errors.Is(err, redis.Nil) {
		return cs, false, nil
	}
	if err != nil {
		return cs, false, err
	}
	if err := json.Unmarshal([]byte(s), &cs); err != nil {
		return cs, false, err
	}
	return cs, true, nil
}

// Put stores cs unless the cached entry is newer. The API writes here after
// each commit and the projector replays events, so writers race; the
// comparison and the write happen in one script.
func (c StatusCache) Put(ctx context.Context, orderID string, cs CachedStatus) error {
	b, err := json.Marshal(cs)
	if err != nil {
		return err
	}
	_, err = putNewest.Run(ctx, c.RDB, []string{fmt.Sprintf(KeyOrderStatus, orderID)},
		cs.UpdatedAt.UnixMicro(), b, TTLStatusCache.Milliseconds()).Result()
	if err != nil {
		return fmt.Errorf("put status: %w", err)
	}
	return nil
}

func (c StatusCache) Drop(ctx context.Context, orderID string) error {
	return c.RDB.Del(ctx, fmt.Sprintf(KeyOrderStatus, orderID)).Err()
}

// Idempotency binds a client-supplied checkout key to the order it produced.
type Idempotency struct{ RDB redis.Cmdable }

func (i Idempotency) Lookup(ctx context.Context, userID, key string) (string, bool, error) {
	id, err := i.RDB.Get(ctx, fmt.Sprintf(KeyIdemCheckout, userID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

func (i Idempotency) Remember(ctx context.Context, userID, key, orderID string) error {
	return i.RDB.Set(ctx, fmt.Sprintf(KeyIdemCheckout, userID, key), orderID, TTLIdempotency).Err()
}
