package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Aside implements the cache-aside pattern: on a hit the cached JSON is
// unmarshalled into dest; on a miss, load is called and its result (already
// written into dest by the caller's closure) is stored under key with the
// given TTL. Cache failures degrade to calling load directly.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, load func() error) error {
	if client == nil {
		return load()
	}

	data, err := client.Get(ctx, key).Bytes()
	if err == nil {
		if unmarshalErr := json.Unmarshal(data, dest); unmarshalErr == nil {
			return nil
		}
		// Corrupt entry: drop it and fall through to the loader.
		client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		return load()
	}

	if err := load(); err != nil {
		return err
	}

	if data, err := json.Marshal(dest); err == nil {
		client.Set(ctx, key, data, ttl)
	}
	return nil
}
