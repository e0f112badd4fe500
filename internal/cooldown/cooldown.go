// Package cooldown remembers which accounts have booked recently so a second
// request does not waste a login on an account the site will refuse.
package cooldown

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Cache interface {
	Active(ctx context.Context, username string, dayOffset int) (bool, error)
	Mark(ctx context.Context, username string, dayOffset int) error
}

// Key is the cache key for a username booking today (dayOffset 0) or later.
// Bumping version invalidates every key at once.
func Key(version, username string, dayOffset int) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s-%s-%t", version, username, dayOffset > 0)))
	return hex.EncodeToString(sum[:])
}

type Redis struct {
	client  redis.Cmdable
	version string
	ttl     time.Duration
}

func NewRedis(client redis.Cmdable, version string, ttl time.Duration) *Redis {
	return &Redis{client: client, version: version, ttl: ttl}
}

// Dial connects to a single Redis node.
func Dial(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 2 * time.Second,
		MaxRetries:  1,
	})
}

func (r *Redis) Active(ctx context.Context, username string, dayOffset int) (bool, error) {
	n, err := r.client.Exists(ctx, Key(r.version, username, dayOffset)).Result()
	if err != nil {
		return false, fmt.Errorf("cooldown lookup: %w", err)
	}
	return n > 0, nil
}

func (r *Redis) Mark(ctx context.Context, username string, dayOffset int) error {
	if err := r.client.Set(ctx, Key(r.version, username, dayOffset), 1, r.ttl).Err(); err != nil {
		return fmt.Errorf("cooldown mark: %w", err)
	}
	return nil
}

// Nop never reports a cooldown.
type Nop struct{}

func (Nop) Active(context.Context, string, int) (bool, error) { return false, nil }
func (Nop) Mark(context.Context, string, int) error           { return nil }
