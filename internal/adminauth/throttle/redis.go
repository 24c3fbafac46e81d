package throttle

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis shares failure counters across instances. Each email maps to
// login_failures:<email>, incremented with INCR and given a TTL of the
// lockout window on the first failure.
type Redis struct {
	client redis.Cmdable
	cfg    Config
}

func NewRedis(client redis.Cmdable, cfg Config) *Redis {
	return &Redis{client: client, cfg: cfg.withDefaults()}
}

func (r *Redis) IsLocked(ctx context.Context, email string) (bool, error) {
	n, err := r.client.Get(ctx, key(email)).Int()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read login failures: %w", err)
	}
	return n >= r.cfg.MaxFailedAttempts, nil
}

func (r *Redis) RecordFailure(ctx context.Context, email string) (bool, error) {
	k := key(email)
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, r.cfg.Lockout)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("record login failure: %w", err)
	}
	return int(incr.Val()) >= r.cfg.MaxFailedAttempts, nil
}

func (r *Redis) Reset(ctx context.Context, email string) error {
	if err := r.client.Del(ctx, key(email)).Err(); err != nil {
		return fmt.Errorf("reset login failures: %w", err)
	}
	return nil
}
