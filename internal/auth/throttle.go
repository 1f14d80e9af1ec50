package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrTooManyAttempts is returned by Acquire while an email is locked out.
var ErrTooManyAttempts = errors.New("too many failed login attempts")

const attemptKeyPrefix = "rentcar:login_attempts:"

// countAttempt increments the counter, starts the window on the first
// attempt and returns the new count with the remaining window in ms.
var countAttempt = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return {n, redis.call('PTTL', KEYS[1])}
`)

// LoginThrottle limits login attempts per email within a window.
type LoginThrottle interface {
	// Acquire counts one attempt for key. Once more than the allowed number
	// of attempts fall in the window it returns ErrTooManyAttempts and the
	// remaining lockout.
	Acquire(ctx context.Context, key string) (time.Duration, error)
	// Reset clears the count after a successful login.
	Reset(ctx context.Context, key string) error
}

// NoopThrottle never blocks.
type NoopThrottle struct{}

func (NoopThrottle) Acquire(context.Context, string) (time.Duration, error) { return 0, nil }
func (NoopThrottle) Reset(context.Context, string) error                   { return nil }

// RedisThrottle keeps one expiring counter per email. Every attempt is
// counted before the password is checked, so concurrent attempts cannot
// slip past the limit. Redis errors are logged and the attempt is let through.
type RedisThrottle struct {
	client *redis.Client
	max    int
	window time.Duration
	logger *zap.Logger
}

// NewLoginThrottle returns a Redis-backed throttle, or NoopThrottle when
// client is nil or maxFailures is not positive.
func NewLoginThrottle(client *redis.Client, maxFailures int, window time.Duration, logger *zap.Logger) LoginThrottle {
	if client == nil || maxFailures <= 0 {
		return NoopThrottle{}
	}
	return &RedisThrottle{client: client, max: maxFailures, window: window, logger: logger}
}

func (t *RedisThrottle) Acquire(ctx context.Context, key string) (time.Duration, error) {
	res, err := countAttempt.Run(ctx, t.client, []string{attemptKeyPrefix + key}, t.window.Milliseconds()).Int64Slice()
	if err != nil || len(res) != 2 {
		t.logger.Warn("login throttle unavailable", zap.Error(err))
		return 0, nil
	}
	if res[0] <= int64(t.max) {
		return 0, nil
	}
	ttl := time.Duration(res[1]) * time.Millisecond
	if ttl <= 0 {
		ttl = t.window
	}
	return ttl, ErrTooManyAttempts
}

func (t *RedisThrottle) Reset(ctx context.Context, key string) error {
	if err := t.client.Del(ctx, attemptKeyPrefix+key).Err(); err != nil {
		t.logger.Warn("login throttle reset failed", zap.Error(err))
	}
	return nil
}
