package auth

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestThrottle(t *testing.T, max int, window time.Duration) (LoginThrottle, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginThrottle(client, max, window, zap.NewNop()), mr
}

func TestRedisThrottle_BlocksAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	th, _ := newTestThrottle(t, 3, 15*time.Minute)

	for i := 0; i < 3; i++ {
		_, err := th.Acquire(ctx, "ali@x.com")
		require.NoError(t, err)
	}

	retry, err := th.Acquire(ctx, "ali@x.com")
	require.ErrorIs(t, err, ErrTooManyAttempts)
	assert.Greater(t, retry, time.Duration(0))
	assert.LessOrEqual(t, retry, 15*time.Minute)

	_, err = th.Acquire(ctx, "vali@x.com")
	assert.NoError(t, err)
}

func TestRedisThrottle_ConcurrentAttemptsRespectLimit(t *testing.T) {
	ctx := context.Background()
	th, _ := newTestThrottle(t, 3, 15*time.Minute)

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := th.Acquire(ctx, "ali@x.com"); err == nil {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 3, allowed.Load())
}

func TestRedisThrottle_WindowExpires(t *testing.T) {
	ctx := context.Background()
	th, mr := newTestThrottle(t, 1, time.Minute)

	_, err := th.Acquire(ctx, "ali@x.com")
	require.NoError(t, err)
	_, err = th.Acquire(ctx, "ali@x.com")
	require.ErrorIs(t, err, ErrTooManyAttempts)

	mr.FastForward(61 * time.Second)

	_, err = th.Acquire(ctx, "ali@x.com")
	assert.NoError(t, err)
}

func TestRedisThrottle_BlockedAttemptsDoNotExtendWindow(t *testing.T) {
	ctx := context.Background()
	th, mr := newTestThrottle(t, 1, time.Minute)

	_, err := th.Acquire(ctx, "ali@x.com")
	require.NoError(t, err)
	mr.FastForward(50 * time.Second)
	_, err = th.Acquire(ctx, "ali@x.com")
	require.ErrorIs(t, err, ErrTooManyAttempts)

	mr.FastForward(11 * time.Second)
	_, err = th.Acquire(ctx, "ali@x.com")
	assert.NoError(t, err)
}

func TestRedisThrottle_ResetClearsAttempts(t *testing.T) {
	ctx := context.Background()
	th, _ := newTestThrottle(t, 1, time.Minute)

	_, err := th.Acquire(ctx, "ali@x.com")
	require.NoError(t, err)
	require.NoError(t, th.Reset(ctx, "ali@x.com"))

	_, err = th.Acquire(ctx, "ali@x.com")
	assert.NoError(t, err)
}

func TestRedisThrottle_FailsOpenWhenRedisDown(t *testing.T) {
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()
	th := NewLoginThrottle(client, 1, time.Minute, zap.NewNop())

	for i := 0; i < 3; i++ {
		_, err := th.Acquire(ctx, "ali@x.com")
		assert.NoError(t, err)
	}
}

func TestNewLoginThrottle_Noop(t *testing.T) {
	assert.IsType(t, NoopThrottle{}, NewLoginThrottle(nil, 5, time.Minute, zap.NewNop()))

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()
	assert.IsType(t, NoopThrottle{}, NewLoginThrottle(client, 0, time.Minute, zap.NewNop()))
}
