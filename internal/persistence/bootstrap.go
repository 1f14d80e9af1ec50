package persistence

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Bootstrap runs one-time store setup (migrations, indexes) until it
// succeeds once. A store that was down at startup gets its schema as soon
// as it answers, without a restart.
type Bootstrap struct {
	name   string
	run    func(context.Context) error
	logger *zap.Logger

	mu   sync.Mutex
	done atomic.Bool
}

// NewBootstrap wraps run. name labels log lines and errors.
func NewBootstrap(name string, run func(context.Context) error, logger *zap.Logger) *Bootstrap {
	return &Bootstrap{name: name, run: run, logger: logger}
}

// Ensure runs setup unless it already succeeded. Concurrent callers wait
// for the attempt in flight; a failed attempt is retried by the next call.
func (b *Bootstrap) Ensure(ctx context.Context) error {
	if b.done.Load() {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.done.Load() {
		return nil
	}
	if err := b.run(ctx); err != nil {
		return fmt.Errorf("%s bootstrap: %w", b.name, err)
	}
	b.done.Store(true)
	b.logger.Info("store bootstrap complete", zap.String("store", b.name))
	return nil
}

// Done reports whether setup has succeeded.
func (b *Bootstrap) Done() bool {
	return b.done.Load()
}

// Ping makes the bootstrap a readiness dependency: not ready until setup
// has run, and each probe is another attempt.
func (b *Bootstrap) Ping(ctx context.Context) error {
	return b.Ensure(ctx)
}

// Retry calls Ensure until it succeeds or ctx ends, doubling the wait after
// each failure up to maxWait.
func (b *Bootstrap) Retry(ctx context.Context, wait, maxWait, attemptTimeout time.Duration) {
	for {
		attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		err := b.Ensure(attemptCtx)
		cancel()
		if err == nil {
			return
		}
		b.logger.Warn("store bootstrap failed; retrying", zap.Duration("in", wait), zap.Error(err))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		if wait *= 2; wait > maxWait {
			wait = maxWait
		}
	}
}
