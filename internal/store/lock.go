package store

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 100 * time.Millisecond

// lockFile takes an exclusive advisory lock on path, waiting up to timeout
// (no limit when timeout is not positive) for another holder to release it.
// The returned func releases the lock.
func lockFile(ctx context.Context, path string, timeout time.Duration) (func() error, error) {
	fl := flock.New(path)

	lockCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ok, err := fl.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("locking %s: %w", fl.Path(), err)
	}
	if !ok {
		return nil, fmt.Errorf("locking %s: held by another run", fl.Path())
	}
	return fl.Unlock, nil
}
