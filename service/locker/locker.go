package locker

import (
	"errors"
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
)

var ErrLeaseTooShort = errors.New("lock ttl does not outlive the locked work")

// Unlock releases a lock returned by Locker.Lock. It is safe to call more than once.
type Unlock func()

// Locker serializes work on a key. Lock blocks until the key is free, the
// context is done or the wait limit is exceeded, in which case it returns
// domain.ErrLockNotAcquired.
type Locker interface {
	Lock(c ctx.Ctx, key string) (Unlock, error)
}

type Cfg struct {
	// Ttl bounds how long a redis lock survives a crashed holder
	Ttl time.Duration
	// Wait bounds how long Lock waits for a busy key, 0 means until the context is done
	Wait time.Duration
}

// Outlives returns ErrLeaseTooShort unless a lease taken with cfg lasts
// longer than work, so a second holder cannot start while the first runs.
func (cfg Cfg) Outlives(work time.Duration) error {
	ttl := cfg.Ttl
	if ttl <= 0 {
		ttl = defaultTtl
	}
	if ttl <= work {
		return xerrors.Errorf("ttl %s, work %s: %w", ttl, work, ErrLeaseTooShort)
	}
	return nil
}
