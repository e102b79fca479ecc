package locker

import (
	"context"
	"sync"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
)

type entry struct {
	ch   chan struct{}
	refs int
}

type memImpl struct {
	cfg  Cfg
	mu   sync.Mutex
	keys map[string]*entry
}

// NewMemory returns a Locker that only serializes callers within this process
func NewMemory(cfg Cfg) Locker {
	return &memImpl{cfg: cfg, keys: map[string]*entry{}}
}

func (im *memImpl) acquire(key string) *entry {
	im.mu.Lock()
	defer im.mu.Unlock()
	e, ok := im.keys[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		im.keys[key] = e
	}
	e.refs++
	return e
}

func (im *memImpl) release(key string, e *entry) {
	im.mu.Lock()
	defer im.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(im.keys, key)
	}
}

func (im *memImpl) Lock(c ctx.Ctx, key string) (Unlock, error) {
	e := im.acquire(key)

	waitCtx := c.Context
	if im.cfg.Wait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(c.Context, im.cfg.Wait)
		defer cancel()
	}

	select {
	case e.ch <- struct{}{}:
	case <-waitCtx.Done():
		im.release(key, e)
		c.WithField("key", key).Warn("lock not acquired")
		return nil, domain.ErrLockNotAcquired
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			im.release(key, e)
		})
	}, nil
}
