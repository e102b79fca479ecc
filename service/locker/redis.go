package locker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/x-xyz/goauction/base/backoff"
	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/keys"
	"github.com/x-xyz/goauction/service/redis"
)

const (
	defaultTtl = 30 * time.Second

	retryStart = 10 * time.Millisecond
	retryLimit = 200 * time.Millisecond
)

type redisImpl struct {
	cfg   Cfg
	redis redis.Service
}

// NewRedis returns a Locker shared by every process using the same redis.
// A lock is a key holding a random token; only the holder of the token deletes it.
func NewRedis(cfg Cfg, r redis.Service) Locker {
	if cfg.Ttl <= 0 {
		cfg.Ttl = defaultTtl
	}
	return &redisImpl{cfg: cfg, redis: r}
}

func (im *redisImpl) Lock(c ctx.Ctx, key string) (Unlock, error) {
	rkey := keys.RedisKey(keys.PfxAuctionLock, key)
	token := []byte(uuid.NewString())

	waitCtx := c.Context
	if im.cfg.Wait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(c.Context, im.cfg.Wait)
		defer cancel()
	}

	// jitter keeps bidders queued on the same auction from retrying in lockstep
	b := backoff.NewExponential(retryStart, retryLimit).WithJitter(0.5)
	for {
		err := im.redis.SetNX(c, rkey, token, im.cfg.Ttl)
		if err == nil {
			break
		} else if err != redis.ErrNotSet {
			c.WithField("err", err).WithField("key", rkey).Error("redis.SetNX failed")
			return nil, err
		}
		if err := b.Backoff(waitCtx); err != nil {
			c.WithFields(log.Fields{"key": rkey, "attempts": b.Attempts()}).Warn("lock not acquired")
			return nil, domain.ErrLockNotAcquired
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() { im.unlock(c, rkey, token) })
	}, nil
}

func (im *redisImpl) unlock(c ctx.Ctx, rkey string, token []byte) {
	// the caller's context may already be cancelled
	uc := ctx.Ctx{Context: context.Background(), Logger: c.Logger}
	if ok, err := im.redis.DelIfEqual(uc, rkey, token); err != nil {
		c.WithField("err", err).WithField("key", rkey).Error("redis.DelIfEqual failed")
	} else if !ok {
		c.WithField("key", rkey).Warn("lock expired before unlock")
	}
}
