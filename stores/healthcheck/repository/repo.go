package repository

import (
	"time"

	"github.com/x-xyz/goauction/base/ctx"
	hcdomain "github.com/x-xyz/goauction/domain/healthcheck"
	"github.com/x-xyz/goauction/domain/keys"
	"github.com/x-xyz/goauction/service/query"
	"github.com/x-xyz/goauction/service/redis"
)

const pingTimeout = 2 * time.Second

type impl struct {
	q          query.Mongo
	redisCache redis.Service
}

// New creates new healthCheckRepo. redisCache is nil when the service runs without redis.
func New(
	q query.Mongo,
	redisCache redis.Service,
) hcdomain.HealthCheckRepo {
	return &impl{
		q:          q,
		redisCache: redisCache,
	}
}

func (im *impl) PingDB(parent ctx.Ctx) error {
	c, cancel := ctx.WithTimeout(parent, pingTimeout)
	defer cancel()
	if err := im.q.Ping(c); err != nil {
		parent.WithField("err", err).Error("q.Ping failed")
		return err
	}
	return nil
}

func (im *impl) PingCache(parent ctx.Ctx) error {
	if im.redisCache == nil {
		return hcdomain.ErrCacheDisabled
	}
	c, cancel := ctx.WithTimeout(parent, pingTimeout)
	defer cancel()
	if err := im.redisCache.Set(c, keys.RedisKey(keys.PfxHealthCheck, "testset"), []byte("1"), 30*time.Second); err != nil {
		parent.WithField("err", err).Error("redisCache.Set failed")
		return err
	}
	return nil
}
