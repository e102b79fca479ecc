package redisclient

import (
	"context"
	"runtime"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/goauction/base/backoff"
	"github.com/x-xyz/goauction/base/log"
)

const (
	dialTimeout  = 2 * time.Second
	readTimeout  = 1500 * time.Millisecond
	writeTimeout = 1500 * time.Millisecond

	dialRetries    = 3
	retryBackoff   = time.Second
	retryBackoffUp = 8 * time.Second
)

// Cfg describes one redis endpoint
type Cfg struct {
	Uri      string
	Password string
	// PoolMultiplier sizes the pool per cpu, 0 keeps the defaults
	PoolMultiplier float64
	// Retry dials again with backoff when the first attempt fails
	Retry bool
}

// MustConnectRedis panics if the connection fails
func MustConnectRedis(cfg Cfg) *redis.Pool {
	p, err := ConnectRedis(context.Background(), cfg)
	if err != nil {
		log.Log().WithFields(log.Fields{"redisURI": cfg.Uri, "err": err}).Panic("fail to dial Redis")
	}
	return p
}

func newPool(cfg Cfg) *redis.Pool {
	maxIdle := 200
	maxActive := 1024
	if cfg.PoolMultiplier > 0 {
		cpu := float64(runtime.NumCPU())
		// allowing 25% idle connection
		maxIdle = int(cpu * cfg.PoolMultiplier / 4)
		maxActive = int(cpu * cfg.PoolMultiplier)
	}

	opts := []redis.DialOption{
		redis.DialConnectTimeout(dialTimeout),
		redis.DialReadTimeout(readTimeout),
		redis.DialWriteTimeout(writeTimeout),
	}
	if cfg.Password != "" {
		opts = append(opts, redis.DialPassword(cfg.Password))
	}
	return &redis.Pool{
		MaxIdle:     maxIdle,
		MaxActive:   maxActive,
		Wait:        true,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", cfg.Uri, opts...)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			// No need to test if it's been recycled less than 1 sec.
			if time.Since(t) < time.Second {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}

func ping(p *redis.Pool) error {
	c, err := p.Dial()
	if err != nil {
		return err
	}
	defer c.Close()
	_, err = c.Do("PING")
	return err
}

// ConnectRedis builds a pool and makes sure the endpoint answers PING
func ConnectRedis(ctx context.Context, cfg Cfg) (*redis.Pool, error) {
	p := newPool(cfg)
	b := backoff.NewExponential(retryBackoff, retryBackoffUp)

	var err error
	for i := 0; i <= dialRetries; i++ {
		if i > 0 {
			if !cfg.Retry {
				break
			}
			if berr := b.Backoff(ctx); berr != nil {
				break
			}
		}
		if err = ping(p); err == nil {
			break
		}
		log.Log().WithFields(log.Fields{
			"redisURI": cfg.Uri,
			"err":      err,
			"retry":    i,
		}).Error("fail to dial Redis")
	}
	if err != nil {
		p.Close()
		return nil, err
	}

	log.Log().WithField("redisURI", cfg.Uri).Info("redis connected")
	return p, nil
}
