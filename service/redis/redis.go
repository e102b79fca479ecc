package redis

import (
	"errors"
	"time"

	"github.com/x-xyz/goauction/base/ctx"
)

const (
	// Forever means no expiration
	Forever = time.Duration(-1)
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("redis: key not found")
	// ErrNoTTL is returned by TTL when the key exists but has no expiration
	ErrNoTTL = errors.New("redis: key has no ttl")
	// ErrNotSet is returned by SetNX when the key is already taken
	ErrNotSet = errors.New("redis: key already exists")
	// ErrNoPool is returned when the service has no pool for a command
	ErrNoPool = errors.New("redis: no pool")
)

// Service is the subset of redis commands the service relies on
type Service interface {
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	// SetNX returns ErrNotSet when key already exists
	SetNX(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(context ctx.Ctx, keys ...string) (int, error)
	// DelIfEqual deletes key only when it still holds val
	DelIfEqual(context ctx.Ctx, key string, val []byte) (bool, error)
	Exists(context ctx.Ctx, key string) (bool, error)
	// TTL returns the remaining seconds to live
	TTL(context ctx.Ctx, key string) (int, error)
	Incrby(context ctx.Ctx, key string, val int) (int64, error)
	Ping(context ctx.Ctx) error
}
