package cache

import (
	"time"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/service/cache/provider"
)

// ErrNotFound is returned by Get on a miss or an expired entry
var ErrNotFound = provider.ErrNotFound

// OneTimeGetter loads the value on a miss, it returns a pointer to the value
type OneTimeGetter func() (interface{}, error)

type Serializer func(interface{}) ([]byte, error)

type Deserializer func([]byte, interface{}) error

// Service stores typed values under a prefix on top of a raw Provider.
// Values are copied in and out through the serializer, callers never share memory.
type Service interface {
	// GetByFunc reads key into container, loading and filling it with getter on a miss.
	// Concurrent misses on the same key share one getter call.
	GetByFunc(c ctx.Ctx, key string, container interface{}, getter OneTimeGetter) error
	Get(c ctx.Ctx, key string, container interface{}) error
	Set(c ctx.Ctx, key string, value interface{}) error
	Del(c ctx.Ctx, key string) error
}

type ServiceConfig struct {
	Ttl   time.Duration
	Pfx   string
	Cache provider.Provider
	// json when nil
	Serialize   Serializer
	Deserialize Deserializer
}
