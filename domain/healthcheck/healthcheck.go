package healthcheck

import (
	"github.com/x-xyz/goauction/base/ctx"
)

const (
	ComponentDB    = "db"
	ComponentCache = "cache"

	StatusOk       = "ok"
	StatusDisabled = "disabled"
)

// Report is the state of every backing store, a failing component carries its error text
type Report struct {
	Healthy    bool              `json:"healthy"`
	Components map[string]string `json:"components"`
}

type HealthCheckUsecase interface {
	// Check probes every component, it does not stop at the first failure
	Check(c ctx.Ctx) *Report
}

type HealthCheckRepo interface {
	PingDB(c ctx.Ctx) error
	// PingCache returns ErrCacheDisabled when no shared cache is configured
	PingCache(c ctx.Ctx) error
}
