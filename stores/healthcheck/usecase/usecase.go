package usecase

import (
	"github.com/x-xyz/goauction/base/ctx"
	hcdomain "github.com/x-xyz/goauction/domain/healthcheck"
)

type impl struct {
	repo hcdomain.HealthCheckRepo
}

func New(repo hcdomain.HealthCheckRepo) hcdomain.HealthCheckUsecase {
	return &impl{
		repo: repo,
	}
}

func (im *impl) Check(c ctx.Ctx) *hcdomain.Report {
	r := &hcdomain.Report{Healthy: true, Components: map[string]string{}}

	if err := im.repo.PingDB(c); err != nil {
		r.Healthy = false
		r.Components[hcdomain.ComponentDB] = err.Error()
	} else {
		r.Components[hcdomain.ComponentDB] = hcdomain.StatusOk
	}

	// the service runs on local caches alone, so a missing redis is not a failure
	switch err := im.repo.PingCache(c); err {
	case nil:
		r.Components[hcdomain.ComponentCache] = hcdomain.StatusOk
	case hcdomain.ErrCacheDisabled:
		r.Components[hcdomain.ComponentCache] = hcdomain.StatusDisabled
	default:
		r.Healthy = false
		r.Components[hcdomain.ComponentCache] = err.Error()
	}
	return r
}
