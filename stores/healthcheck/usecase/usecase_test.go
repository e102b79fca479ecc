package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/goauction/base/ctx"
	hcdomain "github.com/x-xyz/goauction/domain/healthcheck"
	"github.com/x-xyz/goauction/service/query"
	mRedis "github.com/x-xyz/goauction/service/redis/mocks"
	"github.com/x-xyz/goauction/stores/healthcheck/repository"
)

func TestCheck(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	req.Equal(&hcdomain.Report{
		Healthy:    true,
		Components: map[string]string{"db": "ok", "cache": "disabled"},
	}, New(repository.New(query.NewMemory(), nil)).Check(c))

	r := &mRedis.Service{}
	r.On("Set", mock.Anything, "healthcheck:testset", []byte("1"), mock.Anything).Return(nil).Once()
	req.Equal(&hcdomain.Report{
		Healthy:    true,
		Components: map[string]string{"db": "ok", "cache": "ok"},
	}, New(repository.New(query.NewMemory(), r)).Check(c))

	r.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("boom")).Once()
	req.Equal(&hcdomain.Report{
		Healthy:    false,
		Components: map[string]string{"db": "ok", "cache": "boom"},
	}, New(repository.New(query.NewMemory(), r)).Check(c))
	r.AssertExpectations(t)
}
