package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/goauction/base/ctx"
	hcdomain "github.com/x-xyz/goauction/domain/healthcheck"
	mHealthcheck "github.com/x-xyz/goauction/domain/healthcheck/mocks"
)

func TestCheck(t *testing.T) {
	req := require.New(t)
	us := &mHealthcheck.HealthCheckUsecase{}
	h := &healthCheckHandler{healthCheck: us}
	e := echo.New()

	call := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
		c.Set("ctx", ctx.Background())
		req.NoError(h.check(c))
		return rec
	}

	us.On("Check", mock.Anything).Return(&hcdomain.Report{
		Healthy:    true,
		Components: map[string]string{"db": "ok", "cache": "disabled"},
	}).Once()
	rec := call()
	req.Equal(http.StatusOK, rec.Code)
	req.JSONEq(`{"healthy":true,"components":{"db":"ok","cache":"disabled"}}`, rec.Body.String())

	us.On("Check", mock.Anything).Return(&hcdomain.Report{
		Healthy:    false,
		Components: map[string]string{"db": "server selection timeout", "cache": "ok"},
	}).Once()
	rec = call()
	req.Equal(http.StatusServiceUnavailable, rec.Code)
	req.Contains(rec.Body.String(), "server selection timeout")

	us.AssertExpectations(t)
}
