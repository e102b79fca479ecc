package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/service/cache"
	"github.com/x-xyz/goauction/service/cache/provider"
	"github.com/x-xyz/goauction/service/cache/provider/primitive"
)

type cacheMiddlewareSuite struct {
	suite.Suite

	provider provider.Provider
	service  cache.Service
}

func (s *cacheMiddlewareSuite) SetupTest() {
	s.provider = primitive.NewPrimitive("httpCacheMiddleware", 1024*1024)
	s.service = cache.New(cache.ServiceConfig{
		Ttl:   30 * time.Second,
		Pfx:   "httpCacheMiddleware",
		Cache: s.provider,
	})
}

func TestCacheMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(cacheMiddlewareSuite))
}

func (s *cacheMiddlewareSuite) serve(target string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("ctx", ctx.Background())
	s.NoError(CacheHttp(s.service)(h)(c))
	return rec
}

func (s *cacheMiddlewareSuite) TestCacheMiddleware() {
	rec := s.serve("/?b=2&a=1", func(c echo.Context) error {
		return c.String(http.StatusOK, "Hello, World")
	})
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Hello, World", rec.Body.String())

	// same query in another order hits the cache
	rec = s.serve("/?a=1&b=2", func(c echo.Context) error {
		return c.String(http.StatusOK, "Hello, again")
	})
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Hello, World", rec.Body.String())

	_, _, err := s.provider.Get(ctx.Background(), "httpCacheMiddleware:"+generateKey("/?a=1&b=2"))
	s.NoError(err)
}

func (s *cacheMiddlewareSuite) TestFailureIsNotCached() {
	rec := s.serve("/fail", func(c echo.Context) error {
		return c.String(http.StatusBadRequest, "nope")
	})
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.serve("/fail", func(c echo.Context) error {
		return c.String(http.StatusOK, "fine")
	})
	s.Equal("fine", rec.Body.String())
}
