package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/goauction/base/ctx"
)

func TestIsValidAddress(t *testing.T) {
	req := require.New(t)
	e := echo.New()
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }

	cases := []struct {
		address string
		code    int
	}{
		{"0x5fbdb2315678afecb367f032d93f642f64180aa3", http.StatusNoContent},
		{"0x5FbDB2315678afecb367f032d93F642f64180aa3", http.StatusNoContent},
		{"0x5fbdb2315678afecb367f032d93f642f64180a", http.StatusBadRequest},
		{"punk", http.StatusBadRequest},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		ec := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		ec.SetParamNames("collection")
		ec.SetParamValues(c.address)
		req.NoError(IsValidAddress("collection")(ok)(ec))
		req.Equal(c.code, rec.Code, c.address)
	}
}

func TestAddContext(t *testing.T) {
	req := require.New(t)
	e := echo.New()
	rec := httptest.NewRecorder()
	ec := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	ec.Response().Header().Set(echo.HeaderXRequestID, "req-1")

	h := InitMiddleware().AddContext()(func(c echo.Context) error {
		cont, ok := c.Get("ctx").(ctx.Ctx)
		req.True(ok)
		req.Equal("req-1", cont.Value("requestId"))
		return nil
	})
	req.NoError(h(ec))
}
