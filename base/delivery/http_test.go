package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/escrow"
)

var key = auction.NewKey("0x5fbdb2315678afecb367f032d93f642f64180aa3", "1")

func TestStatusOf(t *testing.T) {
	req := require.New(t)

	cases := []struct {
		err    error
		status int
	}{
		{auction.InvalidAddress(key), http.StatusBadRequest},
		{auction.NotOwner(key, "0x1", "0x2"), http.StatusForbidden},
		{auction.AuctionAlreadyActive(key), http.StatusConflict},
		{auction.InsufficientAmount(key, "1"), http.StatusUnprocessableEntity},
		{auction.AuctionNotOverYet(key, time.Unix(1, 0)), StatusTooEarly},
		{auction.AuctionIsOver(key, time.Unix(1, 0)), StatusTooEarly},
		// the kind wins over a wrapped cause
		{auction.PayoutFailure(key, "0x1", "1", domain.ErrNotFound), http.StatusBadGateway},
		{auction.InsufficientFunds(key, "0x1", "1", escrow.ErrInsufficientBalance), http.StatusUnprocessableEntity},
		{domain.ErrNotFound, http.StatusNotFound},
		{xerrors.Errorf("find: %w", domain.ErrNotFound), http.StatusNotFound},
		{domain.ErrLockNotAcquired, http.StatusServiceUnavailable},
		{domain.ErrInvalidSignature, http.StatusUnauthorized},
		{escrow.ErrInsufficientBalance, http.StatusUnprocessableEntity},
		{errors.New("unknown"), http.StatusTeapot},
	}
	for _, c := range cases {
		req.Equal(c.status, StatusOf(c.err, http.StatusTeapot), c.err.Error())
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	res := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func TestMakeJsonResp(t *testing.T) {
	req := require.New(t)
	e := echo.New()

	rec := httptest.NewRecorder()
	req.NoError(MakeJsonResp(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec), http.StatusOK, "hi"))
	req.Equal(http.StatusOK, rec.Code)
	req.Equal(map[string]interface{}{"status": "success", "data": "hi"}, decode(t, rec))

	rec = httptest.NewRecorder()
	err := auction.CallerIsNotSeller(key, "0x1", "0x2")
	req.NoError(MakeJsonResp(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec), http.StatusInternalServerError, err))
	req.Equal(http.StatusForbidden, rec.Code)
	body := decode(t, rec)
	req.Equal("fail", body["status"])
	data := body["data"].(map[string]interface{})
	req.Equal("CallerIsNotTheSeller", data["code"])
	req.Equal("authorization error", data["kind"])
	req.Equal("0x1", data["caller"])
	req.Equal("0x2", data["seller"])

	rec = httptest.NewRecorder()
	req.NoError(MakeJsonResp(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec), http.StatusInternalServerError, errors.New("boom")))
	req.Equal(http.StatusInternalServerError, rec.Code)
	req.Equal(map[string]interface{}{"status": "fail", "data": "boom"}, decode(t, rec))
}
