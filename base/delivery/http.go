package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/erc721"
	"github.com/x-xyz/goauction/domain/escrow"
	"github.com/x-xyz/goauction/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

// StatusTooEarly is sent for actions that are valid later, like ending a running auction
const StatusTooEarly = 425

var errStatus = []struct {
	err    error
	status int
}{
	// auction errors may wrap a cause, their kind wins
	{auction.ErrInvalidInput, http.StatusBadRequest},
	{auction.ErrAuthorization, http.StatusForbidden},
	{auction.ErrStateConflict, http.StatusConflict},
	{auction.ErrEconomicViolation, http.StatusUnprocessableEntity},
	{auction.ErrTemporalViolation, StatusTooEarly},
	{auction.ErrPayoutFailure, http.StatusBadGateway},

	{domain.ErrNotFound, http.StatusNotFound},
	{query.ErrNotFound, http.StatusNotFound},
	{domain.ErrBadParamInput, http.StatusBadRequest},
	{domain.ErrInvalidAddress, http.StatusBadRequest},
	{domain.ErrInvalidNumberFormat, http.StatusBadRequest},
	{domain.ErrInvalidSignature, http.StatusUnauthorized},
	{domain.ErrUnauthorized, http.StatusUnauthorized},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrConflict, http.StatusConflict},
	{domain.ErrLockNotAcquired, http.StatusServiceUnavailable},
	{domain.ErrNotImplemented, http.StatusNotImplemented},

	{escrow.ErrInvalidAmount, http.StatusBadRequest},
	{escrow.ErrInsufficientBalance, http.StatusUnprocessableEntity},
	{escrow.ErrHoldMismatch, http.StatusConflict},
	{escrow.ErrHoldOccupied, http.StatusConflict},

	{erc721.ErrTokenNotMinted, http.StatusNotFound},
	{erc721.ErrNotTokenOwner, http.StatusForbidden},
	{erc721.ErrOperatorDenied, http.StatusForbidden},
}

// StatusOf returns the http status of a known error, or fallback
func StatusOf(err error, fallback int) int {
	for _, es := range errStatus {
		if errors.Is(err, es.err) {
			return es.status
		}
	}
	return fallback
}

// MakeJsonResp writes data in the response envelope. An error picks its own
// status when it is known; auction errors carry their details as data.
func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = StatusOf(err, status)
		var aerr *auction.Error
		if errors.As(err, &aerr) {
			data = aerr.Detail()
		} else {
			data = err.Error()
		}
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
