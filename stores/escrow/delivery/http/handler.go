package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/delivery"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/escrow"
	"github.com/x-xyz/goauction/middleware"
	authMiddleware "github.com/x-xyz/goauction/stores/auth/delivery/http/middleware"
)

const maxEntriesLimit = 100

type handler struct {
	escrow escrow.UseCase
}

func New(e *echo.Echo, es escrow.UseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{
		escrow: es,
	}
	g := e.Group("/escrow")
	g.POST("/deposit", h.deposit, authMiddleware.Auth(), authMiddleware.IsAdmin())
	g.POST("/withdraw", h.withdraw, authMiddleware.Auth())
	g.GET("/balance/:address", h.balance, middleware.IsValidAddress("address"))
	g.GET("/entries/:address", h.entries, middleware.IsValidAddress("address"))
}

type amountParams struct {
	Address domain.Address `json:"address" example:"0x70997970c51812dc3a010c7d01b50e0d17dc79c8"` // credited account, deposit only
	Amount  string         `json:"amount" validate:"required" example:"1000000000000000000"`       // wei
}

// deposit
//
//	@Summary		Deposit
//	@Description	Credit funds that arrived off-band to an account. Admin only.
//	@Tags			escrow
//	@Security		ApiKeyAuth
//	@Accept			json
//	@Produce		json
//	@Param			params	body		http.amountParams	true	"params"
//	@Success		200		{object}	object{data=escrow.Account}
//	@Failure		400
//	@Failure		403
//	@Router			/escrow/deposit [post]
func (h *handler) deposit(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &amountParams{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if !p.Address.IsValid() {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAddress)
	}
	amount, err := domain.ParseWei(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	a, err := h.escrow.Deposit(ctx, p.Address, amount)
	if err != nil {
		ctx.WithField("err", err).Error("escrow.Deposit failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, a)
}

// withdraw
//
//	@Summary		Withdraw
//	@Description	Debit the caller's free balance. Held funds are not withdrawable.
//	@Tags			escrow
//	@Security		ApiKeyAuth
//	@Accept			json
//	@Produce		json
//	@Param			params	body		http.amountParams	true	"params"
//	@Success		200		{object}	object{data=escrow.Account}
//	@Failure		400
//	@Failure		422
//	@Router			/escrow/withdraw [post]
func (h *handler) withdraw(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	p := &amountParams{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	amount, err := domain.ParseWei(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	a, err := h.escrow.Withdraw(ctx, caller, amount)
	if err != nil {
		ctx.WithField("err", err).Warn("escrow.Withdraw failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, a)
}

// balance
//
//	@Summary		Get free balance
//	@Tags			escrow
//	@Produce		json
//	@Param			address	path		string	true	"account address"
//	@Success		200		{object}	object{data=string}
//	@Failure		400
//	@Router			/escrow/balance/{address} [get]
func (h *handler) balance(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	b, err := h.escrow.BalanceOf(ctx, domain.Address(c.Param("address")))
	if err != nil {
		ctx.WithField("err", err).Error("escrow.BalanceOf failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, b.String())
}

// entries
//
//	@Summary		Get ledger entries
//	@Description	Deposits, withdrawals, holds and releases of an account, newest first
//	@Tags			escrow
//	@Produce		json
//	@Param			address	path		string	true	"account address"
//	@Param			offset	query		int		false	"paging offset"
//	@Param			limit	query		int		false	"paging size"
//	@Success		200		{object}	object{data=[]escrow.Entry}
//	@Failure		400
//	@Router			/escrow/entries/{address} [get]
func (h *handler) entries(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Offset int `query:"offset"`
		Limit  int `query:"limit"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if p.Offset < 0 {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if p.Limit <= 0 || p.Limit > maxEntriesLimit {
		p.Limit = maxEntriesLimit
	}

	res, err := h.escrow.Entries(ctx, domain.Address(c.Param("address")), p.Offset, p.Limit)
	if err != nil {
		ctx.WithField("err", err).Error("escrow.Entries failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
