package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/delivery"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/erc721"
	"github.com/x-xyz/goauction/middleware"
	authMiddleware "github.com/x-xyz/goauction/stores/auth/delivery/http/middleware"
)

type handler struct {
	registry erc721.Registry
	ledger   erc721.LedgerRegistry
}

// New registers the read routes for any registry. Mint and approval only
// exist when tokens are kept in the service's own ledger.
func New(e *echo.Echo, registry erc721.Registry, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{
		registry: registry,
	}
	g := e.Group("/registry")
	g.GET("/operator", h.operator)
	g.GET("/:collection/:tokenId/owner", h.owner, middleware.IsValidAddress("collection"))

	if ledger, ok := registry.(erc721.LedgerRegistry); ok {
		h.ledger = ledger
		g.POST("/:collection/:tokenId/mint", h.mint, middleware.IsValidAddress("collection"), authMiddleware.Auth(), authMiddleware.IsAdmin())
		g.POST("/:collection/approval", h.approval, middleware.IsValidAddress("collection"), authMiddleware.Auth())
	}
}

// operator
//
//	@Summary		Get operator
//	@Description	Sellers approve this address before listing
//	@Tags			registry
//	@Produce		json
//	@Success		200	{object}	object{data=string}
//	@Router			/registry/operator [get]
func (h *handler) operator(c echo.Context) error {
	return delivery.MakeJsonResp(c, http.StatusOK, h.registry.Operator())
}

// owner
//
//	@Summary		Get token owner
//	@Tags			registry
//	@Produce		json
//	@Param			collection	path		string	true	"token contract"
//	@Param			tokenId		path		string	true	"token id"
//	@Success		200			{object}	object{data=string}
//	@Failure		404
//	@Router			/registry/{collection}/{tokenId}/owner [get]
func (h *handler) owner(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	owner, err := h.registry.OwnerOf(ctx, domain.Address(c.Param("collection")), domain.TokenId(c.Param("tokenId")))
	if err != nil {
		ctx.WithField("err", err).Warn("registry.OwnerOf failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, owner)
}

// mint
//
//	@Summary		Mint token
//	@Description	Ledger registry only. Admin only.
//	@Tags			registry
//	@Security		ApiKeyAuth
//	@Accept			json
//	@Produce		json
//	@Param			collection	path	string				true	"token contract"
//	@Param			tokenId		path	string				true	"token id"
//	@Param			params		body	http.mint.params	true	"params"
//	@Success		204
//	@Failure		400
//	@Failure		409
//	@Router			/registry/{collection}/{tokenId}/mint [post]
func (h *handler) mint(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		To domain.Address `json:"to" validate:"required,eth_addr" example:"0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.ledger.Mint(ctx, domain.Address(c.Param("collection")), domain.TokenId(c.Param("tokenId")), p.To); err != nil {
		ctx.WithField("err", err).Error("registry.Mint failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// approval
//
//	@Summary		Approve operator
//	@Description	Ledger registry only. Grants or revokes the service operator over the caller's tokens of a collection.
//	@Tags			registry
//	@Security		ApiKeyAuth
//	@Accept			json
//	@Produce		json
//	@Param			collection	path	string					true	"token contract"
//	@Param			params		body	http.approval.params	true	"params"
//	@Success		204
//	@Failure		400
//	@Router			/registry/{collection}/approval [post]
func (h *handler) approval(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type params struct {
		Approved bool `json:"approved"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.ledger.SetApprovalForAll(ctx, domain.Address(c.Param("collection")), caller, h.ledger.Operator(), p.Approved); err != nil {
		ctx.WithField("err", err).Error("registry.SetApprovalForAll failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return c.NoContent(http.StatusNoContent)
}
