package http

import (
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/delivery"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/middleware"
	authMiddleware "github.com/x-xyz/goauction/stores/auth/delivery/http/middleware"
)

const maxEventsLimit = 100

// longest duration in seconds that still fits a time.Duration
const maxDurationSeconds = math.MaxInt64 / int64(time.Second)

type handler struct {
	auction auction.UseCase
}

// New registers the auction routes. eventsMiddleware wraps the events listing, e.g. a response cache.
func New(e *echo.Echo, au auction.UseCase, authMiddleware *authMiddleware.AuthMiddleware, eventsMiddleware ...echo.MiddlewareFunc) {
	h := &handler{
		auction: au,
	}
	g := e.Group("/auction")
	g.POST("", h.create, authMiddleware.Auth())
	g.GET("/:collection/:tokenId", h.get, middleware.IsValidAddress("collection"))
	g.GET("/:collection/:tokenId/events", h.events, append([]echo.MiddlewareFunc{middleware.IsValidAddress("collection")}, eventsMiddleware...)...)
	g.POST("/:collection/:tokenId/bid", h.bid, middleware.IsValidAddress("collection"), authMiddleware.Auth())
	g.POST("/:collection/:tokenId/end", h.end, middleware.IsValidAddress("collection"), authMiddleware.Auth())
}

func keyOf(c echo.Context) auction.Key {
	return auction.NewKey(domain.Address(c.Param("collection")), domain.TokenId(c.Param("tokenId")))
}

// create
//
//	@Summary		Create auction
//	@Description	List a token the caller owns. The service operator must be approved for the collection.
//	@Tags			auction
//	@Security		ApiKeyAuth
//	@Accept			json
//	@Produce		json
//	@Param			params	body		http.create.params	true	"params"
//	@Success		201		{object}	object{data=auction.Auction}
//	@Failure		400		{object}	object{data=auction.Detail}
//	@Failure		403		{object}	object{data=auction.Detail}
//	@Failure		409		{object}	object{data=auction.Detail}
//	@Router			/auction [post]
func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type params struct {
		Collection    domain.Address `json:"collection" validate:"required" example:"0x5fbdb2315678afecb367f032d93f642f64180aa3"` // token contract
		TokenId       domain.TokenId `json:"tokenId" validate:"required" example:"1"`
		StartingPrice string         `json:"startingPrice" validate:"required" example:"1000000000000000000"` // wei
		Duration      int64          `json:"duration" example:"604800"`                                        // seconds
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if p.Duration > maxDurationSeconds || p.Duration < -maxDurationSeconds {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	price, err := domain.ParseWei(p.StartingPrice)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	a, err := h.auction.Create(ctx, caller, auction.CreateRequest{
		Collection:    p.Collection,
		TokenId:       p.TokenId,
		StartingPrice: price,
		Duration:      time.Duration(p.Duration) * time.Second,
	})
	if err != nil {
		ctx.WithField("err", err).Warn("auction.Create failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, a)
}

// get
//
//	@Summary		Get auction
//	@Description	A token that was never listed reports status 0 (NOT_STARTED)
//	@Tags			auction
//	@Produce		json
//	@Param			collection	path		string	true	"token contract"
//	@Param			tokenId		path		string	true	"token id"
//	@Success		200			{object}	object{data=auction.Auction}
//	@Failure		400
//	@Router			/auction/{collection}/{tokenId} [get]
func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	a, err := h.auction.Get(ctx, keyOf(c))
	if err != nil {
		ctx.WithField("err", err).Error("auction.Get failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, a)
}

// events
//
//	@Summary		Get auction events
//	@Description	Lifecycle events of a token, oldest first
//	@Tags			auction
//	@Produce		json
//	@Param			collection	path		string	true	"token contract"
//	@Param			tokenId		path		string	true	"token id"
//	@Param			type		query		string	false	"event type"	Enums(AuctionCreated, NewBid, AuctionEnded)
//	@Param			offset		query		int		false	"paging offset"
//	@Param			limit		query		int		false	"paging size"
//	@Success		200			{object}	object{data=[]auction.Event}
//	@Failure		400
//	@Router			/auction/{collection}/{tokenId}/events [get]
func (h *handler) events(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Type   string `query:"type"`
		Offset int32  `query:"offset"`
		Limit  int32  `query:"limit"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if p.Limit == 0 || p.Limit > maxEventsLimit {
		p.Limit = maxEventsLimit
	}

	opts := []auction.EventFindAllOptionsFunc{auction.EventWithPagination(p.Offset, p.Limit)}
	if p.Type != "" {
		opts = append(opts, auction.EventWithType(auction.EventType(p.Type)))
	}

	res, err := h.auction.Events(ctx, keyOf(c), opts...)
	if err != nil {
		ctx.WithField("err", err).Error("auction.Events failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// bid
//
//	@Summary		Bid
//	@Description	Moves value from the caller's escrow balance into the auction. The outbid bidder is refunded first.
//	@Tags			auction
//	@Security		ApiKeyAuth
//	@Accept			json
//	@Produce		json
//	@Param			collection	path		string			true	"token contract"
//	@Param			tokenId		path		string			true	"token id"
//	@Param			params		body		http.bid.params	true	"params"
//	@Success		200			{object}	object{data=auction.Auction}
//	@Failure		400
//	@Failure		409			{object}	object{data=auction.Detail}
//	@Failure		422			{object}	object{data=auction.Detail}
//	@Failure		502			{object}	object{data=auction.Detail}
//	@Router			/auction/{collection}/{tokenId}/bid [post]
func (h *handler) bid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type params struct {
		Value string `json:"value" validate:"required" example:"2000000000000000000"` // wei
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	value, err := domain.ParseWei(p.Value)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	a, err := h.auction.Bid(ctx, caller, keyOf(c), value)
	if err != nil {
		ctx.WithField("err", err).Warn("auction.Bid failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, a)
}

// end
//
//	@Summary		End auction
//	@Description	Seller settles an expired auction: token to the winner, highest bid to the seller
//	@Tags			auction
//	@Security		ApiKeyAuth
//	@Produce		json
//	@Param			collection	path		string	true	"token contract"
//	@Param			tokenId		path		string	true	"token id"
//	@Success		200			{object}	object{data=auction.Auction}
//	@Failure		403			{object}	object{data=auction.Detail}
//	@Failure		409			{object}	object{data=auction.Detail}
//	@Failure		425			{object}	object{data=auction.Detail}
//	@Failure		502			{object}	object{data=auction.Detail}
//	@Router			/auction/{collection}/{tokenId}/end [post]
func (h *handler) end(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	a, err := h.auction.End(ctx, caller, keyOf(c))
	if err != nil {
		ctx.WithField("err", err).Warn("auction.End failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, a)
}
