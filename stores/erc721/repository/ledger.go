package repository

import (
	"time"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/database/mongoclient"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/erc721"
	"github.com/x-xyz/goauction/service/query"
)

type holdingId struct {
	Collection domain.Address `bson:"collection"`
	TokenId    domain.TokenId `bson:"tokenId"`
}

type approvalId struct {
	Collection domain.Address `bson:"collection"`
	Owner      domain.Address `bson:"owner"`
	Operator   domain.Address `bson:"operator"`
}

type holding struct {
	erc721.Holding `bson:",inline"`
	UpdatedAt      time.Time `bson:"updatedAt"`
}

type ledgerImpl struct {
	q        query.Mongo
	operator domain.Address
}

// NewLedger keeps token custody in the service's own database. operator is
// the account TransferFrom acts as.
func NewLedger(q query.Mongo, operator domain.Address) erc721.LedgerRegistry {
	return &ledgerImpl{q: q, operator: operator.ToLower()}
}

func (im *ledgerImpl) Operator() domain.Address {
	return im.operator
}

func (im *ledgerImpl) findHolding(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId) (*holding, error) {
	qry, err := mongoclient.MakeBsonM(holdingId{collection.ToLower(), tokenId.Canonical()})
	if err != nil {
		c.WithField("err", err).Error("failed to mongoclient.MakeBsonM")
		return nil, err
	}
	res := &holding{}
	if err := im.q.FindOne(c, domain.TableErc721Holdings, qry, res); err == query.ErrNotFound {
		return nil, erc721.ErrTokenNotMinted
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "query": qry}).Error("failed to q.FindOne")
		return nil, err
	}
	return res, nil
}

func (im *ledgerImpl) OwnerOf(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId) (domain.Address, error) {
	h, err := im.findHolding(c, collection, tokenId)
	if err != nil {
		return "", err
	}
	return h.Owner, nil
}

func (im *ledgerImpl) IsApprovedForAll(c ctx.Ctx, collection domain.Address, owner, operator domain.Address) (bool, error) {
	qry, err := mongoclient.MakeBsonM(approvalId{collection.ToLower(), owner.ToLower(), operator.ToLower()})
	if err != nil {
		c.WithField("err", err).Error("failed to mongoclient.MakeBsonM")
		return false, err
	}
	res := erc721.Approval{}
	if err := im.q.FindOne(c, domain.TableErc721Approvals, qry, &res); err == query.ErrNotFound {
		return false, nil
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "query": qry}).Error("failed to q.FindOne")
		return false, err
	}
	return res.Approved, nil
}

func (im *ledgerImpl) TransferFrom(c ctx.Ctx, collection domain.Address, from, to domain.Address, tokenId domain.TokenId) error {
	return im.q.RunWithTransaction(c, func(c ctx.Ctx) error {
		h, err := im.findHolding(c, collection, tokenId)
		if err != nil {
			return err
		}
		if !h.Owner.Equals(from) {
			return erc721.ErrNotTokenOwner
		}
		if !im.operator.Equals(from) {
			if ok, err := im.IsApprovedForAll(c, collection, from, im.operator); err != nil {
				return err
			} else if !ok {
				return erc721.ErrOperatorDenied
			}
		}

		h.Owner = to.ToLower()
		h.UpdatedAt = time.Now()
		selector, _ := mongoclient.MakeBsonM(holdingId{h.Collection, h.TokenId})
		if err := im.q.Upsert(c, domain.TableErc721Holdings, selector, h); err != nil {
			c.WithFields(log.Fields{"err": err, "selector": selector}).Error("failed to q.Upsert")
			return err
		}
		c.WithFields(log.Fields{
			"collection": collection,
			"tokenId":    tokenId,
			"from":       from,
			"to":         to,
		}).Info("token transferred")
		return nil
	})
}

func (im *ledgerImpl) Mint(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId, to domain.Address) error {
	if _, err := tokenId.ToBigInt(); err != nil {
		return domain.ErrInvalidNumberFormat
	}
	return im.q.RunWithTransaction(c, func(c ctx.Ctx) error {
		if _, err := im.findHolding(c, collection, tokenId); err == nil {
			return domain.ErrConflict
		} else if err != erc721.ErrTokenNotMinted {
			return err
		}
		h := &holding{
			Holding: erc721.Holding{
				Collection: collection.ToLower(),
				TokenId:    tokenId.Canonical(),
				Owner:      to.ToLower(),
			},
			UpdatedAt: time.Now(),
		}
		if err := im.q.Insert(c, domain.TableErc721Holdings, h); err != nil {
			c.WithField("err", err).Error("failed to q.Insert")
			return err
		}
		return nil
	})
}

func (im *ledgerImpl) SetApprovalForAll(c ctx.Ctx, collection domain.Address, owner, operator domain.Address, approved bool) error {
	id := approvalId{collection.ToLower(), owner.ToLower(), operator.ToLower()}
	selector, err := mongoclient.MakeBsonM(id)
	if err != nil {
		c.WithField("err", err).Error("failed to mongoclient.MakeBsonM")
		return err
	}
	a := erc721.Approval{
		Collection: id.Collection,
		Owner:      id.Owner,
		Operator:   id.Operator,
		Approved:   approved,
	}
	if err := im.q.Upsert(c, domain.TableErc721Approvals, selector, a); err != nil {
		c.WithFields(log.Fields{"err": err, "selector": selector}).Error("failed to q.Upsert")
		return err
	}
	return nil
}
