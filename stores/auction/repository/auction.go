package repository

import (
	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/database/mongoclient"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/service/query"
)

type auctionId struct {
	Collection domain.Address `bson:"collection"`
	TokenId    domain.TokenId `bson:"tokenId"`
}

type auctionRepoImpl struct {
	q query.Mongo
}

func NewAuctionRepo(q query.Mongo) auction.Repo {
	return &auctionRepoImpl{q}
}

func (im *auctionRepoImpl) FindOne(ctx ctx.Ctx, key auction.Key) (*auction.Auction, error) {
	qry, err := mongoclient.MakeBsonM(auctionId{key.Collection.ToLower(), key.TokenId})
	if err != nil {
		ctx.WithField("err", err).Error("failed to mongoclient.MakeBsonM")
		return nil, err
	}

	res := auction.Auction{}
	err = im.q.FindOne(ctx, domain.TableAuctions, qry, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	if res.Bidders == nil {
		res.Bidders = []auction.Bid{}
	}
	return &res, nil
}

// Upsert replaces the whole record of the key
func (im *auctionRepoImpl) Upsert(ctx ctx.Ctx, a *auction.Auction) error {
	a.Collection = a.Collection.ToLower()
	selector, err := mongoclient.MakeBsonM(auctionId{a.Collection, a.TokenId})
	if err != nil {
		ctx.WithField("err", err).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	if err := im.q.Upsert(ctx, domain.TableAuctions, selector, a); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
		}).Error("failed to q.Upsert")
		return err
	}
	return nil
}
