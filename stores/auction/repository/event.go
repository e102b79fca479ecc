package repository

import (
	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/database/mongoclient"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/service/query"
)

type eventFilter struct {
	Collection domain.Address     `bson:"collection"`
	TokenId    domain.TokenId     `bson:"tokenId"`
	Type       *auction.EventType `bson:"type,omitempty"`
}

type eventRepoImpl struct {
	q query.Mongo
}

func NewEventRepo(q query.Mongo) auction.EventRepo {
	return &eventRepoImpl{q}
}

func (im *eventRepoImpl) Insert(ctx ctx.Ctx, e *auction.Event) error {
	e.Collection = e.Collection.ToLower()
	if err := im.q.Insert(ctx, domain.TableAuctionEvents, e); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"event": *e,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *eventRepoImpl) FindAll(ctx ctx.Ctx, key auction.Key, optFns ...auction.EventFindAllOptionsFunc) ([]*auction.Event, error) {
	opts, err := auction.GetEventFindAllOptions(optFns...)
	if err != nil {
		ctx.WithField("err", err).Error("failed to auction.GetEventFindAllOptions")
		return nil, err
	}

	qry, err := mongoclient.MakeBsonM(eventFilter{
		Collection: key.Collection.ToLower(),
		TokenId:    key.TokenId,
		Type:       opts.Type,
	})
	if err != nil {
		ctx.WithField("err", err).Error("failed to mongoclient.MakeBsonM")
		return nil, err
	}

	offset, limit := 0, 0
	if opts.Offset != nil {
		offset = int(*opts.Offset)
	}
	if opts.Limit != nil {
		limit = int(*opts.Limit)
	}

	res := []*auction.Event{}
	if err := im.q.Search(ctx, domain.TableAuctionEvents, offset, limit, "createdAt", qry, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}
	return res, nil
}
