package repository

import (
	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/database/mongoclient"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/escrow"
	"github.com/x-xyz/goauction/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type accountId struct {
	Address domain.Address `bson:"address"`
}

type holdId struct {
	Collection domain.Address `bson:"collection"`
	TokenId    domain.TokenId `bson:"tokenId"`
}

type escrowRepoImpl struct {
	q query.Mongo
}

func NewEscrowRepo(q query.Mongo) escrow.Repo {
	return &escrowRepoImpl{q}
}

func (im *escrowRepoImpl) FindAccount(ctx ctx.Ctx, address domain.Address) (*escrow.Account, error) {
	qry, err := mongoclient.MakeBsonM(accountId{address.ToLower()})
	if err != nil {
		ctx.WithField("err", err).Error("failed to mongoclient.MakeBsonM")
		return nil, err
	}

	res := escrow.Account{}
	err = im.q.FindOne(ctx, domain.TableEscrowAccounts, qry, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return &res, nil
}

func (im *escrowRepoImpl) UpsertAccount(ctx ctx.Ctx, a *escrow.Account) error {
	a.Address = a.Address.ToLower()
	selector, err := mongoclient.MakeBsonM(accountId{a.Address})
	if err != nil {
		ctx.WithField("err", err).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	if err := im.q.Upsert(ctx, domain.TableEscrowAccounts, selector, a); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
		}).Error("failed to q.Upsert")
		return err
	}
	return nil
}

func (im *escrowRepoImpl) FindHold(ctx ctx.Ctx, collection domain.Address, tokenId domain.TokenId) (*escrow.Hold, error) {
	qry, err := mongoclient.MakeBsonM(holdId{collection.ToLower(), tokenId})
	if err != nil {
		ctx.WithField("err", err).Error("failed to mongoclient.MakeBsonM")
		return nil, err
	}

	res := escrow.Hold{}
	err = im.q.FindOne(ctx, domain.TableEscrowHolds, qry, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return &res, nil
}

func (im *escrowRepoImpl) UpsertHold(ctx ctx.Ctx, h *escrow.Hold) error {
	h.Collection = h.Collection.ToLower()
	selector, err := mongoclient.MakeBsonM(holdId{h.Collection, h.TokenId})
	if err != nil {
		ctx.WithField("err", err).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	if err := im.q.Upsert(ctx, domain.TableEscrowHolds, selector, h); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
		}).Error("failed to q.Upsert")
		return err
	}
	return nil
}

func (im *escrowRepoImpl) RemoveHold(ctx ctx.Ctx, collection domain.Address, tokenId domain.TokenId) error {
	selector, err := mongoclient.MakeBsonM(holdId{collection.ToLower(), tokenId})
	if err != nil {
		ctx.WithField("err", err).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Remove(ctx, domain.TableEscrowHolds, selector)
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
		}).Error("failed to q.Remove")
		return err
	}
	return nil
}

func (im *escrowRepoImpl) InsertEntry(ctx ctx.Ctx, e *escrow.Entry) error {
	if err := im.q.Insert(ctx, domain.TableEscrowEntries, e); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"entry": *e,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *escrowRepoImpl) FindEntries(ctx ctx.Ctx, address domain.Address, offset, limit int) ([]*escrow.Entry, error) {
	qry := bson.M{"address": address.ToLower()}
	res := []*escrow.Entry{}
	if err := im.q.Search(ctx, domain.TableEscrowEntries, offset, limit, "-createdAt", qry, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}
	return res, nil
}
