package query

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/database/mongoclient"
	"github.com/x-xyz/goauction/domain"
)

var (
	mockCTX = ctx.Background()
)

const (
	mockTable = domain.TableHealthCheck
	dbName    = "testdb"
)

type Dummy struct {
	Dummy  string `json:"dummy" bson:"dummy"`
	Update string `json:"updatekey" bson:"updatekey"`
}

// querySuite is run against every Mongo implementation
type querySuite struct {
	suite.Suite
	newStore func() Mongo
	im       Mongo
}

func (q *querySuite) SetupTest() {
	q.im = q.newStore()
}

func TestMemorySuite(t *testing.T) {
	suite.Run(t, &querySuite{newStore: NewMemory})
}

// TestMongoSuite needs a replica set for transactions, e.g.
// MONGO_URL=mongodb://localhost:27017/?replicaSet=rs0
func TestMongoSuite(t *testing.T) {
	uri := os.Getenv("MONGO_URL")
	if uri == "" {
		t.Skip("MONGO_URL not set")
	}
	client := mongoclient.MustConnectMongoClient(mongoclient.Cfg{Uri: uri, AuthDb: "admin", Db: dbName, PoolMultiplier: 1})
	suite.Run(t, &querySuite{newStore: func() Mongo {
		if err := client.Database(dbName).Collection(string(mockTable)).Drop(mockCTX); err != nil {
			t.Fatal(err)
		}
		return New(client, false)
	}})
}

func (q *querySuite) TestFindOne() {
	err := q.im.Upsert(mockCTX, mockTable, bson.M{"dummy": "test-value1"}, bson.M{"dummy": "test-value1", "updatekey": "test-value2"})
	q.NoError(err)

	result := &Dummy{}
	err = q.im.FindOne(mockCTX, mockTable, bson.M{"dummy": "test-value1"}, result)
	q.Require().NoError(err)
	q.Equal(Dummy{"test-value1", "test-value2"}, *result)

	err = q.im.FindOne(mockCTX, mockTable, bson.M{"dummy": "test-value3"}, result)
	q.Equal(ErrNotFound, err)
}

func (q *querySuite) TestInsert() {
	q.NoError(q.im.Insert(mockCTX, mockTable, bson.M{"dummy": "test-value1", "updatekey": "a"}))
	q.NoError(q.im.Insert(mockCTX, mockTable, bson.M{"dummy": "test-value1", "updatekey": "b"}))

	cnt, err := q.im.Count(mockCTX, mockTable, bson.M{"dummy": "test-value1"})
	q.NoError(err)
	q.Equal(2, cnt)
}

func (q *querySuite) TestInsertShouldFailWithDuplicateKey() {
	q.NoError(q.im.Insert(mockCTX, mockTable, bson.M{"_id": "id-1", "dummy": "a"}))
	q.Equal(ErrDuplicateKey, q.im.Insert(mockCTX, mockTable, bson.M{"_id": "id-1", "dummy": "b"}))
	q.NoError(q.im.Insert(mockCTX, mockTable, bson.M{"_id": "id-2", "dummy": "b"}))
}

func (q *querySuite) TestUpsert() {
	type Dummy3 struct {
		Dummy  string `bson:"dummy"`
		Update string `bson:"updatekey"`
		Dummy2 string `bson:"dummy2"`
	}

	err := q.im.Upsert(mockCTX, mockTable, bson.M{"dummy": "test-value1"},
		bson.M{"dummy": "test-value1", "updatekey": "test-value2", "dummy2": "test-value"})
	q.Require().NoError(err)

	v := &Dummy3{}
	q.Require().NoError(q.im.FindOne(mockCTX, mockTable, bson.M{"dummy": "test-value1"}, v))
	q.Equal(Dummy3{"test-value1", "test-value2", "test-value"}, *v)

	// an upsert replaces the whole document
	q.Require().NoError(q.im.Upsert(mockCTX, mockTable, bson.M{"dummy": "test-value1"}, Dummy{"test-value1", "test-value3"}))
	v = &Dummy3{}
	q.Require().NoError(q.im.FindOne(mockCTX, mockTable, bson.M{"dummy": "test-value1"}, v))
	q.Equal(Dummy3{"test-value1", "test-value3", ""}, *v)

	cnt, err := q.im.Count(mockCTX, mockTable, bson.M{})
	q.NoError(err)
	q.Equal(1, cnt)
}

func (q *querySuite) TestSearch() {
	for _, d := range []Dummy{{"b", "x"}, {"a", "x"}, {"c", "x"}, {"d", "y"}} {
		q.Require().NoError(q.im.Insert(mockCTX, mockTable, d))
	}

	var result []Dummy
	q.Require().NoError(q.im.Search(mockCTX, mockTable, 0, 5, "dummy", bson.M{"updatekey": "x"}, &result))
	q.Equal([]Dummy{{"a", "x"}, {"b", "x"}, {"c", "x"}}, result)

	q.Require().NoError(q.im.Search(mockCTX, mockTable, 1, 1, "-dummy", bson.M{"updatekey": "x"}, &result))
	q.Equal([]Dummy{{"b", "x"}}, result)

	ptrs := []*Dummy{}
	q.Require().NoError(q.im.Search(mockCTX, mockTable, 0, 0, "dummy", bson.M{}, &ptrs))
	q.Len(ptrs, 4)
}

func (q *querySuite) TestRemove() {
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, Dummy{"a", "x"}))
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, Dummy{"b", "x"}))

	q.NoError(q.im.Remove(mockCTX, mockTable, bson.M{"dummy": "a"}))
	q.Equal(ErrNotFound, q.im.Remove(mockCTX, mockTable, bson.M{"dummy": "a"}))

	q.Require().NoError(q.im.Insert(mockCTX, mockTable, Dummy{"c", "x"}))
	cnt, err := q.im.RemoveAll(mockCTX, mockTable, bson.M{"updatekey": "x"})
	q.NoError(err)
	q.Equal(int64(2), cnt)
	q.Equal(ErrNotFound, q.im.FindOne(mockCTX, mockTable, bson.M{"dummy": "b"}, &Dummy{}))
}

func (q *querySuite) TestPatch() {
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, Dummy{"test-multi", "a"}))
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, Dummy{"test-multi", "b"}))

	q.Require().NoError(q.im.Patch(mockCTX, mockTable, bson.M{"dummy": "test-multi"}, bson.M{"updatekey": "c"}))
	cnt, err := q.im.Count(mockCTX, mockTable, bson.M{"updatekey": "c"})
	q.NoError(err)
	q.Equal(1, cnt)

	q.Require().NoError(q.im.Patch(mockCTX, mockTable, bson.M{"dummy": "test-multi"}, bson.M{"updatekey": "d"}, WithPatchMany(true)))
	cnt, err = q.im.Count(mockCTX, mockTable, bson.M{"updatekey": "d"})
	q.NoError(err)
	q.Equal(2, cnt)

	err = q.im.Patch(mockCTX, mockTable, bson.M{"dummy": "test-not-exist"}, bson.M{"updatekey": "e"}, WithPatchMany(true))
	q.Equal(ErrNotFound, err)
}

func (q *querySuite) TestRunWithTransaction() {
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, Dummy{"kept", "x"}))

	boom := errors.New("boom")
	err := q.im.RunWithTransaction(mockCTX, func(c ctx.Ctx) error {
		if err := q.im.Insert(c, mockTable, Dummy{"dropped", "x"}); err != nil {
			return err
		}
		// a nested transaction joins the outer one
		if err := q.im.RunWithTransaction(c, func(c ctx.Ctx) error {
			return q.im.Patch(c, mockTable, bson.M{"dummy": "kept"}, bson.M{"updatekey": "y"})
		}); err != nil {
			return err
		}
		return boom
	})
	q.Equal(boom, err)

	q.Equal(ErrNotFound, q.im.FindOne(mockCTX, mockTable, bson.M{"dummy": "dropped"}, &Dummy{}))
	v := &Dummy{}
	q.Require().NoError(q.im.FindOne(mockCTX, mockTable, bson.M{"dummy": "kept"}, v))
	q.Equal("x", v.Update)

	q.Require().NoError(q.im.RunWithTransaction(mockCTX, func(c ctx.Ctx) error {
		return q.im.Insert(c, mockTable, Dummy{"committed", "x"})
	}))
	q.NoError(q.im.FindOne(mockCTX, mockTable, bson.M{"dummy": "committed"}, &Dummy{}))
}

func (q *querySuite) TestPing() {
	q.NoError(q.im.Ping(mockCTX))
}
