package mongoclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMakeBsonM(t *testing.T) {
	type eventFilter struct {
		Collection string  `bson:"collection"`
		TokenId    string  `bson:"tokenId"`
		Type       *string `bson:"type,omitempty"`
		Winner     *string `bson:"winner,omitempty"`
		Seller     string  `bson:"seller"`
		internal   string
	}

	typ := "NewBid"
	filter := &eventFilter{
		Collection: "0x5fbdb2315678afecb367f032d93f642f64180aa3",
		TokenId:    "1",
		Type:       &typ,
		internal:   "skipped",
	}

	updater, err := MakeBsonM(filter)

	assert.NoError(t, err)
	assert.Equal(
		t,
		bson.M{
			"collection": "0x5fbdb2315678afecb367f032d93f642f64180aa3",
			"tokenId":    "1",
			// pointers are unpacked
			"type": "NewBid",
			// seller is empty, so ignore
		},
		updater,
	)

	// values work as well as pointers
	updater, err = MakeBsonM(eventFilter{TokenId: "2"})
	assert.NoError(t, err)
	assert.Equal(t, bson.M{"tokenId": "2"}, updater)
}

func TestMakeBsonMRejectsNonStruct(t *testing.T) {
	_, err := MakeBsonM("0x5fbdb2315678afecb367f032d93f642f64180aa3")
	assert.Equal(t, ErrNotStruct, err)

	_, err = MakeBsonM(nil)
	assert.Equal(t, ErrNotStruct, err)
}
