package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRedisKey(t *testing.T) {
	req := require.New(t)
	req.Equal("auctionLock:0xabc:1", RedisKey(PfxAuctionLock, "0xabc", "1"))
	req.Equal("nonce", RedisKey(PfxNonce))
}

func TestGetPrefix(t *testing.T) {
	cases := []struct {
		key    string
		expect string
	}{
		{"auction:0xabc:1", "auction:0xabc"},
		{"nonce:0xabc", "nonce"},
		{"healthcheck", ""},
	}
	for _, c := range cases {
		require.Equal(t, c.expect, GetPrefix(c.key), c.key)
	}
}
