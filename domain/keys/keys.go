package keys

import (
	"strings"
)

const (
	// PfxHealthCheck is used for prefixing health check redis key
	PfxHealthCheck = "healthcheck"
	// PfxNonce is used for prefixing sign-in nonce redis key
	PfxNonce = "nonce"
	// PfxAuctionLock is used for prefixing the per-auction write lock
	PfxAuctionLock = "auctionLock"
	// PfxAuctionCache is used for prefixing cached auction records
	PfxAuctionCache = "auction"
	// PfxHttpCache is used for prefixing cached http responses
	PfxHttpCache = "httpCache"
)

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// GetPrefix extracts the prefix of a key, at most two components deep.
func GetPrefix(key string) string {
	s := strings.Split(key, ":")
	if len(s) > 2 {
		return strings.Join([]string{s[0], s[1]}, ":")
	} else if len(s) > 1 {
		return s[0]
	}
	return ""
}
