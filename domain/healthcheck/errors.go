package healthcheck

import "errors"

var ErrCacheDisabled = errors.New("cache disabled")
