package locker

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
)

var (
	mockCtx = ctx.Background()
)

type memTestSuite struct {
	suite.Suite
	im *memImpl
}

func (ts *memTestSuite) SetupTest() {
	ts.im = NewMemory(Cfg{Wait: 50 * time.Millisecond}).(*memImpl)
}

func TestMemory(t *testing.T) {
	suite.Run(t, new(memTestSuite))
}

func (ts *memTestSuite) TestLockUnlock() {
	unlock, err := ts.im.Lock(mockCtx, "key")
	ts.Require().NoError(err)

	_, err = ts.im.Lock(mockCtx, "key")
	ts.Equal(domain.ErrLockNotAcquired, err)

	// other keys are independent
	unlockOther, err := ts.im.Lock(mockCtx, "other")
	ts.Require().NoError(err)
	unlockOther()

	unlock()
	unlock()

	unlock, err = ts.im.Lock(mockCtx, "key")
	ts.Require().NoError(err)
	unlock()
	ts.Empty(ts.im.keys)
}

func (ts *memTestSuite) TestOutlives() {
	cfg := Cfg{Ttl: 5 * time.Minute}
	ts.NoError(cfg.Outlives(2 * time.Minute))
	ts.True(errors.Is(cfg.Outlives(5*time.Minute), ErrLeaseTooShort))
	ts.True(errors.Is(cfg.Outlives(10*time.Minute), ErrLeaseTooShort))

	// unset ttl falls back to the redis default
	ts.True(errors.Is(Cfg{}.Outlives(2*time.Minute), ErrLeaseTooShort))
	ts.NoError(Cfg{}.Outlives(time.Second))
}

func (ts *memTestSuite) TestCancelledContext() {
	unlock, err := ts.im.Lock(mockCtx, "key")
	ts.Require().NoError(err)
	defer unlock()

	c, cancel := ctx.WithCancel(mockCtx)
	cancel()
	_, err = ts.im.Lock(c, "key")
	ts.Equal(domain.ErrLockNotAcquired, err)
}

func (ts *memTestSuite) TestMutualExclusion() {
	im := NewMemory(Cfg{})
	var (
		wg      sync.WaitGroup
		inside  int
		maxSeen int
		mu      sync.Mutex
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := im.Lock(mockCtx, "key")
			if err != nil {
				return
			}
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()
	ts.Equal(1, maxSeen)
}
