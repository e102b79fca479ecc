package goroutine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverableGo(t *testing.T) {
	res := []string{}

	<-RecoverableGo(
		func() {
			res = append(res, "run task")
			panic("panic")
		},
		WithBeforeStart(func() {
			res = append(res, "before start")
		}),
		WithAfterEnded(func() {
			res = append(res, "after ended")
		}),
		WithAfterRecovered(func(p interface{}, stack []byte) {
			res = append(res, "after recovered")
			res = append(res, p.(string))
		}),
	)

	assert.Equal(t, []string{
		"before start",
		"run task",
		"after ended",
		"after recovered",
		"panic",
	}, res)
}

func TestPoolRecoversPanic(t *testing.T) {
	p := NewPool(2, 4, time.Second)
	defer p.Release()

	recovered := make(chan interface{}, 1)
	err := p.Go(
		func() { panic("boom") },
		WithAfterRecovered(func(p interface{}, stack []byte) {
			recovered <- p
		}),
	)
	require.NoError(t, err)

	select {
	case v := <-recovered:
		require.Equal(t, "boom", v)
	case <-time.After(time.Second):
		t.Fatal("panic was not recovered")
	}

	done := make(chan struct{})
	require.NoError(t, p.Go(func() { close(done) }))
	<-done
}

func TestRecoverableGoClosesOnReturn(t *testing.T) {
	ended := false
	p, ok := <-RecoverableGo(func() {}, WithName("noop"), WithAfterEnded(func() { ended = true }))
	assert.Nil(t, p)
	assert.False(t, ok)
	assert.True(t, ended)
}
