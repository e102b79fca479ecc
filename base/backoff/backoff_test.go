package backoff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExponential(t *testing.T) {
	b := NewExponential(time.Millisecond, 5*time.Millisecond)
	want := []time.Duration{time.Millisecond, 2 * time.Millisecond, 4 * time.Millisecond, 5 * time.Millisecond, 5 * time.Millisecond}
	for i, d := range want {
		assert.Equal(t, d, b.Next(), "attempt %d", i)
		require.NoError(t, b.Backoff(context.Background()))
	}
	assert.Equal(t, len(want), b.Attempts())

	b.Reset()
	assert.Equal(t, time.Millisecond, b.Next())
}

func TestLinear(t *testing.T) {
	b := NewLinear(time.Millisecond, 0)
	assert.Equal(t, time.Millisecond, b.Next())
	require.NoError(t, b.Backoff(context.Background()))
	assert.Equal(t, 2*time.Millisecond, b.Next())
}

func TestExponentialDoesNotOverflow(t *testing.T) {
	b := NewExponential(time.Second, time.Minute)
	b.attempt = 100
	assert.Equal(t, time.Minute, b.Next())
}

func TestBackoffCanceled(t *testing.T) {
	b := NewExponential(time.Hour, 0).WithJitter(0.5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, context.Canceled, b.Backoff(ctx))
	assert.Equal(t, 0, b.Attempts())
}
