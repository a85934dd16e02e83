package poll

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollerTicks(t *testing.T) {
	var ticks int32
	p := New("test", func(ctx context.Context) error {
		atomic.AddInt32(&ticks, 1)
		return nil
	}, Config{Interval: 10 * time.Millisecond})

	p.Start(context.Background())
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&ticks) >= 2
	}, time.Second, 5*time.Millisecond)
	p.Stop()

	after := atomic.LoadInt32(&ticks)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt32(&ticks), "no ticks after stop")
}

func TestPollerImmediateTick(t *testing.T) {
	var ticks int32
	p := New("test", func(ctx context.Context) error {
		atomic.AddInt32(&ticks, 1)
		return nil
	}, Config{Interval: time.Hour, Immediate: true})

	p.Start(context.Background())
	defer p.Stop()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&ticks) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestPollerSurvivesErrors(t *testing.T) {
	var ticks int32
	p := New("test", func(ctx context.Context) error {
		atomic.AddInt32(&ticks, 1)
		return errors.New("tick failed")
	}, Config{Interval: 10 * time.Millisecond})

	p.Start(context.Background())
	defer p.Stop()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&ticks) >= 3
	}, time.Second, 5*time.Millisecond)
}

func TestPollerStopsWithContext(t *testing.T) {
	var ticks int32
	ctx, cancel := context.WithCancel(context.Background())
	p := New("test", func(ctx context.Context) error {
		atomic.AddInt32(&ticks, 1)
		return nil
	}, Config{Interval: 10 * time.Millisecond})

	p.Start(ctx)
	cancel()
	p.Stop()

	after := atomic.LoadInt32(&ticks)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt32(&ticks))
}

func TestPollerStartIsIdempotent(t *testing.T) {
	p := New("test", func(ctx context.Context) error { return nil }, Config{Interval: time.Hour})
	p.Start(context.Background())
	p.Start(context.Background())
	p.Stop()
}
