package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLoader struct {
	calls atomic.Int64
	err   atomic.Value
}

func (c *countingLoader) LoadAll(context.Context) error {
	c.calls.Add(1)
	if err, ok := c.err.Load().(error); ok && err != nil {
		return err
	}
	return nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestFirstRefreshIsImmediate(t *testing.T) {
	loader := &countingLoader{}
	r := New(time.Hour, loader, slog.Default())

	r.Start(context.Background())
	defer r.Stop()

	waitFor(t, func() bool { return loader.calls.Load() == 1 })
}

func TestRefreshesOnInterval(t *testing.T) {
	loader := &countingLoader{}
	r := New(10*time.Millisecond, loader, slog.Default())

	r.Start(context.Background())
	defer r.Stop()

	waitFor(t, func() bool { return loader.calls.Load() >= 3 })
}

func TestFailuresDoNotStopPolling(t *testing.T) {
	loader := &countingLoader{}
	loader.err.Store(errors.New("backend down"))
	r := New(10*time.Millisecond, loader, slog.Default())

	r.Start(context.Background())
	defer r.Stop()

	waitFor(t, func() bool { return loader.calls.Load() >= 3 })
}

func TestStopIsDeterministic(t *testing.T) {
	loader := &countingLoader{}
	r := New(10*time.Millisecond, loader, slog.Default())

	r.Start(context.Background())
	waitFor(t, func() bool { return loader.calls.Load() >= 1 })
	r.Stop()

	after := loader.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, loader.calls.Load())
}

func TestStartWhileRunningIsNoop(t *testing.T) {
	loader := &countingLoader{}
	r := New(time.Hour, loader, slog.Default())

	r.Start(context.Background())
	r.Start(context.Background())
	defer r.Stop()

	waitFor(t, func() bool { return loader.calls.Load() == 1 })
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(1), loader.calls.Load())
}

func TestStopWithoutStartIsNoop(t *testing.T) {
	r := New(time.Hour, &countingLoader{}, slog.Default())
	r.Stop()
}

func TestContextCancelStopsPolling(t *testing.T) {
	loader := &countingLoader{}
	r := New(10*time.Millisecond, loader, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)
	waitFor(t, func() bool { return loader.calls.Load() >= 1 })
	cancel()

	time.Sleep(30 * time.Millisecond)
	after := loader.calls.Load()
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, after, loader.calls.Load())

	r.Stop()
}
