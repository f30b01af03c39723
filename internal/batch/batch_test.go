package batch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/henrykdz/pathment/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProcessor(concurrency int) *Processor {
	cfg := config.NewDefaultBatchConfig()
	cfg.Concurrency = concurrency
	return NewProcessor(cfg, zerolog.Nop()).WithGuard(nil)
}

func TestRun_PreservesOrder(t *testing.T) {
	items := []int{5, 1, 4, 2, 3}
	results := Run(context.Background(), newProcessor(3), items, func(_ context.Context, n int) (int, error) {
		time.Sleep(time.Duration(n) * time.Millisecond)
		return n * 10, nil
	})

	require.Len(t, results, len(items))
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.NoError(t, r.Err)
		assert.Equal(t, items[i]*10, r.Value)
	}
}

func TestRun_BoundsConcurrency(t *testing.T) {
	var running, peak int32
	items := make([]int, 20)

	Run(context.Background(), newProcessor(2), items, func(_ context.Context, _ int) (struct{}, error) {
		now := atomic.AddInt32(&running, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if now <= old || atomic.CompareAndSwapInt32(&peak, old, now) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return struct{}{}, nil
	})

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestRun_ErrorsDoNotStopOthers(t *testing.T) {
	boom := errors.New("boom")
	results := Run(context.Background(), newProcessor(2), []string{"ok", "bad", "ok"}, func(_ context.Context, s string) (string, error) {
		if s == "bad" {
			return "", boom
		}
		return s, nil
	})

	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, boom)
	assert.NoError(t, results[2].Err)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int32
	results := Run(ctx, newProcessor(1), []int{1, 2, 3}, func(_ context.Context, n int) (int, error) {
		atomic.AddInt32(&calls, 1)
		return n, nil
	})

	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestRun_Empty(t *testing.T) {
	results := Run(context.Background(), newProcessor(4), []int(nil), func(context.Context, int) (int, error) {
		return 0, nil
	})
	assert.Empty(t, results)
}

func guardConfig(threshold float64, attempts int) config.BatchConfig {
	cfg := config.NewDefaultBatchConfig()
	cfg.MemoryThresholdPercent = threshold
	cfg.MemoryWaitIntervalMs = 1
	cfg.MemoryWaitMaxAttempts = attempts
	return cfg
}

func TestMemoryGuard_WaitsUntilBelowThreshold(t *testing.T) {
	readings := []float64{95, 93, 40}
	var probes int
	guard := NewMemoryGuard(guardConfig(90, 10), zerolog.Nop()).WithUsageFunc(func() (float64, error) {
		v := readings[probes]
		probes++
		return v, nil
	})

	require.NoError(t, guard.Wait(context.Background()))
	assert.Equal(t, 3, probes)
}

func TestMemoryGuard_GivesUpAfterMaxAttempts(t *testing.T) {
	var probes int
	guard := NewMemoryGuard(guardConfig(50, 3), zerolog.Nop()).WithUsageFunc(func() (float64, error) {
		probes++
		return 99, nil
	})

	require.NoError(t, guard.Wait(context.Background()))
	assert.Equal(t, 3, probes)
}

func TestMemoryGuard_Disabled(t *testing.T) {
	guard := NewMemoryGuard(guardConfig(0, 3), zerolog.Nop()).WithUsageFunc(func() (float64, error) {
		t.Fatal("probe must not run when disabled")
		return 0, nil
	})
	assert.NoError(t, guard.Wait(context.Background()))

	var nilGuard *MemoryGuard
	assert.NoError(t, nilGuard.Wait(context.Background()))
}

func TestMemoryGuard_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	guard := NewMemoryGuard(guardConfig(10, 100), zerolog.Nop()).WithUsageFunc(func() (float64, error) {
		return 80, nil
	})
	assert.ErrorIs(t, guard.Wait(ctx), context.Canceled)
}
