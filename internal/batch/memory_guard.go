package batch

import (
	"context"
	"time"

	"github.com/henrykdz/pathment/internal/common"
	"github.com/henrykdz/pathment/internal/config"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/mem"
)

// UsageFunc reports system memory usage in percent.
type UsageFunc func() (float64, error)

// SystemMemoryUsage reads system memory usage through gopsutil.
func SystemMemoryUsage() (float64, error) {
	vmStat, err := mem.VirtualMemory()
	if err != nil {
		return 0, common.WrapError(err, "failed to get system memory stats")
	}
	return vmStat.UsedPercent, nil
}

// MemoryGuard holds back new work while system memory usage is above a
// threshold.
type MemoryGuard struct {
	thresholdPercent float64
	interval         time.Duration
	maxAttempts      int
	usage            UsageFunc
	logger           zerolog.Logger
}

// NewMemoryGuard creates a guard from batch settings. A zero threshold
// disables it.
func NewMemoryGuard(cfg config.BatchConfig, logger zerolog.Logger) *MemoryGuard {
	attempts := cfg.MemoryWaitMaxAttempts
	if attempts <= 0 {
		attempts = config.DefaultBatchMemoryWaitMaxAttempts
	}
	return &MemoryGuard{
		thresholdPercent: cfg.MemoryThresholdPercent,
		interval:         cfg.MemoryWaitInterval(),
		maxAttempts:      attempts,
		usage:            SystemMemoryUsage,
		logger:           logger.With().Str("component", "MemoryGuard").Logger(),
	}
}

// WithUsageFunc replaces the memory probe.
func (g *MemoryGuard) WithUsageFunc(fn UsageFunc) *MemoryGuard {
	g.usage = fn
	return g
}

// Wait blocks until memory usage drops below the threshold. After
// maxAttempts checks it gives up waiting and lets the work proceed; only a
// cancelled context makes it fail.
func (g *MemoryGuard) Wait(ctx context.Context) error {
	if g == nil || g.thresholdPercent <= 0 {
		return nil
	}

	for attempt := 1; ; attempt++ {
		used, err := g.usage()
		if err != nil {
			g.logger.Debug().Err(err).Msg("Memory probe failed, not waiting")
			return nil
		}
		if used <= g.thresholdPercent {
			return nil
		}
		if attempt >= g.maxAttempts {
			g.logger.Warn().
				Float64("used_percent", used).
				Float64("threshold_percent", g.thresholdPercent).
				Int("attempts", attempt).
				Msg("Memory still above threshold, continuing anyway")
			return nil
		}

		g.logger.Debug().
			Float64("used_percent", used).
			Float64("threshold_percent", g.thresholdPercent).
			Msg("Memory above threshold, waiting")

		timer := time.NewTimer(g.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
