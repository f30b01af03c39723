package config

import "time"

// BatchConfig defines how many documents are scanned in parallel and when
// to back off because of memory pressure
type BatchConfig struct {
	Concurrency int `json:"concurrency,omitempty" yaml:"concurrency,omitempty" validate:"omitempty,min=1,max=256"`
	// MemoryThresholdPercent pauses new work while system memory usage is
	// above it. 0 disables the check.
	MemoryThresholdPercent float64 `json:"memory_threshold_percent" yaml:"memory_threshold_percent" validate:"min=0,max=100"`
	MemoryWaitIntervalMs   int     `json:"memory_wait_interval_ms,omitempty" yaml:"memory_wait_interval_ms,omitempty" validate:"omitempty,min=1"`
	MemoryWaitMaxAttempts  int     `json:"memory_wait_max_attempts,omitempty" yaml:"memory_wait_max_attempts,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultBatchConfig creates default batch configuration
func NewDefaultBatchConfig() BatchConfig {
	return BatchConfig{
		Concurrency:            DefaultBatchConcurrency,
		MemoryThresholdPercent: DefaultBatchMemoryThresholdPct,
		MemoryWaitIntervalMs:   DefaultBatchMemoryWaitIntervalMs,
		MemoryWaitMaxAttempts:  DefaultBatchMemoryWaitMaxAttempts,
	}
}

// GetEffectiveConcurrency returns the effective Concurrency value
func (bc BatchConfig) GetEffectiveConcurrency() int {
	if bc.Concurrency <= 0 {
		return DefaultBatchConcurrency
	}
	return bc.Concurrency
}

// MemoryWaitInterval returns the pause between memory checks
func (bc BatchConfig) MemoryWaitInterval() time.Duration {
	if bc.MemoryWaitIntervalMs <= 0 {
		return time.Duration(DefaultBatchMemoryWaitIntervalMs) * time.Millisecond
	}
	return time.Duration(bc.MemoryWaitIntervalMs) * time.Millisecond
}
