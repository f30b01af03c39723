// Package batch runs independent work items concurrently with a bounded
// worker count and a memory guard.
package batch

import (
	"context"
	"sync"
	"time"

	"github.com/henrykdz/pathment/internal/config"
	"github.com/rs/zerolog"
)

// Result is the outcome of one item. Results keep the order of the input.
type Result[R any] struct {
	Index    int
	Value    R
	Err      error
	Duration time.Duration
}

// Processor limits concurrency and consults a MemoryGuard before each item.
type Processor struct {
	concurrency int
	guard       *MemoryGuard
	logger      zerolog.Logger
}

// NewProcessor creates a Processor from batch settings.
func NewProcessor(cfg config.BatchConfig, logger zerolog.Logger) *Processor {
	return &Processor{
		concurrency: cfg.GetEffectiveConcurrency(),
		guard:       NewMemoryGuard(cfg, logger),
		logger:      logger.With().Str("component", "BatchProcessor").Logger(),
	}
}

// WithGuard replaces the memory guard; nil disables it.
func (p *Processor) WithGuard(guard *MemoryGuard) *Processor {
	p.guard = guard
	return p
}

// Concurrency returns the worker limit.
func (p *Processor) Concurrency() int {
	return p.concurrency
}

// Run calls fn for every item, at most Concurrency at a time. Items not
// started before ctx is cancelled get ctx.Err() as their error. A failing
// item does not stop the others.
func Run[T, R any](ctx context.Context, p *Processor, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	results := make([]Result[R], len(items))
	for i := range results {
		results[i].Index = i
	}
	if len(items) == 0 {
		return results
	}

	p.logger.Debug().
		Int("items", len(items)).
		Int("concurrency", p.concurrency).
		Msg("Starting batch processing")

	semaphore := make(chan struct{}, p.concurrency)
	var wg sync.WaitGroup

loop:
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			markCancelled(results[i:], err)
			break
		}
		if err := p.guard.Wait(ctx); err != nil {
			markCancelled(results[i:], err)
			break
		}

		select {
		case <-ctx.Done():
			markCancelled(results[i:], ctx.Err())
			break loop
		case semaphore <- struct{}{}:
		}

		wg.Add(1)
		go func(index int, item T) {
			defer wg.Done()
			defer func() { <-semaphore }()

			start := time.Now()
			value, err := fn(ctx, item)
			results[index] = Result[R]{Index: index, Value: value, Err: err, Duration: time.Since(start)}

			if err != nil {
				p.logger.Debug().Err(err).Int("index", index).Msg("Batch item failed")
			}
		}(i, item)
	}

	wg.Wait()
	return results
}

func markCancelled[R any](results []Result[R], err error) {
	for i := range results {
		results[i].Err = err
	}
}
