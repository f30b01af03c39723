// Package paste routes pasted text to single classification or full
// extraction and caches the outcome.
package paste

import (
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/henrykdz/pathment/internal/common"
	"github.com/henrykdz/pathment/internal/config"
	"github.com/henrykdz/pathment/internal/pathment"
	"github.com/rs/zerolog"
)

// Mode tells which engine operation handled the text.
type Mode string

const (
	ModeSingle     Mode = "single"
	ModeExtraction Mode = "extraction"
)

// Result is what the dispatcher hands back to the caller. Every Pathment in
// it is a fresh copy owned by the caller.
type Result struct {
	Mode        Mode
	Pathments   []*pathment.Pathment
	Interesting []*pathment.Pathment
}

type cached struct {
	mode        Mode
	pathments   []*pathment.Pathment
	interesting []*pathment.Pathment
}

// Dispatcher is safe for concurrent use.
type Dispatcher struct {
	engine             *pathment.Engine
	threshold          int
	includeInteresting bool
	cache              *lru.Cache[string, cached]
	logger             zerolog.Logger
}

// NewDispatcher creates a Dispatcher. A CacheSize of 0 disables caching.
func NewDispatcher(engine *pathment.Engine, cfg config.ScanConfig, logger zerolog.Logger) (*Dispatcher, error) {
	if engine == nil {
		return nil, common.NewValidationError("engine", engine, "engine cannot be nil")
	}

	threshold := cfg.MultilineThreshold
	if threshold <= 0 {
		threshold = config.DefaultScanMultilineThreshold
	}

	d := &Dispatcher{
		engine:             engine,
		threshold:          threshold,
		includeInteresting: cfg.IncludeInteresting,
		logger:             logger.With().Str("component", "PasteDispatcher").Logger(),
	}

	if cfg.CacheSize > 0 {
		cache, err := lru.New[string, cached](cfg.CacheSize)
		if err != nil {
			return nil, common.WrapError(err, "failed to create paste cache")
		}
		d.cache = cache
	}
	return d, nil
}

// IsMultiline reports whether text goes through full extraction: it is
// longer than the threshold in characters or spans several lines.
func (d *Dispatcher) IsMultiline(text string) bool {
	return strings.ContainsAny(text, "\r\n") || utf8.RuneCountInString(text) > d.threshold
}

// Dispatch classifies or extracts text.
func (d *Dispatcher) Dispatch(text string) Result {
	if d.cache != nil {
		if hit, ok := d.cache.Get(text); ok {
			d.logger.Debug().Int("length", len(text)).Msg("Paste cache hit")
			return hit.result()
		}
	}

	var entry cached
	if d.IsMultiline(text) {
		scan := d.engine.PerformExtraction(text)
		entry = cached{mode: ModeExtraction, pathments: scan.Pathments}
		if d.includeInteresting {
			entry.interesting = scan.Interesting
		}
	} else {
		entry = cached{mode: ModeSingle, pathments: []*pathment.Pathment{d.engine.ParseSingle(text)}}
	}

	if d.cache != nil {
		d.cache.Add(text, entry)
	}
	return entry.result()
}

// Purge empties the cache.
func (d *Dispatcher) Purge() {
	if d.cache != nil {
		d.cache.Purge()
	}
}

func (c cached) result() Result {
	return Result{
		Mode:        c.mode,
		Pathments:   cloneAll(c.pathments),
		Interesting: cloneAll(c.interesting),
	}
}

func cloneAll(in []*pathment.Pathment) []*pathment.Pathment {
	if in == nil {
		return nil
	}
	out := make([]*pathment.Pathment, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}
