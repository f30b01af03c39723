package pathment

import (
	"strings"

	"github.com/rs/zerolog"
)

// ScanResult holds the outcome of one extraction. Both slices are
// deduplicated and sorted with Compare.
type ScanResult struct {
	Pathments []*Pathment
	// Interesting holds unclassified candidates that contain a dot.
	Interesting []*Pathment
}

// Engine ties tokenizer, cleaner and classifier together. It has no mutable
// state and may be shared between goroutines.
type Engine struct {
	tokenizer  *Tokenizer
	classifier *Classifier
	logger     zerolog.Logger
}

// EngineOption customizes an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	titleLength int
}

// WithTitleLength sets the rune limit of generated titles.
func WithTitleLength(n int) EngineOption {
	return func(o *engineOptions) { o.titleLength = n }
}

// NewEngine creates an Engine logging through logger.
func NewEngine(logger zerolog.Logger, opts ...EngineOption) *Engine {
	o := engineOptions{titleLength: DefaultTitleLength}
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{
		tokenizer:  NewTokenizer(),
		classifier: NewClassifier(logger, o.titleLength),
		logger:     logger.With().Str("component", "PathmentEngine").Logger(),
	}
}

// ParseSingle classifies one candidate. See Classifier.ParseSingle.
func (e *Engine) ParseSingle(text string) *Pathment {
	return e.classifier.ParseSingle(text)
}

// Tokenize returns the raw candidates found in text.
func (e *Engine) Tokenize(text string) []string {
	return e.tokenizer.Tokenize(text)
}

// PerformExtraction finds, classifies and deduplicates every candidate in
// text. Blank text yields empty, non-nil slices.
func (e *Engine) PerformExtraction(text string) ScanResult {
	result := ScanResult{Pathments: []*Pathment{}, Interesting: []*Pathment{}}
	if strings.TrimSpace(text) == "" {
		return result
	}

	seen := make(map[string]struct{})
	seenInteresting := make(map[string]struct{})
	candidates := 0
	for raw := range e.tokenizer.Candidates(text) {
		candidates++
		cleaned := CleanCandidate(raw)
		if cleaned == "" {
			continue
		}
		p := e.classifier.ParseSingle(cleaned)
		if p.IsSpecified() {
			if _, dup := seen[p.Key()]; !dup {
				seen[p.Key()] = struct{}{}
				result.Pathments = append(result.Pathments, p)
			}
			continue
		}
		if strings.Contains(raw, ".") {
			if _, dup := seenInteresting[p.Key()]; !dup {
				seenInteresting[p.Key()] = struct{}{}
				result.Interesting = append(result.Interesting, p)
			}
		}
	}

	SortPathments(result.Pathments)
	SortPathments(result.Interesting)

	e.logger.Debug().
		Int("candidates", candidates).
		Int("pathments", len(result.Pathments)).
		Int("interesting", len(result.Interesting)).
		Msg("Extraction finished")
	return result
}

var defaultEngine = NewEngine(zerolog.Nop())

// ParseSingle classifies text with a silent default Engine.
func ParseSingle(text string) *Pathment {
	return defaultEngine.ParseSingle(text)
}

// PerformExtraction runs extraction with a silent default Engine.
func PerformExtraction(text string) ScanResult {
	return defaultEngine.PerformExtraction(text)
}

// Tokenize returns the candidates of text using the built-in matchers.
func Tokenize(text string) []string {
	return defaultEngine.Tokenize(text)
}
