package scanner

import (
	"context"
	"io"
	"time"

	"github.com/henrykdz/pathment/internal/batch"
	"github.com/henrykdz/pathment/internal/common"
	"github.com/henrykdz/pathment/internal/config"
	"github.com/henrykdz/pathment/internal/models"
	"github.com/henrykdz/pathment/internal/pathment"
	"github.com/henrykdz/pathment/internal/source"
	"github.com/rs/zerolog"
)

// Scanner runs the extraction engine over input documents: discovery,
// loading, concurrent extraction, filtering and flattening into records.
type Scanner struct {
	config    *config.GlobalConfig
	loader    *source.Loader
	engine    *pathment.Engine
	processor *batch.Processor
	filter    *Filter
	canonical pathment.CanonicalOptions
	logger    zerolog.Logger
}

// NewScanner creates a Scanner from the global configuration.
func NewScanner(cfg *config.GlobalConfig, logger zerolog.Logger) (*Scanner, error) {
	if cfg == nil {
		return nil, common.NewValidationError("config", cfg, "global config cannot be nil")
	}

	titleLength := cfg.ScanConfig.TitleLength
	if titleLength <= 0 {
		titleLength = pathment.DefaultTitleLength
	}

	return &Scanner{
		config:    cfg,
		loader:    source.NewLoader(cfg.InputConfig, logger),
		engine:    pathment.NewEngine(logger, pathment.WithTitleLength(titleLength)),
		processor: batch.NewProcessor(cfg.BatchConfig, logger),
		filter:    NewFilter(cfg.ScanConfig, logger),
		canonical: cfg.DiffConfig.CanonicalOptions(),
		logger:    logger.With().Str("component", "Scanner").Logger(),
	}, nil
}

// Engine exposes the extraction engine, e.g. for paste dispatch.
func (s *Scanner) Engine() *pathment.Engine {
	return s.engine
}

// Processor exposes the batch processor.
func (s *Scanner) Processor() *batch.Processor {
	return s.processor
}

// Discover expands paths and globs into input files.
func (s *Scanner) Discover(args []string) ([]string, error) {
	return s.loader.Discover(args)
}

// ScanPaths discovers and scans the given paths and globs.
func (s *Scanner) ScanPaths(ctx context.Context, args []string) (*models.ScanSummary, error) {
	files, err := s.Discover(args)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, common.WrapError(common.ErrNoInputs, "nothing to scan")
	}
	return s.ScanFiles(ctx, files), nil
}

// ScanFiles loads and scans files concurrently. Files that fail to load are
// reported in the summary instead of aborting the scan.
func (s *Scanner) ScanFiles(ctx context.Context, files []string) *models.ScanSummary {
	started := time.Now()

	results := batch.Run(ctx, s.processor, files, func(ctx context.Context, path string) (models.DocumentResult, error) {
		doc, err := s.loader.Load(ctx, path)
		if err != nil {
			return models.DocumentResult{Source: path, Kind: string(doc.Kind)}, err
		}
		return s.ScanDocument(doc), nil
	})

	var failures common.ErrorCollector
	documents := make([]models.DocumentResult, len(results))
	for i, r := range results {
		documents[i] = r.Value
		if r.Err != nil {
			documents[i].Source = files[i]
			documents[i].Error = r.Err.Error()
			failures.AddWithContext(r.Err, files[i])
		}
	}
	if failures.HasErrors() {
		s.logger.Warn().
			Err(failures.Error()).
			Int("skipped", len(failures.Errors())).
			Msg("Inputs skipped")
	}

	return s.summarize(started, documents)
}

// ScanReader scans a single stream, such as standard input.
func (s *Scanner) ScanReader(ctx context.Context, name string, r io.Reader) (*models.ScanSummary, error) {
	started := time.Now()
	doc, err := s.loader.LoadReader(ctx, name, r)
	if err != nil {
		return nil, err
	}
	return s.summarize(started, []models.DocumentResult{s.ScanDocument(doc)}), nil
}

// ScanDocument extracts, filters and flattens one loaded document.
func (s *Scanner) ScanDocument(doc source.Document) models.DocumentResult {
	result := s.ScanText(doc.Source, doc.Text)
	result.Kind = string(doc.Kind)
	return result
}

// ScanText extracts Pathments from text attributed to source.
func (s *Scanner) ScanText(sourceName, text string) models.DocumentResult {
	scan := s.filter.Apply(s.engine.PerformExtraction(text))
	if !s.config.ScanConfig.IncludeInteresting {
		scan.Interesting = nil
	}
	return models.DocumentResult{
		Source:  sourceName,
		Kind:    string(source.KindText),
		Records: models.FromScanResult(scan, sourceName, s.canonical),
	}
}

func (s *Scanner) summarize(started time.Time, documents []models.DocumentResult) *models.ScanSummary {
	summary := &models.ScanSummary{
		StartedAt:   started,
		Documents:   documents,
		TotalInputs: len(documents),
		TypeCounts:  make(map[string]int),
	}
	stamp := started.UnixMilli()
	for _, d := range documents {
		if d.Error != "" {
			summary.FailedInputs++
		}
		for i := range d.Records {
			d.Records[i].ScanTimestamp = stamp
			if !d.Records[i].Interesting {
				summary.TypeCounts[d.Records[i].Type]++
			}
		}
	}
	summary.Duration = time.Since(started)

	s.logger.Info().
		Int("inputs", summary.TotalInputs).
		Int("failed", summary.FailedInputs).
		Dur("duration", summary.Duration).
		Msg("Scan finished")
	return summary
}
