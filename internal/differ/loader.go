package differ

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/henrykdz/pathment/internal/common"
	"github.com/henrykdz/pathment/internal/datastore"
	"github.com/henrykdz/pathment/internal/models"
	"github.com/henrykdz/pathment/internal/scanner"
	"github.com/rs/zerolog"
)

// SessionPrefix selects a stored history session as a diff input,
// e.g. "session:20261016-101500".
const SessionPrefix = "session:"

// RecordLoader turns a diff input into records. Inputs are Parquet exports,
// stored history sessions, or files and globs that are scanned on the fly.
type RecordLoader struct {
	scanner *scanner.Scanner
	reader  *datastore.ParquetReader
	history *datastore.HistoryStore
	logger  zerolog.Logger
}

// NewRecordLoader creates a RecordLoader. history may be nil.
func NewRecordLoader(s *scanner.Scanner, reader *datastore.ParquetReader, history *datastore.HistoryStore, logger zerolog.Logger) *RecordLoader {
	return &RecordLoader{
		scanner: s,
		reader:  reader,
		history: history,
		logger:  logger.With().Str("component", "RecordLoader").Logger(),
	}
}

// Load returns the records behind input.
func (rl *RecordLoader) Load(ctx context.Context, input string) ([]models.PathmentRecord, error) {
	if input == "" {
		return nil, common.NewValidationError("input", input, "diff input cannot be empty")
	}

	switch {
	case strings.HasPrefix(input, SessionPrefix):
		if rl.history == nil {
			return nil, common.NewValidationError("input", input, "history store is not configured")
		}
		return rl.history.LoadRecords(ctx, strings.TrimPrefix(input, SessionPrefix))

	case strings.EqualFold(filepath.Ext(input), ".parquet"):
		return rl.reader.Read(ctx, input)
	}

	summary, err := rl.scanner.ScanPaths(ctx, []string{input})
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to scan diff input %s", input)
	}
	if summary.FailedInputs == summary.TotalInputs {
		return nil, common.WrapErrorf(common.ErrUnsupportedInput, "no readable document in %s", input)
	}

	rl.logger.Debug().Str("input", input).Int("documents", summary.TotalInputs).Msg("Scanned diff input")
	return summary.Records(), nil
}
