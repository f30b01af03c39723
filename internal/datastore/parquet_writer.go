package datastore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/henrykdz/pathment/internal/common"
	"github.com/henrykdz/pathment/internal/config"
	"github.com/henrykdz/pathment/internal/models"
	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
)

// WriteResult contains the result of a write operation
type WriteResult struct {
	FilePath       string
	RecordsWritten int
	FileSize       int64
	WriteTime      time.Duration
}

// ParquetWriter exports Pathment records to Parquet files.
type ParquetWriter struct {
	config *config.StorageConfig
	logger zerolog.Logger
}

// NewParquetWriter creates a ParquetWriter.
func NewParquetWriter(cfg *config.StorageConfig, logger zerolog.Logger) (*ParquetWriter, error) {
	if cfg == nil {
		return nil, common.NewValidationError("config", cfg, "storage config cannot be nil")
	}
	logger = logger.With().Str("component", "ParquetWriter").Logger()
	if cfg.ParquetBasePath == "" {
		logger.Warn().Msg("ParquetBasePath is empty in config")
	}
	return &ParquetWriter{config: cfg, logger: logger}, nil
}

// DefaultExportPath returns where a session export goes when no explicit
// file is given.
func (pw *ParquetWriter) DefaultExportPath(sessionID string) (string, error) {
	if pw.config.ParquetBasePath == "" {
		return "", common.NewValidationError("parquet_base_path", pw.config.ParquetBasePath, "ParquetBasePath is not configured")
	}
	return filepath.Join(pw.config.ParquetBasePath, SanitizeFilename(sessionID)+".parquet"), nil
}

// Write stores records at filePath, replacing any existing file.
func (pw *ParquetWriter) Write(ctx context.Context, filePath string, records []models.PathmentRecord) (*WriteResult, error) {
	startTime := time.Now()

	if filePath == "" {
		return nil, common.NewValidationError("file_path", filePath, "export path cannot be empty")
	}
	if err := checkCancellation(ctx, pw.logger, "parquet write"); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, common.WrapError(err, "failed to create Parquet directory: "+filepath.Dir(filePath))
	}

	written, err := pw.writeToParquetFile(filePath, records)
	if err != nil {
		return nil, err
	}

	var size int64
	if info, statErr := os.Stat(filePath); statErr == nil {
		size = info.Size()
	}

	result := &WriteResult{
		FilePath:       filePath,
		RecordsWritten: written,
		FileSize:       size,
		WriteTime:      time.Since(startTime),
	}
	pw.logger.Info().
		Str("file_path", result.FilePath).
		Int("records_written", result.RecordsWritten).
		Dur("write_time", result.WriteTime).
		Msg("Wrote Pathment records to Parquet file")
	return result, nil
}

func (pw *ParquetWriter) writeToParquetFile(filePath string, records []models.PathmentRecord) (int, error) {
	file, err := os.Create(filePath)
	if err != nil {
		return 0, common.WrapError(err, "failed to create/truncate parquet file: "+filePath)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[models.PathmentRecord](file, pw.compressionOption())
	n, err := writer.Write(records)
	if err != nil {
		_ = writer.Close()
		return 0, common.WrapError(err, "failed to write records to parquet file")
	}
	if err := writer.Close(); err != nil {
		return 0, common.WrapError(err, "failed to finalize parquet file")
	}
	return n, nil
}

// compressionOption maps the configured codec to a writer option.
func (pw *ParquetWriter) compressionOption() parquet.WriterOption {
	switch strings.ToLower(pw.config.CompressionCodec) {
	case "gzip":
		return parquet.Compression(&parquet.Gzip)
	case "snappy":
		return parquet.Compression(&parquet.Snappy)
	case "none":
		return parquet.Compression(&parquet.Uncompressed)
	default:
		return parquet.Compression(&parquet.Zstd)
	}
}
