package datastore

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/henrykdz/pathment/internal/common"
	"github.com/henrykdz/pathment/internal/models"
	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
)

// readBatchSize is how many rows are decoded per read call.
const readBatchSize = 256

// ParquetReader loads Pathment records exported by ParquetWriter.
type ParquetReader struct {
	logger zerolog.Logger
}

// NewParquetReader creates a ParquetReader.
func NewParquetReader(logger zerolog.Logger) *ParquetReader {
	return &ParquetReader{logger: logger.With().Str("component", "ParquetReader").Logger()}
}

// Read returns all records in filePath.
func (pr *ParquetReader) Read(ctx context.Context, filePath string) ([]models.PathmentRecord, error) {
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.WrapErrorf(common.ErrNotFound, "parquet file %s", filePath)
		}
		return nil, common.WrapError(err, "failed to open parquet file: "+filePath)
	}
	defer file.Close()

	reader := parquet.NewGenericReader[models.PathmentRecord](file)
	defer reader.Close()

	records := make([]models.PathmentRecord, 0, reader.NumRows())
	batch := make([]models.PathmentRecord, readBatchSize)
	for {
		if err := checkCancellation(ctx, pr.logger, "parquet read"); err != nil {
			return nil, err
		}
		n, err := reader.Read(batch)
		records = append(records, batch[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, common.WrapError(err, "failed to read records from parquet file")
		}
	}

	pr.logger.Debug().Int("records_read", len(records)).Str("file_path", filePath).Msg("Loaded Parquet records")
	return records, nil
}
