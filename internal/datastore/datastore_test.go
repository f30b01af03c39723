package datastore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/henrykdz/pathment/internal/common"
	"github.com/henrykdz/pathment/internal/config"
	"github.com/henrykdz/pathment/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []models.PathmentRecord {
	return []models.PathmentRecord{
		{Type: "URL_ADDRESS", Protocol: "https", Title: "https://example.com", Address: "https://example.com", URI: "https://example.com", Canonical: "example.com", Source: "a.txt", ScanTimestamp: 1700000000000},
		{Type: "EMAIL", Protocol: "mailto", Address: "ops@example.com", URI: "mailto:ops@example.com", Source: "a.txt"},
		{Type: "UNSPECIFIED", Protocol: "none", Address: "1.2.3", Interesting: true},
	}
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "example.com_a_b", SanitizeFilename("https://example.com/a?b"))
	assert.Equal(t, "20261016-101500", SanitizeFilename("20261016-101500"))
	assert.Equal(t, "sanitized_empty_input", SanitizeFilename("://"))
}

func TestParquet_RoundTrip(t *testing.T) {
	for _, codec := range []string{"zstd", "snappy", "gzip", "none"} {
		t.Run(codec, func(t *testing.T) {
			dir := t.TempDir()
			cfg := &config.StorageConfig{ParquetBasePath: dir, CompressionCodec: codec}
			writer, err := NewParquetWriter(cfg, zerolog.Nop())
			require.NoError(t, err)

			path, err := writer.DefaultExportPath("session/1")
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, "session_1.parquet"), path)

			result, err := writer.Write(context.Background(), path, sampleRecords())
			require.NoError(t, err)
			assert.Equal(t, 3, result.RecordsWritten)
			assert.Positive(t, result.FileSize)

			records, err := NewParquetReader(zerolog.Nop()).Read(context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, sampleRecords(), records)
		})
	}
}

func TestParquet_EmptyAndMissing(t *testing.T) {
	dir := t.TempDir()
	writer, err := NewParquetWriter(&config.StorageConfig{ParquetBasePath: dir}, zerolog.Nop())
	require.NoError(t, err)

	path := filepath.Join(dir, "nested", "empty.parquet")
	_, err = writer.Write(context.Background(), path, nil)
	require.NoError(t, err)

	records, err := NewParquetReader(zerolog.Nop()).Read(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = NewParquetReader(zerolog.Nop()).Read(context.Background(), filepath.Join(dir, "missing.parquet"))
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestParquetWriter_Validation(t *testing.T) {
	_, err := NewParquetWriter(nil, zerolog.Nop())
	assert.Error(t, err)

	writer, err := NewParquetWriter(&config.StorageConfig{}, zerolog.Nop())
	require.NoError(t, err)
	_, err = writer.DefaultExportPath("x")
	assert.Error(t, err)
	_, err = writer.Write(context.Background(), "", nil)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = writer.Write(ctx, filepath.Join(t.TempDir(), "x.parquet"), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func newStore(t *testing.T) *HistoryStore {
	t.Helper()
	store, err := NewHistoryStore(filepath.Join(t.TempDir(), "db", "history.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestHistoryStore_SessionLifecycle(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	start := time.UnixMilli(1700000000000)

	id, err := store.RecordScanStart(ctx, "s1", "docs", 2, start)
	require.NoError(t, err)
	require.NoError(t, store.SaveRecords(ctx, id, sampleRecords()))
	require.NoError(t, store.UpdateScanCompletion(ctx, id, start.Add(time.Second), models.SessionCompleted, "ok", 3, 3))

	session, err := store.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.SessionCompleted, session.Status)
	assert.Equal(t, "docs", session.TargetSource)
	assert.Equal(t, 2, session.NumInputs)
	assert.Equal(t, 3, session.NumPathments)
	assert.Equal(t, start.UnixMilli(), session.StartTime.UnixMilli())
	assert.Equal(t, start.Add(time.Second).UnixMilli(), session.EndTime.UnixMilli())
	assert.Equal(t, "ok", session.LogSummary)

	records, err := store.LoadRecords(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), records)
}

func TestHistoryStore_ListAndLatest(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	base := time.UnixMilli(1700000000000)

	for i, name := range []string{"old", "mid", "new"} {
		id, err := store.RecordScanStart(ctx, name, "docs", 1, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		records := []models.PathmentRecord{{Type: "HOSTNAME", Protocol: "none", Address: name + ".example.com"}}
		require.NoError(t, store.SaveRecords(ctx, id, records))
		status := models.SessionCompleted
		if name == "mid" {
			status = models.SessionFailed
		}
		require.NoError(t, store.UpdateScanCompletion(ctx, id, base, status, "", 1, 0))
	}

	sessions, err := store.ListSessions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "new", sessions[0].SessionID)
	assert.Equal(t, "mid", sessions[1].SessionID)

	previous, err := store.LatestCompletedRecords(ctx, "docs", "new")
	require.NoError(t, err)
	require.Len(t, previous, 1)
	assert.Equal(t, "old.example.com", previous[0].Address)

	none, err := store.LatestCompletedRecords(ctx, "elsewhere", "")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestHistoryStore_MissingSession(t *testing.T) {
	store := newStore(t)

	_, err := store.GetSession(context.Background(), "nope")
	assert.True(t, errors.Is(err, common.ErrNotFound))

	_, err = store.LoadRecords(context.Background(), "nope")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestHistoryStore_DuplicateSessionID(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	_, err := store.RecordScanStart(ctx, "dup", "docs", 1, time.Now())
	require.NoError(t, err)
	_, err = store.RecordScanStart(ctx, "dup", "docs", 1, time.Now())
	assert.Error(t, err)
}

func TestNewHistoryStore_EmptyPath(t *testing.T) {
	_, err := NewHistoryStore("", zerolog.Nop())
	assert.Error(t, err)
}
