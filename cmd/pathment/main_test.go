package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/henrykdz/pathment/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig points storage at a temporary directory.
func writeConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`log_config:
  log_level: error
  log_file: %q
storage_config:
  sqlite_path: %q
  parquet_base_path: %q
`, filepath.Join(dir, "logs", "pathment.log"), filepath.Join(dir, "history.db"), filepath.Join(dir, "exports"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path, dir
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestClassify_Single(t *testing.T) {
	cfg, _ := writeConfig(t)
	out, err := execute(t, "", "-c", cfg, "--no-color", "classify", "https://example.com/docs")
	require.NoError(t, err)
	assert.Contains(t, out, "URL_ADDRESS")
	assert.Contains(t, out, "https://example.com/docs")
}

func TestClassify_StdinJSON(t *testing.T) {
	cfg, _ := writeConfig(t)
	out, err := execute(t, "mail ops@example.com\nsee https://example.com\n", "-c", cfg, "-f", "json", "classify")
	require.NoError(t, err)

	var records []models.PathmentRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	var addresses []string
	for _, r := range records {
		addresses = append(addresses, r.Address)
	}
	assert.Contains(t, addresses, "ops@example.com")
	assert.Contains(t, addresses, "https://example.com")
}

func TestScan_HistoryAndExport(t *testing.T) {
	cfg, dir := writeConfig(t)
	input := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(input, []byte("ops@example.com https://example.com/a\n"), 0o644))
	export := filepath.Join(dir, "out.parquet")

	out, err := execute(t, "", "-c", cfg, "--no-color", "scan", "--history", "-o", export, input)
	require.NoError(t, err)
	assert.Contains(t, out, "1 inputs, 0 failed, 2 pathments")
	assert.FileExists(t, export)

	out, err = execute(t, "", "-c", cfg, "-f", "json", "history")
	require.NoError(t, err)
	var sessions []models.ScanSession
	require.NoError(t, json.Unmarshal([]byte(out), &sessions))
	require.Len(t, sessions, 1)
	assert.Equal(t, models.SessionCompleted, sessions[0].Status)
	assert.Equal(t, 2, sessions[0].NumPathments)
	assert.Equal(t, 2, sessions[0].NewPathments)

	out, err = execute(t, "", "-c", cfg, "--no-color", "history", "--session", sessions[0].SessionID)
	require.NoError(t, err)
	assert.Contains(t, out, "ops@example.com")

	require.NoError(t, os.WriteFile(input, []byte("ops@example.com https://example.org\n"), 0o644))
	out, err = execute(t, "", "-c", cfg, "--no-color", "diff", export, input)
	require.NoError(t, err)
	assert.Contains(t, out, "1 new, 1 removed, 1 existing")
}

func TestScan_HistoryTwiceInARow(t *testing.T) {
	cfg, dir := writeConfig(t)
	input := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(input, []byte("https://example.com/a\n"), 0o644))

	for i := 0; i < 2; i++ {
		_, err := execute(t, "", "-c", cfg, "--no-color", "scan", "--history", input)
		require.NoError(t, err)
	}

	out, err := execute(t, "", "-c", cfg, "-f", "json", "history")
	require.NoError(t, err)
	var sessions []models.ScanSession
	require.NoError(t, json.Unmarshal([]byte(out), &sessions))
	require.Len(t, sessions, 2)
	assert.NotEqual(t, sessions[0].SessionID, sessions[1].SessionID)
}

func TestScan_LogsIntoSessionDirectory(t *testing.T) {
	cfg, dir := writeConfig(t)
	input := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(input, []byte("https://example.com/a\n"), 0o644))

	_, err := execute(t, "", "-c", cfg, "--log-level", "info", "--no-color", "scan", input)
	require.NoError(t, err)

	logs, err := filepath.Glob(filepath.Join(dir, "logs", "sessions", "*", "pathment.log"))
	require.NoError(t, err)
	require.Len(t, logs, 1)
	data, err := os.ReadFile(logs[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "Scan finished")
}

func TestNewSessionID(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 30, 15, 0, time.UTC)
	assert.Equal(t, "20260301-093015-000", newSessionID(base))
	assert.Equal(t, "20260301-093015-042", newSessionID(base.Add(42*time.Millisecond)))
	assert.NotEqual(t, newSessionID(base), newSessionID(base.Add(time.Millisecond)))
}

func TestScan_Stdin(t *testing.T) {
	cfg, _ := writeConfig(t)
	out, err := execute(t, "see 10.0.0.1", "-c", cfg, "--no-color", "scan")
	require.NoError(t, err)
	assert.Contains(t, out, "IP_ADDRESS")
}

func TestScan_NoMatches(t *testing.T) {
	cfg, dir := writeConfig(t)
	_, err := execute(t, "", "-c", cfg, "scan", filepath.Join(dir, "*.nothing"))
	assert.Error(t, err)
}

func TestInvalidFormatFlag(t *testing.T) {
	cfg, _ := writeConfig(t)
	_, err := execute(t, "", "-c", cfg, "-f", "xml", "classify", "x")
	assert.Error(t, err)
}

func TestDiff_RequiresTwoArgs(t *testing.T) {
	cfg, _ := writeConfig(t)
	_, err := execute(t, "", "-c", cfg, "diff", "only-one")
	assert.Error(t, err)
}
