package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, DefaultScanMultilineThreshold, cfg.ScanConfig.MultilineThreshold)
	assert.Equal(t, DefaultScanTitleLength, cfg.ScanConfig.TitleLength)
	assert.Equal(t, DefaultLogLevel, cfg.LogConfig.LogLevel)
	assert.Equal(t, DefaultStorageCompressionCodec, cfg.StorageConfig.CompressionCodec)
	assert.Equal(t, DefaultInputExclude, cfg.InputConfig.Exclude)
	assert.Equal(t, "text", cfg.ReporterConfig.Format)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadGlobalConfig_NoConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvConfigPath, "")

	cfg, err := LoadGlobalConfig("", zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, NewDefaultGlobalConfig(), cfg)
}

func TestLoadGlobalConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadGlobalConfig("/nonexistent/config.json", zerolog.Nop())

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config file does not exist")
}

func TestLoadGlobalConfig_JSONFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.json")
	configData := `{
		"log_config": {"log_level": "debug"},
		"scan_config": {"multiline_threshold": 120, "cache_size": 0},
		"storage_config": {"compression_codec": "snappy"}
	}`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogConfig.LogLevel)
	assert.Equal(t, 120, cfg.ScanConfig.MultilineThreshold)
	assert.Equal(t, 0, cfg.ScanConfig.CacheSize)
	assert.Equal(t, "snappy", cfg.StorageConfig.CompressionCodec)
	assert.Equal(t, DefaultScanTitleLength, cfg.ScanConfig.TitleLength, "missing keys keep defaults")
}

func TestLoadGlobalConfig_YAMLFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	configData := `
log_config:
  log_level: warn
  log_format: json
input_config:
  include:
    - "**/*.md"
  max_pdf_pages: 5
batch_config:
  concurrency: 8
  memory_threshold_percent: 75.5
diff_config:
  exclude_protocol: true
  show_line_diff: true
reporter_config:
  format: yaml
`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogConfig.LogLevel)
	assert.Equal(t, "json", cfg.LogConfig.LogFormat)
	assert.Equal(t, []string{"**/*.md"}, cfg.InputConfig.Include)
	assert.Equal(t, 5, cfg.InputConfig.MaxPDFPages)
	assert.Equal(t, 8, cfg.BatchConfig.Concurrency)
	assert.InDelta(t, 75.5, cfg.BatchConfig.MemoryThresholdPercent, 0.001)
	assert.True(t, cfg.DiffConfig.CanonicalOptions().ExcludeProtocol)
	assert.True(t, cfg.DiffConfig.ShowLineDiff)
	assert.Equal(t, "yaml", cfg.ReporterConfig.Format)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadGlobalConfig_EnvironmentVariable(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("watch_config:\n  debounce_ms: 50\n"), 0644))
	t.Setenv(EnvConfigPath, configFile)

	assert.Equal(t, configFile, GetConfigPath(""))

	cfg, err := LoadGlobalConfig("", zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.WatchConfig.DebounceMs)
}

func TestGetConfigPath_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvConfigPath, "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{}"), 0644))

	path := GetConfigPath("")
	assert.Equal(t, "config.json", filepath.Base(path))
}

func TestLoadGlobalConfig_InvalidJSON(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "invalid.json")
	require.NoError(t, os.WriteFile(configFile, []byte(`{"scan_config": {},}`), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to unmarshal JSON")
}

func TestLoadGlobalConfig_InvalidYAML(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "invalid.yaml")
	invalidYAML := `
scan_config: test
  invalid_indent: value
`
	require.NoError(t, os.WriteFile(configFile, []byte(invalidYAML), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to unmarshal YAML")
}

func TestIsYAMLFile(t *testing.T) {
	tests := []struct {
		ext      string
		expected bool
	}{
		{".yaml", true},
		{".yml", true},
		{".json", false},
		{".txt", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			assert.Equal(t, tt.expected, isYAMLFile(tt.ext))
		})
	}
}

func TestBatchConfigHelpers(t *testing.T) {
	var bc BatchConfig
	assert.Equal(t, DefaultBatchConcurrency, bc.GetEffectiveConcurrency())
	assert.Equal(t, int64(DefaultBatchMemoryWaitIntervalMs), bc.MemoryWaitInterval().Milliseconds())

	bc.Concurrency = 3
	bc.MemoryWaitIntervalMs = 10
	assert.Equal(t, 3, bc.GetEffectiveConcurrency())
	assert.Equal(t, int64(10), bc.MemoryWaitInterval().Milliseconds())

	assert.Equal(t, int64(2*1024*1024), InputConfig{MaxFileSizeMB: 2}.MaxFileSizeBytes())
}
