package config

const (
	// Scan Defaults
	DefaultScanMultilineThreshold = 200
	DefaultScanTitleLength        = 80
	DefaultScanIncludeInteresting = true
	DefaultScanCacheSize          = 256

	// Input Defaults
	DefaultInputMaxFileSizeMB = 20
	DefaultInputMaxPDFPages   = 200

	// Batch Defaults
	DefaultBatchConcurrency           = 4
	DefaultBatchMemoryThresholdPct    = 90.0
	DefaultBatchMemoryWaitIntervalMs  = 500
	DefaultBatchMemoryWaitMaxAttempts = 20

	// Watch Defaults
	DefaultWatchDebounceMs = 300

	// Storage Defaults
	DefaultStorageSQLitePath       = "database/pathment_history.db"
	DefaultStorageParquetBasePath  = "database/exports"
	DefaultStorageCompressionCodec = "zstd"

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Reporter Defaults
	DefaultReporterFormat = "text"

	// EnvConfigPath names the environment variable holding the config file path.
	EnvConfigPath = "PATHMENT_CONFIG_PATH"
)

// DefaultInputExclude skips version control and dependency directories.
var DefaultInputExclude = []string{"**/.git/**", "**/node_modules/**", "**/vendor/**"}
