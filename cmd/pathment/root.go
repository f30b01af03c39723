package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/henrykdz/pathment/internal/common"
	"github.com/henrykdz/pathment/internal/config"
	"github.com/henrykdz/pathment/internal/logger"
	"github.com/henrykdz/pathment/internal/reporter"
	"github.com/henrykdz/pathment/internal/scanner"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once the root command has loaded
// the configuration.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	format     string
	noColor    bool

	cfg    *config.GlobalConfig
	logger zerolog.Logger

	// started and sessionID identify this invocation. scan uses them as its
	// history session and log directory.
	started   time.Time
	sessionID string
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "Detect and classify paths, URLs and addresses in text",
		Long: `pathment finds every path-like element in text: web URLs, email
addresses, IP addresses and hostnames as well as local, UNC and relative
file paths.

Examples:
  # classify a single pasted string
  pathment classify 'https://example.com/docs'

  # scan documents and keep the results in the history database
  pathment scan --history 'notes/**/*.md' report.pdf

  # compare two scans
  pathment diff old.parquet 'notes/**/*.md'`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Path to the YAML/JSON configuration file")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "", "Log format (console, json, text)")
	flags.StringVarP(&a.format, "format", "f", "", "Report format (text, json, yaml, html)")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		newScanCmd(a),
		newClassifyCmd(a),
		newDiffCmd(a),
		newWatchCmd(a),
		newHistoryCmd(a),
	)
	return rootCmd
}

// setup loads and validates the configuration, applies flag overrides and
// builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	bootstrap := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(zerolog.WarnLevel).With().Timestamp().Logger()

	cfg, err := config.LoadGlobalConfig(a.configPath, bootstrap)
	if err != nil {
		return common.WrapError(err, "could not load configuration")
	}

	if a.logLevel != "" {
		cfg.LogConfig.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		cfg.LogConfig.LogFormat = a.logFormat
	}
	if a.format != "" {
		cfg.ReporterConfig.Format = a.format
	}
	if a.noColor {
		cfg.LogConfig.NoColor = true
		cfg.ReporterConfig.NoColor = true
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	a.started = time.Now()
	a.sessionID = newSessionID(a.started)

	builder := logger.NewLoggerBuilder().WithConfig(cfg.LogConfig)
	if cmd.Name() == "scan" {
		builder = builder.WithSessionID(a.sessionID)
	}
	log, err := builder.Build()
	if err != nil {
		return common.WrapError(err, "could not initialize logger")
	}

	a.cfg = cfg
	a.logger = log.With().Str("command", cmd.Name()).Logger()
	a.logger.Debug().Str("config_path", config.GetConfigPath(a.configPath)).Msg("Configuration loaded")
	return nil
}

func (a *app) newScanner() (*scanner.Scanner, error) {
	return scanner.NewScanner(a.cfg, a.logger)
}

func (a *app) newReporter(out io.Writer) (*reporter.Reporter, error) {
	return reporter.NewReporter(a.cfg.ReporterConfig, out, a.logger)
}

// newSessionID names a scan session after its start time, down to the
// millisecond.
func newSessionID(t time.Time) string {
	return fmt.Sprintf("%s-%03d", t.Format("20060102-150405"), t.Nanosecond()/int(time.Millisecond))
}
