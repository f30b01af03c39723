package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/henrykdz/pathment/internal/common"
	"github.com/henrykdz/pathment/internal/datastore"
	"github.com/henrykdz/pathment/internal/differ"
	"github.com/henrykdz/pathment/internal/models"
	"github.com/henrykdz/pathment/internal/source"
	"github.com/spf13/cobra"
)

type scanOptions struct {
	history bool
	export  string
}

func newScanCmd(a *app) *cobra.Command {
	opts := &scanOptions{}
	cmd := &cobra.Command{
		Use:   "scan [paths|globs...]",
		Short: "Extract Pathments from files, directories or standard input",
		Long: `Scan discovers input files, decodes them (text, HTML, JavaScript, PDF)
and extracts every Pathment. Without arguments standard input is scanned.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, a, opts, args)
		},
	}
	cmd.Flags().BoolVar(&opts.history, "history", false, "Record the scan in the history database")
	cmd.Flags().StringVarP(&opts.export, "export", "o", "", "Write the records to a Parquet file (\"auto\" for the configured export directory)")
	return cmd
}

func runScan(cmd *cobra.Command, a *app, opts *scanOptions, args []string) error {
	ctx := cmd.Context()
	started, sessionID := a.started, a.sessionID

	s, err := a.newScanner()
	if err != nil {
		return err
	}
	rep, err := a.newReporter(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	var files []string
	target := source.StdinSource
	if len(args) > 0 {
		if files, err = s.Discover(args); err != nil {
			return err
		}
		if len(files) == 0 {
			return common.WrapErrorf(common.ErrNoInputs, "no input matches %s", strings.Join(args, " "))
		}
		target = strings.Join(args, " ")
	}

	var session *historySession
	if opts.history {
		if session, err = startHistorySession(ctx, a, sessionID, target, max(len(files), 1), started); err != nil {
			return err
		}
		defer session.store.Close()
	}

	var summary *models.ScanSummary
	if len(files) > 0 {
		summary = s.ScanFiles(ctx, files)
	} else {
		summary, err = s.ScanReader(ctx, source.StdinSource, cmd.InOrStdin())
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		if session != nil {
			session.fail(err)
		}
		return err
	}
	summary.SessionID = sessionID
	records := summary.Records()

	if session != nil {
		if err := session.complete(ctx, a, summary, records); err != nil {
			return err
		}
	}

	if opts.export != "" {
		if err := exportRecords(ctx, a, sessionID, opts.export, records); err != nil {
			return err
		}
	}

	return rep.ReportScan(summary)
}

// historySession is a scan being recorded in the history database.
type historySession struct {
	store     *datastore.HistoryStore
	dbID      int64
	sessionID string
	target    string
}

func startHistorySession(ctx context.Context, a *app, sessionID, target string, numInputs int, started time.Time) (*historySession, error) {
	store, err := datastore.NewHistoryStore(a.cfg.StorageConfig.SQLitePath, a.logger)
	if err != nil {
		return nil, err
	}
	dbID, err := store.RecordScanStart(ctx, sessionID, target, numInputs, started)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return &historySession{store: store, dbID: dbID, sessionID: sessionID, target: target}, nil
}

// complete stores the records and counts how many were not in the last
// completed scan of the same target.
func (h *historySession) complete(ctx context.Context, a *app, summary *models.ScanSummary, records []models.PathmentRecord) error {
	previous, err := h.store.LatestCompletedRecords(ctx, h.target, h.sessionID)
	if err != nil {
		h.fail(err)
		return err
	}
	comparison := differ.NewPathmentDiffer(a.cfg.DiffConfig, a.logger).Compare(h.target, previous, h.target, records)

	if err := h.store.SaveRecords(ctx, h.dbID, records); err != nil {
		h.fail(err)
		return err
	}

	logSummary := fmt.Sprintf("%d inputs, %d failed", summary.TotalInputs, summary.FailedInputs)
	if err := h.store.UpdateScanCompletion(ctx, h.dbID, time.Now(), models.SessionCompleted, logSummary, len(records), comparison.New); err != nil {
		return err
	}
	a.logger.Info().
		Str("session_id", h.sessionID).
		Int("pathments", len(records)).
		Int("new_pathments", comparison.New).
		Msg("Scan recorded in history")
	return nil
}

// fail marks the session as failed. It runs on a fresh context because the
// scan context may already be cancelled.
func (h *historySession) fail(cause error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = h.store.UpdateScanCompletion(ctx, h.dbID, time.Now(), models.SessionFailed, cause.Error(), 0, 0)
}

func exportRecords(ctx context.Context, a *app, sessionID, path string, records []models.PathmentRecord) error {
	writer, err := datastore.NewParquetWriter(&a.cfg.StorageConfig, a.logger)
	if err != nil {
		return err
	}
	if path == "auto" {
		if path, err = writer.DefaultExportPath(sessionID); err != nil {
			return err
		}
	}
	result, err := writer.Write(ctx, path, records)
	if err != nil {
		return err
	}
	a.logger.Info().Str("file_path", result.FilePath).Int("records", result.RecordsWritten).Msg("Exported records")
	return nil
}
