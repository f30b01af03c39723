package main

import (
	"sync"

	"github.com/henrykdz/pathment/internal/common"
	"github.com/henrykdz/pathment/internal/reporter"
	"github.com/henrykdz/pathment/internal/watcher"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <paths|globs...>",
		Short: "Re-scan files when they change and print added and removed Pathments",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := a.newScanner()
			if err != nil {
				return err
			}
			rep, err := a.newReporter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if rep.Format() == reporter.FormatHTML {
				return common.NewValidationError("format", rep.Format(), "watch output cannot be HTML")
			}

			files, err := s.Discover(args)
			if err != nil {
				return err
			}
			tracker := watcher.NewTracker(s)
			tracker.Prime(ctx, files)

			w, err := watcher.NewWatcher(a.cfg.WatchConfig, a.cfg.InputConfig, a.logger)
			if err != nil {
				return err
			}

			var mu sync.Mutex
			report := func(change watcher.Change) {
				if change.Empty() {
					return
				}
				out := reporter.ChangeReport{Path: change.Path, Added: change.Added, Removed: change.Removed}
				if change.Err != nil {
					out.Error = change.Err.Error()
				}
				mu.Lock()
				defer mu.Unlock()
				if err := rep.ReportChange(out); err != nil {
					a.logger.Error().Err(err).Str("path", change.Path).Msg("Failed to report change")
				}
			}
			w.OnChange(func(path string) { report(tracker.Rescan(ctx, path)) })
			w.OnRemove(func(path string) { report(tracker.Forget(path)) })

			if err := w.Add(args...); err != nil {
				return err
			}
			a.logger.Info().Int("files", len(files)).Msg("Watching for changes, press Ctrl+C to stop")
			return w.Run(ctx)
		},
	}
}
