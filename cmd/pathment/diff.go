package main

import (
	"strings"

	"github.com/henrykdz/pathment/internal/datastore"
	"github.com/henrykdz/pathment/internal/differ"
	"github.com/spf13/cobra"
)

type diffOptions struct {
	lines bool
}

func newDiffCmd(a *app) *cobra.Command {
	opts := &diffOptions{}
	cmd := &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Compare the Pathments of two inputs",
		Long: `Diff compares two inputs by canonical address and reports new, removed
and existing Pathments. An input is a file, directory or glob to scan, a
Parquet export (*.parquet), or a stored history session (session:<id>).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := a.newScanner()
			if err != nil {
				return err
			}

			var history *datastore.HistoryStore
			if hasSessionInput(args) {
				if history, err = datastore.NewHistoryStore(a.cfg.StorageConfig.SQLitePath, a.logger); err != nil {
					return err
				}
				defer history.Close()
			}

			loader := differ.NewRecordLoader(s, datastore.NewParquetReader(a.logger), history, a.logger)
			previous, err := loader.Load(ctx, args[0])
			if err != nil {
				return err
			}
			current, err := loader.Load(ctx, args[1])
			if err != nil {
				return err
			}

			diffCfg := a.cfg.DiffConfig
			if opts.lines {
				diffCfg.ShowLineDiff = true
			}
			result := differ.NewPathmentDiffer(diffCfg, a.logger).Compare(args[0], previous, args[1], current)

			rep, err := a.newReporter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return rep.ReportDiff(result)
		},
	}
	cmd.Flags().BoolVar(&opts.lines, "lines", false, "Add a line diff of the sorted address lists")
	return cmd
}

func hasSessionInput(args []string) bool {
	for _, arg := range args {
		if strings.HasPrefix(arg, differ.SessionPrefix) {
			return true
		}
	}
	return false
}
