package main

import (
	"github.com/henrykdz/pathment/internal/datastore"
	"github.com/spf13/cobra"
)

type historyOptions struct {
	limit   int
	session string
}

func newHistoryCmd(a *app) *cobra.Command {
	opts := &historyOptions{}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded scan sessions or the Pathments of one session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := datastore.NewHistoryStore(a.cfg.StorageConfig.SQLitePath, a.logger)
			if err != nil {
				return err
			}
			defer store.Close()

			rep, err := a.newReporter(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			if opts.session != "" {
				records, err := store.LoadRecords(ctx, opts.session)
				if err != nil {
					return err
				}
				return rep.ReportRecords(records)
			}

			sessions, err := store.ListSessions(ctx, opts.limit)
			if err != nil {
				return err
			}
			return rep.ReportSessions(sessions)
		},
	}
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 20, "Number of sessions to list, 0 for all")
	cmd.Flags().StringVarP(&opts.session, "session", "s", "", "Show the Pathments recorded by this session")
	return cmd
}
