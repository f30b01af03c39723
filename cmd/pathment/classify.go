package main

import (
	"io"
	"strings"

	"github.com/henrykdz/pathment/internal/common"
	"github.com/henrykdz/pathment/internal/models"
	"github.com/henrykdz/pathment/internal/paste"
	"github.com/henrykdz/pathment/internal/pathment"
	"github.com/spf13/cobra"
)

func newClassifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "classify [text...]",
		Short: "Classify pasted text as one Pathment or extract all of them",
		Long: `Classify treats its arguments, joined by spaces, or standard input as a
paste. Short single-line text is classified as a whole. Longer or
multi-line text goes through full extraction.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return common.WrapError(err, "failed to read standard input")
				}
				text = strings.TrimRight(string(data), "\r\n")
			}

			titleLength := a.cfg.ScanConfig.TitleLength
			if titleLength <= 0 {
				titleLength = pathment.DefaultTitleLength
			}
			engine := pathment.NewEngine(a.logger, pathment.WithTitleLength(titleLength))
			dispatcher, err := paste.NewDispatcher(engine, a.cfg.ScanConfig, a.logger)
			if err != nil {
				return err
			}

			result := dispatcher.Dispatch(text)
			a.logger.Debug().Str("mode", string(result.Mode)).Int("pathments", len(result.Pathments)).Msg("Paste dispatched")

			records := models.FromScanResult(pathment.ScanResult{
				Pathments:   result.Pathments,
				Interesting: result.Interesting,
			}, "", a.cfg.DiffConfig.CanonicalOptions())

			rep, err := a.newReporter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return rep.ReportRecords(records)
		},
	}
}
