package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scriba/internal/dates"
)

func newDatesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "dates",
		Short: "Backfill published dates onto archived transcripts",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			client, err := ctx.downloader()
			if err != nil {
				return err
			}
			store, err := ctx.recordStore()
			if err != nil {
				return err
			}

			runCtx, stop := signalContext(cmd.Context())
			defer stop()

			result, err := dates.New(client, store, logger).Run(runCtx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"Dated %d records (%d lookups failed, %d already dated).\n",
				result.Updated, result.Failed, result.Skipped)
			return nil
		},
	}
}
