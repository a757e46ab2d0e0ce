package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scriba/internal/site"
)

func newSiteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "site",
		Short: "Generate the static transcript site",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			store, err := ctx.recordStore()
			if err != nil {
				return err
			}
			recs, err := store.List()
			if err != nil {
				return err
			}

			gen, err := site.NewGenerator(cfg.Paths.SiteDir, cfg.Site.Title, logger)
			if err != nil {
				return err
			}
			if err := gen.Generate(recs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %d pages in %s.\n", len(recs)+1, cfg.Paths.SiteDir)
			return nil
		},
	}
}
