package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scriba/internal/fileutil"
	"scriba/internal/search"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search transcript segments",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !fileutil.Exists(cfg.Paths.IndexPath) {
				return errors.New("search index not built; run `scriba stats` first")
			}

			idx, err := search.Open(cfg.Paths.IndexPath)
			if err != nil {
				return err
			}
			defer func() { _ = idx.Close() }()

			query := strings.Join(args, " ")
			hits, err := idx.Search(cmd.Context(), query, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(hits) == 0 {
				fmt.Fprintf(out, "No matches for %q.\n", query)
				return nil
			}
			for _, hit := range hits {
				fmt.Fprintf(out, "%s [%s] %s @%s\n  %s\n",
					hit.VideoID, hit.GroupLabel, hit.VideoTitle,
					formatHitOffset(hit.OffsetMS), hit.Text)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of results")
	return cmd
}

func formatHitOffset(ms int64) string {
	total := ms / 1000
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
