package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"scriba/internal/search"
	"scriba/internal/stats"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Regenerate archive statistics and the search index",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
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

			summary := stats.Build(recs, time.Now())
			if err := stats.WriteSummary(cfg.Paths.StatsPath, summary); err != nil {
				return fmt.Errorf("write stats: %w", err)
			}

			idx, err := search.Open(cfg.Paths.IndexPath)
			if err != nil {
				return err
			}
			defer func() { _ = idx.Close() }()
			if err := idx.Rebuild(cmd.Context(), recs); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Playlist", "Videos", "Segments", "Words", "Spoken"},
				statsRows(summary),
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
			))
			fmt.Fprintf(out, "Wrote %s and rebuilt the search index (%d segments).\n",
				cfg.Paths.StatsPath, summary.Segments)
			return nil
		},
	}
}

func statsRows(summary stats.Summary) [][]string {
	rows := make([][]string, 0, len(summary.Groups)+1)
	for _, group := range summary.Groups {
		rows = append(rows, []string{
			group.GroupLabel,
			strconv.Itoa(group.Videos),
			strconv.Itoa(group.Segments),
			strconv.Itoa(group.Words),
			formatSpoken(group.SpokenSeconds),
		})
	}
	rows = append(rows, []string{
		"Total",
		strconv.Itoa(summary.Videos),
		strconv.Itoa(summary.Segments),
		strconv.Itoa(summary.Words),
		formatSpoken(summary.SpokenSeconds),
	})
	return rows
}

func formatSpoken(seconds int64) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh%02dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
