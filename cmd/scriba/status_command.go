package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"scriba/internal/deps"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show archive progress and external tool availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			led, err := ctx.loadLedger()
			if err != nil {
				return err
			}
			store, err := ctx.recordStore()
			if err != nil {
				return err
			}
			recordCount, err := store.Count()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Metric", "Value"},
				[][]string{
					{"Archive", cfg.Paths.ArchiveDir},
					{"Records", strconv.Itoa(recordCount)},
					{"Done", strconv.Itoa(led.DoneCount())},
					{"Failed", strconv.Itoa(led.FailedCount())},
					{"Playlists", strconv.Itoa(len(cfg.Playlists))},
				},
				[]columnAlignment{alignLeft, alignRight},
			))

			statuses := deps.CheckBinaries(deps.Defaults(cfg))
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				state := "ok"
				if !status.Available {
					state = "missing"
					if status.Detail != "" {
						state = status.Detail
					}
				}
				optional := ""
				if status.Optional {
					optional = "optional"
				}
				rows = append(rows, []string{status.Name, status.Command, state, optional})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Tool", "Command", "Status", ""},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))

			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				fmt.Fprintf(out, "Missing required tools: %s\n", strings.Join(missing, ", "))
			}
			return nil
		},
	}
}
