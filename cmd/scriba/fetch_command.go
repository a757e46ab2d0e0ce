package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"scriba/internal/playlist"
	"scriba/internal/resolver"
	"scriba/internal/runner"
	"scriba/internal/sources/captions"
	"scriba/internal/sources/subfile"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch transcripts for all configured playlists",
		Long: `Lists every configured playlist and acquires a transcript for each new
video, trying direct captions first and downloaded subtitle files second.
Videos that fail both sources are recorded for the transcribe command.
Per-item failures do not fail the run; progress is resumable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunLock(func() error {
				return runFetch(cmd.Context(), ctx, cmd)
			})
		},
	}
}

func runFetch(parent context.Context, ctx *commandContext, cmd *cobra.Command) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}
	client, err := ctx.downloader()
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

	runCtx, stop := signalContext(parent)
	defer stop()

	items := playlist.NewLister(client, logger).ListAll(runCtx, cfg.Playlists)
	if len(items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No videos listed; check the configured playlists.")
		return nil
	}

	captionClient := captions.NewClient(cfg.Captions.BaseURL,
		time.Duration(cfg.Captions.TimeoutSeconds)*time.Second, nil)
	chain := resolver.New(logger,
		captions.NewAdapter(captionClient, cfg.Captions.Languages, logger),
		subfile.NewAdapter(client, cfg.Downloader.SubtitleLanguages, cfg.Paths.TempDir, logger),
	)

	batch := runner.New(chain, led, store, runner.Options{
		Concurrency:   cfg.Runner.FetchConcurrency,
		SnapshotEvery: cfg.Runner.FetchSnapshotEvery,
		Progress:      progressWriter(),
	}, logger)

	result, err := batch.Run(runCtx, items)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(),
		"Fetched %d transcripts (%d failed, %d already archived); run `scriba transcribe` for the failures.\n",
		result.Resolved, result.Failed, result.Skipped)
	return nil
}
