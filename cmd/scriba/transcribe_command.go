package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"scriba/internal/config"
	"scriba/internal/media"
	"scriba/internal/playlist"
	"scriba/internal/resolver"
	"scriba/internal/runner"
	"scriba/internal/sources/speech"
	"scriba/internal/ytdlp"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "transcribe",
		Short: "Transcribe failed videos with the speech-to-text service",
		Long: `Runs speech-to-text over videos whose caption and subtitle sources were
exhausted by fetch. Transcription is paid and slow, so the batch size is
capped by --limit and defaults to a single video.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunLock(func() error {
				return runTranscribe(cmd.Context(), ctx, cmd, limit)
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 1, "Maximum number of videos to transcribe")
	return cmd
}

func runTranscribe(parent context.Context, ctx *commandContext, cmd *cobra.Command, limit int) error {
	if limit <= 0 {
		return errors.New("--limit must be positive")
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}
	led, err := ctx.loadLedger()
	if err != nil {
		return err
	}

	failed := led.FailedIDs()
	if len(failed) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No failed videos to transcribe.")
		return nil
	}

	apiKey := cfg.SpeechAPIKey()
	if apiKey == "" {
		return errors.New("transcription API key not configured (set speech.api_key or OPENAI_API_KEY)")
	}
	transcriber, err := speech.NewOpenAITranscriber(apiKey, cfg.Speech.Model, cfg.Speech.Language)
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

	runCtx, stop := signalContext(parent)
	defer stop()

	items := failedItems(runCtx, client, logger, cfg.Playlists, failed, limit)
	if len(items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Failed videos no longer appear in the configured playlists.")
		return nil
	}

	chain := resolver.New(logger,
		speech.NewAdapter(client, transcriber, cfg.Paths.TempDir, cfg.Speech.SampleRate, cfg.Speech.PromptPrefix, logger),
	)
	batch := runner.New(chain, led, store, runner.Options{
		Concurrency:   cfg.Runner.TranscribeConcurrency,
		SnapshotEvery: cfg.Runner.TranscribeSnapshotEvery,
		Progress:      progressWriter(),
	}, logger)

	result, err := batch.Run(runCtx, items)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(),
		"Transcribed %d videos (%d failed again, %d remain in the failed set).\n",
		result.Resolved, result.Failed, led.FailedCount())
	return nil
}

// failedItems re-lists the playlists to recover full item metadata for the
// failed ids; the ledger stores ids only. Order follows the sorted failed
// set so repeated runs with a small limit walk it deterministically.
func failedItems(ctx context.Context, client *ytdlp.Client, logger *slog.Logger, playlists []config.Playlist, failed []string, limit int) []media.Item {
	byID := make(map[string]media.Item)
	for _, item := range playlist.NewLister(client, logger).ListAll(ctx, playlists) {
		if _, ok := byID[item.ID]; !ok {
			byID[item.ID] = item
		}
	}

	items := make([]media.Item, 0, limit)
	for _, id := range failed {
		item, ok := byID[id]
		if !ok {
			continue
		}
		items = append(items, item)
		if len(items) == limit {
			break
		}
	}
	return items
}
