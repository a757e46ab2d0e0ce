// Package dates backfills published dates onto stored records. The flat
// playlist listing does not carry upload dates, so they are resolved one
// video at a time after the transcripts exist.
package dates

import (
	"context"
	"log/slog"

	"scriba/internal/logging"
	"scriba/internal/records"
	"scriba/internal/ytdlp"
)

// Backfiller fills in missing published dates.
type Backfiller struct {
	client *ytdlp.Client
	store  *records.Store
	logger *slog.Logger
}

// New builds a backfiller over the record store.
func New(client *ytdlp.Client, store *records.Store, logger *slog.Logger) *Backfiller {
	return &Backfiller{
		client: client,
		store:  store,
		logger: logging.NewComponentLogger(logger, "dates"),
	}
}

// Result summarizes a backfill pass.
type Result struct {
	Updated int
	Failed  int
	Skipped int // records that already carry a date
}

// Run walks every record and resolves the published date for those missing
// one. Lookups run serially; the date endpoint is cheap but rate-sensitive.
func (b *Backfiller) Run(ctx context.Context) (Result, error) {
	recs, err := b.store.List()
	if err != nil {
		return Result{}, err
	}

	var result Result
	for _, rec := range recs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if rec.PublishedAt != "" {
			result.Skipped++
			continue
		}
		date, err := b.client.UploadDate(ctx, rec.Item.SourceURL)
		if err != nil {
			result.Failed++
			b.logger.Warn("upload date lookup failed",
				logging.String(logging.FieldItemID, rec.Item.ID),
				logging.Error(err),
			)
			continue
		}
		if err := b.store.SetPublishedAt(rec.Item.ID, date); err != nil {
			result.Failed++
			b.logger.Error("record update failed",
				logging.String(logging.FieldItemID, rec.Item.ID),
				logging.Error(err),
			)
			continue
		}
		result.Updated++
	}
	return result, nil
}
