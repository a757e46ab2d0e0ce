package captions

import (
	"context"
	"errors"
	"log/slog"

	"scriba/internal/logging"
	"scriba/internal/media"
	"scriba/internal/sources"
)

// Adapter tries the configured caption languages in priority order and
// returns the first non-empty track. All source errors are folded into the
// outcome; nothing propagates.
type Adapter struct {
	client    *Client
	languages []string
	logger    *slog.Logger
}

// NewAdapter builds the direct-caption source over a configured client.
func NewAdapter(client *Client, languages []string, logger *slog.Logger) *Adapter {
	if len(languages) == 0 {
		languages = []string{"en"}
	}
	return &Adapter{
		client:    client,
		languages: languages,
		logger:    logging.NewComponentLogger(logger, "captions"),
	}
}

// Name implements sources.Adapter.
func (a *Adapter) Name() string { return "captions" }

// Attempt implements sources.Adapter.
func (a *Adapter) Attempt(ctx context.Context, item media.Item) sources.Outcome {
	var lastErr error
	for _, lang := range a.languages {
		segments, err := a.client.Fetch(ctx, item.ID, lang)
		switch {
		case err == nil && len(segments) > 0:
			return sources.Found(segments)
		case err == nil || errors.Is(err, ErrNoTrack):
			continue
		default:
			lastErr = err
			a.logger.Debug("caption fetch failed",
				logging.String(logging.FieldItemID, item.ID),
				logging.String("lang", lang),
				logging.Error(err),
			)
		}
	}
	if lastErr != nil {
		return sources.Transient(lastErr)
	}
	return sources.NotFound("no caption track in configured languages")
}
