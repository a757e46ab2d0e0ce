package playlist

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"scriba/internal/config"
	"scriba/internal/logging"
	"scriba/internal/media"
	"scriba/internal/sources"
	"scriba/internal/ytdlp"
)

// flatListing is the downloader's single-JSON playlist document, reduced
// to the fields the archive needs.
type flatListing struct {
	Title   string `json:"title"`
	Entries []struct {
		ID       string  `json:"id"`
		Title    string  `json:"title"`
		URL      string  `json:"url"`
		Duration float64 `json:"duration"`
	} `json:"entries"`
}

// Lister enumerates playlist entries.
type Lister struct {
	client *ytdlp.Client
	logger *slog.Logger
}

// NewLister builds a lister over the downloader client.
func NewLister(client *ytdlp.Client, logger *slog.Logger) *Lister {
	return &Lister{
		client: client,
		logger: logging.NewComponentLogger(logger, "playlist"),
	}
}

// List resolves one playlist into items. The configured label wins over
// the playlist title reported by the downloader.
func (l *Lister) List(ctx context.Context, pl config.Playlist) ([]media.Item, error) {
	if strings.TrimSpace(pl.ID) == "" {
		return nil, errors.New("playlist id required")
	}
	raw, err := l.client.FlatPlaylistJSON(ctx, ytdlp.PlaylistURL(pl.ID))
	if err != nil {
		return nil, sources.Wrap(sources.ErrExternalTool, "playlist", "list "+pl.ID, err)
	}

	var listing flatListing
	if err := json.Unmarshal(raw, &listing); err != nil {
		return nil, sources.Wrap(sources.ErrDecode, "playlist", "parse listing "+pl.ID, err)
	}

	label := strings.TrimSpace(pl.Label)
	if label == "" {
		label = strings.TrimSpace(listing.Title)
	}

	items := make([]media.Item, 0, len(listing.Entries))
	for _, entry := range listing.Entries {
		if strings.TrimSpace(entry.ID) == "" {
			continue
		}
		sourceURL := entry.URL
		if sourceURL == "" {
			sourceURL = ytdlp.WatchURL(entry.ID)
		}
		items = append(items, media.Item{
			ID:              entry.ID,
			Title:           entry.Title,
			SourceURL:       sourceURL,
			DurationSeconds: int64(entry.Duration),
			GroupID:         pl.ID,
			GroupLabel:      label,
		})
	}
	return items, nil
}

// ListAll resolves every configured playlist. A playlist that fails to
// list is logged and skipped so one broken playlist never blocks the rest
// of the batch.
func (l *Lister) ListAll(ctx context.Context, playlists []config.Playlist) []media.Item {
	var items []media.Item
	for _, pl := range playlists {
		listed, err := l.List(ctx, pl)
		if err != nil {
			l.logger.Warn("playlist listing failed",
				logging.String(logging.FieldPlaylist, pl.ID),
				logging.Error(err),
			)
			continue
		}
		l.logger.Info("playlist listed",
			logging.String(logging.FieldPlaylist, pl.ID),
			logging.Int("items", len(listed)),
		)
		items = append(items, listed...)
	}
	return items
}
