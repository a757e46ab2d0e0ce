package subfile

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"scriba/internal/logging"
	"scriba/internal/media"
	"scriba/internal/sources"
	"scriba/internal/ytdlp"
)

// Adapter downloads WebVTT subtitle files with the external downloader
// and parses the best available track into segments. Manually-authored
// tracks beat auto-generated variants via the language suffix priority.
type Adapter struct {
	client    *ytdlp.Client
	languages []string
	tempDir   string
	logger    *slog.Logger
}

// NewAdapter builds the subtitle-file source. languages is the suffix
// priority order; tempDir receives the downloaded files and is swept per
// item afterwards.
func NewAdapter(client *ytdlp.Client, languages []string, tempDir string, logger *slog.Logger) *Adapter {
	if len(languages) == 0 {
		languages = []string{"en"}
	}
	return &Adapter{
		client:    client,
		languages: languages,
		tempDir:   tempDir,
		logger:    logging.NewComponentLogger(logger, "subfile"),
	}
}

// Name implements sources.Adapter.
func (a *Adapter) Name() string { return "subfile" }

// Attempt implements sources.Adapter.
func (a *Adapter) Attempt(ctx context.Context, item media.Item) sources.Outcome {
	if !a.client.Available() {
		return sources.NotFound("downloader not installed")
	}
	if strings.TrimSpace(item.ID) == "" {
		return sources.NotFound("item has no id")
	}

	template := filepath.Join(a.tempDir, item.ID)
	defer a.sweep(item.ID)

	if err := a.client.DownloadSubtitles(ctx, item.SourceURL, template, a.languages); err != nil {
		a.logger.Debug("subtitle download failed",
			logging.String(logging.FieldItemID, item.ID),
			logging.Error(err),
		)
		return sources.Transient(err)
	}

	for _, lang := range a.languages {
		path := template + "." + lang + ".vtt"
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if segments := ParseVTT(string(content)); len(segments) > 0 {
			return sources.Found(segments)
		}
	}
	return sources.NotFound("no subtitle file in configured languages")
}

// sweep removes every temp file the downloader produced for this item.
// The downloader can leave files under names we did not predict, so the
// sweep is id-scoped rather than enumerating suffixes.
func (a *Adapter) sweep(id string) {
	if strings.TrimSpace(id) == "" {
		return
	}
	matches, err := filepath.Glob(filepath.Join(a.tempDir, id+".*"))
	if err != nil {
		return
	}
	for _, match := range matches {
		if err := os.Remove(match); err != nil && !os.IsNotExist(err) {
			a.logger.Debug("temp file cleanup failed",
				logging.String("path", match),
				logging.Error(err),
			)
		}
	}
}
