package speech

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

// Transcriber converts an audio file into timed transcript segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, prompt string) ([]media.Segment, error)
}

// Adapter extracts audio with the external downloader and hands it to the
// transcription service. It is the most expensive source and runs only
// under the explicit transcribe command.
type Adapter struct {
	client       *ytdlp.Client
	transcriber  Transcriber
	tempDir      string
	sampleRate   int
	promptPrefix string
	logger       *slog.Logger
}

// NewAdapter builds the speech-to-text source.
func NewAdapter(client *ytdlp.Client, transcriber Transcriber, tempDir string, sampleRate int, promptPrefix string, logger *slog.Logger) *Adapter {
	return &Adapter{
		client:       client,
		transcriber:  transcriber,
		tempDir:      tempDir,
		sampleRate:   sampleRate,
		promptPrefix: promptPrefix,
		logger:       logging.NewComponentLogger(logger, "speech"),
	}
}

// Name implements sources.Adapter.
func (a *Adapter) Name() string { return "speech" }

// Attempt implements sources.Adapter.
func (a *Adapter) Attempt(ctx context.Context, item media.Item) sources.Outcome {
	if !a.client.Available() {
		return sources.NotFound("downloader not installed")
	}
	if strings.TrimSpace(item.ID) == "" {
		return sources.NotFound("item has no id")
	}

	wavPath := filepath.Join(a.tempDir, item.ID+".wav")
	defer a.sweep(item.ID)

	if err := a.client.ExtractAudio(ctx, item.SourceURL, wavPath, a.sampleRate); err != nil {
		a.logger.Debug("audio extraction failed",
			logging.String(logging.FieldItemID, item.ID),
			logging.Error(err),
		)
		return sources.Transient(err)
	}
	if _, err := os.Stat(wavPath); err != nil {
		return sources.Transient(err)
	}

	segments, err := a.transcriber.Transcribe(ctx, wavPath, a.prompt(item))
	if err != nil {
		a.logger.Debug("transcription failed",
			logging.String(logging.FieldItemID, item.ID),
			logging.Error(err),
		)
		return sources.Transient(err)
	}
	return sources.Found(segments)
}

// prompt builds the service context prompt from the item title; the
// optional prefix lets operators inject domain vocabulary.
func (a *Adapter) prompt(item media.Item) string {
	title := strings.TrimSpace(item.Title)
	prefix := strings.TrimSpace(a.promptPrefix)
	switch {
	case prefix != "" && title != "":
		return prefix + " " + title
	case prefix != "":
		return prefix
	default:
		return title
	}
}

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
