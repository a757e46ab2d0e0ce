package speech

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"scriba/internal/media"
	"scriba/internal/sources"
)

// OpenAITranscriber sends audio to the OpenAI transcription API and returns
// the service's verbose segment timings.
type OpenAITranscriber struct {
	client   openai.Client
	model    string
	language string
}

// NewOpenAITranscriber builds a transcriber for the given API key. model
// defaults to whisper-1 when empty.
func NewOpenAITranscriber(apiKey, model, language string) (*OpenAITranscriber, error) {
	if apiKey == "" {
		return nil, errors.New("transcription API key required")
	}
	if model == "" {
		model = string(openai.AudioModelWhisper1)
	}
	return &OpenAITranscriber{
		client:   openai.NewClient(option.WithAPIKey(apiKey)),
		model:    model,
		language: language,
	}, nil
}

// Transcribe implements Transcriber. It requests the verbose response
// format so segment-level timestamps come back alongside the text.
func (t *OpenAITranscriber) Transcribe(ctx context.Context, audioPath, prompt string) ([]media.Segment, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return nil, sources.Wrap(sources.ErrExternalTool, "speech", "open audio", err)
	}
	defer file.Close()

	params := openai.AudioTranscriptionNewParams{
		File:                   file,
		Model:                  openai.AudioModel(t.model),
		ResponseFormat:         openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []string{"segment"},
	}
	if prompt != "" {
		params.Prompt = openai.String(prompt)
	}
	if t.language != "" {
		params.Language = openai.String(t.language)
	}

	var verbose openai.TranscriptionVerbose
	_, err = t.client.Audio.Transcriptions.New(ctx, params, option.WithResponseBodyInto(&verbose))
	if err != nil {
		return nil, sources.Wrap(sources.ErrUpstream, "speech", "transcribe audio", err)
	}

	segments := make([]media.Segment, 0, len(verbose.Segments))
	for _, seg := range verbose.Segments {
		start := int64(seg.Start * 1000)
		duration := int64((seg.End - seg.Start) * 1000)
		if duration < 0 {
			duration = 0
		}
		segments = append(segments, media.Segment{
			Text:       seg.Text,
			OffsetMS:   start,
			DurationMS: duration,
		})
	}
	if len(segments) == 0 && verbose.Text != "" {
		// Some models return plain text without segment timings.
		segments = append(segments, media.Segment{
			Text:       verbose.Text,
			OffsetMS:   0,
			DurationMS: int64(verbose.Duration * 1000),
		})
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("transcription service returned no segments")
	}
	return segments, nil
}
