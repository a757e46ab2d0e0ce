package speech_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scriba/internal/logging"
	"scriba/internal/media"
	"scriba/internal/sources"
	"scriba/internal/sources/speech"
	"scriba/internal/ytdlp"
)

type fakeExecutor struct {
	onRun func(args []string) ([]byte, error)
}

func (f *fakeExecutor) Run(_ context.Context, _ string, args []string) ([]byte, error) {
	return f.onRun(args)
}

type fakeTranscriber struct {
	segments   []media.Segment
	err        error
	lastPrompt string
	lastPath   string
}

func (f *fakeTranscriber) Transcribe(_ context.Context, audioPath, prompt string) ([]media.Segment, error) {
	f.lastPath = audioPath
	f.lastPrompt = prompt
	return f.segments, f.err
}

func newTestClient(t *testing.T, exec ytdlp.Executor) *ytdlp.Client {
	t.Helper()
	client, err := ytdlp.New("sh", ytdlp.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

// audioWritingExecutor simulates a downloader run that produces the WAV
// file named by the -o argument.
func audioWritingExecutor(t *testing.T) *fakeExecutor {
	t.Helper()
	return &fakeExecutor{onRun: func(args []string) ([]byte, error) {
		for i, arg := range args {
			if arg == "-o" && i+1 < len(args) {
				if err := os.WriteFile(args[i+1], []byte("RIFF"), 0o644); err != nil {
					t.Fatalf("write audio: %v", err)
				}
			}
		}
		return nil, nil
	}}
}

func testItem() media.Item {
	return media.Item{ID: "vid123", Title: "Opening Theory", SourceURL: "https://example.com/watch?v=vid123"}
}

func TestAttemptTranscribesExtractedAudio(t *testing.T) {
	tempDir := t.TempDir()
	transcriber := &fakeTranscriber{segments: []media.Segment{{Text: "hello", OffsetMS: 0, DurationMS: 900}}}
	adapter := speech.NewAdapter(newTestClient(t, audioWritingExecutor(t)), transcriber, tempDir, 16000, "", logging.NewNop())

	outcome := adapter.Attempt(context.Background(), testItem())
	if !outcome.IsFound() {
		t.Fatalf("outcome = %+v, want found", outcome)
	}
	if transcriber.lastPath != filepath.Join(tempDir, "vid123.wav") {
		t.Fatalf("audio path = %q", transcriber.lastPath)
	}
	if transcriber.lastPrompt != "Opening Theory" {
		t.Fatalf("prompt = %q", transcriber.lastPrompt)
	}
}

func TestAttemptAppliesPromptPrefix(t *testing.T) {
	transcriber := &fakeTranscriber{segments: []media.Segment{{Text: "x"}}}
	adapter := speech.NewAdapter(newTestClient(t, audioWritingExecutor(t)), transcriber, t.TempDir(), 16000, "Chess lecture.", logging.NewNop())

	adapter.Attempt(context.Background(), testItem())
	if transcriber.lastPrompt != "Chess lecture. Opening Theory" {
		t.Fatalf("prompt = %q", transcriber.lastPrompt)
	}
}

func TestAttemptTransientOnExtractionFailure(t *testing.T) {
	exec := &fakeExecutor{onRun: func(_ []string) ([]byte, error) {
		return nil, errors.New("format unavailable")
	}}
	adapter := speech.NewAdapter(newTestClient(t, exec), &fakeTranscriber{}, t.TempDir(), 16000, "", logging.NewNop())

	outcome := adapter.Attempt(context.Background(), testItem())
	if outcome.State != sources.StateTransient {
		t.Fatalf("state = %v, want transient", outcome.State)
	}
	if !strings.Contains(outcome.Detail, "format unavailable") {
		t.Fatalf("detail = %q", outcome.Detail)
	}
}

func TestAttemptTransientOnTranscriptionFailure(t *testing.T) {
	transcriber := &fakeTranscriber{err: errors.New("rate limited")}
	adapter := speech.NewAdapter(newTestClient(t, audioWritingExecutor(t)), transcriber, t.TempDir(), 16000, "", logging.NewNop())

	outcome := adapter.Attempt(context.Background(), testItem())
	if outcome.State != sources.StateTransient {
		t.Fatalf("state = %v, want transient", outcome.State)
	}
}

func TestAttemptSweepsAudioFile(t *testing.T) {
	tempDir := t.TempDir()
	transcriber := &fakeTranscriber{segments: []media.Segment{{Text: "x"}}}
	adapter := speech.NewAdapter(newTestClient(t, audioWritingExecutor(t)), transcriber, tempDir, 16000, "", logging.NewNop())

	adapter.Attempt(context.Background(), testItem())

	leftovers, err := filepath.Glob(filepath.Join(tempDir, "vid123.*"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(leftovers) != 0 {
		t.Fatalf("audio files not swept: %v", leftovers)
	}
}
