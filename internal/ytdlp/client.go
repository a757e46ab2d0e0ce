package ytdlp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) ([]byte, error)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s failed: %w: %s", binary, err, tail(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// tail keeps error output readable when the downloader is chatty.
func tail(output string) string {
	output = strings.TrimSpace(output)
	lines := strings.Split(output, "\n")
	if len(lines) <= 3 {
		return output
	}
	return strings.Join(lines[len(lines)-3:], "\n")
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps yt-dlp invocations.
type Client struct {
	binary string
	exec   Executor
}

// New constructs a downloader client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("downloader binary required")
	}
	client := &Client{binary: binary, exec: commandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Available reports whether the downloader binary can be resolved on PATH.
func (c *Client) Available() bool {
	_, err := exec.LookPath(c.binary)
	return err == nil
}

// Binary returns the configured binary name for diagnostics.
func (c *Client) Binary() string { return c.binary }

// WatchURL builds the canonical watch URL for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// PlaylistURL builds the canonical playlist URL for a playlist id.
func PlaylistURL(playlistID string) string {
	return "https://www.youtube.com/playlist?list=" + playlistID
}

// FlatPlaylistJSON lists a playlist without resolving each entry, returning
// the raw single-JSON document emitted by the downloader.
func (c *Client) FlatPlaylistJSON(ctx context.Context, playlistURL string) ([]byte, error) {
	if strings.TrimSpace(playlistURL) == "" {
		return nil, errors.New("playlist URL required")
	}
	out, err := c.exec.Run(ctx, c.binary, []string{"--flat-playlist", "-J", playlistURL})
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(out)) == 0 {
		return nil, errors.New("downloader returned empty playlist output")
	}
	return out, nil
}

// DownloadSubtitles fetches subtitle files (manual and auto-generated) in
// WebVTT format without downloading media. outputTemplate should be an
// id-namespaced path prefix; yt-dlp appends ".<lang>.vtt".
func (c *Client) DownloadSubtitles(ctx context.Context, videoURL, outputTemplate string, languages []string) error {
	if strings.TrimSpace(videoURL) == "" {
		return errors.New("video URL required")
	}
	args := []string{
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-format", "vtt",
		"--sub-langs", strings.Join(languages, ","),
		"-o", outputTemplate,
		videoURL,
	}
	_, err := c.exec.Run(ctx, c.binary, args)
	return err
}

// ExtractAudio downloads the best audio stream and transcodes it (via the
// downloader's ffmpeg postprocessor) to mono WAV at the given sample rate,
// the shape the transcription service expects.
func (c *Client) ExtractAudio(ctx context.Context, videoURL, dest string, sampleRate int) error {
	if strings.TrimSpace(videoURL) == "" {
		return errors.New("video URL required")
	}
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	args := []string{
		"-f", "bestaudio",
		"-x",
		"--audio-format", "wav",
		"--postprocessor-args", fmt.Sprintf("ffmpeg:-ac 1 -ar %d", sampleRate),
		"-o", dest,
		videoURL,
	}
	_, err := c.exec.Run(ctx, c.binary, args)
	return err
}

// UploadDate fetches a video's upload date, normalized to YYYY-MM-DD.
func (c *Client) UploadDate(ctx context.Context, videoURL string) (string, error) {
	if strings.TrimSpace(videoURL) == "" {
		return "", errors.New("video URL required")
	}
	out, err := c.exec.Run(ctx, c.binary, []string{"--skip-download", "--print", "upload_date", videoURL})
	if err != nil {
		return "", err
	}
	raw := strings.TrimSpace(string(out))
	if raw == "" || raw == "NA" {
		return "", errors.New("upload date unavailable")
	}
	parsed, err := time.Parse("20060102", raw)
	if err != nil {
		return "", fmt.Errorf("parse upload date %q: %w", raw, err)
	}
	return parsed.Format("2006-01-02"), nil
}
