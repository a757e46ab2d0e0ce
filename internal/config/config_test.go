package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scriba/internal/config"
)

func TestLoadDefaultsExpandPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantArchive := filepath.Join(tempHome, ".local", "share", "scriba")
	if cfg.Paths.ArchiveDir != wantArchive {
		t.Fatalf("unexpected archive dir: got %q want %q", cfg.Paths.ArchiveDir, wantArchive)
	}
	if cfg.Paths.RecordsDir != filepath.Join(wantArchive, "records") {
		t.Fatalf("unexpected records dir: %q", cfg.Paths.RecordsDir)
	}
	if cfg.Paths.LedgerPath != filepath.Join(wantArchive, "ledger.json") {
		t.Fatalf("unexpected ledger path: %q", cfg.Paths.LedgerPath)
	}
	if cfg.Runner.FetchConcurrency != 10 || cfg.Runner.TranscribeConcurrency != 5 {
		t.Fatalf("unexpected concurrency defaults: %+v", cfg.Runner)
	}
	if cfg.Runner.FetchSnapshotEvery != 50 || cfg.Runner.TranscribeSnapshotEvery != 5 {
		t.Fatalf("unexpected snapshot defaults: %+v", cfg.Runner)
	}
	if cfg.Downloader.Binary != "yt-dlp" || cfg.Downloader.FFmpegBinary != "ffmpeg" {
		t.Fatalf("unexpected downloader defaults: %+v", cfg.Downloader)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.ArchiveDir, cfg.Paths.RecordsDir, cfg.Paths.TempDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
	}
}

func TestLoadParsesFileAndNormalizesPlaylists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
archive_dir = "` + dir + `/archive"

[[playlists]]
id = "  PL123  "

[[playlists]]
id = ""
label = "ignored"

[runner]
fetch_concurrency = 3
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected file to be detected")
	}
	if len(cfg.Playlists) != 1 {
		t.Fatalf("expected blank playlist dropped, got %+v", cfg.Playlists)
	}
	if cfg.Playlists[0].ID != "PL123" || cfg.Playlists[0].Label != "PL123" {
		t.Fatalf("expected trimmed id used as label, got %+v", cfg.Playlists[0])
	}
	if cfg.Runner.FetchConcurrency != 3 {
		t.Fatalf("expected file override, got %d", cfg.Runner.FetchConcurrency)
	}
	if cfg.Runner.FetchSnapshotEvery != 50 {
		t.Fatalf("expected default snapshot cadence, got %d", cfg.Runner.FetchSnapshotEvery)
	}
}

func TestValidateRejectsDuplicatePlaylists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[[playlists]]
id = "PL123"

[[playlists]]
id = "PL123"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(path)
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate playlist error, got %v", err)
	}
}

func TestValidateRejectsBadBaseURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[captions]\nbase_url = \"not a url\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for invalid captions.base_url")
	}
}

func TestSpeechAPIKeyFallsBackToEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")
	cfg := config.Default()
	if key := cfg.SpeechAPIKey(); key != "env-key" {
		t.Fatalf("expected env fallback, got %q", key)
	}
	cfg.Speech.APIKey = "file-key"
	if key := cfg.SpeechAPIKey(); key != "file-key" {
		t.Fatalf("expected file key to win, got %q", key)
	}
}
