package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and file locations owned by the archive.
type Paths struct {
	ArchiveDir string `toml:"archive_dir"`
	RecordsDir string `toml:"records_dir"`
	TempDir    string `toml:"temp_dir"`
	SiteDir    string `toml:"site_dir"`
	LedgerPath string `toml:"ledger_path"`
	StatsPath  string `toml:"stats_path"`
	IndexPath  string `toml:"index_path"`
}

// Playlist identifies one upstream playlist and its display label.
type Playlist struct {
	ID    string `toml:"id"`
	Label string `toml:"label"`
}

// Captions configures the direct-caption HTTP source.
type Captions struct {
	BaseURL        string   `toml:"base_url"`
	Languages      []string `toml:"languages"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
}

// Downloader configures the external media downloader used by the
// subtitle-file and speech-to-text sources.
type Downloader struct {
	Binary            string   `toml:"binary"`
	FFmpegBinary      string   `toml:"ffmpeg_binary"`
	SubtitleLanguages []string `toml:"subtitle_languages"`
}

// Speech configures the speech-to-text transcription service.
type Speech struct {
	APIKey       string `toml:"api_key"`
	Model        string `toml:"model"`
	Language     string `toml:"language"`
	PromptPrefix string `toml:"prompt_prefix"`
	SampleRate   int    `toml:"sample_rate"`
}

// Runner configures batch concurrency caps and snapshot cadence.
type Runner struct {
	FetchConcurrency        int `toml:"fetch_concurrency"`
	FetchSnapshotEvery      int `toml:"fetch_snapshot_every"`
	TranscribeConcurrency   int `toml:"transcribe_concurrency"`
	TranscribeSnapshotEvery int `toml:"transcribe_snapshot_every"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Site configures static page generation.
type Site struct {
	Title string `toml:"title"`
}

// Config encapsulates all configuration values for scriba.
type Config struct {
	Paths      Paths      `toml:"paths"`
	Playlists  []Playlist `toml:"playlists"`
	Captions   Captions   `toml:"captions"`
	Downloader Downloader `toml:"downloader"`
	Speech     Speech     `toml:"speech"`
	Runner     Runner     `toml:"runner"`
	Logging    Logging    `toml:"logging"`
	Site       Site       `toml:"site"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/scriba/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("scriba.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories batch commands rely on.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.ArchiveDir, c.Paths.RecordsDir, c.Paths.TempDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// SpeechAPIKey returns the transcription credential, falling back to the
// OPENAI_API_KEY environment variable when the config file leaves it empty.
func (c *Config) SpeechAPIKey() string {
	if key := strings.TrimSpace(c.Speech.APIKey); key != "" {
		return key
	}
	return strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
}

// LockPath is the flock path guarding concurrent batch runs.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.ArchiveDir, "scriba.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
