package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCaptions(); err != nil {
		return err
	}
	if err := c.validateDownloader(); err != nil {
		return err
	}
	if err := c.validateRunner(); err != nil {
		return err
	}
	if err := c.validatePlaylists(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCaptions() error {
	parsed, err := url.Parse(c.Captions.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("captions.base_url must be an absolute URL, got %q", c.Captions.BaseURL)
	}
	for _, lang := range c.Captions.Languages {
		if strings.TrimSpace(lang) == "" {
			return errors.New("captions.languages must not contain empty entries")
		}
	}
	return nil
}

func (c *Config) validateDownloader() error {
	if strings.TrimSpace(c.Downloader.Binary) == "" {
		return errors.New("downloader.binary must be set")
	}
	if strings.TrimSpace(c.Downloader.FFmpegBinary) == "" {
		return errors.New("downloader.ffmpeg_binary must be set")
	}
	for _, lang := range c.Downloader.SubtitleLanguages {
		if strings.TrimSpace(lang) == "" {
			return errors.New("downloader.subtitle_languages must not contain empty entries")
		}
	}
	return nil
}

func (c *Config) validateRunner() error {
	if c.Runner.FetchConcurrency < 1 {
		return errors.New("runner.fetch_concurrency must be at least 1")
	}
	if c.Runner.FetchSnapshotEvery < 1 {
		return errors.New("runner.fetch_snapshot_every must be at least 1")
	}
	if c.Runner.TranscribeConcurrency < 1 {
		return errors.New("runner.transcribe_concurrency must be at least 1")
	}
	if c.Runner.TranscribeSnapshotEvery < 1 {
		return errors.New("runner.transcribe_snapshot_every must be at least 1")
	}
	return nil
}

func (c *Config) validatePlaylists() error {
	seen := make(map[string]struct{}, len(c.Playlists))
	for _, pl := range c.Playlists {
		if _, dup := seen[pl.ID]; dup {
			return fmt.Errorf("playlists: duplicate id %q", pl.ID)
		}
		seen[pl.ID] = struct{}{}
	}
	return nil
}
