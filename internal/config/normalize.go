package config

import (
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCaptions()
	c.normalizeDownloader()
	c.normalizeSpeech()
	c.normalizeRunner()
	c.normalizeLogging()
	c.normalizePlaylists()
	return nil
}

func (c *Config) normalizePaths() error {
	archive, err := expandPath(valueOr(c.Paths.ArchiveDir, defaultArchiveDir))
	if err != nil {
		return err
	}
	c.Paths.ArchiveDir = archive

	derived := []struct {
		field    *string
		fallback string
	}{
		{&c.Paths.RecordsDir, filepath.Join(archive, "records")},
		{&c.Paths.TempDir, filepath.Join(archive, "tmp")},
		{&c.Paths.SiteDir, filepath.Join(archive, "site")},
		{&c.Paths.LedgerPath, filepath.Join(archive, "ledger.json")},
		{&c.Paths.StatsPath, filepath.Join(archive, "stats.json")},
		{&c.Paths.IndexPath, filepath.Join(archive, "index.db")},
	}
	for _, d := range derived {
		expanded, err := expandPath(valueOr(*d.field, d.fallback))
		if err != nil {
			return err
		}
		*d.field = expanded
	}
	return nil
}

func (c *Config) normalizeCaptions() {
	c.Captions.BaseURL = strings.TrimRight(valueOr(c.Captions.BaseURL, defaultCaptionsBaseURL), "/")
	if len(c.Captions.Languages) == 0 {
		c.Captions.Languages = []string{"en"}
	}
	if c.Captions.TimeoutSeconds <= 0 {
		c.Captions.TimeoutSeconds = defaultCaptionsTimeoutSeconds
	}
}

func (c *Config) normalizeDownloader() {
	c.Downloader.Binary = valueOr(c.Downloader.Binary, defaultDownloaderBinary)
	c.Downloader.FFmpegBinary = valueOr(c.Downloader.FFmpegBinary, defaultFFmpegBinary)
	if len(c.Downloader.SubtitleLanguages) == 0 {
		c.Downloader.SubtitleLanguages = []string{"en", "en-US", "en-orig"}
	}
}

func (c *Config) normalizeSpeech() {
	c.Speech.Model = valueOr(c.Speech.Model, defaultSpeechModel)
	c.Speech.Language = valueOr(c.Speech.Language, defaultSpeechLanguage)
	if c.Speech.SampleRate <= 0 {
		c.Speech.SampleRate = defaultSpeechSampleRate
	}
}

func (c *Config) normalizeRunner() {
	if c.Runner.FetchConcurrency <= 0 {
		c.Runner.FetchConcurrency = defaultFetchConcurrency
	}
	if c.Runner.FetchSnapshotEvery <= 0 {
		c.Runner.FetchSnapshotEvery = defaultFetchSnapshotEvery
	}
	if c.Runner.TranscribeConcurrency <= 0 {
		c.Runner.TranscribeConcurrency = defaultTranscribeConcurrency
	}
	if c.Runner.TranscribeSnapshotEvery <= 0 {
		c.Runner.TranscribeSnapshotEvery = defaultTranscribeSnapshotEvery
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = valueOr(strings.ToLower(strings.TrimSpace(c.Logging.Level)), defaultLogLevel)
	c.Logging.Format = valueOr(strings.ToLower(strings.TrimSpace(c.Logging.Format)), defaultLogFormat)
}

func (c *Config) normalizePlaylists() {
	kept := c.Playlists[:0]
	for _, pl := range c.Playlists {
		pl.ID = strings.TrimSpace(pl.ID)
		pl.Label = strings.TrimSpace(pl.Label)
		if pl.ID == "" {
			continue
		}
		if pl.Label == "" {
			pl.Label = pl.ID
		}
		kept = append(kept, pl)
	}
	c.Playlists = kept
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}
