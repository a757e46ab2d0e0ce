package config

const (
	defaultArchiveDir              = "~/.local/share/scriba"
	defaultCaptionsBaseURL         = "https://www.youtube.com/api/timedtext"
	defaultCaptionsTimeoutSeconds  = 30
	defaultDownloaderBinary        = "yt-dlp"
	defaultFFmpegBinary            = "ffmpeg"
	defaultSpeechModel             = "whisper-1"
	defaultSpeechLanguage          = "en"
	defaultSpeechSampleRate        = 16000
	defaultFetchConcurrency        = 10
	defaultFetchSnapshotEvery      = 50
	defaultTranscribeConcurrency   = 5
	defaultTranscribeSnapshotEvery = 5
	defaultLogFormat               = "console"
	defaultLogLevel                = "info"
	defaultSiteTitle               = "Transcript Archive"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ArchiveDir: defaultArchiveDir,
		},
		Captions: Captions{
			BaseURL:        defaultCaptionsBaseURL,
			Languages:      []string{"en"},
			TimeoutSeconds: defaultCaptionsTimeoutSeconds,
		},
		Downloader: Downloader{
			Binary:            defaultDownloaderBinary,
			FFmpegBinary:      defaultFFmpegBinary,
			SubtitleLanguages: []string{"en", "en-US", "en-orig"},
		},
		Speech: Speech{
			Model:      defaultSpeechModel,
			Language:   defaultSpeechLanguage,
			SampleRate: defaultSpeechSampleRate,
		},
		Runner: Runner{
			FetchConcurrency:        defaultFetchConcurrency,
			FetchSnapshotEvery:      defaultFetchSnapshotEvery,
			TranscribeConcurrency:   defaultTranscribeConcurrency,
			TranscribeSnapshotEvery: defaultTranscribeSnapshotEvery,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Site: Site{
			Title: defaultSiteTitle,
		},
	}
}
