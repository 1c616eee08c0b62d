package config

const (
	defaultDataDir          = "~/.local/share/marquee"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultTargetLanguage   = "de"
	defaultTargetCountry    = "Germany"
	defaultGroupSeparator   = "-"
	defaultMissingGroup     = MissingGroupSentinel
	defaultMkbrrVersion     = "v1.14.0"
	defaultMkbrrBaseURL     = "https://github.com/autobrr/mkbrr/releases/download"
	defaultMkbrrTimeout     = 60
	defaultHistoryFile      = "history.db"
	defaultUserAgent        = "marquee/dev"
	defaultUploadTimeout    = 60
	defaultUploadConcurrent = 4
	defaultNtfyTimeout      = 10
)

// Missing group modes.
const (
	MissingGroupSentinel = "sentinel"
	MissingGroupOmit     = "omit"
)

// Default returns a Config populated with repository defaults. Log and
// scratch directories are derived from the data directory during Load.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Naming: Naming{
			TargetLanguage: defaultTargetLanguage,
			TargetCountry:  defaultTargetCountry,
			GroupSeparator: defaultGroupSeparator,
			MissingGroup:   defaultMissingGroup,
		},
		Mkbrr: Mkbrr{
			Version:         defaultMkbrrVersion,
			DownloadBaseURL: defaultMkbrrBaseURL,
			DownloadTimeout: defaultMkbrrTimeout,
		},
		History: History{
			Enabled: true,
		},
		Upload: Upload{
			UserAgent:      defaultUserAgent,
			TimeoutSeconds: defaultUploadTimeout,
			Concurrency:    defaultUploadConcurrent,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyTimeout,
		},
		Trackers: map[string]Tracker{},
	}
}
