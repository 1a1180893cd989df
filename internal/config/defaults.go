package config

const (
	defaultConfigPath          = "~/.config/flupp/config.toml"
	defaultDataDir             = "~/.local/share/flupp"
	defaultLogDir              = "~/.local/share/flupp/logs"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultAPIBind             = "127.0.0.1:7488"
	defaultAPICacheEntries     = 64
	defaultWatchDebounceMillis = 500
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Import: Import{
			SkipDuplicates:      true,
			ArchiveSource:       true,
			WatchDebounceMillis: defaultWatchDebounceMillis,
		},
		API: API{
			Bind:         defaultAPIBind,
			CacheEntries: defaultAPICacheEntries,
		},
	}
}
