package config

const (
	defaultDataDir         = "~/.local/share/bassline"
	defaultLogDir          = "~/.local/share/bassline/logs"
	defaultSteamUserdata   = "~/.steam/steam/userdata"
	defaultExtractorBin    = "psarc"
	defaultJellyfinTimeout = 10
	defaultRecommendCount  = 20
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Archives: Archives{
			ExtractorBin: defaultExtractorBin,
		},
		SaveFile: SaveFile{
			SteamUserdata: defaultSteamUserdata,
		},
		Jellyfin: Jellyfin{
			TimeoutSeconds: defaultJellyfinTimeout,
		},
		Recommend: Recommend{
			Count: defaultRecommendCount,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
