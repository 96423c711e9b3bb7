package config

const (
	defaultConfigPath  = "~/.config/codplayer/config.toml"
	projectConfigName  = "codplayer.toml"
	defaultDatabaseDir = "~/.local/share/codplayer/db"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"

	databaseEnvVar = "CODPLAYER_DATABASE"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Database: Database{
			Dir: defaultDatabaseDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
