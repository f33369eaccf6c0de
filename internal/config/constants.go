package config

// Default configuration values, overridable via environment variables.
const (
	DefaultPort        = "8080"
	DefaultEnvironment = "dev"
	DefaultVersion     = "dev"

	DefaultLogLevel  = "INFO"
	DefaultLogFormat = "text"
	DefaultLogDir    = "logs"

	DefaultDBUser     = "postgres"
	DefaultDBPassword = "postgres"
	DefaultDBHost     = "localhost"
	DefaultDBPort     = "5432"
	DefaultDBName     = "studyquest"

	DefaultWorkspaceCacheSize = "512"
	DefaultWorkspaceCacheTTL  = "30s"
)
