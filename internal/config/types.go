package config

// Config holds all configuration for the application.
type Config struct {
	DBName         string
	MigrationsDir  string
	Port           string
	LogLevel       string
	AllowedOrigins []string
	ProjectID      string
	Slack          SlackConfig
	Turso          TursoConfig
	Playtomic      PlaytomicConfig
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type PlaytomicConfig struct {
	TenantID string
}
