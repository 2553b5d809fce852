package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName                string
	MigrationsDir         string
	Port                  string
	API                   APIConfig
	Slack                 SlackConfig
	Turso                 TursoConfig
	ProjectID             string
	RolloverCheckInterval time.Duration
}

// APIConfig points at the remote standings/weekly-winners backend.
type APIConfig struct {
	BaseURL   string
	AuthToken string
}
type SlackConfig struct {
	Token     string
	ChannelID string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
