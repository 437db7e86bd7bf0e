package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Client  ClientConfig  `mapstructure:"client"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
}

// APIConfig holds Olho Vivo connection details
type APIConfig struct {
	URL     string `mapstructure:"url" validate:"required,url"`
	Token   string `mapstructure:"token" validate:"required"`
	Version string `mapstructure:"version" validate:"required"`
}

// ClientConfig tunes the HTTP session
type ClientConfig struct {
	Timeout       time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxAttempts   int           `mapstructure:"max_attempts" validate:"gte=1"`
	RetryDelay    time.Duration `mapstructure:"retry_delay" validate:"gte=0"`
	RetryMaxDelay time.Duration `mapstructure:"retry_max_delay" validate:"gtefield=RetryDelay"`
	MapPath       string        `mapstructure:"map_path" validate:"required"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
	Color  bool   `mapstructure:"color"`
}

// OutputConfig controls how command results are printed
type OutputConfig struct {
	Format string `mapstructure:"format" validate:"oneof=json yaml"`
}
