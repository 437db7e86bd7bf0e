package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/blang/semver"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/s0up4200/olhovivo/olhovivo"
)

const placeholderToken = "your-token-here"

// Load loads the configuration from file and environment.
// A missing config file is fine when no explicit path is given.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)
	bindEnv(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".olhovivo"))
		}

		v.AddConfigPath("/etc/olhovivo/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.url", "http://api.olhovivo.sptrans.com.br/")
	v.SetDefault("api.version", "v2.1")

	// Client defaults
	v.SetDefault("client.timeout", olhovivo.DefaultTimeout)
	v.SetDefault("client.max_attempts", olhovivo.DefaultMaxAttempts)
	v.SetDefault("client.retry_delay", olhovivo.DefaultRetryDelay)
	v.SetDefault("client.retry_max_delay", olhovivo.DefaultRetryMaxDelay)
	v.SetDefault("client.map_path", olhovivo.DefaultMapPath)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	v.SetDefault("output.format", "json")
}

// bindEnv maps the SP_TRANS_* variables onto the api keys and exposes every
// other key as OLHOVIVO_<SECTION>_<KEY>
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("olhovivo")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("api.url", "SP_TRANS_API_ENDPOINT", "OLHOVIVO_API_URL")
	_ = v.BindEnv("api.token", "SP_TRANS_API_KEY", "OLHOVIVO_API_TOKEN")
	_ = v.BindEnv("api.version", "SP_TRANS_API_VERSION", "OLHOVIVO_API_VERSION")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("mapstructure")
	})

	if err := v.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fieldError(fieldErrs[0])
		}
		return err
	}

	if cfg.API.Token == placeholderToken {
		return fmt.Errorf("api.token must be set to a valid API token")
	}

	if _, err := semver.ParseTolerant(strings.Trim(cfg.API.Version, "/ ")); err != nil {
		return fmt.Errorf("invalid api.version %q: %w", cfg.API.Version, err)
	}

	return nil
}

// fieldError renders a validator failure using the config key, e.g. "api.token is required"
func fieldError(fe validator.FieldError) error {
	key := fe.Namespace()
	if i := strings.Index(key, "."); i >= 0 {
		key = key[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", key)
	case "url":
		return fmt.Errorf("%s must be a valid URL: %v", key, fe.Value())
	case "oneof":
		return fmt.Errorf("invalid %s: %v (must be one of: %s)", key, fe.Value(), fe.Param())
	default:
		return fmt.Errorf("invalid %s: %v (%s %s)", key, fe.Value(), fe.Tag(), fe.Param())
	}
}

// Session returns the connection details for olhovivo.NewClient
func (c *Config) Session() olhovivo.Config {
	return olhovivo.Config{
		BaseURL:    c.API.URL,
		APIVersion: c.API.Version,
		Token:      c.API.Token,
	}
}

// ClientOptions returns the client tuning as olhovivo options
func (c *Config) ClientOptions() []olhovivo.Option {
	return []olhovivo.Option{
		olhovivo.WithTimeout(c.Client.Timeout),
		olhovivo.WithMaxAttempts(c.Client.MaxAttempts),
		olhovivo.WithRetryDelay(c.Client.RetryDelay, c.Client.RetryMaxDelay),
		olhovivo.WithMapPath(c.Client.MapPath),
	}
}
