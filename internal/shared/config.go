package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	env "github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API      APIConfig      `toml:"api"`
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
}

// APIConfig contains the remote backend settings.
type APIConfig struct {
	BaseURL           string  `toml:"base_url"`
	LookupURL         string  `toml:"lookup_url"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// Timeout returns the request timeout as a [time.Duration].
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// envOverrides lists the environment variables that take precedence over the config file.
type envOverrides struct {
	BaseURL   string `env:"COOK_API_URL"`
	LookupURL string `env:"COOK_LOOKUP_URL"`
	DBPath    string `env:"COOK_DB_PATH"`
	LogLevel  string `env:"COOK_LOG_LEVEL"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides config values with COOK_* environment variables.
//
// A .env file in the working directory is loaded first when present.
func ApplyEnv(config *Config) error {
	_ = godotenv.Load()

	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if overrides.BaseURL != "" {
		config.API.BaseURL = overrides.BaseURL
	}
	if overrides.LookupURL != "" {
		config.API.LookupURL = overrides.LookupURL
	}
	if overrides.DBPath != "" {
		config.Database.Path = overrides.DBPath
	}
	if overrides.LogLevel != "" {
		config.Log.Level = overrides.LogLevel
	}

	return config.Validate()
}

// Validate reports configuration values that would make every request fail.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url is required", ErrInvalidConfig)
	}
	if c.API.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: api.timeout_seconds must not be negative", ErrInvalidConfig)
	}
	if c.API.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: api.requests_per_second must not be negative", ErrInvalidConfig)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("%w: database.path is required", ErrInvalidConfig)
	}
	return nil
}
