package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tu "github.com/desertthunder/cook/internal/testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./cook.db" {
			t.Errorf("expected database path ./cook.db, got %s", config.Database.Path)
		}

		if config.API.BaseURL != "http://127.0.0.1:8080/api" {
			t.Errorf("expected api base URL http://127.0.0.1:8080/api, got %s", config.API.BaseURL)
		}

		if config.API.LookupURL != "https://www.themealdb.com/api/json/v1/1" {
			t.Errorf("unexpected lookup URL %s", config.API.LookupURL)
		}

		if config.API.Timeout() != 15*time.Second {
			t.Errorf("expected 15s timeout, got %v", config.API.Timeout())
		}

		if config.Log.Level != "info" {
			t.Errorf("expected log level info, got %s", config.Log.Level)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		tu.AssertFileExists(t, configPath)

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[api]
base_url = "https://recipes.example.com/v1"
requests_per_second = 0

[database]
path = "/custom/path.db"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.BaseURL != "https://recipes.example.com/v1" {
			t.Errorf("expected custom base URL, got %s", config.API.BaseURL)
		}
		if config.API.RequestsPerSecond != 0 {
			t.Errorf("expected limiter disabled, got %v", config.API.RequestsPerSecond)
		}
		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}
		if config.API.LookupURL == "" {
			t.Error("expected unset keys to keep their defaults")
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("LoadConfig Invalid TOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[api\nbase_url ="), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("COOK_API_URL", "http://env.example.com")
		t.Setenv("COOK_DB_PATH", "/tmp/env.db")
		t.Setenv("COOK_LOG_LEVEL", "debug")

		config := DefaultConfig()
		if err := ApplyEnv(config); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if config.API.BaseURL != "http://env.example.com" {
			t.Errorf("expected env base URL, got %s", config.API.BaseURL)
		}
		if config.Database.Path != "/tmp/env.db" {
			t.Errorf("expected env db path, got %s", config.Database.Path)
		}
		if config.Log.Level != "debug" {
			t.Errorf("expected env log level, got %s", config.Log.Level)
		}
		if config.API.LookupURL != DefaultConfig().API.LookupURL {
			t.Error("expected unset env vars to leave values alone")
		}
	})

	t.Run("Validate", func(t *testing.T) {
		config := DefaultConfig()
		config.API.BaseURL = ""
		if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}

		config = DefaultConfig()
		config.API.RequestsPerSecond = -1
		if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}

		config = DefaultConfig()
		config.Database.Path = ""
		if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}

		if err := DefaultConfig().Validate(); err != nil {
			t.Errorf("expected default config to be valid, got %v", err)
		}
	})
}
