package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings nimbus reads at startup.
type Config struct {
	APIKey            string
	APIBaseURL        string
	GeoBaseURL        string
	LogFile           string
	LogLevel          string
	Theme             string
	RefreshInterval   time.Duration
	RequestTimeout    time.Duration
	RequestsPerSecond float64
	RequestBurst      int
}

const (
	defaultConfigPath     = "~/.config/nimbus/config.toml"
	defaultLogFile        = "~/.local/state/nimbus/nimbus.log"
	defaultLogLevel       = "info"
	defaultTheme          = "Nightfox"
	defaultRequestTimeout = 10 * time.Second
	defaultRPS            = 1.0
	defaultBurst          = 5
)

// Environment variables that override api_key, in priority order.
var apiKeyEnv = []string{"NIMBUS_API_KEY", "OPENWEATHER_API_KEY"}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LogFile:           mustExpand(defaultLogFile),
		LogLevel:          defaultLogLevel,
		Theme:             defaultTheme,
		RequestTimeout:    defaultRequestTimeout,
		RequestsPerSecond: defaultRPS,
		RequestBurst:      defaultBurst,
	}
}

// Load locates and parses the nimbus config, falling back to defaults when missing.
// A .env file in the working directory is loaded first so its API key can
// override the file value.
func Load(path string) (Config, error) {
	_ = godotenv.Load() // .env is optional

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIKey            string  `toml:"api_key"`
		APIBaseURL        string  `toml:"api_base_url"`
		GeoBaseURL        string  `toml:"geo_base_url"`
		LogFile           string  `toml:"log_file"`
		LogLevel          string  `toml:"log_level"`
		Theme             string  `toml:"theme"`
		RefreshInterval   int     `toml:"refresh_interval"`
		RequestTimeout    int     `toml:"request_timeout"`
		RequestsPerSecond float64 `toml:"requests_per_second"`
		RequestBurst      int     `toml:"request_burst"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIKey = strings.TrimSpace(raw.APIKey)
	cfg.APIBaseURL = strings.TrimSpace(raw.APIBaseURL)
	cfg.GeoBaseURL = strings.TrimSpace(raw.GeoBaseURL)

	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}
	if theme := strings.TrimSpace(raw.Theme); theme != "" {
		cfg.Theme = theme
	}
	if raw.RefreshInterval < 0 {
		return Config{}, fmt.Errorf("parse config: refresh_interval must not be negative")
	}
	cfg.RefreshInterval = time.Duration(raw.RefreshInterval) * time.Second
	if raw.RequestTimeout > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeout) * time.Second
	}
	if raw.RequestsPerSecond > 0 {
		cfg.RequestsPerSecond = raw.RequestsPerSecond
	}
	if raw.RequestBurst > 0 {
		cfg.RequestBurst = raw.RequestBurst
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	for _, name := range apiKeyEnv {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			cfg.APIKey = v
			return
		}
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
