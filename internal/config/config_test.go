package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, name := range apiKeyEnv {
		t.Setenv(name, "")
	}
	// Keep godotenv from picking up a developer's .env.
	t.Chdir(t.TempDir())
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	clearKeyEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIKey != "" {
		t.Fatalf("APIKey = %q, want empty", cfg.APIKey)
	}
	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
	if cfg.LogLevel != defaultLogLevel || cfg.Theme != defaultTheme {
		t.Fatalf("LogLevel/Theme = %q/%q, want defaults", cfg.LogLevel, cfg.Theme)
	}
	if cfg.RefreshInterval != 0 {
		t.Fatalf("RefreshInterval = %v, want 0 (disabled)", cfg.RefreshInterval)
	}
	if cfg.RequestTimeout != defaultRequestTimeout || cfg.RequestsPerSecond != defaultRPS || cfg.RequestBurst != defaultBurst {
		t.Fatalf("request settings = %v/%v/%d, want defaults", cfg.RequestTimeout, cfg.RequestsPerSecond, cfg.RequestBurst)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	clearKeyEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_key = "  abc123  "
api_base_url = "http://127.0.0.1:9999"
log_file = "  ~/logs/nimbus.log  "
log_level = "DEBUG"
theme = "Slate"
refresh_interval = 600
request_timeout = 3
requests_per_second = 0.5
request_burst = 2
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIKey != "abc123" {
		t.Fatalf("APIKey = %q, want abc123", cfg.APIKey)
	}
	if cfg.APIBaseURL != "http://127.0.0.1:9999" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.LogLevel != "debug" || cfg.Theme != "Slate" {
		t.Fatalf("LogLevel/Theme = %q/%q", cfg.LogLevel, cfg.Theme)
	}
	if cfg.RefreshInterval != 10*time.Minute || cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("durations = %v/%v", cfg.RefreshInterval, cfg.RequestTimeout)
	}
	if cfg.RequestsPerSecond != 0.5 || cfg.RequestBurst != 2 {
		t.Fatalf("rate = %v/%d", cfg.RequestsPerSecond, cfg.RequestBurst)
	}
}

func TestLoad_EnvOverridesAPIKey(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("OPENWEATHER_API_KEY", "from-env")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_key = "from-file"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIKey != "from-env" {
		t.Fatalf("APIKey = %q, want from-env", cfg.APIKey)
	}

	t.Setenv("NIMBUS_API_KEY", "nimbus-env")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIKey != "nimbus-env" {
		t.Fatalf("APIKey = %q, want nimbus-env", cfg.APIKey)
	}
}

func TestLoad_DotEnvSuppliesAPIKey(t *testing.T) {
	clearKeyEnv(t)
	// godotenv never overrides a variable that is already set, even to "".
	_ = os.Unsetenv("NIMBUS_API_KEY")
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("NIMBUS_API_KEY=dotenv-key\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIKey != "dotenv-key" {
		t.Fatalf("APIKey = %q, want dotenv-key", cfg.APIKey)
	}
}

func TestLoad_NegativeRefreshFails(t *testing.T) {
	clearKeyEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`refresh_interval = -5`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load returned nil error, want error")
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	clearKeyEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_key = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
