package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Unset all FAIRLOAD_ env vars to test pure defaults
	envVars := []string{
		"FAIRLOAD_PORT", "FAIRLOAD_METRICS_PORT", "FAIRLOAD_ADMIN_TOKEN",
		"FAIRLOAD_DATABASE_URL", "FAIRLOAD_EVENTS_URL",
		"FAIRLOAD_EVOLUTION_ENABLED", "FAIRLOAD_EVOLUTION_INTERVAL_MS",
		"FAIRLOAD_RATE_LIMIT_PER_MINUTE", "FAIRLOAD_LOG_LEVEL",
	}
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8700 {
		t.Errorf("expected port 8700, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.AdminToken != "" {
		t.Errorf("expected empty admin token, got '%s'", cfg.Server.AdminToken)
	}
	if cfg.Events.URL != "nats://localhost:4222" {
		t.Errorf("expected nats URL, got %s", cfg.Events.URL)
	}
	if !cfg.Evolution.Enabled {
		t.Error("expected evolution enabled by default")
	}
	if cfg.Evolution.BatchSize != 100 {
		t.Errorf("expected batch size 100, got %d", cfg.Evolution.BatchSize)
	}
	if cfg.Evolution.MinSampleSize != 3 {
		t.Errorf("expected min sample size 3, got %d", cfg.Evolution.MinSampleSize)
	}
	if cfg.API.RateLimitPerMinute != 120 {
		t.Errorf("expected rate limit 120, got %d", cfg.API.RateLimitPerMinute)
	}
	if cfg.API.BatchWorkers != 8 {
		t.Errorf("expected batch workers 8, got %d", cfg.API.BatchWorkers)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got '%s'", cfg.Logging.Format)
	}
	if cfg.EvolutionInterval() != time.Hour {
		t.Errorf("expected evolution interval 1h, got %v", cfg.EvolutionInterval())
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FAIRLOAD_PORT", "9000")
	t.Setenv("FAIRLOAD_METRICS_PORT", "9001")
	t.Setenv("FAIRLOAD_ADMIN_TOKEN", "secret-token")
	t.Setenv("FAIRLOAD_DATABASE_URL", "postgres://localhost/fairload_test")
	t.Setenv("FAIRLOAD_EVENTS_URL", "nats://nats:4222")
	t.Setenv("FAIRLOAD_EVOLUTION_ENABLED", "false")
	t.Setenv("FAIRLOAD_EVOLUTION_INTERVAL_MS", "60000")
	t.Setenv("FAIRLOAD_RATE_LIMIT_PER_MINUTE", "30")
	t.Setenv("FAIRLOAD_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 9001 {
		t.Errorf("expected metrics port 9001, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.AdminToken != "secret-token" {
		t.Errorf("expected admin token 'secret-token', got '%s'", cfg.Server.AdminToken)
	}
	if cfg.Database.URL != "postgres://localhost/fairload_test" {
		t.Errorf("expected database URL, got '%s'", cfg.Database.URL)
	}
	if cfg.Events.URL != "nats://nats:4222" {
		t.Errorf("expected events URL, got '%s'", cfg.Events.URL)
	}
	if cfg.Evolution.Enabled {
		t.Error("expected evolution disabled")
	}
	if cfg.EvolutionInterval() != time.Minute {
		t.Errorf("expected evolution interval 1m, got %v", cfg.EvolutionInterval())
	}
	if cfg.API.RateLimitPerMinute != 30 {
		t.Errorf("expected rate limit 30, got %d", cfg.API.RateLimitPerMinute)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got '%s'", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	envVars := []string{
		"FAIRLOAD_PORT", "FAIRLOAD_ADMIN_TOKEN", "FAIRLOAD_EVOLUTION_ENABLED",
	}
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `server:
  port: 8800
  admin_token: file-token
evolution:
  enabled: false
  interval_ms: 120000
logging:
  level: warn
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8800 {
		t.Errorf("expected port 8800, got %d", cfg.Server.Port)
	}
	if cfg.Server.AdminToken != "file-token" {
		t.Errorf("expected admin token 'file-token', got '%s'", cfg.Server.AdminToken)
	}
	if cfg.Evolution.Enabled {
		t.Error("expected evolution disabled from file")
	}
	if cfg.EvolutionInterval() != 2*time.Minute {
		t.Errorf("expected evolution interval 2m, got %v", cfg.EvolutionInterval())
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level 'warn', got '%s'", cfg.Logging.Level)
	}
	// file does not override untouched defaults
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port default 8701, got %d", cfg.Server.MetricsPort)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
