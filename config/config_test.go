package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "rotavan.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfigFile(t, "database:\n  path: /tmp/test.db\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 8080 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("read timeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("database path = %s", cfg.Database.Path)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if cfg.Reminders.UpcomingWindow != 7*24*time.Hour {
		t.Errorf("upcoming window = %v", cfg.Reminders.UpcomingWindow)
	}
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  host: 127.0.0.1
  port: 9090
  read_timeout: 5s
database:
  path: data/rotavan.db
logging:
  level: debug
  format: console
metrics:
  enabled: true
  path: /internal/metrics
reminders:
  upcoming_window: 48h
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9090 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Path != "/internal/metrics" {
		t.Errorf("metrics = %+v", cfg.Metrics)
	}
	if cfg.Reminders.UpcomingWindow != 48*time.Hour {
		t.Errorf("upcoming window = %v", cfg.Reminders.UpcomingWindow)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: 9090\n")

	t.Setenv("ROTAVAN_SERVER_PORT", "7070")
	t.Setenv("ROTAVAN_LOG_LEVEL", "warn")
	t.Setenv("ROTAVAN_DATABASE_PATH", "/var/lib/rotavan/db.sqlite")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, want env override 7070", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("level = %s, want warn", cfg.Logging.Level)
	}
	if cfg.Database.Path != "/var/lib/rotavan/db.sqlite" {
		t.Errorf("database path = %s", cfg.Database.Path)
	}
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad port", "server:\n  port: 99999\n"},
		{"bad level", "logging:\n  level: verbose\n"},
		{"bad format", "logging:\n  format: xml\n"},
		{"bad metrics path", "metrics:\n  path: metrics\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfigFile(t, tc.content)
			if _, err := Load(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadWithFallback_MissingFile(t *testing.T) {
	cfg, err := LoadWithFallback(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("fallback: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Database.Path != "rotavan.db" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestHolder_Reload(t *testing.T) {
	path := writeConfigFile(t, "logging:\n  level: info\n")

	h, err := NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("new holder: %v", err)
	}
	defer h.Stop()

	var observed string
	h.OnChange(func(cfg *Config) {
		observed = cfg.Logging.Level
	})

	if err := os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
	if err := h.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}

	if h.Get().Logging.Level != "debug" {
		t.Errorf("level after reload = %s", h.Get().Logging.Level)
	}
	if observed != "debug" {
		t.Errorf("onChange saw %q, want debug", observed)
	}
}

func TestHolder_ReloadKeepsOldConfigOnError(t *testing.T) {
	path := writeConfigFile(t, "logging:\n  level: info\n")

	h, err := NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("new holder: %v", err)
	}
	defer h.Stop()

	if err := os.WriteFile(path, []byte("logging:\n  level: verbose\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
	if err := h.Reload(); err == nil {
		t.Fatal("expected reload error for invalid level")
	}

	if h.Get().Logging.Level != "info" {
		t.Errorf("level = %s, want old config kept", h.Get().Logging.Level)
	}
}
