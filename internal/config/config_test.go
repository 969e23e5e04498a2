package config

import (
	"os"
	"path/filepath"
	"testing"

	"options-payoff/internal/errors"
)

func clearEnvOverrides(t *testing.T) {
	t.Helper()
	t.Setenv("PAYOFF_DB_PATH", "")
	t.Setenv("PAYOFF_LOG_LEVEL", "")
	t.Setenv("PAYOFF_SERVER_ADDR", "")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"empty log level ok", func(c *Config) { c.Logging.Level = "" }, false},
		{"zero step", func(c *Config) { c.Engine.Step = 0 }, true},
		{"negative step", func(c *Config) { c.Engine.Step = -0.5 }, true},
		{"negative padding", func(c *Config) { c.Engine.RangePaddingPercent = -1 }, true},
		{"narrow chart", func(c *Config) { c.Chart.Width = 10 }, true},
		{"short chart", func(c *Config) { c.Chart.Height = 2 }, true},
		{"history without path", func(c *Config) { c.History.Enabled = true; c.History.DBPath = "" }, true},
		{"port too low", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"unknown log level", func(c *Config) { c.Logging.Level = "trace" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Validate returned unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate should have returned an error")
			}
			if !errors.Is(err, errors.ErrConfigInvalid) {
				t.Errorf("error should wrap ErrConfigInvalid, got %v", err)
			}
		})
	}
}

func TestLoadFirstRunWritesTemplate(t *testing.T) {
	clearEnvOverrides(t)
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load on empty directory returned error: %v", err)
	}
	if cfg.Engine.Step != 1.0 {
		t.Errorf("first run step = %v, want default 1.0", cfg.Engine.Step)
	}

	templatePath := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(templatePath); err != nil {
		t.Fatalf("first run should write %s: %v", templatePath, err)
	}

	// The written template must itself load cleanly.
	again, err := Load(dir)
	if err != nil {
		t.Fatalf("Load of written template returned error: %v", err)
	}
	if again.Chart.Width != cfg.Chart.Width || again.Server.Port != cfg.Server.Port {
		t.Errorf("template load differs from defaults: %+v vs %+v", again, cfg)
	}
	if !filepath.IsAbs(again.History.DBPath) {
		t.Errorf("db_path should be expanded to an absolute path, got %q", again.History.DBPath)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	clearEnvOverrides(t)
	dir := t.TempDir()

	contents := `
[engine]
step = 2.5

[chart]
width = 100
height = 20

[server]
host = "0.0.0.0"
port = 9999
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(contents), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Engine.Step != 2.5 {
		t.Errorf("step = %v, want 2.5", cfg.Engine.Step)
	}
	if cfg.Chart.Width != 100 || cfg.Chart.Height != 20 {
		t.Errorf("chart = %dx%d, want 100x20", cfg.Chart.Width, cfg.Chart.Height)
	}
	if got := cfg.Server.Addr(); got != "0.0.0.0:9999" {
		t.Errorf("server addr = %q, want %q", got, "0.0.0.0:9999")
	}

	// Sections absent from the file keep their defaults.
	if cfg.Engine.RangePaddingPercent != 20.0 {
		t.Errorf("padding = %v, want default 20.0", cfg.Engine.RangePaddingPercent)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("log level = %q, want default info", cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	clearEnvOverrides(t)
	dir := t.TempDir()

	contents := `
[engine]
step = -1.0
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(contents), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	_, err := Load(dir)
	if err == nil {
		t.Fatal("Load should reject a negative step")
	}
	if !errors.Is(err, errors.ErrConfigInvalid) {
		t.Errorf("error should wrap ErrConfigInvalid, got %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PAYOFF_DB_PATH", "/tmp/override.db")
	t.Setenv("PAYOFF_LOG_LEVEL", "debug")
	t.Setenv("PAYOFF_SERVER_ADDR", "0.0.0.0:9090")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.History.DBPath != "/tmp/override.db" {
		t.Errorf("db path = %q, want env override", cfg.History.DBPath)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}
	if got := cfg.Server.Addr(); got != "0.0.0.0:9090" {
		t.Errorf("server addr = %q, want 0.0.0.0:9090", got)
	}
}

func TestEnvOverrideIgnoresBadAddr(t *testing.T) {
	clearEnvOverrides(t)
	t.Setenv("PAYOFF_SERVER_ADDR", "not-an-address")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := cfg.Server.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("server addr = %q, want default 127.0.0.1:8080", got)
	}
}

func TestServerConfigAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"127.0.0.1", 8080, "127.0.0.1:8080"},
		{"", 8080, ":8080"},
		{"::1", 9000, "[::1]:9000"},
	}

	for _, tt := range tests {
		s := ServerConfig{Host: tt.host, Port: tt.port}
		if got := s.Addr(); got != tt.want {
			t.Errorf("Addr(%q, %d) = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}
