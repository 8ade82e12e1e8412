package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("Driver = %s, want sqlite", cfg.Database.Driver)
	}
	if cfg.Auth.TokenTTL.Duration != 24*time.Hour {
		t.Errorf("TokenTTL = %s, want 24h", cfg.Auth.TokenTTL)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("defaults without a JWT secret should not validate")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
port = 9090

[database]
driver = "postgres"
url = "postgres://localhost/eventbudget"

[auth]
jwt_secret = "from-file"
token_ttl = "2h"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg := DefaultConfig()
	if err := LoadFile(path, &cfg); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Server.Port != 9090 || cfg.Database.Driver != DriverPostgres {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Auth.TokenTTL.Duration != 2*time.Hour {
		t.Errorf("TokenTTL = %s, want 2h", cfg.Auth.TokenTTL)
	}
	// Untouched sections keep their defaults.
	if cfg.Log.Level != "info" || cfg.Server.AllowedOrigin != "*" {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}

	missing := DefaultConfig()
	if err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"), &missing); err != nil {
		t.Errorf("missing file should be ignored, got %v", err)
	}
}

func TestLoadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server\nport ="), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	cfg := DefaultConfig()
	err := LoadFile(path, &cfg)
	if err == nil || !strings.Contains(err.Error(), "parsing config") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	err := applyEnv(&cfg, envMap(map[string]string{
		"PORT":       "3000",
		"DB_DRIVER":  "SQLITE",
		"DB_PATH":    "/tmp/x.db",
		"JWT_SECRET": "secret",
		"TOKEN_TTL":  "30m",
		"LOG_LEVEL":  "debug",
	}))
	if err != nil {
		t.Fatalf("applyEnv failed: %v", err)
	}
	if cfg.Server.Port != 3000 || cfg.Database.Path != "/tmp/x.db" || cfg.Database.Driver != DriverSQLite {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Auth.TokenTTL.Duration != 30*time.Minute || cfg.Log.Level != "debug" {
		t.Errorf("unexpected auth/log config: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}

	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad port", map[string]string{"PORT": "http"}},
		{"bad ttl", map[string]string{"TOKEN_TTL": "forever"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if err := applyEnv(&cfg, envMap(tt.env)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := DefaultConfig()
	valid.Auth.JWTSecret = "secret"

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }},
		{"postgres without url", func(c *Config) { c.Database.Driver = DriverPostgres }},
		{"sqlite without path", func(c *Config) { c.Database.Path = "" }},
		{"zero ttl", func(c *Config) { c.Auth.TokenTTL = Duration{} }},
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
