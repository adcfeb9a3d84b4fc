package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JaimeStill/ecopoint/internal/config"
)

const baseConfig = `
domain = "http://points.test"

[server]
port = 4000

[database]
name = "ecopoint"
user = "ecopoint"

[storage]
base_path = "uploads"
max_upload_size = "2MB"

[api.cors]
enabled = true
origins = ["http://localhost:3000"]
`

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func chdirConfig(t *testing.T, files map[string]string) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		writeConfig(t, dir, name, content)
	}
	t.Chdir(dir)
}

func TestLoad_Defaults(t *testing.T) {
	chdirConfig(t, map[string]string{config.BaseConfigFile: baseConfig})

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr() != "0.0.0.0:4000" {
		t.Errorf("Addr() = %q", cfg.Server.Addr())
	}
	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("ShutdownTimeoutDuration() = %v", cfg.ShutdownTimeoutDuration())
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("API.BasePath = %q", cfg.API.BasePath)
	}
	if cfg.Storage.MaxUploadSizeBytes() != 2_000_000 {
		t.Errorf("MaxUploadSizeBytes() = %d", cfg.Storage.MaxUploadSizeBytes())
	}
	if cfg.Geography.BaseURL == "" {
		t.Error("Geography.BaseURL default not applied")
	}
	if cfg.Env() != "local" {
		t.Errorf("Env() = %q, want local", cfg.Env())
	}
}

func TestLoad_Overlay(t *testing.T) {
	chdirConfig(t, map[string]string{
		config.BaseConfigFile: baseConfig,
		"config.test.toml": `
[server]
port = 5000

[logging]
format = "json"

[api.cors]
enabled = true
`,
	})
	t.Setenv(config.EnvServiceEnv, "test")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q", cfg.Logging.Format)
	}
	if cfg.Domain != "http://points.test" {
		t.Errorf("Domain = %q, base value lost", cfg.Domain)
	}
	if len(cfg.API.CORS.Origins) != 1 {
		t.Errorf("CORS.Origins = %v, base value lost", cfg.API.CORS.Origins)
	}
}

func TestLoad_Env(t *testing.T) {
	chdirConfig(t, map[string]string{config.BaseConfigFile: baseConfig})
	t.Setenv(config.EnvServerPort, "6000")
	t.Setenv(config.EnvServiceDomain, "https://ecopoint.example")
	t.Setenv("API_BASE_PATH", "/v1")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 6000 {
		t.Errorf("Server.Port = %d, want 6000", cfg.Server.Port)
	}
	if cfg.Domain != "https://ecopoint.example" {
		t.Errorf("Domain = %q", cfg.Domain)
	}
	if cfg.API.BasePath != "/v1" {
		t.Errorf("API.BasePath = %q", cfg.API.BasePath)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{"invalid toml", "domain = "},
		{"invalid shutdown timeout", "shutdown_timeout = \"soon\"\n" + baseConfig},
		{"invalid base path", baseConfig + "\n[api]\nbase_path = \"/api/v1\"\n"},
		{"missing database name", "[database]\nuser = \"ecopoint\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirConfig(t, map[string]string{config.BaseConfigFile: tt.config})
			if _, err := config.Load(); err == nil {
				t.Error("Load() error = nil, want error")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := config.Load(); err == nil {
		t.Error("Load() error = nil, want error")
	}
}
