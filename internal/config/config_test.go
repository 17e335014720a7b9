package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/clauseguard/clauseguard/internal/config"
)

const baseConfig = `
shutdown_timeout = "30s"
version = "1.2.3"

[server]
host = "0.0.0.0"
port = 8080

[database]
name = "clauseguard"
user = "clauseguard"

[storage]
container_name = "contracts"
connection_string = "conn"

[api]
base_path = "/api"
max_upload_size = "10MB"

[api.pagination]
default_page_size = 25
max_page_size = 50

[analyzer]
api_key = "test-key"
model = "gpt-4o"

[jobs]
workers = 2
queue_size = 16
hard_timeout = "10m"
soft_timeout = "2m"
`

const overlayConfig = `
[server]
port = 9090

[analyzer]
model = "gpt-4o-mini"
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Version != "1.2.3" {
		t.Errorf("version = %q, want 1.2.3", cfg.Version)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.API.Pagination.DefaultPageSize != 25 {
		t.Errorf("default page size = %d, want 25", cfg.API.Pagination.DefaultPageSize)
	}
	if cfg.Analyzer.Model != "gpt-4o" {
		t.Errorf("analyzer model = %q, want gpt-4o", cfg.Analyzer.Model)
	}
	if cfg.Jobs.Workers != 2 {
		t.Errorf("workers = %d, want 2", cfg.Jobs.Workers)
	}
	if cfg.Jobs.HardTimeoutDuration() != 10*time.Minute {
		t.Errorf("hard timeout = %v, want 10m", cfg.Jobs.HardTimeoutDuration())
	}
	if cfg.API.MaxUploadSizeBytes() != 10*1024*1024 {
		t.Errorf("max upload = %d, want 10MB", cfg.API.MaxUploadSizeBytes())
	}
}

func TestLoadWithOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	chdir(t, dir)
	t.Setenv("CLAUSEGUARD_ENV", "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port = %d, want overlay 9090", cfg.Server.Port)
	}
	if cfg.Analyzer.Model != "gpt-4o-mini" {
		t.Errorf("analyzer model = %q, want overlay gpt-4o-mini", cfg.Analyzer.Model)
	}
	// Untouched fields keep base values.
	if cfg.Jobs.QueueSize != 16 {
		t.Errorf("queue size = %d, want base 16", cfg.Jobs.QueueSize)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)
	t.Setenv("CLAUSEGUARD_SERVER_PORT", "7070")
	t.Setenv("CLAUSEGUARD_ANALYZER_API_KEY", "env-key")
	t.Setenv("CLAUSEGUARD_JOBS_WORKERS", "8")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("server port = %d, want env 7070", cfg.Server.Port)
	}
	if cfg.Analyzer.APIKey != "env-key" {
		t.Errorf("api key = %q, want env-key", cfg.Analyzer.APIKey)
	}
	if cfg.Jobs.Workers != 8 {
		t.Errorf("workers = %d, want env 8", cfg.Jobs.Workers)
	}
}

func TestAnalyzerConfigFinalize(t *testing.T) {
	t.Run("requires api key", func(t *testing.T) {
		cfg := config.AnalyzerConfig{}
		if err := cfg.Finalize(); err == nil {
			t.Error("expected error for missing api key")
		}
	})

	t.Run("defaults model", func(t *testing.T) {
		cfg := config.AnalyzerConfig{APIKey: "k"}
		if err := cfg.Finalize(); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if cfg.Model != "gpt-4o-mini" {
			t.Errorf("model = %q, want default gpt-4o-mini", cfg.Model)
		}
	})
}

func TestJobsConfigFinalize(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		cfg := config.JobsConfig{}
		if err := cfg.Finalize(); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if cfg.Workers != 4 || cfg.QueueSize != 64 || cfg.MaxJobs != 1000 {
			t.Errorf("defaults = %+v", cfg)
		}
		if cfg.HardTimeout != "30m" || cfg.SoftTimeout != "5m" {
			t.Errorf("timeouts = %s/%s, want 30m/5m", cfg.HardTimeout, cfg.SoftTimeout)
		}
	})

	t.Run("rejects soft at or above hard", func(t *testing.T) {
		cfg := config.JobsConfig{HardTimeout: "5m", SoftTimeout: "5m"}
		if err := cfg.Finalize(); err == nil {
			t.Error("expected error for soft_timeout >= hard_timeout")
		}
	})

	t.Run("rejects invalid duration", func(t *testing.T) {
		cfg := config.JobsConfig{HardTimeout: "soon"}
		if err := cfg.Finalize(); err == nil {
			t.Error("expected error for invalid hard_timeout")
		}
	})
}
