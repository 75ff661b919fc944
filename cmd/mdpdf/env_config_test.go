package main

// Notes:
// - Tests use t.Setenv() which prevents t.Parallel().
// - Invalid timeout and worker values are ignored rather than reported;
//   the tests pin that behavior.

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/inkwell-labs/mdpdf/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("MDPDF_CONFIG", "team")
	t.Setenv("MDPDF_CSS", "/styles/site.css")
	t.Setenv("MDPDF_STYLE", "plain")
	t.Setenv("MDPDF_TIMEOUT", "2m")
	t.Setenv("MDPDF_WORKERS", "4")
	t.Setenv("MDPDF_ADDR", ":9090")
	t.Setenv("MDPDF_UPLOAD_DIR", "/srv/uploads")
	t.Setenv("MDPDF_LOG_LEVEL", "debug")

	got := loadEnvConfig()
	want := &envConfig{
		ConfigPath: "team",
		CSS:        "/styles/site.css",
		Style:      "plain",
		Timeout:    2 * time.Minute,
		Workers:    4,
		Addr:       ":9090",
		UploadDir:  "/srv/uploads",
		LogLevel:   "debug",
	}
	if *got != *want {
		t.Errorf("loadEnvConfig() = %+v, want %+v", got, want)
	}
}

func TestLoadEnvConfig_InvalidValuesIgnored(t *testing.T) {
	tests := []struct {
		name    string
		timeout string
		workers string
	}{
		{name: "garbage", timeout: "soon", workers: "many"},
		{name: "negative", timeout: "-5s", workers: "-2"},
		{name: "zero", timeout: "0s", workers: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MDPDF_TIMEOUT", tt.timeout)
			t.Setenv("MDPDF_WORKERS", tt.workers)

			got := loadEnvConfig()
			if got.Timeout != 0 {
				t.Errorf("Timeout = %v, want 0", got.Timeout)
			}
			if got.Workers != 0 {
				t.Errorf("Workers = %d, want 0", got.Workers)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("MDPDF_STYEL", "plain")
	t.Setenv("MDPDF_ADRR", ":1")
	t.Setenv("MDPDF_STYLE", "plain")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)
	out := buf.String()

	want := "warning: unknown environment variable MDPDF_ADRR (typo?)\n" +
		"warning: unknown environment variable MDPDF_STYEL (typo?)\n"
	if out != want {
		t.Errorf("warnings = %q, want %q", out, want)
	}
	if strings.Contains(out, "MDPDF_STYLE ") {
		t.Error("known variable reported as unknown")
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Env overrides file values
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("set values override", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.CSS.Style = "from-file"
		cfg.Workers = 1

		applyEnvConfig(&envConfig{
			CSS:       "env.css",
			Style:     "plain",
			Timeout:   90 * time.Second,
			Workers:   6,
			Addr:      ":7000",
			UploadDir: "up",
			LogLevel:  "warn",
		}, cfg)

		if cfg.CSS.Stylesheet != "env.css" || cfg.CSS.Style != "plain" {
			t.Errorf("CSS = %+v", cfg.CSS)
		}
		if cfg.Timeout != "1m30s" {
			t.Errorf("Timeout = %q, want 1m30s", cfg.Timeout)
		}
		if cfg.Workers != 6 {
			t.Errorf("Workers = %d, want 6", cfg.Workers)
		}
		if cfg.Server.Addr != ":7000" || cfg.Server.UploadDir != "up" {
			t.Errorf("Server = %+v", cfg.Server)
		}
		if cfg.Log.Level != "warn" {
			t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
		}
	})

	t.Run("empty values keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.CSS.Style = "from-file"
		want := *cfg

		applyEnvConfig(&envConfig{}, cfg)

		if *cfg != want {
			t.Errorf("config changed: %+v, want %+v", cfg, want)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveConfig - File lookup
// ---------------------------------------------------------------------------

func TestResolveConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mdpdf.yaml")
	if err := os.WriteFile(path, []byte("css:\n  style: plain\nworkers: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Run("flag path", func(t *testing.T) {
		cfg, err := resolveConfig(path, &envConfig{})
		if err != nil {
			t.Fatalf("resolveConfig() unexpected error: %v", err)
		}
		if cfg.CSS.Style != "plain" || cfg.Workers != 3 {
			t.Errorf("cfg = %+v", cfg)
		}
	})

	t.Run("env path when no flag", func(t *testing.T) {
		cfg, err := resolveConfig("", &envConfig{ConfigPath: path, Workers: 5})
		if err != nil {
			t.Fatalf("resolveConfig() unexpected error: %v", err)
		}
		if cfg.CSS.Style != "plain" {
			t.Errorf("Style = %q, want plain", cfg.CSS.Style)
		}
		if cfg.Workers != 5 {
			t.Errorf("Workers = %d, want env value 5", cfg.Workers)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := resolveConfig("", &envConfig{})
		if err != nil {
			t.Fatalf("resolveConfig() unexpected error: %v", err)
		}
		if cfg.Server.Addr != config.DefaultAddr {
			t.Errorf("Addr = %q, want %q", cfg.Server.Addr, config.DefaultAddr)
		}
	})
}
