package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/inkwell-labs/mdpdf/internal/config"
)

// envConfig holds configuration from MDPDF_* environment variables.
type envConfig struct {
	ConfigPath string        // MDPDF_CONFIG: config file name or path
	CSS        string        // MDPDF_CSS: default stylesheet path
	Style      string        // MDPDF_STYLE: style name
	Timeout    time.Duration // MDPDF_TIMEOUT: PDF generation timeout
	Workers    int           // MDPDF_WORKERS: parallel workers
	Addr       string        // MDPDF_ADDR: serve listen address
	UploadDir  string        // MDPDF_UPLOAD_DIR: serve upload directory
	LogLevel   string        // MDPDF_LOG_LEVEL: serve log level
}

// knownEnvVars lists valid MDPDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDPDF_CONFIG":     true,
	"MDPDF_CSS":        true,
	"MDPDF_STYLE":      true,
	"MDPDF_TIMEOUT":    true,
	"MDPDF_WORKERS":    true,
	"MDPDF_ADDR":       true,
	"MDPDF_UPLOAD_DIR": true,
	"MDPDF_LOG_LEVEL":  true,
	"MDPDF_CONTAINER":  true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Unparseable timeout and worker values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MDPDF_CONFIG"),
		CSS:        os.Getenv("MDPDF_CSS"),
		Style:      os.Getenv("MDPDF_STYLE"),
		Addr:       os.Getenv("MDPDF_ADDR"),
		UploadDir:  os.Getenv("MDPDF_UPLOAD_DIR"),
		LogLevel:   os.Getenv("MDPDF_LOG_LEVEL"),
	}

	if timeout := os.Getenv("MDPDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if workers := os.Getenv("MDPDF_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars warns about unrecognized MDPDF_* variables, in name
// order.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, env := range os.Environ() {
		name, _, _ := strings.Cut(env, "=")
		if strings.HasPrefix(name, "MDPDF_") && !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig overlays set environment values on cfg. Flags are applied
// afterwards by each command, giving flag > env > file > default.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.CSS != "" {
		cfg.CSS.Stylesheet = env.CSS
	}
	if env.Style != "" {
		cfg.CSS.Style = env.Style
	}
	if env.Timeout > 0 {
		cfg.Timeout = env.Timeout.String()
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.UploadDir != "" {
		cfg.Server.UploadDir = env.UploadDir
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
}

// resolveConfig loads the config named by the flag, else MDPDF_CONFIG, else
// defaults, and overlays the environment.
func resolveConfig(flagConfig string, env *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		if cfg, err = config.LoadConfig(name); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}
