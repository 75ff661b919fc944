// Package config loads the YAML configuration shared by the mdpdf CLI and
// upload service.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/inkwell-labs/mdpdf/internal/fileutil"
	"github.com/inkwell-labs/mdpdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength  = 4096
	MaxStyleLength = 100
	MaxAddrLength  = 255
)

// DefaultMaxUploadBytes caps uploaded Markdown files at 10 MiB.
const DefaultMaxUploadBytes int64 = 10 << 20

// Defaults applied by DefaultConfig.
const (
	DefaultAddr      = ":8080"
	DefaultUploadDir = "uploads"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config holds all configuration for conversion and serving.
type Config struct {
	CSS     CSSConfig    `yaml:"css"`
	Assets  AssetsConfig `yaml:"assets"`
	Timeout string       `yaml:"timeout"` // Go duration, e.g. "30s" (empty = library default)
	Workers int          `yaml:"workers"` // 0 = auto
	Server  ServerConfig `yaml:"server"`
	Log     LogConfig    `yaml:"log"`
}

// CSSConfig selects the stylesheet used when a request names none.
// Stylesheet wins over Style when both are set.
type CSSConfig struct {
	Stylesheet string `yaml:"stylesheet"` // path to a .css file
	Style      string `yaml:"style"`      // built-in style name
}

// AssetsConfig defines where custom named styles live.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded styles only
}

// ServerConfig configures the upload service.
type ServerConfig struct {
	Addr           string `yaml:"addr"`
	UploadDir      string `yaml:"uploadDir"`
	MaxUploadBytes int64  `yaml:"maxUploadBytes"`
	Sanitize       bool   `yaml:"sanitize"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           DefaultAddr,
			UploadDir:      DefaultUploadDir,
			MaxUploadBytes: DefaultMaxUploadBytes,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Validate checks field lengths and value domains.
// Called automatically by LoadConfig.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"css.stylesheet", c.CSS.Stylesheet, MaxPathLength},
		{"css.style", c.CSS.Style, MaxStyleLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"server.addr", c.Server.Addr, MaxAddrLength},
		{"server.uploadDir", c.Server.UploadDir, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.CSS.Stylesheet != "" && !fileutil.HasExtension(c.CSS.Stylesheet, ".css") {
		return fmt.Errorf("%w: css.stylesheet must end in .css: %q", ErrInvalidValue, c.CSS.Stylesheet)
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidValue, c.Workers)
	}
	if c.Server.MaxUploadBytes < 0 {
		return fmt.Errorf("%w: server.maxUploadBytes must be >= 0, got %d", ErrInvalidValue, c.Server.MaxUploadBytes)
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log.format must be text or json, got %q", ErrInvalidValue, c.Log.Format)
	}
	return nil
}

// TimeoutDuration parses Timeout. An empty value yields zero.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: timeout must be a positive duration, got %q", ErrInvalidValue, c.Timeout)
	}
	return d, nil
}

// UploadLimit returns MaxUploadBytes, or the default when unset.
func (c *Config) UploadLimit() int64 {
	if c.Server.MaxUploadBytes <= 0 {
		return DefaultMaxUploadBytes
	}
	return c.Server.MaxUploadBytes
}

// ParseLogLevel maps a level name to a slog.Level. Empty means info.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: unknown log level %q", ErrInvalidValue, s)
	}
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is a file path; anything else is a
// name searched in standard locations. Missing files are an error: there is
// no silent fallback. Fields absent from the file keep DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !strings.ContainsAny(nameOrPath, "/\\") {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	cfg := DefaultConfig()
	if err := yamlutil.DecodeStrict(f, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths lists where a config name is looked up, in order:
// the current directory, then the user config directory, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, "mdpdf", name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
