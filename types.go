package mdpdf

import (
	"log/slog"
	"time"

	"github.com/inkwell-labs/mdpdf/internal/pipeline"
)

// Request is a validated conversion request. Values are only produced by
// Validate, so SourcePath always names an existing .md or .markdown file and
// StylesheetPath is either empty or names an existing .css file.
type Request struct {
	SourcePath     string
	StylesheetPath string // empty = converter default stylesheet
}

// Result describes a PDF written by Convert.
type Result struct {
	OutputPath string
	Pages      int
	Bytes      int64
	Duration   time.Duration
}

// defaultTimeout bounds page load and PDF generation when the caller's
// context has no deadline.
const defaultTimeout = 30 * time.Second

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds options applied by NewConverter.
type converterConfig struct {
	timeout    time.Duration
	defaultCSS string
	style      string
	assetPath  string
}

// WithTimeout sets the page load and PDF generation timeout.
// NewConverter rejects non-positive values with ErrInvalidTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithDefaultCSS sets the stylesheet text used when a request names no
// stylesheet. It takes precedence over WithStyle.
func WithDefaultCSS(css string) Option {
	return func(c *Converter) {
		c.cfg.defaultCSS = css
	}
}

// WithStyle selects a named built-in style (e.g. "default", "plain") as the
// default stylesheet. Unknown names make NewConverter fail with
// ErrStyleNotFound.
func WithStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.style = name
	}
}

// WithAssetPath adds a directory searched for {path}/styles/{name}.css
// before the built-in styles.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithSanitizer filters every HTML fragment before it is composed.
func WithSanitizer(s pipeline.Sanitizer) Option {
	return func(c *Converter) {
		c.sanitizer = s
	}
}

// WithLogger sets the logger used for stage timings. A nil logger discards.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = l
	}
}
