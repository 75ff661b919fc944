package mdpdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/inkwell-labs/mdpdf/internal/assets"
	"github.com/inkwell-labs/mdpdf/internal/pipeline"
)

// Converter runs the Markdown to PDF pipeline. It owns one headless browser,
// started on first use, so it is not safe for concurrent use; use a
// ConverterPool to convert in parallel. Call Close when done.
type Converter struct {
	cfg           converterConfig
	logger        *slog.Logger
	styles        assets.StyleLoader
	defaultCSS    string
	htmlConverter pipeline.HTMLConverter
	sanitizer     pipeline.Sanitizer
	pdfConverter  pdfConverter
	inspector     pdfInspector
}

// NewConverter creates a Converter. The browser is not started until the
// first conversion.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:           converterConfig{timeout: defaultTimeout},
		htmlConverter: pipeline.NewGoldmarkConverter(),
		inspector:     pdfcpuInspector{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.timeout <= 0 {
		return nil, fmt.Errorf("%w: %v (must be positive)", ErrInvalidTimeout, c.cfg.timeout)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	c.styles = resolver

	if err := c.resolveDefaultCSS(); err != nil {
		return nil, err
	}

	// Tests inject a fake before this point.
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// resolveDefaultCSS picks the stylesheet used when a request has none:
// explicit CSS, then a named style, then the built-in default.
func (c *Converter) resolveDefaultCSS() error {
	if c.cfg.defaultCSS != "" {
		c.defaultCSS = c.cfg.defaultCSS
		return nil
	}

	name := c.cfg.style
	if name == "" {
		name = assets.DefaultStyleName
	}
	css, err := c.styles.LoadStyle(name)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) || errors.Is(err, assets.ErrInvalidAssetName) {
			return fmt.Errorf("%w: %q", ErrStyleNotFound, name)
		}
		return fmt.Errorf("%w: loading style %q: %v", ErrUnexpected, name, err)
	}
	c.defaultCSS = css
	return nil
}

// Convert validates the request, renders sourcePath to PDF and writes it to
// OutputPath(sourcePath), overwriting any existing file. An empty
// stylesheetPath selects the converter's default stylesheet.
//
// Failures abort the conversion without retry; no partial PDF is left
// behind. Internal panics are recovered and reported as ErrUnexpected.
func (c *Converter) Convert(ctx context.Context, sourcePath, stylesheetPath string) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: internal error: %v", ErrUnexpected, r)
		}
	}()

	start := time.Now()

	req, err := Validate(sourcePath, stylesheetPath)
	if err != nil {
		return nil, err
	}

	css, err := c.stylesheet(req)
	if err != nil {
		return nil, err
	}

	stageStart := time.Now()
	fragment, err := c.RenderMarkdown(ctx, req.SourcePath)
	if err != nil {
		return nil, err
	}
	c.logStage(ctx, "markdown", stageStart, slog.Int("html_bytes", len(fragment)))

	if c.sanitizer != nil {
		fragment = c.sanitizer.Sanitize(fragment)
	}
	doc := pipeline.Compose(fragment, css)

	stageStart = time.Now()
	data, err := c.pdfConverter.ToPDF(ctx, doc)
	if err != nil {
		return nil, renderError(err)
	}
	c.logStage(ctx, "pdf", stageStart, slog.Int("pdf_bytes", len(data)))

	pages, err := c.inspector.PageCount(data)
	if err != nil {
		return nil, renderError(err)
	}

	outputPath := OutputPath(req.SourcePath)
	if err := writePDF(outputPath, data); err != nil {
		return nil, err
	}

	result = &Result{
		OutputPath: outputPath,
		Pages:      pages,
		Bytes:      int64(len(data)),
		Duration:   time.Since(start),
	}
	c.logger.LogAttrs(ctx, slog.LevelDebug, "converted",
		slog.String("source", req.SourcePath),
		slog.String("output", outputPath),
		slog.Int("pages", pages),
		slog.Duration("duration", result.Duration),
	)
	return result, nil
}

// stylesheet returns the CSS for req: the named file verbatim, or the
// converter default.
func (c *Converter) stylesheet(req *Request) (string, error) {
	if req.StylesheetPath == "" {
		return c.defaultCSS, nil
	}
	css, err := os.ReadFile(req.StylesheetPath) // #nosec G304 -- path checked by Validate
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", ErrUnexpected, req.StylesheetPath, err)
	}
	return string(css), nil
}

func (c *Converter) logStage(ctx context.Context, stage string, start time.Time, attrs ...slog.Attr) {
	attrs = append(attrs, slog.String("stage", stage), slog.Duration("duration", time.Since(start)))
	c.logger.LogAttrs(ctx, slog.LevelDebug, "stage complete", attrs...)
}

// Close releases browser resources.
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// Convert is a one-shot helper that creates a Converter, converts a single
// file and closes the browser.
func Convert(ctx context.Context, sourcePath, stylesheetPath string, opts ...Option) (*Result, error) {
	c, err := NewConverter(opts...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = c.Close() }()

	return c.Convert(ctx, sourcePath, stylesheetPath)
}
