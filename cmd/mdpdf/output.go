package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/inkwell-labs/mdpdf"
	"github.com/inkwell-labs/mdpdf/internal/assets"
	"github.com/inkwell-labs/mdpdf/internal/config"
	"github.com/inkwell-labs/mdpdf/internal/hints"
)

// printError writes "Error: <message>" and an optional hint line.
func printError(w io.Writer, err error, hint string) {
	fmt.Fprintf(w, "Error: %v%s\n", err, hint)
}

// hintFor returns an actionable hint for err, or "".
// configName is the config the user asked for, if any.
func hintFor(err error, configName string) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, mdpdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, mdpdf.ErrInvalidEncoding):
		return hints.ForInvalidEncoding()
	case errors.Is(err, mdpdf.ErrWritePDF):
		return hints.ForOutputWrite()
	case errors.Is(err, mdpdf.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.NewEmbeddedLoader().Styles())
	case errors.Is(err, config.ErrConfigNotFound):
		var searched []string
		if configName != "" && !strings.ContainsAny(configName, `/\`) {
			searched = config.SearchPaths(configName)
		}
		return hints.ForConfigNotFound(searched)
	case errors.Is(err, mdpdf.ErrStylesheetExtension):
		return hints.ForStylesheetExtension()
	case errors.Is(err, mdpdf.ErrInvalidExtension):
		return hints.ForSourceExtension()
	}
	return ""
}

// newCLILogger logs warnings to w, or everything with verbose.
func newCLILogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newServerLogger builds the serve logger from the log config.
func newServerLogger(w io.Writer, cfg config.LogConfig) (*slog.Logger, error) {
	level, err := config.ParseLogLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// configureMaxProcs matches GOMAXPROCS to the container CPU quota.
// maxprocs.Set only fails on an invalid GOMAXPROCS variable, in which case
// the runtime default stays in effect.
func configureMaxProcs(logger *slog.Logger) {
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))
}

// converterOptions maps config to converter options. The default
// stylesheet path is not an option: it is passed with each request.
func converterOptions(cfg *config.Config, logger *slog.Logger) ([]mdpdf.Option, error) {
	opts := []mdpdf.Option{mdpdf.WithLogger(logger)}

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, mdpdf.WithTimeout(timeout))
	}
	if cfg.CSS.Style != "" {
		opts = append(opts, mdpdf.WithStyle(cfg.CSS.Style))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, mdpdf.WithAssetPath(cfg.Assets.BasePath))
	}
	return opts, nil
}
