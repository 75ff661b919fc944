package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"github.com/inkwell-labs/mdpdf"
	"github.com/inkwell-labs/mdpdf/internal/config"
	"github.com/inkwell-labs/mdpdf/internal/fileutil"
	"github.com/inkwell-labs/mdpdf/internal/pipeline"
	"github.com/inkwell-labs/mdpdf/internal/server"
)

// runServeCmd runs "mdpdf serve" and returns an exit code.
func runServeCmd(ctx context.Context, args []string, env *Environment) int {
	flags, rest, err := parseServeFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err == nil && len(rest) > 0 {
		err = fmt.Errorf("%w: unexpected arguments: %v", ErrUsage, rest)
	}
	if err != nil {
		printError(env.Stderr, err, "")
		return exitCodeFor(err)
	}

	if err := runServe(ctx, flags, env); err != nil {
		printError(env.Stderr, err, hintFor(err, configName(flags.common.config)))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runServe wires config, converter pool and HTTP server, then blocks until
// ctx is canceled.
func runServe(ctx context.Context, flags *serveFlags, env *Environment) error {
	if err := loadDotEnv(flags.envFile, flags.envFileSet); err != nil {
		return err
	}

	warnUnknownEnvVars(env.Stderr)
	cfg, err := resolveConfig(flags.common.config, loadEnvConfig())
	if err != nil {
		return err
	}
	mergeServeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newServerLogger(env.Stdout, cfg.Log)
	if err != nil {
		return err
	}
	configureMaxProcs(logger)

	stylesheet := flags.css
	if stylesheet == "" {
		stylesheet = cfg.CSS.Stylesheet
	}
	if err := checkStylesheet(stylesheet); err != nil {
		return err
	}

	uploadDir, err := server.PrepareUploadDir(cfg.Server.UploadDir)
	if err != nil {
		return fmt.Errorf("%w: %w", mdpdf.ErrUnexpected, err)
	}

	opts, err := converterOptions(cfg, logger)
	if err != nil {
		return err
	}
	if cfg.Server.Sanitize {
		opts = append(opts, mdpdf.WithSanitizer(pipeline.NewUGCSanitizer()))
	}
	if err := checkOptions(opts); err != nil {
		return err
	}

	pool := env.NewPool(mdpdf.ResolvePoolSize(cfg.Workers), opts...)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn("closing converters", "error", err)
		}
	}()

	srv, err := server.New(server.PoolConverter{Pool: pool}, server.Config{
		UploadDir:      uploadDir,
		Stylesheet:     stylesheet,
		MaxUploadBytes: cfg.UploadLimit(),
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", mdpdf.ErrUnexpected, err)
	}

	logger.Info("starting mdpdf server",
		"version", Version,
		"upload_dir", uploadDir,
		"workers", pool.Size(),
		"sanitize", cfg.Server.Sanitize,
	)
	return env.Serve(ctx, cfg.Server.Addr, srv, logger)
}

// mergeServeFlags applies explicitly set flags over cfg.
func mergeServeFlags(flags *serveFlags, cfg *config.Config) {
	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	if flags.uploadDir != "" {
		cfg.Server.UploadDir = flags.uploadDir
	}
	if flags.sanitize {
		cfg.Server.Sanitize = true
	}
}

// loadDotEnv loads path into the environment without overriding variables
// already set. A missing default file is not an error.
func loadDotEnv(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: loading %s: %v", ErrUsage, path, err)
	}
	return nil
}

// checkStylesheet fails fast on a service stylesheet every upload would
// otherwise be rejected for.
func checkStylesheet(path string) error {
	if path == "" {
		return nil
	}
	if !fileutil.FileExists(path) {
		return fmt.Errorf("CSS %w: %s", mdpdf.ErrNotFound, path)
	}
	if !fileutil.HasExtension(path, mdpdf.StylesheetExtensions...) {
		return fmt.Errorf("%w: %s (%w)", mdpdf.ErrInvalidExtension, path, mdpdf.ErrStylesheetExtension)
	}
	return nil
}
