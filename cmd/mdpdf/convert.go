package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/inkwell-labs/mdpdf"
	"github.com/inkwell-labs/mdpdf/internal/config"
	"github.com/inkwell-labs/mdpdf/internal/server"
)

// Sentinel errors for convert.
var (
	ErrNoInput            = errors.New("no input files")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath string
	Result    *mdpdf.Result
	Err       error
}

// runConvertCmd runs "mdpdf convert" and returns an exit code.
func runConvertCmd(ctx context.Context, args []string, env *Environment) int {
	flags, files, err := parseConvertFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		printError(env.Stderr, err, "")
		return exitCodeFor(err)
	}

	code, err := runConvert(ctx, files, flags, env)
	if err != nil {
		printError(env.Stderr, err, hintFor(err, configName(flags.common.config)))
		return exitCodeFor(err)
	}
	return code
}

// runConvert converts files and reports per-file results. The returned
// error covers failures that stop the whole run; per-file failures are
// reported and folded into the exit code.
func runConvert(ctx context.Context, files []string, flags *convertFlags, env *Environment) (int, error) {
	if len(files) == 0 {
		return 0, fmt.Errorf("%w: %w", ErrUsage, ErrNoInput)
	}
	if flags.workers < 0 {
		return 0, fmt.Errorf("%w: %w: %d (must be >= 0)", ErrUsage, ErrInvalidWorkerCount, flags.workers)
	}

	warnUnknownEnvVars(env.Stderr)
	cfg, err := resolveConfig(flags.common.config, loadEnvConfig())
	if err != nil {
		return 0, err
	}
	mergeConvertFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return 0, err
	}

	logger := newCLILogger(env.Stderr, flags.common.verbose)
	configureMaxProcs(logger)

	opts, err := converterOptions(cfg, logger)
	if err != nil {
		return 0, err
	}
	if err := checkOptions(opts); err != nil {
		return 0, err
	}

	stylesheet := flags.css
	if stylesheet == "" {
		stylesheet = cfg.CSS.Stylesheet
	}

	size := min(mdpdf.ResolvePoolSize(cfg.Workers), len(files))
	logger.Debug("starting conversion", "files", len(files), "workers", size)

	pool := env.NewPool(size, opts...)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn("closing converters", "error", err)
		}
	}()

	results := convertBatch(ctx, pool, files, stylesheet)
	return printResults(results, flags.common.quiet, flags.common.verbose, env), nil
}

// mergeConvertFlags applies explicitly set flags over cfg.
func mergeConvertFlags(flags *convertFlags, cfg *config.Config) {
	if flags.style != "" {
		cfg.CSS.Style = flags.style
	}
	if flags.assetPath != "" {
		cfg.Assets.BasePath = flags.assetPath
	}
	if flags.timeout != "" {
		cfg.Timeout = flags.timeout
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
}

// convertBatch converts files concurrently, one converter per worker.
// Results keep the input order.
func convertBatch(ctx context.Context, pool Pool, files []string, stylesheet string) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))
	results := make([]ConversionResult, len(files))
	jobs := make(chan int, len(files))
	for i := range files {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire(ctx)
			if err != nil {
				for idx := range jobs {
					results[idx] = ConversionResult{InputPath: files[idx], Err: fmt.Errorf("%w: %w", mdpdf.ErrUnexpected, err)}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				results[idx] = convertFile(ctx, conv, files[idx], stylesheet)
			}
		}()
	}

	wg.Wait()
	return results
}

func convertFile(ctx context.Context, conv server.Converter, path, stylesheet string) ConversionResult {
	if err := ctx.Err(); err != nil {
		return ConversionResult{InputPath: path, Err: fmt.Errorf("%w: %w", mdpdf.ErrUnexpected, err)}
	}
	res, err := conv.Convert(ctx, path, stylesheet)
	return ConversionResult{InputPath: path, Result: res, Err: err}
}

// printResults reports each result in input order and returns the exit
// code of the first failure.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	code := ExitSuccess
	failed := 0

	for _, r := range results {
		if r.Err != nil {
			failed++
			if code == ExitSuccess {
				code = exitCodeFor(r.Err)
			}
			if len(results) > 1 {
				printError(env.Stderr, fmt.Errorf("%s: %w", r.InputPath, r.Err), hintFor(r.Err, ""))
			} else {
				printError(env.Stderr, r.Err, hintFor(r.Err, ""))
			}
			continue
		}

		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d pages, %v)\n",
				r.InputPath, r.Result.OutputPath, r.Result.Pages, r.Result.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.Result.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(results)-failed, failed)
	}
	return code
}

// configName returns the config the user asked for, by flag or environment.
func configName(flagConfig string) string {
	if flagConfig != "" {
		return flagConfig
	}
	return loadEnvConfig().ConfigPath
}
