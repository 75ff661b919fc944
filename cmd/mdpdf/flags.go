package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common    commonFlags
	css       string
	style     string
	assetPath string
	workers   int
	timeout   string
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common    commonFlags
	addr      string
	uploadDir string
	css       string
	envFile   string
	sanitize  bool

	envFileSet bool // --env-file given explicitly
}

// defaultEnvFile is loaded by serve when present.
const defaultEnvFile = ".env"

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show pages and timing")
}

// parseConvertFlags parses convert flags and returns positional args.
// Usage and parse errors are written to w.
func parseConvertFlags(args []string, w io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(w)
	f := &convertFlags{}

	fs.StringVar(&f.css, "css", "", "stylesheet for every file (.css)")
	fs.StringVar(&f.style, "style", "", "built-in or custom style name")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with custom styles")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g. 30s, 2m)")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printConvertUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve flags and returns positional args.
func parseServeFlags(args []string, w io.Writer) (*serveFlags, []string, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(w)
	f := &serveFlags{}

	fs.StringVar(&f.addr, "addr", "", "listen address (default :8080)")
	fs.StringVar(&f.uploadDir, "upload-dir", "", "directory for uploads and PDFs")
	fs.StringVar(&f.css, "css", "", "stylesheet for every conversion (.css)")
	fs.StringVar(&f.envFile, "env-file", defaultEnvFile, "dotenv file with MDPDF_* variables")
	fs.BoolVar(&f.sanitize, "sanitize", false, "strip unsafe HTML from uploaded Markdown")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printServeUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	f.envFileSet = fs.Changed("env-file")
	return f, fs.Args(), nil
}

// usageError tags a flag parse error. flag.ErrHelp passes through untouched.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUsage, err)
}
