package main

import (
	"errors"

	"github.com/inkwell-labs/mdpdf"
	"github.com/inkwell-labs/mdpdf/internal/config"
)

// Exit codes for the mdpdf CLI.
const (
	ExitSuccess = 0 // Everything converted
	ExitFailure = 1 // Missing file, wrong extension, I/O or unexpected error
	ExitUsage   = 2 // Bad arguments, flags, config or options
	ExitRender  = 3 // Markdown or PDF rendering failed
)

// ErrUsage marks command-line mistakes.
var ErrUsage = errors.New("usage error")

// exitCodeFor maps an error to an exit code with errors.Is, so callers must
// wrap with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, mdpdf.ErrRender) {
		return ExitRender
	}

	if errors.Is(err, mdpdf.ErrNotFound) ||
		errors.Is(err, mdpdf.ErrInvalidExtension) ||
		errors.Is(err, mdpdf.ErrUnexpected) {
		return ExitFailure
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, mdpdf.ErrInvalidTimeout) ||
		errors.Is(err, mdpdf.ErrStyleNotFound) ||
		errors.Is(err, mdpdf.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitFailure
}
