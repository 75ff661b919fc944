package mdpdf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/inkwell-labs/mdpdf/internal/fileutil"
)

// Accepted extensions, compared case-insensitively.
var (
	MarkdownExtensions   = []string{".md", ".markdown"}
	StylesheetExtensions = []string{".css"}
)

// Validate checks that sourcePath names an existing Markdown file and that
// stylesheetPath, when non-empty, names an existing CSS file.
//
// Existence is checked before extensions, source before stylesheet:
// a missing stylesheet is reported even when the source has the wrong
// extension. Validate has no side effects.
func Validate(sourcePath, stylesheetPath string) (*Request, error) {
	if err := checkExists(sourcePath, "Markdown"); err != nil {
		return nil, err
	}
	if stylesheetPath != "" {
		if err := checkExists(stylesheetPath, "CSS"); err != nil {
			return nil, err
		}
	}

	if !fileutil.HasExtension(sourcePath, MarkdownExtensions...) {
		return nil, fmt.Errorf("%w: %s (must be .md or .markdown)", ErrInvalidExtension, sourcePath)
	}
	if stylesheetPath != "" && !fileutil.HasExtension(stylesheetPath, StylesheetExtensions...) {
		return nil, fmt.Errorf("%w: %s (%w)", ErrInvalidExtension, stylesheetPath, ErrStylesheetExtension)
	}

	return &Request{SourcePath: sourcePath, StylesheetPath: stylesheetPath}, nil
}

// checkExists reports ErrNotFound for missing paths and directories.
// kind prefixes the sentinel text, e.g. "Markdown file not found: a.md".
func checkExists(path, kind string) error {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%s %w: %s", kind, ErrNotFound, path)
	case err != nil:
		return fmt.Errorf("%w: checking %s: %v", ErrUnexpected, path, err)
	case info.IsDir():
		return fmt.Errorf("%s %w: %s is a directory", kind, ErrNotFound, path)
	}
	return nil
}
