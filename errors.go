package mdpdf

import (
	"errors"
	"fmt"

	"github.com/inkwell-labs/mdpdf/internal/pipeline"
)

// Error taxonomy. Every error returned by Validate, RenderMarkdown and
// Convert matches exactly one of these via errors.Is.
var (
	ErrNotFound         = errors.New("file not found")
	ErrInvalidExtension = errors.New("invalid file extension")
	ErrRender           = errors.New("conversion failed")
	ErrUnexpected       = errors.New("unexpected error")
)

// ErrStylesheetExtension is wrapped together with ErrInvalidExtension when
// the stylesheet, not the source, has the wrong extension.
var ErrStylesheetExtension = errors.New("stylesheet must be .css")

// Render stage errors. Each is wrapped together with ErrRender.
var (
	ErrHTMLConversion  = pipeline.ErrHTMLConversion
	ErrInvalidEncoding = errors.New("source is not valid UTF-8")
	ErrBrowserConnect  = errors.New("failed to connect to browser")
	ErrPageCreate      = errors.New("failed to create browser page")
	ErrPageLoad        = errors.New("failed to load page")
	ErrPDFGeneration   = errors.New("PDF generation failed")
	ErrInvalidPDF      = errors.New("rendered PDF is unreadable")
)

// ErrWritePDF is wrapped together with ErrUnexpected.
var ErrWritePDF = errors.New("failed to write PDF file")

// Option errors, returned by NewConverter.
var (
	ErrInvalidTimeout   = errors.New("invalid timeout")
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// ErrPoolClosed is returned by ConverterPool.Acquire after Close.
var ErrPoolClosed = errors.New("converter pool closed")

// renderError tags err as a render failure unless it already belongs to the
// taxonomy.
func renderError(err error) error {
	if errors.Is(err, ErrRender) || errors.Is(err, ErrUnexpected) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrRender, err)
}
