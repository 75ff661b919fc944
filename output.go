package mdpdf

import (
	"fmt"
	"os"

	"github.com/inkwell-labs/mdpdf/internal/fileutil"
)

// OutputPath returns where the PDF for sourcePath is written: the same
// directory and base name with the final extension replaced by .pdf.
func OutputPath(sourcePath string) string {
	return fileutil.ReplaceExt(sourcePath, ".pdf")
}

// writePDF writes data to path, replacing any existing file. On failure the
// partially written file is removed.
func writePDF(path string, data []byte) error {
	// #nosec G302 G304 -- PDF output files are intended to be readable
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w: %v", ErrUnexpected, ErrWritePDF, err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("%w: %w: %v", ErrUnexpected, ErrWritePDF, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("%w: %w: %v", ErrUnexpected, ErrWritePDF, err)
	}
	return nil
}
