package mdpdf

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pdfInspector reads back a rendered PDF.
type pdfInspector interface {
	PageCount(data []byte) (int, error)
}

// pdfcpuInspector validates PDFs with pdfcpu.
type pdfcpuInspector struct{}

var disableConfigDir sync.Once

// PageCount parses and validates data and returns its page count.
func (pdfcpuInspector) PageCount(data []byte) (int, error) {
	// pdfcpu would otherwise create a configuration directory under $HOME.
	disableConfigDir.Do(api.DisableConfigDir)

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	return ctx.PageCount, nil
}

var _ pdfInspector = pdfcpuInspector{}
