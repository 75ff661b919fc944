package mdpdf

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/inkwell-labs/mdpdf/internal/pipeline"
)

// RenderMarkdown reads sourcePath and converts it to an HTML fragment.
// The file must be UTF-8; a leading byte order mark is dropped, and UTF-16
// files carrying a BOM are transcoded.
func (c *Converter) RenderMarkdown(ctx context.Context, sourcePath string) (pipeline.Fragment, error) {
	raw, err := os.ReadFile(sourcePath) // #nosec G304 -- path checked by Validate
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", ErrUnexpected, sourcePath, err)
	}

	content, err := decodeSource(raw)
	if err != nil {
		return "", err
	}

	fragment, err := c.htmlConverter.ToHTML(ctx, content)
	if err != nil {
		return "", renderError(err)
	}
	return fragment, nil
}

// decodeSource strips or honours a byte order mark and rejects input that
// is not valid UTF-8, naming the most likely charset.
func decodeSource(raw []byte) ([]byte, error) {
	content, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %v", ErrRender, ErrInvalidEncoding, err)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: %w (looks like %s)", ErrRender, ErrInvalidEncoding, guessCharset(raw))
	}
	return content, nil
}

func guessCharset(raw []byte) string {
	best, err := chardet.NewTextDetector().DetectBest(raw)
	if err != nil || best.Charset == "" {
		return "an unknown charset"
	}
	return best.Charset
}
