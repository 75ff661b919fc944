package pipeline

import "strings"

// Document scaffolding. The head carries a charset declaration so Chrome
// decodes the intermediate file as UTF-8 regardless of locale.
const (
	documentOpen = `<html><head><meta charset="utf-8"><style>`
	styleClose   = `</style></head><body>`
	documentEnd  = `</body></html>`
)

// Document is a complete HTML document built from a fragment and a stylesheet.
// The zero value is an empty document. Documents are never modified after
// Compose returns them.
type Document struct {
	markup string
}

// Markup returns the document's HTML.
func (d Document) Markup() string {
	return d.markup
}

// Len returns the size of the markup in bytes.
func (d Document) Len() int {
	return len(d.markup)
}

// Compose wraps fragment in a minimal HTML document with css in a <style> block.
// Neither argument is escaped: the stylesheet is inserted verbatim and the
// fragment is trusted. Identical inputs always produce identical documents.
func Compose(fragment Fragment, css string) Document {
	var b strings.Builder
	b.Grow(len(documentOpen) + len(css) + len(styleClose) + len(fragment) + len(documentEnd))
	b.WriteString(documentOpen)
	b.WriteString(css)
	b.WriteString(styleClose)
	b.WriteString(string(fragment))
	b.WriteString(documentEnd)
	return Document{markup: b.String()}
}
