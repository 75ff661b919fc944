// Package pipeline implements the HTML-producing stages of the conversion:
//   - Markdown to HTML fragment conversion via Goldmark
//   - Optional fragment sanitizing for untrusted input
//   - Composition of the fragment and a stylesheet into a full document
//
// PDF generation is handled separately by the root mdpdf package using
// headless Chrome (go-rod). Nothing in this package touches the filesystem.
package pipeline
