// Package mdpdf converts Markdown documents to styled PDFs using headless Chrome.
//
// # Quick Start
//
// Convert a file; the PDF is written next to it with a .pdf extension:
//
//	result, err := mdpdf.Convert(ctx, "notes.md", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.OutputPath, result.Pages)
//
// Pass a stylesheet path as the third argument to replace the built-in style.
//
// # Conversion Pipeline
//
//  1. Validate: the Markdown file (and optional .css file) must exist and
//     carry an accepted extension.
//  2. Markdown to HTML via goldmark (GFM, footnotes, chroma highlighting).
//  3. Compose: the fragment is wrapped in a document whose <style> block
//     holds the stylesheet verbatim.
//  4. Render: headless Chrome (go-rod) prints the document to PDF; the
//     stylesheet's @page rule controls page size and margins.
//  5. Write: the PDF is fully rendered before the output file is touched.
//
// # Reusing a Converter
//
// A Converter keeps its browser between conversions:
//
//	conv, err := mdpdf.NewConverter(
//	    mdpdf.WithTimeout(2*time.Minute),
//	    mdpdf.WithStyle("plain"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
// A Converter is not safe for concurrent use. ConverterPool hands out one
// converter per goroutine:
//
//	pool := mdpdf.NewConverterPool(mdpdf.ResolvePoolSize(0))
//	defer pool.Close()
//	conv, err := pool.Acquire(ctx)
//	...
//	pool.Release(conv)
//
// # Errors
//
// Every conversion error matches one of ErrNotFound, ErrInvalidExtension,
// ErrRender or ErrUnexpected. Render failures also match the stage that
// failed (ErrHTMLConversion, ErrBrowserConnect, ErrPageLoad, ...).
//
// # Environment
//
// ROD_BROWSER_BIN selects the Chrome binary. ROD_NO_SANDBOX=1 (or CI=true)
// disables the Chrome sandbox, which containers usually require.
package mdpdf
