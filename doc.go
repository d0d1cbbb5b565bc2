// Package pdf2md converts PDF documents to Markdown using the Mistral OCR
// service, and renders the result as HTML.
//
// # Quick Start
//
// Create a converter with an API key, convert a PDF, and close when done:
//
//	conv, err := pdf2md.NewConverter(pdf2md.WithAPIKey(key))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, pdf2md.Input{Path: "paper.pdf"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("paper.md", []byte(result.Markdown), 0644)
//
// The result holds the assembled Markdown plus two HTML renderings:
// StandaloneHTML is a complete document for browser viewing (math typeset
// via MathJax), PreviewHTML is a script-free variant for embedded display.
// The caller owns the result; the converter keeps no conversion state.
//
// # Conversion Pipeline
//
//  1. Submission: the PDF is uploaded to the OCR service, a short-lived
//     signed URL is obtained, and OCR is requested with per-page images
//     returned base64-encoded. Remote URLs skip the upload.
//  2. Assembly: page Markdown bodies are joined in page order, with image
//     placeholders resolved to inline data URIs.
//  3. Rendering: the Markdown becomes an HTML fragment via Goldmark (tables,
//     fenced code, syntax highlighting), wrapped into the two documents.
//
// Failures from the service classify via errors.Is against
// ErrAuthentication, ErrTransfer, and ErrProcessing. Nothing is retried.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := pdf2md.NewConverter(
//	    pdf2md.WithAPIKey(key),
//	    pdf2md.WithTimeout(2 * time.Minute),
//	    pdf2md.WithMathMode(pdf2md.MathModeMathML),
//	    pdf2md.WithStyle("technical"),
//	)
//
// # Searchable PDF Export
//
// Setting Input.ExportPDF renders the standalone HTML to a searchable PDF
// through headless Chrome (go-rod). Chrome is only launched when export is
// requested; plain conversions never touch a browser. For containers and CI
// set ROD_NO_SANDBOX=1, and ROD_BROWSER_BIN to use a custom Chrome binary.
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool to bound concurrent converters:
//
//	pool := pdf2md.NewConverterPool(4, pdf2md.WithAPIKey(key))
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
package pdf2md
