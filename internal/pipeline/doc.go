// Package pipeline implements the OCR-output-to-document conversion pipeline.
//
// This package handles the stages between a raw OCR response and the final
// documents:
//   - Page assembly (image placeholder resolution, page joining)
//   - Markdown to HTML fragment conversion via Goldmark
//   - Document wrapping (standalone and preview templates, CSS, math script)
//   - Preview sanitation (script and event-handler stripping)
//
// Talking to the OCR service is handled separately by the internal mistral
// package, and PDF export by the root pdf2md package using headless Chrome
// (go-rod). This separation keeps the pipeline focused on document structure
// and content, while transport and rendering handle network and browser
// concerns.
package pipeline
