package pdf2md

import (
	"time"

	"github.com/alnah/go-pdf2md/internal/pipeline"
)

// Math handling modes for rendered HTML documents.
const (
	// MathModeMathJax leaves TeX delimiters in the fragment; the standalone
	// document loads the MathJax script to typeset them in the browser.
	MathModeMathJax = pipeline.MathJax

	// MathModeMathML converts TeX to MathML during rendering, so both
	// documents display math without loading any script.
	MathModeMathML = pipeline.MathML

	// MathModeOff disables math handling entirely.
	MathModeOff = pipeline.MathOff
)

// MathJaxScriptURL is the typesetting script loaded by standalone documents
// in MathJax mode.
const MathJaxScriptURL = pipeline.MathJaxURL

// defaultTimeout bounds a single conversion when no timeout is configured.
// OCR of large documents is slow, so this is generous.
const defaultTimeout = 5 * time.Minute

// defaultDocumentName is used for byte inputs without a declared name.
const defaultDocumentName = "document"

// Input contains conversion parameters. Exactly one of Path, URL, or Data
// must be set.
type Input struct {
	Path string // Local PDF file path
	URL  string // Remote document URL (skips upload)
	Data []byte // Raw PDF bytes

	// Name is the document name declared to the OCR service for Data
	// inputs. Path inputs use the file stem; empty falls back to a
	// generic name.
	Name string

	// Title overrides the converter's document title for this input.
	Title string

	// ExportPDF renders the standalone HTML to a searchable PDF via
	// headless Chrome. Conversions without it never touch a browser.
	ExportPDF bool
}

// ConvertResult holds everything one conversion produced. The caller owns
// the result; the next conversion does not touch it.
type ConvertResult struct {
	Markdown       string // Assembled Markdown, placeholders resolved
	StandaloneHTML string // Complete document for browser viewing
	PreviewHTML    string // Script-free variant for embedded display
	PDF            []byte // Searchable PDF, only when Input.ExportPDF
	PageCount      int    // Pages the service processed
	Model          string // Model that produced the OCR result
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	apiKey        string
	model         string
	timeout       time.Duration
	mathMode      string
	rawHTML       bool
	noStyle       bool
	styleInput    string
	resolvedStyle string
	previewStyle  string
	assetPath     string
	title         string
	uploadLimit   int
}

// WithAPIKey sets the bearer token for the OCR service. Conversions fail
// with ErrMissingAPIKey when no key is configured.
func WithAPIKey(key string) Option {
	return func(c *Converter) {
		c.cfg.apiKey = key
	}
}

// WithModel selects the OCR processing model. Empty keeps the service
// default.
func WithModel(model string) Option {
	return func(c *Converter) {
		c.cfg.model = model
	}
}

// WithTimeout sets the conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("pdf2md: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithMathMode selects math handling: MathModeMathJax (default),
// MathModeMathML, or MathModeOff. NewConverter fails with
// ErrInvalidMathMode on anything else.
func WithMathMode(mode string) Option {
	return func(c *Converter) {
		c.cfg.mathMode = mode
	}
}

// WithRawHTML passes inline HTML in the OCR output through to the rendered
// documents instead of escaping it. The preview stays sanitized either way.
func WithRawHTML() Option {
	return func(c *Converter) {
		c.cfg.rawHTML = true
	}
}

// WithStyle sets the document stylesheet. Accepts a built-in style name, a
// CSS file path, or raw CSS content.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithNoStyle renders documents without any stylesheet.
func WithNoStyle() Option {
	return func(c *Converter) {
		c.cfg.noStyle = true
	}
}

// WithAssetPath loads styles and templates from a custom directory, falling
// back to embedded assets for anything not found there.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithTitle sets the default document title. Input.Title overrides it per
// conversion.
func WithTitle(title string) Option {
	return func(c *Converter) {
		c.cfg.title = title
	}
}

// WithUploadLimit changes the maximum accepted document size in bytes.
// Zero keeps the service's documented maximum.
func WithUploadLimit(n int) Option {
	return func(c *Converter) {
		c.cfg.uploadLimit = n
	}
}

// WithAssetLoader substitutes a custom asset backend (filesystem, S3,
// database). Takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}
