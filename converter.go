package pdf2md

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-pdf2md/internal/assets"
	"github.com/alnah/go-pdf2md/internal/fileutil"
	"github.com/alnah/go-pdf2md/internal/mistral"
	"github.com/alnah/go-pdf2md/internal/pipeline"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ pipeline.PageAssembler    = (*pipeline.ImageInliner)(nil)
	_ pipeline.FragmentRenderer = (*pipeline.GoldmarkRenderer)(nil)
	_ pipeline.DocumentWrapper  = (*pipeline.TemplateWrapper)(nil)
	_ pipeline.Sanitizer        = (*pipeline.HTMLSanitizer)(nil)
	_ ocrSubmitter              = (*mistral.Client)(nil)
	_ pdfExporter               = (*rodExporter)(nil)
)

// ocrSubmitter abstracts the OCR service boundary to allow test doubles.
type ocrSubmitter interface {
	Submit(ctx context.Context, name string, data []byte) (*mistral.OCRResponse, error)
	SubmitURL(ctx context.Context, url string) (*mistral.OCRResponse, error)
	Model() string
}

// Converter orchestrates the PDF-to-Markdown conversion pipeline.
// Create with NewConverter(), use Convert() for conversion, and Close()
// when done.
type Converter struct {
	cfg               converterConfig
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader
	submitter         ocrSubmitter
	assembler         pipeline.PageAssembler
	renderer          pipeline.FragmentRenderer
	wrapper           *pipeline.TemplateWrapper
	sanitizer         pipeline.Sanitizer
	exporter          pdfExporter
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithAPIKey, WithTimeout,
// WithMathMode). Returns error if asset loading or template parsing fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:         converterConfig{timeout: defaultTimeout, mathMode: MathModeMathJax},
		assetLoader: assets.NewEmbeddedLoader(),
		assembler:   &pipeline.ImageInliner{},
		sanitizer:   &pipeline.HTMLSanitizer{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if !pipeline.ValidMathMode(c.cfg.mathMode) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMathMode, c.cfg.mathMode)
	}

	// Handle WithAssetPath: resolve to internal loader
	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	// Handle WithAssetLoader (public interface): wrap to internal interface
	if c.publicAssetLoader != nil {
		c.assetLoader = &publicToInternalAdapter{pub: c.publicAssetLoader}
	}

	// Resolve style input (name, path, or CSS content) to CSS content
	if err := c.resolveStyles(); err != nil {
		return nil, err
	}

	templateSet, err := c.assetLoader.LoadTemplateSet(assets.DefaultTemplateSetName)
	if err != nil {
		return nil, fmt.Errorf("loading default template set: %w", err)
	}

	if c.wrapper == nil {
		c.wrapper, err = pipeline.NewTemplateWrapper(templateSet.Standalone, templateSet.Preview, pipeline.WrapperConfig{
			Title:         c.cfg.title,
			CSS:           c.cfg.resolvedStyle,
			PreviewCSS:    c.cfg.previewStyle,
			MathScriptURL: c.mathScriptURL(),
		})
		if err != nil {
			return nil, fmt.Errorf("initializing document wrapper: %w", err)
		}
	}

	if c.renderer == nil {
		c.renderer = pipeline.NewGoldmarkRenderer(pipeline.RendererOptions{
			MathMode: c.cfg.mathMode,
			RawHTML:  c.cfg.rawHTML,
		})
	}

	// Create the OCR client if not injected (e.g., by tests)
	if c.submitter == nil {
		c.submitter = mistral.NewClient(c.cfg.apiKey, c.clientOptions()...)
	}

	// Chrome is not launched here; the exporter connects lazily on the
	// first export so plain conversions never touch a browser.
	if c.exporter == nil {
		c.exporter = newRodExporter(c.cfg.timeout)
	}

	return c, nil
}

// Convert runs the full pipeline and returns the caller-owned result.
// The context is used for cancellation and timeout.
// Recovers from internal panics to prevent crashes from propagating to
// callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	resp, err := c.submit(ctx, input)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	markdown := c.assembler.Assemble(ctx, toPageData(resp.Pages))
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	fragment, err := c.renderer.RenderFragment(ctx, markdown)
	if err != nil {
		return nil, fmt.Errorf("rendering HTML: %w", err)
	}

	wrapper := c.wrapper.WithTitle(input.Title)
	standalone, err := wrapper.WrapStandalone(ctx, fragment)
	if err != nil {
		return nil, fmt.Errorf("wrapping standalone document: %w", err)
	}

	preview, err := wrapper.WrapPreview(ctx, fragment)
	if err != nil {
		return nil, fmt.Errorf("wrapping preview document: %w", err)
	}
	preview, err = c.sanitizer.Sanitize(ctx, preview)
	if err != nil {
		return nil, fmt.Errorf("sanitizing preview: %w", err)
	}

	model := resp.Model
	if model == "" {
		model = c.submitter.Model()
	}

	res := &ConvertResult{
		Markdown:       markdown,
		StandaloneHTML: standalone,
		PreviewHTML:    preview,
		PageCount:      len(resp.Pages),
		Model:          model,
	}

	if input.ExportPDF {
		pdfBytes, err := c.exporter.Export(ctx, standalone)
		if err != nil {
			return nil, fmt.Errorf("exporting PDF: %w", err)
		}
		res.PDF = pdfBytes
	}

	return res, nil
}

// Close releases resources (headless Chrome browser, if export was used).
func (c *Converter) Close() error {
	if c.exporter != nil {
		return c.exporter.Close()
	}
	return nil
}

// submit sends the input to the OCR service. URL inputs go straight to
// processing; path and byte inputs are uploaded first.
func (c *Converter) submit(ctx context.Context, input Input) (*mistral.OCRResponse, error) {
	if input.URL != "" {
		return c.submitter.SubmitURL(ctx, input.URL)
	}

	data := input.Data
	name := input.Name
	if input.Path != "" {
		content, err := os.ReadFile(input.Path) // #nosec G304 -- user-provided path
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
		}
		data = content
		if name == "" {
			name = fileStem(input.Path)
		}
	}
	if name == "" {
		name = defaultDocumentName
	}

	return c.submitter.Submit(ctx, name, data)
}

// validateInput checks that required fields are present before any network
// I/O happens.
//
// This is a TRUST BOUNDARY for direct library users who build Input
// manually. CLI users have their input validated earlier at flag parsing;
// both paths converge here, ensuring the OCR service is never invoked with
// an empty credential or without a document.
func (c *Converter) validateInput(input Input) error {
	if c.cfg.apiKey == "" {
		return ErrMissingAPIKey
	}

	sources := 0
	if input.Path != "" {
		sources++
	}
	if input.URL != "" {
		sources++
	}
	if len(input.Data) > 0 {
		sources++
	}
	switch {
	case sources == 0:
		return ErrNoInput
	case sources > 1:
		return ErrConflictingInput
	}
	return nil
}

// resolveStyles resolves the style input (name, path, or CSS content) to
// the standalone and preview stylesheets.
func (c *Converter) resolveStyles() error {
	if c.cfg.noStyle {
		return nil
	}

	input := c.cfg.styleInput
	if input == "" {
		input = assets.DefaultStyleName
	}

	switch {
	case fileutil.IsFilePath(input):
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
	case fileutil.IsCSS(input):
		c.cfg.resolvedStyle = input
	default:
		css, err := c.assetLoader.LoadStyle(input)
		if err != nil {
			return fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
		}
		c.cfg.resolvedStyle = css
	}

	// The preview uses the built-in preview stylesheet (same visual rules
	// minus document chrome) unless a custom style replaces both.
	if c.cfg.styleInput != "" {
		c.cfg.previewStyle = c.cfg.resolvedStyle
		return nil
	}
	preview, err := c.assetLoader.LoadStyle(assets.PreviewStyleName)
	if err != nil {
		return fmt.Errorf("loading preview style: %w", convertAssetError(err))
	}
	c.cfg.previewStyle = preview
	return nil
}

// mathScriptURL returns the script the standalone document loads, empty
// when math is typeset during rendering or disabled.
func (c *Converter) mathScriptURL() string {
	if c.cfg.mathMode == MathModeMathJax {
		return MathJaxScriptURL
	}
	return ""
}

// clientOptions builds the OCR client options from converter configuration.
func (c *Converter) clientOptions() []mistral.ClientOption {
	var opts []mistral.ClientOption
	if c.cfg.model != "" {
		opts = append(opts, mistral.WithModel(c.cfg.model))
	}
	if c.cfg.uploadLimit > 0 {
		opts = append(opts, mistral.WithUploadLimit(c.cfg.uploadLimit))
	}
	if c.cfg.timeout > 0 {
		opts = append(opts, mistral.WithHTTPClient(&http.Client{Timeout: c.cfg.timeout}))
	}
	return opts
}

// toPageData converts service pages to the assembler's input.
func toPageData(pages []mistral.Page) []pipeline.PageData {
	out := make([]pipeline.PageData, len(pages))
	for i, page := range pages {
		images := make([]pipeline.PageImage, len(page.Images))
		for j, img := range page.Images {
			images[j] = pipeline.PageImage{ID: img.ID, Base64: img.ImageBase64}
		}
		out[i] = pipeline.PageData{Markdown: page.Markdown, Images: images}
	}
	return out
}

// fileStem returns the base name without its extension, the document name
// the service sees for path inputs.
func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
