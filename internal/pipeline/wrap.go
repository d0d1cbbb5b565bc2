package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// MathJaxURL is the typesetting script loaded by standalone documents in
// MathJax mode.
const MathJaxURL = "https://cdn.jsdelivr.net/npm/mathjax@3/es5/tex-mml-chtml.js"

// DefaultTitle is used when no document title is configured.
const DefaultTitle = "Document"

// ErrWrapRender indicates document template execution failed.
var ErrWrapRender = errors.New("document template rendering failed")

// DocumentWrapper defines the contract for wrapping an HTML fragment into
// complete documents. The standalone form may load scripts; the preview
// form never does.
type DocumentWrapper interface {
	WrapStandalone(ctx context.Context, fragment string) (string, error)
	WrapPreview(ctx context.Context, fragment string) (string, error)
}

// WrapperConfig carries the per-document values the templates reference.
type WrapperConfig struct {
	// Title is the document title. Empty means DefaultTitle.
	Title string

	// CSS styles the standalone document.
	CSS string

	// PreviewCSS styles the preview document.
	PreviewCSS string

	// MathScriptURL is the script the standalone document loads for math
	// typesetting. Empty omits the script entirely.
	MathScriptURL string
}

// wrapData is the execution context for both document templates.
type wrapData struct {
	Title         string
	CSS           template.CSS
	Body          template.HTML
	MathScriptURL string
}

// TemplateWrapper implements DocumentWrapper over parsed html/template
// sources.
type TemplateWrapper struct {
	standalone *template.Template
	preview    *template.Template
	cfg        WrapperConfig
}

// NewTemplateWrapper parses both document templates. Template sources come
// from the asset loader, not from converted documents.
func NewTemplateWrapper(standaloneSrc, previewSrc string, cfg WrapperConfig) (*TemplateWrapper, error) {
	standalone, err := template.New("standalone").Parse(standaloneSrc)
	if err != nil {
		return nil, fmt.Errorf("parsing standalone template: %w", err)
	}
	preview, err := template.New("preview").Parse(previewSrc)
	if err != nil {
		return nil, fmt.Errorf("parsing preview template: %w", err)
	}
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}
	return &TemplateWrapper{standalone: standalone, preview: preview, cfg: cfg}, nil
}

// WithTitle returns a wrapper rendering with the given document title,
// sharing the parsed templates. An empty title keeps the configured one.
func (w *TemplateWrapper) WithTitle(title string) *TemplateWrapper {
	if title == "" || title == w.cfg.Title {
		return w
	}
	clone := *w
	clone.cfg.Title = title
	return &clone
}

// WrapStandalone renders the standalone document around the fragment,
// including the math script when one is configured.
func (w *TemplateWrapper) WrapStandalone(ctx context.Context, fragment string) (string, error) {
	return w.render(ctx, w.standalone, fragment, w.cfg.CSS, w.cfg.MathScriptURL)
}

// WrapPreview renders the script-free preview document around the fragment.
func (w *TemplateWrapper) WrapPreview(ctx context.Context, fragment string) (string, error) {
	return w.render(ctx, w.preview, fragment, w.cfg.PreviewCSS, "")
}

func (w *TemplateWrapper) render(ctx context.Context, tmpl *template.Template, fragment, css, mathScriptURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data := wrapData{
		Title:         w.cfg.Title,
		CSS:           template.CSS(sanitizeCSS(css)), // #nosec G203 -- style-tag breakout escaped by sanitizeCSS
		Body:          template.HTML(fragment),        // #nosec G203 -- fragment comes from the renderer, which escapes untrusted HTML
		MathScriptURL: mathScriptURL,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrapRender, err)
	}
	return buf.String(), nil
}

// sanitizeCSS escapes sequences that would close the style tag early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
