package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	treeblood "github.com/wyatt915/goldmark-treeblood"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrRender indicates Markdown to HTML conversion failed.
var ErrRender = errors.New("markdown rendering failed")

// Math handling modes for rendered documents.
const (
	// MathJax leaves TeX delimiters in the fragment; the standalone
	// document loads the MathJax script to typeset them in the browser.
	MathJax = "mathjax"

	// MathML converts TeX to MathML during rendering, so documents need
	// no script to display math.
	MathML = "mathml"

	// MathOff disables math handling entirely.
	MathOff = "off"
)

// ValidMathMode reports whether name is a recognized math mode.
func ValidMathMode(name string) bool {
	switch name {
	case MathJax, MathML, MathOff:
		return true
	}
	return false
}

// FragmentRenderer defines the contract for converting Markdown content
// to an HTML fragment.
type FragmentRenderer interface {
	RenderFragment(ctx context.Context, markdown string) (string, error)
}

// RendererOptions configure fragment rendering.
type RendererOptions struct {
	// MathMode selects math handling: MathJax, MathML, or MathOff.
	// MathJax and MathOff render identically; the difference is whether
	// the standalone wrapper loads the typesetting script.
	MathMode string

	// RawHTML passes inline HTML through instead of escaping it.
	RawHTML bool
}

// GoldmarkRenderer implements FragmentRenderer using the goldmark library
// with table and syntax-highlighting extensions.
type GoldmarkRenderer struct {
	md goldmark.Markdown
}

// NewGoldmarkRenderer builds a renderer for OCR-produced Markdown. Syntax
// highlighting emits CSS classes rather than inline styles so documents
// stay styleable.
func NewGoldmarkRenderer(opts RendererOptions) *GoldmarkRenderer {
	extenders := []goldmark.Extender{
		extension.Table,
		highlighting.NewHighlighting(
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
			),
		),
	}
	if opts.MathMode == MathML {
		extenders = append(extenders, treeblood.MathML())
	}

	rendererOpts := []renderer.Option{html.WithXHTML()}
	if opts.RawHTML {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(extenders...),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	return &GoldmarkRenderer{md: md}
}

type renderResult struct {
	fragment string
	err      error
}

// RenderFragment converts Markdown to an HTML fragment. The conversion
// itself is not interruptible, so it runs in a goroutine and the result is
// discarded if the context ends first.
func (r *GoldmarkRenderer) RenderFragment(ctx context.Context, markdown string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	resultCh := make(chan renderResult, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(markdown), &buf); err != nil {
			resultCh <- renderResult{err: fmt.Errorf("%w: %v", ErrRender, err)}
			return
		}
		resultCh <- renderResult{fragment: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-resultCh:
		return res.fragment, res.err
	}
}
