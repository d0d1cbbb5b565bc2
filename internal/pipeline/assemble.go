package pipeline

import (
	"context"
	"strings"
)

// dataURIPrefix is the inline-image scheme used for resolved placeholders.
const dataURIPrefix = "data:image/png;base64,"

// pageSeparator joins page bodies: exactly one blank line between pages.
const pageSeparator = "\n\n"

// PageData is one OCR page: its Markdown body and the images referenced
// from it by placeholder.
type PageData struct {
	Markdown string
	Images   []PageImage
}

// PageImage is an extracted image keyed by the identifier its placeholder
// carries in the page Markdown.
type PageImage struct {
	ID     string
	Base64 string
}

// PageAssembler defines the contract for combining OCR pages into a single
// Markdown document.
type PageAssembler interface {
	Assemble(ctx context.Context, pages []PageData) string
}

// ImageInliner assembles pages by inlining image payloads as data URIs.
type ImageInliner struct{}

// Assemble resolves image placeholders page by page and joins the bodies
// with one blank line, preserving page order. No separator is added before
// the first or after the last page. If the context is already canceled the
// remaining pages are joined unresolved.
func (a *ImageInliner) Assemble(ctx context.Context, pages []PageData) string {
	bodies := make([]string, len(pages))
	for i, page := range pages {
		if ctx.Err() != nil {
			bodies[i] = page.Markdown
			continue
		}
		bodies[i] = resolvePlaceholders(page)
	}
	return strings.Join(bodies, pageSeparator)
}

// resolvePlaceholders replaces each placeholder of the form `![<id>]()`
// with `![<id>](data:image/png;base64,<payload>)` for the page's image of
// matching id. Resolution is literal text replacement, not Markdown
// parsing: placeholders without a matching image pass through untouched,
// and duplicate ids keep the last payload.
func resolvePlaceholders(page PageData) string {
	if len(page.Images) == 0 {
		return page.Markdown
	}

	payloads := make(map[string]string, len(page.Images))
	for _, img := range page.Images {
		payloads[img.ID] = img.Base64
	}

	body := page.Markdown
	for id, payload := range payloads {
		placeholder := "![" + id + "]()"
		replacement := "![" + id + "](" + dataURIPrefix + payload + ")"
		body = strings.ReplaceAll(body, placeholder, replacement)
	}
	return body
}
