package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ErrSanitize indicates preview sanitation failed.
var ErrSanitize = errors.New("preview sanitation failed")

// Sanitizer defines the contract for stripping active content from a
// preview document.
type Sanitizer interface {
	Sanitize(ctx context.Context, doc string) (string, error)
}

// HTMLSanitizer removes elements and attributes that could execute code.
// The preview document must stay inert even when raw HTML pass-through is
// enabled upstream.
type HTMLSanitizer struct{}

// Sanitize parses the document, drops script, iframe, object, and embed
// elements, event-handler attributes, and javascript: URLs, and
// re-serializes the result. All other markup passes through unchanged.
func (s *HTMLSanitizer) Sanitize(ctx context.Context, doc string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSanitize, err)
	}

	stripActiveContent(root)

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSanitize, err)
	}
	return buf.String(), nil
}

func stripActiveContent(n *html.Node) {
	var next *html.Node
	for child := n.FirstChild; child != nil; child = next {
		next = child.NextSibling
		if child.Type == html.ElementNode && isActiveElement(child.Data) {
			n.RemoveChild(child)
			continue
		}
		stripActiveContent(child)
	}
	if n.Type == html.ElementNode {
		n.Attr = filterAttributes(n.Attr)
	}
}

func isActiveElement(tag string) bool {
	switch tag {
	case "script", "iframe", "object", "embed":
		return true
	}
	return false
}

func filterAttributes(attrs []html.Attribute) []html.Attribute {
	kept := attrs[:0]
	for _, attr := range attrs {
		key := strings.ToLower(attr.Key)
		if strings.HasPrefix(key, "on") {
			continue
		}
		if key == "href" || key == "src" {
			val := strings.ToLower(strings.TrimSpace(attr.Val))
			if strings.HasPrefix(val, "javascript:") {
				continue
			}
		}
		kept = append(kept, attr)
	}
	return kept
}
