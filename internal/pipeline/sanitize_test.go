package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		doc      string
		contains []string
		excludes []string
	}{
		{
			name:     "plain markup unchanged",
			doc:      "<html><head></head><body><h1>Hello</h1><p>World</p></body></html>",
			contains: []string{"<h1>Hello</h1>", "<p>World</p>"},
		},
		{
			name:     "script element removed",
			doc:      "<html><body><p>safe</p><script>alert(1)</script></body></html>",
			contains: []string{"<p>safe</p>"},
			excludes: []string{"<script", "alert(1)"},
		},
		{
			name:     "uppercase script element removed",
			doc:      "<html><body><SCRIPT>alert(1)</SCRIPT></body></html>",
			excludes: []string{"<script", "alert(1)"},
		},
		{
			name:     "iframe removed",
			doc:      `<html><body><iframe src="https://example.com"></iframe><p>kept</p></body></html>`,
			contains: []string{"<p>kept</p>"},
			excludes: []string{"<iframe"},
		},
		{
			name:     "object and embed removed",
			doc:      `<html><body><object data="x"></object><embed src="y"><p>kept</p></body></html>`,
			contains: []string{"<p>kept</p>"},
			excludes: []string{"<object", "<embed"},
		},
		{
			name:     "event handler attributes removed",
			doc:      `<html><body><p onclick="evil()" class="note">text</p></body></html>`,
			contains: []string{`class="note"`, "text"},
			excludes: []string{"onclick", "evil()"},
		},
		{
			name:     "javascript href removed element kept",
			doc:      `<html><body><a href="javascript:evil()">link</a></body></html>`,
			contains: []string{"<a>link</a>"},
			excludes: []string{"javascript:"},
		},
		{
			name:     "https href preserved",
			doc:      `<html><body><a href="https://example.com">link</a></body></html>`,
			contains: []string{`href="https://example.com"`},
		},
		{
			name:     "data uri image preserved",
			doc:      `<html><body><img src="data:image/png;base64,AAAA" alt="fig1"></body></html>`,
			contains: []string{`src="data:image/png;base64,AAAA"`},
		},
		{
			name:     "style element preserved",
			doc:      "<html><head><style>body { color: red; }</style></head><body></body></html>",
			contains: []string{"<style>body { color: red; }</style>"},
		},
	}

	sanitizer := &HTMLSanitizer{}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			got, err := sanitizer.Sanitize(ctx, tt.doc)
			if err != nil {
				t.Fatalf("Sanitize() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Sanitize(%q) = %q, missing %q", tt.doc, got, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("Sanitize(%q) = %q, should not contain %q", tt.doc, got, unwanted)
				}
			}
		})
	}
}

func TestSanitizeContextCancellation(t *testing.T) {
	t.Parallel()

	sanitizer := &HTMLSanitizer{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err := sanitizer.Sanitize(ctx, "<html><body></body></html>")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Sanitize() with cancelled context error = %v, want context.Canceled", err)
	}
}
