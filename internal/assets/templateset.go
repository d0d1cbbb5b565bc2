package assets

// TemplateSet holds the HTML document templates for one named set.
// A set contains the standalone template (self-contained document, may load
// scripts) and the preview template (script-free) that work together.
type TemplateSet struct {
	Name       string // Identifier (name or directory path)
	Standalone string // Standalone document template HTML content
	Preview    string // Preview document template HTML content
}

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// DefaultStyleName is the name of the built-in CSS style for standalone
// documents.
const DefaultStyleName = "default"

// PreviewStyleName is the name of the built-in CSS style for preview
// documents. It matches the default style minus document chrome such as
// body padding.
const PreviewStyleName = "preview"
