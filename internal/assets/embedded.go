package assets

import (
	"embed"
	"fmt"
)

//go:embed styles/*
var styles embed.FS

//go:embed templates/*
var templates embed.FS

// EmbeddedLoader loads assets from the embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a CSS style from embedded assets by name.
// The name should not include the .css extension.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}

	return string(content), nil
}

// LoadTemplateSet loads a set of HTML templates from embedded assets.
// The name identifies templates/{name}/standalone.html and preview.html.
func (e *EmbeddedLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	dir := "templates/" + name

	standalone, standaloneErr := templates.ReadFile(dir + "/standalone.html")
	preview, previewErr := templates.ReadFile(dir + "/preview.html")

	// If both files are missing, the template set doesn't exist
	if standaloneErr != nil && previewErr != nil {
		return nil, fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	}

	// If only one file is missing, the template set is incomplete
	if standaloneErr != nil {
		return nil, fmt.Errorf("%w: %q missing standalone.html", ErrIncompleteTemplateSet, name)
	}
	if previewErr != nil {
		return nil, fmt.Errorf("%w: %q missing preview.html", ErrIncompleteTemplateSet, name)
	}

	return &TemplateSet{
		Name:       name,
		Standalone: string(standalone),
		Preview:    string(preview),
	}, nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
