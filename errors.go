package pdf2md

import (
	"errors"

	"github.com/alnah/go-pdf2md/internal/mistral"
)

// Sentinel errors for library operations.
var (
	ErrMissingAPIKey    = errors.New("API key is required")
	ErrNoInput          = errors.New("no document input provided")
	ErrConflictingInput = errors.New("multiple document inputs provided")
	ErrReadInput        = errors.New("failed to read input file")
	ErrInvalidMathMode  = errors.New("invalid math mode")

	// PDF export errors (headless Chrome).
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// Asset loading errors.
	ErrStyleNotFound         = errors.New("style not found")
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set missing required template")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
)

// Remote failures surfaced from the OCR service boundary. Re-exported so
// callers can classify with errors.Is without importing internal packages.
var (
	ErrAuthentication   = mistral.ErrAuthentication
	ErrTransfer         = mistral.ErrTransfer
	ErrProcessing       = mistral.ErrProcessing
	ErrDocumentTooLarge = mistral.ErrDocumentTooLarge
)
