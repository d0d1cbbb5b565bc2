package main

import (
	"errors"
	"os"

	pdf2md "github.com/alnah/go-pdf2md"
	"github.com/alnah/go-pdf2md/internal/config"
)

// Exit codes for pdf2md CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
	ExitRemote  = 5 // OCR service errors (auth, transfer, processing)
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// OCR service errors (exit 5)
	if errors.Is(err, pdf2md.ErrAuthentication) ||
		errors.Is(err, pdf2md.ErrTransfer) ||
		errors.Is(err, pdf2md.ErrProcessing) ||
		errors.Is(err, pdf2md.ErrDocumentTooLarge) {
		return ExitRemote
	}

	// Browser errors (exit 4)
	if errors.Is(err, pdf2md.ErrBrowserConnect) ||
		errors.Is(err, pdf2md.ErrPageCreate) ||
		errors.Is(err, pdf2md.ErrPageLoad) ||
		errors.Is(err, pdf2md.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, pdf2md.ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, pdf2md.ErrMissingAPIKey) ||
		errors.Is(err, pdf2md.ErrInvalidMathMode) ||
		errors.Is(err, pdf2md.ErrStyleNotFound) ||
		errors.Is(err, pdf2md.ErrTemplateSetNotFound) ||
		errors.Is(err, pdf2md.ErrIncompleteTemplateSet) ||
		errors.Is(err, pdf2md.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
