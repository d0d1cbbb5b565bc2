package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-pdf2md/internal/fileutil"
)

// FileToConvert represents a single document to process. Source is a local
// path unless IsURL is set.
type FileToConvert struct {
	Source     string
	IsURL      bool
	OutputPath string
}

// discoverInputs expands the positional arguments into concrete conversion
// jobs. Each argument is a PDF file, a directory scanned (non-recursively)
// for *.pdf, or a document URL.
func discoverInputs(inputs []string, outputDir, format string) ([]FileToConvert, error) {
	var files []FileToConvert
	for _, input := range inputs {
		expanded, err := discoverOne(input, outputDir, format)
		if err != nil {
			return nil, err
		}
		files = append(files, expanded...)
	}
	return files, nil
}

func discoverOne(input, outputDir, format string) ([]FileToConvert, error) {
	if fileutil.IsURL(input) {
		return []FileToConvert{{
			Source:     input,
			IsURL:      true,
			OutputPath: resolveOutputPath(urlStem(input), outputDir, format),
		}}, nil
	}

	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validatePDFExtension(input); err != nil {
			return nil, err
		}
		return []FileToConvert{{
			Source:     input,
			OutputPath: resolveOutputPath(fileStem(input), outputDirOrSibling(outputDir, input), format),
		}}, nil
	}

	// Directories are scanned one level deep; OCR of a whole tree should be
	// an explicit decision, not a side effect.
	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, err
	}

	var files []FileToConvert
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		path := filepath.Join(input, entry.Name())
		files = append(files, FileToConvert{
			Source:     path,
			OutputPath: resolveOutputPath(fileStem(path), outputDirOrSibling(outputDir, path), format),
		})
	}
	return files, nil
}

// resolveOutputPath builds the output file path from the document stem.
// An outputDir ending in the format's extension names the file directly.
func resolveOutputPath(stem, outputDir, format string) string {
	if outputDir == "" {
		return stem + "." + format
	}
	if strings.HasSuffix(outputDir, "."+format) {
		return outputDir
	}
	return filepath.Join(outputDir, stem+"."+format)
}

// outputDirOrSibling keeps outputs next to their source when no output
// directory is configured.
func outputDirOrSibling(outputDir, inputPath string) string {
	if outputDir != "" {
		return outputDir
	}
	return filepath.Dir(inputPath)
}

// fileStem returns the base name without extension.
func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// urlStem derives a document stem from a URL path, falling back to a generic
// name for URLs without a usable final segment.
func urlStem(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" || u.Path == "/" {
		return "document"
	}
	stem := fileStem(u.Path)
	if stem == "" {
		return "document"
	}
	return stem
}

// validatePDFExtension checks that the file has a .pdf extension.
func validatePDFExtension(path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}
