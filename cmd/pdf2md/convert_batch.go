package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	pdf2md "github.com/alnah/go-pdf2md"
	"github.com/alnah/go-pdf2md/internal/browser"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// ErrConverterInit indicates a pool worker could not build its converter.
var ErrConverterInit = errors.New("failed to initialize converter")

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input pdf2md.Input) (*pdf2md.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*pdf2md.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() CLIConverter
	Release(CLIConverter)
	Size() int
}

// conversionParams groups per-batch settings shared across files.
type conversionParams struct {
	format    string // md or txt
	writeHTML bool
	writePDF  bool
	openAfter bool
	title     string // empty = derived from the document stem
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	Source     string
	OutputPath string
	Pages      int
	Err        error
	Duration   time.Duration
}

// convertBatch processes files concurrently using the converter pool.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv := pool.Acquire()
			if conv == nil {
				// Converter creation failed, mark remaining jobs as failed
				for idx := range jobs {
					results[idx] = ConversionResult{
						Source: files[idx].Source,
						Err:    ErrConverterInit,
					}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						Source: files[idx].Source,
						Err:    ctx.Err(),
					}
					continue
				}
				results[idx] = convertOne(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertOne processes a single document and writes its outputs.
func convertOne(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		Source:     f.Source,
		OutputPath: f.OutputPath,
	}

	input := pdf2md.Input{
		Title:     params.title,
		ExportPDF: params.writePDF,
	}
	if f.IsURL {
		input.URL = f.Source
	} else {
		input.Path = f.Source
	}
	if input.Title == "" {
		input.Title = fileStem(f.OutputPath)
	}

	res, err := conv.Convert(ctx, input)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	result.Pages = res.PageCount

	outDir := filepath.Dir(f.OutputPath)
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		result.Err = fmt.Errorf("creating output directory: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	// The txt format writes the same assembled text under a plain extension.
	// #nosec G306 -- converted documents are meant to be readable
	if err := os.WriteFile(f.OutputPath, []byte(res.Markdown), filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
		result.Duration = time.Since(start)
		return result
	}

	htmlPath := siblingPath(f.OutputPath, ".html")
	if params.writeHTML {
		// #nosec G306 -- converted documents are meant to be readable
		if err := os.WriteFile(htmlPath, []byte(res.StandaloneHTML), filePermissions); err != nil {
			result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
			result.Duration = time.Since(start)
			return result
		}
	}

	if params.writePDF {
		// #nosec G306 -- converted documents are meant to be readable
		if err := os.WriteFile(siblingPath(f.OutputPath, ".pdf"), res.PDF, filePermissions); err != nil {
			result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
			result.Duration = time.Since(start)
			return result
		}
	}

	if params.openAfter {
		if err := openRendered(res.StandaloneHTML, htmlPath, params.writeHTML); err != nil {
			result.Err = fmt.Errorf("opening in browser: %w", err)
			result.Duration = time.Since(start)
			return result
		}
	}

	result.Duration = time.Since(start)
	return result
}

// openRendered opens the standalone HTML in the default browser. When --html
// already wrote the document, that file is opened; otherwise the HTML goes to
// a temp file that the next run's sweep removes.
func openRendered(html, htmlPath string, htmlWritten bool) error {
	target := htmlPath
	if !htmlWritten {
		tmp, err := os.CreateTemp("", "go-pdf2md-*.html")
		if err != nil {
			return err
		}
		if _, err := tmp.WriteString(html); err != nil {
			tmp.Close()
			return err
		}
		if err := tmp.Close(); err != nil {
			return err
		}
		target = tmp.Name()
	}
	return browser.Open(target)
}

// siblingPath swaps the extension of an output path.
func siblingPath(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// printResults outputs conversion results using the environment's writers.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	var succeeded, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.Source, r.Err, hintFor(r.Err))
			continue
		}

		succeeded++
		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d pages, %v)\n",
				r.Source, r.OutputPath, r.Pages, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}
