package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// ocrFlags holds OCR service flags.
type ocrFlags struct {
	apiKey  string
	model   string
	timeout string
}

// renderFlags holds HTML rendering flags.
type renderFlags struct {
	math      string
	style     string
	assetPath string
	rawHTML   bool
	noStyle   bool
}

// outputFlags holds output destination and format flags.
type outputFlags struct {
	output string
	format string
	html   bool
	pdf    bool
	open   bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	ocr     ocrFlags
	render  renderFlags
	out     outputFlags
	workers int
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addOCRFlags adds OCR service flags to a FlagSet.
func addOCRFlags(fs *flag.FlagSet, f *ocrFlags) {
	fs.StringVar(&f.apiKey, "api-key", "", "OCR service API key (overrides env and stored key)")
	fs.StringVar(&f.model, "model", "", "OCR model (empty = service default)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "conversion timeout (e.g., 30s, 2m)")
}

// addRenderFlags adds rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.math, "math", "", "math mode: mathjax, mathml, off")
	fs.StringVar(&f.style, "style", "", "CSS style name, file path, or raw CSS")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.rawHTML, "raw-html", false, "pass inline HTML through to rendered documents")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable CSS styling")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVar(&f.format, "format", "", "output format: md, txt")
	fs.BoolVar(&f.html, "html", false, "write standalone HTML alongside the Markdown")
	fs.BoolVar(&f.pdf, "pdf", false, "write a searchable PDF alongside the Markdown")
	fs.BoolVar(&f.open, "open", false, "open the rendered HTML in the default browser")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	addCommonFlags(fs, &f.common)
	addOCRFlags(fs, &f.ocr)
	addRenderFlags(fs, &f.render)
	addOutputFlags(fs, &f.out)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
