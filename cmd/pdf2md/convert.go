package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	pdf2md "github.com/alnah/go-pdf2md"
	"github.com/alnah/go-pdf2md/internal/config"
	"github.com/alnah/go-pdf2md/internal/fileutil"
	"github.com/alnah/go-pdf2md/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrInvalidExtension   = errors.New("file must have .pdf extension")
	ErrInvalidFormat      = errors.New("invalid output format")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrWriteOutput        = errors.New("failed to write output file")
)

// Output formats for the assembled text.
const (
	formatMarkdown = "md"
	formatText     = "txt"
)

// tempFileMaxAge bounds how long leftover temp files from crashed runs
// survive before the next run sweeps them.
const tempFileMaxAge = time.Hour

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	// Load configuration: flag > PDF2MD_CONFIG > defaults
	cfg := env.Config
	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	if configName != "" {
		loaded, err := config.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(nil))
			}
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	if err := mergeFlags(flags, cfg); err != nil {
		return err
	}

	apiKey, keySource, err := resolveAPIKey(flags.ocr.apiKey, envCfg, env.Stderr)
	if err != nil {
		return err
	}
	if apiKey == "" {
		return pdf2md.ErrMissingAPIKey
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "API key source: %s\n", keySource)
	}

	format, err := resolveFormat(flags.out.format, cfg)
	if err != nil {
		return err
	}

	// Clean up temp HTML left behind by crashed PDF exports.
	if swept := fileutil.SweepTempFiles(tempFileMaxAge); swept > 0 && flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Swept %d stale temp file(s)\n", swept)
	}

	inputs := positionalArgs
	if len(inputs) == 0 && cfg.Input.DefaultDir != "" {
		inputs = []string{cfg.Input.DefaultDir}
	}
	if len(inputs) == 0 {
		return ErrNoInput
	}

	outputDir := flags.out.output
	if outputDir == "" {
		outputDir = cfg.Output.DefaultDir
	}

	files, err := discoverInputs(inputs, outputDir, format)
	if err != nil {
		return fmt.Errorf("discovering inputs: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no PDF files found in %s", strings.Join(inputs, ", "))
	}

	opts, err := buildConverterOptions(flags, cfg, apiKey)
	if err != nil {
		return err
	}

	poolSize := pdf2md.ResolvePoolSize(flags.workers)
	if envCfg.Workers > 0 && flags.workers == 0 {
		poolSize = pdf2md.ResolvePoolSize(envCfg.Workers)
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}

	pool := newConverterPool(poolSize, opts...)
	defer pool.Close()

	params := &conversionParams{
		format:    format,
		writeHTML: flags.out.html,
		writePDF:  flags.out.pdf,
		openAfter: flags.out.open,
		title:     cfg.Render.Title,
	}

	results := convertBatch(ctx, pool, files, params)

	failedCount := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		// Surface the construction error behind ErrConverterInit so the
		// exit code reflects the real failure.
		if initErr := pool.LastError(); initErr != nil {
			return fmt.Errorf("initializing converter: %w", initErr)
		}
		return fmt.Errorf("%d conversion(s) failed", failedCount)
	}

	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) error {
	if flags.ocr.model != "" {
		cfg.OCR.Model = flags.ocr.model
	}
	if flags.ocr.timeout != "" {
		d, err := time.ParseDuration(flags.ocr.timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: %q (use Go duration syntax, e.g., 30s, 2m)", ErrInvalidTimeout, flags.ocr.timeout)
		}
		cfg.OCR.TimeoutSeconds = int(d.Seconds())
	}

	if flags.render.math != "" {
		cfg.Render.Math = flags.render.math
	}
	if flags.render.style != "" {
		cfg.Render.Style = flags.render.style
	}
	if flags.render.assetPath != "" {
		cfg.Assets.BasePath = flags.render.assetPath
	}
	if flags.render.rawHTML {
		cfg.Render.RawHTML = true
	}

	if flags.out.format != "" {
		cfg.Output.Extension = flags.out.format
	}

	return cfg.Validate()
}

// resolveAPIKey resolves the OCR API key with precedence:
// --api-key flag > PDF2MD_API_KEY > MISTRAL_API_KEY > stored credentials.
// A corrupt credentials file warns and continues rather than aborting.
func resolveAPIKey(flagKey string, envCfg *envConfig, stderr io.Writer) (key, source string, err error) {
	if flagKey != "" {
		return flagKey, "--api-key flag", nil
	}
	if envCfg.APIKey != "" {
		return envCfg.APIKey, "PDF2MD_API_KEY", nil
	}
	if envCfg.MistralAPIKey != "" {
		return envCfg.MistralAPIKey, "MISTRAL_API_KEY", nil
	}

	path, err := config.DefaultCredentialsPath()
	if err != nil {
		// No config dir means no stored key; not fatal by itself.
		return "", "", nil
	}
	creds, err := config.LoadCredentials(path)
	if err != nil {
		if errors.Is(err, config.ErrCredentialsCorrupt) {
			fmt.Fprintf(stderr, "warning: %v%s\n", err, hints.ForCredentials())
			return "", "", nil
		}
		return "", "", err
	}
	if creds.APIKey != "" {
		return creds.APIKey, path, nil
	}
	return "", "", nil
}

// resolveFormat resolves the output format: flag > config > markdown.
func resolveFormat(flagFormat string, cfg *config.Config) (string, error) {
	format := flagFormat
	if format == "" {
		format = cfg.Output.Extension
	}
	if format == "" {
		format = formatMarkdown
	}
	format = strings.ToLower(format)
	switch format {
	case formatMarkdown, formatText:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %q (must be md or txt)", ErrInvalidFormat, format)
	}
}

// buildConverterOptions translates merged configuration into library options.
func buildConverterOptions(flags *convertFlags, cfg *config.Config, apiKey string) ([]pdf2md.Option, error) {
	opts := []pdf2md.Option{pdf2md.WithAPIKey(apiKey)}

	if cfg.OCR.Model != "" {
		opts = append(opts, pdf2md.WithModel(cfg.OCR.Model))
	}
	if cfg.OCR.TimeoutSeconds > 0 {
		opts = append(opts, pdf2md.WithTimeout(time.Duration(cfg.OCR.TimeoutSeconds)*time.Second))
	}
	if cfg.OCR.UploadLimitMB > 0 {
		opts = append(opts, pdf2md.WithUploadLimit(cfg.OCR.UploadLimitMB*1024*1024))
	}

	if cfg.Render.Math != "" {
		opts = append(opts, pdf2md.WithMathMode(strings.ToLower(cfg.Render.Math)))
	}
	if cfg.Render.RawHTML {
		opts = append(opts, pdf2md.WithRawHTML())
	}
	if cfg.Render.Title != "" {
		opts = append(opts, pdf2md.WithTitle(cfg.Render.Title))
	}

	switch {
	case flags.render.noStyle:
		opts = append(opts, pdf2md.WithNoStyle())
	case cfg.Render.Style != "":
		opts = append(opts, pdf2md.WithStyle(cfg.Render.Style))
	}

	if cfg.Assets.BasePath != "" {
		opts = append(opts, pdf2md.WithAssetPath(cfg.Assets.BasePath))
	}

	return opts, nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > pdf2md.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, pdf2md.MaxPoolSize)
	}
	return nil
}
