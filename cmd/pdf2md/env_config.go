package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-pdf2md/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string        // PDF2MD_CONFIG: config file path
	APIKey     string        // PDF2MD_API_KEY: OCR service API key
	Model      string        // PDF2MD_MODEL: OCR model
	Timeout    time.Duration // PDF2MD_TIMEOUT: conversion timeout

	// Tier 2 - Rendering
	Style  string // PDF2MD_STYLE: CSS style name or path
	Math   string // PDF2MD_MATH: mathjax, mathml, off
	Format string // PDF2MD_FORMAT: md, txt

	// Tier 3 - I/O
	InputDir  string // PDF2MD_INPUT_DIR: default input directory
	OutputDir string // PDF2MD_OUTPUT_DIR: default output directory
	Workers   int    // PDF2MD_WORKERS: parallel workers

	// MistralAPIKey is the service vendor's conventional variable, honored
	// after PDF2MD_API_KEY so tooling shared with other Mistral clients
	// keeps working.
	MistralAPIKey string // MISTRAL_API_KEY
}

// knownEnvVars lists valid PDF2MD_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"PDF2MD_CONFIG":     true,
	"PDF2MD_API_KEY":    true,
	"PDF2MD_MODEL":      true,
	"PDF2MD_TIMEOUT":    true,
	"PDF2MD_STYLE":      true,
	"PDF2MD_MATH":       true,
	"PDF2MD_FORMAT":     true,
	"PDF2MD_INPUT_DIR":  true,
	"PDF2MD_OUTPUT_DIR": true,
	"PDF2MD_WORKERS":    true,
	"PDF2MD_CONTAINER":  true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:    os.Getenv("PDF2MD_CONFIG"),
		APIKey:        os.Getenv("PDF2MD_API_KEY"),
		Model:         os.Getenv("PDF2MD_MODEL"),
		Style:         os.Getenv("PDF2MD_STYLE"),
		Math:          os.Getenv("PDF2MD_MATH"),
		Format:        os.Getenv("PDF2MD_FORMAT"),
		InputDir:      os.Getenv("PDF2MD_INPUT_DIR"),
		OutputDir:     os.Getenv("PDF2MD_OUTPUT_DIR"),
		MistralAPIKey: os.Getenv("MISTRAL_API_KEY"),
	}

	if timeout := os.Getenv("PDF2MD_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("PDF2MD_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized PDF2MD_* variables.
// Helps catch typos like PDF2MD_APIKEY instead of PDF2MD_API_KEY.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "PDF2MD_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Model != "" && cfg.OCR.Model == "" {
		cfg.OCR.Model = env.Model
	}
	if env.Timeout > 0 && cfg.OCR.TimeoutSeconds == 0 {
		cfg.OCR.TimeoutSeconds = int(env.Timeout.Seconds())
	}

	if env.Style != "" && cfg.Render.Style == "" {
		cfg.Render.Style = env.Style
	}
	if env.Math != "" && cfg.Render.Math == "" {
		cfg.Render.Math = env.Math
	}
	if env.Format != "" && cfg.Output.Extension == "" {
		cfg.Output.Extension = env.Format
	}

	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
}
