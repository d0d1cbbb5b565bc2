package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-pdf2md/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits for multi-tenant safety.
const (
	MaxModelLength     = 100  // OCR model identifier
	MaxStyleLength     = 100  // Style name or path
	MaxMathModeLength  = 10   // "mathjax", "mathml", "off"
	MaxTitleLength     = 200  // Document title
	MaxExtensionLength = 10   // "md", "txt"
	MaxPathLength      = 4096 // Directory paths
)

// Upper bounds for numeric settings.
const (
	MaxTimeoutSeconds = 3600 // 1 hour
	MaxUploadLimitMB  = 512  // OCR service ceiling is well below this
)

// Config holds all configuration for PDF conversion.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	OCR    OCRConfig    `yaml:"ocr"`
	Render RenderConfig `yaml:"render"`
	Assets AssetsConfig `yaml:"assets"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
	Extension  string `yaml:"extension"`  // "md" or "txt" (default: "md")
}

// OCRConfig defines OCR service options.
type OCRConfig struct {
	Model          string `yaml:"model"`          // OCR model (empty = service default)
	TimeoutSeconds int    `yaml:"timeoutSeconds"` // Conversion timeout (0 = default)
	UploadLimitMB  int    `yaml:"uploadLimitMB"`  // Max upload size (0 = default)
}

// RenderConfig defines HTML rendering options.
type RenderConfig struct {
	Style   string `yaml:"style"`   // Name of style in internal/assets/styles/ (empty = default)
	Math    string `yaml:"math"`    // "mathjax", "mathml", "off" (default: "mathjax")
	RawHTML bool   `yaml:"rawHtml"` // Pass raw inline HTML through
	Title   string `yaml:"title"`   // Document title (empty = derived from input name)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// Validate checks field lengths and value ranges to prevent abuse in
// multi-tenant scenarios. Called automatically by LoadConfig, but available
// for consumers who construct Config manually (e.g., API adapters, library
// users).
func (c *Config) Validate() error {
	// Validate path fields
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	// Validate output fields
	if err := validateFieldLength("output.extension", c.Output.Extension, MaxExtensionLength); err != nil {
		return err
	}
	if c.Output.Extension != "" {
		switch strings.ToLower(c.Output.Extension) {
		case "md", "txt":
			// valid
		default:
			return fmt.Errorf("%w: output.extension %q (must be md or txt)", ErrInvalidValue, c.Output.Extension)
		}
	}

	// Validate OCR fields
	if err := validateFieldLength("ocr.model", c.OCR.Model, MaxModelLength); err != nil {
		return err
	}
	if c.OCR.TimeoutSeconds < 0 || c.OCR.TimeoutSeconds > MaxTimeoutSeconds {
		return fmt.Errorf("%w: ocr.timeoutSeconds must be between 0 and %d, got %d", ErrInvalidValue, MaxTimeoutSeconds, c.OCR.TimeoutSeconds)
	}
	if c.OCR.UploadLimitMB < 0 || c.OCR.UploadLimitMB > MaxUploadLimitMB {
		return fmt.Errorf("%w: ocr.uploadLimitMB must be between 0 and %d, got %d", ErrInvalidValue, MaxUploadLimitMB, c.OCR.UploadLimitMB)
	}

	// Validate render fields
	if err := validateFieldLength("render.style", c.Render.Style, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("render.title", c.Render.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("render.math", c.Render.Math, MaxMathModeLength); err != nil {
		return err
	}
	if c.Render.Math != "" {
		switch strings.ToLower(c.Render.Math) {
		case "mathjax", "mathml", "off":
			// valid
		default:
			return fmt.Errorf("%w: render.math %q (must be mathjax, mathml, or off)", ErrInvalidValue, c.Render.Math)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration where every setting defers
// to its built-in default.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{DefaultDir: ""},
		Output: OutputConfig{DefaultDir: "", Extension: ""},
		OCR:    OCRConfig{Model: "", TimeoutSeconds: 0, UploadLimitMB: 0},
		Render: RenderConfig{Style: "", Math: "", RawHTML: false, Title: ""},
		Assets: AssetsConfig{BasePath: ""},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-pdf2md/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-pdf2md", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
