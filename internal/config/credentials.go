package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// credentialsFileName is the JSON file holding the stored API key.
const credentialsFileName = "credentials.json"

// appConfigDirName is the subdirectory under the user config directory.
const appConfigDirName = "go-pdf2md"

// Sentinel errors for credential operations.
var (
	// ErrCredentialsCorrupt indicates the credentials file exists but cannot
	// be parsed. Callers should warn and continue without a stored key.
	ErrCredentialsCorrupt = errors.New("credentials file is corrupt")

	// ErrNoConfigDir indicates the user config directory cannot be determined.
	ErrNoConfigDir = errors.New("cannot determine user config directory")
)

// Credentials holds the stored OCR service API key.
type Credentials struct {
	APIKey string `json:"api_key"`
}

// DefaultCredentialsPath returns the standard location of the credentials
// file: {UserConfigDir}/go-pdf2md/credentials.json.
func DefaultCredentialsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoConfigDir, err)
	}
	return filepath.Join(dir, appConfigDirName, credentialsFileName), nil
}

// LoadCredentials reads the credentials file at path. A missing file is not
// an error and returns empty credentials. A file that exists but cannot be
// parsed returns ErrCredentialsCorrupt so callers can warn and continue.
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from UserConfigDir or an explicit flag
	if err != nil {
		if os.IsNotExist(err) {
			return &Credentials{}, nil
		}
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCredentialsCorrupt, path, err)
	}

	return &creds, nil
}

// SaveCredentials writes the credentials file at path with owner-only
// permissions, creating parent directories as needed.
func SaveCredentials(path string, creds *Credentials) error {
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating credentials directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing credentials file: %w", err)
	}

	return nil
}
