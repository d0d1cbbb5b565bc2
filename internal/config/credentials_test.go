package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestDefaultCredentialsPath(t *testing.T) {
	t.Parallel()

	path, err := DefaultCredentialsPath()
	if err != nil {
		t.Skipf("cannot get user config dir: %v", err)
	}
	if !strings.Contains(path, appConfigDirName) {
		t.Errorf("path %q should contain %q", path, appConfigDirName)
	}
	if filepath.Base(path) != credentialsFileName {
		t.Errorf("path base = %q, want %q", filepath.Base(path), credentialsFileName)
	}
}

func TestLoadCredentials(t *testing.T) {
	t.Parallel()

	t.Run("missing file returns empty credentials", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		creds, err := LoadCredentials(filepath.Join(dir, "credentials.json"))
		if err != nil {
			t.Fatalf("LoadCredentials() error = %v", err)
		}
		if creds.APIKey != "" {
			t.Errorf("APIKey = %q, want empty", creds.APIKey)
		}
	})

	t.Run("valid file loads API key", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "credentials.json")
		if err := os.WriteFile(path, []byte(`{"api_key": "sk-test-key"}`), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		creds, err := LoadCredentials(path)
		if err != nil {
			t.Fatalf("LoadCredentials() error = %v", err)
		}
		if creds.APIKey != "sk-test-key" {
			t.Errorf("APIKey = %q, want %q", creds.APIKey, "sk-test-key")
		}
	})

	t.Run("corrupt JSON returns ErrCredentialsCorrupt", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "credentials.json")
		if err := os.WriteFile(path, []byte(`{"api_key": unquoted}`), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadCredentials(path)
		if !errors.Is(err, ErrCredentialsCorrupt) {
			t.Errorf("error = %v, want ErrCredentialsCorrupt", err)
		}
	})

	t.Run("corrupt error includes file path", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "credentials.json")
		if err := os.WriteFile(path, []byte("not json at all"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadCredentials(path)
		if err == nil {
			t.Fatal("expected error for corrupt file")
		}
		if !strings.Contains(err.Error(), path) {
			t.Errorf("error %q should contain path %q", err.Error(), path)
		}
	})
}

func TestSaveCredentials(t *testing.T) {
	t.Parallel()

	t.Run("save and load roundtrip", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "credentials.json")

		if err := SaveCredentials(path, &Credentials{APIKey: "sk-roundtrip"}); err != nil {
			t.Fatalf("SaveCredentials() error = %v", err)
		}

		creds, err := LoadCredentials(path)
		if err != nil {
			t.Fatalf("LoadCredentials() error = %v", err)
		}
		if creds.APIKey != "sk-roundtrip" {
			t.Errorf("APIKey = %q, want %q", creds.APIKey, "sk-roundtrip")
		}
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "nested", "deeper", "credentials.json")

		if err := SaveCredentials(path, &Credentials{APIKey: "sk-nested"}); err != nil {
			t.Fatalf("SaveCredentials() error = %v", err)
		}

		if _, err := os.Stat(path); err != nil {
			t.Errorf("saved file not found: %v", err)
		}
	})

	t.Run("file has restricted permissions", func(t *testing.T) {
		t.Parallel()
		if runtime.GOOS == "windows" {
			t.Skip("file permissions not enforced on windows")
		}

		dir := t.TempDir()
		path := filepath.Join(dir, "credentials.json")
		if err := SaveCredentials(path, &Credentials{APIKey: "sk-perms"}); err != nil {
			t.Fatalf("SaveCredentials() error = %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("file mode = %o, want 0600", perm)
		}
	})

	t.Run("overwrites existing credentials", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "credentials.json")

		if err := SaveCredentials(path, &Credentials{APIKey: "sk-old"}); err != nil {
			t.Fatalf("first save: %v", err)
		}
		if err := SaveCredentials(path, &Credentials{APIKey: "sk-new"}); err != nil {
			t.Fatalf("second save: %v", err)
		}

		creds, err := LoadCredentials(path)
		if err != nil {
			t.Fatalf("LoadCredentials() error = %v", err)
		}
		if creds.APIKey != "sk-new" {
			t.Errorf("APIKey = %q, want %q", creds.APIKey, "sk-new")
		}
	})
}
