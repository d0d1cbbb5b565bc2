package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-pdf2md/internal/assets"
	"github.com/alnah/go-pdf2md/internal/config"
)

// testEnv returns an Environment writing to buffers.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	env := &Environment{
		Now:         func() time.Time { return time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC) },
		Stdin:       strings.NewReader(""),
		Stdout:      stdout,
		Stderr:      stderr,
		AssetLoader: assets.NewEmbeddedLoader(),
		Config:      config.DefaultConfig(),
	}
	return env, stdout, stderr
}

func TestRunMain_NoArgs(t *testing.T) {
	env, _, stderr := testEnv()

	code := runMain([]string{"pdf2md"}, env)
	if code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "Usage: pdf2md") {
		t.Error("usage should be printed to stderr")
	}
}

func TestRunMain_UnknownCommand(t *testing.T) {
	env, _, stderr := testEnv()

	code := runMain([]string{"pdf2md", "bogus"}, env)
	if code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "Unknown command: bogus") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRunMain_Version(t *testing.T) {
	for _, alias := range []string{"version", "--version", "-V"} {
		env, stdout, _ := testEnv()

		code := runMain([]string{"pdf2md", alias}, env)
		if code != ExitSuccess {
			t.Errorf("%s: exit code = %d", alias, code)
		}
		if !strings.Contains(stdout.String(), "pdf2md") || !strings.Contains(stdout.String(), Version) {
			t.Errorf("%s: stdout = %q", alias, stdout.String())
		}
	}
}

func TestRunMain_Help(t *testing.T) {
	env, stdout, _ := testEnv()

	code := runMain([]string{"pdf2md", "help", "convert"}, env)
	if code != ExitSuccess {
		t.Errorf("exit code = %d", code)
	}
	if !strings.Contains(stdout.String(), "pdf2md convert") {
		t.Error("convert usage should be printed")
	}
}

func TestRunMain_CompletionUnsupportedShell(t *testing.T) {
	env, _, stderr := testEnv()

	code := runMain([]string{"pdf2md", "completion", "tcsh"}, env)
	if code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "unsupported shell") {
		t.Errorf("stderr = %q", stderr.String())
	}
}
