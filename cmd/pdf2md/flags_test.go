package main

import (
	"testing"
)

func TestParseConvertFlags(t *testing.T) {
	t.Parallel()

	flags, args, err := parseConvertFlags([]string{
		"-o", "out",
		"--format", "txt",
		"--html",
		"--pdf",
		"--open",
		"--api-key", "sk-123",
		"--model", "mistral-ocr-2505",
		"-t", "45s",
		"--math", "mathml",
		"--style", "default",
		"--no-style",
		"--raw-html",
		"-w", "3",
		"-q",
		"doc.pdf", "more.pdf",
	})
	if err != nil {
		t.Fatalf("parseConvertFlags: %v", err)
	}

	if flags.out.output != "out" || flags.out.format != "txt" {
		t.Errorf("output flags = %+v", flags.out)
	}
	if !flags.out.html || !flags.out.pdf || !flags.out.open {
		t.Errorf("bool output flags = %+v", flags.out)
	}
	if flags.ocr.apiKey != "sk-123" || flags.ocr.model != "mistral-ocr-2505" || flags.ocr.timeout != "45s" {
		t.Errorf("ocr flags = %+v", flags.ocr)
	}
	if flags.render.math != "mathml" || flags.render.style != "default" || !flags.render.noStyle || !flags.render.rawHTML {
		t.Errorf("render flags = %+v", flags.render)
	}
	if flags.workers != 3 || !flags.common.quiet {
		t.Errorf("workers = %d, quiet = %v", flags.workers, flags.common.quiet)
	}
	if len(args) != 2 || args[0] != "doc.pdf" {
		t.Errorf("positional args = %v", args)
	}
}

func TestParseConvertFlags_UnknownFlag(t *testing.T) {
	t.Parallel()

	_, _, err := parseConvertFlags([]string{"--bogus"})
	if err == nil {
		t.Fatal("unknown flag should fail")
	}
}

func TestParseConvertFlags_InterspersedArgs(t *testing.T) {
	t.Parallel()

	flags, args, err := parseConvertFlags([]string{"doc.pdf", "-v", "--format", "md"})
	if err != nil {
		t.Fatalf("parseConvertFlags: %v", err)
	}
	if !flags.common.verbose {
		t.Error("verbose should be set")
	}
	if len(args) != 1 || args[0] != "doc.pdf" {
		t.Errorf("positional args = %v", args)
	}
}
