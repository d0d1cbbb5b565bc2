package main

import (
	"testing"

	pdf2md "github.com/alnah/go-pdf2md"
)

func TestConverterPool_AcquireRelease(t *testing.T) {
	t.Parallel()

	pool := newConverterPool(2, pdf2md.WithAPIKey("k"))
	defer pool.Close()

	conv := pool.Acquire()
	if conv == nil {
		t.Fatalf("Acquire returned nil: %v", pool.LastError())
	}
	pool.Release(conv)

	if pool.Size() != 2 {
		t.Errorf("Size() = %d, want 2", pool.Size())
	}
}

func TestConverterPool_AcquireFailure(t *testing.T) {
	t.Parallel()

	// An invalid math mode makes converter construction fail.
	pool := newConverterPool(1, pdf2md.WithAPIKey("k"), pdf2md.WithMathMode("bogus"))
	defer pool.Close()

	if conv := pool.Acquire(); conv != nil {
		t.Fatal("Acquire should return nil when construction fails")
	}
	if pool.LastError() == nil {
		t.Error("LastError should report the construction failure")
	}
}

func TestConverterPool_ReleaseNil(t *testing.T) {
	t.Parallel()

	pool := newConverterPool(1, pdf2md.WithAPIKey("k"))
	defer pool.Close()

	// Must not panic; workers release whatever they acquired.
	pool.Release(nil)
}
