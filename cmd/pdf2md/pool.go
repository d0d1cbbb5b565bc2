package main

import (
	"sync"

	pdf2md "github.com/alnah/go-pdf2md"
)

// converterPool adapts pdf2md.ConverterPool to the CLI's Pool interface.
// Acquire returns nil when converter construction fails; the batch marks
// affected jobs with ErrConverterInit and the real error is reported once
// at Close time via LastError.
type converterPool struct {
	inner *pdf2md.ConverterPool

	mu      sync.Mutex
	initErr error
}

// Compile-time check that converterPool implements Pool.
var _ Pool = (*converterPool)(nil)

// newConverterPool creates a pool adapter with the given capacity and
// converter options.
func newConverterPool(n int, opts ...pdf2md.Option) *converterPool {
	return &converterPool{inner: pdf2md.NewConverterPool(n, opts...)}
}

func (p *converterPool) Acquire() CLIConverter {
	conv, err := p.inner.Acquire()
	if err != nil {
		p.mu.Lock()
		p.initErr = err
		p.mu.Unlock()
		return nil
	}
	return conv
}

func (p *converterPool) Release(conv CLIConverter) {
	if conv == nil {
		return
	}
	if c, ok := conv.(*pdf2md.Converter); ok {
		p.inner.Release(c)
	}
}

func (p *converterPool) Size() int {
	return p.inner.Size()
}

// LastError returns the most recent converter construction failure.
func (p *converterPool) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initErr
}

// Close releases all browser resources held by pooled converters.
func (p *converterPool) Close() error {
	return p.inner.Close()
}
