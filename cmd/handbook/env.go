package main

import (
	"context"
	"io"
	"os"
	"time"

	handbook "github.com/alnah/go-handbook"
)

// Exporter renders a site to PDF.
type Exporter interface {
	ExportPDF(ctx context.Context, site *handbook.Site, opts handbook.PDFOptions) ([]byte, error)
	Close() error
}

var _ Exporter = (*handbook.PDFExporter)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	Getenv      func(string) string
	Environ     func() []string
	NewExporter func(timeout time.Duration) Exporter
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		NewExporter: func(timeout time.Duration) Exporter {
			return handbook.NewPDFExporter(timeout)
		},
	}
}
