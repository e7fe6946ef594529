package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	handbook "github.com/alnah/go-handbook"
	"github.com/alnah/go-handbook/internal/fileutil"
)

// ErrWritePDF indicates the PDF could not be written.
var ErrWritePDF = errors.New("failed to write PDF file")

// runPDF builds the site and prints it to one PDF.
func runPDF(ctx context.Context, f *pdfFlags, env *Environment) error {
	logger := loggerFromContext(ctx)

	p, err := openProject(f.site, env)
	if err != nil {
		return err
	}

	opts := handbook.PDFOptions{PageSize: p.cfg.PDF.PageSize, Margin: p.cfg.PDF.Margin}
	if f.pageSize != "" {
		opts.PageSize = f.pageSize
	}
	if f.marginSet {
		opts.Margin = f.margin
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	timeout := p.cfg.PDFTimeout()
	if f.timeout != "" {
		d, err := time.ParseDuration(f.timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: invalid timeout %q", ErrUsage, f.timeout)
		}
		timeout = d
	}

	out := f.output
	if out == "" {
		out = filepath.Join(p.cfg.OutputDir(), pdfFileName(p.cfg.Site.Title))
	}

	prog := newProgress(logger)
	site, err := p.build(ctx, logger)
	if err != nil {
		return err
	}

	exporter := env.NewExporter(timeout)
	defer func() {
		if err := exporter.Close(); err != nil {
			logger.Warn("closing browser", "err", err)
		}
	}()

	data, err := exporter.ExportPDF(ctx, site, opts)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFile(out, data); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	prog.done(fmt.Sprintf("Wrote %s (%s, %d pages)", out, humanize.Bytes(uint64(len(data))), len(site.Pages)))
	return nil
}

// pdfFileName derives a file name from the site title:
// "choo handbook" -> "choo-handbook.pdf".
func pdfFileName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, handbook.Slug(strings.TrimSpace(title)))
	name = strings.Trim(name, "-")
	if name == "" {
		name = "handbook"
	}
	return name + ".pdf"
}
