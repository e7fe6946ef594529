package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
)

// runBuild renders the site and writes it to the output directory.
func runBuild(ctx context.Context, f *buildFlags, env *Environment) error {
	logger := loggerFromContext(ctx)

	p, err := openProject(f.site, env)
	if err != nil {
		return err
	}
	out := p.cfg.OutputDir()
	if f.output != "" {
		out = absPath(f.output)
	}

	prog := newProgress(logger)
	site, err := p.build(ctx, logger)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d pages", len(site.Pages)))

	prog = newProgress(logger)
	stats, err := site.WriteTo(out)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Wrote %d files (%s) to %s", stats.Files, humanize.Bytes(uint64(stats.Bytes)), out)) // #nosec G115 -- byte counts are non-negative
	return nil
}
