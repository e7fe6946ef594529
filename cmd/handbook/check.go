package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-handbook/internal/linkcheck"
)

// ErrBrokenLinks indicates check found dangling links.
var ErrBrokenLinks = errors.New("broken links")

// runCheck builds the site in memory and reports broken links on stdout.
func runCheck(ctx context.Context, f *siteFlags, env *Environment) error {
	logger := loggerFromContext(ctx)

	p, err := openProject(*f, env)
	if err != nil {
		return err
	}
	site, err := p.build(ctx, logger)
	if err != nil {
		return err
	}

	problems, err := linkcheck.Check(site)
	if err != nil {
		return err
	}
	for _, pr := range problems {
		fmt.Fprintln(env.Stdout, pr)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %d found", ErrBrokenLinks, len(problems))
	}
	logger.Info("No broken links", "pages", len(site.Pages))
	return nil
}
