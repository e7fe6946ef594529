package main

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-handbook/internal/server"
)

// runServe builds the site, serves it and, unless --no-watch is given,
// rebuilds it when content, assets or the config change.
func runServe(ctx context.Context, f *serveFlags, env *Environment) error {
	logger := loggerFromContext(ctx)

	p, err := openProject(f.site, env)
	if err != nil {
		return err
	}
	prog := newProgress(logger)
	site, err := p.build(ctx, logger)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d pages", len(site.Pages)))

	srv, err := server.New(site, logger)
	if err != nil {
		return err
	}
	addr := net.JoinHostPort(f.host, strconv.Itoa(f.port))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(gctx, addr)
	})
	if !f.noWatch {
		w := watcherFor(p, logger, func(ctx context.Context) {
			rebuild(ctx, p, srv, logger)
		})
		g.Go(func() error {
			return w.Run(gctx)
		})
	}
	return g.Wait()
}

// watcherFor watches the content and asset directories and the config file.
func watcherFor(p *project, logger *log.Logger, rebuild func(context.Context)) *server.Watcher {
	w := &server.Watcher{
		Dirs:    []string{p.cfg.ContentDir()},
		Logger:  logger,
		Rebuild: rebuild,
	}
	if dir := p.cfg.AssetsDir(); dir != "" {
		w.Dirs = append(w.Dirs, dir)
	}
	if path := p.cfg.Path(); path != "" {
		w.Files = append(w.Files, path)
	}
	return w
}

// rebuild reloads the config and swaps in a fresh site. On failure the
// last good site stays online.
func rebuild(ctx context.Context, p *project, srv *server.Server, logger *log.Logger) {
	prog := newProgress(logger)
	if err := p.reload(); err != nil {
		logger.Error("config reload failed; serving the last good build", "err", err)
		return
	}
	site, err := p.build(ctx, logger)
	if err != nil {
		if ctx.Err() == nil {
			logger.Error("rebuild failed; serving the last good build", "err", err)
		}
		return
	}
	if err := srv.Swap(site); err != nil {
		logger.Error("swap failed", "err", err)
		return
	}
	prog.done(fmt.Sprintf("Rebuilt %d pages", len(site.Pages)))
}
