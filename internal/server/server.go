// Package server previews a built handbook over HTTP.
//
// The router is rebuilt from the site's route table on every Swap, so pages
// added or renamed in the outline show up after a rebuild without restarting
// the server.
package server

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	handbook "github.com/alnah/go-handbook"
	"github.com/alnah/go-handbook/internal/outline"
)

// ErrNilSite is returned when a nil site is served.
var ErrNilSite = errors.New("server: nil site")

// ShutdownTimeout bounds graceful shutdown once the serve context is done.
const ShutdownTimeout = 5 * time.Second

// Server serves the pages of a site. It is safe for concurrent use.
type Server struct {
	state  atomic.Pointer[state]
	logger *log.Logger
}

type state struct {
	site    *handbook.Site
	handler http.Handler
}

// New returns a server for site. A nil logger discards request logs.
func New(site *handbook.Site, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{logger: logger}
	if err := s.Swap(site); err != nil {
		return nil, err
	}
	return s, nil
}

// Swap replaces the served site. Requests in flight finish on the old one.
func (s *Server) Swap(site *handbook.Site) error {
	if site == nil {
		return ErrNilSite
	}
	s.state.Store(&state{site: site, handler: s.router(site)})
	return nil
}

// Site returns the site currently served.
func (s *Server) Site() *handbook.Site {
	return s.state.Load().site
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.state.Load().handler.ServeHTTP(w, r)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	}
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}
	s.logger.Info("serving handbook", "url", "http://"+ln.Addr().String())
	return s.Serve(ctx, ln)
}

func (s *Server) router(site *handbook.Site) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.GetHead)
	r.Use(middleware.StripSlashes)

	for _, page := range site.Leaves() {
		// Titles may produce chi pattern characters; those pages are
		// served by the lookup in notFound instead.
		if strings.ContainsAny(page.Path, "{}*") {
			continue
		}
		r.Get(page.Path, pageHandler(page))
	}
	r.Get(handbook.StylesheetPath, stylesheetHandler(site.CSS))
	r.NotFound(notFoundHandler(site))
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})
	return r
}

func pageHandler(page *handbook.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writePage(w, http.StatusOK, page.HTML)
	}
}

func stylesheetHandler(css string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = io.WriteString(w, css)
	}
}

func notFoundHandler(site *handbook.Site) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path
		if len(p) > 1 {
			p = strings.TrimSuffix(p, "/")
		}
		if page, ok := site.Page(p); ok {
			writePage(w, http.StatusOK, page.HTML)
			return
		}
		writePage(w, http.StatusNotFound, notFoundPage(site, r.URL.Path))
	}
}

func notFoundPage(site *handbook.Site, requested string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>Not found</title>")
	fmt.Fprintf(&b, "<link rel=\"stylesheet\" href=\"%s\"></head>", handbook.StylesheetPath)
	b.WriteString("<body class=\"pa4\"><h1 class=\"f2\">Page not found</h1>")
	fmt.Fprintf(&b, "<p class=\"f4 lh-copy\">No page at <code>%s</code>. Pages of %s:</p><ul>",
		html.EscapeString(requested), html.EscapeString(site.Title))
	for _, page := range site.Leaves() {
		fmt.Fprintf(&b, "<li class=\"mt1\"><a class=\"black link underline\" href=\"%s\">%s</a></li>",
			html.EscapeString(outline.Href(page.Path)), html.EscapeString(page.Title))
	}
	b.WriteString("</ul></body></html>\n")
	return b.String()
}

func writePage(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// requestLogger logs one debug line per request.
func requestLogger(l *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			l.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"took", time.Since(start).Round(time.Microsecond),
			)
		})
	}
}
