package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	handbook "github.com/alnah/go-handbook"
	"github.com/alnah/go-handbook/internal/server"
)

// ---------------------------------------------------------------------------
// TestRunMain_Dispatch
// ---------------------------------------------------------------------------

func TestRunMain_Dispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		args   []string
		code   int
		stdout string
		stderr string
	}{
		{"no command", nil, ExitUsage, "", "Usage: handbook"},
		{"unknown command", []string{"publish"}, ExitUsage, "", `unknown command "publish"`},
		{"version", []string{"version"}, ExitSuccess, "go-handbook " + Version, ""},
		{"help", []string{"help"}, ExitSuccess, "Commands:", ""},
		{"help for command", []string{"help", "serve"}, ExitSuccess, "--no-watch", ""},
		{"help for unknown command", []string{"help", "nope"}, ExitUsage, "", "Unknown command: nope"},
		{"command help flag", []string{"build", "-h"}, ExitSuccess, "", "Usage: handbook build"},
		{"bad flag", []string{"build", "--nope"}, ExitUsage, "", "unknown flag"},
		{"positional argument", []string{"check", "extra"}, ExitUsage, "", `unexpected argument "extra"`},
		{"too many workers", []string{"build", "--workers", "99"}, ExitUsage, "", "invalid worker count"},
		{"bad port", []string{"serve", "--port", "70000"}, ExitUsage, "", "out of range"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(nil)
			assert.Equal(t, tt.code, env.run(tt.args...))
			assert.Contains(t, env.stdout.String(), tt.stdout)
			assert.Contains(t, env.stderr.String(), tt.stderr)
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuild
// ---------------------------------------------------------------------------

func TestBuild_WritesSite(t *testing.T) {
	t.Parallel()

	cfg := setupProject(t, nil)
	env := newTestEnv(nil)

	require.Equal(t, ExitSuccess, env.run("build", "--config", cfg), env.stderr.String())

	public := filepath.Join(filepath.Dir(cfg), "public")
	for _, name := range []string{"index.html", "guides/rendering/index.html", "_handbook/style.css"} {
		assert.FileExists(t, filepath.Join(public, filepath.FromSlash(name)))
	}

	index, err := os.ReadFile(filepath.Join(public, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), `href="/guides/rendering#setup"`)

	assert.Contains(t, env.stderr.String(), "Rendered 2 pages")
	assert.Contains(t, env.stderr.String(), "Wrote 3 files")
}

func TestBuild_OutputFlag(t *testing.T) {
	t.Parallel()

	cfg := setupProject(t, nil)
	out := filepath.Join(t.TempDir(), "site")
	env := newTestEnv(nil)

	require.Equal(t, ExitSuccess, env.run("build", "-c", cfg, "-o", out, "-q"), env.stderr.String())
	assert.FileExists(t, filepath.Join(out, "index.html"))
	assert.NoDirExists(t, filepath.Join(filepath.Dir(cfg), "public"))
	assert.Empty(t, env.stderr.String(), "quiet hides progress")
}

func TestBuild_EnvironmentOverrides(t *testing.T) {
	t.Parallel()

	cfg := setupProject(t, nil)
	out := filepath.Join(t.TempDir(), "from-env")
	env := newTestEnv(map[string]string{
		"HANDBOOK_CONFIG":     cfg,
		"HANDBOOK_OUTPUT_DIR": out,
		"HANDBOOK_HIGHLIGHT":  "monokai",
		"HANDBOOK_TYPO":       "1",
	})

	require.Equal(t, ExitSuccess, env.run("build"), env.stderr.String())
	assert.FileExists(t, filepath.Join(out, "index.html"))
	assert.Contains(t, env.stderr.String(), "HANDBOOK_TYPO")
}

func TestBuild_Verbose(t *testing.T) {
	t.Parallel()

	cfg := setupProject(t, nil)
	env := newTestEnv(nil)

	require.Equal(t, ExitSuccess, env.run("build", "-c", cfg, "-v"))
	assert.Contains(t, env.stderr.String(), "intro.md")
	assert.Contains(t, env.stderr.String(), "workers")
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		extra  map[string]string
		args   []string
		code   int
		stderr string
	}{
		{
			name:   "missing config",
			args:   []string{"--config", filepath.Join("does", "not", "exist.yaml")},
			code:   ExitUsage,
			stderr: "hint: use --config",
		},
		{
			name:   "missing content",
			extra:  map[string]string{"content/guides/render.md": ""},
			code:   ExitIO,
			stderr: "guides/render.md",
		},
		{
			name:   "empty document",
			extra:  map[string]string{"content/intro.md": "\n\n"},
			code:   ExitUsage,
			stderr: "document has no content",
		},
		{
			name:   "malformed outline",
			extra:  map[string]string{"handbook.yaml": "outline:\n  - title: Lonely\n"},
			code:   ExitUsage,
			stderr: "hint: every outline entry",
		},
		{
			name:   "unknown field",
			extra:  map[string]string{"handbook.yaml": testConfig + "extra: true\n"},
			code:   ExitUsage,
			stderr: "extra",
		},
		{
			name:   "unknown highlight style",
			args:   []string{"--highlight", "no-such-style"},
			code:   ExitUsage,
			stderr: `unknown style "no-such-style"`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := setupProject(t, tt.extra)
			args := append([]string{"build", "-q"}, tt.args...)
			if len(tt.args) == 0 || tt.args[0] != "--config" {
				args = append(args, "--config", cfg)
			}

			env := newTestEnv(nil)
			assert.Equal(t, tt.code, env.run(args...))
			assert.Contains(t, env.stderr.String(), tt.stderr)
		})
	}
}

// ---------------------------------------------------------------------------
// TestRoutesAndNav
// ---------------------------------------------------------------------------

func TestRoutes(t *testing.T) {
	t.Parallel()

	cfg := setupProject(t, nil)
	env := newTestEnv(nil)

	require.Equal(t, ExitSuccess, env.run("routes", "-c", cfg))
	out := env.stdout.String()
	assert.Contains(t, out, "PATH")
	assert.Regexp(t, `(?m)^/\s+Introduction\s+intro\.md$`, out)
	assert.Regexp(t, `(?m)^#guides\s+Guides\s+-$`, out)
	assert.Regexp(t, `(?m)^  /guides/rendering\s+Rendering\s+guides/render\.md$`, out)
}

func TestRoutes_JSON(t *testing.T) {
	t.Parallel()

	cfg := setupProject(t, nil)
	env := newTestEnv(nil)

	require.Equal(t, ExitSuccess, env.run("routes", "-c", cfg, "--json"))

	var rows []routeInfo
	require.NoError(t, json.Unmarshal(env.stdout.Bytes(), &rows))
	assert.Equal(t, []routeInfo{
		{Path: "/", Title: "Introduction", Content: "intro.md"},
		{Path: "#guides", Title: "Guides", Section: true},
		{Path: "/guides/rendering", Title: "Rendering", Content: "guides/render.md", Depth: 1},
	}, rows)
}

func TestNav(t *testing.T) {
	t.Parallel()

	cfg := setupProject(t, nil)
	env := newTestEnv(nil)

	require.Equal(t, ExitSuccess, env.run("nav", "-c", cfg))
	assert.Equal(t, "1. Introduction (/)\nGuides\n  2. Rendering (/guides/rendering)\n", env.stdout.String())
}

// ---------------------------------------------------------------------------
// TestCheck
// ---------------------------------------------------------------------------

func TestCheck(t *testing.T) {
	t.Parallel()

	t.Run("clean", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(nil)
		assert.Equal(t, ExitSuccess, env.run("check", "-c", setupProject(t, nil)))
		assert.Empty(t, env.stdout.String())
		assert.Contains(t, env.stderr.String(), "No broken links")
	})

	t.Run("broken", func(t *testing.T) {
		t.Parallel()
		cfg := setupProject(t, map[string]string{
			"content/intro.md": "# Introduction\n\n[gone](missing.md) [anchor](#nope)\n",
		})
		env := newTestEnv(nil)
		assert.Equal(t, ExitGeneral, env.run("check", "-c", cfg, "-q"))
		assert.Equal(t, "/: unresolved link \"missing.md\"\n/: missing anchor \"#nope\"\n", env.stdout.String())
		assert.Contains(t, env.stderr.String(), "broken links: 2 found")
	})
}

// ---------------------------------------------------------------------------
// TestPDF
// ---------------------------------------------------------------------------

func TestPDF_WritesFile(t *testing.T) {
	t.Parallel()

	cfg := setupProject(t, nil)
	env := newTestEnv(nil)

	require.Equal(t, ExitSuccess, env.run("pdf", "-c", cfg, "--page-size", "letter", "--margin", "1", "-t", "2m"), env.stderr.String())

	out := filepath.Join(filepath.Dir(cfg), "public", "test-handbook.pdf")
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 fake", string(data))

	assert.Equal(t, handbook.PDFOptions{PageSize: "letter", Margin: 1}, env.exporter.opts)
	assert.Equal(t, 2*time.Minute, env.exporter.timeout)
	assert.Equal(t, 2, env.exporter.pages)
	assert.True(t, env.exporter.closed)
}

func TestPDF_ConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := setupProject(t, map[string]string{
		"handbook.yaml": testConfig + "pdf:\n  pageSize: legal\n  margin: 0.75\n  timeout: 90s\n",
	})
	out := filepath.Join(t.TempDir(), "book.pdf")
	env := newTestEnv(nil)

	require.Equal(t, ExitSuccess, env.run("pdf", "-c", cfg, "-o", out, "-q"), env.stderr.String())
	assert.FileExists(t, out)
	assert.Equal(t, handbook.PDFOptions{PageSize: "legal", Margin: 0.75}, env.exporter.opts)
	assert.Equal(t, 90*time.Second, env.exporter.timeout)
}

func TestPDF_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		args   []string
		expErr error
		code   int
		stderr string
	}{
		{"bad page size", []string{"--page-size", "a3"}, nil, ExitUsage, "page size"},
		{"bad margin", []string{"--margin", "9"}, nil, ExitUsage, "margin"},
		{"bad timeout", []string{"--timeout", "soon"}, nil, ExitUsage, "invalid timeout"},
		{"browser missing", nil, fmt.Errorf("%w: no chrome", handbook.ErrBrowserConnect), ExitBrowser, "handbook doctor"},
		{"print failed", nil, fmt.Errorf("%w: boom", handbook.ErrPDFGeneration), ExitBrowser, "timeout"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(nil)
			env.exporter.err = tt.expErr

			args := append([]string{"pdf", "-q", "-c", setupProject(t, nil)}, tt.args...)
			assert.Equal(t, tt.code, env.run(args...))
			assert.Contains(t, env.stderr.String(), tt.stderr)
		})
	}
}

func TestPDFFileName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"choo handbook":  "choo-handbook.pdf",
		"Test Handbook":  "test-handbook.pdf",
		"  ../etc/x  ":   "etc-x.pdf",
		"":               "handbook.pdf",
		"Guide: v2.0":    "guide--v2-0.pdf",
		"Überblick 2026": "berblick-2026.pdf",
	}
	for title, want := range tests {
		assert.Equal(t, want, pdfFileName(title), title)
	}
}

// ---------------------------------------------------------------------------
// TestServe
// ---------------------------------------------------------------------------

func TestServe_StopsOnCancel(t *testing.T) {
	t.Parallel()

	cfg := setupProject(t, nil)
	env := newTestEnv(nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	code := runMain(ctx, []string{"handbook", "serve", "-c", cfg, "--port", "0", "-q"}, env.Environment)
	assert.Equal(t, ExitSuccess, code, env.stderr.String())
}

func TestServe_MissingContentDir(t *testing.T) {
	t.Parallel()

	cfg := setupProject(t, nil)
	env := newTestEnv(nil)

	code := env.run("serve", "-c", cfg, "--content", filepath.Join(t.TempDir(), "nope"), "-q")
	assert.Equal(t, ExitIO, code)
}

func TestRebuild(t *testing.T) {
	t.Parallel()

	cfg := setupProject(t, nil)
	env := newTestEnv(nil)
	logger := newLogger(env.stderr, levelFor(false, false))

	p, err := openProject(siteFlags{common: commonFlags{config: cfg}}, env.Environment)
	require.NoError(t, err)
	site, err := p.build(context.Background(), logger)
	require.NoError(t, err)

	srv, err := server.New(site, logger)
	require.NoError(t, err)

	// An outline edit adds a page.
	dir := filepath.Dir(cfg)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "content", "faq.md"), []byte("# FAQ\n\nAnswers.\n"), 0o644))
	require.NoError(t, os.WriteFile(cfg, []byte(testConfig+"  - title: FAQ\n    content: faq.md\n"), 0o644))

	rebuild(context.Background(), p, srv, logger)
	_, ok := srv.Site().Page("/faq")
	assert.True(t, ok)
	assert.Contains(t, env.stderr.String(), "Rebuilt 3 pages")

	// A broken edit keeps the last good site.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "content", "faq.md"), nil, 0o644))
	rebuild(context.Background(), p, srv, logger)
	_, ok = srv.Site().Page("/faq")
	assert.True(t, ok)
	assert.Contains(t, env.stderr.String(), "rebuild failed")

	require.NoError(t, os.WriteFile(cfg, []byte("site: [oops"), 0o644))
	rebuild(context.Background(), p, srv, logger)
	assert.Contains(t, env.stderr.String(), "config reload failed")
}

func TestWatcherFor(t *testing.T) {
	t.Parallel()

	cfg := setupProject(t, map[string]string{
		"handbook.yaml": testConfig + "style:\n  assets: theme\n",
	})
	env := newTestEnv(nil)
	p, err := openProject(siteFlags{common: commonFlags{config: cfg}}, env.Environment)
	require.NoError(t, err)

	w := watcherFor(p, newLogger(env.stderr, levelFor(true, false)), func(context.Context) {})
	dir := filepath.Dir(cfg)
	assert.Equal(t, []string{filepath.Join(dir, "content"), filepath.Join(dir, "theme")}, w.Dirs)
	assert.Equal(t, []string{cfg}, w.Files)
}

func TestVerboseRequested(t *testing.T) {
	t.Parallel()

	assert.True(t, verboseRequested([]string{"build", "-v"}))
	assert.True(t, verboseRequested([]string{"serve", "--verbose"}))
	assert.False(t, verboseRequested([]string{"build", "-q"}))
	assert.False(t, verboseRequested([]string{"build", "--", "-v"}))
}
