package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	handbook "github.com/alnah/go-handbook"
)

const testConfig = `site:
  title: Test Handbook
outline:
  - title: Introduction
    content: intro.md
  - title: Guides
    children:
      - title: Rendering
        content: guides/render.md
`

var testContent = map[string]string{
	"content/intro.md":         "# Introduction\n\nWelcome. See [rendering](guides/render.md#setup).\n",
	"content/guides/render.md": "# Rendering\n\n## Setup\n\nBack [home](../intro.md).\n\n```go\nfmt.Println(1)\n```\n",
}

// setupProject writes a config and its content to a temp directory and
// returns the config path. extra files override the defaults; an empty
// value deletes the file.
func setupProject(t *testing.T, extra map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{"handbook.yaml": testConfig}
	for k, v := range testContent {
		files[k] = v
	}
	for k, v := range extra {
		files[k] = v
	}
	for name, content := range files {
		if content == "" {
			continue
		}
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return filepath.Join(dir, "handbook.yaml")
}

type testEnv struct {
	*Environment
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	exporter *fakeExporter
}

// newTestEnv returns an environment that sees only vars.
func newTestEnv(vars map[string]string) *testEnv {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	exp := &fakeExporter{data: []byte("%PDF-1.7 fake")}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	environ := make([]string, 0, len(keys))
	for _, k := range keys {
		environ = append(environ, k+"="+vars[k])
	}

	return &testEnv{
		Environment: &Environment{
			Now:     func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
			Stdout:  stdout,
			Stderr:  stderr,
			Getenv:  func(k string) string { return vars[k] },
			Environ: func() []string { return environ },
			NewExporter: func(timeout time.Duration) Exporter {
				exp.timeout = timeout
				return exp
			},
		},
		stdout:   stdout,
		stderr:   stderr,
		exporter: exp,
	}
}

func (e *testEnv) run(args ...string) int {
	return runMain(context.Background(), append([]string{"handbook"}, args...), e.Environment)
}

type fakeExporter struct {
	data    []byte
	err     error
	timeout time.Duration
	opts    handbook.PDFOptions
	pages   int
	closed  bool
}

func (f *fakeExporter) ExportPDF(_ context.Context, site *handbook.Site, opts handbook.PDFOptions) ([]byte, error) {
	f.opts = opts
	f.pages = len(site.Pages)
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func (f *fakeExporter) Close() error {
	f.closed = true
	return nil
}
