package handbook

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-handbook/internal/fileutil"
	"github.com/alnah/go-handbook/internal/outline"
	"github.com/alnah/go-handbook/internal/pipeline"
)

// StylesheetPath is where the site stylesheet is published next to the pages.
const StylesheetPath = "/_handbook/style.css"

// Page is one rendered leaf of the outline.
type Page struct {
	Path     string     // route, e.g. "/guides/rendering"
	Ref      ContentRef // content it was rendered from
	Title    string     // outline title
	Heading  string     // text of the document's first block
	Sections int        // prose/code rows after the title
	HTML     string

	article *pipeline.Article
}

// Site is the result of a build.
type Site struct {
	Title  string
	Routes []Route
	Nav    []NavEntry
	Pages  map[string]*Page
	CSS    string

	info     pipeline.SiteInfo
	renderer *pipeline.PageRenderer
}

// WriteStats summarizes Site.WriteTo.
type WriteStats struct {
	Files int
	Bytes int64
}

// Page returns the page served at p.
func (s *Site) Page(p string) (*Page, bool) {
	page, ok := s.Pages[p]
	return page, ok
}

// Leaves returns the pages in navigation order.
func (s *Site) Leaves() []*Page {
	leaves := outline.Leaves(s.Routes)
	out := make([]*Page, len(leaves))
	for i, r := range leaves {
		out[i] = r.View
	}
	return out
}

// Paths returns the page paths in navigation order.
func (s *Site) Paths() []string {
	leaves := s.Leaves()
	out := make([]string, len(leaves))
	for i, p := range leaves {
		out[i] = p.Path
	}
	return out
}

// OutputFile maps a page path to the file serving it in a static site:
// "/" -> "index.html", "/a/b" -> "a/b/index.html". The result uses the
// OS separator and never leaves the output directory.
func OutputFile(pagePath string) (string, error) {
	rel := strings.TrimPrefix(pagePath, "/")
	if rel == "" {
		return "index.html", nil
	}
	for _, seg := range strings.Split(rel, "/") {
		if seg == "" || seg == "." || seg == ".." || strings.ContainsAny(seg, "\\\x00") {
			return "", fmt.Errorf("%w: %q", ErrInvalidPagePath, pagePath)
		}
	}
	file := filepath.Join(filepath.FromSlash(rel), "index.html")
	if !filepath.IsLocal(file) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPagePath, pagePath)
	}
	return file, nil
}

// WriteTo writes every page and the stylesheet under dir. Paths are checked
// before anything is written.
func (s *Site) WriteTo(dir string) (WriteStats, error) {
	var stats WriteStats

	files := make(map[string][]byte, len(s.Pages)+1)
	for _, p := range s.Leaves() {
		name, err := OutputFile(p.Path)
		if err != nil {
			return stats, err
		}
		files[name] = []byte(p.HTML)
	}
	files[filepath.FromSlash(strings.TrimPrefix(StylesheetPath, "/"))] = []byte(s.CSS)

	for name, data := range files {
		if err := fileutil.WriteFile(filepath.Join(dir, name), data); err != nil {
			return stats, fmt.Errorf("%w: %v", ErrWriteSite, err)
		}
		stats.Files++
		stats.Bytes += int64(len(data))
	}
	return stats, nil
}

// PrintHTML renders every page, in navigation order, into one document
// meant for printing.
func (s *Site) PrintHTML(ctx context.Context) (string, error) {
	if s.renderer == nil {
		return "", fmt.Errorf("%w: site has no renderer", ErrPageRender)
	}

	pages := s.Leaves()
	articles := make([]*pipeline.Article, 0, len(pages))
	for _, p := range pages {
		if p.article != nil {
			articles = append(articles, p.article)
		}
	}

	return s.renderer.RenderPrint(ctx, &pipeline.PrintData{
		Site:     s.info,
		Articles: articles,
		CSS:      pipeline.SafeCSS(s.CSS),
	})
}
