package handbook

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-handbook/internal/assets"
	"github.com/alnah/go-handbook/internal/layout"
	"github.com/alnah/go-handbook/internal/outline"
	"github.com/alnah/go-handbook/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.Preprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
)

// Input is what a build consumes: the outline and where its content lives.
type Input struct {
	Outline []Node
	Loader  ContentLoader
}

// Builder turns an outline and its content into a Site.
// A Builder is safe for concurrent use.
type Builder struct {
	cfg          builderConfig
	workers      int
	css          string
	preprocessor pipeline.MarkdownPreprocessor
	converter    pipeline.HTMLConverter
	renderer     *pipeline.PageRenderer
}

// NewBuilder creates a Builder. Styles, templates and highlight CSS are
// resolved here, so a bad name fails before any content is read.
func NewBuilder(opts ...Option) (*Builder, error) {
	cfg := defaultBuilderConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	loader, err := assets.NewAssetResolver(cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	style, err := loader.LoadStyle(cfg.style)
	if err != nil {
		return nil, fmt.Errorf("loading style %q: %w", cfg.style, err)
	}
	highlight, err := assets.HighlightCSS(cfg.highlight)
	if err != nil {
		return nil, err
	}

	templates, err := loader.LoadTemplateSet(cfg.style)
	if errors.Is(err, assets.ErrTemplateSetNotFound) {
		templates, err = loader.LoadTemplateSet(assets.DefaultTemplateSetName)
	}
	if err != nil {
		return nil, fmt.Errorf("loading templates for style %q: %w", cfg.style, err)
	}

	renderer, err := pipeline.NewPageRenderer(templates.Page, templates.Print)
	if err != nil {
		return nil, fmt.Errorf("initializing %q templates: %w", templates.Name, err)
	}

	return &Builder{
		cfg:          cfg,
		workers:      ResolveWorkers(cfg.workers),
		css:          style + "\n" + highlight,
		preprocessor: &pipeline.Preprocessor{},
		converter: pipeline.NewGoldmarkConverter(
			pipeline.WithHighlightStyle(cfg.highlight),
			pipeline.WithLineNumbers(cfg.lineNumbers),
		),
		renderer: renderer,
	}, nil
}

// Workers returns how many pages the builder renders concurrently.
func (b *Builder) Workers() int {
	return b.workers
}

// Build validates the outline, derives routes and navigation, and renders
// every page. Pages render concurrently; the first failure cancels the rest
// and no Site is returned.
// Recovers from internal panics so a bad page cannot crash the caller.
func (b *Builder) Build(ctx context.Context, input Input) (site *Site, err error) {
	defer func() {
		if r := recover(); r != nil {
			site, err = nil, fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if input.Loader == nil {
		return nil, ErrNoLoader
	}
	if err := outline.Validate(input.Outline); err != nil {
		return nil, err
	}

	routes, err := outline.BuildRoutes(input.Outline, func(ref ContentRef) *Page {
		return &Page{Ref: ref}
	})
	if err != nil {
		return nil, err
	}
	nav, err := outline.BuildNav(input.Outline)
	if err != nil {
		return nil, err
	}

	leaves := outline.Leaves(routes)
	pages := make(map[string]*Page, len(leaves))
	byRef := make(map[string]string, len(leaves))
	for _, r := range leaves {
		r.View.Path = r.Path
		r.View.Title = r.Title
		pages[r.Path] = r.View
		if _, ok := byRef[string(r.Ref)]; !ok {
			byRef[string(r.Ref)] = r.Path
		}
	}
	resolve := func(ref string) (string, bool) {
		p, ok := byRef[ref]
		return outline.Href(p), ok
	}

	info := pipeline.SiteInfo{Title: b.cfg.title, Description: b.cfg.description, Lang: b.cfg.lang}
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for _, r := range leaves {
		page := r.View
		g.Go(func() (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					err = fmt.Errorf("rendering %s: internal error: %v", page.Path, rec)
				}
			}()
			return b.renderPage(gctx, input.Loader, page, nav, info, resolve)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b.cfg.logger.Debugf("rendered %d pages in %s with %d workers", len(leaves), time.Since(start).Round(time.Millisecond), b.workers)

	return &Site{
		Title:    b.cfg.title,
		Routes:   routes,
		Nav:      nav,
		Pages:    pages,
		CSS:      b.css,
		info:     info,
		renderer: b.renderer,
	}, nil
}

// renderPage runs one page through the pipeline:
// load -> preprocess -> goldmark -> parse -> rewrite links -> split -> template.
func (b *Builder) renderPage(ctx context.Context, loader ContentLoader, page *Page, nav []NavEntry, info pipeline.SiteInfo, resolve pipeline.LinkResolver) error {
	start := time.Now()

	markdown, err := loader.Load(ctx, page.Ref)
	if err != nil {
		return fmt.Errorf("loading %s: %w", page.Path, err)
	}

	markdown = b.preprocessor.PreprocessMarkdown(ctx, markdown)
	if err := ctx.Err(); err != nil {
		return err
	}

	fragment, err := b.converter.ToFragment(ctx, markdown)
	if err != nil {
		return fmt.Errorf("converting %s: %w", page.Ref, err)
	}

	root, err := layout.Parse(fragment)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", page.Ref, err)
	}
	rewritten := pipeline.RewriteContentLinks(root, path.Dir(string(page.Ref)), resolve)

	doc, err := layout.Split(root)
	if err != nil {
		return fmt.Errorf("splitting %s: %w", page.Ref, err)
	}
	article, err := pipeline.BuildArticle(doc)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", page.Ref, err)
	}

	html, err := b.renderer.Render(ctx, &pipeline.PageData{
		Site:    info,
		Title:   page.Title,
		Path:    page.Path,
		Nav:     pipeline.NavItems(nav, page.Path),
		Article: article,
		CSS:     pipeline.SafeCSS(b.css),
	})
	if err != nil {
		return fmt.Errorf("rendering %s: %w", page.Ref, err)
	}

	page.HTML = html
	page.Heading = layout.Text(doc.Title)
	page.Sections = len(article.Sections)
	page.article = article

	b.cfg.logger.Debugf("page %s from %s: %d sections, %d links rewritten (%s)",
		page.Path, page.Ref, page.Sections, rewritten, time.Since(start).Round(time.Microsecond))
	return nil
}
