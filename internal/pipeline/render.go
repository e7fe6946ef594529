package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-handbook/internal/layout"
	"github.com/alnah/go-handbook/internal/outline"
)

// ErrPageRender indicates the page template failed to render.
var ErrPageRender = errors.New("page template rendering failed")

// RoleClasses maps presentation roles to the CSS classes painted on nodes.
var RoleClasses = map[layout.Role]string{
	layout.RoleTitle:       "f2 f1-l",
	layout.RoleProse:       "f4 lh-copy",
	layout.RoleLink:        "black link underline",
	layout.RoleList:        "f4 lh-copy",
	layout.RoleListItem:    "mt1",
	layout.RoleSubheading:  "f2-l f3 bt bw2",
	layout.RoleCode:        "pa3 ph4-l lh-copy",
	layout.RolePlaceholder: "dn db-l",
}

// SiteInfo holds site-wide metadata shown on every page.
type SiteInfo struct {
	Title       string
	Description string
	Lang        string
}

// NavItem is a navigation entry prepared for the template.
type NavItem struct {
	Header  bool
	Title   string
	Index   int
	URL     string
	Depth   int
	Current bool
}

// Section is one prose/code row of an article.
type Section struct {
	Prose       template.HTML
	Code        template.HTML
	Placeholder bool
}

// Article is a split document rendered to HTML snippets.
type Article struct {
	Header   template.HTML
	Sections []Section
}

// PageData is the template input for one site page.
type PageData struct {
	Site    SiteInfo
	Title   string
	Path    string
	Nav     []NavItem
	Article *Article
	CSS     template.CSS
}

// PrintData is the template input for the single printable document.
type PrintData struct {
	Site     SiteInfo
	Articles []*Article
	CSS      template.CSS
}

// NavItems prepares navigation entries for rendering, marking the link whose
// path equals current. URLs are escaped for use in href.
func NavItems(entries []outline.NavEntry, current string) []NavItem {
	items := make([]NavItem, len(entries))
	for i, e := range entries {
		items[i] = NavItem{
			Header:  e.Kind == outline.NavHeader,
			Title:   e.Title,
			Index:   e.Index,
			URL:     outline.Href(e.URL),
			Depth:   e.Depth,
			Current: e.Kind == outline.NavLink && e.URL == current,
		}
	}
	return items
}

// BuildArticle renders the pairs of doc to HTML snippets, painting each
// node's role as CSS classes. The parse tree itself is left untouched.
func BuildArticle(doc *layout.Document) (*Article, error) {
	header, err := renderNodes(doc.Pairs[0].Prose, doc.Roles)
	if err != nil {
		return nil, err
	}

	article := &Article{Header: header}
	for _, p := range doc.Pairs[1:] {
		prose, err := renderNodes(p.Prose, doc.Roles)
		if err != nil {
			return nil, err
		}
		code, err := renderNodes([]*html.Node{p.Code}, doc.Roles)
		if err != nil {
			return nil, err
		}
		article.Sections = append(article.Sections, Section{
			Prose:       prose,
			Code:        code,
			Placeholder: doc.IsPlaceholder(p),
		})
	}
	return article, nil
}

// renderNodes renders annotated copies of nodes.
func renderNodes(nodes []*html.Node, roles layout.Roles) (template.HTML, error) {
	var b strings.Builder
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if err := html.Render(&b, annotate(n, roles)); err != nil {
			return "", fmt.Errorf("%w: %v", ErrPageRender, err)
		}
	}
	return template.HTML(b.String()), nil // #nosec G203 -- rendered from goldmark output without raw HTML
}

// annotate deep-copies n, adding the classes of each node's role.
func annotate(n *html.Node, roles layout.Roles) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	if cls := RoleClasses[roles.Of(n)]; cls != "" {
		c.Attr = addClass(c.Attr, cls)
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.AppendChild(annotate(ch, roles))
	}
	return c
}

func addClass(attrs []html.Attribute, cls string) []html.Attribute {
	for i, a := range attrs {
		if a.Key == "class" {
			attrs[i].Val = strings.TrimSpace(a.Val + " " + cls)
			return attrs
		}
	}
	return append(attrs, html.Attribute{Key: "class", Val: cls})
}

// SafeCSS escapes sequences that could close the <style> element early.
func SafeCSS(css string) template.CSS {
	return template.CSS(strings.ReplaceAll(css, "</", `<\/`)) // #nosec G203 -- closing sequences escaped
}

// PageRenderer paints pages from the page and print templates.
type PageRenderer struct {
	page  *template.Template
	print *template.Template
}

// NewPageRenderer parses the page and print templates.
func NewPageRenderer(pageTmpl, printTmpl string) (*PageRenderer, error) {
	page, err := template.New("page").Parse(pageTmpl)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	printable, err := template.New("print").Parse(printTmpl)
	if err != nil {
		return nil, fmt.Errorf("parsing print template: %w", err)
	}
	return &PageRenderer{page: page, print: printable}, nil
}

// Render paints one site page.
func (r *PageRenderer) Render(ctx context.Context, data *PageData) (string, error) {
	return execute(ctx, r.page, data)
}

// RenderPrint paints every article into one printable document.
func (r *PageRenderer) RenderPrint(ctx context.Context, data *PrintData) (string, error) {
	return execute(ctx, r.print, data)
}

func execute(ctx context.Context, tmpl *template.Template, data any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.String(), nil
}
