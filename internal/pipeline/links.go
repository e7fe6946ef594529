package pipeline

import (
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// LinkResolver maps a content reference (e.g. "guides/render.md") to the
// route serving it. ok is false for unknown references.
type LinkResolver func(ref string) (route string, ok bool)

// RewriteContentLinks rewrites <a href> values that point at other content
// files to the routes serving them, keeping any #fragment. baseDir is the
// directory of the current content file relative to the content root, so
// "../api.md" resolves against it. Returns the number of rewritten links.
//
// Left unchanged:
//   - URLs (http, https, mailto, protocol-relative, data)
//   - Anchors on the current page
//   - Absolute paths (already routes)
//   - References the resolver does not know
func RewriteContentLinks(root *html.Node, baseDir string, resolve LinkResolver) int {
	if root == nil || resolve == nil {
		return 0
	}

	rewritten := 0
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.A {
			if rewriteHref(n, baseDir, resolve) {
				rewritten++
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(root)
	return rewritten
}

func rewriteHref(n *html.Node, baseDir string, resolve LinkResolver) bool {
	for i, attr := range n.Attr {
		if attr.Key != "href" || !isContentReference(attr.Val) {
			continue
		}

		target, fragment, _ := strings.Cut(attr.Val, "#")
		ref := path.Clean(path.Join(baseDir, target))
		if strings.HasPrefix(ref, "../") || ref == ".." {
			return false
		}

		route, ok := resolve(ref)
		if !ok {
			return false
		}
		if fragment != "" {
			route += "#" + fragment
		}
		n.Attr[i].Val = route
		return true
	}
	return false
}

// isContentReference reports whether href is a relative link that may name
// another content file.
func isContentReference(href string) bool {
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "/") {
		return false
	}
	if strings.Contains(href, "://") || strings.HasPrefix(href, "//") {
		return false
	}
	for _, scheme := range []string{"mailto:", "data:", "tel:", "javascript:"} {
		if strings.HasPrefix(strings.ToLower(href), scheme) {
			return false
		}
	}
	return true
}
