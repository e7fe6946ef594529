package layout

import (
	"errors"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrEmptyDocument indicates a document without a title node.
var ErrEmptyDocument = errors.New("document has no content")

// Pair is one row of the two-column layout: prose on the left, at most one
// code block on the right.
type Pair struct {
	Prose []*html.Node
	Code  *html.Node // nil only for the title pair
}

// Document is the result of splitting one rendered markdown document.
type Document struct {
	Title *html.Node
	Pairs []Pair // Pairs[0] holds only the title
	Roles Roles
}

// Parse parses an HTML fragment in <body> context and returns a container
// whose children are the fragment's top-level nodes.
func Parse(fragment string) (*html.Node, error) {
	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return nil, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// Split partitions the children of root into prose/code pairs.
//
// The first child is the title and forms a pair of its own. Every following
// <pre> closes the current pair; other nodes accumulate as prose. Prose left
// over at the end is closed with an empty placeholder <pre> so every pair
// after the title has a code node. Whitespace-only text and comments between
// blocks are ignored.
//
// Returns ErrEmptyDocument if root has no significant children.
func Split(root *html.Node) (*Document, error) {
	blocks := significantChildren(root)
	if len(blocks) == 0 {
		return nil, ErrEmptyDocument
	}

	doc := &Document{
		Title: blocks[0],
		Pairs: []Pair{{Prose: []*html.Node{blocks[0]}}},
		Roles: make(Roles),
	}
	doc.Roles.Set(doc.Title, RoleTitle)

	var prose []*html.Node
	for _, n := range blocks[1:] {
		if KindOf(n) == KindPreformatted {
			doc.Roles.Set(n, RoleCode)
			doc.Pairs = append(doc.Pairs, Pair{Prose: prose, Code: n})
			prose = nil
			continue
		}
		tagProse(doc.Roles, n)
		prose = append(prose, n)
	}

	if len(prose) > 0 {
		placeholder := Placeholder()
		doc.Roles.Set(placeholder, RolePlaceholder)
		doc.Pairs = append(doc.Pairs, Pair{Prose: prose, Code: placeholder})
	}

	return doc, nil
}

// Retag recomputes the roles of an already split document. Roles are
// overwritten, never stacked, so Retag is idempotent.
func Retag(doc *Document) {
	if len(doc.Pairs) == 0 {
		return
	}
	if doc.Roles == nil {
		doc.Roles = make(Roles)
	}
	doc.Roles.Set(doc.Title, RoleTitle)
	for _, p := range doc.Pairs[1:] {
		for _, n := range p.Prose {
			tagProse(doc.Roles, n)
		}
		if doc.Roles.Of(p.Code) != RolePlaceholder {
			doc.Roles.Set(p.Code, RoleCode)
		}
	}
}

// Placeholder returns a detached, empty <pre> used to fill the code column
// of a trailing prose pair.
func Placeholder() *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: atom.Pre, Data: "pre"}
}

// IsPlaceholder reports whether p closes trailing prose without real code.
func (d *Document) IsPlaceholder(p Pair) bool {
	return p.Code != nil && d.Roles.Of(p.Code) == RolePlaceholder
}

func tagProse(roles Roles, n *html.Node) {
	switch KindOf(n) {
	case KindParagraph:
		roles.Set(n, RoleProse)
		tagDescendants(roles, n, KindLink, RoleLink)
	case KindUnorderedList:
		roles.Set(n, RoleList)
		tagDescendants(roles, n, KindListItem, RoleListItem)
	case KindHeading2:
		roles.Set(n, RoleSubheading)
	}
}

func tagDescendants(roles Roles, n *html.Node, kind Kind, role Role) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if KindOf(c) == kind {
			roles.Set(c, role)
		}
		tagDescendants(roles, c, kind, role)
	}
}

// significantChildren returns the element and non-blank text children of root.
func significantChildren(root *html.Node) []*html.Node {
	if root == nil {
		return nil
	}
	var out []*html.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			out = append(out, c)
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				out = append(out, c)
			}
		}
	}
	return out
}

// Text returns the concatenated text content of n and its descendants.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return b.String()
}

// Count returns the number of nodes in the subtree rooted at n.
func Count(n *html.Node) int {
	if n == nil {
		return 0
	}
	total := 1
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		total += Count(c)
	}
	return total
}
