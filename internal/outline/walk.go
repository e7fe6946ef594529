package outline

import "fmt"

// Step is one visit of a depth-first, pre-order outline traversal.
type Step struct {
	Node  Node
	Path  string // resolved path (anchor path for top-level sections)
	Depth int    // 0 for top-level nodes
}

// Walk visits every node in depth-first pre-order, sections before their
// children. It stops at the first error returned by fn, and fails with
// ErrMalformedNode on a node that is neither a section nor a leaf.
func Walk(nodes []Node, fn func(Step) error) error {
	return walk(nodes, "", 0, fn)
}

func walk(nodes []Node, base string, depth int, fn func(Step) error) error {
	for i, n := range nodes {
		switch n.kind {
		case KindSection:
			self, childBase := sectionPaths(base, depth, n.title)
			if err := fn(Step{Node: n, Path: self, Depth: depth}); err != nil {
				return err
			}
			if err := walk(n.children, childBase, depth+1, fn); err != nil {
				return err
			}
		case KindLeaf:
			if err := fn(Step{Node: n, Path: leafPath(base, depth, n.title), Depth: depth}); err != nil {
				return err
			}
		default:
			return malformed(base, i, "node is neither section nor leaf")
		}
	}
	return nil
}

func malformed(base string, index int, reason string) error {
	where := base
	if where == "" {
		where = "top level"
	}
	return fmt.Errorf("%w: %s (entry %d, %s)", ErrMalformedNode, reason, index, where)
}

// Route is one entry of a route tree. A leaf route carries the view built
// from its content; a section route carries its child routes.
type Route[T any] struct {
	Path     string
	Title    string
	Ref      ContentRef // leaf only
	View     T          // leaf only
	Children []Route[T] // section only
	leaf     bool
}

// IsLeaf reports whether r is bound to a content view.
func (r Route[T]) IsLeaf() bool { return r.leaf }

// BuildRoutes converts an outline into a route tree isomorphic to it. Every
// leaf becomes a route bound to view(ref); every section becomes a route
// holding its children.
func BuildRoutes[T any](nodes []Node, view func(ContentRef) T) ([]Route[T], error) {
	return buildRoutes(nodes, "", 0, view)
}

func buildRoutes[T any](nodes []Node, base string, depth int, view func(ContentRef) T) ([]Route[T], error) {
	routes := make([]Route[T], 0, len(nodes))
	for i, n := range nodes {
		switch n.kind {
		case KindSection:
			self, childBase := sectionPaths(base, depth, n.title)
			children, err := buildRoutes(n.children, childBase, depth+1, view)
			if err != nil {
				return nil, err
			}
			routes = append(routes, Route[T]{Path: self, Title: n.title, Children: children})
		case KindLeaf:
			routes = append(routes, Route[T]{
				Path:  leafPath(base, depth, n.title),
				Title: n.title,
				Ref:   n.ref,
				View:  view(n.ref),
				leaf:  true,
			})
		default:
			return nil, malformed(base, i, "node is neither section nor leaf")
		}
	}
	return routes, nil
}

// Leaves flattens a route tree into its leaf routes, in depth-first order.
func Leaves[T any](routes []Route[T]) []Route[T] {
	var out []Route[T]
	for _, r := range routes {
		if r.leaf {
			out = append(out, r)
			continue
		}
		out = append(out, Leaves(r.Children)...)
	}
	return out
}

// NavKind distinguishes navigation headers from links.
type NavKind int

const (
	// NavHeader is a non-clickable section title.
	NavHeader NavKind = iota
	// NavLink is a numbered link to a leaf.
	NavLink
)

// NavEntry is one rendering unit of the navigation listing.
type NavEntry struct {
	Kind  NavKind
	Title string
	Index int    // links only, starting at 1
	URL   string // links only
	Depth int
}

// BuildNav flattens an outline into an ordered navigation listing. Sections
// emit a header before their children; leaves emit a link numbered from 1 in
// traversal order. The counter is owned by the call.
func BuildNav(nodes []Node) ([]NavEntry, error) {
	var entries []NavEntry
	index := 1
	err := Walk(nodes, func(s Step) error {
		if s.Node.IsSection() {
			entries = append(entries, NavEntry{Kind: NavHeader, Title: s.Node.title, Depth: s.Depth})
			return nil
		}
		entries = append(entries, NavEntry{
			Kind:  NavLink,
			Title: s.Node.title,
			Index: index,
			URL:   s.Path,
			Depth: s.Depth,
		})
		index++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Validate checks that every node is well formed and that no two leaves
// resolve to the same path.
func Validate(nodes []Node) error {
	if len(nodes) == 0 {
		return fmt.Errorf("%w: outline is empty", ErrMalformedNode)
	}
	seen := make(map[string]string)
	return Walk(nodes, func(s Step) error {
		n := s.Node
		if n.title == "" {
			return fmt.Errorf("%w: empty title at %q", ErrMalformedNode, s.Path)
		}
		if n.IsSection() {
			if len(n.children) == 0 {
				return fmt.Errorf("%w: section %q has no children", ErrMalformedNode, n.title)
			}
			return nil
		}
		if n.ref == "" {
			return fmt.Errorf("%w: leaf %q has no content", ErrMalformedNode, n.title)
		}
		if prev, ok := seen[s.Path]; ok {
			return fmt.Errorf("%w: %q and %q both resolve to %s", ErrDuplicatePath, prev, n.title, s.Path)
		}
		seen[s.Path] = n.title
		return nil
	})
}
