package outline

import (
	"errors"
	"net/url"
	"strings"
)

// Sentinel errors for outline operations.
var (
	// ErrMalformedNode indicates a node that is neither a well-formed section nor a leaf.
	ErrMalformedNode = errors.New("malformed outline node")

	// ErrDuplicatePath indicates two leaves resolving to the same path.
	ErrDuplicatePath = errors.New("duplicate outline path")
)

// RootPath is the path of the site root.
const RootPath = "/"

// IntroductionSlug is the slug of the top-level leaf served at RootPath.
const IntroductionSlug = "introduction"

// ContentRef names a content blob, typically a markdown file relative to the
// content directory.
type ContentRef string

// NodeKind distinguishes sections from leaves.
type NodeKind int

const (
	// KindInvalid is the kind of the zero Node.
	KindInvalid NodeKind = iota
	// KindSection groups child nodes.
	KindSection
	// KindLeaf points to a single content blob.
	KindLeaf
)

// String returns the kind name.
func (k NodeKind) String() string {
	switch k {
	case KindSection:
		return "section"
	case KindLeaf:
		return "leaf"
	default:
		return "invalid"
	}
}

// Node is one entry of an outline: a section or a leaf, never both.
// Build nodes with Section and Leaf; the zero Node is invalid.
type Node struct {
	kind     NodeKind
	title    string
	children []Node
	ref      ContentRef
}

// Section creates a section node grouping children under title.
func Section(title string, children ...Node) Node {
	return Node{kind: KindSection, title: title, children: children}
}

// Leaf creates a leaf node pointing at ref.
func Leaf(title string, ref ContentRef) Node {
	return Node{kind: KindLeaf, title: title, ref: ref}
}

// Kind reports whether n is a section or a leaf.
func (n Node) Kind() NodeKind { return n.kind }

// Title returns the display title.
func (n Node) Title() string { return n.title }

// Children returns the child nodes of a section, nil for a leaf.
func (n Node) Children() []Node { return n.children }

// Ref returns the content reference of a leaf, empty for a section.
func (n Node) Ref() ContentRef { return n.ref }

// IsSection reports whether n is a section.
func (n Node) IsSection() bool { return n.kind == KindSection }

// IsLeaf reports whether n is a leaf.
func (n Node) IsLeaf() bool { return n.kind == KindLeaf }

// Slug derives the URL segment for a title: lowercase, each space replaced by
// a hyphen. No other normalization happens; authors choose titles that do not
// collide.
func Slug(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "-")
}

// Href returns p as it must appear in an href attribute: every path segment
// percent-escaped, so punctuation kept by Slug ("?", "#", "'") stays part of
// the path. Anchor paths ("#guides") escape the fragment.
func Href(p string) string {
	if frag, ok := strings.CutPrefix(p, "#"); ok {
		return "#" + url.PathEscape(frag)
	}
	segs := strings.Split(p, "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	return strings.Join(segs, "/")
}

// sectionPaths returns the path a section is addressed by and the base its
// children accumulate from. Top-level sections are addressed by anchor.
func sectionPaths(base string, depth int, title string) (self, childBase string) {
	p := base + "/" + Slug(title)
	if depth == 0 {
		return "#" + Slug(title), p
	}
	return p, p
}

// leafPath returns the resolved path of a leaf.
// Only a top-level leaf slugged "introduction" maps to RootPath.
func leafPath(base string, depth int, title string) string {
	slug := Slug(title)
	if depth == 0 && slug == IntroductionSlug {
		return RootPath
	}
	return base + "/" + slug
}
