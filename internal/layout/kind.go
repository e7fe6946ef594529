// Package layout splits a rendered markdown document into prose/code pairs
// for a two-column article layout and assigns presentation roles to nodes.
//
// Roles live in a side table keyed by node identity, so splitting never
// mutates the parse tree. Renderers read the table when painting nodes.
package layout

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Kind classifies a parse tree node for splitting and tagging.
type Kind int

// Node kinds produced by markdown conversion.
const (
	KindOther Kind = iota
	KindText
	KindHeading1
	KindHeading2
	KindHeadingOther
	KindParagraph
	KindUnorderedList
	KindOrderedList
	KindListItem
	KindLink
	KindPreformatted
	KindBlockquote
	KindTable
)

var kindNames = [...]string{
	KindOther:         "other",
	KindText:          "text",
	KindHeading1:      "h1",
	KindHeading2:      "h2",
	KindHeadingOther:  "heading",
	KindParagraph:     "p",
	KindUnorderedList: "ul",
	KindOrderedList:   "ol",
	KindListItem:      "li",
	KindLink:          "a",
	KindPreformatted:  "pre",
	KindBlockquote:    "blockquote",
	KindTable:         "table",
}

// String returns a short name for the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// KindOf classifies n. Nil and non-element, non-text nodes are KindOther.
func KindOf(n *html.Node) Kind {
	if n == nil {
		return KindOther
	}
	switch n.Type {
	case html.TextNode:
		return KindText
	case html.ElementNode:
		return elementKind(n.DataAtom)
	default:
		return KindOther
	}
}

func elementKind(a atom.Atom) Kind {
	switch a {
	case atom.H1:
		return KindHeading1
	case atom.H2:
		return KindHeading2
	case atom.H3, atom.H4, atom.H5, atom.H6:
		return KindHeadingOther
	case atom.P:
		return KindParagraph
	case atom.Ul:
		return KindUnorderedList
	case atom.Ol:
		return KindOrderedList
	case atom.Li:
		return KindListItem
	case atom.A:
		return KindLink
	case atom.Pre:
		return KindPreformatted
	case atom.Blockquote:
		return KindBlockquote
	case atom.Table:
		return KindTable
	default:
		return KindOther
	}
}

// Role is the presentation role assigned to a node.
type Role int

// Presentation roles.
const (
	RoleNone Role = iota
	RoleTitle
	RoleProse
	RoleLink
	RoleList
	RoleListItem
	RoleSubheading
	RoleCode
	RolePlaceholder
)

var roleNames = [...]string{
	RoleNone:        "none",
	RoleTitle:       "title",
	RoleProse:       "prose",
	RoleLink:        "link",
	RoleList:        "list",
	RoleListItem:    "list-item",
	RoleSubheading:  "subheading",
	RoleCode:        "code",
	RolePlaceholder: "placeholder",
}

// String returns the role name.
func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return "unknown"
	}
	return roleNames[r]
}

// Roles maps nodes to their presentation role.
type Roles map[*html.Node]Role

// Set assigns role to n, replacing any earlier role.
func (r Roles) Set(n *html.Node, role Role) {
	r[n] = role
}

// Of returns the role of n, RoleNone if untagged.
func (r Roles) Of(n *html.Node) Role {
	return r[n]
}
