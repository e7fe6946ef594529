package handbook

import "github.com/alnah/go-handbook/internal/outline"

// Outline building blocks.
type (
	// Node is a section or a page of the outline.
	Node = outline.Node
	// ContentRef names a markdown file relative to the content root.
	ContentRef = outline.ContentRef
	// NavEntry is one line of the navigation listing.
	NavEntry = outline.NavEntry
	// Route is one entry of the site's route tree.
	Route = outline.Route[*Page]
)

// Section creates an outline section holding children.
func Section(title string, children ...Node) Node {
	return outline.Section(title, children...)
}

// Leaf creates an outline page rendered from the content named by ref.
func Leaf(title string, ref ContentRef) Node {
	return outline.Leaf(title, ref)
}

// Slug returns the path segment derived from a title.
func Slug(title string) string {
	return outline.Slug(title)
}
