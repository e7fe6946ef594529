// Package outline turns a static, nested site outline into a route table and a
// numbered navigation listing.
//
// # Outline
//
// An outline is a list of nodes. Each node is either a section, which groups
// child nodes under a title, or a leaf, which points at one content blob:
//
//	site := []outline.Node{
//	    outline.Leaf("Introduction", "intro.md"),
//	    outline.Section("Guides",
//	        outline.Leaf("Rendering", "render.md"),
//	    ),
//	}
//
// # Paths
//
// Titles are slugified (lowercase, spaces to hyphens) and accumulated into
// paths. Top-level sections get an anchor path ("#guides") while their
// children accumulate from "/guides". A top-level leaf titled "Introduction"
// is the site root "/".
//
//	routes, _ := outline.BuildRoutes(site, func(ref outline.ContentRef) string { return string(ref) })
//	// [ {"/", "intro.md"}, {"#guides", [ {"/guides/rendering", "render.md"} ]} ]
//
//	nav, _ := outline.BuildNav(site)
//	// 1. Introduction (/), header Guides, 2. Rendering (/guides/rendering)
//
// BuildRoutes and BuildNav share the same path rules, so they always agree on
// the path of every leaf.
package outline
