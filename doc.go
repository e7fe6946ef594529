// Package handbook generates documentation sites from an outline of markdown
// files.
//
// An outline is a tree of sections and pages. Each page names a markdown
// file; the builder converts it to HTML, splits it into a title followed by
// prose/code pairs, and renders it into a two-column layout with a numbered
// navigation sidebar.
//
// # Quick Start
//
//	outline := []handbook.Node{
//	    handbook.Leaf("Introduction", "intro.md"),
//	    handbook.Section("Guides",
//	        handbook.Leaf("Rendering", "guides/render.md"),
//	    ),
//	}
//
//	b, err := handbook.NewBuilder(handbook.WithTitle("choo handbook"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	site, err := b.Build(ctx, handbook.Input{
//	    Outline: outline,
//	    Loader:  handbook.NewDirLoader("content"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_, err = site.WriteTo("public")
//
// # Paths
//
// The introduction page at the top level is served at "/". Other pages are
// served at the slugs of their titles, nested under the slugs of their
// sections: "Rendering" under "Guides" becomes "/guides/rendering".
// Top-level sections themselves resolve to anchors ("#guides").
//
// # Links Between Pages
//
// Markdown links to other content files ("[see](../api.md)") are rewritten to
// the route serving that file, so authors link by file name.
//
// # PDF Export
//
// PDFExporter prints every page, in navigation order, into one PDF using
// headless Chrome via go-rod. Chrome is downloaded on first use unless
// ROD_BROWSER_BIN names a local binary.
package handbook
