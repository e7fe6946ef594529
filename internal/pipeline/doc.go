// Package pipeline implements the page pipeline of a handbook site.
//
// Each content page goes through these stages:
//   - Markdown preprocessing (line normalization, ==highlight== syntax)
//   - Markdown to HTML conversion via Goldmark, with fenced code blocks
//     highlighted by Chroma
//   - Content link rewriting (links to other markdown files become routes)
//   - Page rendering: the split document and the navigation listing are
//     painted into the page template
//
// Splitting the document into prose/code pairs is handled by the layout
// package; building routes and navigation by the outline package. This
// package only consumes their results.
package pipeline
