package assets

import (
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
)

// HighlightCSS renders the stylesheet for code blocks highlighted with CSS
// classes in the named Chroma style.
func HighlightCSS(style string) (string, error) {
	if !HasHighlightStyle(style) {
		return "", fmt.Errorf("%w: %q", ErrHighlightStyleNotFound, style)
	}

	var b strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&b, chromastyles.Get(style)); err != nil {
		return "", fmt.Errorf("writing %s highlight CSS: %w", style, err)
	}
	return b.String(), nil
}

// HasHighlightStyle reports whether Chroma registers a style named style.
// styles.Get falls back silently, so the registry is consulted instead.
func HasHighlightStyle(style string) bool {
	_, ok := chromastyles.Registry[style]
	return ok
}

// HighlightStyles lists the available Chroma style names, sorted.
func HighlightStyles() []string {
	return chromastyles.Names()
}
