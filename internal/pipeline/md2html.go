package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// DefaultHighlightStyle is the Chroma style used for fenced code blocks.
const DefaultHighlightStyle = "pastie"

// HTMLConverter abstracts markdown to HTML fragment conversion.
type HTMLConverter interface {
	ToFragment(ctx context.Context, content string) (string, error)
}

// ConverterOption configures a GoldmarkConverter.
type ConverterOption func(*converterConfig)

type converterConfig struct {
	style       string
	lineNumbers bool
}

// WithHighlightStyle selects the Chroma style applied to fenced code blocks.
func WithHighlightStyle(style string) ConverterOption {
	return func(c *converterConfig) {
		if style != "" {
			c.style = style
		}
	}
}

// WithLineNumbers enables line numbers in highlighted code blocks.
func WithLineNumbers(enabled bool) ConverterOption {
	return func(c *converterConfig) {
		c.lineNumbers = enabled
	}
}

// GoldmarkConverter converts markdown to HTML using goldmark (pure Go).
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions and
// Chroma highlighting of fenced code blocks.
func NewGoldmarkConverter(opts ...ConverterOption) *GoldmarkConverter {
	cfg := converterConfig{style: DefaultHighlightStyle}
	for _, opt := range opts {
		opt(&cfg)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(cfg.style),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // styled by the stylesheet from assets.HighlightCSS
					chromahtml.WithLineNumbers(cfg.lineNumbers),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToFragment converts markdown content to an HTML fragment.
// Goldmark is not context-aware, so conversion runs in a goroutine and the
// call returns early when ctx is done.
func (c *GoldmarkConverter) ToFragment(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: ConvertMarkPlaceholders(buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
