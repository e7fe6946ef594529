package handbook

import "github.com/alnah/go-handbook/internal/assets"

// Logger receives build traces. *log.Logger from charmbracelet/log
// satisfies it.
type Logger interface {
	Debugf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}

// Option configures a Builder.
type Option func(*builderConfig)

type builderConfig struct {
	title       string
	description string
	lang        string
	style       string
	highlight   string
	lineNumbers bool
	assetPath   string
	workers     int
	logger      Logger
}

func defaultBuilderConfig() builderConfig {
	return builderConfig{
		title:     "Handbook",
		lang:      "en",
		style:     assets.DefaultStyleName,
		highlight: "pastie",
		logger:    nopLogger{},
	}
}

// WithTitle sets the site title shown in page titles.
func WithTitle(title string) Option {
	return func(c *builderConfig) {
		if title != "" {
			c.title = title
		}
	}
}

// WithDescription sets the site description meta tag.
func WithDescription(description string) Option {
	return func(c *builderConfig) {
		c.description = description
	}
}

// WithLang sets the html lang attribute.
func WithLang(lang string) Option {
	return func(c *builderConfig) {
		if lang != "" {
			c.lang = lang
		}
	}
}

// WithStyle selects the stylesheet and template set by name. A custom style
// without its own templates uses the default template set.
func WithStyle(name string) Option {
	return func(c *builderConfig) {
		if name != "" {
			c.style = name
		}
	}
}

// WithHighlightStyle selects the Chroma style for code blocks.
func WithHighlightStyle(name string) Option {
	return func(c *builderConfig) {
		if name != "" {
			c.highlight = name
		}
	}
}

// WithLineNumbers numbers the lines of highlighted code blocks.
func WithLineNumbers(enabled bool) Option {
	return func(c *builderConfig) {
		c.lineNumbers = enabled
	}
}

// WithAssetPath loads styles and templates from dir before falling back to
// the embedded ones.
func WithAssetPath(dir string) Option {
	return func(c *builderConfig) {
		c.assetPath = dir
	}
}

// WithWorkers sets how many pages render concurrently. Zero or less picks a
// value from GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *builderConfig) {
		c.workers = n
	}
}

// WithLogger sets the logger receiving per-page traces.
func WithLogger(l Logger) Option {
	return func(c *builderConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
