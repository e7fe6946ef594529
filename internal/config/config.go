// Package config loads the YAML description of a handbook: site metadata,
// directories, styling, PDF settings and the outline.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-handbook/internal/assets"
	"github.com/alnah/go-handbook/internal/fileutil"
	"github.com/alnah/go-handbook/internal/outline"
	"github.com/alnah/go-handbook/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
	ErrInvalidOutline  = errors.New("invalid outline")
)

// AppDir is the directory under the user config dir searched for named configs.
const AppDir = "go-handbook"

// Field length limits.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 500
	MaxLangLength        = 35 // BCP 47
	MaxPathLength        = 4096
	MaxPageSizeLength    = 10
)

// Defaults applied to fields left empty.
const (
	DefaultTitle      = "Handbook"
	DefaultLang       = "en"
	DefaultContentDir = "content"
	DefaultOutputDir  = "public"
	DefaultPageSize   = "a4"
	DefaultMargin     = 0.5
	DefaultPDFTimeout = 60 * time.Second
)

// Margin bounds in inches.
const (
	MinMargin = 0.0
	MaxMargin = 3.0
)

// Config holds everything needed to build a handbook.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Output  OutputConfig  `yaml:"output"`
	Style   StyleConfig   `yaml:"style"`
	PDF     PDFConfig     `yaml:"pdf"`
	Outline []Entry       `yaml:"outline"`

	// path is the file the config was loaded from; relative directories
	// resolve against its directory.
	path string
}

// SiteConfig holds metadata shown on every page.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Lang        string `yaml:"lang"`
}

// ContentConfig locates the markdown files named by the outline.
type ContentConfig struct {
	Dir string `yaml:"dir"`
}

// OutputConfig locates the generated site.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// StyleConfig selects the stylesheet, templates and code highlighting.
type StyleConfig struct {
	Name        string `yaml:"name"`        // stylesheet and template set name
	Assets      string `yaml:"assets"`      // custom asset directory (empty = embedded only)
	Highlight   string `yaml:"highlight"`   // Chroma style name
	LineNumbers bool   `yaml:"lineNumbers"` // number lines in code blocks
}

// PDFConfig holds PDF export settings.
type PDFConfig struct {
	PageSize string  `yaml:"pageSize"` // "letter", "a4", "legal"
	Margin   float64 `yaml:"margin"`   // inches
	Timeout  string  `yaml:"timeout"`  // Go duration, e.g. "60s"
}

// Entry is one outline item: a section when it has children, a page when it
// names content.
type Entry struct {
	Title    string  `yaml:"title"`
	Content  string  `yaml:"content,omitempty"`
	Children []Entry `yaml:"children,omitempty"`
}

// DefaultConfig returns a configuration with every default applied and an
// empty outline.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = DefaultTitle
	}
	if c.Site.Lang == "" {
		c.Site.Lang = DefaultLang
	}
	if c.Content.Dir == "" {
		c.Content.Dir = DefaultContentDir
	}
	if c.Output.Dir == "" {
		c.Output.Dir = DefaultOutputDir
	}
	if c.Style.Name == "" {
		c.Style.Name = assets.DefaultStyleName
	}
	if c.Style.Highlight == "" {
		c.Style.Highlight = "pastie"
	}
	if c.PDF.PageSize == "" {
		c.PDF.PageSize = DefaultPageSize
	}
	if c.PDF.Margin == 0 {
		c.PDF.Margin = DefaultMargin
	}
	if c.PDF.Timeout == "" {
		c.PDF.Timeout = DefaultPDFTimeout.String()
	}
}

// Validate checks field lengths, enumerations and the outline.
// Called by LoadConfig; available for configs built in code.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"site.title", c.Site.Title, MaxTitleLength},
		{"site.description", c.Site.Description, MaxDescriptionLength},
		{"site.lang", c.Site.Lang, MaxLangLength},
		{"content.dir", c.Content.Dir, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"style.assets", c.Style.Assets, MaxPathLength},
		{"pdf.pageSize", c.PDF.PageSize, MaxPageSizeLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Style.Name != "" {
		if err := assets.ValidateAssetName(c.Style.Name); err != nil {
			return fmt.Errorf("style.name: %w", err)
		}
	}
	if c.Style.Highlight != "" && !assets.HasHighlightStyle(c.Style.Highlight) {
		return fmt.Errorf("%w: style.highlight: unknown style %q", ErrInvalidValue, c.Style.Highlight)
	}

	if c.PDF.PageSize != "" {
		switch strings.ToLower(c.PDF.PageSize) {
		case "letter", "a4", "legal":
		default:
			return fmt.Errorf("%w: pdf.pageSize: %q (must be letter, a4, or legal)", ErrInvalidValue, c.PDF.PageSize)
		}
	}
	if c.PDF.Margin < MinMargin || c.PDF.Margin > MaxMargin {
		return fmt.Errorf("%w: pdf.margin: must be between %.1f and %.1f, got %.2f", ErrInvalidValue, MinMargin, MaxMargin, c.PDF.Margin)
	}
	if c.PDF.Timeout != "" {
		d, err := time.ParseDuration(c.PDF.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: pdf.timeout: %q is not a positive duration", ErrInvalidValue, c.PDF.Timeout)
		}
	}

	nodes, err := c.Nodes()
	if err != nil {
		return err
	}
	if err := outline.Validate(nodes); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOutline, err)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// Nodes converts the outline entries to outline nodes. An entry must set
// exactly one of content or children.
func (c *Config) Nodes() ([]outline.Node, error) {
	return convertEntries(c.Outline, "outline")
}

func convertEntries(entries []Entry, at string) ([]outline.Node, error) {
	nodes := make([]outline.Node, 0, len(entries))
	for i, e := range entries {
		where := fmt.Sprintf("%s[%d]", at, i)
		hasContent := strings.TrimSpace(e.Content) != ""

		switch {
		case hasContent && len(e.Children) > 0:
			return nil, fmt.Errorf("%w: %s %q sets both content and children", ErrInvalidOutline, where, e.Title)
		case hasContent:
			nodes = append(nodes, outline.Leaf(e.Title, outline.ContentRef(filepath.ToSlash(e.Content))))
		case len(e.Children) > 0:
			children, err := convertEntries(e.Children, where+".children")
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, outline.Section(e.Title, children...))
		default:
			return nil, fmt.Errorf("%w: %s %q needs content or children", ErrInvalidOutline, where, e.Title)
		}
	}
	return nodes, nil
}

// PDFTimeout returns the parsed PDF timeout, or DefaultPDFTimeout when unset
// or invalid.
func (c *Config) PDFTimeout() time.Duration {
	d, err := time.ParseDuration(c.PDF.Timeout)
	if err != nil || d <= 0 {
		return DefaultPDFTimeout
	}
	return d
}

// Path returns the file the config was loaded from, empty for configs
// built in code.
func (c *Config) Path() string {
	return c.path
}

// Resolve returns p relative to the config file's directory. Absolute paths
// and configs without a file are returned unchanged.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.path == "" {
		return p
	}
	return filepath.Join(filepath.Dir(c.path), p)
}

// ContentDir returns the resolved content directory.
func (c *Config) ContentDir() string { return c.Resolve(c.Content.Dir) }

// OutputDir returns the resolved output directory.
func (c *Config) OutputDir() string { return c.Resolve(c.Output.Dir) }

// AssetsDir returns the resolved custom asset directory, empty when unset.
func (c *Config) AssetsDir() string { return c.Resolve(c.Style.Assets) }

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched in the current directory, then in
// {UserConfigDir}/go-handbook/. Unknown fields are rejected.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isConfigPath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	cfg.applyDefaults()
	cfg.path = configPath

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// isConfigPath reports whether s names a file rather than a config name:
// it contains a separator or already carries a YAML extension.
func isConfigPath(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return fileutil.IsFilePath(s) || ext == ".yaml" || ext == ".yml"
}

// resolveConfigPath searches for a config file by name, trying .yaml then
// .yml in the current directory, then in the user config directory.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	tried := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		local := name + ext
		if fileutil.FileExists(local) {
			return local, nil
		}
		tried = append(tried, local)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppDir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			tried = append(tried, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
