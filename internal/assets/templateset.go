package assets

// Template file names inside a template set directory.
const (
	PageTemplateFile  = "page.html"
	PrintTemplateFile = "print.html"
)

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// DefaultStyleName is the name of the built-in stylesheet.
const DefaultStyleName = "default"

// TemplateSet holds the templates used to render a site.
type TemplateSet struct {
	Name  string // identifier of the set
	Page  string // one site page, executed with pipeline.PageData
	Print string // printable document, executed with pipeline.PrintData
}
