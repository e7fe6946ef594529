package handbook

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-handbook/internal/fileutil"
	"github.com/alnah/go-handbook/internal/process"
)

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts PDFOptions) ([]byte, error)
	Close() error
}

// Compile-time interface check.
var _ pdfRenderer = (*rodRenderer)(nil)

// Page sizes in inches (width, height).
var paperSizes = map[string][2]float64{
	"letter": {8.5, 11},
	"a4":     {8.27, 11.69},
	"legal":  {8.5, 14},
}

// PDF defaults.
const (
	DefaultPageSize   = "a4"
	DefaultMargin     = 0.5
	DefaultPDFTimeout = 60 * time.Second
	MaxMargin         = 3.0
)

// PDFOptions holds page settings for PDF export.
type PDFOptions struct {
	PageSize string  // "letter", "a4" or "legal"; empty = a4
	Margin   float64 // inches on every side; zero = 0.5
}

func (o PDFOptions) withDefaults() PDFOptions {
	if o.PageSize == "" {
		o.PageSize = DefaultPageSize
	}
	if o.Margin == 0 {
		o.Margin = DefaultMargin
	}
	o.PageSize = strings.ToLower(o.PageSize)
	return o
}

// Validate checks the page size and margin.
func (o PDFOptions) Validate() error {
	o = o.withDefaults()
	if _, ok := paperSizes[o.PageSize]; !ok {
		return fmt.Errorf("%w: page size %q (must be letter, a4, or legal)", ErrInvalidPDFPage, o.PageSize)
	}
	if o.Margin < 0 || o.Margin > MaxMargin {
		return fmt.Errorf("%w: margin %.2f (must be between 0 and %.1f inches)", ErrInvalidPDFPage, o.Margin, MaxMargin)
	}
	return nil
}

// PDFExporter prints a site into one PDF with headless Chrome.
// The browser starts on first export and is reused until Close.
type PDFExporter struct {
	renderer pdfRenderer
}

// NewPDFExporter creates a PDFExporter. timeout bounds page loading when the
// export context has no deadline; zero means DefaultPDFTimeout.
func NewPDFExporter(timeout time.Duration) *PDFExporter {
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}
	return &PDFExporter{renderer: newRodRenderer(timeout)}
}

// ExportPDF renders the site's pages in navigation order and prints them.
func (e *PDFExporter) ExportPDF(ctx context.Context, site *Site, opts PDFOptions) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	doc, err := site.PrintHTML(ctx)
	if err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(doc, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return e.renderer.RenderFromFile(ctx, tmpPath, opts.withDefaults())
}

// Close releases browser resources.
func (e *PDFExporter) Close() error {
	if e.renderer != nil {
		return e.renderer.Close()
	}
	return nil
}

// rodRenderer implements pdfRenderer using go-rod.
// Rod downloads Chromium on first run unless ROD_BROWSER_BIN is set.
type rodRenderer struct {
	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	// Containers and CI runners cannot use the Chrome sandbox.
	if os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("CI") == "true" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		r.killLauncher(l)
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.launcher = l
	r.browser = browser
	return nil
}

// Close closes the browser and kills its process tree.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		r.killLauncher(r.launcher)
		r.launcher = nil
	}
	return err
}

// killLauncher kills the whole Chrome process group first, then lets the
// launcher clean up its user data dir.
func (r *rodRenderer) killLauncher(l *launcher.Launcher) {
	process.KillProcessGroup(l.PID())
	l.Kill()
	l.Cleanup()
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts PDFOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPrintOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

// buildPrintOptions converts PDFOptions to Chrome's print settings.
func buildPrintOptions(opts PDFOptions) *proto.PagePrintToPDF {
	opts = opts.withDefaults()
	size, ok := paperSizes[opts.PageSize]
	if !ok {
		size = paperSizes[DefaultPageSize]
	}

	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(size[0]),
		PaperHeight:     floatPtr(size[1]),
		MarginTop:       floatPtr(opts.Margin),
		MarginBottom:    floatPtr(opts.Margin),
		MarginLeft:      floatPtr(opts.Margin),
		MarginRight:     floatPtr(opts.Margin),
		PrintBackground: true,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
