package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	handbook "github.com/alnah/go-handbook"
)

// Sentinel errors for command line handling.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// commonFlags holds flags shared by every command.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// siteFlags holds the flags of commands that build the site.
type siteFlags struct {
	common         commonFlags
	content        string
	workers        int
	style          string
	highlight      string
	assetPath      string
	lineNumbers    bool
	lineNumbersSet bool
}

// buildFlags holds flags for the build command.
type buildFlags struct {
	site   siteFlags
	output string
}

// serveFlags holds flags for the serve command.
type serveFlags struct {
	site    siteFlags
	host    string
	port    int
	noWatch bool
}

// pdfFlags holds flags for the pdf command.
type pdfFlags struct {
	site      siteFlags
	output    string
	pageSize  string
	margin    float64
	marginSet bool
	timeout   string
}

// outlineFlags holds flags for the routes and nav commands.
type outlineFlags struct {
	common commonFlags
	json   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-page timing")
}

// addSiteFlags adds content and style flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	addCommonFlags(fs, &f.common)
	fs.StringVar(&f.content, "content", "", "content directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel page renders (0 = auto)")
	fs.StringVar(&f.style, "style", "", "style and template set name")
	fs.StringVar(&f.highlight, "highlight", "", "code highlight style")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.lineNumbers, "line-numbers", false, "number lines in code blocks")
}

func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parse parses args and rejects positional arguments.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}
	return nil
}

func parseBuildFlags(args []string, w io.Writer) (*buildFlags, error) {
	f := &buildFlags{}
	fs := newFlagSet("build", w, printBuildUsage)
	addSiteFlags(fs, &f.site)
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	if err := parse(fs, args); err != nil {
		return nil, err
	}
	f.site.lineNumbersSet = fs.Changed("line-numbers")
	return f, validateWorkers(f.site.workers)
}

func parseServeFlags(args []string, w io.Writer) (*serveFlags, error) {
	f := &serveFlags{}
	fs := newFlagSet("serve", w, printServeUsage)
	addSiteFlags(fs, &f.site)
	fs.StringVar(&f.host, "host", "127.0.0.1", "address to listen on")
	fs.IntVarP(&f.port, "port", "p", 8080, "port to listen on (0 = any free port)")
	fs.BoolVar(&f.noWatch, "no-watch", false, "do not rebuild on changes")
	if err := parse(fs, args); err != nil {
		return nil, err
	}
	f.site.lineNumbersSet = fs.Changed("line-numbers")
	if f.port < 0 || f.port > 65535 {
		return nil, fmt.Errorf("%w: port %d out of range", ErrUsage, f.port)
	}
	return f, validateWorkers(f.site.workers)
}

func parsePDFFlags(args []string, w io.Writer) (*pdfFlags, error) {
	f := &pdfFlags{}
	fs := newFlagSet("pdf", w, printPDFUsage)
	addSiteFlags(fs, &f.site)
	fs.StringVarP(&f.output, "output", "o", "", "PDF file (default: <output dir>/<title>.pdf)")
	fs.StringVar(&f.pageSize, "page-size", "", "page size: letter, a4, legal")
	fs.Float64Var(&f.margin, "margin", 0, "margin in inches")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g. 30s, 2m)")
	if err := parse(fs, args); err != nil {
		return nil, err
	}
	f.site.lineNumbersSet = fs.Changed("line-numbers")
	f.marginSet = fs.Changed("margin")
	return f, validateWorkers(f.site.workers)
}

func parseCheckFlags(args []string, w io.Writer) (*siteFlags, error) {
	f := &siteFlags{}
	fs := newFlagSet("check", w, printCheckUsage)
	addSiteFlags(fs, f)
	if err := parse(fs, args); err != nil {
		return nil, err
	}
	f.lineNumbersSet = fs.Changed("line-numbers")
	return f, validateWorkers(f.workers)
}

func parseOutlineFlags(name string, args []string, w io.Writer, usage func(io.Writer)) (*outlineFlags, error) {
	f := &outlineFlags{}
	fs := newFlagSet(name, w, usage)
	addCommonFlags(fs, &f.common)
	fs.BoolVar(&f.json, "json", false, "print JSON")
	if err := parse(fs, args); err != nil {
		return nil, err
	}
	return f, nil
}

// validateWorkers accepts 0 (auto) up to handbook.MaxWorkers.
func validateWorkers(n int) error {
	if n < 0 || n > handbook.MaxWorkers {
		return fmt.Errorf("%w: %d (must be 0 to %d)", ErrInvalidWorkerCount, n, handbook.MaxWorkers)
	}
	return nil
}
