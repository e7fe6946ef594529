package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: handbook <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Render the handbook to a static site")
	fmt.Fprintln(w, "  serve      Preview the handbook, rebuilding on changes")
	fmt.Fprintln(w, "  pdf        Export the handbook as one PDF")
	fmt.Fprintln(w, "  check      Report broken links")
	fmt.Fprintln(w, "  routes     Show the path of every outline entry")
	fmt.Fprintln(w, "  nav        Show the navigation sidebar")
	fmt.Fprintln(w, "  doctor     Check the system for PDF export")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'handbook help <command>' for details on a specific command.")
}

func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (default: handbook)")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show per-page timing")
}

func printSiteFlags(w io.Writer) {
	printCommonFlags(w)
	fmt.Fprintln(w, "      --content <dir>       Content directory (overrides content.dir)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel page renders (0 = auto)")
	fmt.Fprintln(w, "      --style <name>        Style and template set name")
	fmt.Fprintln(w, "      --highlight <name>    Code highlight style")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w, "      --line-numbers        Number lines in code blocks")
}

func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: handbook build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render every page of the outline to <output>/<path>/index.html.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (overrides output.dir)")
	printSiteFlags(w)
}

func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: handbook serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the handbook from memory. Content and config changes rebuild it.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --host <addr>         Address to listen on (default 127.0.0.1)")
	fmt.Fprintln(w, "  -p, --port <n>            Port to listen on (default 8080)")
	fmt.Fprintln(w, "      --no-watch            Do not rebuild on changes")
	printSiteFlags(w)
}

func printPDFUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: handbook pdf [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export every page, in navigation order, as one PDF. Requires Chrome.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <file>       PDF file (default: <output dir>/<title>.pdf)")
	fmt.Fprintln(w, "      --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0-3)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g. 30s, 2m)")
	printSiteFlags(w)
}

func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: handbook check [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build the handbook and report links to missing pages or anchors.")
	fmt.Fprintln(w, "Exits with status 1 when a link is broken.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	printSiteFlags(w)
}

func printRoutesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: handbook routes [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show the path of every outline entry and the content it serves.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Print JSON")
	printCommonFlags(w)
}

func printNavUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: handbook nav [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show the navigation sidebar as rendered on every page.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Print JSON")
	printCommonFlags(w)
}

func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: handbook doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Chrome, the environment and the config for PDF export.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	usage := map[string]func(io.Writer){
		"build":  printBuildUsage,
		"serve":  printServeUsage,
		"pdf":    printPDFUsage,
		"check":  printCheckUsage,
		"routes": printRoutesUsage,
		"nav":    printNavUsage,
		"doctor": printDoctorUsage,
	}
	switch args[0] {
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: handbook version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: handbook help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		show, ok := usage[args[0]]
		if !ok {
			fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
			printUsage(env.Stderr)
			return ExitUsage
		}
		show(env.Stdout)
	}
	return ExitSuccess
}
