// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted as "\n  hint: <text>" so they can be appended to
// error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-handbook/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser launch or connection errors.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use a local Chrome")
	}
	hints = append(hints, "run 'handbook doctor' to check the setup")

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing the PDF timeout.
func ForTimeout() string {
	return format("for large handbooks, raise --timeout or pdf.timeout")
}

// ForConfigNotFound suggests --config and, when one of the searched paths
// is in the user config directory, creating it there.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/handbook.yaml"

	marker := filepath.Join(".config", "go-handbook")
	for _, p := range searchedPaths {
		if strings.Contains(p, marker) || strings.Contains(p, "go-handbook") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForContentNotFound points at the content directory a ref resolved against.
func ForContentNotFound(contentDir string) string {
	if contentDir == "" {
		return format("outline content paths are relative to content.dir")
	}
	return format("outline content paths are relative to " + contentDir)
}

// ForOutputDirectory returns hints for output directory write errors.
func ForOutputDirectory() string {
	return format("check the output directory is writable, or pass --output")
}

// ForStyleNotFound lists the available choices.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForMalformedOutline explains the outline entry shape.
func ForMalformedOutline() string {
	return format("every outline entry needs a title and either content or children")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
