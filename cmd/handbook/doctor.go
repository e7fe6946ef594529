package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/alnah/go-handbook/internal/fileutil"
	"github.com/alnah/go-handbook/internal/outline"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string      `json:"status"`
	Chrome   chromeInfo  `json:"chrome"`
	Env      envInfo     `json:"environment"`
	System   systemInfo  `json:"system"`
	Project  projectInfo `json:"project"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// projectInfo describes the handbook config found, if any.
type projectInfo struct {
	Config  string   `json:"config,omitempty"`
	Content string   `json:"content_dir,omitempty"`
	Pages   int      `json:"pages"`
	Missing []string `json:"missing_content,omitempty"`
}

// runDoctorCmd executes the doctor command.
// Exit codes: 0 = ready (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		switch arg {
		case "--json":
			jsonOutput = true
		case "-h", "--help":
			printDoctorUsage(env.Stdout)
			return ExitSuccess
		default:
			fmt.Fprintf(env.Stderr, "Unknown flag: %s\n", arg)
			printDoctorUsage(env.Stderr)
			return ExitUsage
		}
	}

	result := runDoctor(env)

	if jsonOutput {
		_ = writeJSON(env.Stdout, result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(env *Environment) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  env.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: env.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(result)
	checkEnvironment(result, env.Getenv)
	checkSystem(result)
	checkProject(result, env)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}
	return result
}

// checkChrome detects the browser used for PDF export.
func checkChrome(result *doctorResult) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = launcher.LookPath()
		if !found {
			result.Errors = append(result.Errors,
				"Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	out, err := exec.Command(chromePath, "--version").Output() // #nosec G204 -- path from LookPath or ROD_BROWSER_BIN
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, getenv func(string) string) {
	result.Env.Container, result.Env.ContainerHint = isContainer(getenv)

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer reports whether we run in a container and which signal said so.
func isContainer(getenv func(string) string) (bool, string) {
	if getenv("HANDBOOK_CONTAINER") == "1" {
		return true, "HANDBOOK_CONTAINER=1"
	}
	if fileutil.FileExists("/.dockerenv") {
		return true, "/.dockerenv"
	}
	if v := getenv("container"); v != "" {
		return true, "container=" + v
	}
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory used for print documents.
func checkSystem(result *doctorResult) {
	f, err := os.CreateTemp("", "handbook-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", os.TempDir()))
		return
	}
	_ = f.Close()
	_ = os.Remove(f.Name())
	result.System.TempWritable = true
}

// checkProject loads the config, when one is found, and looks for every
// content file of the outline. A missing config is only a warning: doctor
// also runs outside handbook directories.
func checkProject(result *doctorResult, env *Environment) {
	p, err := openProject(siteFlags{}, env)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("No usable config: %v", err))
		return
	}
	result.Project.Config = p.cfg.Path()
	result.Project.Content = p.cfg.ContentDir()
	if !fileutil.DirExists(result.Project.Content) {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Content directory not found: %s", result.Project.Content))
		return
	}

	nodes, err := p.cfg.Nodes()
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	_ = outline.Walk(nodes, func(s outline.Step) error {
		if !s.Node.IsLeaf() {
			return nil
		}
		result.Project.Pages++
		file := filepath.Join(result.Project.Content, filepath.FromSlash(string(s.Node.Ref())))
		if !fileutil.FileExists(file) {
			result.Project.Missing = append(result.Project.Missing, string(s.Node.Ref()))
		}
		return nil
	})
	if n := len(result.Project.Missing); n > 0 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("%d content files missing from %s", n, result.Project.Content))
	}
}

// doctorLine is one "[LEVEL] text" row of the human-readable report.
type doctorLine struct {
	level string // OK, WARN or ERROR
	text  string
}

// printDoctorResult outputs human-readable diagnostic results, one block per
// check followed by the collected warnings and errors.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "handbook doctor")

	blocks := []struct {
		title string
		lines []doctorLine
	}{
		{"PDF browser", chromeLines(r.Chrome)},
		{"Environment", envLines(r.Env)},
		{"System", systemLines(r.System)},
		{"Handbook", projectLines(r.Project)},
	}
	for _, b := range blocks {
		fmt.Fprintf(w, "\n%s\n", b.title)
		for _, l := range b.lines {
			fmt.Fprintf(w, "  [%s] %s\n", l.level, l.text)
		}
	}

	for _, group := range []struct {
		title, level string
		items        []string
	}{
		{"Warnings:", "WARN", r.Warnings},
		{"Errors:", "ERROR", r.Errors},
	} {
		if len(group.items) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", group.title)
		for _, item := range group.items {
			fmt.Fprintf(w, "  [%s] %s\n", group.level, item)
		}
	}

	fmt.Fprintln(w)
	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: ready to build and export")
	case statusWarnings:
		fmt.Fprintln(w, "Status: ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: not ready (see errors above)")
	}
}

func chromeLines(c chromeInfo) []doctorLine {
	if !c.Found {
		return []doctorLine{{"ERROR", "Chrome/Chromium not found; pdf will fail"}}
	}
	lines := []doctorLine{{"OK", "Found at " + c.Path}}
	if c.Version != "" {
		lines = append(lines, doctorLine{"OK", "Version: " + c.Version})
	}
	sandbox := "Sandbox: enabled"
	if !c.Sandbox {
		sandbox = "Sandbox: disabled (ROD_NO_SANDBOX=1)"
	}
	return append(lines, doctorLine{"OK", sandbox})
}

func envLines(e envInfo) []doctorLine {
	lines := []doctorLine{{"OK", "Platform: " + e.OS + "/" + e.Arch}}
	if e.Container {
		lines = append(lines, doctorLine{"OK", "Container: detected (" + e.ContainerHint + ")"})
	}
	if e.CI {
		lines = append(lines, doctorLine{"OK", "CI: detected"})
	}
	return lines
}

func systemLines(s systemInfo) []doctorLine {
	if !s.TempWritable {
		return []doctorLine{{"ERROR", "Temp directory: not writable"}}
	}
	return []doctorLine{{"OK", "Temp directory: writable"}}
}

func projectLines(p projectInfo) []doctorLine {
	if p.Config == "" {
		return []doctorLine{{"WARN", "No config found; build, serve and pdf need one"}}
	}
	lines := []doctorLine{
		{"OK", "Config: " + p.Config},
		{"OK", "Content: " + p.Content},
		{"OK", fmt.Sprintf("Pages: %d", p.Pages)},
	}
	for _, ref := range p.Missing {
		lines = append(lines, doctorLine{"ERROR", "Missing content: " + ref})
	}
	return lines
}
