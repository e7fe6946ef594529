package main

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-handbook/internal/config"
)

const envPrefix = "HANDBOOK_"

// envConfig holds overrides read from HANDBOOK_* variables.
type envConfig struct {
	ConfigPath string        // HANDBOOK_CONFIG: config name or path
	ContentDir string        // HANDBOOK_CONTENT_DIR
	OutputDir  string        // HANDBOOK_OUTPUT_DIR
	Style      string        // HANDBOOK_STYLE: style and template set name
	Highlight  string        // HANDBOOK_HIGHLIGHT: chroma style
	Workers    int           // HANDBOOK_WORKERS
	Timeout    time.Duration // HANDBOOK_TIMEOUT: PDF timeout
}

// knownEnvVars lists the recognized HANDBOOK_* variables, to catch typos.
var knownEnvVars = map[string]bool{
	"HANDBOOK_CONFIG":      true,
	"HANDBOOK_CONTENT_DIR": true,
	"HANDBOOK_OUTPUT_DIR":  true,
	"HANDBOOK_STYLE":       true,
	"HANDBOOK_HIGHLIGHT":   true,
	"HANDBOOK_WORKERS":     true,
	"HANDBOOK_TIMEOUT":     true,
	"HANDBOOK_CONTAINER":   true, // read by doctor
}

// loadEnvConfig reads HANDBOOK_* variables. Unparsable numbers and
// durations are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	e := &envConfig{
		ConfigPath: getenv("HANDBOOK_CONFIG"),
		ContentDir: getenv("HANDBOOK_CONTENT_DIR"),
		OutputDir:  getenv("HANDBOOK_OUTPUT_DIR"),
		Style:      getenv("HANDBOOK_STYLE"),
		Highlight:  getenv("HANDBOOK_HIGHLIGHT"),
	}
	if v := getenv("HANDBOOK_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			e.Workers = n
		}
	}
	if v := getenv("HANDBOOK_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			e.Timeout = d
		}
	}
	return e
}

// warnUnknownEnvVars warns about HANDBOOK_* variables nobody reads.
func warnUnknownEnvVars(logger *log.Logger, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig overrides config values with the variables that are set.
// Directories are relative to the working directory, not the config file.
// Precedence: flags > environment > config file > defaults.
func applyEnvConfig(e *envConfig, cfg *config.Config) {
	if e.ContentDir != "" {
		cfg.Content.Dir = absPath(e.ContentDir)
	}
	if e.OutputDir != "" {
		cfg.Output.Dir = absPath(e.OutputDir)
	}
	if e.Style != "" {
		cfg.Style.Name = e.Style
	}
	if e.Highlight != "" {
		cfg.Style.Highlight = e.Highlight
	}
	if e.Timeout > 0 {
		cfg.PDF.Timeout = e.Timeout.String()
	}
}

// absPath makes p absolute, returning it unchanged when that fails.
func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
