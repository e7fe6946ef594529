package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	handbook "github.com/alnah/go-handbook"
	"github.com/alnah/go-handbook/internal/assets"
	"github.com/alnah/go-handbook/internal/config"
	"github.com/alnah/go-handbook/internal/hints"
)

// runMain dispatches args[1] to its command and returns the exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}
	cmd, rest := args[1], args[2:]

	switch cmd {
	case "help", "-h", "--help":
		return runHelp(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "go-handbook %s\n", Version)
		return ExitSuccess
	case "doctor":
		return runDoctorCmd(rest, env)
	}

	err := runCommand(ctx, cmd, rest, env)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "handbook %s: %v%s\n", cmd, err, hintFor(err, env))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

func runCommand(ctx context.Context, cmd string, args []string, env *Environment) error {
	var (
		common *commonFlags
		run    func(context.Context) error
	)

	switch cmd {
	case "build":
		f, err := parseBuildFlags(args, env.Stderr)
		if err != nil {
			return err
		}
		common = &f.site.common
		run = func(ctx context.Context) error { return runBuild(ctx, f, env) }
	case "serve":
		f, err := parseServeFlags(args, env.Stderr)
		if err != nil {
			return err
		}
		common = &f.site.common
		run = func(ctx context.Context) error { return runServe(ctx, f, env) }
	case "pdf":
		f, err := parsePDFFlags(args, env.Stderr)
		if err != nil {
			return err
		}
		common = &f.site.common
		run = func(ctx context.Context) error { return runPDF(ctx, f, env) }
	case "check":
		f, err := parseCheckFlags(args, env.Stderr)
		if err != nil {
			return err
		}
		common = &f.common
		run = func(ctx context.Context) error { return runCheck(ctx, f, env) }
	case "routes":
		f, err := parseOutlineFlags(cmd, args, env.Stderr, printRoutesUsage)
		if err != nil {
			return err
		}
		common = &f.common
		run = func(context.Context) error { return runRoutes(f, env) }
	case "nav":
		f, err := parseOutlineFlags(cmd, args, env.Stderr, printNavUsage)
		if err != nil {
			return err
		}
		common = &f.common
		run = func(context.Context) error { return runNav(f, env) }
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}

	logger := newLogger(env.Stderr, levelFor(common.quiet, common.verbose))
	warnUnknownEnvVars(logger, env.Environ())
	return run(withLogger(ctx, logger))
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, env *Environment) string {
	switch {
	case errors.Is(err, handbook.ErrBrowserConnect),
		errors.Is(err, handbook.ErrPageCreate):
		return hints.ForBrowserConnect()
	case errors.Is(err, handbook.ErrPageLoad),
		errors.Is(err, handbook.ErrPDFGeneration),
		errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		var searched []string
		if dir, derr := os.UserConfigDir(); derr == nil {
			searched = append(searched, filepath.Join(dir, config.AppDir, defaultConfigName+".yaml"))
		}
		return hints.ForConfigNotFound(searched)
	case errors.Is(err, handbook.ErrContentNotFound):
		return hints.ForContentNotFound(contentDirHint(env))
	case errors.Is(err, handbook.ErrWriteSite), errors.Is(err, ErrWritePDF):
		return hints.ForOutputDirectory()
	case errors.Is(err, handbook.ErrHighlightStyleNotFound):
		return hints.ForStyleNotFound(assets.HighlightStyles())
	case errors.Is(err, config.ErrInvalidOutline),
		errors.Is(err, handbook.ErrMalformedOutline):
		return hints.ForMalformedOutline()
	}
	return ""
}

// contentDirHint names the content directory set by the environment, if
// any. The error itself already names the directory that was searched.
func contentDirHint(env *Environment) string {
	return loadEnvConfig(env.Getenv).ContentDir
}
