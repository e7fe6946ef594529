package main

import (
	"errors"
	"os"

	handbook "github.com/alnah/go-handbook"
	"github.com/alnah/go-handbook/internal/config"
	"github.com/alnah/go-handbook/internal/server"
)

// Exit codes follow Unix conventions: 0 success, 1 general, 2 usage, and
// custom codes below 126.
const (
	ExitSuccess = 0 // command succeeded
	ExitGeneral = 1 // unexpected error, broken links
	ExitUsage   = 2 // invalid flags, config, outline or content
	ExitIO      = 3 // file not found, permission denied, write failure
	ExitBrowser = 4 // Chrome errors during PDF export
)

// exitCodeFor returns the exit code for err, matching wrapped errors.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, handbook.ErrBrowserConnect) ||
		errors.Is(err, handbook.ErrPageCreate) ||
		errors.Is(err, handbook.ErrPageLoad) ||
		errors.Is(err, handbook.ErrPDFGeneration) {
		return ExitBrowser
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, handbook.ErrContentNotFound) ||
		errors.Is(err, handbook.ErrContentRead) ||
		errors.Is(err, handbook.ErrWriteSite) ||
		errors.Is(err, ErrWritePDF) ||
		errors.Is(err, server.ErrWatch) {
		return ExitIO
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrInvalidOutline) ||
		errors.Is(err, handbook.ErrMalformedOutline) ||
		errors.Is(err, handbook.ErrDuplicatePath) ||
		errors.Is(err, handbook.ErrEmptyDocument) ||
		errors.Is(err, handbook.ErrInvalidContentRef) ||
		errors.Is(err, handbook.ErrInvalidPagePath) ||
		errors.Is(err, handbook.ErrInvalidPDFPage) ||
		errors.Is(err, handbook.ErrInvalidAssetPath) ||
		errors.Is(err, handbook.ErrStyleNotFound) ||
		errors.Is(err, handbook.ErrTemplateSetNotFound) ||
		errors.Is(err, handbook.ErrIncompleteTemplateSet) ||
		errors.Is(err, handbook.ErrHighlightStyleNotFound) {
		return ExitUsage
	}

	return ExitGeneral
}
