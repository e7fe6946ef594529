package handbook

import (
	"errors"

	"github.com/alnah/go-handbook/internal/assets"
	"github.com/alnah/go-handbook/internal/layout"
	"github.com/alnah/go-handbook/internal/outline"
	"github.com/alnah/go-handbook/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrNoLoader          = errors.New("no content loader")
	ErrContentNotFound   = errors.New("content not found")
	ErrContentRead       = errors.New("failed to read content")
	ErrInvalidContentRef = errors.New("invalid content reference")
	ErrInvalidAssetPath  = errors.New("invalid asset path")
	ErrInvalidPagePath   = errors.New("page path cannot be written to disk")
	ErrWriteSite         = errors.New("failed to write site")

	// PDF export errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrInvalidPDFPage = errors.New("invalid PDF page settings")
)

// Errors from the build stages, re-exported for errors.Is checks.
var (
	ErrMalformedOutline       = outline.ErrMalformedNode
	ErrDuplicatePath          = outline.ErrDuplicatePath
	ErrEmptyDocument          = layout.ErrEmptyDocument
	ErrHTMLConversion         = pipeline.ErrHTMLConversion
	ErrPageRender             = pipeline.ErrPageRender
	ErrStyleNotFound          = assets.ErrStyleNotFound
	ErrTemplateSetNotFound    = assets.ErrTemplateSetNotFound
	ErrIncompleteTemplateSet  = assets.ErrIncompleteTemplateSet
	ErrHighlightStyleNotFound = assets.ErrHighlightStyleNotFound
)
