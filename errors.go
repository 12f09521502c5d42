package story2pdf

import (
	"errors"

	"github.com/alnah/go-story2pdf/internal/assets"
	"github.com/alnah/go-story2pdf/internal/render"
)

// Sentinel errors for library operations.
var (
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPoolClosed     = errors.New("service pool is closed")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Asset loading errors. Aliased from the internal package so errors.Is
	// works on errors surfaced through the public API.
	ErrStyleNotFound         = assets.ErrStyleNotFound
	ErrTemplateSetNotFound   = assets.ErrTemplateSetNotFound
	ErrIncompleteTemplateSet = assets.ErrIncompleteTemplateSet
	ErrInvalidAssetPath      = errors.New("invalid asset path")

	// Rendering errors.
	ErrDocumentRender     = render.ErrDocumentRender
	ErrMarkdownConversion = render.ErrMarkdownConversion
)
