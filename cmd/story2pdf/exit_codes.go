package main

import (
	"errors"
	"os"

	story2pdf "github.com/alnah/go-story2pdf"
	"github.com/alnah/go-story2pdf/internal/config"
	"github.com/alnah/go-story2pdf/internal/storyfile"
)

// Exit codes for the story2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, story2pdf.ErrBrowserConnect) ||
		errors.Is(err, story2pdf.ErrPageCreate) ||
		errors.Is(err, story2pdf.ErrPageLoad) ||
		errors.Is(err, story2pdf.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadStory) ||
		errors.Is(err, ErrWritePDF) ||
		errors.Is(err, ErrWriteHTML) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, storyfile.ErrUnsupportedFormat) ||
		errors.Is(err, storyfile.ErrStoryParse) ||
		errors.Is(err, story2pdf.ErrInvalidPageSize) ||
		errors.Is(err, story2pdf.ErrInvalidOrientation) ||
		errors.Is(err, story2pdf.ErrInvalidMargin) ||
		errors.Is(err, story2pdf.ErrStyleNotFound) ||
		errors.Is(err, story2pdf.ErrTemplateSetNotFound) ||
		errors.Is(err, story2pdf.ErrIncompleteTemplateSet) ||
		errors.Is(err, story2pdf.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) {
		return ExitUsage
	}

	return ExitGeneral
}
