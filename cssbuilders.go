package story2pdf

import (
	"fmt"
	"strings"
)

// buildPageCSS produces the @page rule and print break rules for the given
// settings. These rules are injected ahead of the document style so the
// style can refine but not remove the page geometry.
//
// The break rules implement the book layout: the cover fills the first
// page, and every chapter starts on a fresh page.
func buildPageCSS(page *PageSettings) string {
	if page == nil {
		page = DefaultPageSettings()
	}

	return fmt.Sprintf(`@page { size: %s %s; margin: %gcm %gcm; }
.cover { page-break-after: always; }
.chapter { page-break-before: always; }`,
		cssPageSizeKeyword(page.Size),
		strings.ToLower(page.Orientation),
		page.MarginVertical,
		page.MarginHorizontal,
	)
}

// cssPageSizeKeyword maps a page size to its CSS @page keyword.
// CSS spells A4 uppercase; letter and legal are lowercase keywords.
func cssPageSizeKeyword(size string) string {
	switch strings.ToLower(size) {
	case PageSizeLetter:
		return "letter"
	case PageSizeLegal:
		return "legal"
	default:
		return "A4"
	}
}
