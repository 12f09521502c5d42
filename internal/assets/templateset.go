package assets

// TemplateSet holds the HTML templates for book rendering.
// A template set currently contains a single document template covering the
// cover page, chapter sections, and closing moral section.
type TemplateSet struct {
	Name     string // Identifier (name or directory path)
	Document string // Book document template HTML content
}

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "book"

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "book"
