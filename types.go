package story2pdf

import (
	"fmt"
	"strings"
	"time"
)

// Story is the top-level document entity: title, author, and an ordered
// sequence of chapters. Chapter order is rendering order and determines
// divider placement and page-number labels.
//
// Field tags follow the wire format of story documents: "title", "author",
// "moral", "chapters". None of the fields are validated; empty values
// render blank.
type Story struct {
	Title    string    `json:"title" yaml:"title"`
	Author   string    `json:"author" yaml:"author"`
	Moral    string    `json:"moral,omitempty" yaml:"moral,omitempty"`
	Chapters []Chapter `json:"chapters" yaml:"chapters"`
}

// Chapter is one unit of a story with its own title, image, and body text.
// Number is the ordinal shown in the chapter header; it is expected to match
// the chapter's position in the sequence but is not enforced.
type Chapter struct {
	Number      int               `json:"chapter_number" yaml:"chapter_number"`
	Title       string            `json:"chapter_title" yaml:"chapter_title"`
	Image       string            `json:"image" yaml:"image"`
	ImagePrompt string            `json:"image_prompt,omitempty" yaml:"image_prompt,omitempty"`
	Content     string            `json:"content" yaml:"content"`
	Terminology map[string]string `json:"terminology,omitempty" yaml:"terminology,omitempty"`
}

// Page size constants.
const (
	PageSizeA4     = "a4"
	PageSizeLetter = "letter"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds and defaults in centimeters. The defaults match the book
// layout: 2.5cm top/bottom, 2cm sides on A4.
const (
	MinMargin               = 0.5
	MaxMargin               = 8.0
	DefaultMarginVertical   = 2.5
	DefaultMarginHorizontal = 2.0
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size             string  // "a4", "letter", "legal"
	Orientation      string  // "portrait", "landscape"
	MarginVertical   float64 // centimeters, top and bottom
	MarginHorizontal float64 // centimeters, left and right
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:             PageSizeA4,
		Orientation:      OrientationPortrait,
		MarginVertical:   DefaultMarginVertical,
		MarginHorizontal: DefaultMarginHorizontal,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.MarginVertical < MinMargin || p.MarginVertical > MaxMargin {
		return fmt.Errorf("%w: vertical %.2fcm (must be between %.2f and %.2f)", ErrInvalidMargin, p.MarginVertical, MinMargin, MaxMargin)
	}

	if p.MarginHorizontal < MinMargin || p.MarginHorizontal > MaxMargin {
		return fmt.Errorf("%w: horizontal %.2fcm (must be between %.2f and %.2f)", ErrInvalidMargin, p.MarginHorizontal, MinMargin, MaxMargin)
	}

	return nil
}

// isValidPageSize checks if size is a known page size (case-insensitive).
func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeA4, PageSizeLetter, PageSizeLegal:
		return true
	}
	return false
}

// isValidOrientation checks if orientation is valid (case-insensitive).
func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// Input contains conversion parameters.
//
// Story and CoverImage are rendered as supplied: missing or empty fields are
// not an error, they render blank. Only Page is validated.
type Input struct {
	Story      Story         // Story to render
	CoverImage string        // Cover image path or URL (optional)
	CSS        string        // Extra CSS appended after the document style (optional)
	Page       *PageSettings // Page settings (optional, nil = defaults)
	HTMLOnly   bool          // Skip PDF generation, return HTML only
}

// Result holds the rendered document.
type Result struct {
	HTML []byte // Rendered HTML document (always set)
	PDF  []byte // PDF bytes (empty when Input.HTMLOnly is set)
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout       time.Duration
	styleInput    string // name, path, or raw CSS (resolved in NewService)
	resolvedStyle string
	templateInput string // template set name (empty = default)
	assetPath     string
	markdown      bool
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF generation timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("story2pdf: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithStyle sets the document style. The value may be a style name from the
// asset loader, a path to a CSS file, or raw CSS content.
func WithStyle(style string) Option {
	return func(s *Service) {
		s.cfg.styleInput = style
	}
}

// WithTemplateSet selects a named template set from the asset loader.
func WithTemplateSet(name string) Option {
	return func(s *Service) {
		s.cfg.templateInput = name
	}
}

// WithAssetPath loads styles and template sets from a custom directory
// instead of the embedded assets. Missing assets fall back to embedded ones.
func WithAssetPath(path string) Option {
	return func(s *Service) {
		s.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader.
func WithAssetLoader(loader AssetLoader) Option {
	return func(s *Service) {
		s.publicAssetLoader = loader
	}
}

// WithMarkdown renders chapter content as Markdown (GFM with syntax
// highlighting) instead of splitting it into paragraphs on newlines.
func WithMarkdown() Option {
	return func(s *Service) {
		s.cfg.markdown = true
	}
}
