package story2pdf

import (
	"context"
	"fmt"
	"os"

	"github.com/alnah/go-story2pdf/internal/assets"
	"github.com/alnah/go-story2pdf/internal/fileutil"
	"github.com/alnah/go-story2pdf/internal/render"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ render.ContentConverter = (*render.MarkdownConverter)(nil)
	_ render.CSSInjector      = (*render.CSSInjection)(nil)
	_ pdfConverter            = (*rodConverter)(nil)
	_ pdfRenderer             = (*rodRenderer)(nil)
)

// Service orchestrates the story-to-PDF pipeline.
// Create with NewService(), use Convert() for conversion, and Close() when done.
type Service struct {
	cfg               serviceConfig
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader // from WithAssetLoader
	renderer          *render.DocumentRenderer
	cssInjector       render.CSSInjector
	pdfConverter      pdfConverter
}

// NewService creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithStyle, WithMarkdown).
// Returns error if asset loading or template parsing fails.
func NewService(opts ...Option) (*Service, error) {
	s := &Service{
		cfg:         serviceConfig{timeout: defaultTimeout},
		assetLoader: assets.NewEmbeddedLoader(),
		cssInjector: &render.CSSInjection{},
	}

	for _, opt := range opts {
		opt(s)
	}

	// Handle WithAssetPath: resolve to internal loader
	if s.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(s.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		s.assetLoader = resolver
	}

	// Handle WithAssetLoader (public interface): wrap to internal interface
	if s.publicAssetLoader != nil {
		s.assetLoader = &publicToInternalAdapter{pub: s.publicAssetLoader}
	}

	// Resolve style input (name, path, or CSS content) to CSS content
	if err := s.resolveStyle(); err != nil {
		return nil, err
	}

	// Load template set and build the document renderer
	setName := s.cfg.templateInput
	if setName == "" {
		setName = assets.DefaultTemplateSetName
	}
	templateSet, err := s.assetLoader.LoadTemplateSet(setName)
	if err != nil {
		return nil, fmt.Errorf("loading template set: %w", err)
	}

	var content render.ContentConverter
	if s.cfg.markdown {
		content = render.NewMarkdownConverter()
	}

	s.renderer, err = render.NewDocumentRenderer(templateSet.Document, content)
	if err != nil {
		return nil, fmt.Errorf("initializing document renderer: %w", err)
	}

	// Create PDF converter if not injected (e.g., by tests)
	if s.pdfConverter == nil {
		s.pdfConverter = newRodConverter(s.cfg.timeout)
	}

	return s, nil
}

// Convert renders the story to HTML and converts it to PDF.
// The context is used for cancellation and timeout.
// If input.HTMLOnly is true, PDF generation is skipped.
// Recovers from internal panics to prevent crashes from propagating to callers.
//
// Story fields are not validated: missing or empty fields render blank,
// and a Story with zero chapters renders a cover-only document.
func (s *Service) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	// Render the story into a complete HTML document
	htmlContent, err := s.renderer.Render(ctx, toStoryData(input))
	if err != nil {
		return nil, fmt.Errorf("rendering document: %w", err)
	}

	page := input.Page
	if page == nil {
		page = DefaultPageSettings()
	}

	// Build combined CSS (page geometry + document style + user CSS)
	// Order matters: page rules first, user CSS last (can override)
	cssContent := buildPageCSS(page)
	if s.cfg.resolvedStyle != "" {
		cssContent += "\n" + s.cfg.resolvedStyle
	}
	if input.CSS != "" {
		cssContent += "\n" + input.CSS
	}

	// Inject CSS
	htmlContent = s.cssInjector.InjectCSS(ctx, htmlContent, cssContent)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Prepare result with HTML
	res := &Result{
		HTML: []byte(htmlContent),
	}

	// Skip PDF generation if HTMLOnly mode
	if input.HTMLOnly {
		return res, nil
	}

	// Convert to PDF
	pdfBytes, err := s.pdfConverter.ToPDF(ctx, htmlContent, &pdfOptions{Page: page})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}

	res.PDF = pdfBytes
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.pdfConverter != nil {
		return s.pdfConverter.Close()
	}
	return nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
// Called during NewService() after options are applied and asset loader is configured.
// An empty style input loads the default book style.
func (s *Service) resolveStyle() error {
	input := s.cfg.styleInput
	if input == "" {
		css, err := s.assetLoader.LoadStyle(assets.DefaultStyleName)
		if err != nil {
			return fmt.Errorf("loading default style: %w", err)
		}
		s.cfg.resolvedStyle = css
		return nil
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		s.cfg.resolvedStyle = string(content)
		return nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		s.cfg.resolvedStyle = input
		return nil
	}

	// Style name -> use asset loader
	css, err := s.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	s.cfg.resolvedStyle = css
	return nil
}

// validateInput checks converter-level inputs. Story fields are deliberately
// NOT validated (missing fields render blank); only page settings are.
func (s *Service) validateInput(input Input) error {
	return input.Page.Validate()
}

// toStoryData converts the public Input to the internal render.StoryData.
func toStoryData(input Input) *render.StoryData {
	chapters := make([]render.ChapterData, len(input.Story.Chapters))
	for i, ch := range input.Story.Chapters {
		chapters[i] = render.ChapterData{
			Number:      ch.Number,
			Title:       ch.Title,
			Image:       ch.Image,
			Content:     ch.Content,
			Terminology: ch.Terminology,
		}
	}
	return &render.StoryData{
		Title:      input.Story.Title,
		Author:     input.Story.Author,
		Moral:      input.Story.Moral,
		CoverImage: input.CoverImage,
		Chapters:   chapters,
	}
}
