package story2pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-story2pdf/internal/fileutil"
)

// pdfOptions carries per-conversion PDF parameters.
type pdfOptions struct {
	Page *PageSettings
}

// pdfConverter converts HTML content to PDF bytes.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfRenderer renders an HTML file to PDF via a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, htmlPath string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// rodRenderer renders HTML files to PDF using a headless Chrome browser
// controlled through go-rod. The browser is launched lazily on first use
// and reused across conversions.
type rodRenderer struct {
	mu      sync.Mutex
	browser *rod.Browser
	timeout time.Duration
}

func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser launches the browser if not already running.
// Must be called with r.mu held.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New().Headless(true)

	// Allow overriding the browser binary (e.g., system Chromium in containers)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// Sandboxing must be disabled in most container environments
	if os.Getenv("ROD_NO_SANDBOX") != "" || runningInCI() {
		l = l.NoSandbox(true)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = browser
	return nil
}

// runningInCI reports whether we appear to run in a CI environment.
func runningInCI() bool {
	return os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != ""
}

// RenderFromFile loads the HTML file in the browser and prints it to PDF.
func (r *rodRenderer) RenderFromFile(ctx context.Context, htmlPath string, opts *pdfOptions) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	timeout := r.timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	absPath, err := filepath.Abs(htmlPath)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving path: %v", ErrPageLoad, err)
	}
	fileURL := "file://" + filepath.ToSlash(absPath)

	page, err := r.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: fileURL})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	pdfStream, err := page.PDF(buildPDFOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBytes, err := io.ReadAll(pdfStream)
	if err != nil {
		return nil, fmt.Errorf("%w: reading stream: %v", ErrPDFGeneration, err)
	}
	if len(pdfBytes) == 0 {
		return nil, fmt.Errorf("%w: empty output", ErrPDFGeneration)
	}
	return pdfBytes, nil
}

// Close shuts down the browser if it was launched.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.browser = nil
	return err
}

// buildPDFOptions translates page settings into Chrome's PrintToPDF parameters.
// Paper dimensions are in inches; margins convert from centimeters.
func buildPDFOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	page := DefaultPageSettings()
	if opts != nil && opts.Page != nil {
		page = opts.Page
	}

	var width, height float64
	switch strings.ToLower(page.Size) {
	case PageSizeLetter:
		width, height = 8.5, 11.0
	case PageSizeLegal:
		width, height = 8.5, 14.0
	default: // a4
		width, height = 8.27, 11.69
	}

	landscape := strings.EqualFold(page.Orientation, OrientationLandscape)
	if landscape {
		width, height = height, width
	}

	const cmPerInch = 2.54
	marginV := page.MarginVertical / cmPerInch
	marginH := page.MarginHorizontal / cmPerInch

	printBackground := true
	return &proto.PagePrintToPDF{
		Landscape:       landscape,
		PrintBackground: printBackground,
		PaperWidth:      &width,
		PaperHeight:     &height,
		MarginTop:       &marginV,
		MarginBottom:    &marginV,
		MarginLeft:      &marginH,
		MarginRight:     &marginH,
	}
}

// rodConverter converts HTML strings to PDF by writing a temp file and
// rendering it through a pdfRenderer.
type rodConverter struct {
	renderer pdfRenderer
}

func newRodConverter(timeout time.Duration) *rodConverter {
	return &rodConverter{renderer: newRodRenderer(timeout)}
}

// ToPDF writes htmlContent to a temporary file and renders it.
// The temp file is removed after rendering.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	htmlPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: writing temp file: %v", ErrPDFGeneration, err)
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, htmlPath, opts)
}

// Close releases the underlying renderer.
func (c *rodConverter) Close() error {
	return c.renderer.Close()
}
