// Package story2pdf renders structured stories into paginated HTML book
// documents and converts them to PDF using headless Chrome.
//
// # Quick Start
//
// Create a service, convert a story, and close when done:
//
//	svc, err := story2pdf.NewService()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer svc.Close()
//
//	result, err := svc.Convert(ctx, story2pdf.Input{
//	    Story: story2pdf.Story{
//	        Title:  "The Clockwork Fox",
//	        Author: "R. Ansel",
//	        Chapters: []story2pdf.Chapter{
//	            {Number: 1, Title: "The Workshop", Content: "It began at dusk.\nRain fell."},
//	        },
//	    },
//	    CoverImage: "https://example.com/cover.png",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("book.pdf", result.PDF, 0644)
//
// The result contains both the PDF bytes (result.PDF) and the rendered
// HTML (result.HTML). Use Input.HTMLOnly to skip PDF generation.
//
// # Rendering Contract
//
// The rendered document contains one cover section (cover image, story
// title, "By {author}") followed by one section per chapter in sequence
// order. Chapter body text is split into paragraphs on newline characters;
// a segment is rendered only if it is non-empty after trimming, and the
// original untrimmed text is what gets rendered. A decorative divider
// separates adjacent chapters, and each chapter carries a page-number label
// derived from its position. Rendering is deterministic: the same Story
// always produces byte-identical output.
//
// Story fields are not validated or defaulted. Empty fields render blank,
// matching the behavior of a template engine given incomplete data.
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc, err := story2pdf.NewService(
//	    story2pdf.WithTimeout(2 * time.Minute),
//	    story2pdf.WithStyle("book"),
//	    story2pdf.WithMarkdown(),
//	)
//
// WithMarkdown switches chapter content from the newline-paragraph rule to
// Markdown rendering via Goldmark.
//
// # Parallel Processing
//
// For batch conversion, use ServicePool to manage multiple browser
// instances:
//
//	pool := story2pdf.NewServicePool(4)
//	defer pool.Close()
//
//	svc, err := pool.Acquire()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Release(svc)
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package story2pdf
