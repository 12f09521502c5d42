package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrMarkdownConversion indicates Markdown conversion failed.
var ErrMarkdownConversion = errors.New("markdown conversion failed")

// MarkdownConverter converts chapter body Markdown to an HTML fragment
// using goldmark (pure Go).
type MarkdownConverter struct {
	md goldmark.Markdown
}

// NewMarkdownConverter creates a MarkdownConverter with GFM extensions and
// syntax highlighting.
func NewMarkdownConverter() *MarkdownConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes for smaller HTML and external stylesheet control
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // Treat newlines as <br>, like the paragraph rule treats them as breaks
			html.WithXHTML(),     // Self-closing tags
			// Note: WithUnsafe() intentionally NOT used. Raw HTML in chapter
			// content stays escaped.
		),
	)
	return &MarkdownConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment suitable for
// embedding in a chapter section. Supports context cancellation via
// goroutine + select pattern since Goldmark doesn't natively support context.
func (c *MarkdownConverter) ToHTML(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrMarkdownConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// Compile-time interface check.
var _ ContentConverter = (*MarkdownConverter)(nil)
