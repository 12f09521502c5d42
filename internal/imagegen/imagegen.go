// Package imagegen builds image URLs for stories whose chapters carry an
// image prompt but no image. URLs point at the pollinations.ai generation
// endpoint, which renders an image for the prompt on first fetch.
package imagegen

import (
	"fmt"
	"net/url"

	story2pdf "github.com/alnah/go-story2pdf"
)

// Default image dimensions in pixels.
const (
	DefaultChapterWidth  = 800
	DefaultChapterHeight = 600
	DefaultCoverWidth    = 400
	DefaultCoverHeight   = 550
)

const baseURL = "https://image.pollinations.ai/prompt/"

// Fallback prompts used when a chapter or cover has neither an image nor
// a usable prompt.
const (
	fallbackChapterPrompt = "scenic view"
	fallbackCoverPrompt   = "book cover"
)

// Options control generated image dimensions.
type Options struct {
	ChapterWidth  int
	ChapterHeight int
	CoverWidth    int
	CoverHeight   int
}

// DefaultOptions returns the standard dimensions.
func DefaultOptions() Options {
	return Options{
		ChapterWidth:  DefaultChapterWidth,
		ChapterHeight: DefaultChapterHeight,
		CoverWidth:    DefaultCoverWidth,
		CoverHeight:   DefaultCoverHeight,
	}
}

// URL builds a generation URL for the prompt at the given dimensions.
// The prompt is path-escaped; nologo strips the provider watermark.
func URL(prompt string, width, height int) string {
	return fmt.Sprintf("%s%s?width=%d&height=%d&nologo=true",
		baseURL, url.PathEscape(prompt), width, height)
}

// CoverPrompt derives a cover image prompt from the story title.
func CoverPrompt(title string) string {
	return fmt.Sprintf("A professional book cover with a title on it, '%s', fantasy art", title)
}

// FillMissing populates empty image fields on the story and returns the
// cover image URL to use. Chapters that already have an image are left
// alone; chapters with a prompt get a generated URL; chapters with
// neither get a fallback.
func FillMissing(story *story2pdf.Story, coverImage string, opts Options) string {
	for i := range story.Chapters {
		ch := &story.Chapters[i]
		if ch.Image != "" {
			continue
		}
		prompt := ch.ImagePrompt
		if prompt == "" {
			prompt = fallbackChapterPrompt
		}
		ch.Image = URL(prompt, opts.ChapterWidth, opts.ChapterHeight)
	}

	if coverImage != "" {
		return coverImage
	}
	prompt := fallbackCoverPrompt
	if story.Title != "" {
		prompt = CoverPrompt(story.Title)
	}
	return URL(prompt, opts.CoverWidth, opts.CoverHeight)
}
