package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"sort"
	"strings"
)

// ErrDocumentRender indicates the document template failed to render.
var ErrDocumentRender = errors.New("document rendering failed")

// StoryData holds the story content handed to the renderer.
// Fields are rendered as supplied: empty values render blank.
type StoryData struct {
	Title      string
	Author     string
	Moral      string
	CoverImage string
	Chapters   []ChapterData
}

// ChapterData holds one chapter of story content.
type ChapterData struct {
	Number      int
	Title       string
	Image       string
	Content     string
	Terminology map[string]string
}

// ContentConverter abstracts chapter body conversion (e.g., Markdown to HTML).
type ContentConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// DocumentRenderer executes the book document template over a view model
// built from story data.
type DocumentRenderer struct {
	tmpl    *template.Template
	content ContentConverter // nil = newline paragraph splitting
}

// NewDocumentRenderer creates a DocumentRenderer from template content.
// A nil content converter selects the default paragraph rule: chapter body
// text is split on newlines into paragraph elements.
// Returns error if the template cannot be parsed.
func NewDocumentRenderer(tmplContent string, content ContentConverter) (*DocumentRenderer, error) {
	tmpl, err := template.New("document").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing document template: %w", err)
	}

	return &DocumentRenderer{tmpl: tmpl, content: content}, nil
}

// Render produces the complete HTML document for the given story data.
func (r *DocumentRenderer) Render(ctx context.Context, data *StoryData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	model, err := r.buildModel(ctx, data)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, model); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}

	return buf.String(), nil
}

// documentModel is the view model the document template executes over.
type documentModel struct {
	Title      string
	Author     string
	Moral      string
	CoverImage string
	Chapters   []chapterModel
}

// chapterModel is one chapter prepared for rendering. Exactly one of Body
// (Markdown mode) and Paragraphs (default mode) carries the chapter text.
type chapterModel struct {
	Number      int
	Title       string
	Image       string
	Paragraphs  []string
	Body        template.HTML
	Terminology []termEntry
	Divider     bool
	PageLabel   int
}

// termEntry is a single word-guide entry.
type termEntry struct {
	Word       string
	Definition string
}

// buildModel derives the view model: paragraph filtering, divider placement
// (between adjacent chapters only), and the page-number label for each
// chapter. The label is the chapter's 1-based position doubled - a cosmetic
// figure carried over from the legacy template, not real pagination.
func (r *DocumentRenderer) buildModel(ctx context.Context, data *StoryData) (*documentModel, error) {
	model := &documentModel{
		Title:      data.Title,
		Author:     data.Author,
		Moral:      data.Moral,
		CoverImage: data.CoverImage,
		Chapters:   make([]chapterModel, 0, len(data.Chapters)),
	}

	for i, ch := range data.Chapters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cm := chapterModel{
			Number:      ch.Number,
			Title:       ch.Title,
			Image:       ch.Image,
			Terminology: sortTerminology(ch.Terminology),
			Divider:     i < len(data.Chapters)-1,
			PageLabel:   (i + 1) * 2,
		}

		if r.content != nil {
			body, err := r.content.ToHTML(ctx, ch.Content)
			if err != nil {
				return nil, fmt.Errorf("converting chapter %d content: %w", ch.Number, err)
			}
			// The converter's output is trusted HTML; everything else in the
			// model goes through the template's contextual escaping.
			cm.Body = template.HTML(body) // #nosec G203 -- Goldmark output without WithUnsafe
		} else {
			cm.Paragraphs = SplitParagraphs(ch.Content)
		}

		model.Chapters = append(model.Chapters, cm)
	}

	return model, nil
}

// SplitParagraphs splits chapter body text on newline characters and keeps a
// segment only when its trimmed form is non-empty. The kept segment is the
// ORIGINAL untrimmed text: trimming is an emptiness test, not a transform.
func SplitParagraphs(content string) []string {
	var paragraphs []string
	for _, segment := range strings.Split(content, "\n") {
		if strings.TrimSpace(segment) != "" {
			paragraphs = append(paragraphs, segment)
		}
	}
	return paragraphs
}

// sortTerminology flattens a terminology map into entries ordered by word.
// Map iteration order is random; rendering must be deterministic.
func sortTerminology(terms map[string]string) []termEntry {
	if len(terms) == 0 {
		return nil
	}

	entries := make([]termEntry, 0, len(terms))
	for word, def := range terms {
		entries = append(entries, termEntry{Word: word, Definition: def})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Word < entries[j].Word
	})
	return entries
}
