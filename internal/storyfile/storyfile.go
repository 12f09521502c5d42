// Package storyfile loads story documents from JSON and YAML files.
//
// Two shapes are accepted: a wrapped document with "story" and optional
// "cover_image" keys, and a flat document that is the story object itself.
// The wrapped shape matches the payloads produced by story generation
// services; the flat shape is convenient for hand-written files.
package storyfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	story2pdf "github.com/alnah/go-story2pdf"
	"github.com/alnah/go-story2pdf/internal/yamlutil"
)

// Sentinel errors for story file loading.
var (
	ErrUnsupportedFormat = errors.New("unsupported story file format")
	ErrStoryParse        = errors.New("failed to parse story file")
)

// Document is the wrapped on-disk shape: a story plus an optional cover
// image reference that sits outside the story object.
type Document struct {
	Story      story2pdf.Story `json:"story" yaml:"story"`
	CoverImage string          `json:"cover_image,omitempty" yaml:"cover_image,omitempty"`
}

// Load reads a story file (.json, .yaml, or .yml) and returns its document.
// A file without a top-level "story" key is parsed as a flat story object.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("reading story file: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes story data in the format indicated by ext (".json",
// ".yaml", ".yml"; case-insensitive).
func Parse(data []byte, ext string) (*Document, error) {
	switch strings.ToLower(ext) {
	case ".json":
		return parseJSON(data)
	case ".yaml", ".yml":
		return parseYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q (want .json, .yaml, or .yml)", ErrUnsupportedFormat, ext)
	}
}

func parseJSON(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoryParse, err)
	}
	if isWrapped(doc) {
		return &doc, nil
	}

	// Flat shape: the document IS the story
	var story story2pdf.Story
	if err := json.Unmarshal(data, &story); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoryParse, err)
	}
	return &Document{Story: story}, nil
}

func parseYAML(data []byte) (*Document, error) {
	var doc Document
	if err := yamlutil.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoryParse, err)
	}
	if isWrapped(doc) {
		return &doc, nil
	}

	var story story2pdf.Story
	if err := yamlutil.Unmarshal(data, &story); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoryParse, err)
	}
	return &Document{Story: story}, nil
}

// isWrapped reports whether decoding into the wrapped shape found an
// actual story object underneath the "story" key.
func isWrapped(doc Document) bool {
	s := doc.Story
	return s.Title != "" || s.Author != "" || len(s.Chapters) > 0
}
