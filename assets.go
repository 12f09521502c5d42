package story2pdf

import (
	"fmt"

	"github.com/alnah/go-story2pdf/internal/assets"
)

// TemplateSet holds the HTML templates for book rendering.
type TemplateSet struct {
	Name     string // Identifier (name or directory path)
	Document string // Book document template HTML content
}

// AssetLoader defines the contract for loading CSS styles and HTML templates.
// Implementations may load from embedded assets, filesystem, S3, database, etc.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads a template set by name.
	LoadTemplateSet(name string) (*TemplateSet, error)
}

// NewAssetLoader creates an AssetLoader that reads from basePath with
// fallback to the embedded assets for anything not present there.
// An empty basePath yields a purely embedded loader.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	return &internalToPublicAdapter{in: resolver}, nil
}

// internalToPublicAdapter exposes an internal assets.AssetLoader through the
// public AssetLoader interface.
type internalToPublicAdapter struct {
	in assets.AssetLoader
}

func (a *internalToPublicAdapter) LoadStyle(name string) (string, error) {
	return a.in.LoadStyle(name)
}

func (a *internalToPublicAdapter) LoadTemplateSet(name string) (*TemplateSet, error) {
	ts, err := a.in.LoadTemplateSet(name)
	if err != nil {
		return nil, err
	}
	return &TemplateSet{Name: ts.Name, Document: ts.Document}, nil
}

// publicToInternalAdapter wraps a public AssetLoader to the internal
// assets.AssetLoader interface.
type publicToInternalAdapter struct {
	pub AssetLoader
}

func (a *publicToInternalAdapter) LoadStyle(name string) (string, error) {
	return a.pub.LoadStyle(name)
}

func (a *publicToInternalAdapter) LoadTemplateSet(name string) (*assets.TemplateSet, error) {
	ts, err := a.pub.LoadTemplateSet(name)
	if err != nil {
		return nil, err
	}
	return &assets.TemplateSet{Name: ts.Name, Document: ts.Document}, nil
}
