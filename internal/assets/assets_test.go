package assets_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-story2pdf/internal/assets"
)

// ---------------------------------------------------------------------------
// TestEmbeddedLoader - Built-in styles and templates
// ---------------------------------------------------------------------------

func TestEmbeddedLoader(t *testing.T) {
	t.Parallel()

	loader := assets.NewEmbeddedLoader()

	t.Run("default style loads", func(t *testing.T) {
		t.Parallel()

		css, err := loader.LoadStyle(assets.DefaultStyleName)
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if !strings.Contains(css, "{") {
			t.Error("style should contain CSS rules")
		}
	})

	t.Run("default template set loads", func(t *testing.T) {
		t.Parallel()

		ts, err := loader.LoadTemplateSet(assets.DefaultTemplateSetName)
		if err != nil {
			t.Fatalf("LoadTemplateSet() error = %v", err)
		}
		if ts.Name != assets.DefaultTemplateSetName {
			t.Errorf("Name = %q, want %q", ts.Name, assets.DefaultTemplateSetName)
		}
		for _, want := range []string{"<!DOCTYPE html>", "story-title", "chapter-number", "page-number"} {
			if !strings.Contains(ts.Document, want) {
				t.Errorf("document template missing %q", want)
			}
		}
	})

	t.Run("unknown style", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadStyle("nope")
		if !errors.Is(err, assets.ErrStyleNotFound) {
			t.Errorf("error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("unknown template set", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadTemplateSet("nope")
		if !errors.Is(err, assets.ErrTemplateSetNotFound) {
			t.Errorf("error = %v, want ErrTemplateSetNotFound", err)
		}
	})

	t.Run("invalid names rejected", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{"", "../escape", "sub/dir", `back\slash`} {
			if _, err := loader.LoadStyle(name); !errors.Is(err, assets.ErrInvalidAssetName) {
				t.Errorf("LoadStyle(%q) error = %v, want ErrInvalidAssetName", name, err)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// TestPackageLevelLoaders - Convenience wrappers over the embedded loader
// ---------------------------------------------------------------------------

func TestPackageLevelLoaders(t *testing.T) {
	t.Parallel()

	if _, err := assets.LoadStyle(assets.DefaultStyleName); err != nil {
		t.Errorf("LoadStyle() error = %v", err)
	}
	if _, err := assets.LoadTemplateSet(assets.DefaultTemplateSetName); err != nil {
		t.Errorf("LoadTemplateSet() error = %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestValidateAssetName
// ---------------------------------------------------------------------------

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple name", input: "book", wantErr: false},
		{name: "hyphenated name", input: "my-style", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "forward slash", input: "a/b", wantErr: true},
		{name: "backslash", input: `a\b`, wantErr: true},
		{name: "dot traversal", input: "..", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := assets.ValidateAssetName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAssetName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFilesystemLoader - Custom asset directories
// ---------------------------------------------------------------------------

// writeCustomAssets lays out a valid asset directory and returns its path.
func writeCustomAssets(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	mustWrite := func(rel, content string) {
		t.Helper()
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	mustWrite("styles/custom.css", "body { font-family: serif }")
	mustWrite("templates/custom/document.html", "<html><body>{{.Title}}</body></html>")
	return dir
}

func TestFilesystemLoader(t *testing.T) {
	t.Parallel()

	dir := writeCustomAssets(t)
	loader, err := assets.NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	t.Run("loads custom style", func(t *testing.T) {
		t.Parallel()

		css, err := loader.LoadStyle("custom")
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if !strings.Contains(css, "serif") {
			t.Errorf("unexpected CSS content: %q", css)
		}
	})

	t.Run("loads custom template set", func(t *testing.T) {
		t.Parallel()

		ts, err := loader.LoadTemplateSet("custom")
		if err != nil {
			t.Fatalf("LoadTemplateSet() error = %v", err)
		}
		if !strings.Contains(ts.Document, "{{.Title}}") {
			t.Errorf("unexpected template content: %q", ts.Document)
		}
	})

	t.Run("missing style", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadStyle("absent")
		if !errors.Is(err, assets.ErrStyleNotFound) {
			t.Errorf("error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("missing template set", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadTemplateSet("absent")
		if !errors.Is(err, assets.ErrTemplateSetNotFound) {
			t.Errorf("error = %v, want ErrTemplateSetNotFound", err)
		}
	})
}

func TestNewFilesystemLoader_InvalidBase(t *testing.T) {
	t.Parallel()

	if _, err := assets.NewFilesystemLoader(""); err == nil {
		t.Error("empty base path should fail")
	}
	if _, err := assets.NewFilesystemLoader(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("nonexistent base path should fail")
	}
}

// ---------------------------------------------------------------------------
// TestAssetResolver - Custom-first with embedded fallback
// ---------------------------------------------------------------------------

func TestAssetResolver(t *testing.T) {
	t.Parallel()

	dir := writeCustomAssets(t)
	resolver, err := assets.NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	t.Run("custom asset wins", func(t *testing.T) {
		t.Parallel()

		css, err := resolver.LoadStyle("custom")
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if !strings.Contains(css, "serif") {
			t.Errorf("expected custom CSS, got %q", css)
		}
	})

	t.Run("falls back to embedded", func(t *testing.T) {
		t.Parallel()

		css, err := resolver.LoadStyle(assets.DefaultStyleName)
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if css == "" {
			t.Error("embedded fallback returned empty CSS")
		}

		ts, err := resolver.LoadTemplateSet(assets.DefaultTemplateSetName)
		if err != nil {
			t.Fatalf("LoadTemplateSet() error = %v", err)
		}
		if !strings.Contains(ts.Document, "story-title") {
			t.Error("embedded fallback returned unexpected template")
		}
	})

	t.Run("missing everywhere", func(t *testing.T) {
		t.Parallel()

		if _, err := resolver.LoadStyle("absent"); !errors.Is(err, assets.ErrStyleNotFound) {
			t.Errorf("error = %v, want ErrStyleNotFound", err)
		}
	})
}

func TestAssetResolver_EmptyBasePath(t *testing.T) {
	t.Parallel()

	// An empty base path yields a purely embedded resolver.
	resolver, err := assets.NewAssetResolver("")
	if err != nil {
		t.Fatalf("NewAssetResolver(\"\") error = %v", err)
	}
	if _, err := resolver.LoadStyle(assets.DefaultStyleName); err != nil {
		t.Errorf("LoadStyle() error = %v", err)
	}
}
