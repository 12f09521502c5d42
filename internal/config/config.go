// Package config loads CLI configuration from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-story2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits for multi-tenant safety.
const (
	MaxStyleLength       = 2048 // Style name, path, or inline CSS
	MaxPathLength        = 2048 // Directory paths
	MaxPageSizeLength    = 10   // "a4", "letter", "legal"
	MaxOrientationLength = 10   // "portrait", "landscape"
	MaxDimension         = 4096 // Generated image pixels
)

// Config holds all configuration for story rendering.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	CSS    CSSConfig    `yaml:"css"`
	Render RenderConfig `yaml:"render"`
	Images ImagesConfig `yaml:"images"`
	Assets AssetsConfig `yaml:"assets"`
	Page   PageConfig   `yaml:"page"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default story directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// CSSConfig defines CSS styling options.
type CSSConfig struct {
	Style string `yaml:"style"` // Style name, CSS file path, or raw CSS (empty = default book style)
}

// RenderConfig defines rendering options.
type RenderConfig struct {
	Markdown bool   `yaml:"markdown"` // Render chapter content as Markdown
	Template string `yaml:"template"` // Template set name (empty = default)
}

// ImagesConfig defines image handling options.
type ImagesConfig struct {
	Generate bool `yaml:"generate"` // Fill missing images with generated URLs
	Check    bool `yaml:"check"`    // Probe image URLs before rendering
	Width    int  `yaml:"width"`    // Generated chapter image width (pixels)
	Height   int  `yaml:"height"`   // Generated chapter image height (pixels)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size             string  `yaml:"size"`             // "a4", "letter", "legal" (default: "a4")
	Orientation      string  `yaml:"orientation"`      // "portrait", "landscape" (default: "portrait")
	MarginVertical   float64 `yaml:"marginVertical"`   // centimeters (default: 2.5)
	MarginHorizontal float64 `yaml:"marginHorizontal"` // centimeters (default: 2.0)
}

// Validate checks field lengths and ranges to prevent abuse in
// multi-tenant scenarios. Called automatically by LoadConfig, but
// available for consumers who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("css.style", c.CSS.Style, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("page.size", c.Page.Size, MaxPageSizeLength); err != nil {
		return err
	}
	if err := validateFieldLength("page.orientation", c.Page.Orientation, MaxOrientationLength); err != nil {
		return err
	}

	if c.Images.Width < 0 || c.Images.Width > MaxDimension {
		return fmt.Errorf("images.width: must be between 0 and %d, got %d", MaxDimension, c.Images.Width)
	}
	if c.Images.Height < 0 || c.Images.Height > MaxDimension {
		return fmt.Errorf("images.height: must be between 0 and %d, got %d", MaxDimension, c.Images.Height)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{DefaultDir: ""},
		Output: OutputConfig{DefaultDir: ""},
		CSS:    CSSConfig{Style: ""},
		Render: RenderConfig{Markdown: false},
		Images: ImagesConfig{Generate: false, Check: false},
		Assets: AssetsConfig{BasePath: ""},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-story2pdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-story2pdf", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
