package main

import (
	"io"
	"os"

	story2pdf "github.com/alnah/go-story2pdf"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout      io.Writer
	Stderr      io.Writer
	AssetLoader story2pdf.AssetLoader
}

// DefaultEnv returns production environment with embedded assets.
func DefaultEnv() *Environment {
	// An empty base path yields the embedded loader and cannot fail.
	loader, _ := story2pdf.NewAssetLoader("")
	return &Environment{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		AssetLoader: loader,
	}
}
