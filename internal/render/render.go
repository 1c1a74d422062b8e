// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render rasterizes PDF pages through pluggable document engines.
package render

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"

	"github.com/pdiddy/pdfraster/pkg/types"
)

// pointsPerInch is the native PDF unit density. A zoom factor maps to
// rendering DPI as scale*72.
const pointsPerInch = 72

// Engine opens PDF documents for rasterization. Different backends (the
// built-in MuPDF bindings, the external poppler utilities) implement this
// interface.
type Engine interface {
	// Name returns the engine name ("fitz" or "poppler").
	Name() string

	// Open parses the PDF at path and returns a handle for page access.
	// Corrupt or unsupported files fail here.
	Open(path string) (Document, error)
}

// Document is an open PDF with pages addressable by zero-based index.
// Callers must Close the document when finished, on every exit path.
type Document interface {
	// PageCount returns the number of pages in the document.
	PageCount() int

	// RenderPage rasterizes the page at index into an opaque pixel grid.
	RenderPage(index int) (image.Image, error)

	// Close releases the document handle.
	Close() error
}

// NewEngine builds the engine named by cfg.Engine, defaulting to fitz.
func NewEngine(cfg types.RenderConfig) (Engine, error) {
	scale := cfg.Scale
	if scale <= 0 {
		scale = types.DefaultScale
	}

	switch cfg.Engine {
	case "", types.EngineFitz:
		return NewFitzEngine(scale), nil
	case types.EnginePoppler:
		return NewPopplerEngine(scale)
	default:
		return nil, fmt.Errorf("unknown render engine %q", cfg.Engine)
	}
}

// SaveJPEG encodes img to path at the given quality, overwriting any
// existing file. Quality values outside 1-100 fall back to the default.
func SaveJPEG(path string, img image.Image, quality int) error {
	if quality <= 0 || quality > 100 {
		quality = types.DefaultQuality
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: quality}); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
