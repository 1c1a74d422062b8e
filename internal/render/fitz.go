// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"

	"github.com/pdiddy/pdfraster/pkg/types"
)

// FitzEngine rasterizes through the MuPDF bindings linked into the binary.
// It needs no external tooling and is the default engine.
type FitzEngine struct {
	dpi float64
}

// NewFitzEngine creates a MuPDF-backed engine rendering at the given zoom
// factor relative to each page's native point dimensions.
func NewFitzEngine(scale float64) *FitzEngine {
	return &FitzEngine{dpi: scale * pointsPerInch}
}

func (e *FitzEngine) Name() string { return types.EngineFitz }

// Open parses the PDF at path.
func (e *FitzEngine) Open(path string) (Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &fitzDocument{doc: doc, dpi: e.dpi}, nil
}

type fitzDocument struct {
	doc *fitz.Document
	dpi float64
}

func (d *fitzDocument) PageCount() int { return d.doc.NumPage() }

// RenderPage rasterizes one page. MuPDF composites onto a white background,
// so the result carries no transparency.
func (d *fitzDocument) RenderPage(index int) (image.Image, error) {
	img, err := d.doc.ImageDPI(index, d.dpi)
	if err != nil {
		return nil, fmt.Errorf("rendering page %d: %w", index+1, err)
	}
	return img, nil
}

func (d *fitzDocument) Close() error { return d.doc.Close() }
