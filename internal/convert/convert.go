// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert drives page-by-page PDF rasterization to JPEG files.
package convert

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/pdfraster/internal/render"
	"github.com/pdiddy/pdfraster/pkg/types"
)

// Run converts every page of the requested PDF into a JPEG named
// page_<N>.jpg (N starting at 1) inside the output directory, returning the
// output paths in page order.
//
// The source must be an existing regular file; that check runs before the
// output directory is created. Pages are processed strictly sequentially and
// the first error aborts the run — files already written stay in place.
func Run(eng render.Engine, req types.ConversionRequest, quality int) ([]string, error) {
	info, err := os.Stat(req.SourcePath)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("File not found: %s", req.SourcePath)
	}

	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", req.OutputDir, err)
	}

	doc, err := eng.Open(req.SourcePath)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	count := doc.PageCount()
	pages := make([]string, 0, count)
	for i := 0; i < count; i++ {
		img, err := doc.RenderPage(i)
		if err != nil {
			return nil, err
		}

		path := filepath.Join(req.OutputDir, fmt.Sprintf("page_%d.jpg", i+1))
		if err := render.SaveJPEG(path, img, quality); err != nil {
			return nil, err
		}
		pages = append(pages, path)
	}

	return pages, nil
}
