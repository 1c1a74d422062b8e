// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Engine names accepted in RenderConfig.
const (
	EngineFitz    = "fitz"
	EnginePoppler = "poppler"
)

// Rendering defaults. A zoom of 2.0 doubles each page's native point
// dimensions in both axes.
const (
	DefaultScale   = 2.0
	DefaultQuality = 90
)

// RenderConfig holds settings for the rasterization stage.
type RenderConfig struct {
	// Engine selects the document engine: "fitz" (built-in MuPDF bindings)
	// or "poppler" (external pdftoppm/pdfinfo binaries).
	Engine string `json:"engine" yaml:"engine"`

	// Scale is the zoom factor applied to each page's native dimensions
	// before rasterization.
	Scale float64 `json:"scale" yaml:"scale"`

	// Quality is the JPEG encoding quality, 1-100.
	Quality int `json:"quality" yaml:"quality"`
}

// HistoryConfig holds settings for the conversion run log.
type HistoryConfig struct {
	// Path is the SQLite database file recording conversion runs.
	// Recording is disabled while empty.
	Path string `json:"path" yaml:"path"`
}

// Config is the root configuration loaded from pdfraster.yaml and the
// PDFRASTER_* environment.
type Config struct {
	Render  RenderConfig  `json:"render" yaml:"render"`
	History HistoryConfig `json:"history" yaml:"history"`
}
