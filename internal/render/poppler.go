// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdiddy/pdfraster/pkg/types"
)

const (
	binPdftoppm = "pdftoppm"
	binPdfinfo  = "pdfinfo"
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Output(name string, args ...string) ([]byte, error)
	Run(name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Output(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

func (o *osExecutor) Run(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

var defaultExec executor = &osExecutor{}

// PopplerEngine rasterizes by shelling out to the poppler-utils binaries:
// pdfinfo supplies the page count, pdftoppm renders one page at a time.
type PopplerEngine struct {
	dpi  float64
	exec executor
}

// NewPopplerEngine verifies the poppler binaries exist on PATH and returns
// an engine rendering at the given zoom factor.
func NewPopplerEngine(scale float64) (*PopplerEngine, error) {
	return newPopplerEngine(scale, defaultExec)
}

func newPopplerEngine(scale float64, ex executor) (*PopplerEngine, error) {
	for _, bin := range []string{binPdftoppm, binPdfinfo} {
		if _, err := ex.LookPath(bin); err != nil {
			return nil, fmt.Errorf("%s not found on PATH: %w", bin, err)
		}
	}
	return &PopplerEngine{dpi: scale * pointsPerInch, exec: ex}, nil
}

func (e *PopplerEngine) Name() string { return types.EnginePoppler }

// Open runs pdfinfo to validate the file and learn its page count. The
// document stays on disk; pages render on demand.
func (e *PopplerEngine) Open(path string) (Document, error) {
	out, err := e.exec.Output(binPdfinfo, path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	pages, err := parsePageCount(string(out))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &popplerDocument{path: path, pages: pages, engine: e}, nil
}

// parsePageCount extracts the "Pages:" field from pdfinfo output.
func parsePageCount(info string) (int, error) {
	for _, line := range strings.Split(info, "\n") {
		field, value, found := strings.Cut(line, ":")
		if !found || strings.TrimSpace(field) != "Pages" {
			continue
		}
		return strconv.Atoi(strings.TrimSpace(value))
	}
	return 0, fmt.Errorf("no Pages field in pdfinfo output")
}

type popplerDocument struct {
	path   string
	pages  int
	engine *PopplerEngine
}

func (d *popplerDocument) PageCount() int { return d.pages }

// RenderPage invokes pdftoppm for a single page into a temporary directory
// and decodes the JPEG it writes there.
func (d *popplerDocument) RenderPage(index int) (image.Image, error) {
	tmpDir, err := os.MkdirTemp("", "pdfraster-")
	if err != nil {
		return nil, fmt.Errorf("rendering page %d: %w", index+1, err)
	}
	defer os.RemoveAll(tmpDir)

	page := strconv.Itoa(index + 1)
	prefix := filepath.Join(tmpDir, "page")
	args := []string{
		"-f", page, "-l", page,
		"-r", strconv.FormatFloat(d.engine.dpi, 'f', -1, 64),
		"-jpeg", d.path, prefix,
	}
	if err := d.engine.exec.Run(binPdftoppm, args...); err != nil {
		return nil, fmt.Errorf("rendering page %s of %s: %w", page, d.path, err)
	}

	// pdftoppm appends its own zero-padded page suffix to the prefix.
	matches, _ := filepath.Glob(prefix + "-*.jpg")
	if len(matches) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no output for page %s of %s", page, d.path)
	}

	f, err := os.Open(matches[0])
	if err != nil {
		return nil, fmt.Errorf("rendering page %s: %w", page, err)
	}
	defer f.Close()

	img, err := jpeg.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding rendered page %s: %w", page, err)
	}
	return img, nil
}

// Close is a no-op; the engine holds no per-document resources.
func (d *popplerDocument) Close() error { return nil }
