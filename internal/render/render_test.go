// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdiddy/pdfraster/pkg/types"
)

func TestSaveJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page_1.jpg")
	img := image.NewRGBA(image.Rect(0, 0, 16, 9))

	if err := SaveJPEG(path, img, 90); err != nil {
		t.Fatalf("SaveJPEG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	decoded, err := jpeg.Decode(f)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if got := decoded.Bounds(); got.Dx() != 16 || got.Dy() != 9 {
		t.Errorf("bounds = %v, want 16x9", got)
	}
}

func TestSaveJPEG_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page_1.jpg")
	if err := os.WriteFile(path, []byte("stale content"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := SaveJPEG(path, image.NewRGBA(image.Rect(0, 0, 4, 4)), 90); err != nil {
		t.Fatalf("SaveJPEG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := jpeg.Decode(f); err != nil {
		t.Errorf("existing file was not overwritten with a JPEG: %v", err)
	}
}

func TestSaveJPEG_QualityFallback(t *testing.T) {
	// Out-of-range qualities fall back to the default rather than failing.
	for _, q := range []int{-1, 0, 101} {
		path := filepath.Join(t.TempDir(), "out.jpg")
		if err := SaveJPEG(path, image.NewRGBA(image.Rect(0, 0, 2, 2)), q); err != nil {
			t.Errorf("quality %d: %v", q, err)
		}
	}
}

func TestNewEngine(t *testing.T) {
	eng, err := NewEngine(types.RenderConfig{})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if eng.Name() != types.EngineFitz {
		t.Errorf("default engine = %q, want %q", eng.Name(), types.EngineFitz)
	}

	if _, err := NewEngine(types.RenderConfig{Engine: "ghostscript"}); err == nil {
		t.Error("expected error for unknown engine name")
	}
}

func TestNewFitzEngine_ScaleToDPI(t *testing.T) {
	eng := NewFitzEngine(2.0)
	if eng.dpi != 144 {
		t.Errorf("dpi = %v, want 144 for 2.0x zoom", eng.dpi)
	}
}
