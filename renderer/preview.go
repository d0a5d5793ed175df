// Package renderer rasterizes icon sources into fixed-size previews for
// the candidate list.
package renderer

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Preview renders the image file at path to a size×size raster. SVG
// sources are rasterized, PNG sources decoded and resized; anything
// else is unsupported (ico sources go through extraction first).
func Preview(path string, size int) (image.Image, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return renderSVG(path, size)
	case ".png":
		return renderPNG(path, size)
	default:
		return nil, fmt.Errorf("unsupported preview format: %s", filepath.Ext(path))
	}
}

func renderSVG(path string, size int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	icon, err := oksvg.ReadIconStream(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1.0)

	return img, nil
}

func renderPNG(path string, size int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == size && bounds.Dy() == size {
		return img, nil
	}
	return resize.Resize(uint(size), uint(size), img, resize.Lanczos3), nil
}

// SavePNG writes img to path as PNG.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
