// Package preview fits rendered preview frames onto a fixed display canvas.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Canvas dimensions of the preview area.
const (
	CanvasWidth  = 500
	CanvasHeight = 300
)

// Scale returns the factor that fits a w x h image into the canvas,
// multiplied by zoom.
func Scale(w, h int, zoom float64) float64 {
	if w <= 0 || h <= 0 {
		return 0
	}
	if zoom <= 0 {
		zoom = 1
	}
	return math.Min(float64(CanvasWidth)/float64(w), float64(CanvasHeight)/float64(h)) * zoom
}

// Fit scales img by Scale and centers it on a black canvas. Zooming past the
// canvas crops the edges.
func Fit(img image.Image, zoom float64) (image.Image, error) {
	b := img.Bounds()
	scale := Scale(b.Dx(), b.Dy(), zoom)
	if scale == 0 {
		return nil, fmt.Errorf("empty image")
	}
	w := max(1, int(math.Round(float64(b.Dx())*scale)))
	h := max(1, int(math.Round(float64(b.Dy())*scale)))

	resized := imaging.Resize(img, w, h, imaging.Lanczos)
	canvas := imaging.New(CanvasWidth, CanvasHeight, color.Black)
	return imaging.PasteCenter(canvas, resized), nil
}

// FitToCanvas reads src, fits it to the canvas and writes a JPEG to dst.
func FitToCanvas(src, dst string, zoom float64) error {
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("open preview image: %w", err)
	}
	fitted, err := Fit(img, zoom)
	if err != nil {
		return err
	}
	if err := imaging.Save(fitted, dst, imaging.JPEGQuality(90)); err != nil {
		return fmt.Errorf("save preview image: %w", err)
	}
	return nil
}
