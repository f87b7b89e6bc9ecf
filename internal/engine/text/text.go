// Package text measures and rasterizes label strings with OpenType fonts.
// Sizes are given in world units: a size of 1 means one em is one unit
// tall.
package text

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Resolution is the em size, in pixels, used for measuring and drawing.
const Resolution = 128

// ErrEmptyText is returned for strings with no visible ink.
var ErrEmptyText = errors.New("text has no visible glyphs")

// Extent is the ink box of a string in world units.
type Extent struct {
	Width  float32
	Height float32
	// Descent is how far the ink reaches below the baseline.
	Descent float32
}

func newFace(f *opentype.Font, px float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

func inkBounds(face font.Face, s string) (fixed.Rectangle26_6, error) {
	b, _ := font.BoundString(face, s)
	if b.Max.X <= b.Min.X || b.Max.Y <= b.Min.Y {
		return b, ErrEmptyText
	}
	return b, nil
}

// Measure returns the ink box of s drawn at the given world size.
func Measure(f *opentype.Font, s string, size float32) (Extent, error) {
	face, err := newFace(f, Resolution)
	if err != nil {
		return Extent{}, fmt.Errorf("creating face: %w", err)
	}
	defer face.Close()

	b, err := inkBounds(face, s)
	if err != nil {
		return Extent{}, err
	}

	scale := size / Resolution
	return Extent{
		Width:   fixedToFloat(b.Max.X-b.Min.X) * scale,
		Height:  fixedToFloat(b.Max.Y-b.Min.Y) * scale,
		Descent: fixedToFloat(b.Max.Y) * scale,
	}, nil
}

// Rasterize draws s as white ink on a transparent image cropped to the ink
// box. The image maps one to one onto the box Measure reports.
func Rasterize(f *opentype.Font, s string) (*image.RGBA, error) {
	face, err := newFace(f, Resolution)
	if err != nil {
		return nil, fmt.Errorf("creating face: %w", err)
	}
	defer face.Close()

	b, err := inkBounds(face, s)
	if err != nil {
		return nil, err
	}

	w := (b.Max.X - b.Min.X).Ceil()
	h := (b.Max.Y - b.Min.Y).Ceil()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)

	d := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.Point26_6{X: -b.Min.X, Y: -b.Min.Y},
	}
	d.DrawString(s)
	return img, nil
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
