package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/opentype"
)

func medium(t *testing.T) *opentype.Font {
	t.Helper()
	f, err := opentype.Parse(gomedium.TTF)
	require.NoError(t, err)
	return f
}

func TestMeasureScalesWithSize(t *testing.T) {
	f := medium(t)

	small, err := Measure(f, "Malta", 1)
	require.NoError(t, err)
	large, err := Measure(f, "Malta", 10)
	require.NoError(t, err)

	assert.Greater(t, small.Width, small.Height, "a word is wider than tall")
	assert.InDelta(t, small.Width*10, large.Width, 1e-3)
	assert.InDelta(t, small.Height*10, large.Height, 1e-3)
	// Cap height stays below one em
	assert.Less(t, small.Height, float32(1))
}

func TestMeasureDescent(t *testing.T) {
	f := medium(t)

	flat, err := Measure(f, "MALTA", 1)
	require.NoError(t, err)
	hanging, err := Measure(f, "gypsy", 1)
	require.NoError(t, err)

	assert.InDelta(t, 0, flat.Descent, 0.02)
	assert.Greater(t, hanging.Descent, float32(0.1))
}

func TestMeasureEmpty(t *testing.T) {
	f := medium(t)
	_, err := Measure(f, "", 1)
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestRasterize(t *testing.T) {
	f := medium(t)

	img, err := Rasterize(f, "Fiji")
	require.NoError(t, err)

	ext, err := Measure(f, "Fiji", Resolution)
	require.NoError(t, err)
	assert.InDelta(t, ext.Width, float32(img.Bounds().Dx()), 1)
	assert.InDelta(t, ext.Height, float32(img.Bounds().Dy()), 1)

	var inked int
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			inked++
		}
	}
	assert.Greater(t, inked, 0, "some pixels are drawn")
	assert.Less(t, inked, len(img.Pix)/4, "not every pixel is drawn")
}
