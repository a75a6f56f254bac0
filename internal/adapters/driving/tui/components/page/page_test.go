package page

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestFit(t *testing.T) {
	src := solid(100, 140, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	dst := Fit(src, 40, 56)

	assert.Equal(t, 40, dst.Bounds().Dx())
	assert.Equal(t, 56, dst.Bounds().Dy())
}

func TestCells_Dimensions(t *testing.T) {
	tests := []struct {
		name     string
		w, h     int
		wantRows int
	}{
		{name: "even height", w: 8, h: 6, wantRows: 3},
		{name: "odd height pads", w: 8, h: 5, wantRows: 3},
		{name: "single row", w: 4, h: 2, wantRows: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Cells(solid(tt.w, tt.h, color.RGBA{R: 50, G: 50, B: 50, A: 255}))

			lines := strings.Split(out, "\n")
			assert.Len(t, lines, tt.wantRows)
			for _, line := range lines {
				assert.Equal(t, tt.w, strings.Count(line, "▀"))
			}
		})
	}
}

func TestCells_Empty(t *testing.T) {
	assert.Empty(t, Cells(image.NewRGBA(image.Rect(0, 0, 0, 0))))
}

func TestPlaceholderImage(t *testing.T) {
	img := PlaceholderImage(20, 28)

	require.Equal(t, 20, img.Bounds().Dx())
	require.Equal(t, 28, img.Bounds().Dy())

	// Corners stay paper-coloured, the centre carries the dot.
	assert.Equal(t, paper, img.RGBAAt(0, 0))
	assert.NotEqual(t, paper, img.RGBAAt(10, 14))
}

func TestErrorSlot(t *testing.T) {
	out := ErrorSlot(20, 8, lipgloss.NewStyle())

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, out, "render failed")
}

func TestComposeSpread(t *testing.T) {
	left := solid(10, 14, color.RGBA{R: 255, A: 255})
	right := solid(10, 14, color.RGBA{B: 255, A: 255})

	spread := ComposeSpread(left, right, 10, 14)

	require.Equal(t, 20, spread.Bounds().Dx())
	assert.Equal(t, uint8(255), spread.RGBAAt(2, 2).R)
	assert.Equal(t, uint8(255), spread.RGBAAt(12, 2).B)
}

func TestComposeSpread_SinglePage(t *testing.T) {
	left := solid(10, 14, color.RGBA{G: 255, A: 255})

	spread := ComposeSpread(left, nil, 10, 14)

	assert.Equal(t, 10, spread.Bounds().Dx())
	assert.Equal(t, 14, spread.Bounds().Dy())
}

func TestComposeSpread_MissingLeftStaysPaper(t *testing.T) {
	right := solid(10, 14, color.RGBA{B: 255, A: 255})

	spread := ComposeSpread(nil, right, 10, 14)

	assert.Equal(t, paper, spread.RGBAAt(2, 2))
	assert.Equal(t, uint8(255), spread.RGBAAt(12, 2).B)
}

func TestTransform_Identity(t *testing.T) {
	src := solid(20, 28, color.RGBA{R: 100, G: 100, B: 100, A: 255})

	dst := Transform(src, 20, 28, 1.0, 0, 0)

	assert.Equal(t, uint8(100), dst.RGBAAt(10, 14).R)
}

func TestTransform_ZoomOutLeavesPaperBorder(t *testing.T) {
	src := solid(20, 28, color.RGBA{R: 100, G: 100, B: 100, A: 255})

	dst := Transform(src, 20, 28, 0.5, 0, 0)

	// Content shrinks to the centre; corners revert to paper.
	assert.Equal(t, paper, dst.RGBAAt(0, 0))
	assert.Equal(t, uint8(100), dst.RGBAAt(10, 14).R)
}

func TestTransform_PanIsUnclamped(t *testing.T) {
	src := solid(20, 28, color.RGBA{R: 100, G: 100, B: 100, A: 255})

	// Pan the content entirely off-screen.
	dst := Transform(src, 20, 28, 1.0, 100, 0)

	assert.Equal(t, paper, dst.RGBAAt(10, 14))
}
