// Package page renders rasterized pages as terminal cell images. Each
// terminal row carries two vertical pixels via the upper-half-block rune,
// so a page box measured in virtual pixels maps to width columns and
// height/2 rows.
package page

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xdraw "golang.org/x/image/draw"
)

// paper is the background for margins, placeholders and uncovered
// viewport area.
var paper = color.RGBA{R: 0xF8, G: 0xF8, B: 0xF5, A: 0xFF}

// Fit downsamples src to a w x h virtual-pixel box.
func Fit(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// Cells converts an image to half-block terminal cells. Odd heights get a
// paper-coloured final half row.
func Cells(img image.Image) string {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return ""
	}

	var b strings.Builder
	rows := (h + 1) / 2
	for row := 0; row < rows; row++ {
		for x := 0; x < w; x++ {
			top := img.At(bounds.Min.X+x, bounds.Min.Y+row*2)
			var bottom color.Color = paper
			if row*2+1 < h {
				bottom = img.At(bounds.Min.X+x, bounds.Min.Y+row*2+1)
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hex(top))).
				Background(lipgloss.Color(hex(bottom)))
			b.WriteString(style.Render("▀"))
		}
		if row < rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// PlaceholderImage is the neutral stand-in for a page outside the render
// window: a blank sheet with a single dot at the centre.
func PlaceholderImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = paper.R
		img.Pix[i+1] = paper.G
		img.Pix[i+2] = paper.B
		img.Pix[i+3] = 0xFF
	}
	dot := color.RGBA{R: 0x9C, G: 0x9C, B: 0x98, A: 0xFF}
	cx, cy := w/2, h/2
	for dy := -1; dy <= 0; dy++ {
		for dx := -1; dx <= 0; dx++ {
			if x, y := cx+dx, cy+dy; x >= 0 && y >= 0 && x < w && y < h {
				img.SetRGBA(x, y, dot)
			}
		}
	}
	return img
}

// ErrorSlot renders an inline failure marker for a single page slot.
func ErrorSlot(w, h int, errStyle lipgloss.Style) string {
	rows := (h + 1) / 2
	if rows < 1 || w < 1 {
		return ""
	}
	label := "render failed"
	if len(label) > w {
		label = label[:w]
	}
	blank := strings.Repeat(" ", w)
	pad := (w - len(label)) / 2
	marked := strings.Repeat(" ", pad) + label + strings.Repeat(" ", w-pad-len(label))

	lines := make([]string, rows)
	for i := range lines {
		lines[i] = errStyle.Render(blank)
	}
	lines[rows/2] = errStyle.Render(marked)
	return strings.Join(lines, "\n")
}

// ComposeSpread lays page images side by side on a paper background. A nil
// right page yields a single-page surface.
func ComposeSpread(left, right image.Image, pageW, pageH int) *image.RGBA {
	width := pageW
	if right != nil {
		width = pageW * 2
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, pageH))
	for i := 0; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = paper.R
		dst.Pix[i+1] = paper.G
		dst.Pix[i+2] = paper.B
		dst.Pix[i+3] = 0xFF
	}
	if left != nil {
		xdraw.Copy(dst, image.Point{}, left, left.Bounds(), xdraw.Src, nil)
	}
	if right != nil {
		xdraw.Copy(dst, image.Pt(pageW, 0), right, right.Bounds(), xdraw.Src, nil)
	}
	return dst
}

// Transform applies the zoom scale and pan translation to the spread,
// producing the visible viewW x viewH window. The scaled content is
// centred, then shifted by the pan offset; area it does not cover stays
// paper-coloured.
func Transform(src image.Image, viewW, viewH int, scale float64, tx, ty int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, viewW, viewH))
	for i := 0; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = paper.R
		dst.Pix[i+1] = paper.G
		dst.Pix[i+2] = paper.B
		dst.Pix[i+3] = 0xFF
	}

	sw := int(float64(src.Bounds().Dx()) * scale)
	sh := int(float64(src.Bounds().Dy()) * scale)
	if sw <= 0 || sh <= 0 {
		return dst
	}
	x0 := (viewW-sw)/2 + tx
	y0 := (viewH-sh)/2 + ty
	xdraw.ApproxBiLinear.Scale(dst, image.Rect(x0, y0, x0+sw, y0+sh), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// hex formats a colour as a lipgloss hex string.
func hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
