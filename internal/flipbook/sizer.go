package flipbook

// Orientation selects between a two-page spread and a single page.
type Orientation int

const (
	// OrientationSpread shows two facing pages.
	OrientationSpread Orientation = iota

	// OrientationSingle shows one page at a time.
	OrientationSingle
)

// String returns the string representation of the orientation.
func (o Orientation) String() string {
	if o == OrientationSingle {
		return "single"
	}
	return "spread"
}

// Layout is the computed per-page render box.
// It is recomputed only when the viewport or the document aspect ratio
// changes, never on a page turn.
type Layout struct {
	// PageWidth and PageHeight are per-page dimensions in virtual pixels.
	PageWidth  int
	PageHeight int

	// Orientation is spread or single-page mode.
	Orientation Orientation

	// Density is the supersampling factor for rasterization.
	Density float64

	// Ready is false until a valid viewport has been measured.
	// Callers must not mount the flip surface while Ready is false.
	Ready bool
}

// Sizing thresholds and caps. The landscape threshold and the margin
// percentages follow the intrinsic-ratio, percentage-of-viewport fit;
// narrowWidth is the compact-viewport analogue of a phone-width screen.
const (
	landscapeAspect = 1.2
	narrowWidth     = 100

	singleWidthFrac = 0.90
	spreadWidthFrac = 0.42
	heightFrac      = 0.82

	densityNormal  = 2.0
	densityCompact = 1.5
)

// FitPage computes the per-page render box for a document with the given
// intrinsic aspect ratio (page width / height) inside a viewport measured
// in virtual pixels. compact forces single-page mode and the lower
// rasterization density regardless of viewport width.
//
// A zero or negative viewport, or a non-positive aspect ratio, yields a
// not-ready layout rather than a degenerate box.
func FitPage(viewportW, viewportH int, aspect float64, compact bool) Layout {
	if viewportW <= 0 || viewportH <= 0 || aspect <= 0 {
		return Layout{}
	}

	narrow := compact || viewportW < narrowWidth
	landscape := aspect > landscapeAspect

	var (
		orientation Orientation
		maxW        float64
		maxH        float64
	)
	if landscape || narrow {
		orientation = OrientationSingle
		maxW = singleWidthFrac * float64(viewportW)
		maxH = heightFrac * float64(viewportH)
	} else {
		orientation = OrientationSpread
		maxW = spreadWidthFrac * float64(viewportW)
		maxH = heightFrac * float64(viewportH)
	}

	// Fit to box: take the binding constraint.
	h := maxH
	if widthBound := maxW / aspect; widthBound < h {
		h = widthBound
	}
	height := evenFloor(h)
	width := evenFloor(float64(height) * aspect)
	if w := evenFloor(maxW); width > w {
		width = w
	}
	if width <= 0 || height <= 0 {
		return Layout{}
	}

	density := densityNormal
	if narrow {
		density = densityCompact
	}

	return Layout{
		PageWidth:   width,
		PageHeight:  height,
		Orientation: orientation,
		Density:     density,
		Ready:       true,
	}
}

// evenFloor rounds down to the nearest even integer. Even dimensions keep
// the spine seam and half-block rows aligned.
func evenFloor(v float64) int {
	n := int(v)
	return n - n%2
}
