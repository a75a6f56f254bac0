package flipbook

// Zoom bounds and step. Panning is deliberately unclamped: readers may pan
// past the content edges.
const (
	minScale = 0.5
	maxScale = 4.0
	zoomStep = 1.25
)

// Zoom is the independent scale and translation transform composed around
// the flip surface. It never intercepts the flip surface's own navigation
// input; callers route pan input here only while Active reports true.
type Zoom struct {
	scale float64
	tx    int
	ty    int
}

// NewZoom returns a centred, unscaled transform.
func NewZoom() *Zoom {
	return &Zoom{scale: 1.0}
}

// Scale returns the current scale factor.
func (z *Zoom) Scale() float64 {
	return z.scale
}

// Offset returns the pan translation in virtual pixels.
func (z *Zoom) Offset() (x, y int) {
	return z.tx, z.ty
}

// Active reports whether the transform deviates from identity.
func (z *Zoom) Active() bool {
	return z.scale != 1.0 || z.tx != 0 || z.ty != 0
}

// In zooms in one step, capped at the maximum scale.
func (z *Zoom) In() {
	z.scale *= zoomStep
	if z.scale > maxScale {
		z.scale = maxScale
	}
}

// Out zooms out one step, capped at the minimum scale.
func (z *Zoom) Out() {
	z.scale /= zoomStep
	if z.scale < minScale {
		z.scale = minScale
	}
}

// Pan translates the view by (dx, dy) virtual pixels. Unbounded.
func (z *Zoom) Pan(dx, dy int) {
	z.tx += dx
	z.ty += dy
}

// Reset restores the identity transform, re-centring the view.
func (z *Zoom) Reset() {
	z.scale = 1.0
	z.tx = 0
	z.ty = 0
}
