package flipbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitPage_NotReady(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		aspect float64
	}{
		{"zero width", 0, 1080, 0.71},
		{"zero height", 1920, 0, 0.71},
		{"negative width", -10, 1080, 0.71},
		{"negative height", 1920, -10, 0.71},
		{"zero aspect", 1920, 1080, 0},
		{"negative aspect", 1920, 1080, -1.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := FitPage(tt.w, tt.h, tt.aspect, false)
			assert.False(t, layout.Ready)
			assert.Zero(t, layout.PageWidth)
			assert.Zero(t, layout.PageHeight)
		})
	}
}

func TestFitPage_PositiveBoxForAllInputs(t *testing.T) {
	// Once the viewport is valid the box must never be degenerate.
	aspects := []float64{0.3, 0.5, 0.71, 1.0, 1.2, 1.41, 1.6, 2.5}
	viewports := [][2]int{{40, 20}, {80, 24}, {120, 50}, {200, 60}, {1920, 1080}, {375, 812}}

	for _, vp := range viewports {
		for _, aspect := range aspects {
			for _, compact := range []bool{false, true} {
				layout := FitPage(vp[0], vp[1], aspect, compact)
				if !layout.Ready {
					// Very small viewports may legitimately not fit a page.
					continue
				}
				assert.Greater(t, layout.PageWidth, 0,
					"viewport %v aspect %v compact %v", vp, aspect, compact)
				assert.Greater(t, layout.PageHeight, 0,
					"viewport %v aspect %v compact %v", vp, aspect, compact)
			}
		}
	}
}

func TestFitPage_PortraitDocumentWideViewport_SpreadMode(t *testing.T) {
	// 10-page portrait document (aspect 0.71) on a 1920x1080 viewport:
	// spread mode, height bound by 82% of 1080, width by the aspect ratio.
	layout := FitPage(1920, 1080, 0.71, false)

	require.True(t, layout.Ready)
	assert.Equal(t, OrientationSpread, layout.Orientation)
	assert.InDelta(t, 886, layout.PageHeight, 4)
	assert.InDelta(t, 629, layout.PageWidth, 4)
	// The 42%-of-width cap (806) is non-binding here.
	assert.Less(t, layout.PageWidth, 806)
	assert.Equal(t, densityNormal, layout.Density)
}

func TestFitPage_LandscapeDocumentNarrowViewport_SingleMode(t *testing.T) {
	// 3-page landscape document (aspect 1.6) on a 375x812 viewport:
	// single-page mode, width bound by 90% of 375.
	layout := FitPage(375, 812, 1.6, true)

	require.True(t, layout.Ready)
	assert.Equal(t, OrientationSingle, layout.Orientation)
	assert.InDelta(t, 338, layout.PageWidth, 4)
	assert.Equal(t, densityCompact, layout.Density)
}

func TestFitPage_LandscapeLeaningForcesSingle(t *testing.T) {
	layout := FitPage(1920, 1080, 1.3, false)

	require.True(t, layout.Ready)
	assert.Equal(t, OrientationSingle, layout.Orientation)
}

func TestFitPage_AspectAtThresholdStaysSpread(t *testing.T) {
	layout := FitPage(1920, 1080, 1.2, false)

	require.True(t, layout.Ready)
	assert.Equal(t, OrientationSpread, layout.Orientation)
}

func TestFitPage_NarrowViewportForcesSingle(t *testing.T) {
	layout := FitPage(80, 48, 0.71, false)

	require.True(t, layout.Ready)
	assert.Equal(t, OrientationSingle, layout.Orientation)
	assert.Equal(t, densityCompact, layout.Density)
}

func TestFitPage_EvenDimensions(t *testing.T) {
	for _, aspect := range []float64{0.66, 0.71, 0.77, 1.0, 1.41} {
		layout := FitPage(1919, 1079, aspect, false)
		require.True(t, layout.Ready)
		assert.Zero(t, layout.PageWidth%2, "aspect %v", aspect)
		assert.Zero(t, layout.PageHeight%2, "aspect %v", aspect)
	}
}

func TestFitPage_WidthCapBinding(t *testing.T) {
	// A short wide viewport makes the 42% width cap the binding constraint.
	layout := FitPage(2000, 500, 0.71, false)

	require.True(t, layout.Ready)
	assert.LessOrEqual(t, layout.PageWidth, evenFloor(spreadWidthFrac*2000))
	assert.LessOrEqual(t, layout.PageHeight, evenFloor(heightFrac*500))
}

func TestOrientation_String(t *testing.T) {
	assert.Equal(t, "spread", OrientationSpread.String())
	assert.Equal(t, "single", OrientationSingle.String())
}

func TestEvenFloor(t *testing.T) {
	assert.Equal(t, 884, evenFloor(885.6))
	assert.Equal(t, 884, evenFloor(884.0))
	assert.Equal(t, 626, evenFloor(627.64))
	assert.Equal(t, 0, evenFloor(1.9))
}
