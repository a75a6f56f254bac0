package flipbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldFullyRender_FirstTwoPagesAlways(t *testing.T) {
	// The cover and first inner page never show a placeholder, wherever
	// the reader currently is.
	for _, current := range []int{0, 5, 25, 49} {
		assert.True(t, ShouldFullyRender(0, current, 50), "current %d", current)
		assert.True(t, ShouldFullyRender(1, current, 50), "current %d", current)
	}
}

func TestShouldFullyRender_Window(t *testing.T) {
	// Navigating to page 8 of a 50-page document marks {0,1,6..11} full.
	want := []int{0, 1, 6, 7, 8, 9, 10, 11}
	assert.Equal(t, want, RenderSet(8, 50))
}

func TestShouldFullyRender_OutOfWindowIsPlaceholder(t *testing.T) {
	assert.False(t, ShouldFullyRender(20, 8, 50))
	assert.False(t, ShouldFullyRender(5, 8, 50))
	assert.False(t, ShouldFullyRender(12, 8, 50))
}

func TestShouldFullyRender_OutOfRangeIndices(t *testing.T) {
	assert.False(t, ShouldFullyRender(-1, 0, 10))
	assert.False(t, ShouldFullyRender(10, 9, 10))
}

func TestShouldFullyRender_WindowClampsAtEnds(t *testing.T) {
	// Near the start the window overlaps the always-rendered pages.
	assert.Equal(t, []int{0, 1, 2, 3}, RenderSet(0, 20))

	// Near the end the window simply runs out of pages.
	assert.Equal(t, []int{0, 1, 17, 18, 19}, RenderSet(19, 20))
}

func TestShouldFullyRender_ShortDocumentAllFull(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, RenderSet(0, 3))
}

func TestRenderSet_BoundedSize(t *testing.T) {
	// The full-render set stays a small constant regardless of length.
	for _, total := range []int{10, 100, 1000} {
		set := RenderSet(total/2, total)
		assert.LessOrEqual(t, len(set), alwaysRender+windowBehind+windowAhead+1,
			"total %d", total)
	}
}
