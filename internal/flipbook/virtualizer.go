package flipbook

// Virtualization window around the settled page index. The first two pages
// (cover and first inner page) are always rendered so the book structure
// never shows a placeholder.
const (
	windowBehind = 2
	windowAhead  = 3
	alwaysRender = 2
)

// ShouldFullyRender reports whether the page at index needs full
// rasterization given the settled current index. Out-of-window slots get a
// placeholder render instead. The policy bounds concurrent rasterization to
// a small constant regardless of document length.
func ShouldFullyRender(index, current, total int) bool {
	if index < 0 || index >= total {
		return false
	}
	if index < alwaysRender {
		return true
	}
	return index >= current-windowBehind && index <= current+windowAhead
}

// RenderSet returns the set of page indices requiring full rasterization
// for the settled current index, in ascending order.
func RenderSet(current, total int) []int {
	var set []int
	for i := 0; i < total; i++ {
		if ShouldFullyRender(i, current, total) {
			set = append(set, i)
		}
	}
	return set
}
