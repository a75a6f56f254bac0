package flipbook

// Role classifies a page slot within the book structure.
type Role int

const (
	// RoleCover is the first page, shown alone.
	RoleCover Role = iota

	// RoleLeftInner is a left-hand page of an open spread.
	RoleLeftInner

	// RoleRightInner is a right-hand page of an open spread.
	RoleRightInner
)

// String returns the string representation of the role.
func (r Role) String() string {
	switch r {
	case RoleCover:
		return "cover"
	case RoleLeftInner:
		return "left"
	default:
		return "right"
	}
}

// RoleFor returns the role of the page at index. After the cover, odd
// indices sit on the left of a spread and even indices on the right.
func RoleFor(index, total int) Role {
	if index == 0 {
		return RoleCover
	}
	if index%2 == 1 {
		return RoleLeftInner
	}
	return RoleRightInner
}

// SpreadFor returns the page indices visible when the settled index is
// current: the cover alone, or the left/right pair containing current.
// The second index is -1 when only one page is visible.
func SpreadFor(current, total int) (left, right int) {
	if total <= 0 {
		return -1, -1
	}
	if current <= 0 {
		return 0, -1
	}
	if current%2 == 1 {
		left = current
		right = current + 1
	} else {
		left = current - 1
		right = current
	}
	if right >= total {
		right = -1
	}
	return left, right
}
