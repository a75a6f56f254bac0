package flipbook

import "time"

// DefaultTurnDuration is the length of one page-turn animation.
const DefaultTurnDuration = 400 * time.Millisecond

// Command is a navigation command for the flip controller.
type Command int

const (
	// CmdNext turns to the next page.
	CmdNext Command = iota

	// CmdPrev turns to the previous page.
	CmdPrev

	// CmdGoto jumps to an explicit page index.
	CmdGoto
)

// Controller owns the paginated navigation state machine. The settled
// current index only changes when a started turn completes via Settle, so
// readers of Current never observe a mid-animation index.
type Controller struct {
	current int
	target  int
	total   int
	turning bool

	turnDuration time.Duration
}

// NewController creates a controller for a document with total pages,
// positioned on the cover.
func NewController(total int) *Controller {
	if total < 1 {
		total = 1
	}
	return &Controller{
		total:        total,
		turnDuration: DefaultTurnDuration,
	}
}

// SetTurnDuration overrides the turn animation duration.
func (c *Controller) SetTurnDuration(d time.Duration) {
	if d > 0 {
		c.turnDuration = d
	}
}

// TurnDuration returns the turn animation duration.
func (c *Controller) TurnDuration() time.Duration {
	return c.turnDuration
}

// Dispatch starts an animated turn for the given command. It returns true
// if a turn was started. Commands are clamped at the document bounds:
// CmdNext on the last page and CmdPrev on the cover are no-ops, as is any
// dispatch while a turn is already in flight.
func (c *Controller) Dispatch(cmd Command, gotoIndex ...int) bool {
	if c.turning {
		return false
	}

	target := c.current
	switch cmd {
	case CmdNext:
		target++
	case CmdPrev:
		target--
	case CmdGoto:
		if len(gotoIndex) > 0 {
			target = gotoIndex[0]
		}
	}

	target = clamp(target, 0, c.total-1)
	if target == c.current {
		return false
	}

	c.target = target
	c.turning = true
	return true
}

// Settle commits the in-flight turn, making the target the settled index.
// Called when the turn animation completes. It returns the settled index.
func (c *Controller) Settle() int {
	if c.turning {
		c.current = c.target
		c.turning = false
	}
	return c.current
}

// Current returns the settled page index.
func (c *Controller) Current() int {
	return c.current
}

// Target returns the index an in-flight turn will settle on. Equal to
// Current when no turn is active.
func (c *Controller) Target() int {
	if c.turning {
		return c.target
	}
	return c.current
}

// Turning reports whether a turn animation is in flight.
func (c *Controller) Turning() bool {
	return c.turning
}

// Total returns the page count.
func (c *Controller) Total() int {
	return c.total
}

// CommandForClick maps a click at column x within a surface of the given
// width to a navigation command: right half turns forward, left half turns
// back. On the cover there is no left page, so any click turns forward.
func (c *Controller) CommandForClick(x, width int) Command {
	if c.current == 0 || width <= 0 {
		return CmdNext
	}
	if x < width/2 {
		return CmdPrev
	}
	return CmdNext
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
