// Package capture turns pointer and touch interactions into paths.
package capture

import "LiveBoard/internal/state"

type Phase int

const (
	Idle Phase = iota
	Active
)

func (p Phase) String() string {
	if p == Active {
		return "active"
	}
	return "idle"
}

// Segment is the last two points of a stroke in progress, styled with the
// stroke's begin-time style.
type Segment struct {
	Path  state.Path
	Style state.StrokeStyle
}

// Stroke is a finished path and the style that was current when it began.
type Stroke struct {
	Path  state.Path
	Style state.StrokeStyle
}

// Capture is the IDLE -> ACTIVE -> IDLE stroke state machine. It is driven
// from a single goroutine.
type Capture struct {
	phase Phase
	path  state.Path
	style state.StrokeStyle
}

func New() *Capture {
	return &Capture{}
}

func (c *Capture) Phase() Phase {
	return c.phase
}

func (c *Capture) Drawing() bool {
	return c.phase == Active
}

// Begin starts a stroke at ev. It is ignored while a stroke is already active
// (a touch and its emulated pointer event arriving back to back) and when ev
// carries no position.
func (c *Capture) Begin(ev RawEvent, r Rect, style state.StrokeStyle) (state.Point, bool) {
	if c.phase == Active {
		return state.Point{}, false
	}
	p, ok := ToLocal(ev, r)
	if !ok {
		return state.Point{}, false
	}
	c.phase = Active
	c.path = state.Path{p}
	c.style = style
	return p, true
}

// Move appends a point and returns the newest segment. ok is true when the
// event belonged to the stroke, in which case the caller must keep it from
// reaching scroll or zoom gesture handling.
func (c *Capture) Move(ev RawEvent, r Rect) (Segment, bool) {
	if c.phase != Active {
		return Segment{}, false
	}
	p, ok := ToLocal(ev, r)
	if !ok {
		return Segment{}, false
	}
	c.path = append(c.path, p)
	return Segment{Path: c.path.Suffix(2), Style: c.style}, true
}

// End finishes the stroke and resets. It is a no-op while idle.
func (c *Capture) End() (Stroke, bool) {
	if c.phase != Active {
		return Stroke{}, false
	}
	s := Stroke{Path: c.path, Style: c.style}
	c.reset()
	return s, true
}

// Cancel abandons an active stroke without producing anything, as when the
// pointer capture is lost. It reports whether a stroke was abandoned.
func (c *Capture) Cancel() bool {
	if c.phase != Active {
		return false
	}
	c.reset()
	return true
}

func (c *Capture) reset() {
	c.phase = Idle
	c.path = nil
	c.style = state.StrokeStyle{}
}
