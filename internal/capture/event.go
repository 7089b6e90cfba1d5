package capture

import "LiveBoard/internal/state"

// RawEvent is a device event carrying a position in client (window)
// coordinates. Pointer and touch events both satisfy it so callers never
// branch on the device kind.
type RawEvent interface {
	ClientPosition() (x, y float64, ok bool)
}

// PointerEvent is a mouse or pen event with direct client coordinates.
type PointerEvent struct {
	ClientX, ClientY float64
}

func (e PointerEvent) ClientPosition() (float64, float64, bool) {
	return e.ClientX, e.ClientY, true
}

// Touch is one contact point of a touch event.
type Touch struct {
	ClientX, ClientY float64
}

// TouchEvent uses its first touch; an empty touch list has no position.
type TouchEvent struct {
	Touches []Touch
}

func (e TouchEvent) ClientPosition() (float64, float64, bool) {
	if len(e.Touches) == 0 {
		return 0, 0, false
	}
	return e.Touches[0].ClientX, e.Touches[0].ClientY, true
}

// Rect is the surface's bounding rectangle in client coordinates.
type Rect struct {
	Left, Top, Width, Height float64
}

// ToLocal converts a raw event into a surface-local point.
func ToLocal(ev RawEvent, r Rect) (state.Point, bool) {
	if ev == nil {
		return state.Point{}, false
	}
	x, y, ok := ev.ClientPosition()
	if !ok {
		return state.Point{}, false
	}
	return state.Point{X: x - r.Left, Y: y - r.Top}, true
}
