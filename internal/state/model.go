package state

import (
	"errors"
	"fmt"

	"LiveBoard/internal/config"
)

var (
	ErrInvalidPath  = errors.New("invalid path")
	ErrInvalidStyle = errors.New("invalid stroke style")
)

// Point is a position in surface-local logical coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Path is one continuous stroke in capture order. A single point is a tap.
type Path []Point

// Clone returns a copy that shares no backing array with p.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Suffix returns the last n points of p (or all of them if p is shorter).
func (p Path) Suffix(n int) Path {
	if len(p) <= n {
		return p.Clone()
	}
	return p[len(p)-n:].Clone()
}

// Chunks splits p into pieces of at most n points. Consecutive pieces share
// their boundary point so the stroke stays continuous when each piece is
// drawn on its own. A path that already fits is returned whole.
func (p Path) Chunks(n int) []Path {
	if n < 2 || len(p) <= n {
		return []Path{p.Clone()}
	}
	var out []Path
	for start := 0; start < len(p)-1; start += n - 1 {
		end := start + n
		if end > len(p) {
			end = len(p)
		}
		out = append(out, p[start:end].Clone())
	}
	return out
}

// StrokeStyle is captured once per stroke and never changed afterwards.
type StrokeStyle struct {
	Color string  `json:"color"`
	Width float64 `json:"strokeWidth"`
}

func (s StrokeStyle) Validate() error {
	if s.Width <= 0 || s.Width > config.MaxStrokeWidth {
		return fmt.Errorf("%w: width %v", ErrInvalidStyle, s.Width)
	}
	if s.Color == "" || len(s.Color) > config.MaxColorLength {
		return fmt.Errorf("%w: color %q", ErrInvalidStyle, s.Color)
	}
	return nil
}

// DrawEvent is the wire unit for a stroke, either a whole path or a suffix
// of one still in progress. Author and Seq identify the event for duplicate
// suppression; both are optional on input.
type DrawEvent struct {
	Path        Path    `json:"path"`
	Color       string  `json:"color"`
	StrokeWidth float64 `json:"strokeWidth"`
	Author      string  `json:"author,omitempty"`
	Seq         uint64  `json:"seq,omitempty"`
}

// NewDrawEvent copies path so later edits by the caller never reach the event.
func NewDrawEvent(path Path, style StrokeStyle) DrawEvent {
	return DrawEvent{
		Path:        path.Clone(),
		Color:       style.Color,
		StrokeWidth: style.Width,
	}
}

func (e DrawEvent) Style() StrokeStyle {
	return StrokeStyle{Color: e.Color, Width: e.StrokeWidth}
}

func (e DrawEvent) Validate() error {
	if len(e.Path) == 0 || len(e.Path) > config.MaxPathPoints {
		return fmt.Errorf("%w: %d points", ErrInvalidPath, len(e.Path))
	}
	return e.Style().Validate()
}

// Participant is another member of the session.
type Participant struct {
	ID    string `json:"id"`
	Color string `json:"color"`
}
