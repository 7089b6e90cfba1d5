package capture_test

import (
	"testing"

	"LiveBoard/internal/capture"
	"LiveBoard/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	rect  = capture.Rect{Left: 100, Top: 50, Width: 800, Height: 600}
	style = state.StrokeStyle{Color: "#f00", Width: 4}
)

func ptr(x, y float64) capture.PointerEvent {
	return capture.PointerEvent{ClientX: x, ClientY: y}
}

func TestCaptureIdle(t *testing.T) {
	t.Run("move while idle is ignored", func(t *testing.T) {
		c := capture.New()
		_, ok := c.Move(ptr(120, 60), rect)

		assert.False(t, ok)
		assert.Equal(t, capture.Idle, c.Phase())
	})

	t.Run("end while idle is ignored", func(t *testing.T) {
		c := capture.New()
		_, ok := c.End()

		assert.False(t, ok)
		assert.False(t, c.Cancel())
	})
}

func TestCaptureStroke(t *testing.T) {
	t.Run("begin move end yields local path", func(t *testing.T) {
		c := capture.New()

		p, ok := c.Begin(ptr(100, 50), rect, style)
		require.True(t, ok)
		assert.Equal(t, state.Point{X: 0, Y: 0}, p)
		assert.True(t, c.Drawing())

		seg, ok := c.Move(ptr(105, 55), rect)
		require.True(t, ok)
		assert.Equal(t, state.Path{{X: 0, Y: 0}, {X: 5, Y: 5}}, seg.Path)
		assert.Equal(t, style, seg.Style)

		seg, ok = c.Move(ptr(110, 52), rect)
		require.True(t, ok)
		assert.Equal(t, state.Path{{X: 5, Y: 5}, {X: 10, Y: 2}}, seg.Path)

		stroke, ok := c.End()
		require.True(t, ok)
		assert.Equal(t, state.Path{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 10, Y: 2}}, stroke.Path)
		assert.Equal(t, style, stroke.Style)
		assert.Equal(t, capture.Idle, c.Phase())
	})

	t.Run("tap yields a single point path", func(t *testing.T) {
		c := capture.New()
		c.Begin(ptr(130, 70), rect, style)

		stroke, ok := c.End()
		require.True(t, ok)
		assert.Equal(t, state.Path{{X: 30, Y: 20}}, stroke.Path)
	})

	t.Run("segments do not alias the path", func(t *testing.T) {
		c := capture.New()
		c.Begin(ptr(100, 50), rect, style)
		seg, _ := c.Move(ptr(101, 51), rect)
		seg.Path[0] = state.Point{X: 999, Y: 999}

		stroke, _ := c.End()
		assert.Equal(t, state.Point{X: 0, Y: 0}, stroke.Path[0])
	})

	t.Run("style is fixed at begin", func(t *testing.T) {
		c := capture.New()
		c.Begin(ptr(100, 50), rect, style)
		c.Move(ptr(110, 60), rect)

		stroke, _ := c.End()
		assert.Equal(t, 4.0, stroke.Style.Width)
	})

	t.Run("second begin while active is ignored", func(t *testing.T) {
		c := capture.New()
		c.Begin(ptr(100, 50), rect, style)
		_, ok := c.Begin(ptr(300, 300), rect, state.StrokeStyle{Color: "#00f", Width: 9})
		assert.False(t, ok)

		stroke, _ := c.End()
		assert.Equal(t, state.Path{{X: 0, Y: 0}}, stroke.Path)
		assert.Equal(t, style, stroke.Style)
	})

	t.Run("cancel drops the stroke", func(t *testing.T) {
		c := capture.New()
		c.Begin(ptr(100, 50), rect, style)
		c.Move(ptr(120, 60), rect)

		assert.True(t, c.Cancel())
		_, ok := c.End()
		assert.False(t, ok)
	})
}

func TestCaptureTouch(t *testing.T) {
	t.Run("first touch is used", func(t *testing.T) {
		c := capture.New()
		ev := capture.TouchEvent{Touches: []capture.Touch{{ClientX: 110, ClientY: 60}, {ClientX: 500, ClientY: 500}}}

		p, ok := c.Begin(ev, rect, style)
		require.True(t, ok)
		assert.Equal(t, state.Point{X: 10, Y: 10}, p)
	})

	t.Run("empty touch list is ignored", func(t *testing.T) {
		c := capture.New()
		_, ok := c.Begin(capture.TouchEvent{}, rect, style)

		assert.False(t, ok)
		assert.Equal(t, capture.Idle, c.Phase())
	})

	t.Run("pointer and touch mix within a stroke", func(t *testing.T) {
		c := capture.New()
		c.Begin(capture.TouchEvent{Touches: []capture.Touch{{ClientX: 100, ClientY: 50}}}, rect, style)
		seg, ok := c.Move(ptr(102, 52), rect)

		require.True(t, ok)
		assert.Equal(t, state.Path{{X: 0, Y: 0}, {X: 2, Y: 2}}, seg.Path)
	})
}
