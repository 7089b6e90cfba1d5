// Package surface rasterizes strokes onto a device-pixel backing image while
// callers address it in logical coordinates.
package surface

import (
	"image"
	"log"
	"math"

	"LiveBoard/internal/state"
	"github.com/gogpu/gg"
)

// Surface is the visible drawing raster. It is not safe for concurrent use;
// every call happens on the board's dispatcher.
type Surface struct {
	dc     *gg.Context
	width  float64 // logical
	height float64
	ratio  float64
}

func New() *Surface {
	return &Surface{ratio: 1}
}

// Configure sizes the backing raster to logical*ratio device pixels and
// scales the transform so drawing stays in logical units. Prior content is
// discarded. A zero-sized viewport leaves the surface unconfigured.
func (s *Surface) Configure(logicalWidth, logicalHeight, ratio float64) {
	if ratio <= 0 || math.IsNaN(ratio) {
		ratio = 1
	}
	pw := int(math.Floor(logicalWidth * ratio))
	ph := int(math.Floor(logicalHeight * ratio))
	if pw <= 0 || ph <= 0 {
		s.release()
		return
	}

	if s.dc == nil {
		s.dc = gg.NewContext(pw, ph)
	} else if err := s.dc.Resize(pw, ph); err != nil {
		log.Printf("[SURFACE] resize to %dx%d failed: %v", pw, ph, err)
		s.release()
		return
	}

	s.dc.Clear()
	s.dc.ClearPath()
	s.dc.Identity()
	s.dc.Scale(ratio, ratio)

	s.width, s.height, s.ratio = logicalWidth, logicalHeight, ratio
}

// StrokePath draws one continuous line through path with round joins and
// caps. A path that does not move draws a dot of diameter style.Width.
func (s *Surface) StrokePath(path state.Path, style state.StrokeStyle) {
	if s.dc == nil || len(path) == 0 || style.Width <= 0 {
		return
	}

	col, ok := ParseColor(style.Color)
	if !ok {
		log.Printf("[SURFACE] unknown color %q, drawing in black", style.Color)
	}
	s.dc.ClearPath()
	s.dc.SetColor(col)

	if stationary(path) {
		s.dc.DrawCircle(path[0].X, path[0].Y, style.Width/2)
		if err := s.dc.Fill(); err != nil {
			log.Printf("[SURFACE] dot: %v", err)
		}
		return
	}

	s.dc.SetLineWidth(style.Width)
	s.dc.SetLineCap(gg.LineCapRound)
	s.dc.SetLineJoin(gg.LineJoinRound)
	s.dc.MoveTo(path[0].X, path[0].Y)
	for _, p := range path[1:] {
		s.dc.LineTo(p.X, p.Y)
	}
	if err := s.dc.Stroke(); err != nil {
		log.Printf("[SURFACE] stroke: %v", err)
	}
}

// Clear erases the raster to transparent.
func (s *Surface) Clear() {
	if s.dc == nil {
		return
	}
	s.dc.Clear()
}

// Configured reports whether Configure has produced a usable raster.
func (s *Surface) Configured() bool {
	return s.dc != nil
}

// PixelSize is the backing raster size in device pixels.
func (s *Surface) PixelSize() (int, int) {
	if s.dc == nil {
		return 0, 0
	}
	return s.dc.Width(), s.dc.Height()
}

// LogicalSize is the addressable size in logical units.
func (s *Surface) LogicalSize() (float64, float64) {
	return s.width, s.height
}

func (s *Surface) Ratio() float64 {
	return s.ratio
}

// Image returns a copy of the backing raster, or nil when unconfigured.
func (s *Surface) Image() image.Image {
	if s.dc == nil {
		return nil
	}
	return s.dc.Image()
}

func (s *Surface) release() {
	if s.dc != nil {
		_ = s.dc.Close()
	}
	s.dc = nil
	s.width, s.height = 0, 0
}

func stationary(path state.Path) bool {
	for _, p := range path[1:] {
		if p != path[0] {
			return false
		}
	}
	return true
}
