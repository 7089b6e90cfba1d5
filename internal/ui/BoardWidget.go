package ui

import (
	"image"
	"image/color"

	"LiveBoard/internal/board"
	"LiveBoard/internal/capture"
	"LiveBoard/internal/surface"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// BoardWidget shows the surface and feeds pointer and touch input to the
// coordinator. Implementing Draggable keeps drags from reaching scroll and
// zoom handling of any parent.
type BoardWidget struct {
	widget.BaseWidget
	coord   *board.Coordinator
	surface *surface.Surface

	raster    *canvas.Raster
	lastSize  fyne.Size
	lastScale float32
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ mobile.Touchable = (*BoardWidget)(nil)

func NewBoardWidget(coord *board.Coordinator, surf *surface.Surface) *BoardWidget {
	b := &BoardWidget{coord: coord, surface: surf}
	b.raster = canvas.NewRaster(b.generate)
	b.ExtendBaseWidget(b)
	return b
}

func (b *BoardWidget) generate(w, h int) image.Image {
	if img := b.surface.Image(); img != nil {
		return img
	}
	return image.NewRGBA(image.Rect(0, 0, 1, 1))
}

// rect is the widget's bounding box in window coordinates.
func (b *BoardWidget) rect() capture.Rect {
	pos := fyne.CurrentApp().Driver().AbsolutePositionForObject(b)
	size := b.Size()
	return capture.Rect{
		Left:   float64(pos.X),
		Top:    float64(pos.Y),
		Width:  float64(size.Width),
		Height: float64(size.Height),
	}
}

func pointer(ev fyne.PointEvent) capture.PointerEvent {
	return capture.PointerEvent{
		ClientX: float64(ev.AbsolutePosition.X),
		ClientY: float64(ev.AbsolutePosition.Y),
	}
}

func touch(ev *mobile.TouchEvent) capture.TouchEvent {
	return capture.TouchEvent{Touches: []capture.Touch{{
		ClientX: float64(ev.AbsolutePosition.X),
		ClientY: float64(ev.AbsolutePosition.Y),
	}}}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.coord.PointerDown(pointer(e.PointEvent), b.rect())
	}
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.coord.PointerUp()
	}
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.coord.PointerMove(pointer(e.PointEvent), b.rect())
}

func (b *BoardWidget) DragEnd() {
	b.coord.PointerUp()
}

func (b *BoardWidget) TouchDown(e *mobile.TouchEvent) {
	b.coord.PointerDown(touch(e), b.rect())
}

func (b *BoardWidget) TouchUp(*mobile.TouchEvent) {
	b.coord.PointerUp()
}

func (b *BoardWidget) TouchCancel(*mobile.TouchEvent) {
	b.coord.PointerCancel()
}

// Redraw regenerates the raster from the surface.
func (b *BoardWidget) Redraw() {
	b.raster.Refresh()
}

// syncSize reconfigures the surface when the widget size or the display
// scale changes.
func (b *BoardWidget) syncSize(size fyne.Size) {
	scale := float32(1)
	if c := fyne.CurrentApp().Driver().CanvasForObject(b); c != nil {
		scale = c.Scale()
	}
	if size == b.lastSize && scale == b.lastScale {
		return
	}
	b.lastSize, b.lastScale = size, scale
	b.coord.Resize(float64(size.Width), float64(size.Height), float64(scale))
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.board.raster}
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.board.raster.Resize(size)
	r.board.syncSize(size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardWidgetRenderer) Refresh() {
	r.board.raster.Refresh()
}

func (r *boardWidgetRenderer) Destroy() {}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseOut()                      {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}
