package ui

import (
	"fmt"
	"image/color"

	"LiveBoard/internal/board"
	"LiveBoard/internal/config"
	"LiveBoard/internal/state"
	"LiveBoard/internal/surface"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// --- Participant color dot ---
type colorDot struct {
	widget.BaseWidget
	circle *canvas.Circle
}

func newColorDot(c string) *colorDot {
	d := &colorDot{circle: canvas.NewCircle(toColor(c))}
	d.circle.StrokeColor = color.Gray{Y: 150}
	d.circle.StrokeWidth = 1
	d.ExtendBaseWidget(d)
	return d
}

func (d *colorDot) SetColor(c string) {
	d.circle.FillColor = toColor(c)
	d.circle.Refresh()
}

func (d *colorDot) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(d.circle)
}

func (d *colorDot) MinSize() fyne.Size {
	return fyne.NewSize(16, 16)
}

func toColor(s string) color.Color {
	c, _ := surface.ParseColor(s)
	return c
}

// Sidebar is the chrome next to the board: own color, stroke width, clear,
// export and who is connected.
type Sidebar struct {
	coord *board.Coordinator

	content  fyne.CanvasObject
	ownDot   *colorDot
	ownColor *widget.Label
	count    *widget.Label
	users    *fyne.Container
	status   *widget.Label
}

func NewSidebar(coord *board.Coordinator, onClear, onExport func()) *Sidebar {
	s := &Sidebar{
		coord:    coord,
		ownDot:   newColorDot(coord.Color()),
		ownColor: widget.NewLabel(coord.Color()),
		count:    widget.NewLabel(""),
		users:    container.NewGridWrap(fyne.NewSize(90, 24)),
		status:   widget.NewLabel(coord.Status()),
	}

	width := widget.NewSlider(config.MinToolWidth, config.MaxToolWidth)
	width.Step = 1
	width.SetValue(coord.StrokeWidth())
	width.OnChanged = func(v float64) {
		coord.SetStrokeWidth(v)
	}

	clear := widget.NewButtonWithIcon("Clear", theme.DeleteIcon(), onClear)
	exportBtn := widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), onExport)

	s.content = container.NewVBox(
		widget.NewLabelWithStyle("LiveBoard", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Your color:"),
		container.NewHBox(s.ownDot, s.ownColor),
		widget.NewSeparator(),
		widget.NewLabel("Stroke width"),
		width,
		clear,
		exportBtn,
		widget.NewSeparator(),
		s.count,
		s.users,
		layout.NewSpacer(),
		s.status,
	)
	s.Refresh()
	return s
}

func (s *Sidebar) Content() fyne.CanvasObject {
	return s.content
}

// Refresh pulls the current style, presence and status from the coordinator.
func (s *Sidebar) Refresh() {
	own := s.coord.Color()
	s.ownDot.SetColor(own)
	s.ownColor.SetText(own)

	others := s.coord.Participants()
	s.count.SetText(fmt.Sprintf("Users connected: %d", len(others)+1))

	objs := make([]fyne.CanvasObject, 0, len(others)+1)
	for _, p := range others {
		objs = append(objs, userEntry(p.Color, shortID(p)))
	}
	objs = append(objs, userEntry(own, "You"))
	s.users.Objects = objs
	s.users.Refresh()

	s.status.SetText(s.coord.Status())
}

func userEntry(c, label string) fyne.CanvasObject {
	return container.NewHBox(newColorDot(c), widget.NewLabel(label))
}

func shortID(p state.Participant) string {
	if len(p.ID) > 5 {
		return p.ID[:5]
	}
	return p.ID
}
