package ui

import (
	"context"

	"LiveBoard/internal/board"
	"LiveBoard/internal/config"
	"LiveBoard/internal/surface"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
)

// RunApp opens the board window and joins the session named by link (or the
// configured/discovered one). It returns when the window is closed.
func RunApp(cfg *config.Config, link string) {
	myApp := app.New()
	myWindow := myApp.NewWindow("LiveBoard")
	myWindow.Resize(fyne.NewSize(1024, 768))

	surf := surface.New()

	var boardWidget *BoardWidget
	var sidebar *Sidebar
	coord := board.New(surf, board.Options{
		Notify: func(n board.Notice) {
			dialog.ShowInformation("LiveBoard", string(n), myWindow)
		},
		Redraw: func() {
			if boardWidget != nil {
				boardWidget.Redraw()
			}
		},
		Changed: func() {
			if sidebar != nil {
				sidebar.Refresh()
			}
		},
	})
	coord.SetStrokeWidth(cfg.DefaultWidth)

	boardWidget = NewBoardWidget(coord, surf)
	sidebar = NewSidebar(coord, coord.Clear, func() { showExport(myWindow, surf) })

	content := container.NewBorder(nil, nil, sidebar.Content(), nil, boardWidget)
	myWindow.SetContent(content)

	ctx, cancel := context.WithCancel(context.Background())
	myWindow.SetOnClosed(func() {
		cancel()
		coord.Detach()
	})

	go connect(ctx, cfg, link, coord, func(s string) {
		sidebar.status.SetText(s)
	})

	myWindow.ShowAndRun()
}
