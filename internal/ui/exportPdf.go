package ui

import (
	"errors"
	"log"

	"LiveBoard/internal/export"
	"LiveBoard/internal/surface"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// showExport asks for a file and writes the current board into it.
func showExport(win fyne.Window, surf *surface.Surface) {
	img := surf.Image()
	w, h := surf.LogicalSize()
	if img == nil {
		dialog.ShowInformation("Export", "The board is not ready yet.", win)
		return
	}

	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if writer == nil {
			return // cancelled
		}
		defer func() {
			if err := writer.Close(); err != nil {
				log.Printf("Error closing export: %v", err)
			}
		}()

		if err := export.SnapshotPDF(writer, img, w, h); err != nil {
			if !errors.Is(err, export.ErrEmptyBoard) {
				log.Printf("Export failed: %v", err)
			}
			dialog.ShowError(err, win)
			return
		}
		log.Printf("Exported board to %s", writer.URI())
	}, win)
	save.SetFileName("liveboard.pdf")
	save.Show()
}
