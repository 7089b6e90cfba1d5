// Package export writes a picture of the board.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/draw"
)

var ErrEmptyBoard = errors.New("nothing to export")

// ptPerLogical maps one logical (CSS) pixel to PDF points.
const ptPerLogical = 0.75

// SnapshotPDF writes img, a device-pixel raster, as a one page PDF sized to
// the logical viewport. The raster is first scaled back to logical size.
func SnapshotPDF(w io.Writer, img image.Image, logicalWidth, logicalHeight float64) error {
	if img == nil || img.Bounds().Empty() {
		return ErrEmptyBoard
	}
	lw, lh := int(logicalWidth), int(logicalHeight)
	if lw <= 0 || lh <= 0 {
		return ErrEmptyBoard
	}

	flat := image.NewRGBA(image.Rect(0, 0, lw, lh))
	draw.Draw(flat, flat.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(flat, flat.Bounds(), img, img.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, flat); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	pw, ph := logicalWidth*ptPerLogical, logicalHeight*ptPerLogical
	orientation := "P"
	if pw > ph {
		orientation = "L"
	}
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pw, Ht: ph},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("board", opts, &buf)
	p.ImageOptions("board", 0, 0, pw, ph, false, opts, 0, "")

	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
