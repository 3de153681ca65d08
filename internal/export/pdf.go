package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

const pdfImageName = "canvas"

// WritePDF writes a single-page PDF whose page matches the drawing, one
// point per canvas pixel, with the rendered PNG filling the page.
func WritePDF(w io.Writer, src Source) error {
	width, height := src.Size()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("pdf export: empty drawing %dx%d", width, height)
	}

	var img bytes.Buffer
	if err := src.ExportPNG(&img); err != nil {
		return fmt.Errorf("pdf export: render: %w", err)
	}

	wd, ht := float64(width), float64(height)
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader(pdfImageName, opts, &img)
	p.ImageOptions(pdfImageName, 0, 0, wd, ht, false, opts, 0, "")

	if err := p.Output(w); err != nil {
		return fmt.Errorf("pdf export: %w", err)
	}
	return nil
}
