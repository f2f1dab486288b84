package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"
)

const imageName = "canvas"

// WritePDF writes img as a single page whose size matches the image, one
// point per pixel.
func WritePDF(w io.Writer, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}

	b := img.Bounds()
	width, height := float64(b.Dx()), float64(b.Dy())
	// Portrait keeps Wd and Ht as given; landscape would swap them.
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader(imageName, opts, &buf)
	p.ImageOptions(imageName, 0, 0, width, height, false, opts, 0, "")
	if err := p.Output(w); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	return nil
}
