package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/jung-kurt/gofpdf"
)

// A4 portrait page size in millimetres.
const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0
)

const captureImageName = "invoice-capture"

// Result is a packaged PDF.
type Result struct {
	PDF      []byte
	Pages    int
	Filename string
}

// PDFPackager embeds a captured image into a portrait A4 PDF.
type PDFPackager struct{}

// NewPDFPackager returns a PDFPackager.
func NewPDFPackager() *PDFPackager {
	return &PDFPackager{}
}

// PageCount is the number of A4 pages an image of the given pixel size spans at page width.
func PageCount(width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	heightMM := PageWidthMM * float64(height) / float64(width)
	// tolerate float noise so an exact A4 image stays on one page
	return int(math.Ceil(heightMM/PageHeightMM - 1e-9))
}

// Package scales img to the page width keeping its aspect ratio. Content taller than one page
// continues on further pages, each showing the next slice of the same image.
func (p *PDFPackager) Package(img image.Image) ([]byte, int, error) {
	if img == nil {
		return nil, 0, errors.New("no image to package")
	}
	b := img.Bounds()
	pages := PageCount(b.Dx(), b.Dy())
	if pages == 0 {
		return nil, 0, fmt.Errorf("image has no area: %dx%d", b.Dx(), b.Dy())
	}

	var encoded bytes.Buffer
	if err := png.Encode(&encoded, img); err != nil {
		return nil, 0, fmt.Errorf("encoding capture as png: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader(captureImageName, opts, &encoded)
	if err := pdf.Error(); err != nil {
		return nil, 0, fmt.Errorf("registering capture image: %w", err)
	}

	heightMM := PageWidthMM * float64(b.Dy()) / float64(b.Dx())
	for page := 0; page < pages; page++ {
		pdf.AddPage()
		pdf.ImageOptions(captureImageName, 0, -float64(page)*PageHeightMM, PageWidthMM, heightMM, false, opts, 0, "")
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, 0, fmt.Errorf("writing pdf: %w", err)
	}
	return out.Bytes(), pages, nil
}
