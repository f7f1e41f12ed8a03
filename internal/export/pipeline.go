package export

import (
	"context"
	"fmt"
	"image"
	"regexp"
	"strings"

	"github.com/SscSPs/invoice_wizard/internal/render"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Rasterizer captures a document as an image.
type Rasterizer interface {
	Capture(ctx context.Context, doc render.Document) (image.Image, error)
}

// Packager turns a captured image into PDF bytes and a page count.
type Packager interface {
	Package(img image.Image) ([]byte, int, error)
}

// Pipeline runs capture then packaging. It holds no draft state.
type Pipeline struct {
	rasterizer Rasterizer
	packager   Packager
}

// NewPipeline wires a rasterizer and a packager.
func NewPipeline(rasterizer Rasterizer, packager Packager) *Pipeline {
	return &Pipeline{rasterizer: rasterizer, packager: packager}
}

// Run captures doc and packages the capture as a PDF.
func (p *Pipeline) Run(ctx context.Context, doc render.Document) (Result, error) {
	img, err := p.rasterizer.Capture(ctx, doc)
	if err != nil {
		return Result{}, fmt.Errorf("capturing document: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	pdf, pages, err := p.packager.Package(img)
	if err != nil {
		return Result{}, fmt.Errorf("packaging pdf: %w", err)
	}
	return Result{PDF: pdf, Pages: pages, Filename: Filename(doc.Number)}, nil
}

// Filename is the download name for an exported invoice, e.g. "invoice-INV-001.pdf".
func Filename(invoiceNumber string) string {
	safe := strings.Trim(unsafeFilenameChars.ReplaceAllString(strings.TrimSpace(invoiceNumber), "-"), "-")
	if safe == "" {
		return "invoice.pdf"
	}
	return "invoice-" + safe + ".pdf"
}
