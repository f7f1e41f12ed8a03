package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/invoice_wizard/internal/core/domain"
	"github.com/SscSPs/invoice_wizard/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
)

func documentWithItems(t *testing.T, n int) render.Document {
	t.Helper()
	d := domain.NewDraft(domain.DefaultSettings(), domain.NewDate(2025, 1, 2).Time)
	d.Company.Name = "Acme Ltd"
	d.Currency = "GHS"
	for i := 0; i < n; i++ {
		var item domain.LineItem
		d.LineItems, item = d.LineItems.Add(fmt.Sprintf("item-%d", i))
		d.LineItems, _ = d.LineItems.Update(item.ID, domain.LineItemPatch{Quantity: domain.Num("2"), Rate: domain.Num("12.5")})
	}
	doc, err := render.NewRegistry().Render(domain.TemplateEnterprise, render.BuildInvoiceData(d, domain.DefaultSettings()))
	require.NoError(t, err)
	return doc
}

func TestCapturer_FixedWidth(t *testing.T) {
	c := NewCapturer(0)
	assert.Equal(t, DefaultCaptureWidth, c.Width())

	img, err := c.Capture(context.Background(), documentWithItems(t, 1))
	require.NoError(t, err)
	assert.Equal(t, DefaultCaptureWidth, img.Bounds().Dx())
	assert.Greater(t, img.Bounds().Dy(), 2*margin)
}

func TestCapturer_HeightGrowsWithContent(t *testing.T) {
	c := NewCapturer(DefaultCaptureWidth)
	short, err := c.Capture(context.Background(), documentWithItems(t, 1))
	require.NoError(t, err)
	long, err := c.Capture(context.Background(), documentWithItems(t, 80))
	require.NoError(t, err)

	assert.Greater(t, long.Bounds().Dy(), short.Bounds().Dy())
	assert.Greater(t, PageCount(long.Bounds().Dx(), long.Bounds().Dy()), 1)
}

func TestCanvasWrap_SplitsLongWords(t *testing.T) {
	cv := &canvas{face: basicfont.Face7x13}

	word := strings.Repeat("x", 10000)
	lines := cv.wrap(word, 100)
	assert.Len(t, lines, 715)
	for _, l := range lines {
		assert.LessOrEqual(t, cv.measure(l), 100)
	}
	assert.Equal(t, word, strings.Join(lines, ""))

	lines = cv.wrap("ab café€€€€€€€€ cd", 56)
	assert.Equal(t, []string{"ab", "cafeEURE", "UREUREUR", "EUREUREU", "REUR cd"}, lines)

	assert.Equal(t, []string{"x"}, cv.wrap("x", 1), "a glyph wider than the line still gets a line of its own")
}

func TestCapturer_LongUnbrokenDescription(t *testing.T) {
	d := domain.NewDraft(domain.DefaultSettings(), domain.NewDate(2025, 1, 2).Time)
	description := strings.Repeat("x", 10000)
	var item domain.LineItem
	d.LineItems, item = d.LineItems.Add("item-1")
	d.LineItems, _ = d.LineItems.Update(item.ID, domain.LineItemPatch{Description: &description, Quantity: domain.Num("1"), Rate: domain.Num("5")})
	doc, err := render.NewRegistry().Render(domain.TemplateClassic, render.BuildInvoiceData(d, domain.DefaultSettings()))
	require.NoError(t, err)

	start := time.Now()
	img, err := NewCapturer(DefaultCaptureWidth).Capture(context.Background(), doc)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Greater(t, PageCount(img.Bounds().Dx(), img.Bounds().Dy()), 1)
}

func TestCapturer_DrawsThemeColor(t *testing.T) {
	doc := documentWithItems(t, 1)
	doc.Theme.Color = "#ff0000"
	img, err := NewCapturer(DefaultCaptureWidth).Capture(context.Background(), doc)
	require.NoError(t, err)

	found := false
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y && !found; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if color.RGBAModel.Convert(img.At(x, y)) == (color.RGBA{R: 0xff, A: 0xff}) {
				found = true
				break
			}
		}
	}
	assert.True(t, found, "expected accent color in capture")
}

func TestCapturer_Errors(t *testing.T) {
	_, err := NewCapturer(50).Capture(context.Background(), documentWithItems(t, 1))
	assert.Error(t, err)

	_, err = NewCapturer(DefaultCaptureWidth).Capture(context.Background(), render.Document{})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewCapturer(DefaultCaptureWidth).Capture(ctx, documentWithItems(t, 1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestToASCII(t *testing.T) {
	assert.Equal(t, "GHC1,000.00", toASCII("GH₵1,000.00"))
	assert.Equal(t, "EUR5.00", toASCII("€5.00"))
	assert.Equal(t, "Cafe Creme", toASCII("Café Crème"))
	assert.Equal(t, "a?b", toASCII("a中b"))
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, PageCount(0, 100))
	assert.Equal(t, 1, PageCount(210, 297))
	assert.Equal(t, 1, PageCount(794, 1000))
	assert.Equal(t, 2, PageCount(210, 298))
	assert.Equal(t, 3, PageCount(794, 3000))
}

func TestPDFPackager_Package(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 210, 600))
	pdf, pages, err := NewPDFPackager().Package(img)
	require.NoError(t, err)
	assert.Equal(t, 3, pages)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))

	_, _, err = NewPDFPackager().Package(nil)
	assert.Error(t, err)

	_, _, err = NewPDFPackager().Package(image.NewRGBA(image.Rect(0, 0, 0, 0)))
	assert.Error(t, err)
}

type failingRasterizer struct{}

func (failingRasterizer) Capture(context.Context, render.Document) (image.Image, error) {
	return nil, errors.New("boom")
}

func TestPipeline_Run(t *testing.T) {
	doc := documentWithItems(t, 2)
	result, err := NewPipeline(NewCapturer(DefaultCaptureWidth), NewPDFPackager()).Run(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "invoice-INV-001.pdf", result.Filename)
	assert.Equal(t, 1, result.Pages)
	assert.NotEmpty(t, result.PDF)

	_, err = NewPipeline(failingRasterizer{}, NewPDFPackager()).Run(context.Background(), doc)
	assert.ErrorContains(t, err, "capturing document")
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "invoice-INV-001.pdf", Filename("INV-001"))
	assert.Equal(t, "invoice-INV-2025-7.pdf", Filename("INV 2025/7"))
	assert.Equal(t, "invoice.pdf", Filename("  "))
}
