package export

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // logo decoding
	_ "image/png"  // logo decoding
	"strings"
	"unicode"

	"github.com/SscSPs/invoice_wizard/internal/render"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultCaptureWidth is the raster width in pixels (A4 at 96 dpi).
const DefaultCaptureWidth = 794

const (
	margin     = 40
	lineHeight = 18
	blockGap   = 16
	logoHeight = 56
	titleScale = 2
)

var (
	inkColor    = color.RGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xff}
	mutedColor  = color.RGBA{R: 0x6b, G: 0x72, B: 0x80, A: 0xff}
	ruleColor   = color.RGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff}
	paperColor  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	columnSplit = []float64{0.46, 0.12, 0.21, 0.21}
)

// glyphs outside basicfont's ASCII range
var symbolFallbacks = map[rune]string{
	'₵': "C",
	'€': "EUR",
	'£': "GBP",
	'₦': "NGN",
	'–': "-",
	'—': "-",
	'‘': "'",
	'’': "'",
	'“': `"`,
	'”': `"`,
	'•': "*",
}

// Capturer rasterizes a Document at a fixed width.
type Capturer struct {
	width int
	face  font.Face
}

// NewCapturer returns a Capturer for the given width; non-positive widths use DefaultCaptureWidth.
func NewCapturer(width int) *Capturer {
	if width <= 0 {
		width = DefaultCaptureWidth
	}
	return &Capturer{width: width, face: basicfont.Face7x13}
}

// Width returns the raster width in pixels.
func (c *Capturer) Width() int {
	return c.width
}

// Capture lays the document out twice: once to measure its height, once to draw.
func (c *Capturer) Capture(ctx context.Context, doc render.Document) (image.Image, error) {
	if c.width < 2*margin+100 {
		return nil, fmt.Errorf("capture width %d too small", c.width)
	}
	if len(doc.Blocks) == 0 {
		return nil, errors.New("document has no blocks")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	measure := c.newCanvas(nil, doc)
	measure.document(doc)
	height := measure.y + margin

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, c.width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(paperColor), image.Point{}, draw.Src)
	c.newCanvas(img, doc).document(doc)
	return img, nil
}

// canvas draws onto img, or only advances the cursor when img is nil.
type canvas struct {
	img    *image.RGBA
	face   font.Face
	width  int
	y      int
	accent color.RGBA
	layout render.Layout
}

func (c *Capturer) newCanvas(img *image.RGBA, doc render.Document) *canvas {
	return &canvas{
		img:    img,
		face:   c.face,
		width:  c.width,
		y:      margin,
		accent: parseHexColor(doc.Theme.Color),
		layout: doc.Theme.Layout,
	}
}

func (cv *canvas) contentWidth() int {
	return cv.width - 2*margin
}

func (cv *canvas) document(doc render.Document) {
	title := doc.Title
	if doc.Number != "" {
		title += " #" + doc.Number
	}

	bandHeight := lineHeight*titleScale + 16
	switch cv.layout {
	case render.LayoutBanded:
		cv.fill(0, cv.y-margin/2, cv.width, bandHeight, cv.accent)
		cv.textScaled(title, margin, cv.y+8, paperColor, titleScale)
	case render.LayoutCentered:
		x := (cv.width - cv.measure(title)*titleScale) / 2
		cv.textScaled(title, x, cv.y+8, cv.accent, titleScale)
	default:
		cv.textScaled(title, margin, cv.y+8, cv.accent, titleScale)
	}
	cv.y += bandHeight

	for _, b := range doc.Blocks {
		cv.block(b)
		cv.y += blockGap
	}
}

func (cv *canvas) block(b render.Block) {
	if b.Kind == render.BlockFooter {
		cv.fill(margin, cv.y, cv.contentWidth(), 1, ruleColor)
		cv.y += 8
	}

	if logo := decodeDataImage(b.Image); logo != nil {
		cv.image(logo, b.Align)
	}

	if b.Title != "" {
		col := mutedColor
		if b.Kind == render.BlockIssuer {
			col = inkColor
		}
		cv.line(strings.ToUpper(b.Title), b.Align, col)
	}

	if len(b.Columns) > 0 {
		cv.table(b)
		return
	}

	for _, f := range b.Fields {
		cv.field(f, b.Align, b.Kind == render.BlockTotals)
	}

	col := inkColor
	if b.Placeholder {
		col = mutedColor
	}
	for _, l := range b.Lines {
		for _, wrapped := range cv.wrap(l, cv.contentWidth()) {
			cv.line(wrapped, b.Align, col)
		}
	}
}

func (cv *canvas) table(b render.Block) {
	cw := cv.contentWidth()
	cols := make([]int, len(columnSplit))
	x := margin
	for i, frac := range columnSplit {
		cols[i] = x
		x += int(frac * float64(cw))
	}

	cv.fill(margin, cv.y, cw, lineHeight+6, cv.accent)
	for i, h := range b.Columns {
		if i < len(cols) {
			cv.text(h, cols[i]+4, cv.y+lineHeight-2, paperColor)
		}
	}
	cv.y += lineHeight + 6

	for _, row := range b.Rows {
		if row.Placeholder && len(row.Cells) > 0 {
			x := margin + (cw-cv.measure(row.Cells[0]))/2
			cv.text(row.Cells[0], x, cv.y+lineHeight-2, mutedColor)
			cv.y += lineHeight + 4
			cv.fill(margin, cv.y, cw, 1, ruleColor)
			continue
		}

		wrapped := cv.wrap(cellAt(row.Cells, 0), int(columnSplit[0]*float64(cw))-8)
		for i, l := range wrapped {
			cv.text(l, cols[0]+4, cv.y+lineHeight-2+i*lineHeight, inkColor)
		}
		for i := 1; i < len(cols); i++ {
			cell := cellAt(row.Cells, i)
			colWidth := int(columnSplit[i] * float64(cw))
			cv.text(cell, cols[i]+colWidth-4-cv.measure(cell), cv.y+lineHeight-2, inkColor)
		}
		cv.y += len(wrapped)*lineHeight + 4
		cv.fill(margin, cv.y, cw, 1, ruleColor)
	}
	cv.y += 4
}

func (cv *canvas) field(f render.Field, align render.Align, emphasize bool) {
	half := cv.contentWidth() / 2
	left := margin
	if align == render.AlignRight {
		left = margin + half
	}
	right := left + half

	if emphasize && f.Label == "Total" {
		cv.fill(left, cv.y, half, 2, cv.accent)
		cv.y += 4
	}
	baseline := cv.y + lineHeight - 4
	cv.text(f.Label, left, baseline, mutedColor)
	cv.text(f.Value, right-cv.measure(f.Value), baseline, inkColor)
	if emphasize && f.Label == "Total" {
		// faux bold
		cv.text(f.Value, right-cv.measure(f.Value)+1, baseline, inkColor)
	}
	cv.y += lineHeight
}

func (cv *canvas) line(s string, align render.Align, col color.RGBA) {
	x := margin
	switch align {
	case render.AlignRight:
		x = cv.width - margin - cv.measure(s)
	case render.AlignCenter:
		x = (cv.width - cv.measure(s)) / 2
	}
	cv.text(s, x, cv.y+lineHeight-4, col)
	cv.y += lineHeight
}

func (cv *canvas) image(src image.Image, align render.Align) {
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	h := logoHeight
	w := b.Dx() * h / b.Dy()
	if w > cv.contentWidth()/2 {
		w = cv.contentWidth() / 2
		h = b.Dy() * w / b.Dx()
	}

	x := margin
	switch align {
	case render.AlignRight:
		x = cv.width - margin - w
	case render.AlignCenter:
		x = (cv.width - w) / 2
	}
	if cv.img != nil {
		draw.ApproxBiLinear.Scale(cv.img, image.Rect(x, cv.y, x+w, cv.y+h), src, b, draw.Over, nil)
	}
	cv.y += h + 6
}

func (cv *canvas) text(s string, x, baseline int, col color.RGBA) {
	if cv.img == nil || s == "" {
		return
	}
	d := &font.Drawer{
		Dst:  cv.img,
		Src:  image.NewUniform(col),
		Face: cv.face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(toASCII(s))
}

// textScaled draws s at an integer scale by rendering into a scratch image and upscaling.
func (cv *canvas) textScaled(s string, x, top int, col color.RGBA, scale int) {
	if cv.img == nil || s == "" {
		return
	}
	w := cv.measure(s)
	h := cv.face.Metrics().Height.Ceil()
	scratch := image.NewRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  scratch,
		Src:  image.NewUniform(col),
		Face: cv.face,
		Dot:  fixed.P(0, cv.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(toASCII(s))
	draw.NearestNeighbor.Scale(cv.img, image.Rect(x, top, x+w*scale, top+h*scale), scratch, scratch.Bounds(), draw.Over, nil)
}

func (cv *canvas) fill(x, y, w, h int, col color.RGBA) {
	if cv.img == nil {
		return
	}
	draw.Draw(cv.img, image.Rect(x, y, x+w, y+h), image.NewUniform(col), image.Point{}, draw.Src)
}

func (cv *canvas) measure(s string) int {
	return font.MeasureString(cv.face, toASCII(s)).Ceil()
}

// wrap breaks s into lines no wider than maxWidth, cutting words that do not fit on their own.
func (cv *canvas) wrap(s string, maxWidth int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, w := range words {
		w = toASCII(w)
		if cv.measure(w) > maxWidth {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			chunks := cv.split(w, maxWidth)
			lines = append(lines, chunks[:len(chunks)-1]...)
			w = chunks[len(chunks)-1]
		}
		candidate := w
		if current != "" {
			candidate = current + " " + w
		}
		if cv.measure(candidate) > maxWidth && current != "" {
			lines = append(lines, current)
			current = w
			continue
		}
		current = candidate
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// split cuts an over-wide word into chunks no wider than maxWidth, one glyph at a time.
// Every chunk holds at least one rune.
func (cv *canvas) split(w string, maxWidth int) []string {
	limit := fixed.I(maxWidth)
	var chunks []string
	start, width := 0, fixed.Int26_6(0)
	for i, r := range w {
		adv, ok := cv.face.GlyphAdvance(r)
		if !ok {
			adv, _ = cv.face.GlyphAdvance('?')
		}
		if i > start && width+adv > limit {
			chunks = append(chunks, w[start:i])
			start, width = i, 0
		}
		width += adv
	}
	return append(chunks, w[start:])
}

func cellAt(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}

// toASCII maps text onto the glyphs basicfont can draw.
func toASCII(s string) string {
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		stripped = s
	}

	var b strings.Builder
	for _, r := range stripped {
		switch {
		case r >= 0x20 && r < 0x7f:
			b.WriteRune(r)
		case symbolFallbacks[r] != "":
			b.WriteString(symbolFallbacks[r])
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		default:
			b.WriteByte('?')
		}
	}
	return b.String()
}

func parseHexColor(hex string) color.RGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(strings.TrimPrefix(hex, "#"), "%02x%02x%02x", &r, &g, &b); err != nil {
		return parseHexColor(render.FallbackColor)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// decodeDataImage decodes a base64 data:image URI. Remote logo URLs are not fetched at capture time.
func decodeDataImage(ref string) image.Image {
	if !strings.HasPrefix(ref, "data:image/") {
		return nil
	}
	comma := strings.IndexByte(ref, ',')
	if comma < 0 || !strings.Contains(ref[:comma], ";base64") {
		return nil
	}
	raw, err := base64.StdEncoding.DecodeString(ref[comma+1:])
	if err != nil {
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil
	}
	return img
}
