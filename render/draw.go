package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"picdoc/layout"
)

// canvas draws in page units onto a bitmap captured at a fixed scale.
type canvas struct {
	img   *image.RGBA
	scale float64
}

func (c *canvas) px(v float64) int {
	return int(math.Round(v * c.scale))
}

func (c *canvas) rect(r layout.Rect) image.Rectangle {
	return image.Rect(c.px(r.X), c.px(r.Y), c.px(r.X+r.W), c.px(r.Y+r.H))
}

func (c *canvas) fillRect(r layout.Rect, col color.Color) {
	draw.Draw(c.img, c.rect(r), image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *canvas) fillPx(r image.Rectangle, col color.Color) {
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

// strokeRect draws a border of the given width inside the rectangle.
func (c *canvas) strokeRect(r layout.Rect, width float64, col color.Color) {
	b := c.rect(r)
	w := c.px(width)
	if w < 1 {
		w = 1
	}
	c.fillPx(image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+w), col)
	c.fillPx(image.Rect(b.Min.X, b.Max.Y-w, b.Max.X, b.Max.Y), col)
	c.fillPx(image.Rect(b.Min.X, b.Min.Y+w, b.Min.X+w, b.Max.Y-w), col)
	c.fillPx(image.Rect(b.Max.X-w, b.Min.Y+w, b.Max.X, b.Max.Y-w), col)
}

// dashedRect draws a dashed border inside the rectangle.
func (c *canvas) dashedRect(r layout.Rect, width, dash float64, col color.Color) {
	b := c.rect(r)
	w := c.px(width)
	if w < 1 {
		w = 1
	}
	d := c.px(dash)
	if d < 2 {
		d = 2
	}
	for x := b.Min.X; x < b.Max.X; x += 2 * d {
		end := min(x+d, b.Max.X)
		c.fillPx(image.Rect(x, b.Min.Y, end, b.Min.Y+w), col)
		c.fillPx(image.Rect(x, b.Max.Y-w, end, b.Max.Y), col)
	}
	for y := b.Min.Y; y < b.Max.Y; y += 2 * d {
		end := min(y+d, b.Max.Y)
		c.fillPx(image.Rect(b.Min.X, y, b.Min.X+w, end), col)
		c.fillPx(image.Rect(b.Max.X-w, y, b.Max.X, end), col)
	}
}

// paste centers src inside the rectangle, clipping the overflow.
func (c *canvas) paste(src image.Image, r layout.Rect) {
	b := c.rect(r)
	sb := src.Bounds()
	dx := b.Min.X + (b.Dx()-sb.Dx())/2
	dy := b.Min.Y + (b.Dy()-sb.Dy())/2
	dst := image.Rect(dx, dy, dx+sb.Dx(), dy+sb.Dy())
	clipped := dst.Intersect(b)
	if clipped.Empty() {
		return
	}
	offset := image.Pt(clipped.Min.X-dx, clipped.Min.Y-dy)
	draw.Draw(c.img, clipped, src, sb.Min.Add(offset), draw.Over)
}

// drawTextPx renders a single line with its baseline at yPx.
func (c *canvas) drawTextPx(text string, xPx, yPx int, face font.Face, col color.Color) {
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(xPx, yPx),
	}
	d.DrawString(text)
}

func textWidthPx(face font.Face, text string) int {
	return font.MeasureString(face, text).Ceil()
}

// wrapText breaks text into lines not wider than maxPx. Words longer than the
// limit stay on their own line and overflow.
func wrapText(face font.Face, text string, maxPx int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		candidate := cur + " " + w
		if textWidthPx(face, candidate) > maxPx {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur = candidate
	}
	return append(lines, cur)
}
