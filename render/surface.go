// Package render rasterizes document pages into pixel-accurate A4 bitmaps.
// Geometry is computed in CSS reference pixels and captured at a configurable
// scale, so interactive preview and print export share one code path.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"reflect"
	"sync"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"picdoc/config"
	"picdoc/document"
	"picdoc/layout"
	imgutil "picdoc/utils/images"
)

const (
	// metadata block typography, page units
	titleLineSpacing = 1.2
	metaLineSpacing  = 1.4
	metaFontPx       = 12.0
	descFontPx       = 11.0
	descBandPadding  = 4.0
)

var (
	ErrDisposed = errors.New("render surface already disposed")

	colorWhite   = color.RGBA{255, 255, 255, 255}
	colorFrame   = color.RGBA{31, 41, 55, 255}
	colorNeutral = color.RGBA{156, 163, 175, 255}
	colorText    = color.RGBA{17, 24, 39, 255}
	colorMeta    = color.RGBA{75, 85, 99, 255}
)

// Options configures a Surface. Zero values fall back to interactive mode at
// scale 1 with no glyphs.
type Options struct {
	Mode  Mode
	Scale float64

	// SVG affordance glyphs, drawn for empty slots and unusable images
	EmptySlotGlyph []byte
	BrokenGlyph    []byte

	// UsePlaceholder permits the broken-image glyph on print output. Without
	// it print renders unusable slots blank.
	UsePlaceholder bool

	Log *zap.Logger
}

// Geometry is the settled page layout for one page, in page units.
type Geometry struct {
	PageW, PageH float64
	MetaHeight   float64
	Frame        layout.Rect
	Grid         layout.Rect
	Slots        []layout.Rect
}

// Surface renders pages. Not safe for concurrent RenderPage calls; an export
// run owns its surface and must Dispose it when done, success or not.
type Surface struct {
	mode           Mode
	scale          float64
	emptyGlyph     []byte
	brokenGlyph    []byte
	usePlaceholder bool
	log            *zap.Logger

	fonts *fontSet

	mu       sync.Mutex
	disposed bool
}

func NewSurface(opts Options) (*Surface, error) {
	if opts.Scale <= 0 {
		opts.Scale = 1.0
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	fonts, err := newFontSet()
	if err != nil {
		return nil, err
	}
	return &Surface{
		mode:           opts.Mode,
		scale:          opts.Scale,
		emptyGlyph:     opts.EmptySlotGlyph,
		brokenGlyph:    opts.BrokenGlyph,
		usePlaceholder: opts.UsePlaceholder,
		log:            opts.Log,
		fonts:          fonts,
	}, nil
}

// Scale returns the capture scale of the surface.
func (s *Surface) Scale() float64 {
	return s.scale
}

// Dispose releases font resources. Idempotent; the surface is unusable after.
func (s *Surface) Dispose() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return nil
	}
	s.disposed = true
	return s.fonts.close()
}

func (s *Surface) checkUsable() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return ErrDisposed
	}
	return nil
}

type metaLine struct {
	text    string
	sizePx  float64
	spacing float64
	bold    bool
	muted   bool
	align   config.TitleAlign
}

func metaLines(page document.Page) []metaLine {
	var lines []metaLine

	title := page.Metadata.Title
	if page.Metadata.Project != "" {
		tag := "[Project : " + page.Metadata.Project + "]"
		if title != "" {
			title += " " + tag
		} else {
			title = tag
		}
	}
	if title != "" {
		lines = append(lines, metaLine{
			text:    title,
			sizePx:  float64(page.Style.FontSizePt) * 96.0 / 72.0,
			spacing: titleLineSpacing,
			bold:    page.Style.Bold,
			align:   page.Style.Align,
		})
	}
	if page.Metadata.SubProject != "" {
		lines = append(lines, metaLine{
			text:    "Subcontractor : " + page.Metadata.SubProject,
			sizePx:  metaFontPx,
			spacing: metaLineSpacing,
			muted:   true,
			align:   config.TitleAlignStart,
		})
	}
	if page.Metadata.Manager != "" {
		lines = append(lines, metaLine{
			text:    "Manager: " + page.Metadata.Manager,
			sizePx:  metaFontPx,
			spacing: metaLineSpacing,
			muted:   true,
			align:   config.TitleAlignStart,
		})
	}
	return lines
}

func metaHeight(lines []metaLine) float64 {
	var h float64
	for _, l := range lines {
		h += l.sizePx * l.spacing
	}
	return h
}

func (s *Surface) geometry(tpl document.Template, page document.Page) Geometry {
	w, h := layout.PageSize(tpl.Orientation)

	metaH := metaHeight(metaLines(page))
	frameY := layout.PageMargin + metaH
	if metaH > 0 {
		frameY += layout.MetadataGap
	}
	frame := layout.Rect{
		X: layout.PageMargin,
		Y: frameY,
		W: w - 2*layout.PageMargin,
		H: h - frameY - layout.PageMargin,
	}

	inset := layout.FrameBorder + layout.FramePadding
	grid := layout.Rect{
		X: frame.X + inset,
		Y: frame.Y + inset,
		W: frame.W - 2*inset,
		H: frame.H - 2*inset,
	}

	cells := tpl.Layout(len(page.Slots)).SlotRects(grid.W, grid.H, len(page.Slots))
	slots := make([]layout.Rect, len(cells))
	for i, c := range cells {
		slots[i] = layout.Rect{X: grid.X + c.X, Y: grid.Y + c.Y, W: c.W, H: c.H}
	}

	return Geometry{
		PageW: w, PageH: h,
		MetaHeight: metaH,
		Frame:      frame,
		Grid:       grid,
		Slots:      slots,
	}
}

// Settle computes the page geometry until two consecutive passes agree, then
// returns it. Capture must never run against geometry that is still moving.
func (s *Surface) Settle(tpl document.Template, page document.Page) (Geometry, error) {
	if err := s.checkUsable(); err != nil {
		return Geometry{}, err
	}
	first := s.geometry(tpl, page)
	second := s.geometry(tpl, page)
	if !reflect.DeepEqual(first, second) {
		return Geometry{}, errors.New("page geometry did not settle")
	}
	return second, nil
}

// RenderPage settles geometry and rasterizes one page at the capture scale.
func (s *Surface) RenderPage(tpl document.Template, page document.Page) (*image.RGBA, error) {
	geom, err := s.Settle(tpl, page)
	if err != nil {
		return nil, err
	}

	cv := &canvas{
		img:   image.NewRGBA(image.Rect(0, 0, int(math.Round(geom.PageW*s.scale)), int(math.Round(geom.PageH*s.scale)))),
		scale: s.scale,
	}
	cv.fillPx(cv.img.Bounds(), colorWhite)

	if err := s.drawMetadata(cv, page, geom); err != nil {
		return nil, err
	}
	cv.strokeRect(geom.Frame, layout.FrameBorder, colorFrame)

	for i, slot := range page.Slots {
		if i >= len(geom.Slots) {
			break
		}
		if err := s.drawSlot(cv, tpl, slot, geom.Slots[i]); err != nil {
			return nil, err
		}
	}
	return cv.img, nil
}

func (s *Surface) drawMetadata(cv *canvas, page document.Page, geom Geometry) error {
	y := layout.PageMargin
	left := layout.PageMargin
	width := geom.PageW - 2*layout.PageMargin

	for _, line := range metaLines(page) {
		face, err := s.fonts.face(line.bold, line.sizePx*s.scale)
		if err != nil {
			return err
		}
		x := cv.px(left)
		switch line.align {
		case config.TitleAlignCenter:
			x = cv.px(left) + (cv.px(width)-textWidthPx(face, line.text))/2
		case config.TitleAlignEnd:
			x = cv.px(left+width) - textWidthPx(face, line.text)
		}
		baseline := cv.px(y) + face.Metrics().Ascent.Ceil()
		col := color.Color(colorText)
		if line.muted {
			col = colorMeta
		}
		cv.drawTextPx(line.text, x, baseline, face, col)
		y += line.sizePx * line.spacing
	}
	return nil
}

func (s *Surface) drawSlot(cv *canvas, tpl document.Template, slot document.Slot, r layout.Rect) error {
	if slot.Image == nil {
		s.drawEmptySlot(cv, r)
	} else if src, err := slot.Image.Image(); err != nil {
		s.log.Debug("slot image unusable", zap.String("slot", slot.ID), zap.Error(err))
		s.drawBrokenSlot(cv, r)
	} else {
		cv.paste(s.slotBitmap(tpl, slot, src, r), r)
		cv.strokeRect(r, 1, colorNeutral)
	}

	// the description band does not depend on the slot having an image
	if slot.Description != "" {
		if err := s.drawDescription(cv, slot.Description, r); err != nil {
			return err
		}
	}
	return nil
}

/// slotBitmap runs the image pipeline: rotation, crop, fit, user scale. The
// result is at most the slot size in capture pixels.
func (s *Surface) slotBitmap(tpl document.Template, slot document.Slot, src image.Image, r layout.Rect) image.Image {
	switch slot.Rotation {
	case 90:
		src = imaging.Rotate270(src)
	case 180:
		src = imaging.Rotate180(src)
	case 270:
		src = imaging.Rotate90(src)
	}

	targetW := cvRound(r.W * s.scale)
	targetH := cvRound(r.H * s.scale)
	scaledW := cvRound(r.W * s.scale * slot.Scale)
	scaledH := cvRound(r.H * s.scale * slot.Scale)

	var img *image.NRGBA
	if tpl.Family == layout.FamilyCustomOriginal {
		aspect := r.W / r.H
		crop := document.CoverCrop(src.Bounds().Dx(), src.Bounds().Dy(), aspect)
		if slot.Crop != nil && slot.Crop.Matches(aspect) {
			crop = *slot.Crop
		}
		img = imaging.Crop(src, image.Rect(crop.X, crop.Y, crop.X+crop.W, crop.Y+crop.H))
		img = imaging.Resize(img, scaledW, scaledH, imaging.Lanczos)
	} else if slot.Fit == config.FitModeCover {
		img = imaging.Fill(src, scaledW, scaledH, imaging.Center, imaging.Lanczos)
	} else {
		// fill distorts to exact slot bounds
		img = imaging.Resize(src, scaledW, scaledH, imaging.Lanczos)
	}

	if slot.Scale > 1 {
		img = imaging.CropCenter(img, targetW, targetH)
	}
	return img
}

func (s *Surface) drawEmptySlot(cv *canvas, r layout.Rect) {
	if s.mode == ModePrint {
		cv.strokeRect(r, 1, colorNeutral)
		return
	}
	cv.dashedRect(r, 1, 6, colorNeutral)
	s.drawGlyph(cv, s.emptyGlyph, r)
}

func (s *Surface) drawBrokenSlot(cv *canvas, r layout.Rect) {
	cv.strokeRect(r, 1, colorNeutral)
	if s.mode == ModePrint && !s.usePlaceholder {
		return
	}
	s.drawGlyph(cv, s.brokenGlyph, r)
}

func (s *Surface) drawGlyph(cv *canvas, svg []byte, r layout.Rect) {
	if len(svg) == 0 {
		return
	}
	side := cvRound(math.Min(r.W, r.H) / 3 * s.scale)
	if side < 1 {
		return
	}
	glyph, err := imgutil.RasterizeSVGToImage(svg, side, side)
	if err != nil {
		s.log.Warn("glyph rasterization failed", zap.Error(err))
		return
	}
	cv.paste(glyph, r)
}

func (s *Surface) drawDescription(cv *canvas, text string, r layout.Rect) error {
	face, err := s.fonts.face(false, descFontPx*s.scale)
	if err != nil {
		return err
	}

	maxPx := cv.px(r.W - 2*descBandPadding)
	lines := wrapText(face, text, maxPx)
	if len(lines) > 2 {
		lines = lines[:2]
	}
	lineH := descFontPx * metaLineSpacing
	bandH := float64(len(lines))*lineH + 2*descBandPadding
	if bandH > r.H {
		bandH = r.H
	}
	band := layout.Rect{X: r.X, Y: r.Y + r.H - bandH, W: r.W, H: bandH}
	cv.fillRect(band, colorWhite)
	cv.strokeRect(band, 1, colorNeutral)

	y := band.Y + descBandPadding
	for _, line := range lines {
		x := cv.px(band.X) + (cv.px(band.W)-textWidthPx(face, line))/2
		baseline := cv.px(y) + face.Metrics().Ascent.Ceil()
		cv.drawTextPx(line, x, baseline, face, colorText)
		y += lineH
	}
	return nil
}

func cvRound(v float64) int {
	n := int(math.Round(v))
	if n < 1 {
		n = 1
	}
	return n
}

// String implements fmt.Stringer for diagnostics.
func (g Geometry) String() string {
	return fmt.Sprintf("page %gx%g, meta %g, %d slots", g.PageW, g.PageH, g.MetaHeight, len(g.Slots))
}
