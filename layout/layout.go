// Package layout computes page grid geometry. All functions are pure - the
// same template and slot count always produce the same layout, independent of
// any rendering state.
package layout

import "math"

// All sizes are in CSS reference pixels at 96 DPI.
const (
	MmToPx = 3.7795 // 1 mm at 96 DPI

	// A4 sheet, portrait
	PageShortSide = 794.0  // 210 mm
	PageLongSide  = 1123.0 // 297 mm

	PageMargin   = 20 * MmToPx
	FrameBorder  = 2.0
	FramePadding = 8 * MmToPx
	MetadataGap  = 6 * MmToPx

	gridGap = 2 * MmToPx

	customGap = 15.0
	// vertical breathing room between fourCut rows leaves space for annotations
	fourCutRowGap = 80.0

	MinSlotSide = 200.0
	// lowered height floor for dense four row custom grids, keeps the
	// annotation band legible instead of pushing the grid off the sheet
	tallGridMinHeight = 130.0
)

// PageSize returns sheet dimensions in pixels for the given orientation.
func PageSize(o Orientation) (w, h float64) {
	if o == OrientationLandscape {
		return PageLongSide, PageShortSide
	}
	return PageShortSide, PageLongSide
}

// Layout describes a computed slot grid. Cells are filled row-major; trailing
// cells beyond the slot count stay blank spacers.
type Layout struct {
	Rows    int
	Columns int
	GapX    float64
	GapY    float64
	// hard floors - a grid may overflow its container but cells never
	// shrink below these
	SlotMinWidth  float64
	SlotMinHeight float64
	// per-slot floor replacements, indexed by slot position
	Overrides []Override
}

type Override struct {
	Slot      int
	MinHeight float64
}

// Rect is an axis aligned box, origin at top-left of the container.
type Rect struct {
	X, Y, W, H float64
}

// customPortraitRows maps slot count to row count for custom portrait grids.
var customPortraitRows = map[int]int{
	0: 1, 1: 1,
	2: 2, 3: 2, 4: 2,
	5: 3, 6: 3, 7: 3, 8: 3, 9: 3,
	10: 4, 11: 4, 12: 4,
	13: 5, 14: 5, 15: 5, 16: 5,
}

// Compute returns the grid for the given template and slot count. It is total:
// out of range counts are clamped, unknown families fall back to a single
// placeholder cell.
func Compute(f Family, o Orientation, slotCount int) Layout {
	if slotCount < 0 {
		slotCount = 0
	}

	switch f {
	case FamilyTwoCut:
		if o == OrientationLandscape {
			return Layout{Rows: 1, Columns: 2, GapX: gridGap, GapY: gridGap}
		}
		return Layout{Rows: 2, Columns: 1, GapX: gridGap, GapY: gridGap}

	case FamilyFourCut:
		return Layout{Rows: 2, Columns: 2, GapX: customGap, GapY: fourCutRowGap}

	case FamilySixCut:
		return Layout{Rows: 2, Columns: 3, GapX: gridGap, GapY: gridGap}

	case FamilyCustom, FamilyCustomOriginal:
		if slotCount == 0 {
			return Layout{Rows: 1, Columns: 1, GapX: customGap, GapY: customGap}
		}
		if o == OrientationLandscape {
			rows := int(math.Ceil(math.Sqrt(float64(slotCount))))
			cols := int(math.Ceil(float64(slotCount) / float64(rows)))
			return Layout{
				Rows: rows, Columns: cols,
				GapX: gridGap, GapY: gridGap,
				SlotMinWidth: MinSlotSide, SlotMinHeight: MinSlotSide,
			}
		}
		rows, ok := customPortraitRows[slotCount]
		if !ok {
			// above the slot ceiling, keep the densest known shape
			rows = 5
		}
		cols := int(math.Ceil(float64(slotCount) / float64(rows)))
		l := Layout{
			Rows: rows, Columns: cols,
			GapX: customGap, GapY: customGap,
			SlotMinWidth: MinSlotSide, SlotMinHeight: MinSlotSide,
		}
		if rows == 4 && slotCount >= 10 && slotCount <= 12 {
			l.Overrides = make([]Override, slotCount)
			for i := range l.Overrides {
				l.Overrides[i] = Override{Slot: i, MinHeight: tallGridMinHeight}
			}
		}
		return l
	}

	return Layout{Rows: 1, Columns: 1}
}

// SlotRects distributes slotCount cells row-major inside a container of the
// given size. Cells share uniform dimensions; min floors win over the
// container, so the resulting grid may exceed w or h.
func (l Layout) SlotRects(w, h float64, slotCount int) []Rect {
	if slotCount <= 0 {
		return nil
	}
	rows, cols := l.Rows, l.Columns
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}

	cellW := (w - float64(cols-1)*l.GapX) / float64(cols)
	if cellW < l.SlotMinWidth {
		cellW = l.SlotMinWidth
	}

	minH := l.SlotMinHeight
	if len(l.Overrides) > 0 {
		minH = l.Overrides[0].MinHeight
	}
	cellH := (h - float64(rows-1)*l.GapY) / float64(rows)
	if cellH < minH {
		cellH = minH
	}

	rects := make([]Rect, 0, slotCount)
	for i := 0; i < slotCount; i++ {
		row := i / cols
		col := i % cols
		rects = append(rects, Rect{
			X: float64(col) * (cellW + l.GapX),
			Y: float64(row) * (cellH + l.GapY),
			W: cellW,
			H: cellH,
		})
	}
	return rects
}

// MinHeightFor returns the effective height floor for a slot position.
func (l Layout) MinHeightFor(slot int) float64 {
	for _, ov := range l.Overrides {
		if ov.Slot == slot {
			return ov.MinHeight
		}
	}
	return l.SlotMinHeight
}
