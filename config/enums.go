package config

// Specification of requested output type.
// ENUM(pdf, jpeg)
type OutputFmt int

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtPdf:
		return ".pdf"
	case OutputFmtJpeg:
		return ".jpg"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

func (o OutputFmt) MimeType() string {
	switch o {
	case OutputFmtPdf:
		return "application/pdf"
	case OutputFmtJpeg:
		return "image/jpeg"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// Specification of export resolution preset.
// ENUM(low, standard, high)
type QualityTier int

// BaseScale returns fixed base rasterization scale for the tier. Effective
// capture scale is BaseScale multiplied by the device pixel ratio.
func (q QualityTier) BaseScale() float64 {
	switch q {
	case QualityTierLow:
		return 2.0
	case QualityTierHigh:
		return 4.0
	default:
		return 3.0
	}
}

// JPEGQuality returns encoder quality level for page bitmaps of the tier.
func (q QualityTier) JPEGQuality() int {
	switch q {
	case QualityTierLow:
		return 60
	case QualityTierHigh:
		return 90
	default:
		return 70
	}
}

// Specification of how an image fills its slot: stretch to exact slot bounds
// or preserve aspect ratio cropping the overflow.
// ENUM(fill, cover)
type FitMode int

// Horizontal alignment of the page title line.
// ENUM(start, center, end)
type TitleAlign int
