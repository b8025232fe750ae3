package document

// CoverCrop returns the centered rectangle of a srcW x srcH image covering
// the given aspect ratio (width / height). Used both when the user confirms
// a crop and when export recomputes it against print geometry.
func CoverCrop(srcW, srcH int, aspect float64) CropRect {
	if srcW <= 0 || srcH <= 0 || aspect <= 0 {
		return CropRect{W: srcW, H: srcH}
	}
	srcAspect := float64(srcW) / float64(srcH)
	if srcAspect > aspect {
		// source is wider, trim the sides
		w := int(float64(srcH) * aspect)
		return CropRect{X: (srcW - w) / 2, Y: 0, W: w, H: srcH}
	}
	// source is taller, trim top and bottom
	h := int(float64(srcW) / aspect)
	return CropRect{X: 0, Y: (srcH - h) / 2, W: srcW, H: h}
}

// Matches reports whether the stored crop still fits the given aspect ratio
// within one percent. Crop parameters are resolution relative: when geometry
// drifted the crop must be recomputed instead of reused.
func (c CropRect) Matches(aspect float64) bool {
	if c.W <= 0 || c.H <= 0 || aspect <= 0 {
		return false
	}
	got := float64(c.W) / float64(c.H)
	diff := got/aspect - 1
	if diff < 0 {
		diff = -diff
	}
	return diff <= 0.01
}
