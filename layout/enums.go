package layout

// Grid family of a page template.
// ENUM(twoCut, fourCut, sixCut, custom, customOriginal)
type Family int

// IsCustom reports whether slots can be added and removed freely.
func (f Family) IsCustom() bool {
	return f == FamilyCustom || f == FamilyCustomOriginal
}

// FixedSlots returns the slot count of a grid family, 0 for custom families.
func (f Family) FixedSlots() int {
	switch f {
	case FamilyTwoCut:
		return 2
	case FamilyFourCut:
		return 4
	case FamilySixCut:
		return 6
	default:
		return 0
	}
}

// Page orientation.
// ENUM(portrait, landscape)
type Orientation int
