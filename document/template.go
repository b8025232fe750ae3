package document

import (
	"fmt"
	"strings"

	"picdoc/layout"
)

// Template identifies page geometry: a shape family and an orientation.
// Its textual form is "family-orientation", e.g. "fourCut-portrait".
type Template struct {
	Family      layout.Family
	Orientation layout.Orientation
}

func (t Template) ID() string {
	return t.Family.String() + "-" + t.Orientation.String()
}

func (t Template) String() string {
	return t.ID()
}

// InitialSlots returns how many slots a fresh page starts with.
func (t Template) InitialSlots() int {
	return t.Family.FixedSlots()
}

// Layout computes the grid for this template at the given slot count.
func (t Template) Layout(slotCount int) layout.Layout {
	return layout.Compute(t.Family, t.Orientation, slotCount)
}

// ParseTemplate converts a template id string back into a Template.
func ParseTemplate(id string) (Template, error) {
	idx := strings.LastIndex(id, "-")
	if idx <= 0 || idx == len(id)-1 {
		return Template{}, fmt.Errorf("malformed template id %q", id)
	}
	family, err := layout.ParseFamily(id[:idx])
	if err != nil {
		return Template{}, fmt.Errorf("malformed template id %q: %w", id, err)
	}
	orient, err := layout.ParseOrientation(id[idx+1:])
	if err != nil {
		return Template{}, fmt.Errorf("malformed template id %q: %w", id, err)
	}
	return Template{Family: family, Orientation: orient}, nil
}

// TemplateIDs lists every known template id.
func TemplateIDs() []string {
	var ids []string
	for _, f := range layout.FamilyNames() {
		for _, o := range layout.OrientationNames() {
			ids = append(ids, f+"-"+o)
		}
	}
	return ids
}
