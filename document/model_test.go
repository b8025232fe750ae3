package document

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"picdoc/config"
	"picdoc/layout"
)

func testModel(t *testing.T, tpl Template) *Model {
	t.Helper()
	m := NewModel(zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller())), "photo-report")
	m.SetTemplate(tpl)
	return m
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func readyRef(t *testing.T) *ImageRef {
	t.Helper()
	ref := NewImageRef("test.png", testPNG(t))
	select {
	case <-ref.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("image never became ready")
	}
	return ref
}

func TestSetTemplate_ResetsToSinglePage(t *testing.T) {
	m := testModel(t, Template{Family: layout.FamilyFourCut, Orientation: layout.OrientationPortrait})

	if _, err := m.AddPage(); err != nil {
		t.Fatalf("AddPage() error = %v", err)
	}
	if m.PageCount() != 2 {
		t.Fatalf("PageCount() = %d, want 2", m.PageCount())
	}

	m.SetTemplate(Template{Family: layout.FamilyCustom, Orientation: layout.OrientationLandscape})
	if m.PageCount() != 1 {
		t.Errorf("PageCount() after template change = %d, want 1", m.PageCount())
	}

	p, err := m.ActivePage()
	if err != nil {
		t.Fatalf("ActivePage() error = %v", err)
	}
	if len(p.Slots) != 0 {
		t.Errorf("custom page starts with %d slots, want 0", len(p.Slots))
	}
	if p.Metadata.Title != "photo-report" {
		t.Errorf("fresh page title = %q, want default", p.Metadata.Title)
	}
}

func TestSetTemplate_InitialSlotCounts(t *testing.T) {
	tests := []struct {
		family layout.Family
		slots  int
	}{
		{layout.FamilyTwoCut, 2},
		{layout.FamilyFourCut, 4},
		{layout.FamilySixCut, 6},
		{layout.FamilyCustom, 0},
		{layout.FamilyCustomOriginal, 0},
	}

	for _, tt := range tests {
		t.Run(tt.family.String(), func(t *testing.T) {
			m := testModel(t, Template{Family: tt.family})
			p, err := m.ActivePage()
			if err != nil {
				t.Fatalf("ActivePage() error = %v", err)
			}
			if len(p.Slots) != tt.slots {
				t.Errorf("initial slots = %d, want %d", len(p.Slots), tt.slots)
			}
		})
	}
}

func TestAddPage_CopiesMetadata(t *testing.T) {
	m := testModel(t, Template{Family: layout.FamilyTwoCut})

	p, _ := m.ActivePage()
	title := "inspection"
	project := "north wing"
	if err := m.UpdateMetadata(p.ID, MetadataPatch{Title: &title, Project: &project}); err != nil {
		t.Fatalf("UpdateMetadata() error = %v", err)
	}

	id, err := m.AddPage()
	if err != nil {
		t.Fatalf("AddPage() error = %v", err)
	}

	added, err := m.Page(id)
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if added.Metadata.Title != "inspection" || added.Metadata.Project != "north wing" {
		t.Errorf("metadata not copied: %+v", added.Metadata)
	}
	if m.ActiveIndex() != 1 {
		t.Errorf("ActiveIndex() = %d, want 1", m.ActiveIndex())
	}
}

func TestAddPage_Limit(t *testing.T) {
	m := testModel(t, Template{Family: layout.FamilyTwoCut})

	for i := 1; i < MaxPages; i++ {
		if _, err := m.AddPage(); err != nil {
			t.Fatalf("AddPage() #%d error = %v", i, err)
		}
	}

	rev := m.Revision()
	if _, err := m.AddPage(); !errors.Is(err, ErrPageLimit) {
		t.Errorf("AddPage() beyond limit error = %v, want ErrPageLimit", err)
	}
	if m.Revision() != rev {
		t.Error("rejected mutation changed the document")
	}
	if m.PageCount() != MaxPages {
		t.Errorf("PageCount() = %d, want %d", m.PageCount(), MaxPages)
	}
}

func TestAddPage_NoTemplate(t *testing.T) {
	m := NewModel(zaptest.NewLogger(t), "x")
	if _, err := m.AddPage(); !errors.Is(err, ErrNoTemplate) {
		t.Errorf("AddPage() error = %v, want ErrNoTemplate", err)
	}
}

func TestDeletePage(t *testing.T) {
	m := testModel(t, Template{Family: layout.FamilyTwoCut})

	p1, _ := m.ActivePage()

	t.Run("last page blocked", func(t *testing.T) {
		if err := m.DeletePage(p1.ID); !errors.Is(err, ErrLastPage) {
			t.Errorf("DeletePage() error = %v, want ErrLastPage", err)
		}
	})

	t.Run("removes and releases", func(t *testing.T) {
		id, _ := m.AddPage()
		page, _ := m.Page(id)
		ref := readyRef(t)
		if err := m.SetSlotImage(id, page.Slots[0].ID, ref); err != nil {
			t.Fatalf("SetSlotImage() error = %v", err)
		}

		if err := m.DeletePage(id); err != nil {
			t.Fatalf("DeletePage() error = %v", err)
		}
		if m.PageCount() != 1 {
			t.Errorf("PageCount() = %d, want 1", m.PageCount())
		}
		if !ref.Released() {
			t.Error("deleting a page must release its image handles")
		}
	})

	t.Run("unknown page", func(t *testing.T) {
		m.AddPage()
		if err := m.DeletePage("nope"); !errors.Is(err, ErrUnknownPage) {
			t.Errorf("DeletePage() error = %v, want ErrUnknownPage", err)
		}
	})
}

func TestUpdateSlot_ClampsAndValidates(t *testing.T) {
	m := testModel(t, Template{Family: layout.FamilyTwoCut})
	p, _ := m.ActivePage()
	slotID := p.Slots[0].ID

	t.Run("scale clamped", func(t *testing.T) {
		for _, tt := range []struct{ in, want float64 }{
			{0.1, 0.5}, {0.5, 0.5}, {1.3, 1.3}, {2.0, 2.0}, {9.0, 2.0},
		} {
			if err := m.UpdateSlot(p.ID, slotID, SlotPatch{Scale: &tt.in}); err != nil {
				t.Fatalf("UpdateSlot() error = %v", err)
			}
			got, _ := m.ActivePage()
			if got.Slots[0].Scale != tt.want {
				t.Errorf("scale %f clamped to %f, want %f", tt.in, got.Slots[0].Scale, tt.want)
			}
		}
	})

	t.Run("rotation right angles only", func(t *testing.T) {
		rot := 270
		if err := m.UpdateSlot(p.ID, slotID, SlotPatch{Rotation: &rot}); err != nil {
			t.Fatalf("UpdateSlot() error = %v", err)
		}
		got, _ := m.ActivePage()
		if got.Slots[0].Rotation != 270 {
			t.Errorf("Rotation = %d, want 270", got.Slots[0].Rotation)
		}

		bad := 45
		if err := m.UpdateSlot(p.ID, slotID, SlotPatch{Rotation: &bad}); !errors.Is(err, ErrBadRotation) {
			t.Errorf("UpdateSlot() error = %v, want ErrBadRotation", err)
		}
		got, _ = m.ActivePage()
		if got.Slots[0].Rotation != 270 {
			t.Error("rejected rotation modified the slot")
		}
	})

	t.Run("negative rotation normalized", func(t *testing.T) {
		rot := -90
		if err := m.UpdateSlot(p.ID, slotID, SlotPatch{Rotation: &rot}); err != nil {
			t.Fatalf("UpdateSlot() error = %v", err)
		}
		got, _ := m.ActivePage()
		if got.Slots[0].Rotation != 270 {
			t.Errorf("Rotation = %d, want 270", got.Slots[0].Rotation)
		}
	})
}

func TestSetSlotImage_ResetsTransform(t *testing.T) {
	m := testModel(t, Template{Family: layout.FamilyTwoCut})
	p, _ := m.ActivePage()
	slotID := p.Slots[0].ID

	first := readyRef(t)
	if err := m.SetSlotImage(p.ID, slotID, first); err != nil {
		t.Fatalf("SetSlotImage() error = %v", err)
	}

	scale := 1.7
	rot := 180
	fit := config.FitModeCover
	if err := m.UpdateSlot(p.ID, slotID, SlotPatch{Scale: &scale, Rotation: &rot, Fit: &fit}); err != nil {
		t.Fatalf("UpdateSlot() error = %v", err)
	}

	second := readyRef(t)
	if err := m.SetSlotImage(p.ID, slotID, second); err != nil {
		t.Fatalf("SetSlotImage() error = %v", err)
	}

	got, _ := m.ActivePage()
	s := got.Slots[0]
	if s.Scale != 1.0 || s.Rotation != 0 || s.Fit != config.FitModeFill {
		t.Errorf("transform not reset: scale=%f rot=%d fit=%v", s.Scale, s.Rotation, s.Fit)
	}
	if !first.Released() {
		t.Error("replacing an image must release the previous handle")
	}
	if second.Released() {
		t.Error("new handle must stay live")
	}
}

func TestRemoveSlotImage_RestoresInvariants(t *testing.T) {
	m := testModel(t, Template{Family: layout.FamilyTwoCut})
	p, _ := m.ActivePage()
	slotID := p.Slots[0].ID

	ref := readyRef(t)
	if err := m.SetSlotImage(p.ID, slotID, ref); err != nil {
		t.Fatalf("SetSlotImage() error = %v", err)
	}
	desc := "crane pad"
	scale := 2.0
	if err := m.UpdateSlot(p.ID, slotID, SlotPatch{Description: &desc, Scale: &scale}); err != nil {
		t.Fatalf("UpdateSlot() error = %v", err)
	}

	if err := m.RemoveSlotImage(p.ID, slotID); err != nil {
		t.Fatalf("RemoveSlotImage() error = %v", err)
	}

	got, _ := m.ActivePage()
	s := got.Slots[0]
	if s.Image != nil || s.Scale != 1.0 || s.Rotation != 0 || s.Fit != config.FitModeFill || s.Description != "" || s.Crop != nil {
		t.Errorf("empty-slot invariants violated: %+v", s)
	}
	if !ref.Released() {
		t.Error("removing an image must release its handle")
	}
}

func TestAddRemoveSlot(t *testing.T) {
	t.Run("custom template", func(t *testing.T) {
		m := testModel(t, Template{Family: layout.FamilyCustom})
		p, _ := m.ActivePage()

		for i := 0; i < MaxCustomSlots; i++ {
			if _, err := m.AddSlot(p.ID); err != nil {
				t.Fatalf("AddSlot() #%d error = %v", i, err)
			}
		}
		if _, err := m.AddSlot(p.ID); !errors.Is(err, ErrSlotLimit) {
			t.Errorf("AddSlot() beyond limit error = %v, want ErrSlotLimit", err)
		}

		got, _ := m.ActivePage()
		if err := m.RemoveSlot(p.ID, got.Slots[3].ID); err != nil {
			t.Fatalf("RemoveSlot() error = %v", err)
		}
		got, _ = m.ActivePage()
		if len(got.Slots) != MaxCustomSlots-1 {
			t.Errorf("slot count = %d, want %d", len(got.Slots), MaxCustomSlots-1)
		}
	})

	t.Run("grid template rejected", func(t *testing.T) {
		m := testModel(t, Template{Family: layout.FamilySixCut})
		p, _ := m.ActivePage()
		if _, err := m.AddSlot(p.ID); !errors.Is(err, ErrFixedSlots) {
			t.Errorf("AddSlot() error = %v, want ErrFixedSlots", err)
		}
		if err := m.RemoveSlot(p.ID, p.Slots[0].ID); !errors.Is(err, ErrFixedSlots) {
			t.Errorf("RemoveSlot() error = %v, want ErrFixedSlots", err)
		}
	})
}

func TestSetCrop_OriginalFamilyOnly(t *testing.T) {
	m := testModel(t, Template{Family: layout.FamilyCustomOriginal})
	p, _ := m.ActivePage()
	slotID, err := m.AddSlot(p.ID)
	if err != nil {
		t.Fatalf("AddSlot() error = %v", err)
	}

	crop := &CropRect{X: 10, Y: 20, W: 100, H: 80}
	if err := m.SetCrop(p.ID, slotID, crop); err != nil {
		t.Fatalf("SetCrop() error = %v", err)
	}
	got, _ := m.ActivePage()
	if got.Slots[0].Crop == nil || *got.Slots[0].Crop != *crop {
		t.Errorf("Crop = %+v, want %+v", got.Slots[0].Crop, crop)
	}

	m2 := testModel(t, Template{Family: layout.FamilyCustom})
	p2, _ := m2.ActivePage()
	id2, _ := m2.AddSlot(p2.ID)
	if err := m2.SetCrop(p2.ID, id2, crop); !errors.Is(err, ErrNotOriginal) {
		t.Errorf("SetCrop() on custom error = %v, want ErrNotOriginal", err)
	}
}

func TestMutationIsolation(t *testing.T) {
	m := testModel(t, Template{Family: layout.FamilyFourCut})
	p, _ := m.ActivePage()

	before, _ := m.ActivePage()

	scale := 1.5
	if err := m.UpdateSlot(p.ID, p.Slots[1].ID, SlotPatch{Scale: &scale}); err != nil {
		t.Fatalf("UpdateSlot() error = %v", err)
	}

	after, _ := m.ActivePage()
	for i := range after.Slots {
		if i == 1 {
			continue
		}
		if after.Slots[i].Scale != before.Slots[i].Scale {
			t.Errorf("slot %d changed as a side effect", i)
		}
	}

	// the copy handed out earlier is immune to later mutations
	if before.Slots[1].Scale != 1.0 {
		t.Error("previously returned page copy was mutated")
	}
}

func TestSubscribe(t *testing.T) {
	m := testModel(t, Template{Family: layout.FamilyTwoCut})

	ch, cancel := m.Subscribe()
	defer cancel()

	rev := m.Revision()
	if _, err := m.AddPage(); err != nil {
		t.Fatalf("AddPage() error = %v", err)
	}

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no change signal after mutation")
	}
	if m.Revision() <= rev {
		t.Error("revision did not advance")
	}

	// burst coalesces, never blocks the mutator
	m.AddPage()
	m.AddPage()
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no coalesced signal")
	}
}

func TestSnapshot_Isolated(t *testing.T) {
	m := testModel(t, Template{Family: layout.FamilyTwoCut})
	p, _ := m.ActivePage()
	desc := "before"
	if err := m.UpdateSlot(p.ID, p.Slots[0].ID, SlotPatch{Description: &desc}); err != nil {
		t.Fatalf("UpdateSlot() error = %v", err)
	}

	snap, err := m.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	after := "after"
	if err := m.UpdateSlot(p.ID, p.Slots[0].ID, SlotPatch{Description: &after}); err != nil {
		t.Fatalf("UpdateSlot() error = %v", err)
	}

	if snap.Pages[0].Slots[0].Description != "before" {
		t.Error("snapshot observed a later mutation")
	}
}

func TestSnapshot_NoTemplate(t *testing.T) {
	m := NewModel(zaptest.NewLogger(t), "x")
	if _, err := m.Snapshot(); !errors.Is(err, ErrNoTemplate) {
		t.Errorf("Snapshot() error = %v, want ErrNoTemplate", err)
	}
}

func TestRelease_All(t *testing.T) {
	m := testModel(t, Template{Family: layout.FamilyTwoCut})
	p, _ := m.ActivePage()

	ref := readyRef(t)
	if err := m.SetSlotImage(p.ID, p.Slots[0].ID, ref); err != nil {
		t.Fatalf("SetSlotImage() error = %v", err)
	}

	m.Release()
	if !ref.Released() {
		t.Error("Release() must free every held handle")
	}
}
