package project

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"picdoc/document"
	"picdoc/editor"
	"picdoc/notify"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, image.NewRGBA(image.Rect(0, 0, 6, 6))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func writeSpec(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "project.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write spec: %v", err)
	}
	return path
}

func materializeSetup(t *testing.T) (*document.Model, *editor.Controller) {
	t.Helper()
	m := document.NewModel(zaptest.NewLogger(t), "photo-report")
	ed := editor.NewController(m, zaptest.NewLogger(t), notify.Nop{})
	return m, ed
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeSpec(t, dir, `
template: fourCut-portrait
quality: high
pages:
  - title: inspection
    project: plant 7
    slots:
      - image: a.png
        description: north wall
      - scale: 1.5
        rotation: 90
        fit: cover
`)
	spec, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if spec.Template != "fourCut-portrait" || len(spec.Pages) != 1 {
		t.Errorf("spec = %+v", spec)
	}
	if spec.Quality != "high" {
		t.Errorf("quality = %q, want high", spec.Quality)
	}
	if spec.Pages[0].Slots[1].Fit != "cover" || spec.Pages[0].Slots[1].Rotation != 90 {
		t.Errorf("slot = %+v", spec.Pages[0].Slots[1])
	}
}

func TestLoad_Rejections(t *testing.T) {
	dir := t.TempDir()

	t.Run("unknown field", func(t *testing.T) {
		path := writeSpec(t, dir, "template: twoCut-portrait\nlayout: nope\npages:\n  - title: x\n")
		if _, err := Load(path); err == nil {
			t.Error("unknown field must be rejected")
		}
	})

	t.Run("missing template", func(t *testing.T) {
		path := writeSpec(t, dir, "pages:\n  - title: x\n")
		if _, err := Load(path); err == nil {
			t.Error("missing template must be rejected")
		}
	})

	t.Run("no pages", func(t *testing.T) {
		path := writeSpec(t, dir, "template: twoCut-portrait\n")
		if _, err := Load(path); err == nil {
			t.Error("empty document must be rejected")
		}
	})
}

func TestFromDirectory_NaturalOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"img10.png", "img2.png", "img1.png", "notes.txt"} {
		if filepath.Ext(name) == ".png" {
			writePNG(t, filepath.Join(dir, name))
		} else if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	spec, err := FromDirectory(dir, "twoCut-portrait")
	if err != nil {
		t.Fatalf("FromDirectory() error = %v", err)
	}
	// two slots per page, three images: two pages
	if len(spec.Pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(spec.Pages))
	}
	got := []string{
		spec.Pages[0].Slots[0].Image,
		spec.Pages[0].Slots[1].Image,
		spec.Pages[1].Slots[0].Image,
	}
	want := []string{"img1.png", "img2.png", "img10.png"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot order[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestFromDirectory_Empty(t *testing.T) {
	if _, err := FromDirectory(t.TempDir(), "twoCut-portrait"); err == nil {
		t.Error("empty directory must be rejected")
	}
}

func TestFromDirectory_BadTemplate(t *testing.T) {
	if _, err := FromDirectory(t.TempDir(), "octoCut-portrait"); err == nil {
		t.Error("unknown template must be rejected")
	}
}

func TestMaterialize(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"))
	path := writeSpec(t, dir, `
template: twoCut-portrait
pages:
  - title: inspection
    project: plant 7
    subproject: electrical
    manager: Kim
    slots:
      - image: a.png
        scale: 1.5
        rotation: 180
        description: breaker room
`)
	spec, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	m, ed := materializeSetup(t)
	if err := spec.Materialize(m, ed, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}

	page, err := m.ActivePage()
	if err != nil {
		t.Fatalf("ActivePage() error = %v", err)
	}
	if page.Metadata.Title != "inspection" || page.Metadata.Manager != "Kim" {
		t.Errorf("metadata = %+v", page.Metadata)
	}
	slot := page.Slots[0]
	if slot.Image == nil {
		t.Fatal("image not assigned")
	}
	if slot.Scale != 1.5 || slot.Rotation != 180 {
		t.Errorf("transform = scale %g rotation %d", slot.Scale, slot.Rotation)
	}
	if slot.Description != "breaker room" {
		t.Errorf("description = %q", slot.Description)
	}

	select {
	case <-slot.Image.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("image never decoded")
	}
	if _, err := slot.Image.Image(); err != nil {
		t.Errorf("Image() error = %v", err)
	}
}

func TestMaterialize_CustomGrowsSlots(t *testing.T) {
	dir := t.TempDir()
	path := writeSpec(t, dir, `
template: custom-portrait
pages:
  - title: survey
    slots:
      - description: one
      - description: two
      - description: three
`)
	spec, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	m, ed := materializeSetup(t)
	if err := spec.Materialize(m, ed, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	page, _ := m.ActivePage()
	if len(page.Slots) != 3 {
		t.Errorf("slots = %d, want 3 grown on a custom page", len(page.Slots))
	}
}

func TestMaterialize_GridRejectsExtraSlots(t *testing.T) {
	dir := t.TempDir()
	path := writeSpec(t, dir, `
template: twoCut-portrait
pages:
  - slots:
      - description: one
      - description: two
      - description: three
`)
	spec, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	m, ed := materializeSetup(t)
	err = spec.Materialize(m, ed, zaptest.NewLogger(t))
	if !errors.Is(err, document.ErrFixedSlots) {
		t.Errorf("Materialize() error = %v, want ErrFixedSlots", err)
	}
}

func TestMaterialize_MultiPage(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"))
	writePNG(t, filepath.Join(dir, "b.png"))

	spec, err := FromDirectory(dir, "twoCut-portrait")
	if err != nil {
		t.Fatalf("FromDirectory() error = %v", err)
	}
	// both images fit one twoCut page
	if len(spec.Pages) != 1 {
		t.Fatalf("pages = %d, want 1", len(spec.Pages))
	}

	m, ed := materializeSetup(t)
	if err := spec.Materialize(m, ed, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if m.PageCount() != 1 {
		t.Errorf("PageCount() = %d", m.PageCount())
	}
	page, _ := m.ActivePage()
	if page.Slots[0].Image == nil || page.Slots[1].Image == nil {
		t.Error("not all images assigned")
	}
}
