// Package project loads a document description from disk and materializes it
// into the in-memory model. Two sources are supported: a YAML file describing
// every page and slot, and a plain directory of photos distributed over pages
// in natural name order.
package project

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"picdoc/config"
	"picdoc/document"
	"picdoc/editor"
)

// SlotSpec describes one photo slot. Image paths are resolved against the
// directory of the spec file.
type SlotSpec struct {
	Image       string  `yaml:"image,omitempty"`
	Scale       float64 `yaml:"scale,omitempty"`
	Rotation    int     `yaml:"rotation,omitempty"`
	Fit         string  `yaml:"fit,omitempty"`
	Description string  `yaml:"description,omitempty"`
}

// PageSpec describes one page with its annotation block.
type PageSpec struct {
	Title      string     `yaml:"title,omitempty"`
	Project    string     `yaml:"project,omitempty"`
	SubProject string     `yaml:"subproject,omitempty"`
	Manager    string     `yaml:"manager,omitempty"`
	Slots      []SlotSpec `yaml:"slots,omitempty"`
}

// Spec is a complete document description.
type Spec struct {
	Template string     `yaml:"template"`
	Quality  string     `yaml:"quality,omitempty"`
	Pages    []PageSpec `yaml:"pages"`

	// directory the spec was loaded from, for image path resolution
	baseDir string
}

// Load reads a document description. Unknown fields are rejected so a typo in
// the file never silently drops a setting.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read project file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var spec Spec
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("unable to parse project file: %w", err)
	}
	if spec.Template == "" {
		return nil, fmt.Errorf("project file %s does not name a template", path)
	}
	if len(spec.Pages) == 0 {
		return nil, fmt.Errorf("project file %s has no pages", path)
	}
	spec.baseDir = filepath.Dir(path)
	return &spec, nil
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// FromDirectory builds a spec from a directory of photos. Files fill pages in
// natural name order, one photo per slot.
func FromDirectory(dir, templateID string) (*Spec, error) {
	tpl, err := document.ParseTemplate(templateID)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to read image directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no images found in %s", dir)
	}
	sort.Slice(names, func(i, j int) bool { return natural.Less(names[i], names[j]) })

	perPage := tpl.InitialSlots()
	if perPage == 0 {
		// custom templates have no fixed shape, fall back to four per page
		perPage = 4
	}

	spec := &Spec{Template: templateID, baseDir: dir}
	for start := 0; start < len(names); start += perPage {
		end := min(start+perPage, len(names))
		page := PageSpec{}
		for _, name := range names[start:end] {
			page.Slots = append(page.Slots, SlotSpec{Image: name})
		}
		spec.Pages = append(spec.Pages, page)
	}
	if len(spec.Pages) > document.MaxPages {
		return nil, fmt.Errorf("%d images need %d pages, over the %d page limit",
			len(names), len(spec.Pages), document.MaxPages)
	}
	return spec, nil
}

// Materialize resets the model to the spec's template and fills pages and
// slots. Image uploads go through the editor so validation and transform
// rules apply exactly as for interactive use.
func (spec *Spec) Materialize(m *document.Model, ed *editor.Controller, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	tpl, err := document.ParseTemplate(spec.Template)
	if err != nil {
		return err
	}
	if len(spec.Pages) > document.MaxPages {
		return document.ErrPageLimit
	}

	m.SetTemplate(tpl)
	for i, ps := range spec.Pages {
		var pageID string
		if i == 0 {
			page, err := m.ActivePage()
			if err != nil {
				return err
			}
			pageID = page.ID
		} else {
			pageID, err = ed.AddPage()
			if err != nil {
				return fmt.Errorf("page %d: %w", i+1, err)
			}
		}
		if err := spec.fillPage(m, ed, pageID, i, ps, log); err != nil {
			return err
		}
	}
	ed.Flush()
	return nil
}

func (spec *Spec) fillPage(m *document.Model, ed *editor.Controller, pageID string, idx int, ps PageSpec, log *zap.Logger) error {
	patch := document.MetadataPatch{}
	if ps.Title != "" {
		patch.Title = &ps.Title
	}
	if ps.Project != "" {
		patch.Project = &ps.Project
	}
	if ps.SubProject != "" {
		patch.SubProject = &ps.SubProject
	}
	if ps.Manager != "" {
		patch.Manager = &ps.Manager
	}
	if err := m.UpdateMetadata(pageID, patch); err != nil {
		return fmt.Errorf("page %d metadata: %w", idx+1, err)
	}

	page, err := m.Page(pageID)
	if err != nil {
		return err
	}
	for j, ss := range ps.Slots {
		slotID := ""
		if j < len(page.Slots) {
			slotID = page.Slots[j].ID
		} else {
			slotID, err = ed.AddSlot(pageID)
			if err != nil {
				return fmt.Errorf("page %d slot %d: %w", idx+1, j+1, err)
			}
		}
		if err := spec.fillSlot(m, ed, pageID, slotID, idx, j, ss, log); err != nil {
			return err
		}
	}
	return nil
}

func (spec *Spec) fillSlot(m *document.Model, ed *editor.Controller, pageID, slotID string, pageIdx, slotIdx int, ss SlotSpec, log *zap.Logger) error {
	where := fmt.Sprintf("page %d slot %d", pageIdx+1, slotIdx+1)

	if ss.Image != "" {
		path := ss.Image
		if !filepath.IsAbs(path) {
			path = filepath.Join(spec.baseDir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", where, err)
		}
		if _, err := ed.AssignImage(pageID, slotID, filepath.Base(path), data); err != nil {
			return fmt.Errorf("%s: %w", where, err)
		}
		log.Debug("image assigned from project", zap.String("slot", slotID), zap.String("image", ss.Image))
	}

	slotPatch := document.SlotPatch{}
	if ss.Scale != 0 {
		slotPatch.Scale = &ss.Scale
	}
	if ss.Rotation != 0 {
		slotPatch.Rotation = &ss.Rotation
	}
	if ss.Fit != "" {
		fit, err := config.ParseFitMode(ss.Fit)
		if err != nil {
			return fmt.Errorf("%s: %w", where, err)
		}
		slotPatch.Fit = &fit
	}
	if slotPatch.Scale != nil || slotPatch.Rotation != nil || slotPatch.Fit != nil {
		if err := ed.UpdateTransform(pageID, slotID, slotPatch); err != nil {
			return fmt.Errorf("%s: %w", where, err)
		}
	}
	if ss.Description != "" {
		desc := ss.Description
		if err := m.UpdateSlot(pageID, slotID, document.SlotPatch{Description: &desc}); err != nil {
			return fmt.Errorf("%s: %w", where, err)
		}
	}
	return nil
}
