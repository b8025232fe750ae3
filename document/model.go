// Package document holds the in-memory editorial state: one active template
// and an ordered list of pages with photo slots. All mutations replace whole
// entities so changing one slot is never observable through another.
package document

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"picdoc/config"
	"picdoc/layout"
)

const (
	MaxPages       = 10
	MaxCustomSlots = 16

	MinScale = 0.5
	MaxScale = 2.0
)

var (
	ErrNoTemplate  = errors.New("no template selected")
	ErrPageLimit   = errors.New("document already has the maximum number of pages")
	ErrLastPage    = errors.New("document must keep at least one page")
	ErrSlotLimit   = errors.New("page already has the maximum number of slots")
	ErrFixedSlots  = errors.New("slot count is fixed for grid templates")
	ErrUnknownPage = errors.New("no such page")
	ErrUnknownSlot = errors.New("no such slot")
	ErrBadRotation = errors.New("rotation must be a multiple of 90 degrees")
	ErrNotOriginal = errors.New("crop confirmation applies to original-aspect templates only")
)

// Metadata is the per-page annotation block.
type Metadata struct {
	Title      string
	Project    string
	SubProject string
	Manager    string
}

// MetadataPatch carries a partial metadata update, nil fields stay unchanged.
type MetadataPatch struct {
	Title      *string
	Project    *string
	SubProject *string
	Manager    *string
}

// TitleStyle controls presentation of the page title line.
type TitleStyle struct {
	Align      config.TitleAlign
	FontFamily string
	FontSizePt int
	Bold       bool
}

type TitleStylePatch struct {
	Align      *config.TitleAlign
	FontFamily *string
	FontSizePt *int
	Bold       *bool
}

// SlotPatch carries a partial slot update, nil fields stay unchanged.
type SlotPatch struct {
	Scale       *float64
	Rotation    *int
	Fit         *config.FitMode
	Description *string
}

// CropRect is a confirmed cover-crop rectangle in source image pixels.
type CropRect struct {
	X, Y, W, H int
}

// Slot is one photo placeholder. A slot without an image always carries the
// default transform and no description.
type Slot struct {
	ID          string
	Image       *ImageRef
	Scale       float64
	Rotation    int
	Fit         config.FitMode
	Description string
	Crop        *CropRect
}

func newSlot() Slot {
	return Slot{
		ID:    uuid.NewString(),
		Scale: 1.0,
		Fit:   config.FitModeFill,
	}
}

func (s Slot) clone() Slot {
	if s.Crop != nil {
		c := *s.Crop
		s.Crop = &c
	}
	return s
}

// Page owns its slots. Metadata and title style are copied from the active
// page when a new page is appended.
type Page struct {
	ID       string
	Metadata Metadata
	Style    TitleStyle
	Slots    []Slot
}

func (p Page) clone() Page {
	slots := make([]Slot, len(p.Slots))
	for i, s := range p.Slots {
		slots[i] = s.clone()
	}
	p.Slots = slots
	return p
}

func defaultTitleStyle() TitleStyle {
	return TitleStyle{
		Align:      config.TitleAlignStart,
		FontFamily: "sans",
		FontSizePt: 14,
		Bold:       true,
	}
}

// Snapshot is a deep copy of document state taken under lock. Image handles
// are borrowed, not copied - a handle released after the snapshot renders as
// a placeholder.
type Snapshot struct {
	Template Template
	Pages    []Page
}

// Model is the document tree. Safe for concurrent use; mutations are
// synchronous and immediately visible to the next read.
type Model struct {
	mu           sync.Mutex
	log          *zap.Logger
	defaultTitle string

	template *Template
	pages    []Page
	active   int

	rev     uint64
	subs    map[int]chan struct{}
	nextSub int
}

func NewModel(log *zap.Logger, defaultTitle string) *Model {
	if log == nil {
		log = zap.NewNop()
	}
	return &Model{
		log:          log,
		defaultTitle: defaultTitle,
		subs:         make(map[int]chan struct{}),
	}
}

// notify bumps the revision and pokes subscribers. Callers must hold mu.
func (m *Model) notify() {
	m.rev++
	for _, ch := range m.subs {
		select {
		case ch <- struct{}{}:
		default:
			// subscriber is behind, it will re-derive from the latest state anyway
		}
	}
}

// Subscribe returns a coalescing change signal and a cancel function. The
// channel fires after every mutation; a slow consumer sees at least one
// signal for any burst of changes.
func (m *Model) Subscribe() (<-chan struct{}, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	ch := make(chan struct{}, 1)
	m.subs[id] = ch
	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// Revision returns the current mutation counter.
func (m *Model) Revision() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rev
}

func (m *Model) newPage(meta Metadata, style TitleStyle, slotCount int) Page {
	slots := make([]Slot, slotCount)
	for i := range slots {
		slots[i] = newSlot()
	}
	return Page{
		ID:       uuid.NewString(),
		Metadata: meta,
		Style:    style,
		Slots:    slots,
	}
}

// SetTemplate resets the document to a single fresh page laid out for the
// given template. All previously held image handles are released.
func (m *Model) SetTemplate(t Template) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.releaseAllLocked()

	tpl := t
	m.template = &tpl
	m.pages = []Page{m.newPage(Metadata{Title: m.defaultTitle}, defaultTitleStyle(), t.InitialSlots())}
	m.active = 0
	m.log.Debug("template set", zap.String("template", t.ID()))
	m.notify()
}

// Template returns the active template, false when none was selected yet.
func (m *Model) Template() (Template, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.template == nil {
		return Template{}, false
	}
	return *m.template, true
}

// AddPage appends a page copying metadata and title style from the active
// one, and makes it active.
func (m *Model) AddPage() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.template == nil {
		return "", ErrNoTemplate
	}
	if len(m.pages) >= MaxPages {
		return "", ErrPageLimit
	}

	cur := m.pages[m.active]
	page := m.newPage(cur.Metadata, cur.Style, m.template.InitialSlots())
	m.pages = append(m.pages, page)
	m.active = len(m.pages) - 1
	m.notify()
	return page.ID, nil
}

// DeletePage removes a page. The last remaining page cannot be deleted.
func (m *Model) DeletePage(pageID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.pages) <= 1 {
		return ErrLastPage
	}
	idx := m.pageIndexLocked(pageID)
	if idx < 0 {
		return ErrUnknownPage
	}

	for _, s := range m.pages[idx].Slots {
		if s.Image != nil {
			s.Image.Release()
		}
	}
	m.pages = append(m.pages[:idx:idx], m.pages[idx+1:]...)
	if m.active >= len(m.pages) {
		m.active = len(m.pages) - 1
	} else if m.active > idx {
		m.active--
	}
	m.notify()
	return nil
}

// SetActivePage selects the page edits apply to.
func (m *Model) SetActivePage(idx int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if idx < 0 || idx >= len(m.pages) {
		return ErrUnknownPage
	}
	m.active = idx
	m.notify()
	return nil
}

// ActiveIndex returns the index of the active page.
func (m *Model) ActiveIndex() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// PageCount returns the number of pages.
func (m *Model) PageCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pages)
}

// Page returns a deep copy of the page with the given id.
func (m *Model) Page(pageID string) (Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.pageIndexLocked(pageID)
	if idx < 0 {
		return Page{}, ErrUnknownPage
	}
	return m.pages[idx].clone(), nil
}

// ActivePage returns a deep copy of the active page.
func (m *Model) ActivePage() (Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.pages) == 0 {
		return Page{}, ErrNoTemplate
	}
	return m.pages[m.active].clone(), nil
}

// UpdateMetadata merges non-nil patch fields into page metadata.
func (m *Model) UpdateMetadata(pageID string, patch MetadataPatch) error {
	return m.replacePage(pageID, func(p *Page) error {
		if patch.Title != nil {
			p.Metadata.Title = *patch.Title
		}
		if patch.Project != nil {
			p.Metadata.Project = *patch.Project
		}
		if patch.SubProject != nil {
			p.Metadata.SubProject = *patch.SubProject
		}
		if patch.Manager != nil {
			p.Metadata.Manager = *patch.Manager
		}
		return nil
	})
}

// UpdateTitleStyle merges non-nil patch fields into the page title style.
func (m *Model) UpdateTitleStyle(pageID string, patch TitleStylePatch) error {
	return m.replacePage(pageID, func(p *Page) error {
		if patch.Align != nil {
			p.Style.Align = *patch.Align
		}
		if patch.FontFamily != nil {
			p.Style.FontFamily = *patch.FontFamily
		}
		if patch.FontSizePt != nil && *patch.FontSizePt > 0 {
			p.Style.FontSizePt = *patch.FontSizePt
		}
		if patch.Bold != nil {
			p.Style.Bold = *patch.Bold
		}
		return nil
	})
}

// UpdateSlot merges non-nil patch fields into a slot. Scale is clamped to
// [0.5, 2.0]; rotation must be a right angle.
func (m *Model) UpdateSlot(pageID, slotID string, patch SlotPatch) error {
	return m.replaceSlot(pageID, slotID, func(s *Slot) error {
		if patch.Scale != nil {
			s.Scale = min(max(*patch.Scale, MinScale), MaxScale)
		}
		if patch.Rotation != nil {
			rot := ((*patch.Rotation % 360) + 360) % 360
			if rot%90 != 0 {
				return ErrBadRotation
			}
			s.Rotation = rot
		}
		if patch.Fit != nil {
			s.Fit = *patch.Fit
		}
		if patch.Description != nil {
			s.Description = *patch.Description
		}
		return nil
	})
}

// SetSlotImage attaches an image handle, releasing the previous one. The
// transform always resets so edits from a previous photo never leak onto a
// new one.
func (m *Model) SetSlotImage(pageID, slotID string, ref *ImageRef) error {
	return m.replaceSlot(pageID, slotID, func(s *Slot) error {
		if s.Image != nil && s.Image != ref {
			s.Image.Release()
		}
		s.Image = ref
		s.Scale = 1.0
		s.Rotation = 0
		s.Fit = config.FitModeFill
		s.Crop = nil
		return nil
	})
}

// RemoveSlotImage detaches the image and restores the empty-slot invariants.
func (m *Model) RemoveSlotImage(pageID, slotID string) error {
	return m.replaceSlot(pageID, slotID, func(s *Slot) error {
		if s.Image != nil {
			s.Image.Release()
		}
		*s = Slot{ID: s.ID, Scale: 1.0, Fit: config.FitModeFill}
		return nil
	})
}

// SetCrop stores a confirmed cover-crop rectangle. Only meaningful for the
// original-aspect custom family.
func (m *Model) SetCrop(pageID, slotID string, crop *CropRect) error {
	m.mu.Lock()
	tpl := m.template
	m.mu.Unlock()
	if tpl == nil {
		return ErrNoTemplate
	}
	if tpl.Family != layout.FamilyCustomOriginal {
		return ErrNotOriginal
	}
	return m.replaceSlot(pageID, slotID, func(s *Slot) error {
		if crop != nil {
			c := *crop
			s.Crop = &c
		} else {
			s.Crop = nil
		}
		return nil
	})
}

// AddSlot appends an empty slot. Permitted for custom templates only, up to
// the slot ceiling.
func (m *Model) AddSlot(pageID string) (string, error) {
	var slotID string
	err := m.replacePage(pageID, func(p *Page) error {
		if m.template == nil {
			return ErrNoTemplate
		}
		if !m.template.Family.IsCustom() {
			return ErrFixedSlots
		}
		if len(p.Slots) >= MaxCustomSlots {
			return ErrSlotLimit
		}
		s := newSlot()
		slotID = s.ID
		p.Slots = append(p.Slots, s)
		return nil
	})
	return slotID, err
}

// RemoveSlot deletes a slot, releasing its image. Custom templates only.
func (m *Model) RemoveSlot(pageID, slotID string) error {
	return m.replacePage(pageID, func(p *Page) error {
		if m.template == nil {
			return ErrNoTemplate
		}
		if !m.template.Family.IsCustom() {
			return ErrFixedSlots
		}
		for i, s := range p.Slots {
			if s.ID == slotID {
				if s.Image != nil {
					s.Image.Release()
				}
				p.Slots = append(p.Slots[:i:i], p.Slots[i+1:]...)
				return nil
			}
		}
		return ErrUnknownSlot
	})
}

// Snapshot deep-copies the document state for an export run. Later mutations
// do not affect the returned value.
func (m *Model) Snapshot() (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.template == nil {
		return Snapshot{}, ErrNoTemplate
	}
	pages := make([]Page, len(m.pages))
	for i, p := range m.pages {
		pages[i] = p.clone()
	}
	return Snapshot{Template: *m.template, Pages: pages}, nil
}

// Release frees every image handle held by the document.
func (m *Model) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releaseAllLocked()
}

func (m *Model) releaseAllLocked() {
	for _, p := range m.pages {
		for _, s := range p.Slots {
			if s.Image != nil {
				s.Image.Release()
			}
		}
	}
}

func (m *Model) pageIndexLocked(pageID string) int {
	for i := range m.pages {
		if m.pages[i].ID == pageID {
			return i
		}
	}
	return -1
}

// replacePage clones the target page, applies fn and swaps the whole page
// back in. On error nothing changes.
func (m *Model) replacePage(pageID string, fn func(*Page) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.pageIndexLocked(pageID)
	if idx < 0 {
		return ErrUnknownPage
	}
	page := m.pages[idx].clone()
	if err := fn(&page); err != nil {
		return err
	}
	m.pages[idx] = page
	m.notify()
	return nil
}

func (m *Model) replaceSlot(pageID, slotID string, fn func(*Slot) error) error {
	return m.replacePage(pageID, func(p *Page) error {
		for i := range p.Slots {
			if p.Slots[i].ID == slotID {
				slot := p.Slots[i].clone()
				if err := fn(&slot); err != nil {
					return err
				}
				p.Slots[i] = slot
				return nil
			}
		}
		return ErrUnknownSlot
	})
}
