// Package editor mediates user actions against the document model: upload
// validation, debounced description writes and slot bookkeeping. Refusals are
// reported through the notify capability and leave prior state untouched.
package editor

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"picdoc/document"
	"picdoc/notify"
)

const (
	// DefaultMaxUploadBytes is the upload ceiling when configuration does
	// not override it, 15 MiB.
	DefaultMaxUploadBytes = 15 << 20

	// DebounceWindow coalesces description keystrokes.
	DebounceWindow = 100 * time.Millisecond
)

var (
	ErrTooLarge    = errors.New("image exceeds the upload size limit")
	ErrUnsupported = errors.New("unsupported image format, use JPEG, PNG or WEBP")
)

// acceptedTypes is the upload allow-list. Content is sniffed, the declared
// name or MIME type is not trusted.
var acceptedTypes = map[string]bool{
	"jpg":  true,
	"png":  true,
	"webp": true,
}

// Controller validates and applies slot interactions.
type Controller struct {
	model    *document.Model
	log      *zap.Logger
	notifier notify.Notifier

	maxUpload int64
	window    time.Duration

	mu      sync.Mutex
	pending map[string]*pendingWrite
}

type pendingWrite struct {
	timer *time.Timer
	text  string
}

type Option func(*Controller)

// WithMaxUploadBytes overrides the upload size ceiling.
func WithMaxUploadBytes(n int64) Option {
	return func(c *Controller) {
		if n > 0 {
			c.maxUpload = n
		}
	}
}

// WithDebounceWindow overrides the description write coalescing window.
func WithDebounceWindow(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.window = d
		}
	}
}

func NewController(m *document.Model, log *zap.Logger, n notify.Notifier, opts ...Option) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if n == nil {
		n = notify.Nop{}
	}
	c := &Controller{
		model:     m,
		log:       log,
		notifier:  n,
		maxUpload: DefaultMaxUploadBytes,
		window:    DebounceWindow,
		pending:   make(map[string]*pendingWrite),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) refuse(err error) error {
	c.notifier.Notify(notify.Event{Level: notify.LevelWarning, Message: err.Error()})
	return err
}

// ValidateUpload checks size and sniffed encoding of an upload.
func (c *Controller) ValidateUpload(name string, data []byte) error {
	if int64(len(data)) > c.maxUpload {
		c.log.Warn("upload rejected, too large",
			zap.String("name", name), zap.Int("size", len(data)), zap.Int64("limit", c.maxUpload))
		return c.refuse(fmt.Errorf("%s: %w", name, ErrTooLarge))
	}
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown || !acceptedTypes[kind.Extension] {
		c.log.Warn("upload rejected, unsupported format",
			zap.String("name", name), zap.String("detected", kind.Extension))
		return c.refuse(fmt.Errorf("%s: %w", name, ErrUnsupported))
	}
	return nil
}

// AssignImage validates the upload, starts background decode and attaches
// the handle. The slot transform resets to defaults in the same mutation.
func (c *Controller) AssignImage(pageID, slotID, name string, data []byte) (*document.ImageRef, error) {
	if err := c.ValidateUpload(name, data); err != nil {
		return nil, err
	}
	ref := document.NewImageRef(name, data)
	if err := c.model.SetSlotImage(pageID, slotID, ref); err != nil {
		ref.Release()
		return nil, c.refuse(err)
	}
	c.log.Debug("image assigned", zap.String("slot", slotID), zap.String("name", name))
	return ref, nil
}

// RemoveImage detaches the slot image, restores empty-slot defaults and
// drops any pending description write so stale text cannot resurface.
func (c *Controller) RemoveImage(pageID, slotID string) error {
	c.cancelPending(pageID, slotID)
	if err := c.model.RemoveSlotImage(pageID, slotID); err != nil {
		return c.refuse(err)
	}
	return nil
}

// UpdateTransform applies scale, rotation and fit mode changes.
func (c *Controller) UpdateTransform(pageID, slotID string, patch document.SlotPatch) error {
	// description writes go through the debounce path
	patch.Description = nil
	if err := c.model.UpdateSlot(pageID, slotID, patch); err != nil {
		return c.refuse(err)
	}
	return nil
}

func descKey(pageID, slotID string) string {
	return pageID + "/" + slotID
}

// SetDescription schedules a debounced description write. Writes within the
// window for the same slot coalesce into the last one.
func (c *Controller) SetDescription(pageID, slotID, text string) {
	key := descKey(pageID, slotID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if pw, ok := c.pending[key]; ok {
		pw.timer.Stop()
	}
	pw := &pendingWrite{text: text}
	pw.timer = time.AfterFunc(c.window, func() {
		c.mu.Lock()
		if c.pending[key] == pw {
			delete(c.pending, key)
		}
		c.mu.Unlock()
		c.applyDescription(pageID, slotID, text)
	})
	c.pending[key] = pw
}

// RemoveDescription clears the slot description immediately, bypassing and
// cancelling the debounce queue.
func (c *Controller) RemoveDescription(pageID, slotID string) error {
	c.cancelPending(pageID, slotID)
	empty := ""
	if err := c.model.UpdateSlot(pageID, slotID, document.SlotPatch{Description: &empty}); err != nil {
		return c.refuse(err)
	}
	return nil
}

// Flush applies every pending description write right away. Export calls
// this before taking the document snapshot.
func (c *Controller) Flush() {
	c.mu.Lock()
	drained := make(map[string]string, len(c.pending))
	for key, pw := range c.pending {
		if pw.timer.Stop() {
			drained[key] = pw.text
		}
		delete(c.pending, key)
	}
	c.mu.Unlock()

	for key, text := range drained {
		var pageID, slotID string
		if n := len(key); n > 0 {
			for i := 0; i < n; i++ {
				if key[i] == '/' {
					pageID, slotID = key[:i], key[i+1:]
					break
				}
			}
		}
		c.applyDescription(pageID, slotID, text)
	}
}

func (c *Controller) cancelPending(pageID, slotID string) {
	key := descKey(pageID, slotID)
	c.mu.Lock()
	if pw, ok := c.pending[key]; ok {
		pw.timer.Stop()
		delete(c.pending, key)
	}
	c.mu.Unlock()
}

func (c *Controller) applyDescription(pageID, slotID, text string) {
	if err := c.model.UpdateSlot(pageID, slotID, document.SlotPatch{Description: &text}); err != nil {
		// the slot may be gone by the time the debounce fires
		c.log.Debug("debounced description dropped",
			zap.String("page", pageID), zap.String("slot", slotID), zap.Error(err))
	}
}

// AddSlot appends an empty slot on custom templates.
func (c *Controller) AddSlot(pageID string) (string, error) {
	id, err := c.model.AddSlot(pageID)
	if err != nil {
		return "", c.refuse(err)
	}
	return id, nil
}

// RemoveSlot deletes a slot on custom templates.
func (c *Controller) RemoveSlot(pageID, slotID string) error {
	c.cancelPending(pageID, slotID)
	if err := c.model.RemoveSlot(pageID, slotID); err != nil {
		return c.refuse(err)
	}
	return nil
}

// AddPage appends a page, refusing past the page ceiling.
func (c *Controller) AddPage() (string, error) {
	id, err := c.model.AddPage()
	if err != nil {
		return "", c.refuse(err)
	}
	return id, nil
}

// DeletePage removes a page, refusing to drop the last one.
func (c *Controller) DeletePage(pageID string) error {
	if err := c.model.DeletePage(pageID); err != nil {
		return c.refuse(err)
	}
	return nil
}

// ConfirmCrop computes a centered cover-crop rectangle in source image
// pixels for the slot's current aspect ratio and stores it. Used by the
// original-aspect custom family. Crop parameters are resolution relative:
// export recomputes the crop when geometry no longer matches.
func (c *Controller) ConfirmCrop(pageID, slotID string, slotW, slotH float64) error {
	page, err := c.model.Page(pageID)
	if err != nil {
		return c.refuse(err)
	}
	var slot *document.Slot
	for i := range page.Slots {
		if page.Slots[i].ID == slotID {
			slot = &page.Slots[i]
			break
		}
	}
	if slot == nil {
		return c.refuse(document.ErrUnknownSlot)
	}
	if slot.Image == nil {
		return c.refuse(errors.New("cannot confirm crop of an empty slot"))
	}
	img, err := slot.Image.Image()
	if err != nil {
		return c.refuse(fmt.Errorf("image is not usable: %w", err))
	}
	if slotW <= 0 || slotH <= 0 {
		return c.refuse(errors.New("slot geometry is degenerate"))
	}

	crop := document.CoverCrop(img.Bounds().Dx(), img.Bounds().Dy(), slotW/slotH)
	if err := c.model.SetCrop(pageID, slotID, &crop); err != nil {
		return c.refuse(err)
	}
	return nil
}
