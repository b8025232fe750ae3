package document

import (
	"bytes"
	"context"
	"errors"
	"image"
	"sync"
	"time"

	// formats accepted by upload validation
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/google/uuid"
)

var (
	// ErrNotReady is returned by Image before decoding has finished.
	ErrNotReady = errors.New("image is not decoded yet")
	// ErrReleased is returned by Image after the handle has been released.
	ErrReleased = errors.New("image handle has been released")
)

// ImageRef is a transient handle to a decoded bitmap. Decoding runs in the
// background; Ready closes once the outcome (success or failure) is known.
// The slot holding the handle owns it and must release it exactly once on
// image replacement or removal - handles are not reclaimed implicitly.
type ImageRef struct {
	id   string
	name string

	ready chan struct{}

	mu       sync.Mutex
	img      image.Image
	err      error
	released bool

	releaseOnce sync.Once
}

// NewImageRef starts decoding data in the background. name is the original
// file name, kept for diagnostics.
func NewImageRef(name string, data []byte) *ImageRef {
	r := &ImageRef{
		id:    uuid.NewString(),
		name:  name,
		ready: make(chan struct{}),
	}
	go func() {
		img, _, err := image.Decode(bytes.NewReader(data))
		r.mu.Lock()
		if !r.released {
			r.img = img
		}
		r.err = err
		r.mu.Unlock()
		close(r.ready)
	}()
	return r
}

func (r *ImageRef) ID() string   { return r.id }
func (r *ImageRef) Name() string { return r.name }

// Ready closes when decoding has finished, successfully or not.
func (r *ImageRef) Ready() <-chan struct{} {
	return r.ready
}

// WaitReady blocks until the handle is decoded, the timeout elapses or ctx is
// cancelled. timeout <= 0 means wait only on ctx.
func (r *ImageRef) WaitReady(ctx context.Context, timeout time.Duration) error {
	var timer <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		timer = t.C
	}
	select {
	case <-r.ready:
		r.mu.Lock()
		defer r.mu.Unlock()
		return r.err
	case <-timer:
		return context.DeadlineExceeded
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Image returns the decoded bitmap. It does not block: before decoding
// completes it returns ErrNotReady.
func (r *ImageRef) Image() (image.Image, error) {
	select {
	case <-r.ready:
	default:
		return nil, ErrNotReady
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return nil, ErrReleased
	}
	if r.err != nil {
		return nil, r.err
	}
	return r.img, nil
}

// Release frees the decoded bitmap. Safe to call more than once, only the
// first call has effect.
func (r *ImageRef) Release() {
	r.releaseOnce.Do(func() {
		r.mu.Lock()
		r.released = true
		r.img = nil
		r.mu.Unlock()
	})
}

// Released reports whether the handle has been released.
func (r *ImageRef) Released() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.released
}
