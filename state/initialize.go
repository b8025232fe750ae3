package state

import (
	"time"
)

// GlyphPos names places where built-in glyphs may be drawn on a page.
type GlyphPos int

const (
	// GlyphPosEmptySlot marks a slot awaiting an image.
	GlyphPosEmptySlot GlyphPos = iota
	// GlyphPosBrokenImage substitutes an image which failed to decode.
	GlyphPosBrokenImage
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
		DefaultGlyphs: map[GlyphPos][]byte{
			GlyphPosEmptySlot: []byte(`<svg viewBox="0 0 48 48" xmlns="http://www.w3.org/2000/svg">
  <path d="M24 10 V38
           M10 24 H38"
        stroke="#9ca3af" fill="none" stroke-width="4" stroke-linecap="round"/>
</svg>`),
			GlyphPosBrokenImage: []byte(`<svg viewBox="0 0 48 48" xmlns="http://www.w3.org/2000/svg">
  <rect x="6" y="10" width="36" height="28" rx="2"
        fill="none" stroke="#9ca3af" stroke-width="2"/>
  <circle cx="16" cy="19" r="3" fill="none" stroke="#9ca3af" stroke-width="2"/>
  <path d="M8 34
           L20 24
           L27 30
           L34 23
           L40 28"
        fill="none" stroke="#9ca3af" stroke-width="2"/>
  <path d="M10 42 L38 6"
        stroke="#9ca3af" stroke-width="2"/>
</svg>`),
		},
	}
}
