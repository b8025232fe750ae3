package render

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type faceKey struct {
	bold   bool
	sizePx int
}

// fontSet lazily builds and caches faces. Faces are closed on Dispose.
type fontSet struct {
	regular *opentype.Font
	bold    *opentype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

func newFontSet() (*fontSet, error) {
	reg, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular font: %w", err)
	}
	bld, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bold font: %w", err)
	}
	return &fontSet{
		regular: reg,
		bold:    bld,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

// face returns a cached face at the requested pixel size. With DPI 72 the
// opentype size parameter is in pixels.
func (fs *fontSet) face(bold bool, sizePx float64) (font.Face, error) {
	key := faceKey{bold: bold, sizePx: int(sizePx)}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if f, ok := fs.faces[key]; ok {
		return f, nil
	}
	src := fs.regular
	if bold {
		src = fs.bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    float64(key.sizePx),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build font face: %w", err)
	}
	fs.faces[key] = f
	return f, nil
}

func (fs *fontSet) close() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	var first error
	for k, f := range fs.faces {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
		delete(fs.faces, k)
	}
	return first
}
