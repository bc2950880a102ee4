package compositor

import (
	"image"
	"sync"

	xdraw "golang.org/x/image/draw"
)

// ChromaKeyFilter turns near-key pixels transparent in scaled frame
// buffers. Each layout owns its scratch buffer: sharing one across
// layouts of different sizes would alias shapes between them, and a
// buffer is only reallocated when its layout is resized, which is rare
// next to the frame rate.
//
// Buffers are handed out only to the render tick; the mutex exists so
// layout removal can release a buffer between ticks.
type ChromaKeyFilter struct {
	mu      sync.Mutex
	scratch map[string]*image.RGBA
}

// NewChromaKeyFilter creates an empty filter.
func NewChromaKeyFilter() *ChromaKeyFilter {
	return &ChromaKeyFilter{scratch: make(map[string]*image.RGBA)}
}

// Apply scales src into the layout's scratch buffer at width x height
// and clears the alpha of every pixel whose squared RGB distance to key
// is strictly below tolerance squared. Strict comparison means a
// tolerance of zero keys nothing. The returned buffer stays owned by
// the filter and is valid until the next Apply for the same layout.
func (f *ChromaKeyFilter) Apply(layoutID string, src image.Image, width, height int, key RGB, tolerance float64) *image.RGBA {
	buf := f.buffer(layoutID, width, height)
	xdraw.ApproxBiLinear.Scale(buf, buf.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	tolSq := int32(tolerance * tolerance)
	pix := buf.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		dr := int32(pix[i]) - int32(key.R)
		dg := int32(pix[i+1]) - int32(key.G)
		db := int32(pix[i+2]) - int32(key.B)
		if dr*dr+dg*dg+db*db < tolSq {
			pix[i+3] = 0
		}
	}
	return buf
}

// Drop releases the scratch buffer of a removed layout.
func (f *ChromaKeyFilter) Drop(layoutID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.scratch, layoutID)
}

func (f *ChromaKeyFilter) buffer(layoutID string, width, height int) *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	buf := f.scratch[layoutID]
	if buf == nil || buf.Bounds().Dx() != width || buf.Bounds().Dy() != height {
		buf = image.NewRGBA(image.Rect(0, 0, width, height))
		f.scratch[layoutID] = buf
	}
	return buf
}
