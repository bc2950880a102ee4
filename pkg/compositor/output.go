package compositor

import (
	"image"
	stddraw "image/draw"
	"sync"

	"github.com/user/scenemix/pkg/ports"
)

// Output is the shared output surface plus its mirrors. The render loop
// is the sole writer of the mounted canvas; subscribers (the virtual
// projector) receive per-tick copies and can never block the loop.
type Output struct {
	mu      sync.Mutex
	surface ports.Canvas
	subs    []chan image.Image
}

// NewOutput creates an Output with no surface mounted.
func NewOutput() *Output {
	return &Output{}
}

// Mount installs the canvas the loop composites onto. Replaces any
// previously mounted surface.
func (o *Output) Mount(canvas ports.Canvas) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.surface = canvas
}

// Unmount detaches the surface. The loop keeps ticking and simply
// skips frames until a surface is mounted again.
func (o *Output) Unmount() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.surface = nil
}

// Subscribe returns a channel receiving one copy of every composited
// frame. When the receiver falls behind, frames are dropped.
func (o *Output) Subscribe() <-chan image.Image {
	ch := make(chan image.Image, 1)
	o.mu.Lock()
	o.subs = append(o.subs, ch)
	o.mu.Unlock()
	return ch
}

// Snapshot returns a copy of the current surface content, or nil when
// no surface is mounted.
func (o *Output) Snapshot() image.Image {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.surface == nil {
		return nil
	}
	return copyImage(o.surface.ToImage())
}

// acquire returns the mounted surface and keeps it locked for the
// duration of a render pass. release must follow. Returns nil with the
// lock released when nothing is mounted.
func (o *Output) acquire() ports.Canvas {
	o.mu.Lock()
	if o.surface == nil {
		o.mu.Unlock()
		return nil
	}
	return o.surface
}

// release ends a render pass, fanning the finished frame out to
// subscribers first. Copies only when someone is listening.
func (o *Output) release(publish bool) {
	if publish && len(o.subs) > 0 {
		frame := copyImage(o.surface.ToImage())
		for _, ch := range o.subs {
			select {
			case ch <- frame:
			default:
				// Subscriber is behind, drop the frame.
			}
		}
	}
	o.mu.Unlock()
}

func copyImage(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	stddraw.Draw(dst, dst.Bounds(), img, bounds.Min, stddraw.Src)
	return dst
}
