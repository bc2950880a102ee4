package ports

import "image"

// FrameSink receives composited output frames. Used for debug frame
// dumps; sink failures never propagate into the render loop.
type FrameSink interface {
	// Enabled returns true if the sink wants frames at all. Callers skip
	// the frame copy when disabled.
	Enabled() bool

	// WriteFrame stores one composited frame. The index increases
	// monotonically over the life of the loop.
	WriteFrame(index int, img image.Image) error
}
