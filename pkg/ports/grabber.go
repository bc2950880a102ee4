package ports

import "context"

// LiveFrame is one captured frame from a live source.
type LiveFrame struct {
	// TimestampMs is milliseconds since capture start.
	TimestampMs int
	// Data is the encoded frame (JPEG).
	Data []byte
}

// FrameGrabber is the acquisition boundary for live sources (screen
// capture, camera). Implementations must deliver frames without
// blocking: when the channel buffer is full the frame is dropped, so a
// slow consumer only ever sees stale frames, never backpressure.
type FrameGrabber interface {
	// Start begins capturing and returns a channel of frames. The channel
	// stays open until Stop is called or the context is cancelled.
	// Start itself must not block on the first frame.
	Start(ctx context.Context) (<-chan LiveFrame, error)

	// Stop ends the capture and releases resources. Idempotent.
	Stop() error
}
