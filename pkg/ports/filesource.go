package ports

import "image"

// FileFrame is one decoded frame of a file-backed source.
type FileFrame struct {
	Image image.Image
	// TimestampMs is the presentation time in milliseconds.
	TimestampMs int
	// DurationMs is how long the frame is presented.
	DurationMs int
}

// FileReader decodes a video file into its full frame sequence.
// Files are small loops and stings, so whole-file decode is acceptable;
// decoding happens off the render tick.
type FileReader interface {
	ReadFrames(path string) ([]FileFrame, error)
}
