// Package pngsink saves composited output frames as numbered PNG files.
package pngsink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/scenemix/pkg/ports"
)

// Sink writes every Nth composited frame under a base directory.
type Sink struct {
	baseDir  string
	every    int
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a Sink. every controls sampling: 1 writes all frames,
// 30 writes one per 30 ticks. Values below 1 are treated as 1.
func New(baseDir string, every int, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	if every < 1 {
		every = 1
	}
	return &Sink{baseDir: baseDir, every: every, fs: fs, renderer: renderer}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// WriteFrame stores one composited frame as PNG.
func (s *Sink) WriteFrame(index int, img image.Image) error {
	if index%s.every != 0 {
		return nil
	}
	dir := filepath.Join(s.baseDir, "frames")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("frame-%06d.png", index))
	return s.fs.WriteFile(path, data)
}

// Ensure Sink implements ports.FrameSink
var _ ports.FrameSink = (*Sink)(nil)
