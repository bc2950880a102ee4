package mocks

import (
	"fmt"

	"github.com/user/scenemix/pkg/ports"
)

// FileReader is a mock implementation of ports.FileReader.
type FileReader struct {
	ReadFramesFunc func(path string) ([]ports.FileFrame, error)

	// Frames served by path when ReadFramesFunc is nil.
	Frames map[string][]ports.FileFrame

	// Recorded calls for verification
	ReadFramesCalls []string
}

func (m *FileReader) ReadFrames(path string) ([]ports.FileFrame, error) {
	m.ReadFramesCalls = append(m.ReadFramesCalls, path)
	if m.ReadFramesFunc != nil {
		return m.ReadFramesFunc(path)
	}
	if frames, ok := m.Frames[path]; ok {
		return frames, nil
	}
	return nil, fmt.Errorf("file not found: %s", path)
}

var _ ports.FileReader = (*FileReader)(nil)
