package mocks

import (
	"image"
	"sync"

	"github.com/user/scenemix/pkg/ports"
)

// FrameSink is a mock implementation of ports.FrameSink.
type FrameSink struct {
	mu sync.Mutex

	EnabledFunc    func() bool
	WriteFrameFunc func(index int, img image.Image) error

	// Recorded calls for verification
	WriteFrameCalls []int
}

func (m *FrameSink) Enabled() bool {
	if m.EnabledFunc != nil {
		return m.EnabledFunc()
	}
	return true
}

func (m *FrameSink) WriteFrame(index int, img image.Image) error {
	m.mu.Lock()
	m.WriteFrameCalls = append(m.WriteFrameCalls, index)
	m.mu.Unlock()
	if m.WriteFrameFunc != nil {
		return m.WriteFrameFunc(index, img)
	}
	return nil
}

// Writes returns the recorded frame indexes.
func (m *FrameSink) Writes() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int, len(m.WriteFrameCalls))
	copy(out, m.WriteFrameCalls)
	return out
}

var _ ports.FrameSink = (*FrameSink)(nil)
