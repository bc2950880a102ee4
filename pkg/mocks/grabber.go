package mocks

import (
	"context"

	"github.com/user/scenemix/pkg/ports"
)

// FrameGrabber is a mock implementation of ports.FrameGrabber.
type FrameGrabber struct {
	StartFunc func(ctx context.Context) (<-chan ports.LiveFrame, error)
	StopFunc  func() error

	// Ch is the channel returned by the default Start. Create it with
	// NewFrameGrabber and push frames from the test.
	Ch chan ports.LiveFrame

	// Recorded calls for verification
	StartCalled bool
	StopCalled  bool
}

// NewFrameGrabber creates a grabber with a buffered frame channel.
func NewFrameGrabber() *FrameGrabber {
	return &FrameGrabber{Ch: make(chan ports.LiveFrame, 8)}
}

func (m *FrameGrabber) Start(ctx context.Context) (<-chan ports.LiveFrame, error) {
	m.StartCalled = true
	if m.StartFunc != nil {
		return m.StartFunc(ctx)
	}
	return m.Ch, nil
}

func (m *FrameGrabber) Stop() error {
	m.StopCalled = true
	if m.StopFunc != nil {
		return m.StopFunc()
	}
	return nil
}

var _ ports.FrameGrabber = (*FrameGrabber)(nil)
