package pngsink

import (
	"fmt"
	"image"
	"testing"

	"github.com/user/scenemix/pkg/mocks"
)

func TestSink_SamplesEveryNthFrame(t *testing.T) {
	fs := mocks.NewFileSystem()
	s := New("/out", 30, fs, &mocks.Renderer{})
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	for i := 0; i < 61; i++ {
		if err := s.WriteFrame(i, img); err != nil {
			t.Fatalf("WriteFrame %d failed: %v", i, err)
		}
	}

	for _, path := range []string{
		"/out/frames/frame-000000.png",
		"/out/frames/frame-000030.png",
		"/out/frames/frame-000060.png",
	} {
		if _, ok := fs.GetFile(path); !ok {
			t.Errorf("expected %s to be written", path)
		}
	}
	if _, ok := fs.GetFile("/out/frames/frame-000001.png"); ok {
		t.Error("off-sample frames must not be written")
	}
}

func TestSink_EveryBelowOneWritesAllFrames(t *testing.T) {
	fs := mocks.NewFileSystem()
	s := New("/out", 0, fs, &mocks.Renderer{})
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	for i := 0; i < 3; i++ {
		s.WriteFrame(i, img)
	}

	for i := 0; i < 3; i++ {
		path := fmt.Sprintf("/out/frames/frame-%06d.png", i)
		if _, ok := fs.GetFile(path); !ok {
			t.Errorf("expected frame %d to be written", i)
		}
	}
}

func TestSink_Enabled(t *testing.T) {
	if !New("/out", 1, mocks.NewFileSystem(), &mocks.Renderer{}).Enabled() {
		t.Error("pngsink is always enabled")
	}
}
