package compositor

import (
	"image/color"
	"testing"

	"github.com/user/scenemix/pkg/mocks"
)

func TestOutput_SnapshotWithoutSurface(t *testing.T) {
	o := NewOutput()
	if o.Snapshot() != nil {
		t.Error("snapshot of an unmounted output must be nil")
	}
}

func TestOutput_SnapshotCopiesSurface(t *testing.T) {
	o := NewOutput()
	canvas := mocks.NewCanvas(8, 8)
	canvas.Fill(color.RGBA{R: 255, A: 255})
	o.Mount(canvas)

	snap := o.Snapshot()
	if snap == nil {
		t.Fatal("expected a snapshot after mounting")
	}
	if snap == canvas.ToImage() {
		t.Error("snapshot must be a copy, not the live surface")
	}
	r, _, _, _ := snap.At(4, 4).RGBA()
	if r == 0 {
		t.Error("snapshot content should match the surface")
	}
}

func TestOutput_AcquireWhenUnmounted(t *testing.T) {
	o := NewOutput()
	if o.acquire() != nil {
		t.Error("acquire on an unmounted output must return nil")
	}
	// The lock was released; a subsequent Mount must not deadlock.
	o.Mount(mocks.NewCanvas(4, 4))
}

func TestOutput_SubscribeReceivesPublishedFrames(t *testing.T) {
	o := NewOutput()
	o.Mount(mocks.NewCanvas(4, 4))
	ch := o.Subscribe()

	if o.acquire() == nil {
		t.Fatal("expected a mounted surface")
	}
	o.release(true)

	select {
	case frame := <-ch:
		if frame == nil {
			t.Error("expected a frame copy")
		}
	default:
		t.Error("subscriber should have received the published frame")
	}
}

func TestOutput_UnpublishedPassSendsNothing(t *testing.T) {
	o := NewOutput()
	o.Mount(mocks.NewCanvas(4, 4))
	ch := o.Subscribe()

	o.acquire()
	o.release(false)

	select {
	case <-ch:
		t.Error("an unpublished pass must not reach subscribers")
	default:
	}
}

func TestOutput_SlowSubscriberDropsFrames(t *testing.T) {
	o := NewOutput()
	o.Mount(mocks.NewCanvas(4, 4))
	ch := o.Subscribe()

	// Publish twice without the subscriber reading. The buffer holds
	// one frame; the second publish must not block.
	for i := 0; i < 2; i++ {
		if o.acquire() == nil {
			t.Fatal("expected a mounted surface")
		}
		o.release(true)
	}

	<-ch
	select {
	case <-ch:
		t.Error("second frame should have been dropped")
	default:
	}
}

func TestOutput_UnmountStopsPublishing(t *testing.T) {
	o := NewOutput()
	o.Mount(mocks.NewCanvas(4, 4))
	o.Unmount()

	if o.acquire() != nil {
		t.Error("acquire after Unmount must return nil")
	}
	if o.Snapshot() != nil {
		t.Error("snapshot after Unmount must be nil")
	}
}
