package compositor

import (
	"context"
	"image"
	"sort"
	"sync"
	"time"

	"github.com/user/scenemix/pkg/ports"
)

// Handle is the live decodable element backing one source. File handles
// own a playback clock; live handles hold the most recent grabbed
// frame. A handle becomes ready once it can present at least one frame
// and is polled at render time, never awaited.
type Handle struct {
	mu   sync.Mutex
	kind SourceKind

	// Live state.
	grabber ports.FrameGrabber
	latest  image.Image

	// File state.
	frames     []ports.FileFrame
	durationMs int
	loop       bool
	volume     float64
	muted      bool
	playing    bool
	anchor     time.Time // wall-clock anchor while playing
	pausedAtMs int       // frozen position while paused
}

// positionLocked returns the current playback position in milliseconds.
// Completed loop passes are committed to the anchor so that turning
// looping off later only prevents the restart at end-of-media, it never
// jumps the current position. Caller holds h.mu.
func (h *Handle) positionLocked(now time.Time) int {
	if h.durationMs <= 0 {
		return 0
	}
	if !h.playing {
		return h.pausedAtMs
	}
	pos := h.pausedAtMs + int(now.Sub(h.anchor).Milliseconds())
	if pos < h.durationMs {
		return pos
	}
	if h.loop {
		wrapped := pos % h.durationMs
		h.pausedAtMs = wrapped
		h.anchor = now
		return wrapped
	}
	// End of media: freeze on the final position.
	h.playing = false
	h.pausedAtMs = h.durationMs - 1
	return h.pausedAtMs
}

// frameAtLocked returns the frame presented at position pos. Caller
// holds h.mu and has checked that frames exist.
func (h *Handle) frameAtLocked(pos int) image.Image {
	idx := sort.Search(len(h.frames), func(i int) bool {
		return h.frames[i].TimestampMs > pos
	}) - 1
	if idx < 0 {
		idx = 0
	}
	return h.frames[idx].Image
}

// PlaybackState is a snapshot of a file handle's playback fields.
type PlaybackState struct {
	Loop       bool
	Volume     float64
	Muted      bool
	Playing    bool
	PositionMs int
	Ready      bool
}

// SourceRegistry owns the per-source frame handles. Handles are created
// and destroyed only at source lifecycle points (Ensure/Drop), never
// from inside the render tick.
type SourceRegistry struct {
	mu       sync.Mutex
	handles  map[string]*Handle
	reader   ports.FileReader
	renderer ports.Renderer
	logger   ports.Logger
}

// NewSourceRegistry creates an empty registry.
func NewSourceRegistry(reader ports.FileReader, renderer ports.Renderer, logger ports.Logger) *SourceRegistry {
	return &SourceRegistry{
		handles:  make(map[string]*Handle),
		reader:   reader,
		renderer: renderer,
		logger:   logger.WithComponent("registry"),
	}
}

// Ensure creates the handle for a source if it does not exist yet and
// begins feeding it. Idempotent: a second call for the same source id
// never creates a second handle. Start failures are logged, never
// fatal; the source renders nothing until it becomes ready.
func (r *SourceRegistry) Ensure(ctx context.Context, src Source) {
	r.mu.Lock()
	if _, ok := r.handles[src.ID]; ok {
		r.mu.Unlock()
		return
	}
	h := &Handle{kind: src.Kind()}
	r.handles[src.ID] = h
	r.mu.Unlock()

	switch v := src.Variant.(type) {
	case FileVariant:
		h.mu.Lock()
		h.loop = v.Loop
		h.volume = v.Volume
		h.muted = v.Muted
		h.mu.Unlock()
		go r.decodeFile(src.ID, v.Path, h)
	case ScreenVariant:
		r.startLive(ctx, src.ID, v.Grabber, h)
	case CameraVariant:
		r.startLive(ctx, src.ID, v.Grabber, h)
	}
}

// decodeFile loads the whole frame sequence off the render tick, then
// starts playback from the beginning.
func (r *SourceRegistry) decodeFile(id, path string, h *Handle) {
	r.logger.Debug("Decoding file source %s", id)
	frames, err := r.reader.ReadFrames(path)
	if err != nil {
		r.logger.Warn("Failed to start source %s: %s", id, err.Error())
		return
	}
	if len(frames) == 0 {
		r.logger.Warn("Failed to start source %s: %s", id, "no video frames")
		return
	}

	last := frames[len(frames)-1]
	duration := last.TimestampMs + last.DurationMs

	h.mu.Lock()
	h.frames = frames
	h.durationMs = duration
	h.playing = true
	h.anchor = time.Now()
	h.pausedAtMs = 0
	h.mu.Unlock()

	r.logger.Debug("File source %s ready: %d frames, %d ms", id, len(frames), duration)
}

// startLive starts the grabber and consumes its frames into the handle.
func (r *SourceRegistry) startLive(ctx context.Context, id string, grabber ports.FrameGrabber, h *Handle) {
	h.mu.Lock()
	h.grabber = grabber
	h.mu.Unlock()

	ch, err := grabber.Start(ctx)
	if err != nil {
		r.logger.Warn("Failed to start source %s: %s", id, err.Error())
		return
	}
	r.logger.Debug("Live source %s started", id)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case frame, ok := <-ch:
				if !ok {
					r.logger.Debug("Live source %s stopped", id)
					return
				}
				img, err := r.renderer.DecodeImage(frame.Data, ports.FormatJPEG)
				if err != nil {
					r.logger.Debug("Failed to decode live frame for %s: %s", id, err.Error())
					continue
				}
				h.mu.Lock()
				h.latest = img
				h.mu.Unlock()
			}
		}
	}()
}

// Sync applies the current loop/volume/muted flags onto an existing
// file handle without recreating it. Unknown ids and live handles are
// ignored.
func (r *SourceRegistry) Sync(src Source) {
	v, ok := src.Variant.(FileVariant)
	if !ok {
		return
	}

	r.mu.Lock()
	h := r.handles[src.ID]
	r.mu.Unlock()
	if h == nil {
		return
	}

	h.mu.Lock()
	// Commit any completed loop pass under the old flag first, so the
	// toggle never interrupts the pass that is currently playing.
	h.positionLocked(time.Now())
	h.loop = v.Loop
	h.volume = v.Volume
	h.muted = v.Muted
	h.mu.Unlock()
}

// Drop destroys the handle for a removed source, stopping its grabber.
func (r *SourceRegistry) Drop(id string) {
	r.mu.Lock()
	h := r.handles[id]
	delete(r.handles, id)
	r.mu.Unlock()
	if h == nil {
		return
	}

	h.mu.Lock()
	grabber := h.grabber
	h.mu.Unlock()
	if grabber != nil {
		_ = grabber.Stop()
		r.logger.Debug("Live source %s stopped", id)
	}
}

// ActivateForScene applies the scene-change playback policy: every
// file source used by the newly active scene rewinds to the start and
// plays; every file source not used pauses. Live sources are never
// paused this way, they have no position to reset.
func (r *SourceRegistry) ActivateForScene(now time.Time, usedSourceIDs map[string]struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, h := range r.handles {
		if h.kind != KindFile {
			continue
		}
		h.mu.Lock()
		if _, used := usedSourceIDs[id]; used {
			r.logger.Debug("Rewinding file source %s for active scene", id)
			h.pausedAtMs = 0
			h.anchor = now
			h.playing = len(h.frames) > 0
		} else {
			h.pausedAtMs = h.positionLocked(now)
			h.playing = false
		}
		h.mu.Unlock()
	}
}

// FrameAt returns the frame a source presents at the given instant and
// whether the source is ready to present at all. A missing or not yet
// ready handle returns (nil, false); that is a normal transient state.
func (r *SourceRegistry) FrameAt(id string, now time.Time) (image.Image, bool) {
	r.mu.Lock()
	h := r.handles[id]
	r.mu.Unlock()
	if h == nil {
		return nil, false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.kind == KindFile {
		if len(h.frames) == 0 {
			return nil, false
		}
		return h.frameAtLocked(h.positionLocked(now)), true
	}
	if h.latest == nil {
		return nil, false
	}
	return h.latest, true
}

// PlaybackState returns a snapshot of a file handle's playback fields.
func (r *SourceRegistry) PlaybackState(id string, now time.Time) (PlaybackState, bool) {
	r.mu.Lock()
	h := r.handles[id]
	r.mu.Unlock()
	if h == nil || h.kind != KindFile {
		return PlaybackState{}, false
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return PlaybackState{
		Loop:       h.loop,
		Volume:     h.volume,
		Muted:      h.muted,
		Playing:    h.playing,
		PositionMs: h.positionLocked(now),
		Ready:      len(h.frames) > 0,
	}, true
}

// Close stops all live grabbers and clears the registry.
func (r *SourceRegistry) Close() {
	r.mu.Lock()
	handles := r.handles
	r.handles = make(map[string]*Handle)
	r.mu.Unlock()

	for _, h := range handles {
		h.mu.Lock()
		grabber := h.grabber
		h.mu.Unlock()
		if grabber != nil {
			grabber.Stop()
		}
	}
}
