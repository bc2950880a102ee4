package compositor

import (
	"context"
	"image/color"
	"time"

	"github.com/user/scenemix/pkg/ports"
)

// diagnosticsInterval is how often the loop logs a health line.
const diagnosticsInterval = 5 * time.Second

// RenderLoop drives the compositor: each tick it resolves the current
// transition progress, invokes the scene renderer once or twice, and
// publishes the result. It is the sole writer of the output surface.
//
// The loop never stops on error: a panicking tick is logged and the
// next tick proceeds. Only context cancellation ends the loop.
type RenderLoop struct {
	comp       *Compositor
	output     *Output
	renderer   *SceneRenderer
	transition *TransitionController
	sink       ports.FrameSink
	logger     ports.Logger
	interval   time.Duration
	diag       *loopDiagnostics

	frameIndex int
}

func newRenderLoop(comp *Compositor, output *Output, renderer *SceneRenderer, transition *TransitionController, sink ports.FrameSink, logger ports.Logger, fps float64) *RenderLoop {
	if fps <= 0 {
		fps = 30
	}
	return &RenderLoop{
		comp:       comp,
		output:     output,
		renderer:   renderer,
		transition: transition,
		sink:       sink,
		logger:     logger.WithComponent("loop"),
		interval:   time.Duration(float64(time.Second) / fps),
		diag:       newLoopDiagnostics(logger.WithComponent("loop"), diagnosticsInterval),
	}
}

// Run ticks until the context is cancelled.
func (l *RenderLoop) Run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.tick(now)
		}
	}
}

// tick renders one output frame. The last line of defense: whatever a
// tick does, the loop survives it.
func (l *RenderLoop) tick(now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("Render tick panicked: %v", r)
		}
	}()

	scenes, sources, target := l.comp.committedState()
	l.transition.SetTarget(target, now)

	surface := l.output.acquire()
	if surface == nil {
		// Not mounted yet; not an error, try again next tick.
		return
	}
	published := false
	defer func() { l.output.release(published) }()

	surface.Fill(color.Black)

	progress, previous, transitioning := l.transition.Progress(now)
	current := l.transition.Displayed()

	skipped := 0
	if transitioning && sceneInRange(previous, scenes) {
		skipped += l.renderer.Render(surface, &scenes[previous], sources, 1-progress, now)
		if sceneInRange(current, scenes) {
			skipped += l.renderer.Render(surface, &scenes[current], sources, progress, now)
		}
	} else if sceneInRange(current, scenes) {
		skipped += l.renderer.Render(surface, &scenes[current], sources, 1, now)
	}

	published = true
	if l.sink.Enabled() {
		if err := l.sink.WriteFrame(l.frameIndex, surface.ToImage()); err != nil {
			l.logger.Warn("Output sink write failed: %s", err.Error())
		}
	}
	l.frameIndex++
	l.diag.record(skipped, now)
}

func sceneInRange(index int, scenes []Scene) bool {
	return index >= 0 && index < len(scenes)
}
