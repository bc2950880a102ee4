package compositor

import (
	"image"
	"sort"
	"time"

	"github.com/user/scenemix/pkg/ports"
)

// SceneRenderer draws one scene onto a canvas at a given global alpha,
// compositing all its layouts in z-order.
type SceneRenderer struct {
	registry *SourceRegistry
	chroma   *ChromaKeyFilter
	logger   ports.Logger
}

// NewSceneRenderer creates a SceneRenderer.
func NewSceneRenderer(registry *SourceRegistry, chroma *ChromaKeyFilter, logger ports.Logger) *SceneRenderer {
	return &SceneRenderer{
		registry: registry,
		chroma:   chroma,
		logger:   logger.WithComponent("render"),
	}
}

// Render composites the scene's layouts onto the canvas. Layouts are
// drawn in ascending ZIndex; equal ZIndex keeps insertion order. A
// layout with no pixels, a dangling source reference, or a source that
// is not ready yet is skipped silently — all normal transient states.
// Returns the number of layouts skipped this pass.
func (sr *SceneRenderer) Render(canvas ports.Canvas, scene *Scene, sources map[string]Source, sceneAlpha float64, now time.Time) int {
	if scene == nil || sceneAlpha <= 0 {
		return 0
	}

	ordered := make([]Layout, len(scene.Layouts))
	copy(ordered, scene.Layouts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ZIndex < ordered[j].ZIndex
	})

	skipped := 0
	for _, layout := range ordered {
		if !layout.Drawable() {
			skipped++
			continue
		}
		source, ok := sources[layout.SourceID]
		if !ok {
			// Dangling reference, the source was removed.
			skipped++
			continue
		}
		frame, ready := sr.registry.FrameAt(source.ID, now)
		if !ready {
			skipped++
			continue
		}

		sr.drawLayout(canvas, layout, source, frame, sceneAlpha*layout.Opacity)
	}
	return skipped
}

// drawLayout draws a single layout, isolating any panic so one bad
// layout cannot blank the rest of the frame.
func (sr *SceneRenderer) drawLayout(canvas ports.Canvas, layout Layout, source Source, frame image.Image, opacity float64) {
	defer func() {
		if r := recover(); r != nil {
			sr.logger.Error("Layout %s draw failed: %v", layout.ID, r)
		}
	}()

	// Chroma keying applies to file playback only; live sources have no
	// controlled background to key out.
	if layout.ChromaKeyEnabled && source.Kind() == KindFile {
		keyed := sr.chroma.Apply(layout.ID, frame, layout.Width, layout.Height,
			layout.ChromaKeyColor, layout.ChromaKeyTolerance)
		canvas.DrawImageAlpha(keyed, layout.X, layout.Y, layout.Width, layout.Height, opacity)
		return
	}

	canvas.DrawImageAlpha(frame, layout.X, layout.Y, layout.Width, layout.Height, opacity)
}
