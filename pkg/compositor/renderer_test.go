package compositor

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/user/scenemix/pkg/adapters/logger"
	"github.com/user/scenemix/pkg/mocks"
	"github.com/user/scenemix/pkg/ports"
)

func readyFileHandle(durationMs int) *Handle {
	return &Handle{
		kind: KindFile,
		frames: []ports.FileFrame{
			{Image: uniformImage(4, 4, color.RGBA{R: 255, A: 255}), TimestampMs: 0, DurationMs: durationMs},
		},
		durationMs: durationMs,
	}
}

func readyLiveHandle() *Handle {
	return &Handle{
		kind:   KindScreen,
		latest: uniformImage(4, 4, color.RGBA{G: 255, A: 255}),
	}
}

func testRegistry(handles map[string]*Handle) *SourceRegistry {
	r := NewSourceRegistry(&mocks.FileReader{}, &mocks.Renderer{}, logger.NewNoop())
	for id, h := range handles {
		r.handles[id] = h
	}
	return r
}

func testSources(ids ...string) map[string]Source {
	sources := make(map[string]Source)
	for _, id := range ids {
		var v Variant
		switch {
		case len(id) > 5 && id[:5] == "video":
			v = FileVariant{Path: "/tmp/" + id + ".mp4", Loop: true, Volume: 1}
		default:
			v = ScreenVariant{}
		}
		sources[id] = Source{ID: id, Label: id, Variant: v}
	}
	return sources
}

func TestSceneRenderer_DrawsInZOrder(t *testing.T) {
	registry := testRegistry(map[string]*Handle{
		"screen-1": readyLiveHandle(),
		"video-1":  readyFileHandle(1000),
	})
	sr := NewSceneRenderer(registry, NewChromaKeyFilter(), logger.NewNoop())
	canvas := mocks.NewCanvas(CanvasWidth, CanvasHeight)

	scene := &Scene{
		ID: "scene-1",
		Layouts: []Layout{
			{ID: "layout-1", SourceID: "screen-1", X: 10, Y: 10, Width: 100, Height: 100, ZIndex: 5, Opacity: 1},
			{ID: "layout-2", SourceID: "video-1", X: 20, Y: 20, Width: 50, Height: 50, ZIndex: 1, Opacity: 1},
		},
	}

	skipped := sr.Render(canvas, scene, testSources("screen-1", "video-1"), 1, time.Now())
	if skipped != 0 {
		t.Errorf("expected no skips, got %d", skipped)
	}

	draws := canvas.Draws()
	if len(draws) != 2 {
		t.Fatalf("expected 2 draws, got %d", len(draws))
	}
	// Lower ZIndex draws first.
	if draws[0].X != 20 || draws[1].X != 10 {
		t.Errorf("z-order violated: got draws at x=%d then x=%d", draws[0].X, draws[1].X)
	}
}

func TestSceneRenderer_EqualZIndexKeepsInsertionOrder(t *testing.T) {
	registry := testRegistry(map[string]*Handle{"screen-1": readyLiveHandle()})
	sr := NewSceneRenderer(registry, NewChromaKeyFilter(), logger.NewNoop())
	canvas := mocks.NewCanvas(CanvasWidth, CanvasHeight)

	scene := &Scene{
		ID: "scene-1",
		Layouts: []Layout{
			{ID: "layout-1", SourceID: "screen-1", X: 1, Y: 0, Width: 10, Height: 10, ZIndex: 1, Opacity: 1},
			{ID: "layout-2", SourceID: "screen-1", X: 2, Y: 0, Width: 10, Height: 10, ZIndex: 1, Opacity: 1},
			{ID: "layout-3", SourceID: "screen-1", X: 3, Y: 0, Width: 10, Height: 10, ZIndex: 1, Opacity: 1},
		},
	}

	sr.Render(canvas, scene, testSources("screen-1"), 1, time.Now())

	draws := canvas.Draws()
	if len(draws) != 3 {
		t.Fatalf("expected 3 draws, got %d", len(draws))
	}
	for i, want := range []int{1, 2, 3} {
		if draws[i].X != want {
			t.Errorf("draw %d: expected x=%d, got %d", i, want, draws[i].X)
		}
	}
}

func TestSceneRenderer_SkipsNonDrawableLayouts(t *testing.T) {
	registry := testRegistry(map[string]*Handle{"screen-1": readyLiveHandle()})
	sr := NewSceneRenderer(registry, NewChromaKeyFilter(), logger.NewNoop())
	canvas := mocks.NewCanvas(CanvasWidth, CanvasHeight)

	scene := &Scene{
		ID: "scene-1",
		Layouts: []Layout{
			{ID: "layout-1", SourceID: "screen-1", Width: 0, Height: 100, Opacity: 1},
			{ID: "layout-2", SourceID: "screen-1", Width: 100, Height: -5, Opacity: 1},
		},
	}

	skipped := sr.Render(canvas, scene, testSources("screen-1"), 1, time.Now())
	if skipped != 2 {
		t.Errorf("expected 2 skips, got %d", skipped)
	}
	if len(canvas.Draws()) != 0 {
		t.Error("zero-area layouts must not draw")
	}
}

func TestSceneRenderer_SkipsDanglingSourceReference(t *testing.T) {
	registry := testRegistry(nil)
	sr := NewSceneRenderer(registry, NewChromaKeyFilter(), logger.NewNoop())
	canvas := mocks.NewCanvas(CanvasWidth, CanvasHeight)

	scene := &Scene{
		ID: "scene-1",
		Layouts: []Layout{
			{ID: "layout-1", SourceID: "video-9", Width: 100, Height: 100, Opacity: 1},
		},
	}

	skipped := sr.Render(canvas, scene, map[string]Source{}, 1, time.Now())
	if skipped != 1 {
		t.Errorf("expected 1 skip for dangling reference, got %d", skipped)
	}
}

func TestSceneRenderer_SkipsNotReadySource(t *testing.T) {
	// Handle exists but has no frames yet: decode still in flight.
	registry := testRegistry(map[string]*Handle{"video-1": {kind: KindFile}})
	sr := NewSceneRenderer(registry, NewChromaKeyFilter(), logger.NewNoop())
	canvas := mocks.NewCanvas(CanvasWidth, CanvasHeight)

	scene := &Scene{
		ID: "scene-1",
		Layouts: []Layout{
			{ID: "layout-1", SourceID: "video-1", Width: 100, Height: 100, Opacity: 1},
		},
	}

	skipped := sr.Render(canvas, scene, testSources("video-1"), 1, time.Now())
	if skipped != 1 {
		t.Errorf("expected 1 skip for not-ready source, got %d", skipped)
	}
	if len(canvas.Draws()) != 0 {
		t.Error("not-ready sources must not draw")
	}
}

func TestSceneRenderer_SceneAlphaScalesLayoutOpacity(t *testing.T) {
	registry := testRegistry(map[string]*Handle{"screen-1": readyLiveHandle()})
	sr := NewSceneRenderer(registry, NewChromaKeyFilter(), logger.NewNoop())
	canvas := mocks.NewCanvas(CanvasWidth, CanvasHeight)

	scene := &Scene{
		ID: "scene-1",
		Layouts: []Layout{
			{ID: "layout-1", SourceID: "screen-1", Width: 100, Height: 100, Opacity: 0.5},
		},
	}

	sr.Render(canvas, scene, testSources("screen-1"), 0.5, time.Now())

	draws := canvas.Draws()
	if len(draws) != 1 {
		t.Fatalf("expected 1 draw, got %d", len(draws))
	}
	if draws[0].Alpha != 0.25 {
		t.Errorf("expected alpha 0.25, got %f", draws[0].Alpha)
	}
}

func TestSceneRenderer_ZeroSceneAlphaDrawsNothing(t *testing.T) {
	registry := testRegistry(map[string]*Handle{"screen-1": readyLiveHandle()})
	sr := NewSceneRenderer(registry, NewChromaKeyFilter(), logger.NewNoop())
	canvas := mocks.NewCanvas(CanvasWidth, CanvasHeight)

	scene := &Scene{
		ID: "scene-1",
		Layouts: []Layout{
			{ID: "layout-1", SourceID: "screen-1", Width: 100, Height: 100, Opacity: 1},
		},
	}

	sr.Render(canvas, scene, testSources("screen-1"), 0, time.Now())
	if len(canvas.Draws()) != 0 {
		t.Error("a fully transparent scene must not draw")
	}
}

func TestSceneRenderer_PanicInOneLayoutDoesNotBlankOthers(t *testing.T) {
	registry := testRegistry(map[string]*Handle{
		"screen-1": readyLiveHandle(),
		// A live handle with a frame that panics when drawn.
		"screen-2": {kind: KindScreen, latest: panicImage{}},
	})
	sr := NewSceneRenderer(registry, NewChromaKeyFilter(), logger.NewNoop())
	canvas := &panicOnDrawCanvas{Canvas: mocks.NewCanvas(CanvasWidth, CanvasHeight)}

	scene := &Scene{
		ID: "scene-1",
		Layouts: []Layout{
			{ID: "layout-1", SourceID: "screen-2", Width: 10, Height: 10, ZIndex: 0, Opacity: 1},
			{ID: "layout-2", SourceID: "screen-1", Width: 10, Height: 10, ZIndex: 1, Opacity: 1},
		},
	}

	sources := testSources("screen-1")
	sources["screen-2"] = Source{ID: "screen-2", Variant: ScreenVariant{}}

	sr.Render(canvas, scene, sources, 1, time.Now())

	if len(canvas.Draws()) != 1 {
		t.Errorf("layout after the panicking one must still draw, got %d draws", len(canvas.Draws()))
	}
}

// panicImage makes any draw of it explode.
type panicImage struct{}

func (panicImage) ColorModel() color.Model { return color.RGBAModel }
func (panicImage) Bounds() image.Rectangle { return image.Rect(0, 0, 1, 1) }
func (panicImage) At(x, y int) color.Color { return color.RGBA{} }

// panicOnDrawCanvas panics when asked to draw a panicImage.
type panicOnDrawCanvas struct {
	*mocks.Canvas
}

func (c *panicOnDrawCanvas) DrawImageAlpha(img image.Image, x, y, width, height int, alpha float64) {
	if _, ok := img.(panicImage); ok {
		panic("bad frame")
	}
	c.Canvas.DrawImageAlpha(img, x, y, width, height, alpha)
}
