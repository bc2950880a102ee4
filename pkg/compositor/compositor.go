package compositor

import (
	"context"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/user/scenemix/pkg/ports"
)

// Options configures a Compositor.
type Options struct {
	// Width and Height of the output surface. Zero means 1280x720.
	Width  int
	Height int
	// FPS is the render tick rate. Zero means 30.
	FPS float64
	// TransitionDuration overrides the cross-fade length. Zero means
	// the fixed 500 ms default.
	TransitionDuration time.Duration
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = CanvasWidth
	}
	if o.Height <= 0 {
		o.Height = CanvasHeight
	}
	if o.FPS <= 0 {
		o.FPS = 30
	}
	if o.TransitionDuration <= 0 {
		o.TransitionDuration = TransitionDuration
	}
	return o
}

// Compositor is the facade over the scene/layout model, the source
// registry, and the render loop. All mutations go through its mutex;
// the loop reads the latest committed state at the start of each tick.
type Compositor struct {
	mu      sync.Mutex
	scenes  []Scene
	sources map[string]Source
	active  int

	ids      *IDGenerator
	registry *SourceRegistry
	chroma   *ChromaKeyFilter
	renderer ports.Renderer
	store    ports.SceneStore
	logger   ports.Logger
	output   *Output
	loop     *RenderLoop
	opts     Options
}

// New creates a Compositor, loading persisted scenes or falling back to
// the three default scenes. A load failure is downgraded to the
// defaults; persistence must never block compositing.
func New(renderer ports.Renderer, reader ports.FileReader, store ports.SceneStore, sink ports.FrameSink, logger ports.Logger, opts Options) *Compositor {
	opts = opts.withDefaults()

	c := &Compositor{
		sources:  make(map[string]Source),
		ids:      NewIDGenerator(),
		renderer: renderer,
		store:    store,
		logger:   logger,
		output:   NewOutput(),
		opts:     opts,
	}

	records, err := store.Load()
	switch {
	case err != nil:
		logger.Warn("Failed to persist scenes: %s", err.Error())
		c.scenes = DefaultScenes()
	case records == nil:
		logger.Info("No persisted scenes, using defaults")
		c.scenes = DefaultScenes()
	default:
		c.scenes = fromRecords(records)
		logger.Info("Loaded %d scenes", len(c.scenes))
	}
	c.ids.SeedFromScenes(c.scenes)

	c.registry = NewSourceRegistry(reader, renderer, logger)
	c.chroma = NewChromaKeyFilter()
	sceneRenderer := NewSceneRenderer(c.registry, c.chroma, logger)
	transition := NewTransitionController(0, opts.TransitionDuration)
	c.loop = newRenderLoop(c, c.output, sceneRenderer, transition, sink, logger, opts.FPS)

	return c
}

// MountNewSurface creates the output canvas at the configured size and
// mounts it. The loop skips frames while nothing is mounted.
func (c *Compositor) MountNewSurface() ports.Canvas {
	canvas := c.renderer.CreateCanvas(c.opts.Width, c.opts.Height, color.Black)
	c.output.Mount(canvas)
	return canvas
}

// Output returns the output surface holder (mount, subscribe, snapshot).
func (c *Compositor) Output() *Output {
	return c.output
}

// Run drives the render loop until the context is cancelled, then
// releases all source handles.
func (c *Compositor) Run(ctx context.Context) {
	c.logger.Info("Compositor started: %dx%d at %.1f fps", c.opts.Width, c.opts.Height, c.opts.FPS)
	c.loop.Run(ctx)
	c.registry.Close()
	c.logger.Info("Compositor stopped")
}

// committedState returns the state a tick composites: the scene list,
// the source table, and the requested active index. Scene slices are
// copy-on-write, so the shallow copies stay stable for the whole tick.
func (c *Compositor) committedState() ([]Scene, map[string]Source, int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	scenes := make([]Scene, len(c.scenes))
	copy(scenes, c.scenes)
	sources := make(map[string]Source, len(c.sources))
	for id, src := range c.sources {
		sources[id] = src
	}
	return scenes, sources, c.active
}

// ---- Source operations ----

// AddSource registers a new source and begins feeding its frame handle.
// The id is assigned from the kind's prefix counter.
func (c *Compositor) AddSource(ctx context.Context, label string, variant Variant) Source {
	c.mu.Lock()
	src := Source{
		ID:      c.ids.NextID(variant.Kind().String()),
		Label:   label,
		Variant: variant,
	}
	c.sources[src.ID] = src
	c.mu.Unlock()

	c.registry.Ensure(ctx, src)
	c.logger.Info("Source %s added (%s)", src.ID, src.Kind().String())
	return src
}

// RemoveSource destroys a source and its frame handle. Layouts that
// still reference the id become dangling and are skipped at render
// time.
func (c *Compositor) RemoveSource(id string) {
	c.mu.Lock()
	_, ok := c.sources[id]
	delete(c.sources, id)
	c.mu.Unlock()
	if !ok {
		return
	}

	c.registry.Drop(id)
	c.logger.Info("Source %s removed", id)
}

// Sources returns the current source list.
func (c *Compositor) Sources() []Source {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Source, 0, len(c.sources))
	for _, src := range c.sources {
		out = append(out, src)
	}
	return out
}

// SetFileLoop updates the loop flag of a file source. Never interrupts
// the pass currently playing; it only decides the restart at
// end-of-media.
func (c *Compositor) SetFileLoop(id string, loop bool) error {
	return c.updateFile(id, func(v *FileVariant) { v.Loop = loop })
}

// SetFileVolume updates the volume (0..1) of a file source.
func (c *Compositor) SetFileVolume(id string, volume float64) error {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	return c.updateFile(id, func(v *FileVariant) { v.Volume = volume })
}

// SetFileMuted updates the muted flag of a file source.
func (c *Compositor) SetFileMuted(id string, muted bool) error {
	return c.updateFile(id, func(v *FileVariant) { v.Muted = muted })
}

func (c *Compositor) updateFile(id string, apply func(*FileVariant)) error {
	c.mu.Lock()
	src, ok := c.sources[id]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("unknown source %q", id)
	}
	v, ok := src.Variant.(FileVariant)
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("source %q is not a file source", id)
	}
	apply(&v)
	src.Variant = v
	c.sources[id] = src
	c.mu.Unlock()

	c.registry.Sync(src)
	return nil
}

// Registry exposes playback state for inspection.
func (c *Compositor) Registry() *SourceRegistry {
	return c.registry
}

// ---- Scene and layout operations ----

// Scenes returns a copy of the scene list.
func (c *Compositor) Scenes() []Scene {
	c.mu.Lock()
	defer c.mu.Unlock()
	scenes := make([]Scene, len(c.scenes))
	copy(scenes, c.scenes)
	return scenes
}

// ActiveSceneIndex returns the requested active scene index.
func (c *Compositor) ActiveSceneIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// SetActiveSceneIndex makes another scene active. The render loop picks
// the change up on its next tick and starts the cross-fade; file
// sources used by the new scene rewind and play, unused ones pause.
func (c *Compositor) SetActiveSceneIndex(index int) error {
	c.mu.Lock()
	if index < 0 || index >= len(c.scenes) {
		c.mu.Unlock()
		return fmt.Errorf("scene index %d out of range", index)
	}
	c.active = index
	scene := c.scenes[index]
	name := scene.Name

	used := make(map[string]struct{})
	for _, layout := range scene.Layouts {
		if src, ok := c.sources[layout.SourceID]; ok && src.Kind() == KindFile {
			used[src.ID] = struct{}{}
		}
	}
	c.mu.Unlock()

	c.registry.ActivateForScene(time.Now(), used)
	c.logger.Info("Active scene changed to %d (%s)", index, name)
	return nil
}

// SetSceneName renames a scene.
func (c *Compositor) SetSceneName(sceneID, name string) error {
	err := c.mutateScene(sceneID, func(scene *Scene) {
		scene.Name = name
	})
	if err != nil {
		return err
	}
	c.persist()
	return nil
}

// UpsertLayout inserts or replaces a layout in a scene by layout id.
func (c *Compositor) UpsertLayout(sceneID string, layout Layout) error {
	err := c.mutateScene(sceneID, func(scene *Scene) {
		for i, l := range scene.Layouts {
			if l.ID == layout.ID {
				layouts := make([]Layout, len(scene.Layouts))
				copy(layouts, scene.Layouts)
				layouts[i] = layout
				scene.Layouts = layouts
				return
			}
		}
		scene.Layouts = append(append([]Layout{}, scene.Layouts...), layout)
	})
	if err != nil {
		return err
	}
	c.persist()
	return nil
}

// AddLayoutForSource creates a layout with the documented defaults for
// a source and appends it to the scene.
func (c *Compositor) AddLayoutForSource(sceneID, sourceID string) (Layout, error) {
	layout := DefaultLayout(c.ids.NextID("layout"), sourceID)
	err := c.mutateScene(sceneID, func(scene *Scene) {
		scene.Layouts = append(append([]Layout{}, scene.Layouts...), layout)
	})
	if err != nil {
		return Layout{}, err
	}
	c.persist()
	return layout, nil
}

// RemoveLayout removes a layout from a scene and releases its chroma
// scratch buffer.
func (c *Compositor) RemoveLayout(sceneID, layoutID string) error {
	err := c.mutateScene(sceneID, func(scene *Scene) {
		layouts := make([]Layout, 0, len(scene.Layouts))
		for _, l := range scene.Layouts {
			if l.ID != layoutID {
				layouts = append(layouts, l)
			}
		}
		scene.Layouts = layouts
	})
	if err != nil {
		return err
	}
	c.chroma.Drop(layoutID)
	c.persist()
	return nil
}

// ClearAllLayouts empties every scene.
func (c *Compositor) ClearAllLayouts() {
	c.mu.Lock()
	for i := range c.scenes {
		for _, l := range c.scenes[i].Layouts {
			c.chroma.Drop(l.ID)
		}
		c.scenes[i].Layouts = []Layout{}
	}
	c.mu.Unlock()
	c.persist()
}

// mutateScene applies fn to the scene with the given id. The scene's
// layout slice must be replaced, not mutated in place, so in-flight
// ticks keep a stable view.
func (c *Compositor) mutateScene(sceneID string, fn func(*Scene)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.scenes {
		if c.scenes[i].ID == sceneID {
			fn(&c.scenes[i])
			return nil
		}
	}
	return fmt.Errorf("unknown scene %q", sceneID)
}

// persist pushes the scene list to the store. Failures are logged and
// swallowed; in-memory state stays authoritative for the session.
func (c *Compositor) persist() {
	c.mu.Lock()
	records := toRecords(c.scenes)
	c.mu.Unlock()

	if err := c.store.Save(records); err != nil {
		c.logger.Warn("Failed to persist scenes: %s", err.Error())
	}
}
