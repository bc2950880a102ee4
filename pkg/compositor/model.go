// Package compositor implements the live scene compositor: scene and
// layout model, source handle registry, chroma-key filter, cross-fade
// transitions, and the render loop that composites everything onto one
// output surface.
package compositor

import (
	"fmt"
	"time"

	"github.com/user/scenemix/pkg/ports"
)

// Logical output resolution.
const (
	CanvasWidth  = 1280
	CanvasHeight = 720
)

// TransitionDuration is the fixed cross-fade length between scenes.
const TransitionDuration = 500 * time.Millisecond

// SourceKind identifies the variant of a source.
type SourceKind int

const (
	KindScreen SourceKind = iota
	KindCamera
	KindFile
)

// String returns the id prefix for the kind.
func (k SourceKind) String() string {
	switch k {
	case KindScreen:
		return "screen"
	case KindCamera:
		return "camera"
	case KindFile:
		return "video"
	default:
		return "unknown"
	}
}

// Variant carries the kind-specific fields of a source. Exactly one of
// ScreenVariant, CameraVariant, or FileVariant.
type Variant interface {
	Kind() SourceKind
}

// ScreenVariant is a live screen-capture source.
type ScreenVariant struct {
	Grabber ports.FrameGrabber
}

// Kind returns KindScreen.
func (ScreenVariant) Kind() SourceKind { return KindScreen }

// CameraVariant is a live camera source.
type CameraVariant struct {
	Grabber ports.FrameGrabber
}

// Kind returns KindCamera.
func (CameraVariant) Kind() SourceKind { return KindCamera }

// FileVariant is a file-backed playback source. Only this variant
// carries playback flags; the defaults are always set explicitly.
type FileVariant struct {
	Path   string
	Loop   bool
	Volume float64
	Muted  bool
}

// Kind returns KindFile.
func (FileVariant) Kind() SourceKind { return KindFile }

// NewFileVariant returns a FileVariant with the documented defaults:
// looping, full volume, not muted.
func NewFileVariant(path string) FileVariant {
	return FileVariant{Path: path, Loop: true, Volume: 1.0, Muted: false}
}

// Source is one media-producing source. The compositor references it by
// id; the acquisition collaborator owns its lifecycle.
type Source struct {
	ID      string
	Label   string
	Variant Variant
}

// Kind returns the variant kind.
func (s Source) Kind() SourceKind { return s.Variant.Kind() }

// RGB is a chroma-key color.
type RGB struct {
	R, G, B uint8
}

// Layout describes where and how one source appears within a scene.
type Layout struct {
	ID       string
	SourceID string

	// Position and size in surface pixels. Width or height of zero or
	// less means the layout is never drawn.
	X, Y          int
	Width, Height int

	ZIndex  int
	Opacity float64

	ChromaKeyEnabled   bool
	ChromaKeyColor     RGB
	ChromaKeyTolerance float64
}

// Drawable reports whether the layout occupies any pixels.
func (l Layout) Drawable() bool {
	return l.Width > 0 && l.Height > 0
}

// DefaultLayout returns a new layout for a source with the documented
// defaults.
func DefaultLayout(id, sourceID string) Layout {
	return Layout{
		ID:                 id,
		SourceID:           sourceID,
		X:                  100,
		Y:                  100,
		Width:              640,
		Height:             360,
		ZIndex:             1,
		Opacity:            1.0,
		ChromaKeyEnabled:   false,
		ChromaKeyColor:     RGB{R: 0, G: 255, B: 0},
		ChromaKeyTolerance: 120,
	}
}

// Scene is a named, insertion-ordered collection of layouts. Render
// order is by ZIndex, ties broken by insertion order.
type Scene struct {
	ID      string
	Name    string
	Layouts []Layout
}

// DefaultScenes returns the three empty scenes used when nothing was
// persisted.
func DefaultScenes() []Scene {
	scenes := make([]Scene, 0, 3)
	for i := 1; i <= 3; i++ {
		scenes = append(scenes, Scene{
			ID:      fmt.Sprintf("scene-%d", i),
			Name:    fmt.Sprintf("Scene %d", i),
			Layouts: []Layout{},
		})
	}
	return scenes
}
