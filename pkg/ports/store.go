package ports

// RGBRecord is a persisted chroma-key color.
type RGBRecord struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// LayoutRecord is the persisted form of a layout. The chroma-key fields
// are optional; absence means enabled=false, color (0,255,0),
// tolerance 120.
type LayoutRecord struct {
	ID                 string     `json:"id"`
	SourceID           string     `json:"sourceId"`
	X                  int        `json:"x"`
	Y                  int        `json:"y"`
	Width              int        `json:"width"`
	Height             int        `json:"height"`
	ZIndex             int        `json:"zIndex"`
	Opacity            float64    `json:"opacity"`
	ChromaKeyEnabled   *bool      `json:"chromaKeyEnabled,omitempty"`
	ChromaKeyColor     *RGBRecord `json:"chromaKeyColor,omitempty"`
	ChromaKeyTolerance *float64   `json:"chromaKeyTolerance,omitempty"`
}

// SceneRecord is the persisted form of a scene. Layout order is the
// insertion order, not the render order.
type SceneRecord struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Layouts []LayoutRecord `json:"layouts"`
}

// SceneStore is the persistence boundary for scenes. Save failures are
// logged by the caller and swallowed; in-memory state stays
// authoritative for the session.
type SceneStore interface {
	// Load returns the persisted scenes, or nil when nothing was
	// persisted yet.
	Load() ([]SceneRecord, error)

	// Save persists the full scene list.
	Save(scenes []SceneRecord) error
}
