package compositor

import "github.com/user/scenemix/pkg/ports"

// Documented defaults for chroma-key fields absent from persisted data.
var (
	defaultChromaColor     = RGB{R: 0, G: 255, B: 0}
	defaultChromaTolerance = 120.0
)

// toRecords converts the in-memory scenes to their persisted form.
// Chroma fields are written verbatim, never omitted.
func toRecords(scenes []Scene) []ports.SceneRecord {
	records := make([]ports.SceneRecord, 0, len(scenes))
	for _, scene := range scenes {
		rec := ports.SceneRecord{
			ID:      scene.ID,
			Name:    scene.Name,
			Layouts: make([]ports.LayoutRecord, 0, len(scene.Layouts)),
		}
		for _, l := range scene.Layouts {
			enabled := l.ChromaKeyEnabled
			color := ports.RGBRecord{R: l.ChromaKeyColor.R, G: l.ChromaKeyColor.G, B: l.ChromaKeyColor.B}
			tolerance := l.ChromaKeyTolerance
			rec.Layouts = append(rec.Layouts, ports.LayoutRecord{
				ID:                 l.ID,
				SourceID:           l.SourceID,
				X:                  l.X,
				Y:                  l.Y,
				Width:              l.Width,
				Height:             l.Height,
				ZIndex:             l.ZIndex,
				Opacity:            l.Opacity,
				ChromaKeyEnabled:   &enabled,
				ChromaKeyColor:     &color,
				ChromaKeyTolerance: &tolerance,
			})
		}
		records = append(records, rec)
	}
	return records
}

// fromRecords converts persisted scenes back to the in-memory model,
// applying the documented defaults for absent chroma fields.
func fromRecords(records []ports.SceneRecord) []Scene {
	scenes := make([]Scene, 0, len(records))
	for _, rec := range records {
		scene := Scene{
			ID:      rec.ID,
			Name:    rec.Name,
			Layouts: make([]Layout, 0, len(rec.Layouts)),
		}
		for _, lr := range rec.Layouts {
			l := Layout{
				ID:                 lr.ID,
				SourceID:           lr.SourceID,
				X:                  lr.X,
				Y:                  lr.Y,
				Width:              lr.Width,
				Height:             lr.Height,
				ZIndex:             lr.ZIndex,
				Opacity:            lr.Opacity,
				ChromaKeyEnabled:   false,
				ChromaKeyColor:     defaultChromaColor,
				ChromaKeyTolerance: defaultChromaTolerance,
			}
			if lr.ChromaKeyEnabled != nil {
				l.ChromaKeyEnabled = *lr.ChromaKeyEnabled
			}
			if lr.ChromaKeyColor != nil {
				l.ChromaKeyColor = RGB{R: lr.ChromaKeyColor.R, G: lr.ChromaKeyColor.G, B: lr.ChromaKeyColor.B}
			}
			if lr.ChromaKeyTolerance != nil {
				l.ChromaKeyTolerance = *lr.ChromaKeyTolerance
			}
			scene.Layouts = append(scene.Layouts, l)
		}
		scenes = append(scenes, scene)
	}
	return scenes
}
