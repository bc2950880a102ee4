package compositor

import (
	"testing"

	"github.com/user/scenemix/pkg/ports"
)

func TestPersist_RoundTrip(t *testing.T) {
	scenes := []Scene{
		{
			ID:   "scene-1",
			Name: "Main",
			Layouts: []Layout{
				{
					ID:                 "layout-1",
					SourceID:           "video-1",
					X:                  100,
					Y:                  50,
					Width:              640,
					Height:             360,
					ZIndex:             2,
					Opacity:            0.8,
					ChromaKeyEnabled:   true,
					ChromaKeyColor:     RGB{R: 10, G: 200, B: 30},
					ChromaKeyTolerance: 90,
				},
			},
		},
		{ID: "scene-2", Name: "Empty", Layouts: []Layout{}},
	}

	got := fromRecords(toRecords(scenes))

	if len(got) != 2 {
		t.Fatalf("expected 2 scenes, got %d", len(got))
	}
	if got[0].ID != "scene-1" || got[0].Name != "Main" {
		t.Errorf("scene identity lost: %+v", got[0])
	}
	if len(got[0].Layouts) != 1 {
		t.Fatalf("expected 1 layout, got %d", len(got[0].Layouts))
	}
	l := got[0].Layouts[0]
	if l != scenes[0].Layouts[0] {
		t.Errorf("layout changed in round trip:\n  before %+v\n  after  %+v", scenes[0].Layouts[0], l)
	}
}

func TestPersist_AbsentChromaFieldsGetDefaults(t *testing.T) {
	records := []ports.SceneRecord{
		{
			ID:   "scene-1",
			Name: "Main",
			Layouts: []ports.LayoutRecord{
				{ID: "layout-1", SourceID: "video-1", X: 1, Y: 2, Width: 3, Height: 4, ZIndex: 5, Opacity: 1},
			},
		},
	}

	scenes := fromRecords(records)

	l := scenes[0].Layouts[0]
	if l.ChromaKeyEnabled {
		t.Error("absent chromaKeyEnabled must default to false")
	}
	if l.ChromaKeyColor != (RGB{R: 0, G: 255, B: 0}) {
		t.Errorf("absent chromaKeyColor must default to green, got %+v", l.ChromaKeyColor)
	}
	if l.ChromaKeyTolerance != 120 {
		t.Errorf("absent chromaKeyTolerance must default to 120, got %f", l.ChromaKeyTolerance)
	}
}

func TestPersist_RecordsCarryChromaFieldsExplicitly(t *testing.T) {
	scenes := []Scene{
		{ID: "scene-1", Layouts: []Layout{{ID: "layout-1", SourceID: "video-1", Width: 1, Height: 1, Opacity: 1}}},
	}

	records := toRecords(scenes)

	lr := records[0].Layouts[0]
	if lr.ChromaKeyEnabled == nil || lr.ChromaKeyColor == nil || lr.ChromaKeyTolerance == nil {
		t.Error("persisted layouts carry chroma fields explicitly")
	}
	if *lr.ChromaKeyEnabled {
		t.Error("chroma disabled in the model must persist as false")
	}
}
