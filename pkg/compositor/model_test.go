package compositor

import "testing"

func TestSourceKind_IDPrefixes(t *testing.T) {
	tests := []struct {
		kind SourceKind
		want string
	}{
		{KindScreen, "screen"},
		{KindCamera, "camera"},
		{KindFile, "video"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("expected %s, got %s", tt.want, got)
		}
	}
}

func TestNewFileVariant_Defaults(t *testing.T) {
	v := NewFileVariant("/media/clip.mp4")
	if !v.Loop {
		t.Error("file sources loop by default")
	}
	if v.Volume != 1.0 {
		t.Errorf("expected volume 1.0, got %f", v.Volume)
	}
	if v.Muted {
		t.Error("file sources are not muted by default")
	}
}

func TestLayout_Drawable(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		expect bool
	}{
		{"positive area", 640, 360, true},
		{"zero width", 0, 360, false},
		{"zero height", 640, 0, false},
		{"negative width", -1, 360, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Layout{Width: tt.w, Height: tt.h}
			if l.Drawable() != tt.expect {
				t.Errorf("expected %v", tt.expect)
			}
		})
	}
}
