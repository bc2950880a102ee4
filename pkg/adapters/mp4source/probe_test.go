package mp4source

import (
	"strings"
	"testing"

	"github.com/Eyevinn/mp4ff/mp4"
)

func fileWithSampleEntry(entryType string) *mp4.File {
	stsd := &mp4.StsdBox{}
	stsd.AddChild(mp4.CreateVisualSampleEntryBox(entryType, 1280, 720, nil))

	trak := &mp4.TrakBox{
		Mdia: &mp4.MdiaBox{
			Hdlr: &mp4.HdlrBox{HandlerType: "vide"},
			Minf: &mp4.MinfBox{Stbl: &mp4.StblBox{Stsd: stsd}},
		},
	}
	moov := &mp4.MoovBox{Traks: []*mp4.TrakBox{trak}}
	return &mp4.File{Moov: moov}
}

func TestProbeCodec_AcceptsMotionJPEG(t *testing.T) {
	for _, entry := range []string{"jpeg", "mjpg", "mp4v"} {
		if err := probeCodec(fileWithSampleEntry(entry)); err != nil {
			t.Errorf("%s: expected acceptance, got %v", entry, err)
		}
	}
}

func TestProbeCodec_RejectsInterCodedCodecsByName(t *testing.T) {
	tests := []struct {
		entry string
		want  string
	}{
		{"avc1", "H.264"},
		{"avc3", "H.264"},
		{"hvc1", "H.265"},
		{"hev1", "H.265"},
		{"av01", "AV1"},
	}
	for _, tt := range tests {
		err := probeCodec(fileWithSampleEntry(tt.entry))
		if err == nil {
			t.Errorf("%s: expected rejection", tt.entry)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: error should name %s, got %v", tt.entry, tt.want, err)
		}
	}
}

func TestProbeCodec_UnknownCodec(t *testing.T) {
	err := probeCodec(fileWithSampleEntry("vp09"))
	if err == nil || !strings.Contains(err.Error(), "vp09") {
		t.Errorf("expected the unknown codec to be named, got %v", err)
	}
}

func TestProbeCodec_NoVideoTrack(t *testing.T) {
	if err := probeCodec(&mp4.File{}); err == nil {
		t.Error("expected an error for a file with no video track")
	}

	// A sound track alone is not a video track.
	trak := &mp4.TrakBox{
		Mdia: &mp4.MdiaBox{Hdlr: &mp4.HdlrBox{HandlerType: "soun"}},
	}
	file := &mp4.File{Moov: &mp4.MoovBox{Traks: []*mp4.TrakBox{trak}}}
	if err := probeCodec(file); err == nil {
		t.Error("expected an error when only audio tracks exist")
	}
}

func TestReadFrames_MissingFile(t *testing.T) {
	r := New()
	if _, err := r.ReadFrames("/nonexistent/clip.mp4"); err == nil {
		t.Error("expected an error for a missing file")
	}
}
