package mp4source

import (
	"fmt"

	"github.com/Eyevinn/mp4ff/mp4"
)

// probeCodec checks that the file's video track carries Motion JPEG.
// Inter-coded codecs need a real decoder and are reported by name so the
// user knows what to re-mux.
func probeCodec(mp4File *mp4.File) error {
	entry := sampleEntryType(mp4File)
	switch entry {
	case "jpeg", "mjpg", "mp4v":
		// mp4v carries MJPEG for the muxers we care about; a wrong
		// object type surfaces later as per-sample decode skips.
		return nil
	case "avc1", "avc3":
		return fmt.Errorf("H.264 track not supported, re-mux as MJPEG")
	case "hvc1", "hev1":
		return fmt.Errorf("H.265 track not supported, re-mux as MJPEG")
	case "av01":
		return fmt.Errorf("AV1 track not supported, re-mux as MJPEG")
	case "":
		return fmt.Errorf("no video track found")
	default:
		return fmt.Errorf("unsupported video codec %q, re-mux as MJPEG", entry)
	}
}

// sampleEntryType returns the sample description type of the first video
// track, checking both fragmented and progressive moov locations.
func sampleEntryType(mp4File *mp4.File) string {
	moovs := []*mp4.MoovBox{}
	if mp4File.Init != nil && mp4File.Init.Moov != nil {
		moovs = append(moovs, mp4File.Init.Moov)
	}
	if mp4File.Moov != nil {
		moovs = append(moovs, mp4File.Moov)
	}

	for _, moov := range moovs {
		for _, trak := range moov.Traks {
			if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
				continue
			}
			if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
				continue
			}
			for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
				return child.Type()
			}
		}
	}
	return ""
}
