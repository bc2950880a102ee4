// Package mp4source decodes MJPEG-in-MP4 files into frame sequences.
//
// File sources are short loops encoded as fragmented MP4 with a Motion
// JPEG video track, so every sample is a standalone JPEG image and no
// stateful codec is needed. Progressive MP4 and inter-coded codecs are
// rejected up front with a descriptive error.
package mp4source

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"io"
	"os"
	"sort"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/scenemix/pkg/ports"
)

// Reader implements ports.FileReader for MJPEG MP4 files.
type Reader struct{}

// New creates a new Reader.
func New() *Reader {
	return &Reader{}
}

// ReadFrames reads and decodes all frames from an MP4 file.
func (r *Reader) ReadFrames(path string) ([]ports.FileFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return r.ReadFramesFromReader(f)
}

// ReadFramesFromReader reads and decodes all frames from an io.ReadSeeker.
func (r *Reader) ReadFramesFromReader(reader io.ReadSeeker) ([]ports.FileFrame, error) {
	mp4File, err := mp4.DecodeFile(reader)
	if err != nil {
		return nil, fmt.Errorf("decode mp4: %w", err)
	}

	if err := probeCodec(mp4File); err != nil {
		return nil, err
	}

	if !mp4File.IsFragmented() {
		return nil, fmt.Errorf("progressive MP4 not supported, re-mux as fragmented MJPEG MP4")
	}

	frames, err := readFragmented(mp4File)
	if err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("no decodable frames found")
	}

	// Presentation order by timestamp; ties keep decode order.
	sort.SliceStable(frames, func(i, j int) bool {
		return frames[i].TimestampMs < frames[j].TimestampMs
	})
	return frames, nil
}

func readFragmented(mp4File *mp4.File) ([]ports.FileFrame, error) {
	videoTrackID, timescale, trex := findVideoTrack(mp4File)
	if videoTrackID == 0 {
		return nil, fmt.Errorf("no video track found")
	}

	var frames []ports.FileFrame
	for _, seg := range mp4File.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}

			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd.TrackID != videoTrackID {
					continue
				}

				var baseDecodeTime uint64
				if traf.Tfdt != nil {
					baseDecodeTime = traf.Tfdt.BaseMediaDecodeTime()
				}

				samples, err := frag.GetFullSamples(trex)
				if err != nil {
					return nil, fmt.Errorf("get samples: %w", err)
				}

				currentTime := baseDecodeTime
				for _, sample := range samples {
					img, err := jpeg.Decode(bytes.NewReader(sample.Data))
					if err != nil {
						// Undecodable samples are skipped, their duration still counts.
						currentTime += uint64(sample.Dur)
						continue
					}

					frames = append(frames, ports.FileFrame{
						Image:       img,
						TimestampMs: int(currentTime * 1000 / uint64(timescale)),
						DurationMs:  int(uint64(sample.Dur) * 1000 / uint64(timescale)),
					})
					currentTime += uint64(sample.Dur)
				}
			}
		}
	}

	return frames, nil
}

// findVideoTrack returns the first "vide" track, its timescale, and the
// matching trex box for fragmented sample defaults.
func findVideoTrack(mp4File *mp4.File) (trackID uint32, timescale uint32, trex *mp4.TrexBox) {
	timescale = 1000
	if mp4File.Init == nil || mp4File.Init.Moov == nil {
		return 0, timescale, nil
	}

	for _, trak := range mp4File.Init.Moov.Traks {
		if trak.Mdia != nil && trak.Mdia.Hdlr != nil && trak.Mdia.Hdlr.HandlerType == "vide" {
			trackID = trak.Tkhd.TrackID
			if trak.Mdia.Mdhd != nil {
				timescale = trak.Mdia.Mdhd.Timescale
			}
			break
		}
	}

	if mp4File.Init.Moov.Mvex != nil {
		for _, t := range mp4File.Init.Moov.Mvex.Trexs {
			if t.TrackID == trackID {
				trex = t
				break
			}
		}
	}
	return trackID, timescale, trex
}

var _ ports.FileReader = (*Reader)(nil)
