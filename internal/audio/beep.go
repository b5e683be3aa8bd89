package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
)

// openBeep opens a compressed take with the matching beep decoder. The
// returned streamer owns the file handle; Close releases both.
func openBeep(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("failed to open input file: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	case ".ogg", ".oga":
		streamer, format, err = vorbis.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("failed to open decoder: %w", err)
	}
	return streamer, format, nil
}

// probeBeep opens the decoder for its metadata but reads no samples.
func probeBeep(path string) (*Info, error) {
	streamer, format, err := openBeep(path)
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	length := streamer.Len()
	if format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDuration, path)
	}

	return &Info{
		Duration:   float64(length) / float64(format.SampleRate),
		SampleRate: int(format.SampleRate),
		Channels:   format.NumChannels,
	}, nil
}

// loadBeep streams the whole take, downmixing stereo to mono by mean.
// beep surfaces every source as a two-channel stream; mono sources carry
// the same sample in both slots, so the left slot is the plain copy case.
func loadBeep(path string) (*SampleBuffer, error) {
	streamer, format, err := openBeep(path)
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	capacity := streamer.Len()
	if capacity < 0 {
		capacity = 0
	}
	mono := make([]float32, 0, capacity)

	var chunk [512][2]float64
	for {
		n, ok := streamer.Stream(chunk[:])
		for i := 0; i < n; i++ {
			if format.NumChannels == 1 {
				mono = append(mono, float32(chunk[i][0]))
			} else {
				mono = append(mono, float32((chunk[i][0]+chunk[i][1])/2))
			}
		}
		if !ok {
			break
		}
	}
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("failed to decode stream: %w", err)
	}

	return &SampleBuffer{
		Samples:    mono,
		SampleRate: int(format.SampleRate),
	}, nil
}
