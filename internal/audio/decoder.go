// Package audio provides audio file probing and decoding into mono
// sample buffers. WAV files are decoded natively; MP3, FLAC and Ogg
// Vorbis go through the beep decoders.
package audio

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidDuration indicates the container reported a missing,
	// non-finite or non-positive duration.
	ErrInvalidDuration = errors.New("container duration missing or invalid")

	// ErrUnsupportedFormat indicates the file extension maps to no known
	// decoder.
	ErrUnsupportedFormat = errors.New("unsupported container format")
)

// Info contains container metadata gathered without a full decode.
type Info struct {
	Duration   float64 // seconds
	SampleRate int
	Channels   int
}

// Probe reads container metadata only. It is the cheap pre-decode check:
// duration gating happens on its result before any PCM is read.
func Probe(path string) (*Info, error) {
	var (
		info *Info
		err  error
	)
	switch containerFor(path) {
	case containerWAV:
		info, err = probeWAV(path)
	case containerBeep:
		info, err = probeBeep(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	if math.IsNaN(info.Duration) || math.IsInf(info.Duration, 0) || info.Duration <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDuration, path)
	}
	return info, nil
}

// Load fully decodes the file into a mono SampleBuffer at the file's
// native sample rate. Multi-channel audio is downmixed by taking the
// arithmetic mean of all channel samples at each frame; a mono source
// passes through unchanged (the mean of one value).
func Load(path string) (*SampleBuffer, error) {
	switch containerFor(path) {
	case containerWAV:
		return loadWAV(path)
	case containerBeep:
		return loadBeep(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

type containerKind int

const (
	containerUnknown containerKind = iota
	containerWAV
	containerBeep
)

func containerFor(path string) containerKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return containerWAV
	case ".mp3", ".flac", ".ogg", ".oga":
		return containerBeep
	default:
		return containerUnknown
	}
}
