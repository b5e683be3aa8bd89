// Package processor analyses a decoded vocal take: framing, per-frame
// feature extraction, sub-metric scoring and pipeline orchestration.
package processor

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/dsp/window"
)

// Analysis window geometry. ~46.4ms frames with a 10ms hop give enough
// overlap for smooth pitch tracking across sung phrases.
const (
	frameSeconds = 0.0464
	hopSeconds   = 0.010
)

// ErrBadParameters indicates a degenerate sample rate produced a
// non-positive frame or hop length.
var ErrBadParameters = errors.New("frame and hop lengths must be positive")

// Framer slices a sample buffer into fixed-length overlapping frames.
// The Hann coefficients depend only on the frame length, so they are
// computed once at construction and shared by every frame.
type Framer struct {
	sampleRate int
	frameLen   int
	hopLen     int
	hann       []float64
}

// NewFramer derives frame and hop lengths from the sample rate.
func NewFramer(sampleRate int) (*Framer, error) {
	frameLen := int(math.Round(float64(sampleRate) * frameSeconds))
	hopLen := int(math.Round(float64(sampleRate) * hopSeconds))
	if frameLen <= 0 || hopLen <= 0 {
		return nil, ErrBadParameters
	}

	hann := make([]float64, frameLen)
	for i := range hann {
		hann[i] = 1
	}
	window.Hann(hann)

	return &Framer{
		sampleRate: sampleRate,
		frameLen:   frameLen,
		hopLen:     hopLen,
		hann:       hann,
	}, nil
}

// FrameLen returns the frame length in samples.
func (f *Framer) FrameLen() int { return f.frameLen }

// HopLen returns the hop length in samples.
func (f *Framer) HopLen() int { return f.hopLen }

// HopSeconds returns the hop length in seconds.
func (f *Framer) HopSeconds() float64 {
	return float64(f.hopLen) / float64(f.sampleRate)
}

// FrameCount returns how many full frames fit in n samples. The trailing
// partial frame is dropped, not zero-padded.
func (f *Framer) FrameCount(n int) int {
	if n < f.frameLen {
		return 0
	}
	return (n-f.frameLen)/f.hopLen + 1
}

// Frame returns the i'th raw (unwindowed) frame as a subslice of
// samples. The caller must not mutate it.
func (f *Framer) Frame(samples []float32, i int) []float32 {
	offset := i * f.hopLen
	return samples[offset : offset+f.frameLen]
}

// Windowed writes the Hann-windowed frame into dst, which must have
// length FrameLen.
func (f *Framer) Windowed(dst []float64, frame []float32) {
	for i, s := range frame {
		dst[i] = float64(s) * f.hann[i]
	}
}
