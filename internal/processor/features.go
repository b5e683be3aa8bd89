package processor

import (
	"math"

	"github.com/linuxmatters/jivecroon/internal/audio"
)

// Pitch search range. Covers low bass through high soprano; anything
// outside is treated as unvoiced rather than clamped.
const (
	minPitchHz = 80.0
	maxPitchHz = 1000.0
)

// energyFloor is the minimum sum of squared windowed samples for a frame
// to enter the pitch search at all. Frames below it are silence or noise
// and emit F0 = 0 directly.
const energyFloor = 1e-6

// FeatureSeries holds the per-frame features for one take. RMS and F0Hz
// are parallel series of identical length, indexed by frame number.
// An F0Hz value of 0 means unvoiced, not a frequency.
type FeatureSeries struct {
	RMS        []float64
	F0Hz       []float64
	HopSeconds float64
}

// VoicedFrames counts frames with a detected pitch.
func (s *FeatureSeries) VoicedFrames() int {
	count := 0
	for _, f0 := range s.F0Hz {
		if f0 > 0 {
			count++
		}
	}
	return count
}

// VoicedSeconds converts the voiced frame count to seconds of material.
func (s *FeatureSeries) VoicedSeconds() float64 {
	return float64(s.VoicedFrames()) * s.HopSeconds
}

// ExtractFeatures computes the per-frame RMS and F0 series for a decoded
// take. RMS is measured on the raw frame; the Hann window applies to the
// pitch estimate only.
func ExtractFeatures(buf *audio.SampleBuffer) (*FeatureSeries, error) {
	framer, err := NewFramer(buf.SampleRate)
	if err != nil {
		return nil, err
	}

	n := framer.FrameCount(len(buf.Samples))
	series := &FeatureSeries{
		RMS:        make([]float64, n),
		F0Hz:       make([]float64, n),
		HopSeconds: framer.HopSeconds(),
	}

	windowed := make([]float64, framer.FrameLen())
	for i := 0; i < n; i++ {
		frame := framer.Frame(buf.Samples, i)
		series.RMS[i] = frameRMS(frame)
		framer.Windowed(windowed, frame)
		series.F0Hz[i] = estimateF0(windowed, buf.SampleRate)
	}
	return series, nil
}

// frameRMS is the root-mean-square of the raw frame samples.
func frameRMS(frame []float32) float64 {
	if len(frame) == 0 {
		return 0
	}
	var sum float64
	for _, s := range frame {
		v := float64(s)
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(frame)))
}

// estimateF0 runs an unnormalised autocorrelation pitch search over one
// windowed frame. The naive O(frameLen × lagRange) loop is deliberate:
// frames are tens of milliseconds, and the selection rule (maximum
// positive correlation within the 80–1000Hz lag gate, lowest lag winning
// ties so the lowest frequency is preferred) stays exact without an FFT
// round-trip.
func estimateF0(windowed []float64, sampleRate int) float64 {
	var energy float64
	for _, v := range windowed {
		energy += v * v
	}
	if energy < energyFloor {
		return 0
	}

	minLag := int(float64(sampleRate) / maxPitchHz)
	if minLag < 1 {
		minLag = 1
	}
	maxLag := int(float64(sampleRate) / minPitchHz)
	if maxLag > len(windowed)-1 {
		maxLag = len(windowed) - 1
	}

	bestLag := 0
	bestSum := 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		var sum float64
		for k := 0; k+lag < len(windowed); k++ {
			sum += windowed[k] * windowed[k+lag]
		}
		// Strict > keeps the first (lowest) lag on ties.
		if sum > 0 && sum > bestSum {
			bestSum = sum
			bestLag = lag
		}
	}
	if bestLag == 0 {
		return 0
	}

	f0 := float64(sampleRate) / float64(bestLag)
	if math.IsNaN(f0) || math.IsInf(f0, 0) || f0 <= 0 {
		return 0
	}
	return f0
}
