package processor

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/linuxmatters/jivecroon/internal/audio"
)

// makeTone synthesises seconds of a pure sine at freq.
func makeTone(sampleRate int, freq, amp, seconds float64) []float64 {
	n := int(seconds * float64(sampleRate))
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return samples
}

// makeVibratoTone synthesises a tone whose frequency swings between
// loHz and hiHz at rateHz, the shape of a sung note with vibrato.
func makeVibratoTone(sampleRate int, loHz, hiHz, rateHz, amp, seconds float64) []float64 {
	n := int(seconds * float64(sampleRate))
	centre := (loHz + hiHz) / 2
	swing := (hiHz - loHz) / 2

	samples := make([]float64, n)
	phase := 0.0
	for i := range samples {
		t := float64(i) / float64(sampleRate)
		freq := centre + swing*math.Sin(2*math.Pi*rateHz*t)
		phase += 2 * math.Pi * freq / float64(sampleRate)
		samples[i] = amp * math.Sin(phase)
	}
	return samples
}

// writeTakeWAV writes mono 16-bit PCM to a temporary WAV file.
func writeTakeWAV(t *testing.T, sampleRate int, samples []float64) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "take.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test WAV: %v", err)
	}
	defer f.Close()

	data := make([]int, len(samples))
	for i, v := range samples {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		data[i] = int(math.Round(v * 32767))
	}

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("failed to write test WAV: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("failed to close test WAV: %v", err)
	}
	return path
}

// toneBuffer wraps a synthesised tone in a SampleBuffer without going
// through a file on disk.
func toneBuffer(sampleRate int, samples []float64) *audio.SampleBuffer {
	out := make([]float32, len(samples))
	for i, v := range samples {
		out[i] = float32(v)
	}
	return &audio.SampleBuffer{Samples: out, SampleRate: sampleRate}
}

// meanCalibrator is a stand-in final-score policy for tests: the plain
// average of the four sub-metrics.
func meanCalibrator(raw RawMetrics) CalibratedMetrics {
	final := (raw.PitchAccuracy + raw.VibratoControl + raw.Stability + raw.Expression) / 4
	return CalibratedMetrics{RawMetrics: raw, FinalScore: final}
}
