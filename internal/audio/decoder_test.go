package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// writeWAV writes interleaved 16-bit PCM to a temporary WAV file and
// returns its path. channels samples are taken per frame from each of
// the per-channel slices.
func writeWAV(t *testing.T, sampleRate int, channels [][]float64) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "take.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test WAV: %v", err)
	}
	defer f.Close()

	numChannels := len(channels)
	frames := len(channels[0])
	data := make([]int, 0, frames*numChannels)
	for i := 0; i < frames; i++ {
		for c := 0; c < numChannels; c++ {
			v := channels[c][i]
			if v > 1 {
				v = 1
			} else if v < -1 {
				v = -1
			}
			data = append(data, int(math.Round(v*32767)))
		}
	}

	enc := wav.NewEncoder(f, sampleRate, 16, numChannels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: numChannels, SampleRate: sampleRate},
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

func constSamples(value float64, n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = value
	}
	return s
}

func TestProbeWAV(t *testing.T) {
	const sampleRate = 44100
	path := writeWAV(t, sampleRate, [][]float64{constSamples(0.25, sampleRate * 2)})

	info, err := Probe(path)
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if info.SampleRate != sampleRate {
		t.Errorf("SampleRate = %d, want %d", info.SampleRate, sampleRate)
	}
	if info.Channels != 1 {
		t.Errorf("Channels = %d, want 1", info.Channels)
	}
	if math.Abs(info.Duration-2.0) > 0.01 {
		t.Errorf("Duration = %.3f, want ~2.0", info.Duration)
	}
}

func TestProbeUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "take.xyz")
	if err := os.WriteFile(path, []byte("not audio"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Probe(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Probe error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestProbeMissingFile(t *testing.T) {
	if _, err := Probe(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestLoadMonoPassthrough(t *testing.T) {
	const sampleRate = 8000
	src := make([]float64, sampleRate)
	for i := range src {
		src[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/sampleRate)
	}
	path := writeWAV(t, sampleRate, [][]float64{src})

	buf, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if buf.SampleRate != sampleRate {
		t.Errorf("SampleRate = %d, want %d", buf.SampleRate, sampleRate)
	}
	if len(buf.Samples) != len(src) {
		t.Fatalf("sample count = %d, want %d", len(buf.Samples), len(src))
	}
	// 16-bit quantisation allows ~1/32767 of error per sample.
	for i := 0; i < len(src); i += 997 {
		if diff := math.Abs(float64(buf.Samples[i]) - src[i]); diff > 0.001 {
			t.Fatalf("sample %d = %f, want %f", i, buf.Samples[i], src[i])
		}
	}
}

func TestLoadStereoMeanDownmix(t *testing.T) {
	const sampleRate = 8000
	const n = sampleRate / 2

	tests := []struct {
		name     string
		left     float64
		right    float64
		wantMono float64
	}{
		{"opposite channels cancel", 0.5, -0.5, 0.0},
		{"equal channels pass through", 0.25, 0.25, 0.25},
		{"mean not peak", 0.8, 0.2, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeWAV(t, sampleRate, [][]float64{
				constSamples(tt.left, n),
				constSamples(tt.right, n),
			})

			buf, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if len(buf.Samples) != n {
				t.Fatalf("sample count = %d, want %d", len(buf.Samples), n)
			}
			mid := float64(buf.Samples[n/2])
			if math.Abs(mid-tt.wantMono) > 0.001 {
				t.Errorf("downmixed sample = %f, want %f", mid, tt.wantMono)
			}
		})
	}
}

func TestSampleBufferDuration(t *testing.T) {
	tests := []struct {
		name string
		buf  SampleBuffer
		want float64
	}{
		{"one second", SampleBuffer{Samples: make([]float32, 44100), SampleRate: 44100}, 1.0},
		{"empty", SampleBuffer{SampleRate: 44100}, 0},
		{"degenerate rate", SampleBuffer{Samples: make([]float32, 100), SampleRate: 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.buf.Duration(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Duration() = %f, want %f", got, tt.want)
			}
		})
	}
}
