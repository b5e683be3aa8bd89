package processor

import (
	"path/filepath"
	"testing"
)

func TestPipelineAnalyzeSteadyTone(t *testing.T) {
	const sampleRate = 44100
	path := writeTakeWAV(t, sampleRate, makeTone(sampleRate, 440, 0.5, 5.0))

	result := New(meanCalibrator).Analyze(path)
	if result.Kind() != KindAnalyzed {
		code, message := result.ErrorInfo()
		t.Fatalf("Kind() = %q (%s: %s), want analyzed", result.Kind(), code, message)
	}

	m, _ := result.Metrics()
	if m.PitchAccuracy < 90 {
		t.Errorf("PitchAccuracy = %d, want >= 90 for a pure A4", m.PitchAccuracy)
	}
	if m.Stability <= 80 {
		t.Errorf("Stability = %d, want > 80 for a steady tone", m.Stability)
	}
	if m.VibratoControl >= 20 {
		t.Errorf("VibratoControl = %d, want < 20 without vibrato", m.VibratoControl)
	}
	if m.Expression >= 20 {
		t.Errorf("Expression = %d, want < 20 for flat dynamics", m.Expression)
	}
	if m.Duration < 4.9 || m.Duration > 5.1 {
		t.Errorf("Duration = %.2f, want ~5.0", m.Duration)
	}
	wantFinal := (m.PitchAccuracy + m.VibratoControl + m.Stability + m.Expression) / 4
	if m.FinalScore != wantFinal {
		t.Errorf("FinalScore = %d, want %d from the calibrator", m.FinalScore, wantFinal)
	}
}

func TestPipelineAnalyzeVibratoTone(t *testing.T) {
	const sampleRate = 44100
	path := writeTakeWAV(t, sampleRate, makeVibratoTone(sampleRate, 430, 450, 5.5, 0.5, 4.0))

	result := New(meanCalibrator).Analyze(path)
	if result.Kind() != KindAnalyzed {
		code, message := result.ErrorInfo()
		t.Fatalf("Kind() = %q (%s: %s), want analyzed", result.Kind(), code, message)
	}

	m, _ := result.Metrics()
	if m.VibratoControl < 60 {
		t.Errorf("VibratoControl = %d, want >= 60 for a 5.5Hz vibrato", m.VibratoControl)
	}
}

func TestPipelineAnalyzeTooShort(t *testing.T) {
	const sampleRate = 44100
	path := writeTakeWAV(t, sampleRate, makeTone(sampleRate, 440, 0.5, 2.0))

	result := New(meanCalibrator).Analyze(path)
	if result.Kind() != KindTooShort {
		t.Fatalf("Kind() = %q, want too_short", result.Kind())
	}
	if got := result.MinimumSeconds(); got != MinTakeSeconds {
		t.Errorf("MinimumSeconds() = %d, want %d", got, MinTakeSeconds)
	}
}

func TestPipelineAnalyzeInsufficientVoicing(t *testing.T) {
	// One LSB of dither: long enough to pass the duration gate but with
	// every frame below the voicing energy floor.
	const sampleRate = 44100
	samples := make([]float64, 4*sampleRate)
	for i := range samples {
		if i%2 == 0 {
			samples[i] = 1.0 / 32767
		} else {
			samples[i] = -1.0 / 32767
		}
	}
	path := writeTakeWAV(t, sampleRate, samples)

	result := New(meanCalibrator).Analyze(path)
	if result.Kind() != KindError {
		t.Fatalf("Kind() = %q, want error", result.Kind())
	}
	if code, _ := result.ErrorInfo(); code != CodeInsufficientVoicing {
		t.Errorf("error code = %q, want %q", code, CodeInsufficientVoicing)
	}
}

func TestPipelineAnalyzeMissingFile(t *testing.T) {
	result := New(meanCalibrator).Analyze(filepath.Join(t.TempDir(), "missing.wav"))
	if result.Kind() != KindError {
		t.Fatalf("Kind() = %q, want error", result.Kind())
	}
	if code, _ := result.ErrorInfo(); code != CodeReadFailed {
		t.Errorf("error code = %q, want %q", code, CodeReadFailed)
	}
}

func TestPipelineAnalyzeUnsupportedFormat(t *testing.T) {
	result := New(meanCalibrator).Analyze(filepath.Join(t.TempDir(), "take.xyz"))
	if result.Kind() != KindError {
		t.Fatalf("Kind() = %q, want error", result.Kind())
	}
	if code, _ := result.ErrorInfo(); code != CodeReadFailed {
		t.Errorf("error code = %q, want %q", code, CodeReadFailed)
	}
}

func TestPipelineGo(t *testing.T) {
	const sampleRate = 44100
	path := writeTakeWAV(t, sampleRate, makeTone(sampleRate, 440, 0.5, 4.0))

	result := <-New(meanCalibrator).Go(path)
	if result.Kind() != KindAnalyzed {
		t.Fatalf("Kind() = %q, want analyzed", result.Kind())
	}
}
