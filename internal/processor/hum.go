package processor

import (
	"math"

	"github.com/linuxmatters/jivecroon/internal/audio"
)

// Hum detection examines at most the first ten seconds of a take and
// flags it when the mains fundamental and its first harmonic together
// hold more than a tenth of the signal energy.
const (
	humAnalysisSeconds = 10.0
	humRatioThreshold  = 0.10
)

// HumReport describes how much mains interference a take carries.
type HumReport struct {
	MainsHz  int
	Ratio    float64
	Detected bool
}

// DetectHum measures the energy at mainsHz and its first harmonic
// relative to the total energy of the analysed span. Goertzel evaluates
// just the two bins needed, so no FFT of the whole take is required.
func DetectHum(buf *audio.SampleBuffer, mainsHz int) HumReport {
	report := HumReport{MainsHz: mainsHz}
	if buf.SampleRate <= 0 || mainsHz <= 0 {
		return report
	}

	n := len(buf.Samples)
	if limit := int(humAnalysisSeconds * float64(buf.SampleRate)); n > limit {
		n = limit
	}
	if n == 0 {
		return report
	}
	span := buf.Samples[:n]

	var total float64
	for _, s := range span {
		v := float64(s)
		total += v * v
	}
	if total <= 0 {
		return report
	}

	hum := goertzelPower(span, buf.SampleRate, float64(mainsHz)) +
		goertzelPower(span, buf.SampleRate, float64(2*mainsHz))

	// The factor 2 accounts for the energy in the negative-frequency
	// bin, so a pure mains tone reports a ratio near 1.
	report.Ratio = 2 * hum / total
	report.Detected = report.Ratio > humRatioThreshold
	return report
}

// goertzelPower returns the squared magnitude of the DFT bin nearest
// freq, normalised by the span length.
func goertzelPower(samples []float32, sampleRate int, freq float64) float64 {
	n := len(samples)
	k := math.Round(float64(n) * freq / float64(sampleRate))
	w := 2 * math.Pi * k / float64(n)
	coeff := 2 * math.Cos(w)

	var s0, s1, s2 float64
	for _, sample := range samples {
		s0 = float64(sample) + coeff*s1 - s2
		s2 = s1
		s1 = s0
	}
	return (s1*s1 + s2*s2 - coeff*s1*s2) / float64(n)
}
