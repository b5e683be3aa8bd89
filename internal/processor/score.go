package processor

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Scoring targets. Rate and depth centres match the vibrato of trained
// singers; the contrast centre matches a well-shaped dynamic arc.
const (
	// Pitch accuracy: average cents error mapping. 0 cents scores 100,
	// 50 or more scores 0.
	maxCentsError     = 50.0
	centsErrorCeiling = 1000.0

	// Vibrato rate and depth Gaussian targets.
	vibratoRateTargetHz  = 5.5
	vibratoRateSigma     = 1.0
	vibratoDepthTargetSt = 0.8
	vibratoDepthSigma    = 0.5
	vibratoTrendFrames   = 9

	// Weighting between vibrato rate and depth.
	vibratoRateWeight  = 0.6
	vibratoDepthWeight = 0.4

	// Stability: jitter and envelope decay rates plus mix weights.
	jitterDecay           = 8.0
	envelopeDecay         = 6.0
	jitterWeight          = 0.65
	envelopeWeight        = 0.35
	minVoicedForStability = 5

	// Expression: envelope contrast Gaussian target.
	contrastTarget = 0.25
	contrastSigma  = 0.12
)

// ScorePitchAccuracy measures how close each voiced frame sits to the
// nearest 12-TET semitone, in cents, and maps the average error onto
// [0,100]. Zero voiced frames score 0.
func ScorePitchAccuracy(s *FeatureSeries) int {
	var total float64
	voiced := 0
	for _, f0 := range s.F0Hz {
		if f0 <= 0 {
			continue
		}
		midi := midiNote(f0)
		cents := math.Abs(midi-math.Round(midi)) * 100
		if cents > centsErrorCeiling {
			cents = centsErrorCeiling
		}
		total += cents
		voiced++
	}
	if voiced == 0 {
		return 0
	}

	avg := total / float64(voiced)
	if avg > maxCentsError {
		avg = maxCentsError
	}
	return clampScore((maxCentsError - avg) * 2)
}

// ScoreVibratoControl estimates vibrato rate and depth from the
// detrended semitone series and scores each against its target.
//
// Unvoiced frames map to semitone value 0, which is a discontinuity next
// to real pitch values whenever voicing toggles. This is a known quirk
// kept deliberately: the scores depend on it.
func ScoreVibratoControl(s *FeatureSeries) int {
	n := len(s.F0Hz)
	if n == 0 || s.HopSeconds <= 0 {
		return 0
	}

	semis := make([]float64, n)
	for i, f0 := range s.F0Hz {
		if f0 > 0 {
			semis[i] = midiNote(f0)
		}
	}

	// Detrend with a trailing moving average so slow pitch drift does not
	// register as vibrato. The window shrinks at the start of the take.
	detrended := make([]float64, n)
	for i := range semis {
		start := i - vibratoTrendFrames + 1
		if start < 0 {
			start = 0
		}
		detrended[i] = semis[i] - stat.Mean(semis[start:i+1], nil)
	}

	// One full vibrato cycle produces two zero crossings.
	crossings := 0
	for i := 1; i < n; i++ {
		if detrended[i-1]*detrended[i] < 0 {
			crossings++
		}
	}
	frameRate := 1 / s.HopSeconds
	rateHz := float64(crossings) / float64(n) * frameRate / 2

	// 2.8× RMS approximates peak-to-peak depth from the RMS amplitude.
	var sq float64
	for _, v := range detrended {
		sq += v * v
	}
	depthSt := 2.8 * math.Sqrt(sq/float64(n))

	rateScore := gaussianScore(rateHz, vibratoRateTargetHz, vibratoRateSigma)
	depthScore := gaussianScore(depthSt, vibratoDepthTargetSt, vibratoDepthSigma)
	return clampScore(vibratoRateWeight*rateScore + vibratoDepthWeight*depthScore)
}

// ScoreStability combines pitch jitter across consecutive voiced frames
// with the steadiness of the RMS envelope. Fewer than five voiced frames
// score 0 regardless of the envelope.
func ScoreStability(s *FeatureSeries) int {
	var voiced []float64
	for _, f0 := range s.F0Hz {
		if f0 > 0 {
			voiced = append(voiced, f0)
		}
	}
	if len(voiced) < minVoicedForStability {
		return 0
	}

	var diffSum float64
	for i := 1; i < len(voiced); i++ {
		diffSum += math.Abs(voiced[i] - voiced[i-1])
	}
	jitter := diffSum / float64(len(voiced)-1) / stat.Mean(voiced, nil)
	jitterScore := 100 * math.Exp(-jitterDecay*jitter)

	envelopeScore := 100 * math.Exp(-envelopeDecay*stat.PopStdDev(s.RMS, nil))

	return clampScore(jitterWeight*jitterScore + envelopeWeight*envelopeScore)
}

// ScoreExpression measures dynamic contrast: the population spread of
// the RMS envelope relative to its maximum, scored against a target
// contrast. An empty or silent envelope scores 0.
func ScoreExpression(s *FeatureSeries) int {
	if len(s.RMS) == 0 {
		return 0
	}
	peak := 0.0
	for _, v := range s.RMS {
		if v > peak {
			peak = v
		}
	}
	if peak <= 0 {
		return 0
	}

	contrast := stat.PopStdDev(s.RMS, nil) / peak
	return clampScore(gaussianScore(contrast, contrastTarget, contrastSigma))
}

// midiNote converts a frequency to a fractional MIDI note number.
func midiNote(f0 float64) float64 {
	return 69 + 12*math.Log2(f0/440)
}

// gaussianScore maps distance from a target onto [0,100].
func gaussianScore(x, target, sigma float64) float64 {
	z := (x - target) / sigma
	return math.Exp(-0.5*z*z) * 100
}

// clampScore rounds to the nearest integer and clamps to [0,100].
func clampScore(v float64) int {
	n := int(math.Round(v))
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
