package processor

// RawMetrics is the pipeline's output before calibration: the four
// sub-metric scores in [0,100] plus the take duration. ErrorMessage is
// populated only when a partial analysis still produced metrics worth
// keeping alongside a warning.
type RawMetrics struct {
	PitchAccuracy  int     `json:"pitchAccuracy"`
	VibratoControl int     `json:"vibratoControl"`
	Stability      int     `json:"stability"`
	Expression     int     `json:"expression"`
	Duration       float64 `json:"duration"`
	ErrorMessage   string  `json:"errorMessage,omitempty"`
}

// CalibratedMetrics is RawMetrics with the final score populated by a
// Calibrator. The embedding keeps the JSON flat.
type CalibratedMetrics struct {
	RawMetrics
	FinalScore int `json:"finalScore"`
}

// Calibrator maps raw sub-metric scores onto a final score. It must be
// a deterministic pure function; the pipeline never inspects how the
// final score is derived.
type Calibrator func(RawMetrics) CalibratedMetrics
