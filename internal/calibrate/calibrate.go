// Package calibrate owns the final-score policy: the mapping from the
// four raw sub-metric scores onto a single score out of 100.
package calibrate

import (
	"math"

	"github.com/kelseyhightower/envconfig"

	"github.com/linuxmatters/jivecroon/internal/processor"
)

// Config holds the sub-metric weights. Each weight can be overridden
// through JIVECROON_PITCH_WEIGHT and friends, so a studio can bias the
// score towards what it cares about without rebuilding.
type Config struct {
	PitchWeight      float64 `split_words:"true" default:"0.4"`
	VibratoWeight    float64 `split_words:"true" default:"0.2"`
	StabilityWeight  float64 `split_words:"true" default:"0.25"`
	ExpressionWeight float64 `split_words:"true" default:"0.15"`
}

// FromEnv reads the weight configuration from the environment, falling
// back to the defaults above.
func FromEnv() (Config, error) {
	var cfg Config
	err := envconfig.Process("jivecroon", &cfg)
	return cfg, err
}

// New builds the calibrator for a weight configuration: the weighted
// mean of the four sub-metrics, normalised by the weight total so
// partial overrides still land in [0,100]. A non-positive weight total
// falls back to the plain mean.
func New(cfg Config) processor.Calibrator {
	return func(raw processor.RawMetrics) processor.CalibratedMetrics {
		total := cfg.PitchWeight + cfg.VibratoWeight + cfg.StabilityWeight + cfg.ExpressionWeight

		var score float64
		if total > 0 {
			score = (cfg.PitchWeight*float64(raw.PitchAccuracy) +
				cfg.VibratoWeight*float64(raw.VibratoControl) +
				cfg.StabilityWeight*float64(raw.Stability) +
				cfg.ExpressionWeight*float64(raw.Expression)) / total
		} else {
			score = float64(raw.PitchAccuracy+raw.VibratoControl+raw.Stability+raw.Expression) / 4
		}

		final := int(math.Round(score))
		if final < 0 {
			final = 0
		} else if final > 100 {
			final = 100
		}
		return processor.CalibratedMetrics{RawMetrics: raw, FinalScore: final}
	}
}
