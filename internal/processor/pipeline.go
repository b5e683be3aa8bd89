package processor

import (
	"errors"
	"fmt"

	"github.com/linuxmatters/jivecroon/internal/audio"
)

// Gate thresholds. A take shorter than MinTakeSeconds is rejected before
// full decode; one with less than MinVoicedSeconds of detected pitch has
// nothing for the scorers to work with.
const (
	MinTakeSeconds   = 3
	MinVoicedSeconds = 2.0
)

// Analyzer is the single contract the rest of the application depends
// on. Analyze is total: every failure comes back as a result variant,
// never as a Go error.
type Analyzer interface {
	Analyze(path string) AnalysisResult
}

// Pipeline runs the full analysis sequence for one take: decode, frame,
// extract features, score, calibrate. It holds no per-run state, so one
// Pipeline serves any number of takes from any number of goroutines.
type Pipeline struct {
	calibrate Calibrator
}

var _ Analyzer = (*Pipeline)(nil)

// New builds a pipeline around the given calibrator.
func New(calibrate Calibrator) *Pipeline {
	return &Pipeline{calibrate: calibrate}
}

// Analyze runs the whole pipeline for the take at path.
//
// The duration gate runs on a header probe before any samples are
// decoded, so rejecting a too-short take costs almost nothing.
func (p *Pipeline) Analyze(path string) AnalysisResult {
	info, err := audio.Probe(path)
	if err != nil {
		if errors.Is(err, audio.ErrInvalidDuration) {
			return ErrorResult(CodeInvalidDuration, err.Error())
		}
		return ErrorResult(CodeReadFailed, err.Error())
	}
	if info.Duration < MinTakeSeconds {
		return TooShort(MinTakeSeconds)
	}

	buf, err := audio.Load(path)
	if err != nil {
		return ErrorResult(CodeReadFailed, err.Error())
	}

	features, err := ExtractFeatures(buf)
	if err != nil {
		return ErrorResult(CodeBadParameters, err.Error())
	}

	if voiced := features.VoicedSeconds(); voiced < MinVoicedSeconds {
		return ErrorResult(CodeInsufficientVoicing,
			fmt.Sprintf("only %.2fs of voiced material detected, need %.1fs", voiced, MinVoicedSeconds))
	}

	raw := RawMetrics{
		PitchAccuracy:  ScorePitchAccuracy(features),
		VibratoControl: ScoreVibratoControl(features),
		Stability:      ScoreStability(features),
		Expression:     ScoreExpression(features),
		Duration:       buf.Duration(),
	}
	return Analyzed(p.calibrate(raw))
}

// Go runs Analyze on its own goroutine and delivers the result on the
// returned channel. The channel is buffered, so the worker never blocks
// on a caller that has moved on.
func (p *Pipeline) Go(path string) <-chan AnalysisResult {
	out := make(chan AnalysisResult, 1)
	go func() {
		out <- p.Analyze(path)
		close(out)
	}()
	return out
}
