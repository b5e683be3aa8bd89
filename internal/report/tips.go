package report

import (
	"fmt"
	"sort"

	"github.com/linuxmatters/jivecroon/internal/processor"
)

// SingingTip is a single piece of actionable advice derived from the
// analysis scores.
type SingingTip struct {
	Priority int    // Higher = more important (1-10)
	Message  string // Human-readable advice (1-2 sentences)
	RuleID   string // Identifier for testing/logging (e.g., "pitch_drift")
}

// MaxSingingTips is the maximum number of tips to return.
const MaxSingingTips = 4

// GenerateSingingTips inspects the calibrated metrics plus the optional
// hum report and returns prioritised suggestions for the next take.
func GenerateSingingTips(m processor.CalibratedMetrics, hum *processor.HumReport) []SingingTip {
	var tips []SingingTip
	fired := make(map[string]bool)

	rules := []func(processor.CalibratedMetrics, *processor.HumReport) *SingingTip{
		tipPitchDrift,
		tipPitchPolish,
		tipUnsteadyVibrato,
		tipWobble,
		tipFlatDynamics,
		tipMainsHum,
	}
	for _, rule := range rules {
		if tip := rule(m, hum); tip != nil {
			tips = append(tips, *tip)
			fired[tip.RuleID] = true
		}
	}

	tips = applyExclusions(tips, fired)

	sort.Slice(tips, func(i, j int) bool {
		return tips[i].Priority > tips[j].Priority
	})
	if len(tips) > MaxSingingTips {
		tips = tips[:MaxSingingTips]
	}
	return tips
}

// applyExclusions drops tips made redundant by a more specific one.
// Polish advice is noise when the singer is still drifting off pitch.
func applyExclusions(tips []SingingTip, fired map[string]bool) []SingingTip {
	var result []SingingTip
	for _, tip := range tips {
		if tip.RuleID == "pitch_polish" && fired["pitch_drift"] {
			continue
		}
		result = append(result, tip)
	}
	return result
}

func tipPitchDrift(m processor.CalibratedMetrics, _ *processor.HumReport) *SingingTip {
	if m.PitchAccuracy >= 50 {
		return nil
	}
	return &SingingTip{
		Priority: 9,
		Message: fmt.Sprintf("Pitch accuracy is %d/100 — notes are landing well away from their targets. "+
			"Practise the melody slowly against a reference instrument before the next take.", m.PitchAccuracy),
		RuleID: "pitch_drift",
	}
}

func tipPitchPolish(m processor.CalibratedMetrics, _ *processor.HumReport) *SingingTip {
	if m.PitchAccuracy < 50 || m.PitchAccuracy > 80 {
		return nil
	}
	return &SingingTip{
		Priority: 5,
		Message: fmt.Sprintf("Pitch accuracy is %d/100 — close, but some notes sit slightly sharp or flat. "+
			"Sustained long-tone exercises will tighten intonation.", m.PitchAccuracy),
		RuleID: "pitch_polish",
	}
}

func tipUnsteadyVibrato(m processor.CalibratedMetrics, _ *processor.HumReport) *SingingTip {
	if m.VibratoControl >= 40 {
		return nil
	}
	return &SingingTip{
		Priority: 6,
		Message: "Vibrato is either absent or uneven. Aim for a relaxed oscillation around " +
			"5-6 cycles per second and keep its width consistent through the phrase.",
		RuleID: "unsteady_vibrato",
	}
}

func tipWobble(m processor.CalibratedMetrics, _ *processor.HumReport) *SingingTip {
	if m.Stability >= 50 {
		return nil
	}
	return &SingingTip{
		Priority: 8,
		Message: "Sustained notes are wobbling in pitch or level. Steady breath support " +
			"from the diaphragm will settle held notes.",
		RuleID: "wobble",
	}
}

func tipFlatDynamics(m processor.CalibratedMetrics, _ *processor.HumReport) *SingingTip {
	if m.Expression >= 30 {
		return nil
	}
	return &SingingTip{
		Priority: 4,
		Message: "The take sits at one volume throughout. Shape each phrase with a rise " +
			"and fall in intensity to bring the performance to life.",
		RuleID: "flat_dynamics",
	}
}

func tipMainsHum(_ processor.CalibratedMetrics, hum *processor.HumReport) *SingingTip {
	if hum == nil || !hum.Detected {
		return nil
	}
	return &SingingTip{
		Priority: 7,
		Message: fmt.Sprintf("Electrical hum at %dHz is audible under the vocal (%.0f%% of signal energy). "+
			"Check cable routing and try a different power outlet or an isolated interface.",
			hum.MainsHz, hum.Ratio*100),
		RuleID: "mains_hum",
	}
}
