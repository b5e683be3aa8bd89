package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/linuxmatters/jivecroon/internal/processor"
)

// ReportData carries everything the report needs about one analysed take.
type ReportData struct {
	InputPath    string
	StartTime    time.Time
	EndTime      time.Time
	SampleRate   int
	Channels     int
	DurationSecs float64
	Result       processor.AnalysisResult
	Hum          *processor.HumReport
}

// GenerateReport writes the analysis report next to the input file. The
// report filename is <take>-analysis.log.
//
// Report structure:
//  1. Header - file info and timestamp
//  2. Scores - final score plus the sub-metric table
//  3. Singing Tips - prioritised advice for the next take
//  4. Result Record - the JSON form persisted by callers
func GenerateReport(data ReportData) error {
	logPath := strings.TrimSuffix(data.InputPath, filepath.Ext(data.InputPath)) + "-analysis.log"

	f, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	writeReportHeader(f, data)

	switch data.Result.Kind() {
	case processor.KindAnalyzed:
		m, _ := data.Result.Metrics()
		writeScores(f, m)
		writeTips(f, GenerateSingingTips(m, data.Hum))
	case processor.KindTooShort:
		fmt.Fprintf(f, "Take rejected: shorter than the %d second minimum.\n\n", data.Result.MinimumSeconds())
	case processor.KindError:
		code, message := data.Result.ErrorInfo()
		fmt.Fprintf(f, "Analysis failed (%s): %s\n\n", code, message)
	}

	return writeResultRecord(f, data.Result)
}

// writeSection writes a section title with a dashed underline.
func writeSection(f *os.File, title string) {
	fmt.Fprintln(f, title)
	fmt.Fprintln(f, strings.Repeat("-", len(title)))
}

func writeReportHeader(f *os.File, data ReportData) {
	fmt.Fprintln(f, "Jivecroon Take Analysis")
	fmt.Fprintln(f, "=======================")
	fmt.Fprintf(f, "File: %s\n", filepath.Base(data.InputPath))
	fmt.Fprintf(f, "Analysed: %s\n", data.EndTime.Format("2006-01-02 15:04:05 MST"))
	if data.SampleRate > 0 {
		fmt.Fprintf(f, "Format: %d Hz %s\n", data.SampleRate, channelName(data.Channels))
	}
	if data.DurationSecs > 0 {
		fmt.Fprintf(f, "Duration: %s\n", formatDuration(time.Duration(data.DurationSecs*float64(time.Second))))
	}
	if elapsed := data.EndTime.Sub(data.StartTime); elapsed > 0 {
		fmt.Fprintf(f, "Analysis time: %s\n", formatDuration(elapsed))
	}
	fmt.Fprintln(f, "")
}

func writeScores(f *os.File, m processor.CalibratedMetrics) {
	writeSection(f, "Scores")
	fmt.Fprintf(f, "Final Score: %d/100 (%s)\n\n", m.FinalScore, describeScore(m.FinalScore))

	table := &ScoreTable{}
	table.AddRow("Pitch Accuracy", m.PitchAccuracy)
	table.AddRow("Vibrato Control", m.VibratoControl)
	table.AddRow("Stability", m.Stability)
	table.AddRow("Expression", m.Expression)
	fmt.Fprint(f, table.String())
	fmt.Fprintln(f, "")
}

func writeTips(f *os.File, tips []SingingTip) {
	if len(tips) == 0 {
		return
	}
	writeSection(f, "Singing Tips")
	for i, tip := range tips {
		fmt.Fprintf(f, "%d. %s\n", i+1, tip.Message)
	}
	fmt.Fprintln(f, "")
}

// writeResultRecord appends the serialized result so other tools can
// load the exact record without re-running the analysis.
func writeResultRecord(f *os.File, result processor.AnalysisResult) error {
	writeSection(f, "Result Record")
	record, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result record: %w", err)
	}
	fmt.Fprintln(f, string(record))
	return nil
}

// formatDuration renders a duration the way a musician reads one.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	if minutes < 60 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	hours := minutes / 60
	return fmt.Sprintf("%dh %dm %ds", hours, minutes%60, seconds)
}

func channelName(channels int) string {
	switch channels {
	case 1:
		return "mono"
	case 2:
		return "stereo"
	default:
		return fmt.Sprintf("%d channels", channels)
	}
}
