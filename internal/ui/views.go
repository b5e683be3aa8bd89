package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/linuxmatters/jivecroon/internal/processor"
)

var (
	iconScored    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Render("✓")
	iconAnalysing = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Render("♪")
	iconFailed    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A40000")).Render("✗")
	iconTooShort  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render("⏱")
	iconQueued    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render("○")
)

// renderQueueView renders the main analysis queue view
func renderQueueView(m Model) string {
	var b strings.Builder

	b.WriteString(renderHeader(m))
	b.WriteString("\n\n")

	for _, take := range m.Takes {
		b.WriteString(renderTakeEntry(take))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderOverallProgress(m))

	return b.String()
}

// renderHeader renders the application header
func renderHeader(m Model) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#A40000")).
		Render("Jivecroon 🎤 - Vocal Take Analyser")

	subtitle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		Italic(true).
		Render(fmt.Sprintf("Analysing %d take(s)", len(m.Takes)))

	return title + "\n" + subtitle
}

// renderTakeEntry renders a single take in the queue
func renderTakeEntry(take TakeProgress) string {
	fileName := filepath.Base(take.InputPath)

	switch take.Status {
	case StatusDone:
		return renderFinishedTake(take)

	case StatusAnalyzing:
		return fmt.Sprintf(" %s %s\n   Analysing...", iconAnalysing, fileName)

	default:
		return fmt.Sprintf(" %s %s\n   Queued...", iconQueued, fileName)
	}
}

// renderFinishedTake renders a completed take with its outcome
func renderFinishedTake(take TakeProgress) string {
	fileName := filepath.Base(take.InputPath)

	switch take.Result.Kind() {
	case processor.KindAnalyzed:
		metrics, _ := take.Result.Metrics()
		summary := fmt.Sprintf("Pitch %d | Vibrato %d | Stability %d | Expression %d",
			metrics.PitchAccuracy, metrics.VibratoControl, metrics.Stability, metrics.Expression)
		return fmt.Sprintf(" %s %s — %s\n   %s",
			iconScored, fileName, renderFinalScore(metrics.FinalScore), summary)

	case processor.KindTooShort:
		return fmt.Sprintf(" %s %s\n   Too short: need at least %d seconds",
			iconTooShort, fileName, take.Result.MinimumSeconds())

	case processor.KindError:
		code, message := take.Result.ErrorInfo()
		return fmt.Sprintf(" %s %s\n   Failed (%s): %s", iconFailed, fileName, code, message)

	default:
		return fmt.Sprintf(" %s %s\n   No result", iconFailed, fileName)
	}
}

// renderFinalScore renders the final score with a colour matched to the band
func renderFinalScore(score int) string {
	colour := "#A40000"
	switch {
	case score >= 75:
		colour = "#00AA00"
	case score >= 50:
		colour = "#FFA500"
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colour)).
		Render(fmt.Sprintf("%d/100", score))
}

// renderOverallProgress renders the queue progress footer
func renderOverallProgress(m Model) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#888888")).
		Padding(0, 1).
		Width(60)

	finished := m.Scored + m.Rejected + m.Failed
	var content string
	if m.CurrentIndex >= 0 && m.CurrentIndex < len(m.Takes) && finished < len(m.Takes) {
		content = fmt.Sprintf("Analysing take %d of %d (%d finished)",
			m.CurrentIndex+1, len(m.Takes), finished)
	} else {
		content = fmt.Sprintf("Progress: %d/%d finished", finished, len(m.Takes))
	}

	return box.Render(content)
}

// renderCompletionSummary renders the final summary once the queue drains
func renderCompletionSummary(m Model) string {
	var b strings.Builder

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00AA00")).
		Render("✨ Analysis Complete!")
	b.WriteString(header)
	b.WriteString("\n\n")

	for _, take := range m.Takes {
		if take.Status == StatusDone {
			b.WriteString(renderFinishedTake(take))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", 60))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Scored: %d | Too short: %d | Failed: %d\n", m.Scored, m.Rejected, m.Failed))

	return b.String()
}
