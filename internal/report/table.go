// Package report generates the take analysis report saved alongside each
// input file: the score table, singing tips and the raw result record.
package report

import (
	"fmt"
	"strings"
)

// barWidth is the number of cells in a score bar. One cell per 5 points.
const barWidth = 20

// ScoreRow is one metric line in the score table.
type ScoreRow struct {
	Label string
	Score int
}

// ScoreTable formats the sub-metric scores as aligned rows with a bar
// and a one-word rating per metric.
type ScoreTable struct {
	Rows []ScoreRow
}

// AddRow appends a metric row.
func (t *ScoreTable) AddRow(label string, score int) {
	t.Rows = append(t.Rows, ScoreRow{Label: label, Score: score})
}

// String renders the table. Labels are left-aligned, scores right-aligned
// to three columns, with the bar and rating after.
func (t *ScoreTable) String() string {
	if len(t.Rows) == 0 {
		return ""
	}

	labelWidth := 0
	for _, row := range t.Rows {
		if len(row.Label) > labelWidth {
			labelWidth = len(row.Label)
		}
	}

	var sb strings.Builder
	for _, row := range t.Rows {
		sb.WriteString(fmt.Sprintf("%-*s  %3d/100  %s  %s\n",
			labelWidth, row.Label, row.Score, scoreBar(row.Score), describeScore(row.Score)))
	}
	return sb.String()
}

// scoreBar renders a fixed-width bar, one filled cell per 5 points.
func scoreBar(score int) string {
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}
	filled := score * barWidth / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// describeScore maps a score onto a one-word rating.
func describeScore(score int) string {
	switch {
	case score >= 90:
		return "excellent"
	case score >= 75:
		return "good"
	case score >= 50:
		return "fair"
	case score >= 25:
		return "weak"
	default:
		return "poor"
	}
}
