package report

import (
	"strings"
	"testing"
)

func TestScoreBar(t *testing.T) {
	tests := []struct {
		name       string
		score      int
		wantFilled int
	}{
		{"zero", 0, 0},
		{"quarter", 25, 5},
		{"half", 50, 10},
		{"full", 100, 20},
		{"rounds_down", 99, 19},
		{"clamped_negative", -10, 0},
		{"clamped_over", 150, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := scoreBar(tt.score)
			if got := strings.Count(bar, "█"); got != tt.wantFilled {
				t.Errorf("scoreBar(%d) filled cells = %d, want %d", tt.score, got, tt.wantFilled)
			}
			if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != barWidth {
				t.Errorf("scoreBar(%d) width = %d, want %d", tt.score, got, barWidth)
			}
		})
	}
}

func TestDescribeScore(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "excellent"},
		{90, "excellent"},
		{89, "good"},
		{75, "good"},
		{74, "fair"},
		{50, "fair"},
		{49, "weak"},
		{25, "weak"},
		{24, "poor"},
		{0, "poor"},
	}

	for _, tt := range tests {
		if got := describeScore(tt.score); got != tt.want {
			t.Errorf("describeScore(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestScoreTableString(t *testing.T) {
	table := &ScoreTable{}
	table.AddRow("Pitch Accuracy", 92)
	table.AddRow("Expression", 7)

	out := table.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("table has %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "Pitch Accuracy") || !strings.Contains(lines[0], " 92/100") {
		t.Errorf("first row = %q, want label and score", lines[0])
	}
	if !strings.Contains(lines[0], "excellent") {
		t.Errorf("first row = %q, want excellent rating", lines[0])
	}
	if !strings.Contains(lines[1], "  7/100") || !strings.Contains(lines[1], "poor") {
		t.Errorf("second row = %q, want padded score and poor rating", lines[1])
	}

	// Labels pad to the same width, so scores start at the same column.
	if strings.Index(lines[0], "/100") != strings.Index(lines[1], "/100") {
		t.Error("score columns are not aligned")
	}
}

func TestScoreTableEmpty(t *testing.T) {
	table := &ScoreTable{}
	if got := table.String(); got != "" {
		t.Errorf("empty table String() = %q, want empty", got)
	}
}
