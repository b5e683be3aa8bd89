package ui

import (
	"github.com/linuxmatters/jivecroon/internal/processor"
)

// TakeStartMsg indicates analysis of a take has started
type TakeStartMsg struct {
	FileIndex int
	FileName  string
}

// TakeCompleteMsg carries the analysis result for a finished take
type TakeCompleteMsg struct {
	FileIndex int
	Result    processor.AnalysisResult
}

// AllCompleteMsg indicates every queued take has been analysed
type AllCompleteMsg struct{}
