// Package ui provides the Bubbletea terminal user interface for jivecroon
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/linuxmatters/jivecroon/internal/processor"
)

// TakeStatus represents the analysis state of a single take
type TakeStatus int

const (
	StatusQueued TakeStatus = iota
	StatusAnalyzing
	StatusDone
)

// TakeProgress tracks one queued take through the pipeline
type TakeProgress struct {
	InputPath string
	Status    TakeStatus
	StartTime time.Time
	Elapsed   time.Duration
	Result    processor.AnalysisResult
}

// Model is the Bubbletea model for the analysis queue. The pipeline runs
// outside the program and feeds results in through Program.Send, so Init
// has nothing to kick off.
type Model struct {
	Takes        []TakeProgress
	CurrentIndex int
	Scored       int
	Rejected     int
	Failed       int

	StartTime time.Time
	Done      bool

	Width  int
	Height int
}

// NewModel creates a UI model with every input file queued.
func NewModel(inputFiles []string) Model {
	takes := make([]TakeProgress, len(inputFiles))
	for i, path := range inputFiles {
		takes[i] = TakeProgress{InputPath: path, Status: StatusQueued}
	}

	return Model{
		Takes:        takes,
		CurrentIndex: -1,
		StartTime:    time.Now(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case TakeStartMsg:
		if msg.FileIndex >= 0 && msg.FileIndex < len(m.Takes) {
			m.CurrentIndex = msg.FileIndex
			m.Takes[msg.FileIndex].Status = StatusAnalyzing
			m.Takes[msg.FileIndex].StartTime = time.Now()
		}

	case TakeCompleteMsg:
		if msg.FileIndex >= 0 && msg.FileIndex < len(m.Takes) {
			take := &m.Takes[msg.FileIndex]
			take.Status = StatusDone
			take.Elapsed = time.Since(take.StartTime)
			take.Result = msg.Result

			switch msg.Result.Kind() {
			case processor.KindAnalyzed:
				m.Scored++
			case processor.KindTooShort:
				m.Rejected++
			default:
				m.Failed++
			}
		}

	case AllCompleteMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.Done {
		return renderCompletionSummary(m)
	}
	return renderQueueView(m)
}
