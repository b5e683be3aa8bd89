package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/linuxmatters/jivecroon/internal/audio"
	"github.com/linuxmatters/jivecroon/internal/calibrate"
	"github.com/linuxmatters/jivecroon/internal/cli"
	"github.com/linuxmatters/jivecroon/internal/mains"
	"github.com/linuxmatters/jivecroon/internal/processor"
	"github.com/linuxmatters/jivecroon/internal/report"
	"github.com/linuxmatters/jivecroon/internal/ui"
)

var (
	version = "0.0.1"
)

// CLI defines the command-line interface
type CLI struct {
	Version bool     `short:"v" help:"Show version information"`
	JSON    bool     `short:"j" help:"Print results as JSON instead of the interactive UI"`
	Logs    bool     `help:"Save a detailed analysis report next to each take"`
	Files   []string `arg:"" name:"files" help:"Vocal takes to analyse" type:"existingfile" optional:""`
}

func main() {
	// Weight overrides may live in a .env next to the takes.
	_ = godotenv.Load()

	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("jivecroon"),
		kong.Description("Vocal take quality analyser"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if cliArgs.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	if len(cliArgs.Files) == 0 {
		cli.PrintError("No input files specified")
		ctx.PrintUsage(false)
		os.Exit(1)
	}

	log := newLogger()

	cfg, err := calibrate.FromEnv()
	if err != nil {
		cli.PrintError(fmt.Sprintf("Invalid calibration settings: %v", err))
		os.Exit(1)
	}
	log.WithField("weights", cfg).Debug("calibration configured")

	pipeline := processor.New(calibrate.New(cfg))

	if cliArgs.JSON {
		runJSON(pipeline, cliArgs.Files, log)
		return
	}
	runUI(pipeline, cliArgs, log)
}

// newLogger writes debug output to jivecroon-debug.log so it never
// fights the TUI for the terminal.
func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.DebugLevel)

	f, err := os.Create("jivecroon-debug.log")
	if err != nil {
		log.SetOutput(io.Discard)
		return log
	}
	log.SetOutput(f)
	return log
}

// runJSON analyses each take in order and prints one result object per
// line, for scripting and batch use.
func runJSON(pipeline *processor.Pipeline, files []string, log *logrus.Logger) {
	for _, path := range files {
		log.WithField("file", path).Info("analysing")
		result := pipeline.Analyze(path)

		out, err := json.Marshal(struct {
			File   string                   `json:"file"`
			Result processor.AnalysisResult `json:"result"`
		}{File: path, Result: result})
		if err != nil {
			cli.PrintError(fmt.Sprintf("Failed to encode result for %s: %v", path, err))
			os.Exit(1)
		}
		fmt.Println(string(out))
	}
}

// runUI drives the Bubbletea queue, analysing takes on a background
// goroutine and feeding outcomes in through Program.Send.
func runUI(pipeline *processor.Pipeline, cliArgs *CLI, log *logrus.Logger) {
	p := tea.NewProgram(ui.NewModel(cliArgs.Files), tea.WithAltScreen())

	go func() {
		mainsHz := mains.Frequency()
		log.WithField("mainsHz", mainsHz).Debug("mains frequency detected")

		for i, inputPath := range cliArgs.Files {
			startTime := time.Now()
			log.WithFields(logrus.Fields{"index": i, "file": inputPath}).Info("take started")
			p.Send(ui.TakeStartMsg{FileIndex: i, FileName: inputPath})

			result := <-pipeline.Go(inputPath)
			log.WithFields(logrus.Fields{"index": i, "kind": result.Kind()}).Info("take finished")

			if cliArgs.Logs {
				if err := writeReport(inputPath, startTime, result, mainsHz); err != nil {
					log.WithError(err).Warn("report generation failed")
				}
			}

			p.Send(ui.TakeCompleteMsg{FileIndex: i, Result: result})
		}

		p.Send(ui.AllCompleteMsg{})
	}()

	if _, err := p.Run(); err != nil {
		cli.PrintError(fmt.Sprintf("UI error: %v", err))
		os.Exit(1)
	}
}

// writeReport gathers the extra context the report wants beyond the
// result itself: format metadata and the mains hum check.
func writeReport(inputPath string, startTime time.Time, result processor.AnalysisResult, mainsHz int) error {
	data := report.ReportData{
		InputPath: inputPath,
		StartTime: startTime,
		EndTime:   time.Now(),
		Result:    result,
	}

	if info, err := audio.Probe(inputPath); err == nil {
		data.SampleRate = info.SampleRate
		data.Channels = info.Channels
		data.DurationSecs = info.Duration
	}
	if result.Kind() == processor.KindAnalyzed {
		if buf, err := audio.Load(inputPath); err == nil {
			hum := processor.DetectHum(buf, mainsHz)
			data.Hum = &hum
		}
	}

	return report.GenerateReport(data)
}
