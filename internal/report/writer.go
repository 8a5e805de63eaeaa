// Package report persists screen run results under the results directory
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bobmcallan/brokercheck/internal/common"
	"github.com/bobmcallan/brokercheck/internal/models"
)

// DirLayout is the timestamp prefix of every result directory.
const DirLayout = "20060102-150405"

// Writer stores each report as markdown, optionally JSON and a summary chart.
type Writer struct {
	dir    string
	json   bool
	chart  bool
	logger *common.Logger
}

// NewWriter creates a writer rooted at cfg.ResultsDir.
func NewWriter(cfg common.ReportConfig, logger *common.Logger) *Writer {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	dir := cfg.ResultsDir
	if dir == "" {
		dir = "results"
	}
	return &Writer{dir: dir, json: cfg.JSON, chart: cfg.Chart, logger: logger}
}

// Dir returns the result directory for a report: <results>/<datetime>-<screen>.
func (w *Writer) Dir(r *models.ScreenReport) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s-%s", r.StartedAt.Format(DirLayout), r.Screen))
}

// Write stores r and returns its directory.
func (w *Writer) Write(r *models.ScreenReport) (string, error) {
	dir := w.Dir(r)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create results directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "report.md"), []byte(Markdown(r)), 0644); err != nil {
		return "", fmt.Errorf("failed to write markdown report: %w", err)
	}

	if w.json {
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode report: %w", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "report.json"), data, 0644); err != nil {
			return "", fmt.Errorf("failed to write json report: %w", err)
		}
	}

	if w.chart && len(r.Comparisons)+len(r.Checks) > 0 {
		png, err := RenderSummaryChart(r)
		if err != nil {
			// the chart is optional; the text reports are already on disk
			w.logger.Warn().Err(err).Str("screen", r.Screen).Msg("Summary chart skipped")
		} else if err := os.WriteFile(filepath.Join(dir, "summary.png"), png, 0644); err != nil {
			return "", fmt.Errorf("failed to write chart: %w", err)
		}
	}

	return dir, nil
}

// Markdown renders r as a markdown document.
func Markdown(r *models.ScreenReport) string {
	var sb strings.Builder

	status := "PASSED"
	if !r.Passed() {
		status = "FAILED"
	}

	sb.WriteString(fmt.Sprintf("# %s: %s\n\n", r.Screen, status))
	sb.WriteString(fmt.Sprintf("- **Run:** %s\n", r.RunID))
	sb.WriteString(fmt.Sprintf("- **Scenario:** %s\n", r.Scenario))
	sb.WriteString(fmt.Sprintf("- **Started:** %s\n", r.StartedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("- **Duration:** %s\n", r.Duration.Round(time.Millisecond)))
	sb.WriteString(fmt.Sprintf("- **Fields:** %d matched, %d mismatched\n", r.Matched(), r.Mismatched()))
	sb.WriteString(fmt.Sprintf("- **Checks:** %d passed, %d failed\n", len(r.Checks)-r.FailedChecks(), r.FailedChecks()))
	if r.Error != "" {
		sb.WriteString(fmt.Sprintf("- **Error:** %s\n", r.Error))
	}
	sb.WriteString("\n")

	if len(r.Comparisons) > 0 {
		sb.WriteString("## Fields\n\n")
		sb.WriteString("| Field | UI | Expected | Policy | Result |\n")
		sb.WriteString("|---|---|---|---|---|\n")
		for _, c := range r.Comparisons {
			ui := c.UI
			if c.Missing {
				ui = "_not found_"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				cell(c.Field), cell(ui), cell(c.Expected), c.Policy, result(c.Matched)))
		}
		sb.WriteString("\n")
	}

	if len(r.Checks) > 0 {
		sb.WriteString("## Checks\n\n")
		sb.WriteString("| Check | Detail | Result |\n")
		sb.WriteString("|---|---|---|\n")
		for _, c := range r.Checks {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", cell(c.Name), cell(c.Detail), result(c.Passed)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func result(ok bool) string {
	if ok {
		return "MATCH"
	}
	return "**MISMATCH**"
}

// cell escapes pipes and newlines so a value stays in its table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
