package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/empath-review/empath/internal/review"
)

// TextWriter outputs a human-readable terminal report with a score
// dashboard.
type TextWriter struct{}

var (
	heading = color.New(color.FgHiCyan, color.Bold).SprintFunc()
	dim     = color.New(color.Faint).SprintFunc()
	green   = color.New(color.FgHiGreen).SprintFunc()
	yellow  = color.New(color.FgHiYellow).SprintFunc()
	red     = color.New(color.FgHiRed).SprintFunc()
)

func (t *TextWriter) Write(w io.Writer, report *review.Report) error {
	ew := &errWriter{w: w}

	ew.printf("%s\n", heading("Empathetic Code Review"))
	ew.printf("Language: %s | Persona: %s | Run: %s\n",
		report.Language.Display(), personaOrNone(report.Persona), report.RunID)
	ew.println(strings.Repeat("─", 60))

	// Score dashboard
	table := newScoreTable(ew)
	table.Append([]string{"Readability", scoreCell(report.Score.Readability)})
	table.Append([]string{"Performance", scoreCell(report.Score.Performance)})
	table.Append([]string{"Maintainability", scoreCell(report.Score.Maintainability)})
	table.Append([]string{"Best practices", scoreCell(report.Score.BestPractices)})
	table.Append([]string{"Overall", scoreCell(report.Score.Overall)})
	if err := table.Render(); err != nil {
		return err
	}
	ew.printf("Improvement potential: %s\n", scoreColor(10-report.Score.ImprovementPotential)(
		fmt.Sprintf("%.1f", report.Score.ImprovementPotential)))

	// Severity breakdown
	ew.println(strings.Repeat("─", 60))
	ew.printf("Comments: %d (%s harsh, %s moderate, %s mild) | tone: %s\n",
		report.Inputs.Comments,
		red(fmt.Sprintf("%d", report.Breakdown.Harsh)),
		yellow(fmt.Sprintf("%d", report.Breakdown.Moderate)),
		green(fmt.Sprintf("%d", report.Breakdown.Mild)),
		string(report.Tone),
	)

	// Rewrites
	for i, rw := range report.Rewrites {
		ew.println("")
		ew.printf("%s %s\n", heading(fmt.Sprintf("Comment %d", i+1)), tierTag(rw.Severity))
		ew.printf("  %s %s\n", dim("original:"), rw.Original)
		ew.printf("  %s %s\n", dim("rephrased:"), rw.Rephrasing)
		for _, line := range wrapText(rw.Why, 70) {
			ew.printf("  %s\n", line)
		}
		if rw.Improvement != "" {
			ew.println("  Suggested improvement:")
			for _, line := range strings.Split(strings.TrimRight(rw.Improvement, "\n"), "\n") {
				ew.printf("    %s\n", line)
			}
		}
	}

	if report.Summary != "" {
		ew.println("")
		ew.printf("%s\n", heading("Summary"))
		for _, line := range wrapText(report.Summary, 70) {
			ew.printf("  %s\n", line)
		}
	}

	if len(report.Resources) > 0 {
		ew.println("")
		ew.printf("%s\n", heading("Resources"))
		for _, r := range report.Resources {
			ew.printf("  - %s\n", r)
		}
	}

	ew.printf("\n%s\n", strings.Repeat("─", 60))
	ew.printf("Completed in %dms (analysis: %dms, LLM: %dms)\n",
		report.Timing.TotalMs, report.Timing.AnalysisMs, report.Timing.LLMMs)

	return ew.err
}

func newScoreTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "  ", Right: "  "}),
	)
	table.Header([]string{"Dimension", "Score"})
	return table
}

// scoreCell renders "7.5/10" plus a ten-segment bar.
func scoreCell(v float64) string {
	filled := int(v + 0.5)
	if filled > 10 {
		filled = 10
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
	return scoreColor(v)(fmt.Sprintf("%4.1f/10 %s", v, bar))
}

func scoreColor(v float64) func(a ...interface{}) string {
	switch {
	case v >= 8:
		return green
	case v >= 5:
		return yellow
	default:
		return red
	}
}

func tierTag(t review.Tier) string {
	switch t {
	case review.TierHarsh:
		return red("[harsh]")
	case review.TierModerate:
		return yellow("[moderate]")
	default:
		return green("[mild]")
	}
}

func personaOrNone(p string) string {
	if p == "" {
		return "-"
	}
	return strings.ReplaceAll(p, "_", " ")
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return len(p), nil
	}
	var n int
	n, ew.err = ew.w.Write(p)
	return n, nil
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func wrapText(text string, width int) []string {
	if len(text) <= width {
		return []string{text}
	}
	var lines []string
	words := strings.Fields(text)
	var current strings.Builder
	for _, word := range words {
		if current.Len()+len(word)+1 > width && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
