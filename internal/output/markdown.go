package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/empath-review/empath/internal/review"
)

// MarkdownWriter outputs a shareable markdown review report.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *review.Report) error {
	fmt.Fprintf(w, "# Empathetic Code Review Report\n\n")
	fmt.Fprintf(w, "**Language:** %s | **Persona:** %s | **Overall Quality Score:** %.1f/10\n\n",
		report.Language.Display(), personaOrNone(report.Persona), report.Score.Overall)

	// Score table
	fmt.Fprintf(w, "| Dimension | Score |\n")
	fmt.Fprintf(w, "|-----------|-------|\n")
	fmt.Fprintf(w, "| Readability | %.1f |\n", report.Score.Readability)
	fmt.Fprintf(w, "| Performance | %.1f |\n", report.Score.Performance)
	fmt.Fprintf(w, "| Maintainability | %.1f |\n", report.Score.Maintainability)
	fmt.Fprintf(w, "| Best practices | %.1f |\n", report.Score.BestPractices)
	fmt.Fprintf(w, "| **Overall** | **%.1f** |\n\n", report.Score.Overall)
	fmt.Fprintf(w, "Improvement potential: %.1f\n\n", report.Score.ImprovementPotential)

	fmt.Fprintf(w, "Severity of original comments: %d harsh, %d moderate, %d mild.\n\n",
		report.Breakdown.Harsh, report.Breakdown.Moderate, report.Breakdown.Mild)

	for _, rw := range report.Rewrites {
		fmt.Fprintf(w, "---\n\n")
		fmt.Fprintf(w, "### Analysis of Comment: %q\n\n", rw.Original)
		fmt.Fprintf(w, "**Positive Rephrasing:** %s\n\n", rw.Rephrasing)
		fmt.Fprintf(w, "**The 'Why':** %s\n\n", rw.Why)
		if rw.Improvement != "" {
			lang := fenceLang(report.Language)
			fmt.Fprintf(w, "**Suggested Improvement:**\n\n```%s\n%s\n```\n\n",
				lang, strings.TrimRight(rw.Improvement, "\n"))
		}
	}

	if report.Summary != "" {
		fmt.Fprintf(w, "---\n\n## Summary\n\n%s\n\n", report.Summary)
	}

	if len(report.Resources) > 0 {
		fmt.Fprintf(w, "## Additional Resources\n\nFor further learning, consider reviewing these resources:\n\n")
		for _, r := range report.Resources {
			fmt.Fprintf(w, "- %s\n", r)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "*Generated by empath in %dms (LLM: %dms)*\n",
		report.Timing.TotalMs, report.Timing.LLMMs)

	return nil
}

func fenceLang(l review.Language) string {
	if l == review.LangUnknown {
		return ""
	}
	return string(l)
}
