package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/empath-review/empath/internal/output"
	"github.com/empath-review/empath/internal/review"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the heuristic pipeline without calling an LLM",
	Long: "Runs language detection, severity classification, and quality scoring on a\n" +
		"request and renders the report without any network access. Useful for CI\n" +
		"gates and offline inspection.",
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		req, source, ok := loadRequest(cmd)
		if !ok {
			return
		}
		cfg, ok := effectiveConfig(cmd)
		if !ok {
			return
		}

		report := review.Analyze(req, source)
		report.Persona = cfg.Persona

		if err := output.WriteReport(report, cfg.Format, flagOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			exitCode = ExitRuntimeError
		}
	},
}

func init() {
	addInputFlags(analyzeCmd)
}
