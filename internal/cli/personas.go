package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/empath-review/empath/internal/config"
	"github.com/empath-review/empath/internal/review"
)

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "List available reviewer personas",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}
		path := cfg.PersonaFile
		if flagPersonaFile != "" {
			path = flagPersonaFile
		}

		personas, err := review.LoadPersonas(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}

		bold := color.New(color.Bold).SprintFunc()
		dim := color.New(color.Faint).SprintFunc()
		for _, name := range review.PersonaNames(personas) {
			p := personas[name]
			marker := "  "
			if name == cfg.Persona {
				marker = "* "
			}
			fmt.Fprintf(os.Stdout, "%s%s\n", marker, bold(name))
			fmt.Fprintf(os.Stdout, "    %s\n", dim(p.Description))
		}

		langs := make([]string, 0, 5)
		for _, l := range review.SupportedLanguages() {
			langs = append(langs, l.Display())
		}
		fmt.Fprintf(os.Stdout, "\nDetected languages: %s\n", strings.Join(langs, ", "))
	},
}

func init() {
	personasCmd.Flags().StringVar(&flagPersonaFile, "persona-file", "", "Custom persona pack (YAML)")
}
