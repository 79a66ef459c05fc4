package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/empath-review/empath/internal/config"
)

const version = "0.2.0"

// Exit codes are deterministic so the CLI can gate scripts and hooks.
const (
	ExitSuccess      = 0
	ExitUsageError   = 2
	ExitAuthError    = 3
	ExitRuntimeError = 4
)

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var flagConfigFile string

var rootCmd = &cobra.Command{
	Use:   "empath",
	Short: "Empathetic code review CLI",
	Long: "Empath turns blunt code review comments into encouraging, educational feedback,\n" +
		"alongside heuristic language detection, severity classification, and quality scoring.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Init(flagConfigFile)
	},
}

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "Config file path (default: platform config dir)")

	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(personasCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print empath version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "empath version %s\n", version)
	},
}
