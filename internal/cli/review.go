package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/empath-review/empath/internal/config"
	"github.com/empath-review/empath/internal/history"
	"github.com/empath-review/empath/internal/output"
	"github.com/empath-review/empath/internal/providers"
	"github.com/empath-review/empath/internal/review"
)

var (
	flagInput       string
	flagProvider    string
	flagModel       string
	flagPersona     string
	flagPersonaFile string
	flagFormat      string
	flagOut         string
	flagMaxTokens   int
	flagNoCache     bool
	flagNoRedact    bool
	flagNoHistory   bool
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Run the full empathetic review pipeline",
	Long: "Validates a JSON review request, runs the heuristic pipeline (language,\n" +
		"severity, quality score), rewrites each comment through the configured LLM\n" +
		"provider, and renders a report.",
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

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		report, err := review.Run(ctx, req, cfg, source)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			if providers.IsAuthError(err) {
				exitCode = ExitAuthError
			} else {
				exitCode = ExitRuntimeError
			}
			return
		}

		if cfg.History.Enabled && !flagNoHistory {
			if err := saveHistory(ctx, cfg, report); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not save history: %v\n", err)
			}
		}

		if err := output.WriteReport(report, cfg.Format, flagOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			exitCode = ExitRuntimeError
		}
	},
}

func init() {
	addInputFlags(reviewCmd)
	reviewCmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (anthropic, openai, gemini, ollama)")
	reviewCmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	reviewCmd.Flags().StringVar(&flagPersona, "persona", "", "Reviewer persona")
	reviewCmd.Flags().StringVar(&flagPersonaFile, "persona-file", "", "Custom persona pack (YAML)")
	reviewCmd.Flags().IntVar(&flagMaxTokens, "max-tokens", 0, "Maximum response tokens")
	reviewCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Bypass the LLM response cache")
	reviewCmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
	reviewCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Do not record this run in history")
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagInput, "input", "", "Request file path (default: stdin)")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json, markdown)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
}

// loadRequest reads and validates the request from --input or stdin.
// Validation failures are usage errors.
func loadRequest(cmd *cobra.Command) (review.Request, string, bool) {
	var raw []byte
	var err error
	source := "stdin"
	if flagInput != "" {
		raw, err = os.ReadFile(flagInput)
		source = flagInput
	} else {
		raw, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		exitCode = ExitRuntimeError
		return review.Request{}, "", false
	}

	req, err := review.ParseRequest(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return review.Request{}, "", false
	}
	return req, source, true
}

// effectiveConfig loads the layered config and applies flag overrides for
// flags the user actually set.
func effectiveConfig(cmd *cobra.Command) (config.Config, bool) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return config.Config{}, false
	}

	flags := cmd.Flags()
	if flags.Changed("provider") {
		cfg.Provider = flagProvider
	}
	if flags.Changed("model") {
		cfg.Model = flagModel
	}
	if flags.Changed("persona") {
		cfg.Persona = flagPersona
	}
	if flags.Changed("persona-file") {
		cfg.PersonaFile = flagPersonaFile
	}
	if flags.Changed("format") {
		cfg.Format = flagFormat
	}
	if flags.Changed("max-tokens") {
		cfg.MaxTokens = flagMaxTokens
	}
	if flagNoCache {
		cfg.Cache.Enabled = false
	}
	if flagNoRedact {
		cfg.Privacy.RedactSecrets = false
		fmt.Fprintln(os.Stderr, "WARNING: secret redaction is disabled")
	}
	return cfg, true
}

func saveHistory(ctx context.Context, cfg config.Config, report *review.Report) error {
	if ctx == nil {
		ctx = context.Background()
	}
	path := cfg.History.Path
	if path == "" {
		p, err := history.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	store, err := history.Open(ctx, path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Save(ctx, report)
}
