package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/empath-review/empath/internal/config"
	"github.com/empath-review/empath/internal/history"
	"github.com/empath-review/empath/internal/output"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past review runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, ok := openHistory(cmd.Context())
		if !ok {
			return
		}
		defer store.Close()

		runs, err := store.List(cmd.Context(), flagHistoryLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}
		if len(runs) == 0 {
			fmt.Fprintln(os.Stdout, "No runs recorded.")
			return
		}

		table := tablewriter.NewTable(os.Stdout)
		table.Header([]string{"Run ID", "When", "Language", "Persona", "Comments", "Harsh", "Overall"})
		for _, run := range runs {
			table.Append([]string{
				run.RunID,
				run.CreatedAt.Format("2006-01-02 15:04"),
				run.Language,
				run.Persona,
				strconv.Itoa(run.Comments),
				strconv.Itoa(run.Harsh),
				fmt.Sprintf("%.1f", run.Overall),
			})
		}
		if err := table.Render(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
		}
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Re-render a past run's report",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, ok := openHistory(cmd.Context())
		if !ok {
			return
		}
		defer store.Close()

		report, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}

		cfg, ok := effectiveConfig(cmd)
		if !ok {
			return
		}
		if err := output.WriteReport(report, cfg.Format, flagOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			exitCode = ExitRuntimeError
		}
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded runs",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, ok := openHistory(cmd.Context())
		if !ok {
			return
		}
		defer store.Close()

		if err := store.Clear(cmd.Context()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}
		fmt.Fprintln(os.Stdout, "History cleared.")
	},
}

func openHistory(ctx context.Context) (*history.Store, bool) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return nil, false
	}
	path := cfg.History.Path
	if path == "" {
		path, err = history.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil, false
		}
	}
	store, err := history.Open(ctx, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return nil, false
	}
	return store, true
}

func init() {
	historyListCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Maximum number of runs to list")
	historyShowCmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json, markdown)")
	historyShowCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
}
