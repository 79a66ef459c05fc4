package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/empath-review/empath/internal/providers"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List known models per provider",
	Long: "Lists commonly used model names per provider. Any model name the provider\n" +
		"accepts can be passed to --model; this list is a convenience, not a gate.",
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		known := providers.KnownModels()
		names := make([]string, 0, len(known))
		for name := range known {
			names = append(names, name)
		}
		sort.Strings(names)

		bold := color.New(color.Bold).SprintFunc()
		for _, name := range names {
			fmt.Fprintf(os.Stdout, "%s\n", bold(name))
			for _, model := range known[name] {
				fmt.Fprintf(os.Stdout, "  %s\n", model)
			}
		}
	},
}
