package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/empath-review/empath/internal/cache"
	"github.com/empath-review/empath/internal/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the LLM response cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		c, ok := openCache()
		if !ok {
			return
		}
		stats, err := c.GetStats()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}
		fmt.Fprintf(os.Stdout, "Directory: %s\n", stats.Dir)
		fmt.Fprintf(os.Stdout, "Enabled:   %v\n", c.Enabled())
		fmt.Fprintf(os.Stdout, "Entries:   %d (%d expired)\n", stats.Entries, stats.Expired)
		fmt.Fprintf(os.Stdout, "Size:      %.1f KB\n", float64(stats.TotalBytes)/1024)
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all cached responses",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		c, ok := openCache()
		if !ok {
			return
		}
		if err := c.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}
		fmt.Fprintln(os.Stdout, "Cache cleared.")
	},
}

func openCache() (*cache.Cache, bool) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return nil, false
	}
	c, err := cache.New(cfg.Cache.Enabled, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return nil, false
	}
	return c, true
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
