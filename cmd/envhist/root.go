// envhist keeps a local history of the test environments a QA engineer has
// been handed: cluster coordinates, credentials, test status, notes,
// tracker references. Records live in one JSON file; every command loads
// it, acts, and rewrites it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"envhist/internal/config"
	"envhist/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	store      string
	configPath string
	logLevel   string
	logFormat  string
}

// cfg is resolved once in the persistent pre-run; subcommands read it for
// defaults that flags did not override.
var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "envhist",
	Short: "Local history of ROSA/OpenShift QA test environments",
	Long: "Envhist records the test environments handed to the QA team\n" +
		"(cluster name, platform, API URL, credentials, status, notes) in a\n" +
		"local JSON file and offers list/search/stats/import commands plus an\n" +
		"interactive selector for reconnecting to past clusters.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		c, err := config.Resolve(rootFlags.configPath)
		if err != nil {
			return err
		}
		cfg = c

		levelStr := rootFlags.logLevel
		if levelStr == "" {
			levelStr = cfg.LogLevel
		}
		level, err := logging.ParseLevel(levelStr)
		if err != nil {
			return err
		}
		formatStr := rootFlags.logFormat
		if formatStr == "" {
			formatStr = cfg.LogFormat
		}
		logging.Init(level, formatStr)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.store, "store", "", "Store file path (default $ENVHIST_STORE or ~/.envhist.json)")
	pf.StringVar(&rootFlags.configPath, "config", "", "Config file path (default ~/.config/envhist/config.yaml)")
	pf.StringVar(&rootFlags.logLevel, "log-level", "", "Log level: debug|info|warn|error")
	pf.StringVar(&rootFlags.logFormat, "log-format", "", "Log format: text|json")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
