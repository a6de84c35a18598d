// holofun resolves the storage layout of two-photon holography sessions and
// bundles the lab's Suite2p presets and trace plotting helpers.
//
// Usage:
//
//	holofun paths <root> <subject> <date> [-o table|markdown|json|yaml]
//	holofun results <subject> <date> [--root DIR] [--name NAME]
//	holofun ops [preset] [--set key=value]... [--format yaml|json]
//	holofun plot <traces.json> -o <figure> [--kind mean|by-cell|tuning]
//	holofun serve
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"holofun/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	logLevel  string
	logFormat string
}

var rootCmd = &cobra.Command{
	Use:   "holofun",
	Short: "Session path resolution and analysis helpers for holography experiments",
	Long: "holofun finds the server, results and raw imaging folders of one\n" +
		"(root, subject, date) session and the data files inside them.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:      true,
	PersistentPreRunE: initLogging,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(pathsCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(opsCmd)
	rootCmd.AddCommand(plotCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func initLogging(cmd *cobra.Command, _ []string) error {
	level, err := logging.ParseLevel(rootFlags.logLevel)
	if err != nil {
		return err
	}
	logging.Init(level, rootFlags.logFormat, cmd.ErrOrStderr())
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
