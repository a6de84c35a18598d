package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"holofun/internal/paths"
)

var resultsFlags struct {
	root  string
	name  string
	chdir bool
}

var resultsCmd = &cobra.Command{
	Use:   "results <subject> <date>",
	Short: "Create the results folder for a session and print its path",
	Long: `Creates <root>/<subject>/<date>/<name> with parents. Use --name=- to stop at
the date folder.`,
	Args: cobra.ExactArgs(2),
	RunE: runResults,
}

func init() {
	f := resultsCmd.Flags()
	f.StringVar(&resultsFlags.root, "root", ".", "Base folder; env "+envRoot)
	f.StringVar(&resultsFlags.name, "name", paths.DefaultResultsFolder, "Sub-folder name, - for none")
	f.BoolVar(&resultsFlags.chdir, "chdir", false, "Change into the folder (useful with exec)")
}

func runResults(cmd *cobra.Command, args []string) error {
	fromEnv(cmd, "root", envRoot, &resultsFlags.root)

	dir, err := paths.MakeResultsFolder(resultsFlags.root, args[0], args[1], resultsFlags.name)
	if err != nil {
		return err
	}
	if resultsFlags.chdir {
		if err := os.Chdir(dir); err != nil {
			return fmt.Errorf("chdir: %w", err)
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), dir)
	return nil
}
