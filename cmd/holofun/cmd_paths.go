package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"holofun/internal/display"
	"holofun/internal/format"
	"holofun/internal/paths"
)

var pathsFlags struct {
	resolverFlags
	tiffBase     string
	frankenDrive string
	mustExist    bool
	keys         []string
	output       string
	get          string
}

var pathsCmd = &cobra.Command{
	Use:   "paths <root> <subject> <date>",
	Short: "Resolve the storage roots and data files of one session",
	Long: `Derives the lab server, results share and raw imaging share for a session,
checks that they exist and searches them for the known data artifacts.

Artifacts that are not found are reported as "path NA".`,
	Args: cobra.ExactArgs(3),
	RunE: runPaths,
}

func init() {
	f := pathsCmd.Flags()
	pathsFlags.register(pathsCmd)
	f.StringVar(&pathsFlags.tiffBase, "tiff-base", paths.DefaultTiffBase, "Raw imaging base path; env "+envTiffBase)
	f.StringVar(&pathsFlags.frankenDrive, "franken-drive", paths.DefaultFrankenDrive, "Lab server drive letter (windows); env "+envFrankenDrive)
	f.BoolVar(&pathsFlags.mustExist, "must-exist", true, "Fail when any storage root is missing")
	f.StringSliceVar(&pathsFlags.keys, "keys", nil, "Three output names for the roots (default srv,e,tiffs)")
	f.StringVarP(&pathsFlags.output, "output", "o", "table", "Output format: table, markdown, json, yaml")
	f.StringVar(&pathsFlags.get, "get", "", "Print only this entry's paths, one per line")
}

func runPaths(cmd *cobra.Command, args []string) error {
	fromEnv(cmd, "tiff-base", envTiffBase, &pathsFlags.tiffBase)
	fromEnv(cmd, "franken-drive", envFrankenDrive, &pathsFlags.frankenDrive)

	mode, err := format.ParseMode(pathsFlags.output)
	if err != nil {
		return err
	}
	r, err := pathsFlags.build(cmd)
	if err != nil {
		return err
	}

	req := paths.Request{
		Root:         args[0],
		Subject:      args[1],
		Date:         args[2],
		TiffBase:     pathsFlags.tiffBase,
		FrankenDrive: pathsFlags.frankenDrive,
		MustExist:    pathsFlags.mustExist,
	}
	if len(pathsFlags.keys) > 0 {
		if len(pathsFlags.keys) != 3 {
			return fmt.Errorf("--keys: want 3 names, got %d", len(pathsFlags.keys))
		}
		copy(req.Keys[:], pathsFlags.keys)
	}

	res, err := r.Resolve(cmd.Context(), req)
	var missing *paths.MissingRootsError
	if errors.As(err, &missing) {
		out := cmd.ErrOrStderr()
		fmt.Fprintf(out, "Missing storage roots for %s:\n", display.Subject(req.Subject, req.Date))
		for _, m := range missing.Missing {
			fmt.Fprintf(out, "  %s: %s\n", display.ArtifactWithKey(m.Key), m.Path)
		}
		return err
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if pathsFlags.get != "" {
		v, ok := res.Get(pathsFlags.get)
		if !ok {
			return fmt.Errorf("unknown entry %q (have %v)", pathsFlags.get, res.Keys())
		}
		if !v.Available() {
			fmt.Fprintln(out, paths.NotAvailable)
			return nil
		}
		for _, p := range v.Paths() {
			fmt.Fprintln(out, p)
		}
		return nil
	}

	text, err := format.Result(res, mode)
	if err != nil {
		return err
	}
	fmt.Fprint(out, text)
	return nil
}
