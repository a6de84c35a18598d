package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"holofun/internal/format"
	"holofun/internal/ops"
)

var opsFlags struct {
	set    []string
	format string
	list   bool
}

var opsCmd = &cobra.Command{
	Use:   "ops [preset]",
	Short: "Print a Suite2p parameter preset",
	Long: `Prints one of the lab's Suite2p presets (default when no name is given),
with optional key=value overrides, as YAML or JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOps,
}

func init() {
	f := opsCmd.Flags()
	f.StringArrayVar(&opsFlags.set, "set", nil, "Override a parameter, key=value (repeatable)")
	f.StringVar(&opsFlags.format, "format", "yaml", "Output format: yaml or json")
	f.BoolVar(&opsFlags.list, "list", false, "List presets instead")
}

func runOps(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if opsFlags.list {
		t := format.NewTable(format.ASCII)
		t.Header("Preset", "Description")
		for _, name := range ops.Names() {
			p, err := ops.Lookup(name)
			if err != nil {
				return err
			}
			t.Row(p.Name, p.Doc)
		}
		fmt.Fprintln(out, t.String())
		return nil
	}

	name := "default"
	if len(args) == 1 {
		name = args[0]
	}
	preset, err := ops.Lookup(name)
	if err != nil {
		return err
	}
	overrides, err := ops.ParseOverrides(opsFlags.set)
	if err != nil {
		return err
	}
	params := ops.Merge(preset.Params, overrides)

	switch strings.ToLower(opsFlags.format) {
	case "yaml", "yml":
		data, err := yaml.Marshal(map[string]any(params))
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = out.Write(data)
		return err
	case "json":
		data, err := json.MarshalIndent(params, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", opsFlags.format)
	}
}
