package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"holofun/internal/logging"
	"holofun/internal/paths"
)

const (
	envRoot         = "HOLOFUN_ROOT"
	envTiffBase     = "HOLOFUN_TIFF_BASE"
	envFrankenDrive = "HOLOFUN_FRANKEN_DRIVE"
	envCatalog      = "HOLOFUN_CATALOG"
)

// fromEnv fills *dst from the environment when the flag was not set.
func fromEnv(cmd *cobra.Command, flag, env string, dst *string) {
	if cmd.Flags().Changed(flag) {
		return
	}
	if v, ok := os.LookupEnv(env); ok && v != "" {
		*dst = v
	}
}

type resolverFlags struct {
	catalog  string
	platform string
	mount    string
	parallel int
}

func (f *resolverFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.catalog, "catalog", "", "Artifact catalog file (YAML or JSON); env "+envCatalog)
	fs.StringVar(&f.platform, "platform", "auto", "Drive convention: auto, unix or windows")
	fs.StringVar(&f.mount, "mount", "", "Mount point for the unix convention (default /mnt)")
	fs.IntVar(&f.parallel, "parallel", paths.DefaultParallel, "Concurrent artifact searches")
}

func (f *resolverFlags) build(cmd *cobra.Command) (*paths.Resolver, error) {
	fromEnv(cmd, "catalog", envCatalog, &f.catalog)

	opts := []paths.Option{
		paths.WithParallel(f.parallel),
		paths.WithLogger(logging.New("paths")),
	}
	switch strings.ToLower(f.platform) {
	case "", "auto":
		if f.mount != "" && paths.DetectPlatform().Name() == "unix" {
			opts = append(opts, paths.WithPlatform(paths.Unix{Mount: f.mount}))
		}
	case "unix":
		opts = append(opts, paths.WithPlatform(paths.Unix{Mount: f.mount}))
	case "windows":
		opts = append(opts, paths.WithPlatform(paths.Windows{}))
	default:
		return nil, fmt.Errorf("unknown platform %q (want auto, unix or windows)", f.platform)
	}
	if f.catalog != "" {
		c, err := paths.LoadCatalog(f.catalog)
		if err != nil {
			return nil, err
		}
		opts = append(opts, paths.WithCatalog(c))
	}
	return paths.New(opts...)
}

// parseInts parses "1,4,7" into indices. An empty string means nil.
func parseInts(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("bad index %q: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}
