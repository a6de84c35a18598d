// Package mcp exposes path resolution and Suite2p presets as MCP tools.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"holofun/internal/display"
	"holofun/internal/logging"
	"holofun/internal/ops"
	"holofun/internal/paths"
)

// Server wraps the MCP SDK server around a path resolver.
type Server struct {
	MCPServer *sdkmcp.Server

	resolver *paths.Resolver
	log      *slog.Logger
}

// NewServer registers the holofun tools on a fresh SDK server.
func NewServer(r *paths.Resolver, version string) *Server {
	if version == "" {
		version = "dev"
	}
	s := &Server{resolver: r, log: logging.New("mcp")}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "holofun", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "resolve_paths",
		Description: "Resolve the storage roots and data artifacts of one imaging session (root, subject, date).",
	}, s.handleResolvePaths)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "list_presets",
		Description: "List the Suite2p parameter presets.",
	}, s.handleListPresets)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_preset",
		Description: "Get one Suite2p preset, optionally with key=value overrides applied.",
	}, s.handleGetPreset)
}

type resolvePathsInput struct {
	Root         string   `json:"root" jsonschema:"experiment root folder name"`
	Subject      string   `json:"subject" jsonschema:"subject (mouse) identifier"`
	Date         string   `json:"date" jsonschema:"session date, usually YYMMDD or YYYYMMDD"`
	TiffBase     string   `json:"tiff_base,omitempty" jsonschema:"raw imaging base path, default f:/experiments"`
	FrankenDrive string   `json:"franken_drive,omitempty" jsonschema:"drive letter of the lab server on windows, default x"`
	MustExist    *bool    `json:"must_exist,omitempty" jsonschema:"fail when any storage root is missing, default true"`
	Keys         []string `json:"keys,omitempty" jsonschema:"three output names for the roots, default srv, e, tiffs"`
}

type resolvedEntry struct {
	Name      string   `json:"name"`
	Label     string   `json:"label"`
	Available bool     `json:"available"`
	Paths     []string `json:"paths"`
}

type resolvePathsOutput struct {
	Platform string          `json:"platform"`
	Entries  []resolvedEntry `json:"entries"`
}

type listPresetsInput struct{}

type presetSummary struct {
	Name string `json:"name"`
	Doc  string `json:"doc"`
}

type listPresetsOutput struct {
	Presets []presetSummary `json:"presets"`
}

type getPresetInput struct {
	Name      string   `json:"name" jsonschema:"preset name (default, register_only, gcamp8m, red)"`
	Overrides []string `json:"overrides,omitempty" jsonschema:"overrides as key=value pairs, applied on top of the preset"`
}

type getPresetOutput struct {
	Name   string         `json:"name"`
	Doc    string         `json:"doc"`
	Params map[string]any `json:"params"`
}

func (s *Server) handleResolvePaths(ctx context.Context, _ *sdkmcp.CallToolRequest, input resolvePathsInput) (*sdkmcp.CallToolResult, resolvePathsOutput, error) {
	req := paths.DefaultRequest(input.Root, input.Subject, input.Date)
	req.TiffBase = input.TiffBase
	req.FrankenDrive = input.FrankenDrive
	if input.MustExist != nil {
		req.MustExist = *input.MustExist
	}
	switch len(input.Keys) {
	case 0:
	case 3:
		copy(req.Keys[:], input.Keys)
	default:
		return nil, resolvePathsOutput{}, fmt.Errorf("keys: want 3 names, got %d", len(input.Keys))
	}

	res, err := s.resolver.Resolve(ctx, req)
	if err != nil {
		var missing *paths.MissingRootsError
		if errors.As(err, &missing) {
			s.log.Warn("resolve_paths: roots missing", "keys", missing.Keys())
		}
		return nil, resolvePathsOutput{}, fmt.Errorf("resolve_paths: %w", err)
	}

	out := resolvePathsOutput{Platform: s.resolver.Platform().Name()}
	for _, e := range res.Entries() {
		ps := append(make([]string, 0, 1), e.Value.Paths()...)
		out.Entries = append(out.Entries, resolvedEntry{
			Name:      e.Name,
			Label:     display.Artifact(e.Name),
			Available: e.Value.Available(),
			Paths:     ps,
		})
	}
	return nil, out, nil
}

func (s *Server) handleListPresets(_ context.Context, _ *sdkmcp.CallToolRequest, _ listPresetsInput) (*sdkmcp.CallToolResult, listPresetsOutput, error) {
	var out listPresetsOutput
	for _, name := range ops.Names() {
		p, err := ops.Lookup(name)
		if err != nil {
			return nil, listPresetsOutput{}, err
		}
		out.Presets = append(out.Presets, presetSummary{Name: p.Name, Doc: p.Doc})
	}
	return nil, out, nil
}

func (s *Server) handleGetPreset(_ context.Context, _ *sdkmcp.CallToolRequest, input getPresetInput) (*sdkmcp.CallToolResult, getPresetOutput, error) {
	p, err := ops.Lookup(input.Name)
	if err != nil {
		return nil, getPresetOutput{}, err
	}
	overrides, err := ops.ParseOverrides(input.Overrides)
	if err != nil {
		return nil, getPresetOutput{}, err
	}
	return nil, getPresetOutput{
		Name:   p.Name,
		Doc:    p.Doc,
		Params: map[string]any(ops.Merge(p.Params, overrides)),
	}, nil
}
