// Package ops holds the Suite2p parameter presets used by the lab.
//
// Presets are flat parameter tables handed to Suite2p as-is; nothing here
// checks them against Suite2p's own schema. Default is the general imaging
// configuration; the others are complete tables for a registration-only pass
// and two indicator-specific setups.
package ops

import (
	"errors"
	"fmt"
	"maps"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownPreset is returned by Lookup for an unregistered name.
var ErrUnknownPreset = errors.New("ops: unknown preset")

// Params maps a Suite2p parameter name to a scalar or list value.
type Params map[string]any

// Preset is a named parameter table.
type Preset struct {
	Name   string
	Doc    string
	Params Params
}

const fastDisk = "/mnt/fast"

func defaultParams() Params {
	return Params{
		// general
		"diameter":     10,
		"fast_disk":    fastDisk,
		"do_bidiphase": false,
		"save_mat":     false,
		"save_NWB":     false,
		"tau":          1.3,
		"combined":     false,

		// registration
		"do_registration":       true,
		"keep_movie_raw":        true, // two-step registration needs the raw movie
		"two_step_registration": true,
		"nimg_init":             800,
		"batch_size":            2000,
		"align_by_chan":         1, // 1-based, 2 for tdTomato
		"reg_tif":               true,
		"reg_tif_chan2":         true,
		"nonrigid":              true,

		// cell extraction
		"denoise":           false,
		"threshold_scaling": 1,
		"sparse_mode":       false,
		"max_iterations":    50,
		"high_pass":         100,

		// deconvolution
		"baseline":         "maximin",
		"win_baseline":     60.0,
		"sig_baseline":     10.0,
		"prctile_baseline": 8.0,
		"neucoeff":         0.7,
		"remove_artifacts": []int{75, 512 - 75},
	}
}

func registerOnlyParams() Params {
	return Params{
		"reg_tif":   true,
		"roidetect": false,
		"fast_disk": fastDisk,
	}
}

func gcamp8mParams() Params {
	return Params{
		"diameter":     8,
		"fast_disk":    fastDisk,
		"do_bidiphase": true,
		"save_mat":     false,
		"save_NWB":     false,
		"tau":          0.05,
		"combined":     false,

		"do_registration":       true,
		"keep_movie_raw":        false,
		"two_step_registration": false,
		"nimg_init":             800,
		"batch_size":            2000,
		"align_by_chan":         1,
		"nonrigid":              false,

		"denoise":           false,
		"threshold_scaling": 0.6,
		"sparse_mode":       false,
		"max_iterations":    50,
		"high_pass":         100,

		"baseline":         "maximin",
		"win_baseline":     60.0,
		"sig_baseline":     10.0,
		"prctile_baseline": 8.0,
		"neucoeff":         0.7,

		"classifier_path": "/home/kevinsit/.suite2p/classifiers/gcamp8m.npy",
	}
}

func redParams() Params {
	return Params{
		"fast_disk":    fastDisk,
		"do_bidiphase": true,
		"save_mat":     false,
		"save_NWB":     false,
		"tau":          1,
		"combined":     false,

		// cellpose
		"anatomical_only": 1,

		"do_registration":       true,
		"keep_movie_raw":        false,
		"two_step_registration": false,
		"nimg_init":             800,
		"batch_size":            2000,
		"align_by_chan":         2,
		"nonrigid":              false,

		"denoise":           false,
		"threshold_scaling": 0.6,
		"sparse_mode":       false,
		"max_iterations":    50,
		"high_pass":         100,

		"spikedetect": false,
	}
}

var registry = map[string]struct {
	doc    string
	params func() Params
}{
	"default":       {"general imaging defaults, two-step nonrigid registration", defaultParams},
	"register_only": {"register and write tiffs without ROI detection", registerOnlyParams},
	"gcamp8m":       {"GCaMP8m: small cells, fast decay, classifier", gcamp8mParams},
	"red":           {"red channel anatomy via cellpose, no spike detection", redParams},
}

// Names returns every preset name, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup returns a fresh copy of the named preset.
func Lookup(name string) (Preset, error) {
	e, ok := registry[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w %q (have %s)", ErrUnknownPreset, name, strings.Join(Names(), ", "))
	}
	return Preset{Name: name, Doc: e.doc, Params: e.params()}, nil
}

// Merge returns a new table with each overlay applied over base in order.
// None of the inputs are modified.
func Merge(base Params, overlays ...Params) Params {
	out := maps.Clone(base)
	if out == nil {
		out = Params{}
	}
	for _, o := range overlays {
		maps.Copy(out, o)
	}
	return out
}

// Keys returns the parameter names, sorted.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseOverride parses "key=value". The value is read as YAML, so "0.6"
// becomes a float, "true" a bool and "[75, 437]" a list.
func ParseOverride(s string) (string, any, error) {
	key, raw, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", nil, fmt.Errorf("ops: override %q must be key=value", s)
	}
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return "", nil, fmt.Errorf("ops: override %q: %w", s, err)
	}
	return key, v, nil
}

// ParseOverrides collects a list of "key=value" strings into a table.
func ParseOverrides(list []string) (Params, error) {
	out := make(Params, len(list))
	for _, s := range list {
		k, v, err := ParseOverride(s)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}
