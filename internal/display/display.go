// Package display provides human-readable names for catalog and drive keys.
//
// Keys stay the machine form in JSON, YAML and map lookups; use these names
// in tables and log messages meant for people.
package display

import "strings"

var artifacts = map[string]string{
	"setupdaq":      "Setup DAQ log",
	"s2p":           "Suite2p output",
	"clicked_cells": "Clicked-cell mask",
	"mm3d":          "3-D mask image",
	"img920":        "920 nm images",
	"img1020":       "1020 nm images",
	"img800":        "800 nm images",
	"ori":           "Orientation tuning",
	"ret":           "Retinotopy",
	"si_online":     "ScanImage online ROIs",
}

var drives = map[string]string{
	"srv":   "Lab server",
	"e":     "Results share",
	"tiffs": "Raw imaging share",
}

// Artifact returns the human-readable name for an artifact key.
// Unknown keys are returned as-is.
func Artifact(key string) string {
	if name, ok := artifacts[key]; ok {
		return name
	}
	if name, ok := drives[key]; ok {
		return name
	}
	return key
}

// ArtifactWithKey returns "Suite2p output (s2p)" format.
func ArtifactWithKey(key string) string {
	name := Artifact(key)
	if name == key {
		return key
	}
	return name + " (" + key + ")"
}

// Subject formats a session as "M01 / 220101".
func Subject(subject, date string) string {
	return strings.TrimSpace(subject) + " / " + strings.TrimSpace(date)
}
