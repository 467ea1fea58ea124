// Package config loads asymptote run configuration from YAML or JSON files.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alexshd/asymptote"
)

// File is the top-level configuration document.
type File struct {
	Settings  Settings   `json:"settings,omitempty"`
	Workloads []Workload `json:"workloads,omitempty"`
}

// Settings overrides asymptote.Config fields. Zero values leave the
// corresponding default untouched.
type Settings struct {
	StabilityBudget    string  `json:"stabilityBudget,omitempty"`
	SamplingBudget     string  `json:"samplingBudget,omitempty"`
	SizeGrowth         float64 `json:"sizeGrowth,omitempty"`
	RepetitionGrowth   float64 `json:"repetitionGrowth,omitempty"`
	Tolerance          float64 `json:"tolerance,omitempty"`
	InitialRepetitions int     `json:"initialRepetitions,omitempty"`
	InitialSize        uint64  `json:"initialSize,omitempty"`
	MaxRepetitions     *int    `json:"maxRepetitions,omitempty"`
	CollectGarbage     bool    `json:"collectGarbage,omitempty"`
}

// Workload selects a built-in workload and optionally narrows its
// components or overrides settings for that workload alone.
type Workload struct {
	Name       string   `json:"name"`
	Components []string `json:"components,omitempty"`
	Settings   Settings `json:"settings,omitempty"`
}

// Load reads and parses a configuration file.
//
// The file format is determined by extension:
//   - .yaml, .yml -> YAML
//   - .json -> JSON
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data, path)
}

// Parse parses configuration data, validating it against the embedded
// schema before decoding.
//
// The format is determined by the extension in path. Unknown or empty
// extensions are parsed as YAML.
func Parse(data []byte, path string) (*File, error) {
	doc, err := toJSON(data, path)
	if err != nil {
		return nil, err
	}

	if err := validate(doc); err != nil {
		return nil, err
	}

	var file File
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	for i, w := range file.Workloads {
		if _, err := w.ComponentList(); err != nil {
			return nil, fmt.Errorf("workload %d (%s): %w", i, w.Name, err)
		}
	}

	return &file, nil
}

// toJSON normalizes a YAML or JSON document into JSON bytes.
func toJSON(data []byte, path string) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		var probe any
		if err := json.Unmarshal(data, &probe); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
		return data, nil
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	doc, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML config: %w", err)
	}
	return doc, nil
}

// ParseDurationString parses a duration string with support for common formats.
//
// Supported formats:
//   - Standard Go duration: "30s", "2m", "1h30m", "500ms"
//   - Seconds as integer: "30" (treated as 30 seconds)
func ParseDurationString(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(s)
	if err == nil {
		return d, nil
	}

	var seconds int
	var rest string
	if n, _ := fmt.Sscanf(s, "%d%s", &seconds, &rest); n == 1 {
		return time.Duration(seconds) * time.Second, nil
	}

	return 0, fmt.Errorf("invalid duration format: %s", s)
}

// Apply overlays the settings onto base and validates the result.
func (s Settings) Apply(base asymptote.Config) (asymptote.Config, error) {
	cfg := base

	if s.StabilityBudget != "" {
		d, err := ParseDurationString(s.StabilityBudget)
		if err != nil {
			return base, fmt.Errorf("stabilityBudget: %w", err)
		}
		cfg.StabilityBudget = d
	}
	if s.SamplingBudget != "" {
		d, err := ParseDurationString(s.SamplingBudget)
		if err != nil {
			return base, fmt.Errorf("samplingBudget: %w", err)
		}
		cfg.SamplingBudget = d
	}
	if s.SizeGrowth != 0 {
		cfg.SizeGrowth = s.SizeGrowth
	}
	if s.RepetitionGrowth != 0 {
		cfg.RepetitionGrowth = s.RepetitionGrowth
	}
	if s.Tolerance != 0 {
		cfg.Tolerance = s.Tolerance
	}
	if s.InitialRepetitions != 0 {
		cfg.InitialRepetitions = s.InitialRepetitions
	}
	if s.InitialSize != 0 {
		cfg.InitialSize = s.InitialSize
	}
	if s.MaxRepetitions != nil {
		cfg.MaxRepetitions = *s.MaxRepetitions
	}
	if s.CollectGarbage {
		cfg.CollectGarbage = true
	}

	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// ComponentList parses the workload's component names. An empty list
// returns nil, meaning the workload's own defaults.
func (w Workload) ComponentList() ([]asymptote.Component, error) {
	if len(w.Components) == 0 {
		return nil, nil
	}
	return asymptote.ParseComponents(strings.Join(w.Components, ","))
}

// Config applies the file-level settings and then the workload's own
// settings onto base.
func (f *File) Config(base asymptote.Config, w Workload) (asymptote.Config, error) {
	cfg, err := f.Settings.Apply(base)
	if err != nil {
		return base, fmt.Errorf("settings: %w", err)
	}
	cfg, err = w.Settings.Apply(cfg)
	if err != nil {
		return base, fmt.Errorf("workload %s settings: %w", w.Name, err)
	}
	return cfg, nil
}
