package main

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/sevenknights-calc/internal/domain/stats"
	"github.com/KirkDiggler/sevenknights-calc/internal/services/damage"
)

// batchFile is a list of named calculations. Stat values are strings so
// decimals survive YAML parsing untouched. stats is a complete sheet that
// replaces the profile and config.json; overrides are laid over whichever
// source applies.
type batchFile struct {
	Name     string         `yaml:"name"`
	Requests []batchRequest `yaml:"requests"`
}

type batchRequest struct {
	Label     string            `yaml:"label"`
	Character string            `yaml:"character"`
	Skill     string            `yaml:"skill"`
	Profile   string            `yaml:"profile"`
	Preset    string            `yaml:"preset"`
	Stats     map[string]string `yaml:"stats"`
	Overrides map[string]string `yaml:"overrides"`
}

func loadBatch(path string) (*batchFile, []*damage.Request, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return parseBatch(b)
}

func parseBatch(b []byte) (*batchFile, []*damage.Request, error) {
	var bf batchFile
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&bf); err != nil {
		return nil, nil, fmt.Errorf("parse batch: %w", err)
	}
	if len(bf.Requests) == 0 {
		return nil, nil, fmt.Errorf("batch has no requests")
	}

	reqs := make([]*damage.Request, 0, len(bf.Requests))
	for i, r := range bf.Requests {
		if r.Character == "" {
			return nil, nil, fmt.Errorf("request %d: character is required", i)
		}
		label := r.Label
		if label == "" {
			label = fmt.Sprintf("%s#%d", r.Character, i+1)
		}

		inline, err := parseStats(r.Stats)
		if err != nil {
			return nil, nil, fmt.Errorf("request %q: %w", label, err)
		}
		overrides, err := parseStats(r.Overrides)
		if err != nil {
			return nil, nil, fmt.Errorf("request %q overrides: %w", label, err)
		}

		reqs = append(reqs, &damage.Request{
			Label:         label,
			CharacterID:   r.Character,
			SkillKey:      r.Skill,
			ProfileID:     r.Profile,
			Stats:         inline,
			Overrides:     overrides,
			MonsterPreset: r.Preset,
		})
	}
	return &bf, reqs, nil
}

// parseStats converts string stat values to a mapping. An empty input
// yields a nil mapping so the service falls back to the profile or file.
func parseStats(in map[string]string) (stats.Mapping, error) {
	if len(in) == 0 {
		return nil, nil
	}
	raw := make(map[string]any, len(in))
	for k, v := range in {
		raw[k] = v
	}
	return stats.FromRaw(raw)
}
