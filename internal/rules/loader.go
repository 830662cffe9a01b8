package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"chorg/internal/sections"
)

// tomlDocument wraps the [[rules]] tables of a TOML rules file.
type tomlDocument struct {
	Rules []Spec `toml:"rules"`
}

// LoadFile reads a rules file and constructs the rule list in file order.
// The format is chosen by extension: .yaml/.yml and .toml are supported,
// everything else is treated as a JSON array.
func LoadFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var specs []Spec
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &specs); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		var doc tomlDocument
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		specs = doc.Rules
	default:
		if err := json.Unmarshal(data, &specs); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	return FromSpecs(specs)
}

// FromSpecs constructs rules from untyped records, preserving order.
func FromSpecs(specs []Spec) ([]Rule, error) {
	rs := make([]Rule, 0, len(specs))
	for i, s := range specs {
		r, err := FromSpec(s)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		rs = append(rs, r)
	}
	return rs, nil
}

// UnresolvedSectionError reports a sidebar_section value that matches no
// section id or display name in the workspace.
type UnresolvedSectionError struct {
	Ref string
}

func (e *UnresolvedSectionError) Error() string {
	return fmt.Sprintf("unresolved sidebar section %q", e.Ref)
}

// Resolve maps each rule's sidebar_section reference to a section id,
// trying id match first, then display name. An empty reference yields a
// mute-only rule (no destination). Resolution failures are fatal for the
// whole rule set; no partial result is returned.
func Resolve(rs []Rule, secs []sections.Section) ([]Rule, error) {
	byID := make(map[string]string, len(secs))
	byName := make(map[string]string, len(secs))
	for _, s := range secs {
		byID[s.ID] = s.ID
		if _, ok := byName[s.Name]; !ok {
			byName[s.Name] = s.ID
		}
	}

	resolved := make([]Rule, len(rs))
	for i, r := range rs {
		if r.SectionRef == "" {
			resolved[i] = r
			continue
		}
		if id, ok := byID[r.SectionRef]; ok {
			r.DestinationID = id
		} else if id, ok := byName[r.SectionRef]; ok {
			r.DestinationID = id
		} else {
			return nil, &UnresolvedSectionError{Ref: r.SectionRef}
		}
		resolved[i] = r
	}
	return resolved, nil
}
