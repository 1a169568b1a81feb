// Package rules loads the warning-filter keyword rules.
//
// The filter that decides which pre-play warnings survive diff mode is a
// best-effort substring match, so the keyword lists are user-editable: a
// small YAML file can replace the built-in defaults.
package rules

import (
	"fmt"
	"os"

	"github.com/patrickjeremic/ansible-log/internal/config"
	"github.com/patrickjeremic/ansible-log/internal/render"
	"gopkg.in/yaml.v3"
)

// Rules is the on-disk shape of a rules file.
type Rules struct {
	Allow []string `yaml:"allow"` // Keep warnings containing any of these
	Deny  []string `yaml:"deny"`  // Drop warnings containing any of these
}

// Load reads a rules file.
func Load(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	return Parse(data)
}

// Parse decodes rules from YAML bytes.
func Parse(data []byte) (*Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}
	return &r, nil
}

// Filter converts the rules into a severity filter. Empty lists fall back
// to the built-in defaults so a partial file stays useful.
func (r *Rules) Filter() render.SeverityFilter {
	f := render.DefaultSeverityFilter()
	if len(r.Allow) > 0 {
		f.Allow = r.Allow
	}
	if len(r.Deny) > 0 {
		f.Deny = r.Deny
	}
	return f
}

// FromConfig resolves the effective filter: built-in defaults, overridden
// by config lists, overridden by the rules file when one is configured.
func FromConfig(cfg *config.Config) (render.SeverityFilter, error) {
	f := render.DefaultSeverityFilter()
	if len(cfg.Filter.Allow) > 0 {
		f.Allow = cfg.Filter.Allow
	}
	if len(cfg.Filter.Deny) > 0 {
		f.Deny = cfg.Filter.Deny
	}
	if cfg.Filter.RulesFile == "" {
		return f, nil
	}
	r, err := Load(cfg.Filter.RulesFile)
	if err != nil {
		return f, err
	}
	if len(r.Allow) > 0 {
		f.Allow = r.Allow
	}
	if len(r.Deny) > 0 {
		f.Deny = r.Deny
	}
	return f, nil
}
