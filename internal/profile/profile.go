// Package profile holds the portfolio owner's biography record.
package profile

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Default returns the built-in profile.
func Default() (*Profile, error) {
	return Parse(defaultYAML)
}

// Load reads a profile from a YAML file. An empty path returns Default.
func Load(path string) (*Profile, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML profile.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate reports every structural problem found in p.
func (p *Profile) Validate() error {
	var errs []error
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, errors.New("profile: name is required"))
	}
	if len(p.Skills.Programming) == 0 {
		errs = append(errs, errors.New("profile: at least one programming skill is required"))
	}
	for _, g := range p.Skills.Groups() {
		for _, s := range g.Skills {
			if s.Name == "" {
				errs = append(errs, fmt.Errorf("profile: unnamed skill in %s", g.Label))
			}
			if s.Level < 0 || s.Level > 100 {
				errs = append(errs, fmt.Errorf("profile: skill %q level %d outside 0-100", s.Name, s.Level))
			}
		}
	}
	seen := make(map[string]bool, len(p.Projects))
	for i, pr := range p.Projects {
		if pr.Name == "" {
			errs = append(errs, fmt.Errorf("profile: project %d has no name", i))
			continue
		}
		key := strings.ToLower(pr.Name)
		if seen[key] {
			errs = append(errs, fmt.Errorf("profile: duplicate project %q", pr.Name))
		}
		seen[key] = true
	}
	return errors.Join(errs...)
}

// FirstName is the lower-cased first token of Name.
func (p *Profile) FirstName() string {
	fields := strings.Fields(strings.ToLower(p.Name))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// ExperienceAt returns the first experience entry whose organization
// contains org, case-insensitively.
func (p *Profile) ExperienceAt(org string) (Experience, bool) {
	org = strings.ToLower(org)
	for _, e := range p.Experience {
		if strings.Contains(strings.ToLower(e.Organization), org) {
			return e, true
		}
	}
	return Experience{}, false
}

// ExperienceAs returns the first experience entry whose role contains role.
func (p *Profile) ExperienceAs(role string) (Experience, bool) {
	role = strings.ToLower(role)
	for _, e := range p.Experience {
		if strings.Contains(strings.ToLower(e.Role), role) {
			return e, true
		}
	}
	return Experience{}, false
}

// SkillNames returns the names of up to n skills from list. n < 0 means all.
func SkillNames(list []Skill, n int) []string {
	if n < 0 || n > len(list) {
		n = len(list)
	}
	names := make([]string, 0, n)
	for _, s := range list[:n] {
		names = append(names, s.Name)
	}
	return names
}
