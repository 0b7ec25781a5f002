// Package conda models declared conda environments and their packages.
//
// An environment descriptor (environment.yml or a .json export) declares a
// name, a list of channels, and a list of dependencies. Dependencies are
// either plain conda specs ("numpy=1.21.0=py39h7f8727e_0") or a nested pip
// section with pip-style specs ("requests==2.26.0").
//
// Parsing here is deliberately forgiving: a spec that cannot be fully
// decomposed still yields a Package with at least a name. Versions and builds
// are optional everywhere; enrichment fills in sizes and latest versions
// later.
package conda

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Package is one declared package in an environment.
//
// Name is the only required field. Version, Build, and Channel come from the
// declared spec; Size, IsOutdated, and LatestVersion are filled by enrichment
// and stay zero when enrichment is skipped or fails.
type Package struct {
	Name          string `json:"name" bson:"name" yaml:"name"`
	Version       string `json:"version,omitempty" bson:"version,omitempty" yaml:"version,omitempty"`
	Build         string `json:"build,omitempty" bson:"build,omitempty" yaml:"build,omitempty"`
	Channel       string `json:"channel,omitempty" bson:"channel,omitempty" yaml:"channel,omitempty"`
	Size          int64  `json:"size,omitempty" bson:"size,omitempty" yaml:"size,omitempty"`
	IsPinned      bool   `json:"is_pinned" bson:"is_pinned" yaml:"is_pinned"`
	IsOutdated    bool   `json:"is_outdated" bson:"is_outdated" yaml:"is_outdated"`
	LatestVersion string `json:"latest_version,omitempty" bson:"latest_version,omitempty" yaml:"latest_version,omitempty"`
}

// Display renders the package for terminal output, e.g. "numpy 1.21.0" or
// "requests 2.26.0 (pip)". Channel "defaults" is omitted like conda does.
func (p Package) Display() string {
	s := p.Name
	if p.Version != "" {
		s += " " + p.Version
	}
	if p.Channel != "" && p.Channel != "defaults" {
		s += " (" + p.Channel + ")"
	}
	return s
}

// Environment is a parsed environment descriptor.
type Environment struct {
	Name         string       `json:"name" yaml:"name"`
	Channels     []string     `json:"channels,omitempty" yaml:"channels,omitempty"`
	Dependencies []Dependency `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// Dependency is one entry in an environment's dependency list.
// Exactly one of Spec or Pip is set: Spec for plain conda entries,
// Pip for the nested "pip:" section.
type Dependency struct {
	Spec string   // conda spec string, e.g. "numpy=1.21.0"
	Pip  []string // pip specs from a "pip:" mapping entry
}

// UnmarshalYAML decodes either a scalar spec or a {pip: [...]} mapping.
func (d *Dependency) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return value.Decode(&d.Spec)
	case yaml.MappingNode:
		var m struct {
			Pip []string `yaml:"pip"`
		}
		if err := value.Decode(&m); err != nil {
			return err
		}
		d.Pip = m.Pip
		return nil
	default:
		return fmt.Errorf("unsupported dependency entry (line %d)", value.Line)
	}
}

// MarshalYAML re-emits the entry in its original shape.
func (d Dependency) MarshalYAML() (any, error) {
	if d.Pip != nil {
		return map[string][]string{"pip": d.Pip}, nil
	}
	return d.Spec, nil
}

// UnmarshalJSON decodes either a string spec or a {"pip": [...]} object.
func (d *Dependency) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		d.Spec = s
		return nil
	}
	var m struct {
		Pip []string `json:"pip"`
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("unsupported dependency entry: %s", data)
	}
	d.Pip = m.Pip
	return nil
}

// MarshalJSON re-emits the entry in its original shape.
func (d Dependency) MarshalJSON() ([]byte, error) {
	if d.Pip != nil {
		return json.Marshal(map[string][]string{"pip": d.Pip})
	}
	return json.Marshal(d.Spec)
}

// Packages flattens the environment's dependency list into Package records.
// Conda entries keep their declared channel (if any); pip entries get the
// synthetic channel "pip" so the two ecosystems stay distinguishable.
func (e *Environment) Packages() []Package {
	var pkgs []Package
	for _, dep := range e.Dependencies {
		if dep.Pip != nil {
			for _, spec := range dep.Pip {
				p := ParseSpec(spec)
				if p.Name == "" {
					continue
				}
				p.Channel = "pip"
				pkgs = append(pkgs, p)
			}
			continue
		}
		if p := ParseSpec(dep.Spec); p.Name != "" {
			pkgs = append(pkgs, p)
		}
	}
	return pkgs
}

// PackageNames returns the declared package names in declaration order.
func (e *Environment) PackageNames() []string {
	pkgs := e.Packages()
	names := make([]string, len(pkgs))
	for i, p := range pkgs {
		names[i] = p.Name
	}
	return names
}
