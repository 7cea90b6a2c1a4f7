package codegen

import (
	"errors"
	"fmt"
	"go/token"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidManifest is returned for manifests that cannot be generated from.
var ErrInvalidManifest = errors.New("invalid action manifest")

// reserved names are used by the generated method itself.
var reserved = map[string]bool{"a": true, "ctx": true, "err": true, "step": true}

// Manifest lists capabilities and their actions. It is the pre-computed
// input of generation; nothing is introspected at run time.
type Manifest struct {
	Capabilities []CapabilityManifest `yaml:"capabilities"`
}

// CapabilityManifest describes one capability provider.
type CapabilityManifest struct {
	Name    string           `yaml:"name"`
	Actions []ActionManifest `yaml:"actions"`
}

// ActionManifest describes one action.
type ActionManifest struct {
	Name   string  `yaml:"name"`
	Doc    string  `yaml:"doc"`
	Params []Param `yaml:"params"`
}

// LoadManifest reads and validates a YAML manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest parses and validates YAML manifest data.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks names are identifiers and actions are unique.
func (m *Manifest) Validate() error {
	seen := make(map[string]string)
	for _, c := range m.Capabilities {
		if c.Name == "" {
			return fmt.Errorf("%w: capability without name", ErrInvalidManifest)
		}
		for _, a := range c.Actions {
			if !token.IsIdentifier(a.Name) {
				return fmt.Errorf("%w: %s: action name %q is not an identifier", ErrInvalidManifest, c.Name, a.Name)
			}
			if owner, dup := seen[a.Name]; dup {
				return fmt.Errorf("%w: action %s declared by %s and %s", ErrInvalidManifest, a.Name, owner, c.Name)
			}
			seen[a.Name] = c.Name

			for _, p := range a.Params {
				if !token.IsIdentifier(p.Name) || reserved[p.Name] {
					return fmt.Errorf("%w: %s: invalid parameter name %q", ErrInvalidManifest, a.Name, p.Name)
				}
				if p.Type == "" {
					return fmt.Errorf("%w: %s: parameter %s has no type", ErrInvalidManifest, a.Name, p.Name)
				}
			}
		}
	}
	return nil
}

// Specs flattens the manifest into base step specs in declaration order.
func (m *Manifest) Specs() []GeneratedStepSpec {
	var specs []GeneratedStepSpec
	for _, c := range m.Capabilities {
		for _, a := range c.Actions {
			specs = append(specs, GeneratedStepSpec{
				Action:     a.Name,
				Capability: c.Name,
				Params:     copyParams(a.Params),
				Doc:        a.Doc,
			})
		}
	}
	return specs
}
