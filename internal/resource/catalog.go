// Package resource declares the static catalog of gated page resources and
// the loader that prefetches them once consent permits.
package resource

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v2"

	"consentgate/internal/consent/models"
	dErrors "consentgate/pkg/domain-errors"
)

// Kind distinguishes how a resource is injected into the page.
type Kind string

const (
	KindScript     Kind = "script"
	KindStylesheet Kind = "stylesheet"
)

// ValidKinds is the single source of truth for all valid resource kinds.
var ValidKinds = map[Kind]bool{
	KindScript:     true,
	KindStylesheet: true,
}

// IsValid checks if the kind is one of the supported enum values.
func (k Kind) IsValid() bool {
	return ValidKinds[k]
}

// Descriptor declares one loadable resource. Identity is the Identifier;
// the category is assigned at declaration time, never inferred at runtime.
type Descriptor struct {
	Identifier  string          `yaml:"identifier" json:"identifier"`
	Category    models.Category `yaml:"category" json:"category"`
	Kind        Kind            `yaml:"kind" json:"kind"`
	Integrity   string          `yaml:"integrity,omitempty" json:"integrity,omitempty"`
	CrossOrigin bool            `yaml:"crossOrigin,omitempty" json:"crossOrigin,omitempty"`
}

// Validate checks the descriptor's declaration-time invariants.
func (d Descriptor) Validate() error {
	if d.Identifier == "" {
		return dErrors.New(dErrors.CodeValidation, "resource identifier required")
	}
	if !d.Category.IsValid() {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown resource category %q for %s", d.Category, d.Identifier))
	}
	if !d.Kind.IsValid() {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown resource kind %q for %s", d.Kind, d.Identifier))
	}
	if d.Integrity != "" {
		if _, _, err := parseIntegrity(d.Integrity); err != nil {
			return dErrors.Wrap(err, dErrors.CodeValidation, fmt.Sprintf("invalid integrity for %s", d.Identifier))
		}
	}
	return nil
}

// Essential reports whether the resource belongs to the always-allowed category.
func (d Descriptor) Essential() bool {
	return d.Category == models.CategoryEssential
}

// Catalog is an ordered, immutable set of descriptors partitioned by category.
type Catalog struct {
	ordered    []Descriptor
	byCategory map[models.Category][]Descriptor
}

// NewCatalog validates the descriptors and fixes them in declaration order.
func NewCatalog(descriptors []Descriptor) (*Catalog, error) {
	seen := make(map[string]bool, len(descriptors))
	c := &Catalog{
		ordered:    make([]Descriptor, 0, len(descriptors)),
		byCategory: make(map[models.Category][]Descriptor),
	}
	for _, d := range descriptors {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if seen[d.Identifier] {
			return nil, dErrors.New(dErrors.CodeConflict, fmt.Sprintf("duplicate resource identifier %q", d.Identifier))
		}
		seen[d.Identifier] = true
		c.ordered = append(c.ordered, d)
		c.byCategory[d.Category] = append(c.byCategory[d.Category], d)
	}
	return c, nil
}

type catalogFile struct {
	Resources []Descriptor `yaml:"resources"`
}

// ParseCatalog builds a catalog from YAML bytes.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.UnmarshalStrict(data, &file); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "failed to parse resource catalog")
	}
	return NewCatalog(file.Resources)
}

// LoadCatalog reads and parses a YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeNotFound, fmt.Sprintf("failed to read resource catalog %s", path))
	}
	return ParseCatalog(data)
}

// All returns the descriptors in declaration order.
func (c *Catalog) All() []Descriptor {
	out := make([]Descriptor, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Category returns the descriptors of one category in declaration order.
func (c *Catalog) Category(cat models.Category) []Descriptor {
	src := c.byCategory[cat]
	out := make([]Descriptor, len(src))
	copy(out, src)
	return out
}

// Allowed returns the descriptors permitted under the given decision,
// in declaration order.
func (c *Catalog) Allowed(d models.Decision) []Descriptor {
	var out []Descriptor
	for _, desc := range c.ordered {
		if d.Allows(desc.Category) {
			out = append(out, desc)
		}
	}
	return out
}

// Withheld returns the descriptors blocked under the given decision,
// in declaration order.
func (c *Catalog) Withheld(d models.Decision) []Descriptor {
	var out []Descriptor
	for _, desc := range c.ordered {
		if !d.Allows(desc.Category) {
			out = append(out, desc)
		}
	}
	return out
}

// Len reports the number of declared resources.
func (c *Catalog) Len() int {
	return len(c.ordered)
}
