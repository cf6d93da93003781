// Package catalog holds the standard steel section table used by the
// section selector.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gosteel/internal/section"
)

// SteelDensity in kg/m³.
const SteelDensity = 7850.0

//go:embed sections.yaml
var builtin []byte

// Entry is one catalog section.
type Entry struct {
	Designation string         `yaml:"designation" json:"designation"`
	Family      section.Family `yaml:"family" json:"family"`
	Dims        section.Dims   `yaml:"dims" json:"dims"`
}

// Spec returns the builder input for this entry.
func (e Entry) Spec(axis section.Axis) section.Spec {
	return section.Spec{Family: e.Family, Dims: e.Dims, Axis: axis}
}

// Profile builds the entry's profile.
func (e Entry) Profile() *section.Profile {
	return section.BuildProfile(e.Family, e.Dims)
}

// UnitMass returns the mass per meter length in kg/m, or 0 when the
// entry has no profile.
func (e Entry) UnitMass() float64 {
	p := e.Profile()
	if p == nil {
		return 0
	}
	return p.CalculateProperties().Area * SteelDensity
}

// Catalog is an immutable, ordered set of entries.
type Catalog struct {
	entries []Entry
	byName  map[string]int
}

type file struct {
	Sections []Entry `yaml:"sections"`
}

// Load returns the built-in catalog.
func Load() (*Catalog, error) {
	return Parse(builtin)
}

// LoadFile reads a catalog from a YAML file with the same layout as the
// built-in one.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog. Every entry must describe
// a buildable profile and designations must be unique.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	c := &Catalog{byName: make(map[string]int, len(f.Sections))}
	for i, e := range f.Sections {
		if e.Designation == "" {
			return nil, fmt.Errorf("entry %d has no designation", i+1)
		}
		key := normalize(e.Designation)
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("duplicate designation %q", e.Designation)
		}
		if _, err := section.ParseDims(e.Family, e.Dims, 0); err != nil {
			return nil, fmt.Errorf("%s: %w", e.Designation, err)
		}
		c.byName[key] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c, nil
}

func normalize(designation string) string {
	return strings.ToUpper(strings.ReplaceAll(designation, " ", ""))
}

// Lookup finds an entry by designation, ignoring case and spaces.
func (c *Catalog) Lookup(designation string) (Entry, bool) {
	i, ok := c.byName[normalize(designation)]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Entries returns all entries in catalog order.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// ByFamily returns the entries of one family sorted by unit mass.
func (c *Catalog) ByFamily(f section.Family) []Entry {
	var out []Entry
	for _, e := range c.entries {
		if e.Family == f {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UnitMass() < out[j].UnitMass()
	})
	return out
}

// Families lists the families present in the catalog, in enum order.
func (c *Catalog) Families() []section.Family {
	seen := make(map[section.Family]bool)
	for _, e := range c.entries {
		seen[e.Family] = true
	}
	var out []section.Family
	for _, f := range section.AllFamilies() {
		if seen[f] {
			out = append(out, f)
		}
	}
	return out
}
