// Package catalog provides named handpan scale presets.
//
// A built-in catalog is embedded in the binary. Users can add or override
// presets with a TOML file of the same shape; entries are merged by id.
//
//	[[preset]]
//	id = "kurd-9"
//	name = "D Kurd 9"
//	layout = "D/-A-Bb-C-D-E-F-G-A"
//	mode = "aeolian"
//
// Every preset is validated on load: its layout must parse and its mode must
// be known, so a preset id can always be rendered.
package catalog

import (
	"bytes"
	_ "embed"
	"os"
	"slices"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/panforge/panlayout/pkg/errors"
	"github.com/panforge/panlayout/pkg/notation"
	"github.com/panforge/panlayout/pkg/spell"
)

//go:embed presets.toml
var builtin []byte

// Preset is one named scale.
type Preset struct {
	ID          string `toml:"id" json:"id"`
	Name        string `toml:"name" json:"name"`
	Layout      string `toml:"layout" json:"layout"`
	Mode        string `toml:"mode" json:"mode"`
	Description string `toml:"description,omitempty" json:"description,omitempty"`
}

// Validate checks the id, the mode and that the layout parses.
func (p Preset) Validate() error {
	if err := errors.ValidatePresetID(p.ID); err != nil {
		return err
	}
	if p.Name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "preset %s: name is required", p.ID)
	}
	if _, err := spell.ParseMode(p.Mode); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidMode, err, "preset %s", p.ID)
	}
	if _, err := notation.Parse(p.Layout); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidLayout, err, "preset %s", p.ID)
	}
	return nil
}

// Catalog is an ordered set of presets keyed by id.
// It is safe for concurrent reads once loaded.
type Catalog struct {
	byID  map[string]Preset
	order []string
}

type file struct {
	Presets []Preset `toml:"preset"`
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{byID: make(map[string]Preset)}
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	c := New()
	if err := c.MergeTOML(builtin); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "built-in presets")
	}
	return c, nil
}

// Load returns the built-in catalog with the presets in path merged over it.
// An empty path or a missing file yields the built-in catalog alone.
func Load(path string) (*Catalog, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	if err := c.MergeTOML(data); err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "load %s", path)
	}
	return c, nil
}

// ParseTOML decodes and validates presets from a TOML document.
func ParseTOML(data []byte) ([]Preset, error) {
	var f file
	if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode presets")
	}
	for _, p := range f.Presets {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	return f.Presets, nil
}

// MergeTOML parses data and merges its presets into c.
// Nothing is merged if any preset is invalid.
func (c *Catalog) MergeTOML(data []byte) error {
	ps, err := ParseTOML(data)
	if err != nil {
		return err
	}
	c.Merge(ps...)
	return nil
}

// Merge adds presets, replacing existing ones with the same id in place.
func (c *Catalog) Merge(ps ...Preset) {
	for _, p := range ps {
		if _, ok := c.byID[p.ID]; !ok {
			c.order = append(c.order, p.ID)
		}
		c.byID[p.ID] = p
	}
}

// Get returns the preset with the given id.
func (c *Catalog) Get(id string) (Preset, error) {
	p, ok := c.byID[id]
	if !ok {
		return Preset{}, errors.New(errors.ErrCodePresetNotFound, "preset not found: %s", id)
	}
	return p, nil
}

// List returns every preset in catalog order.
func (c *Catalog) List() []Preset {
	out := make([]Preset, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// IDs returns the preset ids sorted alphabetically, for shell completion.
func (c *Catalog) IDs() []string {
	ids := slices.Clone(c.order)
	sort.Strings(ids)
	return ids
}

// Len returns the number of presets.
func (c *Catalog) Len() int {
	return len(c.order)
}
