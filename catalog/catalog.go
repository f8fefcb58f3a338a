package catalog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"github.com/nstehr/vimy/vimy-rat/model"
)

var (
	ErrUnknownFaction = errors.New("unknown faction")
	ErrUnknownUnit    = errors.New("unknown unit")
)

// File is the on-disk catalog layout.
type File struct {
	Factions     []*model.FactionRecord `yaml:"factions"`
	Units        []*model.UnitRecord    `yaml:"units"`
	Availability []Availability         `yaml:"availability"`
	Salvage      []SalvageRule          `yaml:"salvage"`
}

// Availability makes a unit appear in a faction's tables.
type Availability struct {
	Faction string          `yaml:"faction"`
	Unit    string          `yaml:"unit"` // unit display name
	Weight  int             `yaml:"weight"`
	Years   model.YearRange `yaml:"years,omitempty"`
	// Ratings overrides Weight for specific equipment ratings.
	Ratings map[string]int `yaml:"ratings,omitempty"`
}

func (a Availability) weightFor(rating string) int {
	if w, ok := a.Ratings[rating]; ok {
		return w
	}
	return a.Weight
}

// SalvageRule lists the factions a faction captures equipment from.
type SalvageRule struct {
	Faction string          `yaml:"faction"`
	Years   model.YearRange `yaml:"years,omitempty"`
	From    map[string]int  `yaml:"from"`
}

// Catalog is an in-memory unit catalog and faction registry.
type Catalog struct {
	factions map[string]*model.FactionRecord
	units    map[string]*model.UnitRecord
	avail    map[string][]Availability
	salvage  map[string][]SalvageRule
}

// Open reads a catalog file. Files ending in .zst are zstd-compressed.
func Open(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	c, err := Load(r)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	slog.Info("catalog loaded", "path", path, "factions", len(c.factions), "units", len(c.units))
	return c, nil
}

// Load reads, validates and indexes a YAML catalog.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if err := Validate(data); err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return New(f)
}

// New indexes f, checking that every reference resolves.
func New(f File) (*Catalog, error) {
	c := &Catalog{
		factions: make(map[string]*model.FactionRecord, len(f.Factions)),
		units:    make(map[string]*model.UnitRecord, len(f.Units)),
		avail:    make(map[string][]Availability),
		salvage:  make(map[string][]SalvageRule),
	}
	for _, fr := range f.Factions {
		c.factions[fr.Key()] = fr
	}
	for _, fr := range f.Factions {
		for _, p := range fr.Parents {
			if _, ok := c.factions[p]; !ok {
				return nil, fmt.Errorf("faction %s parent %q: %w", fr.Key(), p, ErrUnknownFaction)
			}
		}
	}
	for _, u := range f.Units {
		c.units[u.Name()] = u
	}
	for _, a := range f.Availability {
		if _, ok := c.factions[a.Faction]; !ok {
			return nil, fmt.Errorf("availability of %q: %w %q", a.Unit, ErrUnknownFaction, a.Faction)
		}
		if _, ok := c.units[a.Unit]; !ok {
			return nil, fmt.Errorf("availability for %s: %w %q", a.Faction, ErrUnknownUnit, a.Unit)
		}
		c.avail[a.Faction] = append(c.avail[a.Faction], a)
	}
	for _, s := range f.Salvage {
		if _, ok := c.factions[s.Faction]; !ok {
			return nil, fmt.Errorf("salvage rule: %w %q", ErrUnknownFaction, s.Faction)
		}
		for key := range s.From {
			if _, ok := c.factions[key]; !ok {
				return nil, fmt.Errorf("salvage rule for %s: %w %q", s.Faction, ErrUnknownFaction, key)
			}
		}
		c.salvage[s.Faction] = append(c.salvage[s.Faction], s)
	}
	return c, nil
}

// Faction looks up a faction by key.
func (c *Catalog) Faction(key string) (*model.FactionRecord, error) {
	f, ok := c.factions[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFaction, key)
	}
	return f, nil
}

// Factions returns every faction sorted by key.
func (c *Catalog) Factions() []*model.FactionRecord {
	out := make([]*model.FactionRecord, 0, len(c.factions))
	for _, f := range c.factions {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// Unit looks up a unit by display name.
func (c *Catalog) Unit(name string) (*model.UnitRecord, error) {
	u, ok := c.units[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
	}
	return u, nil
}
