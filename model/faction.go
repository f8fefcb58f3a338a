package model

import "sort"

// YearRange is an inclusive span of years. End == 0 means open-ended.
type YearRange struct {
	Start int `yaml:"start" json:"start"`
	End   int `yaml:"end,omitempty" json:"end,omitempty"`
}

func (r YearRange) Contains(year int) bool {
	return year >= r.Start && (r.End == 0 || year <= r.End)
}

// EraName is a display name that takes effect in Year.
type EraName struct {
	Year int    `yaml:"year" json:"year"`
	Name string `yaml:"name" json:"name"`
}

// FactionRecord describes an organization that fields units. Factions
// change names over time and may be active across several disjoint periods.
type FactionRecord struct {
	ID      string      `yaml:"key" json:"key"`
	Name    string      `yaml:"name" json:"name"`
	Names   []EraName   `yaml:"names,omitempty" json:"names,omitempty"`
	Years   []YearRange `yaml:"years,omitempty" json:"years,omitempty"`
	Clan    bool        `yaml:"clan,omitempty" json:"clan,omitempty"`
	Parents []string    `yaml:"parents,omitempty" json:"parents,omitempty"`
}

// Key is the faction's stable identity used for lookups and caching.
func (f *FactionRecord) Key() string { return f.ID }

// IsClan selects the "Isorla" label for salvage rows.
func (f *FactionRecord) IsClan() bool { return f.Clan }

// IsActiveInYear reports whether the faction exists in year. A faction with
// no recorded ranges is always active.
func (f *FactionRecord) IsActiveInYear(year int) bool {
	if len(f.Years) == 0 {
		return true
	}
	for _, r := range f.Years {
		if r.Contains(year) {
			return true
		}
	}
	return false
}

// NameInYear returns the most recent era name in effect for year, falling
// back to Name.
func (f *FactionRecord) NameInYear(year int) string {
	if len(f.Names) == 0 {
		return f.Name
	}
	names := make([]EraName, len(f.Names))
	copy(names, f.Names)
	sort.Slice(names, func(i, j int) bool { return names[i].Year < names[j].Year })

	name := f.Name
	for _, n := range names {
		if n.Year > year {
			break
		}
		name = n.Name
	}
	return name
}

func (f *FactionRecord) String() string { return f.Name }
