package rat

import (
	"sort"
	"strings"

	"github.com/nstehr/vimy/vimy-rat/model"
)

// TableEntry is one weighted row of a random assignment table. It holds
// either a unit or a salvage marker naming another faction, never both.
type TableEntry struct {
	Weight  int
	unit    *model.UnitRecord
	salvage *model.FactionRecord
}

func NewUnitEntry(weight int, u *model.UnitRecord) TableEntry {
	if u == nil {
		panic("rat: unit entry without unit")
	}
	return TableEntry{Weight: weight, unit: u}
}

func NewSalvageEntry(weight int, f *model.FactionRecord) TableEntry {
	if f == nil {
		panic("rat: salvage entry without faction")
	}
	return TableEntry{Weight: weight, salvage: f}
}

func (e TableEntry) IsUnit() bool { return e.unit != nil }

// Unit returns the entry's unit. Panics on a salvage entry.
func (e TableEntry) Unit() *model.UnitRecord {
	if e.unit == nil {
		panic("rat: Unit called on salvage entry")
	}
	return e.unit
}

// Salvage returns the faction a salvage entry refers to. Panics on a unit entry.
func (e TableEntry) Salvage() *model.FactionRecord {
	if e.salvage == nil {
		panic("rat: Salvage called on unit entry")
	}
	return e.salvage
}

func (e TableEntry) String() string {
	if e.unit != nil {
		return e.unit.Name()
	}
	if e.salvage != nil {
		return e.salvage.String()
	}
	return ""
}

// compareEntries puts salvage rows ahead of unit rows, then orders by name.
func compareEntries(a, b TableEntry) int {
	switch {
	case a.IsUnit() && !b.IsUnit():
		return 1
	case !a.IsUnit() && b.IsUnit():
		return -1
	}
	return strings.Compare(a.String(), b.String())
}

func sortEntries(entries []TableEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return compareEntries(entries[i], entries[j]) < 0
	})
}
