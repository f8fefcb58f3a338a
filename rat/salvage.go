package rat

import (
	"log/slog"

	"github.com/nstehr/vimy/vimy-rat/model"
)

// generateSalvage picks a salvage faction and draws from that faction's
// table five years earlier, building and caching it on first use. A table
// without units is discarded and its row removed; the loop repeats until a
// table with units is found or no salvage rows remain. Caller holds t.mu.
func (t *UnitTable) generateSalvage(filter UnitFilter) *model.UnitRecord {
	for t.salvage.Total() > 0 {
		f := t.salvage.Draw(t.rng.Intn(t.salvage.Total()))
		sub, ok := t.cache[f.Key()]
		if !ok {
			sub = New(t.gen, t.salvageParams(f), WithRandom(t.rng))
		}
		if sub.HasUnits() {
			t.cache[f.Key()] = sub
			return sub.Generate(filter)
		}
		t.removeSalvage(f.Key())
	}
	if t.salvage.Len() != 0 {
		panic("rat: salvage index not empty after exhaustion")
	}
	return nil
}

func (t *UnitTable) salvageParams(f *model.FactionRecord) Params {
	p := t.params
	p.Faction = f
	p.Year = t.params.Year - SalvageYears
	p.Deploying = t.params.Faction
	return p
}

// removeSalvage deletes the first salvage row for key and rebuilds the
// salvage index from the remaining rows.
func (t *UnitTable) removeSalvage(key string) {
	for i, e := range t.entries {
		if !e.IsUnit() && e.Salvage().Key() == key {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			break
		}
	}
	t.salvage.Reset()
	for _, e := range t.entries {
		if !e.IsUnit() {
			t.salvage.Add(e.Weight, e.Salvage())
		}
	}
	slog.Debug("salvage faction exhausted",
		"faction", t.params.Faction.Key(),
		"salvage", key,
		"year", t.params.Year,
		"salvageTotal", t.salvage.Total(),
	)
}
