package catalog

import (
	"log/slog"
	"slices"
	"sort"
	"strings"

	"github.com/nstehr/vimy/vimy-rat/model"
	"github.com/nstehr/vimy/vimy-rat/rat"
)

// GenerateTable returns the unit and salvage rows for p. Factions without
// rules of their own inherit them from the nearest parent that has some.
func (c *Catalog) GenerateTable(p rat.Params) []rat.TableEntry {
	if p.Faction == nil {
		return nil
	}
	var entries []rat.TableEntry

	weights := make(map[*model.UnitRecord]int)
	var order []*model.UnitRecord
	for _, a := range inherited(c, p.Faction.Key(), c.avail) {
		if a.Years != (model.YearRange{}) && !a.Years.Contains(p.Year) {
			continue
		}
		u := c.units[a.Unit]
		if !unitMatches(u, p) {
			continue
		}
		mult, ok := roleMultiplier(u, p.Roles, p.RoleStrictness)
		if !ok {
			continue
		}
		w := a.weightFor(p.Rating) * mult
		if w <= 0 {
			continue
		}
		if _, seen := weights[u]; !seen {
			order = append(order, u)
		}
		weights[u] += w
	}
	for _, u := range order {
		entries = append(entries, rat.NewUnitEntry(weights[u], u))
	}

	for _, s := range inherited(c, p.Faction.Key(), c.salvage) {
		if s.Years != (model.YearRange{}) && !s.Years.Contains(p.Year) {
			continue
		}
		keys := make([]string, 0, len(s.From))
		for k := range s.From {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if k == p.Faction.Key() || (p.Deploying != nil && k == p.Deploying.Key()) {
				continue
			}
			f := c.factions[k]
			if !f.IsActiveInYear(p.Year - rat.SalvageYears) {
				continue
			}
			if w := s.From[k]; w > 0 {
				entries = append(entries, rat.NewSalvageEntry(w, f))
			}
		}
	}

	slog.Debug("catalog query",
		"faction", p.Faction.Key(),
		"unitType", p.UnitType,
		"year", p.Year,
		"entries", len(entries),
	)
	return entries
}

// inherited returns rules[key], or those of the closest ancestor that has any.
func inherited[T any](c *Catalog, key string, rules map[string][]T) []T {
	queue := []string{key}
	visited := map[string]bool{}
	for len(queue) > 0 {
		k := queue[0]
		queue = queue[1:]
		if visited[k] {
			continue
		}
		visited[k] = true
		if r := rules[k]; len(r) > 0 {
			return r
		}
		if f, ok := c.factions[k]; ok {
			queue = append(queue, f.Parents...)
		}
	}
	return nil
}

func unitMatches(u *model.UnitRecord, p rat.Params) bool {
	if u.Year > p.Year {
		return false
	}
	if p.UnitType != "" && !strings.EqualFold(u.UnitType, p.UnitType) {
		return false
	}
	if len(p.WeightClasses) > 0 && !slices.Contains(p.WeightClasses, u.WeightClass) {
		return false
	}
	if len(p.Subtypes) > 0 && !slices.ContainsFunc(p.Subtypes, func(s string) bool {
		return strings.EqualFold(s, u.Subtype)
	}) {
		return false
	}
	if p.NetworkMask != model.NetworkNone && u.Network&p.NetworkMask == 0 {
		return false
	}
	return true
}

// roleMultiplier applies role strictness:
//
//	<= 0: every requested role the unit fills doubles its weight
//	   1: the unit must fill at least one requested role
//	>= 2: the unit must fill every requested role
func roleMultiplier(u *model.UnitRecord, roles []string, strictness int) (int, bool) {
	if len(roles) == 0 {
		return 1, true
	}
	matches := 0
	for _, r := range roles {
		if u.HasRole(r) {
			matches++
		}
	}
	switch {
	case strictness <= 0:
		return 1 << matches, true
	case strictness == 1:
		return 1, matches > 0
	default:
		return 1, matches == len(roles)
	}
}
