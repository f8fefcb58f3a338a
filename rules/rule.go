package rules

import (
	"log/slog"

	"github.com/expr-lang/expr/vm"

	"github.com/nstehr/vimy/vimy-rat/model"
	"github.com/nstehr/vimy/vimy-rat/rat"
)

// Filter is a named unit predicate written in the expr language and
// evaluated against a FilterEnv for each candidate unit.
type Filter struct {
	Name         string      // human-readable identifier
	ConditionSrc string      // expr source (preserved for serialization)
	program      *vm.Program // compiled bytecode
}

// Match reports whether u satisfies the filter. Evaluation errors count as
// a non-match.
func (f *Filter) Match(u *model.UnitRecord) bool {
	result, err := vm.Run(f.program, NewFilterEnv(u))
	if err != nil {
		slog.Warn("filter condition error", "filter", f.Name, "unit", u.Name(), "error", err)
		return false
	}
	match, ok := result.(bool)
	return ok && match
}

// UnitFilter adapts f for rat.UnitTable draws.
func (f *Filter) UnitFilter() rat.UnitFilter {
	return f.Match
}

// All combines filters; nil entries are ignored. Returns nil when nothing
// is left to check.
func All(filters ...rat.UnitFilter) rat.UnitFilter {
	var active []rat.UnitFilter
	for _, f := range filters {
		if f != nil {
			active = append(active, f)
		}
	}
	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}
	return func(u *model.UnitRecord) bool {
		for _, f := range active {
			if !f(u) {
				return false
			}
		}
		return true
	}
}
