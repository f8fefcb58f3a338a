package rules

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// DefaultFilters is the built-in set of named filters. Config entries with
// the same name replace these.
func DefaultFilters() map[string]string {
	return map[string]string{
		"light":        `IsWeightClass("light")`,
		"medium":       `IsWeightClass("medium")`,
		"heavy":        `IsWeightClass("heavy")`,
		"assault":      `IsWeightClass("assault")`,
		"not-light":    `HeavierThan("light")`,
		"support":      `FillsRole("support")`,
		"line":         `FillsRole("line")`,
		"fast":         `FillsRole("fast")`,
		"clan-tech":    `Clan`,
		"inner-sphere": `!Clan`,
		"budget":       `BV <= 1200`,
		"c3":           `Network > 0`,
	}
}

// CompileFilter compiles src against FilterEnv. The expression must
// evaluate to a bool.
func CompileFilter(name, src string) (*Filter, error) {
	prog, err := expr.Compile(src, expr.Env(FilterEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", name, err)
	}
	return &Filter{Name: name, ConditionSrc: src, program: prog}, nil
}

func compileFilters(defs map[string]string) (map[string]*Filter, error) {
	compiled := make(map[string]*Filter, len(defs))
	for name, src := range defs {
		f, err := CompileFilter(name, src)
		if err != nil {
			return nil, err
		}
		compiled[name] = f
	}
	return compiled, nil
}

// MergeFilters overlays extra on base, returning a new map.
func MergeFilters(base, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
