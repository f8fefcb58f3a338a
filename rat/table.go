package rat

import (
	"log/slog"
	"sync"

	"github.com/nstehr/vimy/vimy-rat/model"
)

// SalvageYears is how far back a salvage table looks.
const SalvageYears = 5

// UnitFilter restricts which units a draw may return. Applied to unit rows
// only, never to salvage rows.
type UnitFilter func(u *model.UnitRecord) bool

// Params is the query a table is built from. Sub-tables built for salvage
// reuse everything except Faction, Year and Deploying.
type Params struct {
	Faction        *model.FactionRecord
	UnitType       string
	Year           int
	Rating         string
	WeightClasses  []int
	NetworkMask    int
	Subtypes       []string
	Roles          []string
	RoleStrictness int
	// Deploying is the faction fielding the units. Defaults to Faction.
	Deploying *model.FactionRecord
}

// Generator produces the raw, unordered entries for a query.
type Generator interface {
	GenerateTable(p Params) []TableEntry
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(p Params) []TableEntry

func (f GeneratorFunc) GenerateTable(p Params) []TableEntry { return f(p) }

// UnitTable is a random assignment table: weighted unit rows plus salvage
// rows that redirect a draw to another faction's table from five years
// earlier. Salvage tables are built on first use and cached per faction.
type UnitTable struct {
	mu     sync.Mutex
	params Params
	gen    Generator
	rng    Random

	entries []TableEntry

	// Units and salvage are indexed separately so that the salvage
	// proportion can be held fixed when a filter shrinks the unit pool.
	units   WeightedSet[*model.UnitRecord]
	salvage WeightedSet[*model.FactionRecord]

	// salvagePct is computed once at construction and never adjusted.
	salvagePct int

	cache map[string]*UnitTable
}

// Option configures a UnitTable.
type Option func(*UnitTable)

// WithRandom sets the random source. Salvage tables share it.
func WithRandom(r Random) Option {
	return func(t *UnitTable) { t.rng = r }
}

// WithSalvageCache supplies the map used to cache salvage tables by faction
// key. The table takes ownership of the map.
func WithSalvageCache(cache map[string]*UnitTable) Option {
	return func(t *UnitTable) { t.cache = cache }
}

// New builds a table for p, querying gen exactly once. A faction that is
// inactive in p.Year yields an empty table.
func New(gen Generator, p Params, opts ...Option) *UnitTable {
	if p.Deploying == nil {
		p.Deploying = p.Faction
	}
	t := &UnitTable{params: p, gen: gen}
	for _, opt := range opts {
		opt(t)
	}
	if t.rng == nil {
		t.rng = CryptoRandom()
	}
	if t.cache == nil {
		t.cache = make(map[string]*UnitTable)
	}
	t.generate()
	return t
}

func (t *UnitTable) generate() {
	if t.params.Faction == nil || !t.params.Faction.IsActiveInYear(t.params.Year) {
		return
	}
	t.entries = t.gen.GenerateTable(t.params)
	sortEntries(t.entries)

	for _, e := range t.entries {
		if e.IsUnit() {
			t.units.Add(e.Weight, e.Unit())
		} else {
			t.salvage.Add(e.Weight, e.Salvage())
		}
	}
	if sum := t.salvage.Total() + t.units.Total(); sum > 0 {
		t.salvagePct = t.salvage.Total() * 100 / sum
	}

	slog.Debug("unit table generated",
		"faction", t.params.Faction.Key(),
		"unitType", t.params.UnitType,
		"year", t.params.Year,
		"rating", t.params.Rating,
		"entries", len(t.entries),
		"unitTotal", t.units.Total(),
		"salvageTotal", t.salvage.Total(),
		"salvagePct", t.salvagePct,
	)
}

func (t *UnitTable) Params() Params { return t.params }

func (t *UnitTable) NumEntries() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

func (t *UnitTable) EntryWeight(i int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.entries[i].Weight
}

// EntryText is the display text of row i: the unit name, or the salvage
// faction's name five years earlier prefixed with "Salvage" or, for clan
// tables, "Isorla".
func (t *UnitTable) EntryText(i int) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := t.entries[i]
	if e.IsUnit() {
		return e.Unit().Name()
	}
	label := "Salvage"
	if t.params.Faction.IsClan() {
		label = "Isorla"
	}
	return label + ": " + e.Salvage().NameInYear(t.params.Year-SalvageYears)
}

// UnitRecord returns the unit at row i, or nil for a salvage row.
func (t *UnitTable) UnitRecord(i int) *model.UnitRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e := t.entries[i]; e.IsUnit() {
		return e.Unit()
	}
	return nil
}

// BV returns the battle value of row i; salvage rows are worth 0.
func (t *UnitTable) BV(i int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e := t.entries[i]; e.IsUnit() {
		return e.Unit().BV
	}
	return 0
}

// HasUnits reports whether any row is a unit. Salvage rows are not followed.
func (t *UnitTable) HasUnits() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hasUnits()
}

func (t *UnitTable) hasUnits() bool {
	for _, e := range t.entries {
		if e.IsUnit() && e.Weight > 0 {
			return true
		}
	}
	return false
}

func (t *UnitTable) SalvagePct() int { return t.salvagePct }

func (t *UnitTable) UnitTotal() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.units.Total()
}

func (t *UnitTable) SalvageTotal() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.salvage.Total()
}

// Generate draws a single unit. A nil filter includes every unit. Returns
// nil when nothing can be drawn.
func (t *UnitTable) Generate(filter UnitFilter) *model.UnitRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.rng.Intn(100) < t.salvagePct {
		if u := t.generateSalvage(filter); u != nil {
			return u
		}
	}

	pool := &t.units
	if filter != nil {
		pool = new(WeightedSet[*model.UnitRecord])
		for _, e := range t.entries {
			if e.IsUnit() && filter(e.Unit()) {
				pool.Add(e.Weight, e.Unit())
			}
		}
	}
	if pool.Total() <= 0 {
		return nil
	}
	return pool.Draw(t.rng.Intn(pool.Total()))
}

// GenerateMany draws n units independently, with replacement. Draws that
// produce nothing are omitted, so the result may be shorter than n.
func (t *UnitTable) GenerateMany(n int, filter UnitFilter) []*model.UnitRecord {
	n = max(n, 0)
	units := make([]*model.UnitRecord, 0, n)
	for i := 0; i < n; i++ {
		if u := t.Generate(filter); u != nil {
			units = append(units, u)
		}
	}
	return units
}
