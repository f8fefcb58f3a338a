package rules

import (
	"fmt"
	"strings"

	"github.com/nstehr/vimy/vimy-rat/model"
	"github.com/nstehr/vimy/vimy-rat/rat"
)

// Formation is a standard unit grouping drawn from a single table.
type Formation struct {
	Name string // "lance", "star", "level2"
	Size int
}

var formations = map[string]Formation{
	"lance":   {Name: "lance", Size: 4},
	"star":    {Name: "star", Size: 5},
	"level2":  {Name: "level2", Size: 6},
	"company": {Name: "company", Size: 12},
	"binary":  {Name: "binary", Size: 10},
}

// FormationFor returns the named formation. An empty name picks the
// faction's basic formation: a star for clans, a lance otherwise.
func FormationFor(name string, f *model.FactionRecord) (Formation, error) {
	if name == "" {
		if f != nil && f.IsClan() {
			return formations["star"], nil
		}
		return formations["lance"], nil
	}
	fm, ok := formations[strings.ToLower(name)]
	if !ok {
		return Formation{}, fmt.Errorf("unknown formation %q", name)
	}
	return fm, nil
}

// Generate fills the formation from t. Slots the table cannot fill are
// left out.
func (fm Formation) Generate(t *rat.UnitTable, filter rat.UnitFilter) []*model.UnitRecord {
	return t.GenerateMany(fm.Size, filter)
}

// TotalBV sums the battle value of units.
func TotalBV(units []*model.UnitRecord) int {
	total := 0
	for _, u := range units {
		total += u.BV
	}
	return total
}
