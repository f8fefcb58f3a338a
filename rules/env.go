package rules

import (
	"strings"

	"github.com/nstehr/vimy/vimy-rat/model"
)

// FilterEnv exposes a unit's fields and helper methods to filter expressions.
type FilterEnv struct {
	Name        string
	Chassis     string
	Model       string
	Type        string
	WeightClass int
	Subtype     string
	Roles       []string
	BV          int
	Tonnage     float64
	Year        int
	Clan        bool
	Network     int
}

func NewFilterEnv(u *model.UnitRecord) FilterEnv {
	return FilterEnv{
		Name:        u.Name(),
		Chassis:     u.Chassis,
		Model:       u.Model,
		Type:        u.UnitType,
		WeightClass: u.WeightClass,
		Subtype:     u.Subtype,
		Roles:       u.Roles,
		BV:          u.BV,
		Tonnage:     u.Tonnage,
		Year:        u.Year,
		Clan:        u.Clan,
		Network:     u.Network,
	}
}

func (e FilterEnv) HasRole(r string) bool {
	for _, role := range e.Roles {
		if strings.EqualFold(role, r) {
			return true
		}
	}
	return false
}

// FillsRole checks a logical role such as "support", which several
// concrete catalog roles satisfy.
func (e FilterEnv) FillsRole(logical string) bool {
	return containsAnyRole(e.Roles, roleTags(logical))
}

func (e FilterEnv) IsType(t string) bool {
	return strings.EqualFold(e.Type, t)
}

// IsWeightClass accepts a name or single-letter code ("heavy", "H").
func (e FilterEnv) IsWeightClass(name string) bool {
	wc, ok := model.ParseWeightClass(name)
	return ok && wc == e.WeightClass
}

func (e FilterEnv) HeavierThan(name string) bool {
	wc, ok := model.ParseWeightClass(name)
	return ok && e.WeightClass > wc
}

func (e FilterEnv) LighterThan(name string) bool {
	wc, ok := model.ParseWeightClass(name)
	return ok && e.WeightClass < wc
}

func (e FilterEnv) ChassisIs(name string) bool {
	return strings.EqualFold(e.Chassis, name)
}

// HasNetwork reports whether any bit of mask is set in the unit's network flags.
func (e FilterEnv) HasNetwork(mask int) bool {
	return e.Network&mask != 0
}
