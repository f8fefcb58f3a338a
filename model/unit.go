package model

import "strings"

// Unit type constants. Values match the catalog file's `type` field.
const (
	Mek            = "Mek"
	Tank           = "Tank"
	BattleArmor    = "BattleArmor"
	Infantry       = "Infantry"
	ProtoMek       = "ProtoMek"
	AeroSpace      = "AeroSpaceFighter"
	ConvFighter    = "ConvFighter"
	SmallCraft     = "SmallCraft"
	Dropship       = "Dropship"
	NavalVessel    = "Naval"
	GunEmplacement = "GunEmplacement"
)

// Weight class constants. Ordered so that comparisons are meaningful.
const (
	Ultralight = iota
	Light
	Medium
	Heavy
	Assault
	Superheavy
)

// Network flags for UnitRecord.Network. A zero mask selects everything.
const (
	NetworkNone          = 0
	NetworkC3S           = 1 << 0
	NetworkC3M           = 1 << 1
	NetworkC3I           = 1 << 2
	NetworkNova          = 1 << 3
	NetworkBoostedSlave  = 1 << 4
	NetworkBoostedMaster = 1 << 5
)

// UnitRecord is a single selectable entry from the unit catalog.
type UnitRecord struct {
	Chassis     string   `yaml:"chassis" json:"chassis"`
	Model       string   `yaml:"model" json:"model"`
	UnitType    string   `yaml:"type" json:"type"`
	WeightClass int      `yaml:"weightClass" json:"weightClass"`
	Subtype     string   `yaml:"subtype,omitempty" json:"subtype,omitempty"` // motive: tracked, wheeled, hover, biped
	Roles       []string `yaml:"roles,omitempty" json:"roles,omitempty"`
	Network     int      `yaml:"network,omitempty" json:"network,omitempty"`
	BV          int      `yaml:"bv" json:"bv"`
	Tonnage     float64  `yaml:"tonnage" json:"tonnage"`
	Year        int      `yaml:"year" json:"year"` // introduction year
	Clan        bool     `yaml:"clan,omitempty" json:"clan,omitempty"`
}

// Name is the display name: chassis and model joined by a space.
func (u *UnitRecord) Name() string {
	if u.Model == "" {
		return u.Chassis
	}
	return u.Chassis + " " + u.Model
}

func (u *UnitRecord) TypeName() string { return u.UnitType }

// HasRole reports whether the unit carries role r (case-insensitive).
func (u *UnitRecord) HasRole(r string) bool {
	for _, role := range u.Roles {
		if strings.EqualFold(role, r) {
			return true
		}
	}
	return false
}

// WeightClassName returns the display name of a weight class constant.
func WeightClassName(wc int) string {
	switch wc {
	case Ultralight:
		return "Ultralight"
	case Light:
		return "Light"
	case Medium:
		return "Medium"
	case Heavy:
		return "Heavy"
	case Assault:
		return "Assault"
	case Superheavy:
		return "Superheavy"
	}
	return "Unknown"
}

// ParseWeightClass maps a name or single-letter code (L, M, H, A) to a
// weight class constant.
func ParseWeightClass(s string) (int, bool) {
	switch strings.ToLower(s) {
	case "ul", "ultralight":
		return Ultralight, true
	case "l", "light":
		return Light, true
	case "m", "medium":
		return Medium, true
	case "h", "heavy":
		return Heavy, true
	case "a", "assault":
		return Assault, true
	case "sh", "superheavy":
		return Superheavy, true
	}
	return 0, false
}
