package rules

import "strings"

// containsAnyRole returns true if any of have matches any of want (case-insensitive).
func containsAnyRole(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

// Catalog role tags.
const (
	RoleRecon       = "recon"
	RoleFireSupport = "fire_support"
	RoleMissileBoat = "missile_boat"
	RoleArtillery   = "artillery"
	RoleBrawler     = "brawler"
	RoleJuggernaut  = "juggernaut"
	RoleSkirmisher  = "skirmisher"
	RoleStriker     = "striker"
	RoleSniper      = "sniper"
	RoleScout       = "scout"
	RoleCommand     = "command"
	RoleTransport   = "apc"
)

// logicalRoles maps a logical role name to every catalog role tag that fills it.
var logicalRoles = map[string][]string{
	"support":   {RoleFireSupport, RoleMissileBoat, RoleArtillery, RoleSniper},
	"line":      {RoleBrawler, RoleJuggernaut, RoleSkirmisher},
	"fast":      {RoleStriker, RoleScout, RoleRecon},
	"command":   {RoleCommand},
	"transport": {RoleTransport},
}

// roleTags resolves a logical role name. Unknown names stand for themselves.
func roleTags(logical string) []string {
	if tags, ok := logicalRoles[strings.ToLower(logical)]; ok {
		return tags
	}
	return []string{logical}
}

// ExpandRoles replaces logical role names with their catalog tags,
// dropping duplicates while keeping first-seen order.
func ExpandRoles(roles []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range roles {
		for _, tag := range roleTags(r) {
			key := strings.ToLower(tag)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, tag)
		}
	}
	return out
}
