package components

import "regexp"

var (
	// Worm names: an uppercase letter followed by letters, quotes and spaces.
	wormNamePattern = regexp.MustCompile(`^[A-Z][a-zA-Z'" ]+$`)
	// Team names additionally allow digits and any whitespace.
	teamNamePattern = regexp.MustCompile(`^[A-Z][a-zA-Z0-9\s'"]+$`)
)

// ValidWormName reports whether name is an acceptable worm name.
func ValidWormName(name string) bool { return wormNamePattern.MatchString(name) }

// ValidTeamName reports whether name is an acceptable team name.
func ValidTeamName(name string) bool { return teamNamePattern.MatchString(name) }

// ParseWeapon returns the Weapon with the given display name.
func ParseWeapon(name string) (Weapon, bool) {
	for i, n := range WeaponNames() {
		if n == name {
			return Weapon(i), true
		}
	}
	return 0, false
}
