package components

// Weapon identifies the weapon a worm has selected.
type Weapon uint8

const (
	Bazooka Weapon = iota
	Rifle
)

// String returns the display name for a Weapon.
func (w Weapon) String() string {
	names := WeaponNames()
	if int(w) < len(names) {
		return names[w]
	}
	return "Unknown"
}

// Next returns the weapon that follows w in the selection cycle.
func (w Weapon) Next() Weapon {
	return Weapon((int(w) + 1) % WeaponCount())
}

// WeaponNames returns the display names for all weapons.
// The order matches the Weapon constants.
func WeaponNames() []string {
	return []string{"Bazooka", "Rifle"}
}

// WeaponCount returns the number of weapons.
func WeaponCount() int {
	return len(WeaponNames())
}
