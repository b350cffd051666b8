package components

// Body holds the physical extent of an entity.
type Body struct {
	Radius float64 // meters
}

// Vitals tracks a worm's per-turn and persistent resources.
// Maximums are derived from mass and are not stored.
type Vitals struct {
	AP int // action points left this turn
	HP int // hit points
}
