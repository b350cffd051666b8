// Package components defines ECS components for the worms world.
package components

import "github.com/mlange-42/ark/ecs"

// Program is a worm's scripted controller. Parsing and running programs is
// done elsewhere; the engine only needs to know whether one is attached and
// whether it is usable.
type Program interface {
	IsWellFormed() bool
}

// Worm holds identity and allegiance of a worm entity.
type Worm struct {
	ID      uint32 // serial number, never reused within a world
	Name    string
	Weapon  Weapon
	Team    ecs.Entity // zero when the worm plays alone
	Program Program    // nil for player-controlled worms
}

// Food marks a food entity.
type Food struct{}

// Projectile holds the ballistic state of a fired shell.
// Position and Body on the same entity carry the current location and derived radius.
type Projectile struct {
	Weapon  Weapon
	Mass    float64    // kg
	Force   float64    // N, applied for half a second at launch
	Damage  int        // HP taken from the worm hit
	Origin  Position   // launch point
	Heading float64    // launch direction (rad)
	Firer   ecs.Entity // worm that fired it, zero once that worm is gone
	Active  bool       // still in flight
	HitWorm bool
}

// Team holds a team roster. Members are worm entities in join order.
type Team struct {
	Name      string
	Members   []ecs.Entity
	Initiated bool // created and never had members yet
}
