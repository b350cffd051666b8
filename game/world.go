// Package game implements the rules engine: the World that owns every entity,
// turn order, placement and win detection, and the handle types through which
// worms, food, projectiles and teams are queried and driven.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/worms/components"
	"github.com/pthm-cable/worms/config"
	"github.com/pthm-cable/worms/systems"
	"github.com/pthm-cable/worms/telemetry"
)

// noEntity is the zero entity, used for "no team", "no projectile" and similar.
var noEntity ecs.Entity

// World holds the complete game state. It is the only owner of entities;
// Worm, Food, Projectile and Team are handles into it.
//
// A World is not safe for concurrent use. A host serving several goroutines
// must guard each game event with a single critical section.
type World struct {
	cfg     *config.Config
	terrain *systems.Terrain
	rng     *rand.Rand
	log     *slog.Logger
	rec     telemetry.Recorder

	ecs *ecs.World

	// Entity mappers
	wormMapper *ecs.Map5[
		components.Position,
		components.Rotation,
		components.Body,
		components.Vitals,
		components.Worm,
	]
	foodMapper  *ecs.Map3[components.Position, components.Body, components.Food]
	shellMapper *ecs.Map3[components.Position, components.Body, components.Projectile]
	teamMapper  *ecs.Map1[components.Team]

	wormFilter *ecs.Filter3[components.Body, components.Vitals, components.Worm]

	// Individual component mappers for lookups
	posMap    *ecs.Map[components.Position]
	rotMap    *ecs.Map[components.Rotation]
	bodyMap   *ecs.Map[components.Body]
	vitalsMap *ecs.Map[components.Vitals]
	wormMap   *ecs.Map[components.Worm]
	foodMap   *ecs.Map[components.Food]
	shellMap  *ecs.Map[components.Projectile]
	teamMap   *ecs.Map[components.Team]

	// Rosters in creation order; worms is also the turn order
	worms []ecs.Entity
	food  []ecs.Entity
	teams []ecs.Entity

	projectile  ecs.Entity // at most one, noEntity when none
	currentTeam ecs.Entity // team new worms join, noEntity when none

	turnIndex int
	turn      int
	nextID    uint32
	finished  bool
}

// NewWorld creates an empty world over terrain. A nil cfg uses the global
// configuration; a nil rng uses a source seeded with 1.
func NewWorld(cfg *config.Config, terrain *systems.Terrain, rng *rand.Rand) (*World, error) {
	if terrain == nil {
		return nil, ErrNoTerrain
	}
	if cfg == nil {
		cfg = config.Cfg()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	world := ecs.NewWorld()

	w := &World{
		cfg:     cfg,
		terrain: terrain,
		rng:     rng,
		log:     slog.Default(),
		ecs:     world,

		wormMapper: ecs.NewMap5[
			components.Position,
			components.Rotation,
			components.Body,
			components.Vitals,
			components.Worm,
		](world),
		foodMapper:  ecs.NewMap3[components.Position, components.Body, components.Food](world),
		shellMapper: ecs.NewMap3[components.Position, components.Body, components.Projectile](world),
		teamMapper:  ecs.NewMap1[components.Team](world),

		wormFilter: ecs.NewFilter3[components.Body, components.Vitals, components.Worm](world),

		posMap:    ecs.NewMap[components.Position](world),
		rotMap:    ecs.NewMap[components.Rotation](world),
		bodyMap:   ecs.NewMap[components.Body](world),
		vitalsMap: ecs.NewMap[components.Vitals](world),
		wormMap:   ecs.NewMap[components.Worm](world),
		foodMap:   ecs.NewMap[components.Food](world),
		shellMap:  ecs.NewMap[components.Projectile](world),
		teamMap:   ecs.NewMap[components.Team](world),

		nextID: 1,
	}
	return w, nil
}

// SetLogger replaces the logger used for lifecycle messages.
func (w *World) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	w.log = l
}

// SetRecorder attaches a telemetry recorder. nil disables recording.
func (w *World) SetRecorder(r telemetry.Recorder) {
	w.rec = r
}

// Config returns the rules the world runs with.
func (w *World) Config() *config.Config { return w.cfg }

// Terrain returns the current terrain.
func (w *World) Terrain() *systems.Terrain { return w.terrain }

// SetTerrain replaces the terrain. Entities keep their positions.
func (w *World) SetTerrain(t *systems.Terrain) error {
	if t == nil {
		return ErrNoTerrain
	}
	w.terrain = t
	return nil
}

// Width returns the world width in meters.
func (w *World) Width() float64 { return w.terrain.Width() }

// Height returns the world height in meters.
func (w *World) Height() float64 { return w.terrain.Height() }

// IsPassable reports whether a disc of the given radius at (x, y) is free of terrain.
func (w *World) IsPassable(x, y, radius float64) bool {
	return w.terrain.IsPassable(x, y, radius)
}

// IsAdjacent reports whether (x, y) is passable and rests against terrain.
func (w *World) IsAdjacent(x, y, radius float64) bool {
	return w.terrain.IsAdjacent(x, y, radius)
}

// WithinBounds reports whether (x, y) lies inside the world.
func (w *World) WithinBounds(x, y float64) bool {
	return w.terrain.WithinBounds(x, y)
}

// Turn returns the number of turns started so far.
func (w *World) Turn() int { return w.turn }

// Worms returns the living worms in turn order.
func (w *World) Worms() []Worm {
	out := make([]Worm, len(w.worms))
	for i, e := range w.worms {
		out[i] = Worm{w: w, e: e}
	}
	return out
}

// Food returns the uneaten food in creation order.
func (w *World) Food() []Food {
	out := make([]Food, len(w.food))
	for i, e := range w.food {
		out[i] = Food{w: w, e: e}
	}
	return out
}

// Teams returns the teams still in play in creation order.
func (w *World) Teams() []Team {
	out := make([]Team, len(w.teams))
	for i, e := range w.teams {
		out[i] = Team{w: w, e: e}
	}
	return out
}

// ActiveProjectile returns the projectile currently in the world, if any.
func (w *World) ActiveProjectile() (Projectile, bool) {
	if w.projectile == noEntity {
		return Projectile{}, false
	}
	return Projectile{w: w, e: w.projectile}, true
}

// WormCount returns the number of worms in the world.
func (w *World) WormCount() int { return len(w.worms) }

// FoodCount returns the number of food items in the world.
func (w *World) FoodCount() int { return len(w.food) }

// TeamCount returns the number of teams in the world.
func (w *World) TeamCount() int { return len(w.teams) }

// ProjectileCount returns 1 while a projectile is in the world, else 0.
func (w *World) ProjectileCount() int {
	if w.projectile == noEntity {
		return 0
	}
	return 1
}

// CurrentTeam returns the team newly added worms join.
func (w *World) CurrentTeam() (Team, bool) {
	if w.currentTeam == noEntity {
		return Team{}, false
	}
	return Team{w: w, e: w.currentTeam}, true
}

// SetCurrentTeam makes t the team newly added worms join.
func (w *World) SetCurrentTeam(t Team) error {
	if !t.inWorld(w) {
		return fmt.Errorf("%w: team", ErrNotInWorld)
	}
	w.currentTeam = t.e
	return nil
}

// alive reports whether e is a live entity of this world.
func (w *World) alive(e ecs.Entity) bool {
	return e != noEntity && w.ecs.Alive(e)
}

// indexOf returns the roster position of e, or -1.
func indexOf(roster []ecs.Entity, e ecs.Entity) int {
	for i, x := range roster {
		if x == e {
			return i
		}
	}
	return -1
}

// without returns roster with the element at i removed, preserving order.
func without(roster []ecs.Entity, i int) []ecs.Entity {
	return append(roster[:i], roster[i+1:]...)
}
