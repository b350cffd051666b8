package game

import (
	"fmt"
	"math"

	"github.com/pthm-cable/worms/components"
	"github.com/pthm-cable/worms/systems"
)

// AddWorm places a worm of random size and facing at a random surface position
// and enrolls it in the current team. The worm gets the configured default name.
func (w *World) AddWorm(program components.Program) (Worm, error) {
	return w.AddNamedWorm(w.cfg.Worm.DefaultName, program)
}

// AddNamedWorm is AddWorm with an explicit name.
func (w *World) AddNamedWorm(name string, program components.Program) (Worm, error) {
	if err := validateWormName(name); err != nil {
		return Worm{}, err
	}
	return w.addWorm(name, program)
}

func (w *World) addWorm(name string, program components.Program) (Worm, error) {
	cfg := w.cfg.Worm
	radius := cfg.MinRadius + w.rng.Float64()*(cfg.MaxSpawnRadius-cfg.MinRadius)
	angle := w.rng.Float64()*2*math.Pi - math.Pi

	x, y, err := w.randomPlacement(radius)
	if err != nil {
		return Worm{}, err
	}
	return Worm{w: w, e: w.spawnWorm(x, y, radius, angle, name, program)}, nil
}

// AddFood places a food item at a random surface position.
func (w *World) AddFood() (Food, error) {
	x, y, err := w.randomPlacement(w.cfg.Food.Radius)
	if err != nil {
		return Food{}, err
	}
	return Food{w: w, e: w.spawnFood(x, y)}, nil
}

// PlaceWorm creates a worm at an explicit position without checking the terrain.
func (w *World) PlaceWorm(x, y, radius, angle float64, name string, program components.Program) (Worm, error) {
	if err := validatePosition(x, y); err != nil {
		return Worm{}, err
	}
	if err := w.validateRadius(radius); err != nil {
		return Worm{}, err
	}
	if !systems.IsFinite(angle) {
		return Worm{}, fmt.Errorf("%w: %v", ErrInvalidAngle, angle)
	}
	if err := validateWormName(name); err != nil {
		return Worm{}, err
	}
	return Worm{w: w, e: w.spawnWorm(x, y, radius, angle, name, program)}, nil
}

// PlaceFood creates a food item at an explicit position without checking the terrain.
func (w *World) PlaceFood(x, y float64) (Food, error) {
	if err := validatePosition(x, y); err != nil {
		return Food{}, err
	}
	return Food{w: w, e: w.spawnFood(x, y)}, nil
}

// randomPlacement draws random points in [0, width+1] x [0, height+1], slides each
// toward the map center until it rests against terrain, and returns the first one
// that is in bounds, adjacent and clear of every worm and food item.
func (w *World) randomPlacement(radius float64) (float64, float64, error) {
	attempts := w.cfg.World.MaxPlacementAttempts
	for i := 0; i < attempts; i++ {
		x := w.rng.Float64() * (w.Width() + 1)
		y := w.rng.Float64() * (w.Height() + 1)

		x, y, ok := w.findAdjacent(x, y, radius)
		if !ok || w.overlapsAny(x, y, radius) {
			continue
		}
		return x, y, nil
	}

	w.log.Warn("placement_failed", "radius", radius, "attempts", attempts)
	return 0, 0, fmt.Errorf("%w after %d attempts", ErrPlacementFailed, attempts)
}

// findAdjacent slides x, then y, toward the world center in pixel steps until
// the disc rests against terrain. ok reports whether the final point is usable.
func (w *World) findAdjacent(x, y, radius float64) (float64, float64, bool) {
	t := w.terrain

	x = stepToward(x, t.Width()/2, t.ResolutionX(), radius, func(cx float64) bool {
		return t.IsAdjacent(cx, y, radius)
	})
	y = stepToward(y, t.Height()/2, t.ResolutionY(), radius, func(cy float64) bool {
		return t.IsAdjacent(x, cy, radius)
	})

	return x, y, t.WithinBounds(x, y) && t.IsAdjacent(x, y, radius)
}

// overlapsAny reports whether a disc at (x, y) overlaps any worm or food item.
func (w *World) overlapsAny(x, y, radius float64) bool {
	for _, e := range w.worms {
		pos, body := w.posMap.Get(e), w.bodyMap.Get(e)
		if systems.IsOverlapping(x, y, radius, pos.X, pos.Y, body.Radius) {
			return true
		}
	}
	for _, e := range w.food {
		pos, body := w.posMap.Get(e), w.bodyMap.Get(e)
		if systems.IsOverlapping(x, y, radius, pos.X, pos.Y, body.Radius) {
			return true
		}
	}
	return false
}

func validatePosition(x, y float64) error {
	if !systems.IsFinite(x) || !systems.IsFinite(y) {
		return fmt.Errorf("%w: (%v, %v)", ErrInvalidPosition, x, y)
	}
	return nil
}

func (w *World) validateRadius(radius float64) error {
	if !systems.IsFinite(radius) || radius < w.cfg.Worm.MinRadius {
		return fmt.Errorf("%w: %v (minimum %v)", ErrInvalidRadius, radius, w.cfg.Worm.MinRadius)
	}
	return nil
}

func validateWormName(name string) error {
	if !components.ValidWormName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
