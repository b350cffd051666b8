package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/worms/components"
)

// Food is a handle to a food item. Eating removes it from the world.
type Food struct {
	w *World
	e ecs.Entity
}

func (h Food) inWorld() bool {
	return h.w != nil && h.w.alive(h.e) && h.w.foodMap.Has(h.e)
}

func (h Food) check() error {
	if !h.inWorld() {
		return fmt.Errorf("%w: food", ErrNotInWorld)
	}
	return nil
}

// X returns the x coordinate in meters.
func (h Food) X() float64 {
	if !h.inWorld() {
		return 0
	}
	return h.w.posMap.Get(h.e).X
}

// Y returns the y coordinate in meters.
func (h Food) Y() float64 {
	if !h.inWorld() {
		return 0
	}
	return h.w.posMap.Get(h.e).Y
}

// Radius returns the food radius.
func (h Food) Radius() float64 {
	if !h.inWorld() {
		return 0
	}
	return h.w.bodyMap.Get(h.e).Radius
}

// IsEaten reports whether the food is gone from its world.
func (h Food) IsEaten() bool { return h.w != nil && !h.inWorld() }

// IsAlive reports whether the food is in its world and inside the bounds.
func (h Food) IsAlive() bool {
	if !h.inWorld() {
		return false
	}
	pos := h.w.posMap.Get(h.e)
	return h.w.WithinBounds(pos.X, pos.Y)
}

// SetPosition moves the food without any terrain check.
func (h Food) SetPosition(x, y float64) error {
	if err := h.check(); err != nil {
		return err
	}
	if err := validatePosition(x, y); err != nil {
		return err
	}
	*h.w.posMap.Get(h.e) = components.Position{X: x, Y: y}
	return nil
}

// Destroy removes the food from its world.
func (h Food) Destroy() error {
	if err := h.check(); err != nil {
		return err
	}
	h.w.removeFood(h.e)
	return nil
}

// String implements fmt.Stringer.
func (h Food) String() string {
	if !h.inWorld() {
		return "Food(eaten)"
	}
	return fmt.Sprintf("Food(%.2f, %.2f)", h.X(), h.Y())
}
