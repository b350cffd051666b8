package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/worms/components"
	"github.com/pthm-cable/worms/systems"
)

// Worm is a handle to a worm in a World. The zero Worm refers to nothing.
// Handles stay comparable and safe to hold after the worm dies; every
// operation on a dead worm's handle fails with ErrNotInWorld.
type Worm struct {
	w *World
	e ecs.Entity
}

// inWorld reports whether the handle still refers to a worm of a world.
func (h Worm) inWorld() bool {
	return h.w != nil && h.w.alive(h.e) && h.w.wormMap.Has(h.e)
}

func (h Worm) check() error {
	if !h.inWorld() {
		return fmt.Errorf("%w: worm", ErrNotInWorld)
	}
	return nil
}

func (h Worm) pos() *components.Position  { return h.w.posMap.Get(h.e) }
func (h Worm) rot() *components.Rotation  { return h.w.rotMap.Get(h.e) }
func (h Worm) body() *components.Body     { return h.w.bodyMap.Get(h.e) }
func (h Worm) vitals() *components.Vitals { return h.w.vitalsMap.Get(h.e) }
func (h Worm) data() *components.Worm     { return h.w.wormMap.Get(h.e) }

// World returns the world the worm belongs to.
func (h Worm) World() *World { return h.w }

// ID returns the worm's serial number, or 0 for a dead handle.
func (h Worm) ID() uint32 {
	if !h.inWorld() {
		return 0
	}
	return h.data().ID
}

// X returns the x coordinate in meters.
func (h Worm) X() float64 {
	if !h.inWorld() {
		return 0
	}
	return h.pos().X
}

// Y returns the y coordinate in meters.
func (h Worm) Y() float64 {
	if !h.inWorld() {
		return 0
	}
	return h.pos().Y
}

// Angle returns the facing in radians, within [-π, π].
func (h Worm) Angle() float64 {
	if !h.inWorld() {
		return 0
	}
	return h.rot().Heading
}

// Radius returns the radius in meters.
func (h Worm) Radius() float64 {
	if !h.inWorld() {
		return 0
	}
	return h.body().Radius
}

// Mass returns the mass in kilograms, derived from the radius.
func (h Worm) Mass() float64 {
	if !h.inWorld() {
		return 0
	}
	return systems.SphereMass(h.w.cfg.Derived.WormMassFactor, h.body().Radius)
}

// AP returns the action points left this turn.
func (h Worm) AP() int {
	if !h.inWorld() {
		return 0
	}
	return h.vitals().AP
}

// MaxAP returns ceil(mass).
func (h Worm) MaxAP() int {
	if !h.inWorld() {
		return 0
	}
	return h.w.maxPoints(h.body().Radius)
}

// HP returns the hit points.
func (h Worm) HP() int {
	if !h.inWorld() {
		return 0
	}
	return h.vitals().HP
}

// MaxHP returns ceil(mass), the same bound as MaxAP.
func (h Worm) MaxHP() int {
	return h.MaxAP()
}

// Name returns the worm's name.
func (h Worm) Name() string {
	if !h.inWorld() {
		return ""
	}
	return h.data().Name
}

// Weapon returns the selected weapon.
func (h Worm) Weapon() components.Weapon {
	if !h.inWorld() {
		return components.Bazooka
	}
	return h.data().Weapon
}

// Team returns the worm's team, if it has one.
func (h Worm) Team() (Team, bool) {
	if !h.inWorld() {
		return Team{}, false
	}
	t := h.data().Team
	if !h.w.alive(t) {
		return Team{}, false
	}
	return Team{w: h.w, e: t}, true
}

// HasProgram reports whether a well-formed program controls the worm.
func (h Worm) HasProgram() bool {
	if !h.inWorld() {
		return false
	}
	p := h.data().Program
	return p != nil && p.IsWellFormed()
}

// IsAlive reports whether the worm is in its world with positive HP and inside the bounds.
func (h Worm) IsAlive() bool {
	if !h.inWorld() {
		return false
	}
	pos := h.pos()
	return h.vitals().HP > 0 && h.w.WithinBounds(pos.X, pos.Y)
}

// SetPosition moves the worm without any terrain check.
func (h Worm) SetPosition(x, y float64) error {
	if err := h.check(); err != nil {
		return err
	}
	if err := validatePosition(x, y); err != nil {
		return err
	}
	*h.pos() = components.Position{X: x, Y: y}
	return nil
}

// SetRadius resizes the worm. AP and HP are capped to the new maximum.
func (h Worm) SetRadius(radius float64) error {
	if err := h.check(); err != nil {
		return err
	}
	if err := h.w.validateRadius(radius); err != nil {
		return err
	}
	h.setRadius(radius)
	return nil
}

func (h Worm) setRadius(radius float64) {
	h.body().Radius = radius
	limit := h.w.maxPoints(radius)
	v := h.vitals()
	v.AP = clampInt(v.AP, 0, limit)
	v.HP = clampInt(v.HP, 0, limit)
}

// Rename changes the worm's name.
func (h Worm) Rename(name string) error {
	if err := h.check(); err != nil {
		return err
	}
	if err := validateWormName(name); err != nil {
		return err
	}
	h.data().Name = name
	return nil
}

// SetAP sets the action points; ap must lie in [0, MaxAP].
func (h Worm) SetAP(ap int) error {
	if err := h.check(); err != nil {
		return err
	}
	if ap < 0 || ap > h.MaxAP() {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidAP, ap, h.MaxAP())
	}
	h.vitals().AP = ap
	return nil
}

// SetHP sets the hit points, capped at MaxHP. A value of zero or below kills
// the worm and removes it from the world.
func (h Worm) SetHP(hp int) error {
	if err := h.check(); err != nil {
		return err
	}
	h.setHP(hp)
	return nil
}

// setHP applies hp and reports whether the worm survived.
func (h Worm) setHP(hp int) bool {
	if hp <= 0 {
		h.vitals().HP = 0
		h.w.killWorm(h.e)
		return false
	}
	h.vitals().HP = min(hp, h.MaxHP())
	return true
}

// SetAngle sets the facing, clamped to [-π, π].
func (h Worm) SetAngle(angle float64) error {
	if err := h.check(); err != nil {
		return err
	}
	if !systems.IsFinite(angle) {
		return fmt.Errorf("%w: %v", ErrInvalidAngle, angle)
	}
	h.rot().Heading = systems.ClampAngle(angle)
	return nil
}

// SelectNextWeapon cycles the selected weapon.
func (h Worm) SelectNextWeapon() error {
	if err := h.check(); err != nil {
		return err
	}
	d := h.data()
	d.Weapon = d.Weapon.Next()
	return nil
}

// StartTurn refills AP to the maximum. Unless it is already this worm's turn,
// the worm also regains the per-turn HP bonus.
func (h Worm) StartTurn() error {
	if err := h.check(); err != nil {
		return err
	}
	if !h.w.isTurnOf(h.e) {
		h.setHP(h.vitals().HP + h.w.cfg.World.TurnHPBonus)
	}
	h.vitals().AP = h.MaxAP()
	return nil
}

// Destroy removes a worm that is no longer alive (out of bounds or without HP)
// from its world and team. A living worm is left alone.
func (h Worm) Destroy() error {
	if err := h.check(); err != nil {
		return err
	}
	if h.IsAlive() {
		return fmt.Errorf("%w: worm %q", ErrStillAlive, h.Name())
	}
	h.w.killWorm(h.e)
	return nil
}

// String implements fmt.Stringer.
func (h Worm) String() string {
	if !h.inWorld() {
		return "Worm(dead)"
	}
	return fmt.Sprintf("Worm(%s #%d)", h.data().Name, h.data().ID)
}
