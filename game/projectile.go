package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/worms/components"
	"github.com/pthm-cable/worms/config"
	"github.com/pthm-cable/worms/systems"
	"github.com/pthm-cable/worms/telemetry"
)

// Projectile is a handle to the shell a worm fired. A World holds at most one.
type Projectile struct {
	w *World
	e ecs.Entity
}

func (h Projectile) inWorld() bool {
	return h.w != nil && h.w.alive(h.e) && h.w.shellMap.Has(h.e)
}

func (h Projectile) check() error {
	if !h.inWorld() {
		return fmt.Errorf("%w: projectile", ErrNotInWorld)
	}
	return nil
}

func (h Projectile) data() *components.Projectile { return h.w.shellMap.Get(h.e) }

// IsActive reports whether the projectile is still in flight.
func (h Projectile) IsActive() bool {
	return h.inWorld() && h.data().Active
}

// HitWorm reports whether the flight ended on a worm.
func (h Projectile) HitWorm() bool {
	return h.inWorld() && h.data().HitWorm
}

// X returns the x coordinate in meters.
func (h Projectile) X() float64 {
	if !h.inWorld() {
		return 0
	}
	return h.w.posMap.Get(h.e).X
}

// Y returns the y coordinate in meters.
func (h Projectile) Y() float64 {
	if !h.inWorld() {
		return 0
	}
	return h.w.posMap.Get(h.e).Y
}

// Radius returns the radius derived from the shell mass.
func (h Projectile) Radius() float64 {
	if !h.inWorld() {
		return 0
	}
	return h.w.bodyMap.Get(h.e).Radius
}

// Mass returns the shell mass in kilograms.
func (h Projectile) Mass() float64 {
	if !h.inWorld() {
		return 0
	}
	return h.data().Mass
}

// Weapon returns the weapon that fired the shell.
func (h Projectile) Weapon() components.Weapon {
	if !h.inWorld() {
		return components.Bazooka
	}
	return h.data().Weapon
}

// Firer returns the worm that fired the shell while it is still in the world.
func (h Projectile) Firer() (Worm, bool) {
	if !h.inWorld() {
		return Worm{}, false
	}
	firer := Worm{w: h.w, e: h.data().Firer}
	if !firer.inWorld() {
		return Worm{}, false
	}
	return firer, true
}

// SetPosition moves the projectile without any terrain check.
func (h Projectile) SetPosition(x, y float64) error {
	if err := h.check(); err != nil {
		return err
	}
	if err := validatePosition(x, y); err != nil {
		return err
	}
	*h.w.posMap.Get(h.e) = components.Position{X: x, Y: y}
	return nil
}

func (h Projectile) trajectory() systems.Trajectory {
	d := h.data()
	return systems.NewTrajectory(d.Origin.Vec(), d.Heading, d.Force, d.Mass, h.w.cfg.Physics.Gravity)
}

// JumpTime returns the flight time from the launch origin until the shell
// would hit terrain or leave the world, sampling every dt seconds.
// Worms along the way are ignored.
func (h Projectile) JumpTime(dt float64) (float64, error) {
	if err := h.check(); err != nil {
		return 0, err
	}
	if err := validTimeStep(dt); err != nil {
		return 0, err
	}
	radius := h.Radius()
	t, _, _ := h.trajectory().Fly(dt, func(_ float64, p r2.Vec) bool {
		return h.w.IsPassable(p.X, p.Y, radius)
	})
	return t, nil
}

// JumpStep returns the position t seconds after launch.
func (h Projectile) JumpStep(t float64) (x, y float64, err error) {
	if err := h.check(); err != nil {
		return 0, 0, err
	}
	if !systems.IsFinite(t) {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidTimeStep, t)
	}
	p := h.trajectory().At(t)
	return p.X, p.Y, nil
}

// Destroy removes a projectile that is no longer in flight.
func (h Projectile) Destroy() error {
	if err := h.check(); err != nil {
		return err
	}
	if h.data().Active {
		return fmt.Errorf("%w: projectile in flight", ErrStillAlive)
	}
	h.w.removeProjectile()
	return nil
}

// String implements fmt.Stringer.
func (h Projectile) String() string {
	if !h.inWorld() {
		return "Projectile(gone)"
	}
	return fmt.Sprintf("Projectile(%s at %.2f, %.2f)", h.data().Weapon, h.X(), h.Y())
}

// fire spawns the projectile for a shot by firer, replacing any previous one.
func (w *World) fire(firer ecs.Entity, weapon components.Weapon, wc config.WeaponConfig, yield int, origin r2.Vec, heading float64) Projectile {
	mass := wc.MassGrams / 1000
	p := components.Projectile{
		Weapon:  weapon,
		Mass:    mass,
		Force:   wc.Force + wc.ForcePerYield*float64(yield),
		Damage:  wc.Damage,
		Origin:  components.PositionOf(origin),
		Heading: heading,
		Firer:   firer,
		Active:  true,
	}
	radius := systems.SphereRadius(w.cfg.Derived.ProjectileMassFactor, mass)
	return Projectile{w: w, e: w.spawnProjectile(p, radius)}
}

// resolve flies the projectile until it leaves the world, enters terrain or
// touches a worm other than its firer. A touched worm takes the weapon damage.
func (h Projectile) resolve() {
	d := h.data()
	firer := d.Firer
	weapon := d.Weapon
	radius := h.Radius()

	victim := noEntity
	last := d.Origin.Vec()
	h.trajectory().Fly(h.w.cfg.Physics.ProjectileTimeStep, func(_ float64, p r2.Vec) bool {
		if !h.w.IsPassable(p.X, p.Y, radius) {
			return false
		}
		last = p
		victim = h.w.wormAt(p, radius, firer)
		return victim == noEntity
	})

	*h.w.posMap.Get(h.e) = components.PositionOf(last)
	d = h.data()
	d.Active = false
	if victim == noEntity {
		return
	}
	d.HitWorm = true
	damage := d.Damage

	target := Worm{w: h.w, e: victim}
	targetID, targetName := target.ID(), target.Name()
	shooter := Worm{w: h.w, e: firer}

	h.w.record(telemetry.NewHitEvent(h.w.turn, shooter.ID(), shooter.Name(), targetID, damage, last.X, last.Y))
	h.w.log.Debug("projectile_hit",
		"weapon", weapon.String(),
		"shooter", shooter.Name(),
		"target", targetName,
		"damage", damage,
		"x", last.X, "y", last.Y,
	)
	target.setHP(target.vitals().HP - damage)
}

// wormAt returns the first worm in turn order, other than skip, that a disc at p overlaps.
func (w *World) wormAt(p r2.Vec, radius float64, skip ecs.Entity) ecs.Entity {
	for _, e := range w.worms {
		if e == skip {
			continue
		}
		pos, body := w.posMap.Get(e), w.bodyMap.Get(e)
		if systems.IsOverlapping(p.X, p.Y, radius, pos.X, pos.Y, body.Radius) {
			return e
		}
	}
	return noEntity
}

// clearProjectile drops the spent projectile at the start of a turn.
func (w *World) clearProjectile() {
	if w.projectile == noEntity {
		return
	}
	if w.shellMap.Get(w.projectile).Active {
		return
	}
	w.removeProjectile()
}
