package game

import (
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/worms/components"
	"github.com/pthm-cable/worms/config"
	"github.com/pthm-cable/worms/systems"
	"github.com/pthm-cable/worms/telemetry"
)

// TurnCost returns the AP needed to turn by angle.
func (h Worm) TurnCost(angle float64) int {
	if h.w == nil {
		return 0
	}
	return systems.TurnCost(angle, h.w.cfg.Worm.TurnCostFullCircle)
}

// CanTurn reports whether the worm can afford to turn by angle.
func (h Worm) CanTurn(angle float64) bool {
	return h.inWorld() && systems.IsFinite(angle) && h.TurnCost(angle) <= h.vitals().AP
}

// Turn rotates the worm by angle (radians). The resulting facing is clamped
// to [-π, π]. Nothing changes when the worm cannot afford the cost.
func (h Worm) Turn(angle float64) error {
	if err := h.check(); err != nil {
		return err
	}
	if !systems.IsFinite(angle) {
		return fmt.Errorf("%w: %v", ErrInvalidAngle, angle)
	}
	cost := h.TurnCost(angle)
	v := h.vitals()
	if cost > v.AP {
		return fmt.Errorf("%w: turning by %.4f costs %d, %d left", ErrInsufficientAP, angle, cost, v.AP)
	}

	rot := h.rot()
	rot.Heading = systems.ClampAngle(rot.Heading + angle)
	v.AP -= cost

	h.w.record(telemetry.NewRotateEvent(h.w.turn, h.data().ID, h.data().Name, angle, cost))
	return nil
}

// moveParams returns the move search settings.
func (w *World) moveParams() systems.MoveParams {
	return systems.MoveParams{
		Fan:       w.cfg.Worm.MoveFan,
		FanStep:   w.cfg.Worm.MoveFanStep,
		MinRadius: w.cfg.Worm.MoveMinRadius,
	}
}

// plannedMove returns the displacement Move would apply and its AP cost.
func (h Worm) plannedMove() (r2.Vec, int) {
	pos, rot, body := h.pos(), h.rot(), h.body()
	delta := systems.MoveDelta(h.w.terrain, pos.Vec(), rot.Heading, body.Radius, h.w.moveParams())
	return delta, systems.MoveCost(delta)
}

// CanMove reports whether the worm is alive, has somewhere to go along its
// facing and can pay for the step.
func (h Worm) CanMove() bool {
	if !h.IsAlive() {
		return false
	}
	delta, cost := h.plannedMove()
	return delta != (r2.Vec{}) && h.vitals().AP-cost >= 0
}

// Move steps the worm as far as it can along its facing, preferring spots that
// rest against terrain. The worm then eats any food it touches and falls if
// it ended up unsupported.
func (h Worm) Move() error {
	if err := h.check(); err != nil {
		return err
	}
	if !h.IsAlive() {
		return fmt.Errorf("%w: worm %q is not alive", ErrCannotMove, h.Name())
	}
	delta, cost := h.plannedMove()
	if delta == (r2.Vec{}) {
		return fmt.Errorf("%w: no reachable spot ahead", ErrCannotMove)
	}
	v := h.vitals()
	if v.AP-cost < 0 {
		return fmt.Errorf("%w: %w: move costs %d, %d left", ErrCannotMove, ErrInsufficientAP, cost, v.AP)
	}

	v.AP -= cost
	pos := h.pos()
	*pos = components.PositionOf(r2.Add(pos.Vec(), delta))

	d := h.data()
	h.w.record(telemetry.NewMoveEvent(h.w.turn, d.ID, d.Name, r2.Norm(delta), pos.X, pos.Y))

	if !h.eat() {
		return nil
	}
	h.fall()
	return nil
}

// CanFall reports whether the worm is alive on a passable spot without support.
func (h Worm) CanFall() bool {
	if !h.IsAlive() {
		return false
	}
	pos, body := h.pos(), h.body()
	return h.w.IsPassable(pos.X, pos.Y, body.Radius) && !h.w.IsAdjacent(pos.X, pos.Y, body.Radius)
}

// Fall drops the worm until it rests on terrain or leaves the world, costing
// floor(3 HP per meter). The worm then eats any food it lands on. A worm that
// falls out of the world is destroyed.
func (h Worm) Fall() error {
	if err := h.check(); err != nil {
		return err
	}
	h.fall()
	return nil
}

// fall implements Fall and reports whether the worm survived.
func (h Worm) fall() bool {
	pos, body := h.pos(), h.body()
	start := pos.Y
	step := body.Radius * h.w.cfg.Worm.FallStepFraction

	for h.CanFall() {
		pos.Y -= step
	}

	dropped := start - pos.Y
	if dropped <= 0 {
		return h.eat()
	}

	damage := int(math.Floor(h.w.cfg.Worm.FallDamagePerMeter * dropped))
	d := h.data()
	h.w.record(telemetry.NewFallEvent(h.w.turn, d.ID, d.Name, dropped, damage, pos.X, pos.Y))

	if !h.w.WithinBounds(pos.X, pos.Y) {
		h.w.killWorm(h.e)
		return false
	}
	if !h.setHP(h.vitals().HP - damage) {
		return false
	}
	return h.eat()
}

// eat consumes every food item the worm overlaps, growing by the food growth
// factor per item. It reports whether the worm is still in the world.
func (h Worm) eat() bool {
	if !h.inWorld() {
		return false
	}
	growth := h.w.cfg.Worm.FoodGrowth

	for _, f := range append([]ecs.Entity(nil), h.w.food...) {
		pos, body := *h.pos(), *h.body()
		fpos, fbody := h.w.posMap.Get(f), h.w.bodyMap.Get(f)
		if !systems.IsOverlapping(pos.X, pos.Y, body.Radius, fpos.X, fpos.Y, fbody.Radius) {
			continue
		}
		h.w.removeFood(f)
		h.setRadius(body.Radius * growth)

		d := h.data()
		h.w.record(telemetry.NewEatEvent(h.w.turn, d.ID, d.Name, h.body().Radius, pos.X, pos.Y))
	}
	return true
}

// jumpTrajectory returns the flight the worm would make with its current AP.
func (h Worm) jumpTrajectory() systems.Trajectory {
	pos, rot := h.pos(), h.rot()
	mass := h.Mass()
	g := h.w.cfg.Physics.Gravity
	force := h.w.cfg.Worm.JumpAPForce*float64(h.vitals().AP) + mass*g
	return systems.NewTrajectory(pos.Vec(), rot.Heading, force, mass, g)
}

// jumpFlight flies the jump trajectory and returns the landing time and the
// first blocked sample.
func (h Worm) jumpFlight(dt float64) (float64, r2.Vec) {
	radius := h.body().Radius
	t, stop, _ := h.jumpTrajectory().Fly(dt, func(_ float64, p r2.Vec) bool {
		return h.w.IsPassable(p.X, p.Y, radius)
	})
	return t, stop
}

func validTimeStep(dt float64) error {
	if !systems.IsFinite(dt) || dt <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidTimeStep, dt)
	}
	return nil
}

// CanJump reports whether the worm has AP left and stands on a passable spot.
func (h Worm) CanJump() bool {
	if !h.IsAlive() {
		return false
	}
	pos := h.pos()
	return h.vitals().AP > 0 && h.w.IsPassable(pos.X, pos.Y, h.body().Radius)
}

// JumpTime returns how long a jump would last when its path is sampled every dt
// seconds: the time of the last sample before the path hits terrain or leaves
// the world.
func (h Worm) JumpTime(dt float64) (float64, error) {
	if err := h.check(); err != nil {
		return 0, err
	}
	if err := validTimeStep(dt); err != nil {
		return 0, err
	}
	t, _ := h.jumpFlight(dt)
	return t, nil
}

// JumpStep returns where a jump started now would be after t seconds.
// It does not move the worm and gives the same answer for the same state.
func (h Worm) JumpStep(t float64) (x, y float64, err error) {
	if err := h.check(); err != nil {
		return 0, 0, err
	}
	if !systems.IsFinite(t) {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidTimeStep, t)
	}
	p := h.jumpTrajectory().At(t)
	return p.X, p.Y, nil
}

// Jump launches the worm along its facing with a force that grows with its
// remaining AP, sampling the flight every dt seconds. The landing spends all AP
// and costs 3 HP per meter of net drop. The worm then eats any food it lands on.
// A worm whose flight leaves the world is destroyed.
func (h Worm) Jump(dt float64) error {
	if err := h.check(); err != nil {
		return err
	}
	if err := validTimeStep(dt); err != nil {
		return err
	}
	if !h.CanJump() {
		return fmt.Errorf("%w: worm %q", ErrCannotJump, h.Name())
	}

	t, stop := h.jumpFlight(dt)
	landing := h.jumpTrajectory().At(t)

	pos := h.pos()
	start := pos.Y
	*pos = components.PositionOf(landing)
	h.vitals().AP = 0

	damage := 0
	if landing.Y < start {
		damage = int(math.Floor(h.w.cfg.Worm.FallDamagePerMeter * (start - landing.Y)))
	}

	d := h.data()
	h.w.record(telemetry.NewJumpEvent(h.w.turn, d.ID, d.Name, t, damage, landing.X, landing.Y))

	if !h.w.WithinBounds(stop.X, stop.Y) {
		pos.X, pos.Y = stop.X, stop.Y
		h.w.killWorm(h.e)
		return nil
	}
	if damage > 0 && !h.setHP(h.vitals().HP-damage) {
		return nil
	}
	h.eat()
	return nil
}

// weapon returns the configuration of the selected weapon.
func (h Worm) weapon() (config.WeaponConfig, bool) {
	return h.w.cfg.WeaponOf(h.data().Weapon)
}

// CanShoot reports whether the worm stands on a passable spot with enough AP
// for the selected weapon.
func (h Worm) CanShoot() bool {
	if !h.IsAlive() {
		return false
	}
	wc, ok := h.weapon()
	if !ok {
		return false
	}
	pos := h.pos()
	return h.vitals().AP >= wc.APCost && h.w.IsPassable(pos.X, pos.Y, h.body().Radius)
}

// Shoot fires the selected weapon with the given propulsion yield (0 to 100).
// The projectile leaves from the worm's edge along its facing and its flight is
// resolved at once; the first other worm it touches takes the weapon damage.
// The spent projectile stays in the world until the next shot or turn.
func (h Worm) Shoot(yield int) (Projectile, error) {
	if err := h.check(); err != nil {
		return Projectile{}, err
	}
	if yield < 0 || yield > 100 {
		return Projectile{}, fmt.Errorf("%w: %d", ErrInvalidYield, yield)
	}
	wc, ok := h.weapon()
	if !ok {
		return Projectile{}, fmt.Errorf("%w: %s is not configured", ErrCannotShoot, h.data().Weapon)
	}
	if !h.CanShoot() {
		if h.vitals().AP < wc.APCost {
			return Projectile{}, fmt.Errorf("%w: %w: %s needs %d, %d left", ErrCannotShoot, ErrInsufficientAP, wc.Name, wc.APCost, h.vitals().AP)
		}
		return Projectile{}, fmt.Errorf("%w: worm %q is not on a passable spot", ErrCannotShoot, h.Name())
	}

	d := h.data()
	id, name, weapon := d.ID, d.Name, d.Weapon

	pos, rot, body := h.pos(), h.rot(), h.body()
	heading := rot.Heading
	origin := r2.Add(pos.Vec(), r2.Scale(body.Radius, r2.Vec{X: math.Cos(heading), Y: math.Sin(heading)}))
	h.w.record(telemetry.NewShotEvent(h.w.turn, id, name, wc.Name, yield, pos.X, pos.Y))

	shell := h.w.fire(h.e, weapon, wc, yield, origin, heading)
	h.vitals().AP -= wc.APCost

	shell.resolve()
	return shell, nil
}
