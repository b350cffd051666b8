package game

import (
	"math"

	"github.com/pthm-cable/worms/components"
	"github.com/pthm-cable/worms/config"
	"github.com/pthm-cable/worms/systems"
)

// Action is what the autopilot did in one step.
type Action uint8

const (
	ActionEndTurn Action = iota
	ActionTurn
	ActionSelectWeapon
	ActionShoot
	ActionMove
	ActionJump
)

var actionNames = [...]string{"end_turn", "turn", "select_weapon", "shoot", "move", "jump"}

// String returns the snake_case name of the action.
func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Autopilot plays the current worm with a fixed plan: face the nearest enemy
// with a little loft, shoot if the selected weapon (or the Rifle) is
// affordable, otherwise walk, otherwise jump, otherwise end the turn.
type Autopilot struct {
	// AimTolerance is how far off the aim may be before the worm turns (rad).
	AimTolerance float64
	// Loft is added to the line of sight toward the vertical (rad).
	Loft float64
	// YieldGain scales the distance-based propulsion yield.
	YieldGain float64
	// Jumpy makes the worm jump when it cannot walk.
	Jumpy bool
}

// NewAutopilot returns an autopilot with the default plan.
func NewAutopilot() *Autopilot {
	return &Autopilot{
		AimTolerance: 0.05,
		Loft:         0.35,
		YieldGain:    1,
		Jumpy:        true,
	}
}

// AutopilotFrom returns an autopilot configured by cfg.
func AutopilotFrom(cfg config.AutopilotConfig) *Autopilot {
	return &Autopilot{
		AimTolerance: cfg.AimTolerance,
		Loft:         cfg.Loft,
		YieldGain:    cfg.YieldGain,
		Jumpy:        cfg.Jumpy,
	}
}

// Step performs at most one action for the world's current worm.
// ActionEndTurn means the worm has nothing useful left to do this turn.
func (a *Autopilot) Step(w *World) (Action, error) {
	worm, ok := w.CurrentWorm()
	if !ok || !worm.IsAlive() {
		return ActionEndTurn, nil
	}

	if target, ok := a.nearestEnemy(w, worm); ok {
		delta := a.aim(worm, target) - worm.Angle()
		if math.Abs(delta) > a.AimTolerance && worm.CanTurn(delta) {
			return ActionTurn, worm.Turn(delta)
		}
		if math.Abs(delta) <= a.AimTolerance {
			if !worm.CanShoot() && worm.Weapon() == components.Bazooka && a.rifleAffordable(w, worm) {
				return ActionSelectWeapon, worm.SelectNextWeapon()
			}
			if worm.CanShoot() {
				_, err := worm.Shoot(a.yield(w, worm, target))
				return ActionShoot, err
			}
		}
	}

	if worm.CanMove() {
		return ActionMove, worm.Move()
	}
	if a.Jumpy && worm.CanJump() {
		return ActionJump, worm.Jump(w.cfg.Physics.JumpTimeStep)
	}
	return ActionEndTurn, nil
}

// nearestEnemy returns the closest worm outside worm's team.
func (a *Autopilot) nearestEnemy(w *World, worm Worm) (Worm, bool) {
	team, hasTeam := worm.Team()

	var best Worm
	bestDist := math.Inf(1)
	for _, other := range w.Worms() {
		if other == worm {
			continue
		}
		if hasTeam && team.IsMember(other) {
			continue
		}
		d := systems.Distance(worm.X(), worm.Y(), other.X(), other.Y())
		if d < bestDist {
			best, bestDist = other, d
		}
	}
	return best, !math.IsInf(bestDist, 1)
}

// aim returns the facing that points at target, lofted upward.
// Facings are clamped to [-π, π], so targets to the left are measured from π.
func (a *Autopilot) aim(worm, target Worm) float64 {
	dx := target.X() - worm.X()
	dy := target.Y() - worm.Y()
	if dx >= 0 {
		return systems.ClampAngle(math.Atan2(dy, dx) + a.Loft)
	}
	return systems.ClampAngle(math.Pi - math.Atan2(dy, -dx) - a.Loft)
}

// yield scales the propulsion with the distance to target relative to the world width.
func (a *Autopilot) yield(w *World, worm, target Worm) int {
	d := systems.Distance(worm.X(), worm.Y(), target.X(), target.Y())
	return clampInt(int(math.Round(a.YieldGain*100*d/w.Width())), 0, 100)
}

func (a *Autopilot) rifleAffordable(w *World, worm Worm) bool {
	rifle, ok := w.cfg.WeaponOf(components.Rifle)
	return ok && worm.AP() >= rifle.APCost
}
