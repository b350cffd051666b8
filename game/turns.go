package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/worms/telemetry"
)

// CurrentWorm returns the worm whose turn it is. A current worm that has spent
// all its AP hands over: it regains the turn HP bonus and a full AP pool, the
// turn advances, and the next worm is returned. With a single worm left the
// turn never passes.
func (w *World) CurrentWorm() (Worm, bool) {
	if len(w.worms) == 0 {
		return Worm{}, false
	}
	cur := Worm{w: w, e: w.worms[w.turnIndex]}
	if cur.vitals().AP > 0 || len(w.worms) < 2 {
		return cur, true
	}

	cur.setHP(cur.vitals().HP + w.cfg.World.TurnHPBonus)
	cur.vitals().AP = cur.MaxAP()
	w.NextWorm()
	w.turn++
	return Worm{w: w, e: w.worms[w.turnIndex]}, true
}

// NextWorm moves the turn index to the next worm, wrapping to the first.
func (w *World) NextWorm() {
	w.turnIndex++
	if w.turnIndex >= len(w.worms) {
		w.turnIndex = 0
	}
}

// StartNextTurn passes the turn to the next worm, which gets a full AP pool and
// the turn HP bonus. A spent projectile is cleared from the world.
func (w *World) StartNextTurn() (Worm, bool) {
	if len(w.worms) == 0 {
		return Worm{}, false
	}
	w.NextWorm()
	w.clearProjectile()
	w.turn++

	next := Worm{w: w, e: w.worms[w.turnIndex]}
	next.setHP(next.vitals().HP + w.cfg.World.TurnHPBonus)
	next.vitals().AP = next.MaxAP()

	pos, d := next.pos(), next.data()
	w.record(telemetry.NewTurnStartEvent(w.turn, d.ID, d.Name, pos.X, pos.Y))
	return next, true
}

// isTurnOf reports whether e is the worm at the turn index.
func (w *World) isTurnOf(e ecs.Entity) bool {
	return len(w.worms) > 0 && w.worms[w.turnIndex] == e
}

// IsFinished reports whether the match is over: one team holds every worm
// left, or no team remains and a single worm is left.
func (w *World) IsFinished() bool {
	_, ok := w.Winner()
	return ok
}

// Winner returns the name of the last team standing, or of the last worm when
// no team remains. ok is false while the match is still open.
func (w *World) Winner() (string, bool) {
	switch {
	// a lone team with no worms yet is still filling up, not a winner
	case len(w.teams) == 1 && len(w.worms) > 0:
		team := w.teamMap.Get(w.teams[0])
		if len(team.Members) == len(w.worms) {
			return team.Name, true
		}
	case len(w.teams) == 0 && len(w.worms) == 1:
		return w.wormMap.Get(w.worms[0]).Name, true
	}
	return "", false
}
