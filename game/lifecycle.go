package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/worms/components"
	"github.com/pthm-cable/worms/systems"
	"github.com/pthm-cable/worms/telemetry"
)

// spawnWorm creates a worm entity with full AP and HP, appends it to the turn
// order and enrolls it in the current team.
func (w *World) spawnWorm(x, y, radius, angle float64, name string, program components.Program) ecs.Entity {
	id := w.nextID
	w.nextID++

	pos := components.Position{X: x, Y: y}
	rot := components.Rotation{Heading: systems.ClampAngle(angle)}
	body := components.Body{Radius: radius}
	full := w.maxPoints(radius)
	vitals := components.Vitals{AP: full, HP: full}
	worm := components.Worm{
		ID:      id,
		Name:    name,
		Weapon:  components.Bazooka,
		Program: program,
	}

	entity := w.wormMapper.NewEntity(&pos, &rot, &body, &vitals, &worm)

	if !assert(indexOf(w.worms, entity) < 0, "new worm already in roster") {
		return entity
	}
	w.worms = append(w.worms, entity)

	team := ""
	if w.alive(w.currentTeam) {
		w.joinTeam(entity, w.currentTeam)
		team = w.teamMap.Get(w.currentTeam).Name
	}

	w.record(telemetry.NewSpawnEvent(w.turn, id, name, team, radius, x, y))
	w.log.Debug("worm_spawned", "id", id, "name", name, "team", team, "x", x, "y", y, "radius", radius)
	return entity
}

// spawnFood creates a food entity.
func (w *World) spawnFood(x, y float64) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	body := components.Body{Radius: w.cfg.Food.Radius}
	food := components.Food{}

	entity := w.foodMapper.NewEntity(&pos, &body, &food)
	if assert(indexOf(w.food, entity) < 0, "new food already in roster") {
		w.food = append(w.food, entity)
	}
	return entity
}

// spawnProjectile creates the world's projectile, removing any previous one first.
func (w *World) spawnProjectile(p components.Projectile, radius float64) ecs.Entity {
	w.removeProjectile()

	pos := p.Origin
	body := components.Body{Radius: radius}
	entity := w.shellMapper.NewEntity(&pos, &body, &p)
	w.projectile = entity
	return entity
}

// removeProjectile deletes the projectile, if any.
func (w *World) removeProjectile() {
	if w.projectile == noEntity {
		return
	}
	if assert(w.alive(w.projectile), "projectile handle is stale") {
		w.ecs.RemoveEntity(w.projectile)
	}
	w.projectile = noEntity
}

// removeFood deletes a food entity.
func (w *World) removeFood(e ecs.Entity) {
	i := indexOf(w.food, e)
	if !assert(i >= 0, "removing food that is not in the world") {
		return
	}
	w.food = without(w.food, i)
	w.ecs.RemoveEntity(e)
}

// killWorm removes a worm from its team, the turn order and the world.
// The turn index keeps pointing at the same upcoming worm.
func (w *World) killWorm(e ecs.Entity) {
	i := indexOf(w.worms, e)
	if !assert(i >= 0, "removing worm that is not in the world") {
		return
	}

	worm := w.wormMap.Get(e)
	id, name, teamEntity := worm.ID, worm.Name, worm.Team

	team := ""
	if w.alive(teamEntity) {
		team = w.teamMap.Get(teamEntity).Name
		w.leaveTeam(e, teamEntity)
	}

	w.worms = without(w.worms, i)
	if i < w.turnIndex {
		w.turnIndex--
	}
	if w.turnIndex >= len(w.worms) {
		w.turnIndex = 0
	}

	if w.projectile != noEntity {
		if shell := w.shellMap.Get(w.projectile); shell.Firer == e {
			shell.Firer = noEntity
		}
	}
	w.ecs.RemoveEntity(e)

	w.record(telemetry.NewDeathEvent(w.turn, id, name, team))
	w.log.Info("worm_destroyed", "id", id, "name", name, "team", team, "turn", w.turn)

	w.checkFinished()
}

// joinTeam enrolls worm e in team t.
func (w *World) joinTeam(e, t ecs.Entity) {
	worm := w.wormMap.Get(e)
	if !assert(worm.Team == noEntity, "worm already belongs to a team") {
		return
	}
	team := w.teamMap.Get(t)
	if !assert(indexOf(team.Members, e) < 0, "worm already in team roster") {
		return
	}
	team.Members = append(team.Members, e)
	team.Initiated = false
	worm.Team = t
}

// leaveTeam removes worm e from team t, destroying t when its roster empties.
func (w *World) leaveTeam(e, t ecs.Entity) {
	worm := w.wormMap.Get(e)
	if !assert(worm.Team == t, "worm team does not match roster") {
		return
	}
	team := w.teamMap.Get(t)
	i := indexOf(team.Members, e)
	if !assert(i >= 0, "worm missing from its team roster") {
		return
	}
	team.Members = without(team.Members, i)
	worm.Team = noEntity

	if len(team.Members) == 0 && !team.Initiated {
		w.destroyTeam(t)
	}
}

// destroyTeam removes an empty team from the world.
func (w *World) destroyTeam(t ecs.Entity) {
	i := indexOf(w.teams, t)
	if !assert(i >= 0, "removing team that is not in the world") {
		return
	}
	name := w.teamMap.Get(t).Name

	w.teams = without(w.teams, i)
	if w.currentTeam == t {
		w.currentTeam = noEntity
	}
	w.ecs.RemoveEntity(t)

	w.record(telemetry.NewTeamEliminatedEvent(w.turn, name))
	w.log.Info("team_destroyed", "team", name, "turn", w.turn, "teams_left", len(w.teams))
}

// checkFinished logs the end of the match the first time it is reached.
func (w *World) checkFinished() {
	if w.finished {
		return
	}
	winner, ok := w.Winner()
	if !ok {
		return
	}
	w.finished = true
	w.record(telemetry.NewGameOverEvent(w.turn, winner))
	w.log.Info("game_finished", "winner", winner, "turn", w.turn, "worms_left", len(w.worms))
}

// maxPoints returns the AP and HP maximum of a worm of the given radius.
func (w *World) maxPoints(radius float64) int {
	return ceilInt(systems.SphereMass(w.cfg.Derived.WormMassFactor, radius))
}
