package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/worms/components"
)

// Team is a handle to a team. A team lives until its last member dies.
type Team struct {
	w *World
	e ecs.Entity
}

// AddEmptyTeam creates a team and makes it the one new worms join.
func (w *World) AddEmptyTeam(name string) (Team, error) {
	if !components.ValidTeamName(name) {
		return Team{}, fmt.Errorf("%w: team %q", ErrInvalidName, name)
	}
	if len(w.teams) >= w.cfg.World.MaxTeams {
		return Team{}, fmt.Errorf("%w: %d teams", ErrTeamLimit, w.cfg.World.MaxTeams)
	}

	team := components.Team{Name: name, Initiated: true}
	e := w.teamMapper.NewEntity(&team)
	if assert(indexOf(w.teams, e) < 0, "new team already in roster") {
		w.teams = append(w.teams, e)
	}
	w.currentTeam = e

	w.log.Debug("team_created", "team", name, "teams", len(w.teams))
	return Team{w: w, e: e}, nil
}

// inWorld reports whether the handle refers to a team of w.
func (h Team) inWorld(w *World) bool {
	return h.w == w && w != nil && w.alive(h.e) && w.teamMap.Has(h.e)
}

func (h Team) data() *components.Team { return h.w.teamMap.Get(h.e) }

// Name returns the team name.
func (h Team) Name() string {
	if !h.inWorld(h.w) {
		return ""
	}
	return h.data().Name
}

// Members returns the team's worms in join order.
func (h Team) Members() []Worm {
	if !h.inWorld(h.w) {
		return nil
	}
	members := h.data().Members
	out := make([]Worm, len(members))
	for i, e := range members {
		out[i] = Worm{w: h.w, e: e}
	}
	return out
}

// Size returns the number of members.
func (h Team) Size() int {
	if !h.inWorld(h.w) {
		return 0
	}
	return len(h.data().Members)
}

// IsMember reports whether worm belongs to the team.
func (h Team) IsMember(worm Worm) bool {
	if !h.inWorld(h.w) || worm.w != h.w {
		return false
	}
	return indexOf(h.data().Members, worm.e) >= 0
}

// IsActive reports whether the team still counts in the match: it has members
// or was just created.
func (h Team) IsActive() bool {
	if !h.inWorld(h.w) {
		return false
	}
	t := h.data()
	return t.Initiated || len(t.Members) > 0
}

// String implements fmt.Stringer.
func (h Team) String() string {
	if !h.inWorld(h.w) {
		return "Team(eliminated)"
	}
	return fmt.Sprintf("Team(%s, %d members)", h.data().Name, len(h.data().Members))
}
