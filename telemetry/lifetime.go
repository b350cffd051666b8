package telemetry

import "sort"

// LifetimeStats tracks per-worm statistics over a match.
type LifetimeStats struct {
	WormID    uint32 `csv:"worm_id"`
	Name      string `csv:"name"`
	Team      string `csv:"team"`
	SpawnTurn int    `csv:"spawn_turn"`
	DeathTurn int    `csv:"death_turn"` // -1 while alive
	Turns     int    `csv:"turns"`      // turns started

	// Combat
	Shots       int `csv:"shots"`
	Hits        int `csv:"hits"`
	DamageDealt int `csv:"damage_dealt"`
	DamageTaken int `csv:"damage_taken"`

	// Movement
	Moves        int     `csv:"moves"`
	Jumps        int     `csv:"jumps"`
	Distance     float64 `csv:"distance"`
	MetersFallen float64 `csv:"meters_fallen"`

	// Growth
	FoodEaten  int     `csv:"food_eaten"`
	PeakRadius float64 `csv:"peak_radius"`
}

// LifetimeTracker manages per-worm lifetime statistics.
// Worms are registered by their spawn event; stats survive death so they can
// be written out at the end of the match.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new worm.
func (lt *LifetimeTracker) Register(wormID uint32, name, team string, spawnTurn int) {
	lt.stats[wormID] = &LifetimeStats{
		WormID:    wormID,
		Name:      name,
		Team:      team,
		SpawnTurn: spawnTurn,
		DeathTurn: -1,
	}
}

// Get returns the lifetime stats for a worm, or nil if not found.
func (lt *LifetimeTracker) Get(wormID uint32) *LifetimeStats {
	return lt.stats[wormID]
}

// Record updates the stats touched by ev.
func (lt *LifetimeTracker) Record(ev Event) {
	if ev.Type == EventSpawn {
		lt.Register(ev.WormID, ev.Worm, ev.Detail, ev.Turn)
		lt.stats[ev.WormID].PeakRadius = ev.Amount
		return
	}

	s := lt.stats[ev.WormID]
	switch ev.Type {
	case EventHit:
		if s != nil {
			s.Hits++
			s.DamageDealt += ev.Damage
		}
		if target := lt.stats[ev.TargetID]; target != nil {
			target.DamageTaken += ev.Damage
		}
		return
	case EventTeamEliminated, EventGameOver:
		return
	}
	if s == nil {
		return
	}

	switch ev.Type {
	case EventTurnStart:
		s.Turns++
	case EventMove:
		s.Moves++
		s.Distance += ev.Amount
	case EventJump:
		s.Jumps++
		s.DamageTaken += ev.Damage
	case EventFall:
		s.MetersFallen += ev.Amount
		s.DamageTaken += ev.Damage
	case EventShot:
		s.Shots++
	case EventEat:
		s.FoodEaten++
		if ev.Amount > s.PeakRadius {
			s.PeakRadius = ev.Amount
		}
	case EventDeath:
		s.DeathTurn = ev.Turn
	}
}

// All returns a copy of every tracked record ordered by worm ID.
func (lt *LifetimeTracker) All() []LifetimeStats {
	out := make([]LifetimeStats, 0, len(lt.stats))
	for _, s := range lt.stats {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WormID < out[j].WormID })
	return out
}

// Count returns the number of tracked worms.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}

// Alive returns the number of tracked worms without a recorded death.
func (lt *LifetimeTracker) Alive() int {
	n := 0
	for _, s := range lt.stats {
		if s.DeathTurn < 0 {
			n++
		}
	}
	return n
}
