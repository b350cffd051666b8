package telemetry

// WorldSample holds the state a collector cannot see through events.
type WorldSample struct {
	Worms int
	Food  int
	Teams int
	HP    []float64 // HP of every living worm
	Radii []float64 // radius of every living worm
}

// Collector accumulates events within a turn and produces TurnStats.
// It also buffers the raw events for the output manager and forwards them
// to an optional lifetime tracker.
type Collector struct {
	lifetimes *LifetimeTracker

	// Event counters for the current turn
	rotations  int
	moves      int
	jumps      int
	falls      int
	shots      int
	hits       int
	foodEaten  int
	distance   float64
	damage     int
	fallDamage int
	deaths     int
	eliminated int

	events []Event
}

// NewCollector creates a new stats collector. lifetimes may be nil.
func NewCollector(lifetimes *LifetimeTracker) *Collector {
	return &Collector{lifetimes: lifetimes}
}

// Record implements Recorder.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventRotate:
		c.rotations++
	case EventMove:
		c.moves++
		c.distance += ev.Amount
	case EventJump:
		c.jumps++
		c.fallDamage += ev.Damage
	case EventFall:
		c.falls++
		c.fallDamage += ev.Damage
	case EventShot:
		c.shots++
	case EventHit:
		c.hits++
		c.damage += ev.Damage
	case EventEat:
		c.foodEaten++
	case EventDeath:
		c.deaths++
	case EventTeamEliminated:
		c.eliminated++
	}

	c.events = append(c.events, ev)
	if c.lifetimes != nil {
		c.lifetimes.Record(ev)
	}
}

// DrainEvents returns the buffered events and clears the buffer.
func (c *Collector) DrainEvents() []Event {
	out := c.events
	c.events = nil
	return out
}

// Flush produces a TurnStats and resets counters for the next turn.
func (c *Collector) Flush(turn int, worm string, sample WorldSample) TurnStats {
	var hitRate float64
	if c.shots > 0 {
		hitRate = float64(c.hits) / float64(c.shots)
	}

	hp := Summarize(sample.HP)
	radius := Summarize(sample.Radii)

	stats := TurnStats{
		Turn: turn,
		Worm: worm,

		Worms: sample.Worms,
		Food:  sample.Food,
		Teams: sample.Teams,

		Rotations: c.rotations,
		Moves:     c.moves,
		Jumps:     c.jumps,
		Falls:     c.falls,
		Shots:     c.shots,
		Hits:      c.hits,
		HitRate:   hitRate,
		FoodEaten: c.foodEaten,
		Distance:  c.distance,

		Damage:     c.damage,
		FallDamage: c.fallDamage,
		Deaths:     c.deaths,
		Eliminated: c.eliminated,

		HPMean: hp.Mean,
		HPStd:  hp.Std,
		HPMin:  hp.Min,
		HPP50:  hp.P50,
		HPMax:  hp.Max,

		RadiusMean: radius.Mean,
	}

	// Reset for next turn
	c.rotations = 0
	c.moves = 0
	c.jumps = 0
	c.falls = 0
	c.shots = 0
	c.hits = 0
	c.foodEaten = 0
	c.distance = 0
	c.damage = 0
	c.fallDamage = 0
	c.deaths = 0
	c.eliminated = 0

	return stats
}
