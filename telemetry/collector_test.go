package telemetry

import (
	"math"
	"testing"
)

func TestCollectorFlush(t *testing.T) {
	lt := NewLifetimeTracker()
	c := NewCollector(lt)

	c.Record(NewSpawnEvent(0, 1, "Alpha", "Annelida", 0.5, 1, 1))
	c.Record(NewSpawnEvent(0, 2, "Beta", "Lumbricus", 0.5, 5, 1))
	c.Record(NewMoveEvent(1, 1, "Alpha", 0.4, 1.4, 1))
	c.Record(NewMoveEvent(1, 1, "Alpha", 0.6, 2.0, 1))
	c.Record(NewShotEvent(1, 1, "Alpha", "Rifle", 0, 2, 1))
	c.Record(NewHitEvent(1, 1, "Alpha", 2, 20, 5, 1))
	c.Record(NewShotEvent(1, 1, "Alpha", "Rifle", 0, 2, 1))
	c.Record(NewFallEvent(1, 1, "Alpha", 1.5, 4, 2, 0.5))

	stats := c.Flush(1, "Alpha", WorldSample{
		Worms: 2,
		Teams: 2,
		HP:    []float64{100, 200},
		Radii: []float64{0.5, 0.5},
	})

	if stats.Moves != 2 || stats.Shots != 2 || stats.Hits != 1 || stats.Falls != 1 {
		t.Errorf("counts = moves %d shots %d hits %d falls %d", stats.Moves, stats.Shots, stats.Hits, stats.Falls)
	}
	if math.Abs(stats.Distance-1.0) > 1e-9 {
		t.Errorf("Distance = %v, want 1.0", stats.Distance)
	}
	if stats.HitRate != 0.5 {
		t.Errorf("HitRate = %v, want 0.5", stats.HitRate)
	}
	if stats.Damage != 20 || stats.FallDamage != 4 {
		t.Errorf("Damage = %d, FallDamage = %d", stats.Damage, stats.FallDamage)
	}
	if stats.HPMean != 150 || stats.HPMin != 100 || stats.HPMax != 200 {
		t.Errorf("HP distribution = %+v", stats)
	}

	// Counters reset after a flush
	next := c.Flush(2, "Beta", WorldSample{})
	if next.Moves != 0 || next.Shots != 0 || next.Damage != 0 || next.Distance != 0 {
		t.Errorf("counters not reset: %+v", next)
	}

	if got := len(c.DrainEvents()); got != 8 {
		t.Errorf("DrainEvents returned %d events, want 8", got)
	}
	if got := len(c.DrainEvents()); got != 0 {
		t.Errorf("second DrainEvents returned %d events, want 0", got)
	}

	alpha := lt.Get(1)
	if alpha == nil || alpha.Shots != 2 || alpha.Hits != 1 || alpha.DamageDealt != 20 || alpha.DamageTaken != 4 {
		t.Errorf("Alpha lifetime = %+v", alpha)
	}
	if beta := lt.Get(2); beta == nil || beta.DamageTaken != 20 {
		t.Errorf("Beta lifetime = %+v", beta)
	}
}

func TestCollectorWithoutLifetimes(t *testing.T) {
	c := NewCollector(nil)
	c.Record(NewDeathEvent(3, 7, "Gamma", "Annelida"))
	if stats := c.Flush(3, "Gamma", WorldSample{}); stats.Deaths != 1 {
		t.Errorf("Deaths = %d, want 1", stats.Deaths)
	}
}
