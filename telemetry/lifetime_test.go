package telemetry

import "testing"

func TestLifetimeTracker(t *testing.T) {
	lt := NewLifetimeTracker()

	lt.Record(NewSpawnEvent(0, 4, "Delta", "Annelida", 0.3, 0, 0))
	lt.Record(NewSpawnEvent(0, 2, "Beta", "Annelida", 0.4, 0, 0))
	lt.Record(NewTurnStartEvent(1, 4, "Delta", 0, 0))
	lt.Record(NewEatEvent(1, 4, "Delta", 0.33, 0, 0))
	lt.Record(NewJumpEvent(1, 4, "Delta", 0.8, 3, 1, 0))
	lt.Record(NewDeathEvent(2, 4, "Delta", "Annelida"))

	// Unknown worms are ignored
	lt.Record(NewMoveEvent(1, 99, "Ghost", 1, 0, 0))

	if lt.Count() != 2 {
		t.Fatalf("Count = %d, want 2", lt.Count())
	}
	if lt.Alive() != 1 {
		t.Errorf("Alive = %d, want 1", lt.Alive())
	}

	d := lt.Get(4)
	if d.Turns != 1 || d.FoodEaten != 1 || d.Jumps != 1 || d.DamageTaken != 3 || d.DeathTurn != 2 {
		t.Errorf("Delta = %+v", d)
	}
	if d.PeakRadius != 0.33 {
		t.Errorf("PeakRadius = %v, want 0.33", d.PeakRadius)
	}

	all := lt.All()
	if len(all) != 2 || all[0].WormID != 2 || all[1].WormID != 4 {
		t.Errorf("All not ordered by worm ID: %+v", all)
	}
	if all[0].DeathTurn != -1 {
		t.Errorf("living worm DeathTurn = %d, want -1", all[0].DeathTurn)
	}
}
