package telemetry

import (
	"path/filepath"
	"testing"

	"github.com/pthm-cable/worms/config"
)

func testHallConfig(size int) config.HallOfFameConfig {
	return config.HallOfFameConfig{
		Size:           size,
		MinTurns:       5,
		DamageWeight:   1,
		SurvivalWeight: 2,
		FoodWeight:     5,
	}
}

func TestHallOfFame_Consider(t *testing.T) {
	hof := NewHallOfFame(testHallConfig(2))

	// Died at turn 3 without a hit: too short
	if hof.Consider(LifetimeStats{WormID: 1, Name: "Boggy", DeathTurn: 3}, 20) {
		t.Error("expected a short-lived worm without hits to be rejected")
	}
	// Hits qualify regardless of survival; fitness = 80 + 2*2
	if !hof.Consider(LifetimeStats{WormID: 2, Name: "Spadge", Hits: 1, DamageDealt: 80, DeathTurn: 2}, 20) {
		t.Error("expected a worm with hits to qualify")
	}
	// Alive at turn 20: fitness = 2*20 + 5*1
	if !hof.Consider(LifetimeStats{WormID: 3, Name: "Nobby", FoodEaten: 1, DeathTurn: -1}, 20) {
		t.Error("expected a long-lived worm to qualify")
	}

	entries := hof.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "Spadge" || entries[0].Fitness != 84 {
		t.Errorf("expected Spadge first with 84, got %+v", entries[0])
	}
	if entries[1].Survived != 20 || !entries[1].Alive {
		t.Errorf("expected Nobby alive for 20 turns, got %+v", entries[1])
	}
	if hof.TopFitness() != 84 {
		t.Errorf("expected top fitness 84, got %v", hof.TopFitness())
	}
}

func TestHallOfFame_DropsLowestWhenFull(t *testing.T) {
	hof := NewHallOfFame(testHallConfig(2))
	for i, dmg := range []int{10, 30, 20} {
		hof.Consider(LifetimeStats{WormID: uint32(i), Hits: 1, DamageDealt: dmg, DeathTurn: 0}, 10)
	}

	entries := hof.Entries()
	if len(entries) != 2 || entries[0].DamageDealt != 30 || entries[1].DamageDealt != 20 {
		t.Errorf("expected [30 20], got %+v", entries)
	}
	if hof.Consider(LifetimeStats{WormID: 9, Hits: 1, DamageDealt: 5, DeathTurn: 0}, 10) {
		t.Error("expected a worse entry to be rejected from a full hall")
	}
}

func TestHallOfFame_SaveAndLoad(t *testing.T) {
	hof := NewHallOfFame(testHallConfig(5))
	hof.Consider(LifetimeStats{WormID: 1, Name: "Boggy", Team: "Annelida", Hits: 2, DamageDealt: 40, DeathTurn: -1}, 8)

	path, err := hof.Save(t.TempDir())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(path) != "hall_of_fame.json" {
		t.Errorf("unexpected file name %s", path)
	}

	back, err := LoadHallOfFameFromFile(path, testHallConfig(5))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.Size() != 1 || back.Entries()[0] != hof.Entries()[0] {
		t.Errorf("expected round-tripped entry %+v, got %+v", hof.Entries(), back.Entries())
	}
}
