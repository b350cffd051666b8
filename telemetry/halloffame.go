package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pthm-cable/worms/config"
)

// HallEntry is a worm that earned a place in the hall of fame.
type HallEntry struct {
	WormID      uint32  `json:"worm_id"`
	Name        string  `json:"name"`
	Team        string  `json:"team"`
	Fitness     float64 `json:"fitness"`
	Survived    int     `json:"turns_survived"`
	DamageDealt int     `json:"damage_dealt"`
	Hits        int     `json:"hits"`
	FoodEaten   int     `json:"food_eaten"`
	Alive       bool    `json:"alive"`
}

// HallOfFame ranks the worms of a match, best first, keeping at most maxSize.
type HallOfFame struct {
	entries []HallEntry
	maxSize int
	cfg     config.HallOfFameConfig
}

// NewHallOfFame creates an empty hall scored with cfg.
func NewHallOfFame(cfg config.HallOfFameConfig) *HallOfFame {
	return &HallOfFame{
		entries: make([]HallEntry, 0, cfg.Size),
		maxSize: cfg.Size,
		cfg:     cfg,
	}
}

// Consider scores a worm's lifetime at the given final turn.
// Returns true if the worm was added to the hall.
func (hof *HallOfFame) Consider(stats LifetimeStats, finalTurn int) bool {
	survived := finalTurn - stats.SpawnTurn
	if stats.DeathTurn >= 0 {
		survived = stats.DeathTurn - stats.SpawnTurn
	}
	if !hof.meetsEntryCriteria(stats, survived) {
		return false
	}

	entry := HallEntry{
		WormID:      stats.WormID,
		Name:        stats.Name,
		Team:        stats.Team,
		Fitness:     hof.calculateFitness(stats, survived),
		Survived:    survived,
		DamageDealt: stats.DamageDealt,
		Hits:        stats.Hits,
		FoodEaten:   stats.FoodEaten,
		Alive:       stats.DeathTurn < 0,
	}
	return hof.insertEntry(entry)
}

// meetsEntryCriteria: a worm that hit anything qualifies, otherwise it must
// have lasted long enough.
func (hof *HallOfFame) meetsEntryCriteria(stats LifetimeStats, survived int) bool {
	if stats.Hits > 0 {
		return true
	}
	return survived >= hof.cfg.MinTurns
}

func (hof *HallOfFame) calculateFitness(stats LifetimeStats, survived int) float64 {
	fitness := float64(stats.DamageDealt) * hof.cfg.DamageWeight
	fitness += float64(survived) * hof.cfg.SurvivalWeight
	fitness += float64(stats.FoodEaten) * hof.cfg.FoodWeight
	return fitness
}

// insertEntry keeps entries sorted descending by fitness, dropping the lowest when full.
func (hof *HallOfFame) insertEntry(entry HallEntry) bool {
	hall := hof.entries
	idx := sort.Search(len(hall), func(i int) bool {
		return hall[i].Fitness < entry.Fitness
	})
	if idx >= hof.maxSize {
		return false
	}

	hall = append(hall, HallEntry{})
	copy(hall[idx+1:], hall[idx:])
	hall[idx] = entry
	if len(hall) > hof.maxSize {
		hall = hall[:hof.maxSize]
	}
	hof.entries = hall
	return true
}

// Entries returns the ranked entries, best first.
func (hof *HallOfFame) Entries() []HallEntry {
	return hof.entries
}

// Size returns the number of entries.
func (hof *HallOfFame) Size() int {
	return len(hof.entries)
}

// TopFitness returns the best fitness, or 0 if the hall is empty.
func (hof *HallOfFame) TopFitness() float64 {
	if len(hof.entries) == 0 {
		return 0
	}
	return hof.entries[0].Fitness
}

// MarshalJSON serializes the ranked entries.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(hof.entries, "", "  ")
}

// Save writes hall_of_fame.json to dir.
func (hof *HallOfFame) Save(dir string) (string, error) {
	data, err := hof.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("marshaling hall of fame: %w", err)
	}
	path := filepath.Join(dir, "hall_of_fame.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing hall of fame: %w", err)
	}
	return path, nil
}

// LoadHallOfFameFromFile reads a hall of fame written by Save. Entries beyond
// cfg.Size are dropped.
func LoadHallOfFameFromFile(path string, cfg config.HallOfFameConfig) (*HallOfFame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hall of fame: %w", err)
	}

	var raw []HallEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing hall of fame JSON: %w", err)
	}

	hof := NewHallOfFame(cfg)
	for _, e := range raw {
		hof.insertEntry(e)
	}
	return hof, nil
}
