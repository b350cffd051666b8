package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/worms/config"
	"github.com/pthm-cable/worms/game"
	"github.com/pthm-cable/worms/telemetry"
)

// FitnessEvaluator plays headless matches and scores the autopilot's shooting.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTurns   int
	seeds      []int64
	baseConfig *config.Config

	// Best run tracking
	mu          sync.Mutex
	bestFitness float64
	bestRanking []telemetry.HallEntry
	lastHitRate float64 // hit rate from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTurns int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTurns:    maxTurns,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// BestRanking returns the hall of fame of the best seed in the best evaluation.
func (fe *FitnessEvaluator) BestRanking() []telemetry.HallEntry {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestRanking
}

// LastHitRate returns the hit rate from the most recent evaluation.
func (fe *FitnessEvaluator) LastHitRate() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastHitRate
}

// seedResult holds the result from one match.
type seedResult struct {
	shots, hits int
	finished    bool
	ranking     []telemetry.HallEntry
	err         error
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	// Run all seeds in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runMatch(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var shots, hits, decided int
	var bestSeedHits = -1
	var bestSeedRanking []telemetry.HallEntry
	for _, r := range results {
		if r.err != nil {
			continue
		}
		shots += r.shots
		hits += r.hits
		if r.finished {
			decided++
		}
		if r.hits > bestSeedHits {
			bestSeedHits = r.hits
			bestSeedRanking = r.ranking
		}
	}

	hitRate := 0.0
	if shots > 0 {
		hitRate = float64(hits) / float64(shots)
	}
	fitness := computeFitness(hitRate, float64(decided)/float64(len(fe.seeds)))

	fe.mu.Lock()
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
		fe.bestRanking = bestSeedRanking
	}
	fe.lastHitRate = hitRate
	fe.mu.Unlock()

	return fitness
}

// runMatch plays one seeded match with the candidate config.
func (fe *FitnessEvaluator) runMatch(cfg *config.Config, seed int64) seedResult {
	m, err := game.NewMatch(cfg, game.Options{
		Seed:     seed,
		MaxTurns: fe.maxTurns,
	})
	if err != nil {
		return seedResult{err: err}
	}
	defer m.Close()

	res := m.Run()
	out := seedResult{finished: res.Finished, ranking: res.Ranking}
	for _, s := range res.Lifetimes {
		out.shots += s.Shots
		out.hits += s.Hits
	}
	return out
}

// copyConfig returns a copy of the base config that the evaluation may modify.
// Only scalar sections are changed, so sharing the weapon list and index is fine.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Telemetry.Enabled = true
	return &cfg
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(hitRate × (1.0 + 0.2 × decided))
// Accuracy dominates; decided matches add up to 20% to separate candidates
// with similar accuracy.
func computeFitness(hitRate, decided float64) float64 {
	return -(hitRate * (1.0 + 0.2*decided))
}
