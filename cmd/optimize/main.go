package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/worms/config"
)

// evalRecord is one row of optimize_log.csv.
type evalRecord struct {
	Eval         int     `csv:"eval"`
	Fitness      float64 `csv:"fitness"`
	HitRate      float64 `csv:"hit_rate"`
	Loft         float64 `csv:"loft"`
	AimTolerance float64 `csv:"aim_tolerance"`
	YieldGain    float64 `csv:"yield_gain"`
}

// tuner wraps the evaluator with logging and best-so-far tracking.
type tuner struct {
	params    *ParamVector
	evaluator *FitnessEvaluator
	records   []evalRecord
	best      []float64
	bestFit   float64
	started   time.Time
}

// objective scores a normalized point and records the parameters that were played.
func (t *tuner) objective(x []float64) float64 {
	played := t.params.Clamp(t.params.Denormalize(x))
	fitness := t.evaluator.Evaluate(played)

	if t.best == nil || fitness < t.bestFit {
		t.best, t.bestFit = played, fitness
	}
	rec := evalRecord{
		Eval:         len(t.records) + 1,
		Fitness:      fitness,
		HitRate:      t.evaluator.LastHitRate(),
		Loft:         played[0],
		AimTolerance: played[1],
		YieldGain:    played[2],
	}
	t.records = append(t.records, rec)

	slog.Warn("eval",
		"n", rec.Eval,
		"hit_rate", rec.HitRate,
		"best_fitness", t.bestFit,
		"elapsed", time.Since(t.started).Round(time.Second),
	)
	return fitness
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTurns := flag.Int("max-turns", 60, "Turn limit per match")
	seeds := flag.Int("seeds", 4, "Matches per evaluation")
	maxEvals := flag.Int("max-evals", 100, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	// Matches log every turn; only the tuner's own progress is shown
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := run(*configPath, *outputDir, *maxTurns, *seeds, *maxEvals, *population); err != nil {
		slog.Error("optimize failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, outputDir string, maxTurns, seeds, maxEvals, population int) error {
	if outputDir == "" {
		return fmt.Errorf("-output is required")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	base, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	evalSeeds := make([]int64, seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	params := NewParamVector()
	t := &tuner{
		params:    params,
		evaluator: NewFitnessEvaluator(params, maxTurns, evalSeeds, base),
		started:   time.Now(),
	}

	if population == 0 {
		population = 4 + 3*params.Dim()/2
	}
	result, err := optimize.Minimize(
		optimize.Problem{Func: t.objective},
		params.Normalize(params.ExtractFromConfig(base)),
		&optimize.Settings{FuncEvaluations: maxEvals},
		&optimize.CmaEsChol{InitStepSize: 0.3, Population: population},
	)
	if err != nil {
		slog.Warn("optimization ended", "error", err)
	}
	if t.best == nil && result != nil {
		t.best = params.Clamp(params.Denormalize(result.X))
	}

	return t.save(outputDir, base)
}

// save writes the evaluation log, the best config and the best match ranking.
func (t *tuner) save(dir string, base *config.Config) error {
	f, err := os.Create(filepath.Join(dir, "optimize_log.csv"))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := gocsv.Marshal(t.records, f); err != nil {
		return fmt.Errorf("writing optimize log: %w", err)
	}

	if t.best == nil {
		return nil
	}
	best := *base
	t.params.ApplyToConfig(&best, t.best)
	if err := best.WriteYAML(filepath.Join(dir, "best_config.yaml")); err != nil {
		return err
	}

	if ranking := t.evaluator.BestRanking(); len(ranking) > 0 {
		data, err := json.MarshalIndent(ranking, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, "hall_of_fame.json"), data, 0644); err != nil {
			return err
		}
	}

	slog.Warn("optimize_done",
		"evals", len(t.records),
		"best_fitness", t.bestFit,
		"loft", best.Autopilot.Loft,
		"aim_tolerance", best.Autopilot.AimTolerance,
		"yield_gain", best.Autopilot.YieldGain,
		"elapsed", time.Since(t.started).Round(time.Second),
	)
	return nil
}
