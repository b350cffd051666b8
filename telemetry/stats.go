package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TurnStats holds aggregated statistics for one turn of a match.
type TurnStats struct {
	Turn int    `csv:"turn"`
	Worm string `csv:"worm"` // worm whose turn it was

	// Population counts at turn end
	Worms int `csv:"worms"`
	Food  int `csv:"food"`
	Teams int `csv:"teams"`

	// Actions during the turn
	Rotations int     `csv:"rotations"`
	Moves     int     `csv:"moves"`
	Jumps     int     `csv:"jumps"`
	Falls     int     `csv:"falls"`
	Shots     int     `csv:"shots"`
	Hits      int     `csv:"hits"`
	HitRate   float64 `csv:"hit_rate"`
	FoodEaten int     `csv:"food_eaten"`
	Distance  float64 `csv:"distance"`

	// Outcomes
	Damage     int `csv:"damage"`      // HP removed by projectiles
	FallDamage int `csv:"fall_damage"` // HP removed by falls and jump landings
	Deaths     int `csv:"deaths"`
	Eliminated int `csv:"eliminated"` // teams eliminated

	// HP distribution (sampled at turn end)
	HPMean float64 `csv:"hp_mean"`
	HPStd  float64 `csv:"hp_std"`
	HPMin  float64 `csv:"hp_min"`
	HPP50  float64 `csv:"hp_p50"`
	HPMax  float64 `csv:"hp_max"`

	RadiusMean float64 `csv:"radius_mean"`
}

// Distribution summarizes a sample of values.
type Distribution struct {
	Mean float64
	Std  float64
	Min  float64
	P50  float64
	Max  float64
}

// Summarize computes mean, sample standard deviation, extremes and median.
// An empty sample yields the zero Distribution; a single value has zero spread.
func Summarize(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	d := Distribution{
		Min: floats.Min(sorted),
		Max: floats.Max(sorted),
		P50: stat.Quantile(0.5, stat.Empirical, sorted, nil),
	}
	if len(sorted) == 1 {
		d.Mean = sorted[0]
		return d
	}
	d.Mean, d.Std = stat.MeanStdDev(sorted, nil)
	return d
}

// LogValue implements slog.LogValuer for structured logging.
func (s TurnStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("turn", s.Turn),
		slog.String("worm", s.Worm),
		slog.Int("worms", s.Worms),
		slog.Int("food", s.Food),
		slog.Int("teams", s.Teams),
		slog.Int("shots", s.Shots),
		slog.Int("hits", s.Hits),
		slog.Int("damage", s.Damage),
		slog.Int("fall_damage", s.FallDamage),
		slog.Int("deaths", s.Deaths),
		slog.Float64("hp_mean", s.HPMean),
		slog.Float64("hp_p50", s.HPP50),
	)
}

// LogStats logs the turn stats using slog.
func (s TurnStats) LogStats() {
	slog.Info("turn_stats",
		"turn", s.Turn,
		"worm", s.Worm,
		"worms", s.Worms,
		"teams", s.Teams,
		"moves", s.Moves,
		"shots", s.Shots,
		"hits", s.Hits,
		"damage", s.Damage,
		"deaths", s.Deaths,
		"hp_mean", s.HPMean,
	)
}
