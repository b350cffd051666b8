package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/worms/config"
)

func TestParamVector_NormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()

	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-12 {
			t.Errorf("%s: expected %v, got %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestParamVector_DefaultsMatchConfig(t *testing.T) {
	pv := NewParamVector()
	got := pv.ExtractFromConfig(config.Default())
	for i, spec := range pv.Specs {
		if got[i] != spec.Default {
			t.Errorf("%s: config has %v, spec default %v", spec.Path, got[i], spec.Default)
		}
	}
}

func TestParamVector_ApplyClamps(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	pv.ApplyToConfig(cfg, []float64{-1, 10, 1.5})
	if cfg.Autopilot.Loft != 0 || cfg.Autopilot.AimTolerance != 0.3 || cfg.Autopilot.YieldGain != 1.5 {
		t.Errorf("expected clamped (0, 0.3, 1.5), got %+v", cfg.Autopilot)
	}
}

func TestComputeFitness(t *testing.T) {
	if computeFitness(0.5, 1) >= computeFitness(0.5, 0) {
		t.Error("expected decided matches to improve fitness")
	}
	if computeFitness(0.7, 0) >= computeFitness(0.5, 1) {
		t.Error("expected accuracy to dominate")
	}
}
