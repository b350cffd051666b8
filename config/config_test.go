package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/worms/components"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// ---------- defaults ----------

func TestDefault_Values(t *testing.T) {
	cfg := Default()

	if cfg.World.MaxTeams != 10 {
		t.Errorf("expected 10 teams max, got %d", cfg.World.MaxTeams)
	}
	if cfg.Physics.Gravity != 9.80665 {
		t.Errorf("expected standard gravity, got %v", cfg.Physics.Gravity)
	}
	want := 1062 * 4.0 / 3.0 * math.Pi
	if math.Abs(cfg.Derived.WormMassFactor-want) > 1e-9 {
		t.Errorf("expected worm mass factor %v, got %v", want, cfg.Derived.WormMassFactor)
	}
	if len(cfg.Match.TeamNames) < cfg.Match.Teams {
		t.Errorf("expected at least %d team names, got %v", cfg.Match.Teams, cfg.Match.TeamNames)
	}
}

func TestDefault_Weapons(t *testing.T) {
	cfg := Default()

	tests := []struct {
		name   string
		mass   float64
		apCost int
		damage int
	}{
		{"Bazooka", 300, 50, 80},
		{"Rifle", 10, 10, 20},
	}
	for _, tt := range tests {
		w, ok := cfg.Weapon(tt.name)
		if !ok {
			t.Fatalf("expected weapon %s", tt.name)
		}
		if w.MassGrams != tt.mass || w.APCost != tt.apCost || w.Damage != tt.damage {
			t.Errorf("%s: expected %v g, %d AP, %d damage; got %v g, %d AP, %d damage",
				tt.name, tt.mass, tt.apCost, tt.damage, w.MassGrams, w.APCost, w.Damage)
		}
	}

	if _, ok := cfg.Weapon("Grenade"); ok {
		t.Error("expected no Grenade")
	}
}

func TestWeaponOf_IndexedByKind(t *testing.T) {
	cfg := Default()
	for _, kind := range []components.Weapon{components.Bazooka, components.Rifle} {
		w, ok := cfg.WeaponOf(kind)
		if !ok || w.Name != kind.String() {
			t.Errorf("expected %s config, got %q (ok=%v)", kind, w.Name, ok)
		}
	}
	if _, ok := cfg.WeaponOf(components.Weapon(components.WeaponCount())); ok {
		t.Error("expected no config past the last weapon")
	}
}

func TestDefault_IsFreshCopy(t *testing.T) {
	a := Default()
	a.World.MaxTeams = 1
	if Default().World.MaxTeams == 1 {
		t.Error("expected Default to return an independent copy")
	}
}

// ---------- loading ----------

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := writeConfig(t, "world:\n  max_teams: 4\nmatch:\n  teams: 3\n  team_names: [\"Reds\"]\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.World.MaxTeams != 4 {
		t.Errorf("expected max_teams 4, got %d", cfg.World.MaxTeams)
	}
	if cfg.World.TurnHPBonus != 10 {
		t.Errorf("expected untouched turn_hp_bonus 10, got %d", cfg.World.TurnHPBonus)
	}
	want := []string{"Reds", "Team 2", "Team 3"}
	if strings.Join(cfg.Match.TeamNames, ",") != strings.Join(want, ",") {
		t.Errorf("expected team names %v, got %v", want, cfg.Match.TeamNames)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"zero teams", "world:\n  max_teams: 0\n", "max_teams"},
		{"negative gravity", "physics:\n  gravity: -1\n", "gravity"},
		{"radius bounds", "worm:\n  min_radius: 2\n", "radius"},
		{"no weapons", "weapons: []\n", "weapon"},
		{"massless weapon", "weapons:\n  - name: Rifle\n    mass_g: 0\n", "mass_g"},
		{"missing rifle", "weapons:\n  - name: Bazooka\n    mass_g: 300\n    ap_cost: 50\n    damage: 80\n", `"Rifle" is missing`},
		{"unknown weapon", "weapons:\n  - name: Grenade\n    mass_g: 100\n", "unknown weapon"},
		{"duplicate weapon", "weapons:\n  - name: Rifle\n    mass_g: 10\n  - name: Rifle\n    mass_g: 10\n", "twice"},
		{"negative cost", "weapons:\n  - name: Rifle\n    mass_g: 10\n    ap_cost: -1\n", "ap_cost"},
		{"bad default name", "worm:\n  default_name: \"x1\"\n", "default_name"},
		{"bad yaml", "world: [\n", "parsing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Worm.FoodGrowth = 1.25

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.Worm.FoodGrowth != 1.25 {
		t.Errorf("expected food_growth 1.25, got %v", back.Worm.FoodGrowth)
	}
	if len(back.Weapons) != len(cfg.Weapons) {
		t.Errorf("expected %d weapons, got %d", len(cfg.Weapons), len(back.Weapons))
	}
}

func TestCfg_AfterInit(t *testing.T) {
	if err := Init(""); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if Cfg().Worm.DefaultName == "" {
		t.Error("expected a default worm name")
	}
}
