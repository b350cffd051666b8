// Package config provides configuration loading and access for the rules engine.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/worms/components"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Worm       WormConfig       `yaml:"worm"`
	Food       FoodConfig       `yaml:"food"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Weapons    []WeaponConfig   `yaml:"weapons"`
	Terrain    TerrainConfig    `yaml:"terrain"`
	Match      MatchConfig      `yaml:"match"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	HallOfFame HallOfFameConfig `yaml:"hall_of_fame"`
	Autopilot  AutopilotConfig  `yaml:"autopilot"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds world-level rules.
type WorldConfig struct {
	MaxTeams             int `yaml:"max_teams"`              // Team cap per world
	MaxPlacementAttempts int `yaml:"max_placement_attempts"` // Random spawn retries before giving up
	TurnHPBonus          int `yaml:"turn_hp_bonus"`          // HP granted at the start of a worm's turn
}

// PhysicsConfig holds integration parameters.
type PhysicsConfig struct {
	Gravity            float64 `yaml:"gravity"`              // m/s^2
	JumpTimeStep       float64 `yaml:"jump_time_step"`       // Default Δt for worm jumps (driver use)
	ProjectileTimeStep float64 `yaml:"projectile_time_step"` // Δt used to resolve projectile flights
}

// WormConfig holds worm body and action parameters.
type WormConfig struct {
	Density            float64 `yaml:"density"`               // kg/m^3
	MinRadius          float64 `yaml:"min_radius"`            // meters
	MaxSpawnRadius     float64 `yaml:"max_spawn_radius"`      // Upper bound of random spawn radius
	TurnCostFullCircle float64 `yaml:"turn_cost_full_circle"` // AP for a 2π turn
	JumpAPForce        float64 `yaml:"jump_ap_force"`         // Newtons of jump force per AP
	FallStepFraction   float64 `yaml:"fall_step_fraction"`    // Fall increment as a fraction of radius
	FallDamagePerMeter float64 `yaml:"fall_damage_per_meter"` // HP lost per meter dropped
	FoodGrowth         float64 `yaml:"food_growth"`           // Radius multiplier per food eaten
	MoveFan            float64 `yaml:"move_fan"`              // Half-width of the move search fan (rad)
	MoveFanStep        float64 `yaml:"move_fan_step"`         // Angular step within the fan (rad)
	MoveMinRadius      float64 `yaml:"move_min_radius"`       // Smallest move distance tried
	DefaultName        string  `yaml:"default_name"`          // Name given to randomly spawned worms
}

// FoodConfig holds food parameters.
type FoodConfig struct {
	Radius float64 `yaml:"radius"`
}

// ProjectileConfig holds projectile body parameters.
type ProjectileConfig struct {
	Density float64 `yaml:"density"` // kg/m^3
}

// WeaponConfig defines one weapon. Name must match a components.Weapon name.
type WeaponConfig struct {
	Name          string  `yaml:"name"`
	MassGrams     float64 `yaml:"mass_g"`          // Projectile mass in grams
	Force         float64 `yaml:"force"`           // Base launch force (N)
	ForcePerYield float64 `yaml:"force_per_yield"` // Extra force per propulsion yield point
	APCost        int     `yaml:"ap_cost"`         // AP required and spent per shot
	Damage        int     `yaml:"damage"`          // HP removed from the worm hit
}

// TerrainConfig holds procedural terrain parameters.
type TerrainConfig struct {
	Width            float64 `yaml:"width"`             // meters
	Height           float64 `yaml:"height"`            // meters
	PixelsX          int     `yaml:"pixels_x"`          // bitmap columns
	PixelsY          int     `yaml:"pixels_y"`          // bitmap rows
	GroundLevel      float64 `yaml:"ground_level"`      // Mean ground surface as a fraction of height
	SurfaceRoughness float64 `yaml:"surface_roughness"` // Surface amplitude as a fraction of height
	IslandThreshold  float64 `yaml:"island_threshold"`  // Noise level above which islands are solid
	CaveThreshold    float64 `yaml:"cave_threshold"`    // Noise level above which ground is carved
	NoiseScale       float64 `yaml:"noise_scale"`       // Noise frequency per pixel
	SkyRows          int     `yaml:"sky_rows"`          // Top rows kept open
}

// MatchConfig holds defaults for the headless match driver.
type MatchConfig struct {
	Teams          int      `yaml:"teams"`
	WormsPerTeam   int      `yaml:"worms_per_team"`
	Food           int      `yaml:"food"`
	MaxTurns       int      `yaml:"max_turns"`
	ActionsPerTurn int      `yaml:"actions_per_turn"`
	TeamNames      []string `yaml:"team_names"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled"`
}

// AutopilotConfig holds the match driver's aiming plan.
type AutopilotConfig struct {
	AimTolerance float64 `yaml:"aim_tolerance"` // Facing error tolerated before turning (rad)
	Loft         float64 `yaml:"loft"`          // Added to the line of sight (rad)
	YieldGain    float64 `yaml:"yield_gain"`    // Multiplier on the distance-based propulsion yield
	Jumpy        bool    `yaml:"jumpy"`         // Jump when walking is impossible
}

// HallOfFameConfig holds the end-of-match worm ranking parameters.
type HallOfFameConfig struct {
	Size           int     `yaml:"size"`            // Entries kept
	MinTurns       int     `yaml:"min_turns"`       // Turns survived to qualify without a hit
	DamageWeight   float64 `yaml:"damage_weight"`   // Fitness per HP of damage dealt
	SurvivalWeight float64 `yaml:"survival_weight"` // Fitness per turn survived
	FoodWeight     float64 `yaml:"food_weight"`     // Fitness per food eaten
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WormMassFactor       float64                 // density * 4/3 * π, mass = factor * r^3
	ProjectileMassFactor float64                 // density * 4/3 * π for projectiles
	Arsenal              []WeaponConfig          // indexed by components.Weapon
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the engine cannot run with.
func (c *Config) validate() error {
	switch {
	case c.World.MaxTeams <= 0:
		return fmt.Errorf("world.max_teams must be positive, got %d", c.World.MaxTeams)
	case c.World.MaxPlacementAttempts <= 0:
		return fmt.Errorf("world.max_placement_attempts must be positive, got %d", c.World.MaxPlacementAttempts)
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("physics.gravity must be positive, got %v", c.Physics.Gravity)
	case c.Physics.ProjectileTimeStep <= 0 || c.Physics.JumpTimeStep <= 0:
		return fmt.Errorf("physics time steps must be positive")
	case c.Worm.Density <= 0 || c.Projectile.Density <= 0:
		return fmt.Errorf("densities must be positive")
	case c.Worm.MinRadius <= 0 || c.Worm.MaxSpawnRadius < c.Worm.MinRadius:
		return fmt.Errorf("worm radius bounds are invalid: min %v, max spawn %v", c.Worm.MinRadius, c.Worm.MaxSpawnRadius)
	case c.Worm.FallStepFraction <= 0:
		return fmt.Errorf("worm.fall_step_fraction must be positive")
	case c.Worm.MoveFanStep <= 0:
		return fmt.Errorf("worm.move_fan_step must be positive")
	case c.Autopilot.AimTolerance <= 0:
		return fmt.Errorf("autopilot.aim_tolerance must be positive, got %v", c.Autopilot.AimTolerance)
	case c.HallOfFame.Size < 0:
		return fmt.Errorf("hall_of_fame.size must not be negative, got %d", c.HallOfFame.Size)
	case len(c.Weapons) == 0:
		return fmt.Errorf("at least one weapon is required")
	case !components.ValidWormName(c.Worm.DefaultName):
		return fmt.Errorf("worm.default_name %q is not a valid worm name", c.Worm.DefaultName)
	}

	seen := make([]bool, components.WeaponCount())
	for _, w := range c.Weapons {
		kind, ok := components.ParseWeapon(w.Name)
		switch {
		case !ok:
			return fmt.Errorf("unknown weapon %q (want one of %v)", w.Name, components.WeaponNames())
		case seen[kind]:
			return fmt.Errorf("weapon %q listed twice", w.Name)
		case w.MassGrams <= 0:
			return fmt.Errorf("weapon %q: mass_g must be positive", w.Name)
		case w.APCost < 0 || w.Damage < 0:
			return fmt.Errorf("weapon %q: ap_cost and damage must not be negative", w.Name)
		}
		seen[kind] = true
	}
	for i, ok := range seen {
		if !ok {
			return fmt.Errorf("weapon %q is missing", components.Weapon(i))
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.WormMassFactor = c.Worm.Density * 4.0 / 3.0 * math.Pi
	c.Derived.ProjectileMassFactor = c.Projectile.Density * 4.0 / 3.0 * math.Pi

	c.Derived.Arsenal = make([]WeaponConfig, components.WeaponCount())
	for _, w := range c.Weapons {
		if kind, ok := components.ParseWeapon(w.Name); ok {
			c.Derived.Arsenal[kind] = w
		}
	}

	// Team names default to a numbered list
	for len(c.Match.TeamNames) < c.Match.Teams {
		c.Match.TeamNames = append(c.Match.TeamNames, fmt.Sprintf("Team %d", len(c.Match.TeamNames)+1))
	}
}

// Weapon returns the weapon config for name.
func (c *Config) Weapon(name string) (WeaponConfig, bool) {
	kind, ok := components.ParseWeapon(name)
	if !ok {
		return WeaponConfig{}, false
	}
	return c.WeaponOf(kind)
}

// WeaponOf returns the config of weapon kind. ok is false when the config was
// never loaded or does not cover kind.
func (c *Config) WeaponOf(kind components.Weapon) (WeaponConfig, bool) {
	if int(kind) >= len(c.Derived.Arsenal) {
		return WeaponConfig{}, false
	}
	w := c.Derived.Arsenal[kind]
	return w, w.Name != ""
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
