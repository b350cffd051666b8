package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/worms/config"
	"github.com/pthm-cable/worms/systems"
	"github.com/pthm-cable/worms/telemetry"
)

// wormNames are handed out to autopilot worms in order.
var wormNames = []string{
	"Boggy", "Spadge", "Clagnut", "Wiggles", "Nobby", "Thrasher",
	"Squirmy", "Digger", "Loamy", "Crawley", "Fang", "Ripple",
}

// Options configures a headless match.
type Options struct {
	Seed         int64
	Terrain      *systems.Terrain // nil generates one from the seed
	Teams        int              // 0 = use config
	WormsPerTeam int              // 0 = use config
	Food         int              // 0 = use config
	MaxTurns     int              // 0 = use config
	OutputDir    string
	LogStats     bool
	Logger       *slog.Logger
}

// Result summarizes a finished match.
type Result struct {
	Winner   string
	Finished bool
	Turns    int
	Ranking  []telemetry.HallEntry // best worms first; empty without telemetry

	Lifetimes []telemetry.LifetimeStats // every worm of the match; empty without telemetry
}

// Match drives a World with the autopilot and collects telemetry.
type Match struct {
	world *World
	pilot *Autopilot
	seed  int64

	maxTurns       int
	actionsPerTurn int

	collector *telemetry.Collector
	lifetimes *telemetry.LifetimeTracker
	bookmarks *telemetry.BookmarkDetector
	output    *telemetry.OutputManager
	perf      *telemetry.PerfCollector
	logStats  bool
}

// NewMatch builds a world, creates the teams, places their worms and the food.
func NewMatch(cfg *config.Config, opts Options) (*Match, error) {
	if cfg == nil {
		cfg = config.Cfg()
	}
	opts = withDefaults(cfg, opts)

	terrain := opts.Terrain
	if terrain == nil {
		t, err := systems.Generate(cfg.Terrain, opts.Seed)
		if err != nil {
			return nil, fmt.Errorf("generating terrain: %w", err)
		}
		terrain = t
	}

	world, err := NewWorld(cfg, terrain, rand.New(rand.NewSource(opts.Seed)))
	if err != nil {
		return nil, err
	}
	if opts.Logger != nil {
		world.SetLogger(opts.Logger)
	}

	m := &Match{
		world:          world,
		pilot:          AutopilotFrom(cfg.Autopilot),
		seed:           opts.Seed,
		maxTurns:       opts.MaxTurns,
		actionsPerTurn: cfg.Match.ActionsPerTurn,
		perf:           telemetry.NewPerfCollector(50),
		logStats:       opts.LogStats,
	}

	if cfg.Telemetry.Enabled {
		m.lifetimes = telemetry.NewLifetimeTracker()
		m.collector = telemetry.NewCollector(m.lifetimes)
		m.bookmarks = telemetry.NewBookmarkDetector(10)
		world.SetRecorder(m.collector)

		m.output, err = telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, err
		}
		if err := m.output.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config", "error", err)
		}
	}

	if err := m.populate(cfg, opts); err != nil {
		m.Close()
		return nil, err
	}
	return m, nil
}

func withDefaults(cfg *config.Config, opts Options) Options {
	if opts.Teams <= 0 {
		opts.Teams = cfg.Match.Teams
	}
	if opts.WormsPerTeam <= 0 {
		opts.WormsPerTeam = cfg.Match.WormsPerTeam
	}
	if opts.Food <= 0 {
		opts.Food = cfg.Match.Food
	}
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = cfg.Match.MaxTurns
	}
	return opts
}

// populate creates the teams with their worms, then scatters food.
// Food that finds no room is skipped; a worm that finds no room fails the match.
func (m *Match) populate(cfg *config.Config, opts Options) error {
	n := 0
	for i := 0; i < opts.Teams; i++ {
		name := fmt.Sprintf("Team %d", i+1)
		if i < len(cfg.Match.TeamNames) {
			name = cfg.Match.TeamNames[i]
		}
		if _, err := m.world.AddEmptyTeam(name); err != nil {
			return fmt.Errorf("creating team %q: %w", name, err)
		}

		for j := 0; j < opts.WormsPerTeam; j++ {
			if _, err := m.world.AddNamedWorm(wormNames[n%len(wormNames)], nil); err != nil {
				return fmt.Errorf("placing worm %d of %q: %w", j+1, name, err)
			}
			n++
		}
	}

	for i := 0; i < opts.Food; i++ {
		if _, err := m.world.AddFood(); err != nil {
			if !errors.Is(err, ErrPlacementFailed) {
				return err
			}
			slog.Warn("food_skipped", "placed", i, "wanted", opts.Food)
			break
		}
	}
	return nil
}

// World returns the world the match runs on.
func (m *Match) World() *World { return m.world }

// Run plays turns until the match is decided or the turn limit is reached.
func (m *Match) Run() Result {
	slog.Info("match_started",
		"seed", m.seed,
		"worms", m.world.WormCount(),
		"teams", m.world.TeamCount(),
		"food", m.world.FoodCount(),
		"max_turns", m.maxTurns,
	)

	for m.world.Turn() < m.maxTurns && m.world.WormCount() > 0 && !m.world.IsFinished() {
		m.playTurn()
	}

	winner, finished := m.world.Winner()
	res := Result{Winner: winner, Finished: finished, Turns: m.world.Turn()}

	if m.lifetimes != nil {
		all := m.lifetimes.All()
		if err := m.output.WriteLifetimes(all); err != nil {
			slog.Error("failed to write lifetimes", "error", err)
		}
		res.Ranking = m.rank(all)
		res.Lifetimes = all
	}
	slog.Info("match_over",
		"winner", res.Winner,
		"finished", res.Finished,
		"turns", res.Turns,
		"perf", m.perf.Stats(),
	)
	return res
}

// rank builds the hall of fame for the match and saves it next to the CSV logs.
func (m *Match) rank(all []telemetry.LifetimeStats) []telemetry.HallEntry {
	hof := telemetry.NewHallOfFame(m.world.cfg.HallOfFame)
	for _, s := range all {
		hof.Consider(s, m.world.Turn())
	}
	if m.output != nil {
		if _, err := hof.Save(m.output.Dir()); err != nil {
			slog.Error("failed to save hall of fame", "error", err)
		}
	}
	if hof.Size() > 0 {
		top := hof.Entries()[0]
		slog.Info("hall_of_fame", "entries", hof.Size(), "top", top.Name, "fitness", top.Fitness)
	}
	return hof.Entries()
}

// playTurn hands the turn to the next worm and lets the autopilot act for it.
func (m *Match) playTurn() {
	m.perf.StartTurn()

	m.perf.StartPhase(telemetry.PhaseTurnAdvance)
	worm, ok := m.world.StartNextTurn()
	if !ok {
		m.perf.EndTurn()
		return
	}
	name := worm.Name()

	m.perf.StartPhase(telemetry.PhaseActions)
	for i := 0; i < m.actionsPerTurn; i++ {
		act, err := m.pilot.Step(m.world)
		if err != nil {
			slog.Debug("action_failed", "worm", name, "action", act.String(), "error", err)
			break
		}
		// a worm out of AP would hand the turn over on the next step
		if act == ActionEndTurn || worm.AP() == 0 || m.world.IsFinished() {
			break
		}
	}

	m.perf.StartPhase(telemetry.PhaseTelemetry)
	m.flushTelemetry(name)

	m.perf.EndTurn()
}

// Close flushes and closes the telemetry files.
func (m *Match) Close() error {
	return m.output.Close()
}
