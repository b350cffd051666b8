package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/worms/config"
	"github.com/pthm-cable/worms/game"
	"github.com/pthm-cable/worms/systems"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	terrainPath := flag.String("terrain", "", "Map image (transparent = passable); empty = generate from the seed")
	teams := flag.Int("teams", 0, "Number of teams (0 = use config)")
	wormsPerTeam := flag.Int("worms-per-team", 0, "Worms per team (0 = use config)")
	food := flag.Int("food", 0, "Food items to scatter (0 = use config)")
	maxTurns := flag.Int("max-turns", 0, "Stop after N turns (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output per-turn stats via slog")
	verbose := flag.Bool("v", false, "Log debug events")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	var terrain *systems.Terrain
	if *terrainPath != "" {
		t, err := loadTerrain(*terrainPath, cfg)
		if err != nil {
			slog.Error("failed to load terrain", "path", *terrainPath, "error", err)
			os.Exit(1)
		}
		terrain = t
	}

	m, err := game.NewMatch(cfg, game.Options{
		Seed:         rngSeed,
		Terrain:      terrain,
		Teams:        *teams,
		WormsPerTeam: *wormsPerTeam,
		Food:         *food,
		MaxTurns:     *maxTurns,
		OutputDir:    *outputDir,
		LogStats:     *logStats,
		Logger:       logger,
	})
	if err != nil {
		slog.Error("failed to set up match", "error", err)
		os.Exit(1)
	}
	defer m.Close()

	res := m.Run()
	if !res.Finished {
		slog.Info("max turns reached", "turns", res.Turns)
	}
}

// loadTerrain decodes a map image and scales it to the configured world size.
func loadTerrain(path string, cfg *config.Config) (*systems.Terrain, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	grid, err := systems.DecodeTerrain(f)
	if err != nil {
		return nil, err
	}
	return systems.NewTerrain(cfg.Terrain.Width, cfg.Terrain.Height, grid)
}
