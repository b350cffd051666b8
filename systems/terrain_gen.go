package systems

import (
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/worms/config"
)

// bedrockRows is the number of bottom rows never carved by caves.
const bedrockRows = 2

// GenerateGrid builds a passability grid from layered noise passes:
// rolling ground, floating islands, carved caves and an open sky band.
func GenerateGrid(cfg config.TerrainConfig, seed int64) [][]bool {
	cols, rows := cfg.PixelsX, cfg.PixelsY
	if cols <= 0 || rows <= 0 {
		return nil
	}

	noise := opensimplex.New(seed)

	grid := make([][]bool, rows)
	for y := range grid {
		grid[y] = make([]bool, cols)
		for x := range grid[y] {
			grid[y][x] = true
		}
	}

	surface := generateGround(grid, noise, cfg)
	generateIslands(grid, noise, cfg, surface)
	carveCaves(grid, noise, cfg, surface)
	clearSky(grid, cfg.SkyRows)

	return grid
}

// Generate builds a Terrain sized by cfg from a seeded noise field.
func Generate(cfg config.TerrainConfig, seed int64) (*Terrain, error) {
	return NewTerrain(cfg.Width, cfg.Height, GenerateGrid(cfg, seed))
}

// generateGround fills everything below a 1D noise surface and returns the
// surface row per column (rows counted from the top).
func generateGround(grid [][]bool, noise opensimplex.Noise, cfg config.TerrainConfig) []int {
	rows := len(grid)
	cols := len(grid[0])
	surface := make([]int, cols)

	for x := 0; x < cols; x++ {
		n := noise.Eval2(float64(x)*cfg.NoiseScale, 0)
		level := cfg.GroundLevel + cfg.SurfaceRoughness*n
		groundRows := int(level * float64(rows))
		if groundRows < bedrockRows {
			groundRows = bedrockRows
		}
		if groundRows > rows {
			groundRows = rows
		}

		top := rows - groundRows
		surface[x] = top
		for y := top; y < rows; y++ {
			grid[y][x] = false
		}
	}
	return surface
}

// generateIslands adds floating solid blobs in the open band above the ground.
func generateIslands(grid [][]bool, noise opensimplex.Noise, cfg config.TerrainConfig, surface []int) {
	rows := len(grid)
	cols := len(grid[0])
	// Keep a gap above the ground so islands do not merge into it
	gap := rows / 10

	for y := cfg.SkyRows; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if y >= surface[x]-gap {
				continue
			}
			n := noise.Eval2(float64(x)*cfg.NoiseScale*2+50, float64(y)*cfg.NoiseScale*2+50)
			if n > cfg.IslandThreshold {
				grid[y][x] = false
			}
		}
	}
}

// carveCaves opens pockets inside the ground, leaving bedrock intact.
func carveCaves(grid [][]bool, noise opensimplex.Noise, cfg config.TerrainConfig, surface []int) {
	rows := len(grid)
	cols := len(grid[0])

	for x := 0; x < cols; x++ {
		for y := surface[x] + 1; y < rows-bedrockRows; y++ {
			n := noise.Eval2(float64(x)*cfg.NoiseScale*3+300, float64(y)*cfg.NoiseScale*3+300)
			if n > cfg.CaveThreshold {
				grid[y][x] = true
			}
		}
	}
}

// clearSky keeps the top rows open.
func clearSky(grid [][]bool, skyRows int) {
	for y := 0; y < skyRows && y < len(grid); y++ {
		for x := range grid[y] {
			grid[y][x] = true
		}
	}
}
