// Terrain preview tool - interactive view of the procedural map generator.
//
// Usage: go run ./cmd/terrainpreview [-config path] [-seed n] [-png out.png] [-snapshot file.json]
//
// With -png the map is written to a file and no window is opened.
// With -snapshot the worms and food of a saved match board are drawn over the map.
// Scroll to zoom, drag with the right mouse button to pan.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/worms/camera"
	"github.com/pthm-cable/worms/config"
	"github.com/pthm-cable/worms/systems"
	"github.com/pthm-cable/worms/telemetry"
)

const (
	windowWidth  = 1100
	windowHeight = 640
	previewWidth = 720
	panelWidth   = windowWidth - previewWidth - 30
)

var (
	solidColor = color.RGBA{R: 96, G: 64, B: 32, A: 255}
	skyColor   = color.RGBA{R: 150, G: 200, B: 235, A: 255}

	teamColors = []rl.Color{rl.Red, rl.Blue, rl.DarkGreen, rl.Orange, rl.Purple, rl.Maroon}
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 1, "Noise seed")
	pngPath := flag.String("png", "", "Write the map to this PNG and exit")
	snapshotPath := flag.String("snapshot", "", "Board snapshot JSON to draw over the map")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if *pngPath != "" {
		if err := writePNG(*pngPath, cfg.Terrain, *seed); err != nil {
			slog.Error("failed to write terrain", "error", err)
			os.Exit(1)
		}
		slog.Info("terrain written", "path", *pngPath, "seed", *seed)
		return
	}

	var snap *telemetry.Snapshot
	if *snapshotPath != "" {
		snap, err = telemetry.LoadSnapshot(*snapshotPath)
		if err != nil {
			slog.Error("failed to load snapshot", "error", err)
			os.Exit(1)
		}
		// the board was played on the snapshot's seed
		*seed = snap.Seed
	}

	runWindow(cfg.Terrain, *seed, snap)
}

func writePNG(path string, tc config.TerrainConfig, seed int64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	return systems.EncodeTerrain(f, systems.GenerateGrid(tc, seed))
}

func runWindow(defaults config.TerrainConfig, seed int64, snap *telemetry.Snapshot) {
	rl.InitWindow(windowWidth, windowHeight, "Terrain Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaults
	img := rl.GenImageColor(params.PixelsX, params.PixelsY, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	var terrain *systems.Terrain
	needsRegen := true

	previewHeight := float32(previewWidth) * float32(params.Height/params.Width)
	cam := camera.New(10, 10, previewWidth, previewHeight, params.Width, params.Height)

	for !rl.WindowShouldClose() {
		if needsRegen {
			grid := systems.GenerateGrid(params, seed)
			t, err := systems.NewTerrain(params.Width, params.Height, grid)
			if err != nil {
				slog.Error("invalid terrain", "error", err)
			} else {
				terrain = t
				updateTexture(texture, grid)
			}
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		handleCamera(cam)
		drawBoard(cam, texture, params, snap)
		rl.DrawRectangleLines(10, 10, previewWidth, int32(previewHeight), rl.DarkGray)

		statsY := int32(previewHeight + 25)
		if terrain != nil {
			rl.DrawText(fmt.Sprintf("Solid: %.1f%%  Resolution: %.3f m", 100*terrain.SolidFraction(), terrain.MinResolution()), 15, statsY, 16, rl.DarkGray)
		}
		rl.DrawText(fmt.Sprintf("Seed: %d  Zoom: %.1fx", seed, cam.Zoom), 15, statsY+20, 16, rl.DarkGray)
		if snap != nil {
			rl.DrawText(fmt.Sprintf("Snapshot: turn %d, %d worms, %d food", snap.Turn, len(snap.Worms), len(snap.Food)), 15, statsY+40, 16, rl.DarkGray)
		}

		panelX := float32(previewWidth + 20)
		panelY := float32(10)
		rl.DrawText("Terrain Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		slider := func(label string, value *float64, lo, hi float64) {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				float32(*value), float32(lo), float32(hi),
			)
			rl.DrawText(fmt.Sprintf("%.3f", *value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if float64(v) != float64(float32(*value)) {
				*value = float64(v)
				needsRegen = true
			}
			panelY += 35
		}

		slider("Ground level (fraction of height)", &params.GroundLevel, 0.05, 0.9)
		slider("Surface roughness", &params.SurfaceRoughness, 0, 0.4)
		slider("Island threshold (higher = fewer)", &params.IslandThreshold, 0, 1)
		slider("Cave threshold (higher = fewer)", &params.CaveThreshold, 0, 1)
		slider("Noise scale", &params.NoiseScale, 0.005, 0.1)

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			cam.Reset()
			needsRegen = true
		}
		panelY += 55

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			text := ""
			for _, line := range yamlLines(params) {
				text += line + "\n"
			}
			rl.SetClipboardText(text)
		}

		rl.EndDrawing()
	}
}

// handleCamera zooms on the mouse wheel and pans on a right-button drag inside the preview.
func handleCamera(cam *camera.Camera) {
	mouse := rl.GetMousePosition()
	if !cam.Contains(mouse.X, mouse.Y) {
		return
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		cam.ZoomBy(1 + 0.1*float64(wheel))
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		cam.Pan(-d.X, -d.Y)
	}
}

// drawBoard draws the terrain and, if present, the snapshot's food and worms.
func drawBoard(cam *camera.Camera, texture rl.Texture2D, params config.TerrainConfig, snap *telemetry.Snapshot) {
	rl.BeginScissorMode(int32(cam.ViewportX), int32(cam.ViewportY), int32(cam.ViewportW), int32(cam.ViewportH))
	defer rl.EndScissorMode()

	left, top := cam.WorldToScreen(0, params.Height)
	right, bottom := cam.WorldToScreen(params.Width, 0)
	rl.DrawTexturePro(
		texture,
		rl.Rectangle{X: 0, Y: 0, Width: float32(params.PixelsX), Height: float32(params.PixelsY)},
		rl.Rectangle{X: left, Y: top, Width: right - left, Height: bottom - top},
		rl.Vector2{X: 0, Y: 0},
		0,
		rl.White,
	)

	if snap == nil {
		return
	}

	scale := float32(cam.Scale())
	for _, f := range snap.Food {
		x, y := cam.WorldToScreen(f.X, f.Y)
		rl.DrawCircle(int32(x), int32(y), max(2, 0.2*scale), rl.Gold)
	}

	teamIndex := make(map[string]int, len(snap.Teams))
	for i, name := range snap.Teams {
		teamIndex[name] = i
	}
	for _, w := range snap.Worms {
		if !cam.IsVisible(w.X, w.Y, w.Radius) {
			continue
		}
		c := rl.Pink
		if i, ok := teamIndex[w.Team]; ok {
			c = teamColors[i%len(teamColors)]
		}
		x, y := cam.WorldToScreen(w.X, w.Y)
		r := float32(w.Radius) * scale
		rl.DrawCircleLines(int32(x), int32(y), r, c)
		hx, hy := cam.WorldToScreen(w.X+w.Radius*math.Cos(w.Angle), w.Y+w.Radius*math.Sin(w.Angle))
		rl.DrawLine(int32(x), int32(y), int32(hx), int32(hy), c)
		rl.DrawText(fmt.Sprintf("%s %d", w.Name, w.HP), int32(x-r), int32(y-r-14), 12, c)
	}
}

func yamlLines(p config.TerrainConfig) []string {
	return []string{
		"terrain:",
		fmt.Sprintf("  ground_level: %.3f", p.GroundLevel),
		fmt.Sprintf("  surface_roughness: %.3f", p.SurfaceRoughness),
		fmt.Sprintf("  island_threshold: %.3f", p.IslandThreshold),
		fmt.Sprintf("  cave_threshold: %.3f", p.CaveThreshold),
		fmt.Sprintf("  noise_scale: %.3f", p.NoiseScale),
	}
}

// updateTexture uploads the passability grid, solid pixels brown and open sky blue.
func updateTexture(texture rl.Texture2D, grid [][]bool) {
	pixels := make([]color.RGBA, 0, len(grid)*len(grid[0]))
	for _, row := range grid {
		for _, passable := range row {
			if passable {
				pixels = append(pixels, skyColor)
			} else {
				pixels = append(pixels, solidColor)
			}
		}
	}
	rl.UpdateTexture(texture, pixels)
}
