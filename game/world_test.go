package game

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/worms/config"
	"github.com/pthm-cable/worms/systems"
)

// floorTerrain is a 10x10 m map, 100x100 pixels, solid in the bottom ten rows
// (roughly y < 0.95 m) and open everywhere else.
func floorTerrain(t *testing.T) *systems.Terrain {
	t.Helper()
	const size = 100
	grid := make([][]bool, size)
	for y := range grid {
		grid[y] = make([]bool, size)
		for x := range grid[y] {
			grid[y][x] = y < size-10
		}
	}
	terrain, err := systems.NewTerrain(10, 10, grid)
	if err != nil {
		t.Fatalf("NewTerrain: %v", err)
	}
	return terrain
}

func newFloorWorld(t *testing.T) *World {
	t.Helper()
	w, err := NewWorld(config.Default(), floorTerrain(t), rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func mustPlaceWorm(t *testing.T, w *World, x, y float64, name string) Worm {
	t.Helper()
	worm, err := w.PlaceWorm(x, y, 0.5, 0, name, nil)
	if err != nil {
		t.Fatalf("PlaceWorm(%s): %v", name, err)
	}
	return worm
}

func mustTeam(t *testing.T, w *World, name string) Team {
	t.Helper()
	team, err := w.AddEmptyTeam(name)
	if err != nil {
		t.Fatalf("AddEmptyTeam(%s): %v", name, err)
	}
	return team
}

// ---------- construction ----------

func TestNewWorld_RequiresTerrain(t *testing.T) {
	_, err := NewWorld(config.Default(), nil, nil)
	if !errors.Is(err, ErrNoTerrain) {
		t.Errorf("expected ErrNoTerrain, got %v", err)
	}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected error to classify as ErrInvalidArgument, got %v", err)
	}
}

func TestNewWorld_Empty(t *testing.T) {
	w := newFloorWorld(t)
	if w.WormCount() != 0 || w.FoodCount() != 0 || w.TeamCount() != 0 || w.ProjectileCount() != 0 {
		t.Errorf("expected empty world, got %d worms %d food %d teams %d projectiles",
			w.WormCount(), w.FoodCount(), w.TeamCount(), w.ProjectileCount())
	}
	if _, ok := w.CurrentWorm(); ok {
		t.Error("expected no current worm in an empty world")
	}
	if w.Width() != 10 || w.Height() != 10 {
		t.Errorf("expected 10x10 world, got %vx%v", w.Width(), w.Height())
	}
}

// ---------- finish detection ----------

func TestIsFinished(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T, w *World)
		want   bool
		winner string
	}{
		{
			name:  "empty world",
			setup: func(t *testing.T, w *World) {},
		},
		{
			name: "single worm without teams",
			setup: func(t *testing.T, w *World) {
				mustPlaceWorm(t, w, 2, 5, "Boggy")
			},
			want:   true,
			winner: "Boggy",
		},
		{
			name: "two worms without teams",
			setup: func(t *testing.T, w *World) {
				mustPlaceWorm(t, w, 2, 5, "Boggy")
				mustPlaceWorm(t, w, 6, 5, "Spadge")
			},
		},
		{
			name: "fresh team without worms",
			setup: func(t *testing.T, w *World) {
				mustTeam(t, w, "Red")
			},
		},
		{
			name: "one team holds every worm",
			setup: func(t *testing.T, w *World) {
				mustTeam(t, w, "Red")
				mustPlaceWorm(t, w, 2, 5, "Boggy")
				mustPlaceWorm(t, w, 6, 5, "Spadge")
			},
			want:   true,
			winner: "Red",
		},
		{
			name: "two teams",
			setup: func(t *testing.T, w *World) {
				mustTeam(t, w, "Red")
				mustPlaceWorm(t, w, 2, 5, "Boggy")
				mustTeam(t, w, "Blue")
				mustPlaceWorm(t, w, 6, 5, "Spadge")
			},
		},
		{
			name: "two teams of two",
			setup: func(t *testing.T, w *World) {
				mustTeam(t, w, "Red")
				mustPlaceWorm(t, w, 1.5, 5, "Boggy")
				mustPlaceWorm(t, w, 3.5, 5, "Nobby")
				mustTeam(t, w, "Blue")
				mustPlaceWorm(t, w, 5.5, 5, "Spadge")
				mustPlaceWorm(t, w, 7.5, 5, "Clagnut")
			},
		},
		{
			name: "one team holds all three worms",
			setup: func(t *testing.T, w *World) {
				mustTeam(t, w, "Red")
				mustPlaceWorm(t, w, 1.5, 5, "Boggy")
				mustPlaceWorm(t, w, 3.5, 5, "Nobby")
				mustPlaceWorm(t, w, 5.5, 5, "Spadge")
			},
			want:   true,
			winner: "Red",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newFloorWorld(t)
			tt.setup(t, w)
			if got := w.IsFinished(); got != tt.want {
				t.Errorf("IsFinished() = %v, want %v", got, tt.want)
			}
			winner, _ := w.Winner()
			if winner != tt.winner {
				t.Errorf("Winner() = %q, want %q", winner, tt.winner)
			}
		})
	}
}

func TestLastMemberDeath_RemovesTeamAndDecidesMatch(t *testing.T) {
	w := newFloorWorld(t)
	mustTeam(t, w, "Red")
	mustPlaceWorm(t, w, 2, 5, "Boggy")
	mustPlaceWorm(t, w, 3, 5, "Nobby")
	blue := mustTeam(t, w, "Blue")
	victim := mustPlaceWorm(t, w, 7, 5, "Spadge")

	if err := victim.SetHP(0); err != nil {
		t.Fatalf("SetHP: %v", err)
	}

	if victim.IsAlive() {
		t.Error("expected worm to be dead")
	}
	if w.TeamCount() != 1 {
		t.Errorf("expected 1 team left, got %d", w.TeamCount())
	}
	if blue.IsActive() {
		t.Error("expected emptied team to be gone")
	}
	if _, ok := w.CurrentTeam(); ok {
		t.Error("expected current team to be cleared with the destroyed team")
	}
	winner, ok := w.Winner()
	if !ok || winner != "Red" {
		t.Errorf("expected Red to win, got %q (%v)", winner, ok)
	}
}

// ---------- turn order ----------

func TestNextWorm_Wraps(t *testing.T) {
	w := newFloorWorld(t)
	a := mustPlaceWorm(t, w, 2, 5, "Boggy")
	b := mustPlaceWorm(t, w, 6, 5, "Spadge")

	order := []Worm{b, a, b}
	for i, want := range order {
		w.NextWorm()
		got, _ := w.CurrentWorm()
		if got != want {
			t.Errorf("step %d: expected %v, got %v", i, want, got)
		}
	}
}

func TestCurrentWorm_HandsOverWhenOutOfAP(t *testing.T) {
	w := newFloorWorld(t)
	a := mustPlaceWorm(t, w, 2, 5, "Boggy")
	b := mustPlaceWorm(t, w, 6, 5, "Spadge")

	if err := a.SetHP(100); err != nil {
		t.Fatal(err)
	}
	if err := a.SetAP(0); err != nil {
		t.Fatal(err)
	}

	got, ok := w.CurrentWorm()
	if !ok || got != b {
		t.Fatalf("expected turn to pass to %v, got %v", b, got)
	}
	if a.AP() != a.MaxAP() {
		t.Errorf("expected AP refilled to %d, got %d", a.MaxAP(), a.AP())
	}
	if a.HP() != 100+w.Config().World.TurnHPBonus {
		t.Errorf("expected HP bonus applied, got %d", a.HP())
	}
	if w.Turn() != 1 {
		t.Errorf("expected turn 1, got %d", w.Turn())
	}
}

func TestCurrentWorm_SingleWormKeepsTurn(t *testing.T) {
	w := newFloorWorld(t)
	a := mustPlaceWorm(t, w, 2, 5, "Boggy")
	if err := a.SetAP(0); err != nil {
		t.Fatal(err)
	}
	got, _ := w.CurrentWorm()
	if got != a || a.AP() != 0 {
		t.Errorf("expected the lone worm to keep its turn with 0 AP, got %v with %d AP", got, a.AP())
	}
}

func TestStartNextTurn_RefillsAndClearsProjectile(t *testing.T) {
	w := newFloorWorld(t)
	a := mustPlaceWorm(t, w, 2, 5, "Boggy")
	b := mustPlaceWorm(t, w, 8, 5, "Spadge")
	if err := b.SetAP(3); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Shoot(10); err != nil {
		t.Fatalf("Shoot: %v", err)
	}

	next, ok := w.StartNextTurn()
	if !ok || next != b {
		t.Fatalf("expected %v to play, got %v", b, next)
	}
	if b.AP() != b.MaxAP() {
		t.Errorf("expected AP %d, got %d", b.MaxAP(), b.AP())
	}
	if w.ProjectileCount() != 0 {
		t.Errorf("expected spent projectile cleared, got %d", w.ProjectileCount())
	}
}

func TestKillWorm_KeepsUpcomingWormCurrent(t *testing.T) {
	w := newFloorWorld(t)
	a := mustPlaceWorm(t, w, 2, 5, "Boggy")
	b := mustPlaceWorm(t, w, 5, 5, "Spadge")
	mustPlaceWorm(t, w, 8, 5, "Nobby")

	w.NextWorm() // b's turn
	if err := a.SetHP(-5); err != nil {
		t.Fatal(err)
	}

	got, _ := w.CurrentWorm()
	if got != b {
		t.Errorf("expected %v to keep the turn, got %v", b, got)
	}
}

// ---------- teams ----------

func TestAddEmptyTeam_Validation(t *testing.T) {
	w := newFloorWorld(t)

	tests := []struct {
		name string
		want error
	}{
		{"Red", nil},
		{"Team 2", nil},
		{"red", ErrInvalidName},
		{"R", ErrInvalidName},
		{"", ErrInvalidName},
		{"Red!", ErrInvalidName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := w.AddEmptyTeam(tt.name)
			if !errors.Is(err, tt.want) {
				t.Errorf("AddEmptyTeam(%q) error = %v, want %v", tt.name, err, tt.want)
			}
		})
	}
}

func TestAddEmptyTeam_Limit(t *testing.T) {
	w := newFloorWorld(t)
	limit := w.Config().World.MaxTeams
	for i := 0; i < limit; i++ {
		mustTeam(t, w, "Team")
	}
	_, err := w.AddEmptyTeam("Overflow")
	if !errors.Is(err, ErrTeamLimit) || !errors.Is(err, ErrIllegalAction) {
		t.Errorf("expected ErrTeamLimit, got %v", err)
	}
	if w.TeamCount() != limit {
		t.Errorf("expected %d teams, got %d", limit, w.TeamCount())
	}
}

func TestTeamMembership(t *testing.T) {
	w := newFloorWorld(t)
	red := mustTeam(t, w, "Red")
	a := mustPlaceWorm(t, w, 2, 5, "Boggy")
	blue := mustTeam(t, w, "Blue")
	b := mustPlaceWorm(t, w, 6, 5, "Spadge")

	if !red.IsMember(a) || red.IsMember(b) || !blue.IsMember(b) {
		t.Error("worms joined the wrong teams")
	}
	if team, ok := a.Team(); !ok || team != red {
		t.Errorf("expected %v to report team Red, got %v", a, team)
	}
	if red.Size() != 1 || len(red.Members()) != 1 {
		t.Errorf("expected Red to have 1 member, got %d", red.Size())
	}

	if err := w.SetCurrentTeam(red); err != nil {
		t.Fatalf("SetCurrentTeam: %v", err)
	}
	c := mustPlaceWorm(t, w, 4, 5, "Nobby")
	if !red.IsMember(c) {
		t.Error("expected new worm to join the current team")
	}
}

// ---------- placement ----------

func TestAddWorm_RestsOnTerrainWithoutOverlap(t *testing.T) {
	w := newFloorWorld(t)

	var placed []Worm
	for i := 0; i < 4; i++ {
		worm, err := w.AddWorm(nil)
		if err != nil {
			t.Fatalf("AddWorm %d: %v", i, err)
		}
		placed = append(placed, worm)
	}
	food, err := w.AddFood()
	if err != nil {
		t.Fatalf("AddFood: %v", err)
	}

	cfg := w.Config().Worm
	for i, a := range placed {
		if !w.IsAdjacent(a.X(), a.Y(), a.Radius()) {
			t.Errorf("worm %d at (%.2f, %.2f) does not rest on terrain", i, a.X(), a.Y())
		}
		if a.Radius() < cfg.MinRadius || a.Radius() >= cfg.MaxSpawnRadius {
			t.Errorf("worm %d radius %.3f outside spawn range", i, a.Radius())
		}
		if a.Name() != cfg.DefaultName {
			t.Errorf("worm %d name %q, want default", i, a.Name())
		}
		for j, b := range placed[i+1:] {
			if systems.IsOverlapping(a.X(), a.Y(), a.Radius(), b.X(), b.Y(), b.Radius()) {
				t.Errorf("worms %d and %d overlap", i, i+1+j)
			}
		}
		if systems.IsOverlapping(a.X(), a.Y(), a.Radius(), food.X(), food.Y(), food.Radius()) {
			t.Errorf("worm %d overlaps the food", i)
		}
	}
}

func TestAddWorm_PlacementFails(t *testing.T) {
	// No solid pixel anywhere: nothing is ever adjacent.
	grid := [][]bool{{true, true}, {true, true}}
	terrain, err := systems.NewTerrain(4, 4, grid)
	if err != nil {
		t.Fatal(err)
	}
	w, err := NewWorld(config.Default(), terrain, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}

	_, err = w.AddWorm(nil)
	if !errors.Is(err, ErrPlacementFailed) {
		t.Errorf("expected ErrPlacementFailed, got %v", err)
	}
	if w.WormCount() != 0 {
		t.Errorf("expected no worm added, got %d", w.WormCount())
	}
}

func TestPlaceWorm_Validation(t *testing.T) {
	w := newFloorWorld(t)
	nan := math.NaN()

	tests := []struct {
		name   string
		x, y   float64
		radius float64
		angle  float64
		wname  string
		want   error
	}{
		{"valid", 5, 5, 0.5, 0, "Boggy", nil},
		{"nan position", nan, 5, 0.5, 0, "Boggy", ErrInvalidPosition},
		{"small radius", 5, 5, 0.1, 0, "Boggy", ErrInvalidRadius},
		{"nan angle", 5, 5, 0.5, nan, "Boggy", ErrInvalidAngle},
		{"lowercase name", 5, 5, 0.5, 0, "boggy", ErrInvalidName},
		{"digits in name", 5, 5, 0.5, 0, "Boggy2", ErrInvalidName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := w.WormCount()
			_, err := w.PlaceWorm(tt.x, tt.y, tt.radius, tt.angle, tt.wname, nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if tt.want != nil && w.WormCount() != before {
				t.Error("rejected placement changed the world")
			}
		})
	}
}
