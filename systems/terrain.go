package systems

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrOutOfBounds is returned for coordinates outside the terrain.
	ErrOutOfBounds = errors.New("position outside terrain bounds")
	// ErrEmptyTerrain is returned for a missing, empty or ragged passability grid.
	ErrEmptyTerrain = errors.New("terrain grid is empty or not rectangular")
	// ErrInvalidDimensions is returned for negative or non-finite world dimensions.
	ErrInvalidDimensions = errors.New("invalid terrain dimensions")
)

// adjacencyProbes is the number of ring samples used by IsAdjacent.
const adjacencyProbes = 40

// Terrain answers passability queries against a bitmap scaled to world meters.
// Row 0 of the grid is the top of the world; world Y grows upwards.
type Terrain struct {
	grid    [][]bool // [row][col], true = passable
	width   float64  // meters
	height  float64  // meters
	pixelsX int
	pixelsY int
}

// NewTerrain creates a terrain from a passability grid covering width x height meters.
// The grid is used as-is and must not be modified afterwards.
func NewTerrain(width, height float64, grid [][]bool) (*Terrain, error) {
	if !validDimension(width) || !validDimension(height) {
		return nil, fmt.Errorf("%w: %v x %v", ErrInvalidDimensions, width, height)
	}
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, ErrEmptyTerrain
	}
	cols := len(grid[0])
	for _, row := range grid {
		if len(row) != cols {
			return nil, ErrEmptyTerrain
		}
	}

	return &Terrain{
		grid:    grid,
		width:   width,
		height:  height,
		pixelsX: cols,
		pixelsY: len(grid),
	}, nil
}

func validDimension(d float64) bool {
	return d >= 0 && !math.IsInf(d, 0) && !math.IsNaN(d)
}

// Width returns the world width in meters.
func (t *Terrain) Width() float64 { return t.width }

// Height returns the world height in meters.
func (t *Terrain) Height() float64 { return t.height }

// PixelsX returns the number of bitmap columns.
func (t *Terrain) PixelsX() int { return t.pixelsX }

// PixelsY returns the number of bitmap rows.
func (t *Terrain) PixelsY() int { return t.pixelsY }

// ResolutionX returns the width of one pixel in meters.
func (t *Terrain) ResolutionX() float64 { return t.width / float64(t.pixelsX) }

// ResolutionY returns the height of one pixel in meters.
func (t *Terrain) ResolutionY() float64 { return t.height / float64(t.pixelsY) }

// MinResolution returns the smaller of the two pixel sizes.
func (t *Terrain) MinResolution() float64 {
	return math.Min(t.ResolutionX(), t.ResolutionY())
}

// Grid returns the underlying passability grid. Callers must not modify it.
func (t *Terrain) Grid() [][]bool { return t.grid }

// WithinBounds reports whether (x, y) lies inside the world rectangle, edges included.
func (t *Terrain) WithinBounds(x, y float64) bool {
	return x >= 0 && x <= t.width && y >= 0 && y <= t.height
}

// PixelAt maps a world position to bitmap coordinates. Y is flipped so that
// world y=0 lands on the bottom row.
func (t *Terrain) PixelAt(x, y float64) (px, py int, err error) {
	if !t.WithinBounds(x, y) {
		return 0, 0, fmt.Errorf("%w: (%v, %v)", ErrOutOfBounds, x, y)
	}
	if t.width > 0 {
		px = int(math.Round(x * float64(t.pixelsX-1) / t.width))
	}
	if t.height > 0 {
		py = (t.pixelsY - 1) - int(math.Round(y*float64(t.pixelsY-1)/t.height))
	} else {
		py = t.pixelsY - 1
	}
	return px, py, nil
}

// passableAt reports whether a single point is inside the world and on a passable pixel.
func (t *Terrain) passableAt(x, y float64) bool {
	px, py, err := t.PixelAt(x, y)
	if err != nil {
		return false
	}
	return t.grid[py][px]
}

// IsPassable reports whether a disc of 0.1*radius around (x, y) is free of solid pixels.
// The disc is sampled on a pixel grid over one quadrant and mirrored into the other three.
func (t *Terrain) IsPassable(x, y, radius float64) bool {
	if !t.passableAt(x, y) {
		return false
	}

	reach := 0.1 * radius
	resX, resY := t.ResolutionX(), t.ResolutionY()
	if reach <= 0 || resX <= 0 || resY <= 0 {
		return true
	}

	stepsX := int(math.Ceil(reach / resX))
	stepsY := int(math.Ceil(reach / resY))
	for i := 0; i < stepsX; i++ {
		for j := 0; j < stepsY; j++ {
			dx := float64(i) * resX
			dy := float64(j) * resY
			if math.Hypot(dx, dy) > reach {
				continue
			}
			if !t.passableAt(x+dx, y+dy) || !t.passableAt(x-dx, y+dy) ||
				!t.passableAt(x+dx, y-dy) || !t.passableAt(x-dx, y-dy) {
				return false
			}
		}
	}
	return true
}

// IsAdjacent reports whether (x, y) is passable for radius and sits next to solid terrain:
// at least one point on a ring just outside the sampled disc is in bounds and impassable.
func (t *Terrain) IsAdjacent(x, y, radius float64) bool {
	if !t.IsPassable(x, y, radius) {
		return false
	}

	ringX := 0.1*radius + t.ResolutionX()
	ringY := 0.1*radius + t.ResolutionY()
	for i := 0; i < adjacencyProbes; i++ {
		angle := 2 * math.Pi * float64(i) / adjacencyProbes
		px := x + ringX*math.Cos(angle)
		py := y + ringY*math.Sin(angle)
		if t.WithinBounds(px, py) && !t.passableAt(px, py) {
			return true
		}
	}
	return false
}

// SolidFraction returns the share of impassable pixels, useful for sanity checks on generated maps.
func (t *Terrain) SolidFraction() float64 {
	solid := 0
	for _, row := range t.grid {
		for _, passable := range row {
			if !passable {
				solid++
			}
		}
	}
	return float64(solid) / float64(t.pixelsX*t.pixelsY)
}
