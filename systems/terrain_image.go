package systems

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
)

// DecodeTerrain reads a map image and returns its passability grid.
// Transparent pixels (alpha below half) are passable, anything opaque is solid.
func DecodeTerrain(r io.Reader) ([][]bool, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding terrain image: %w", err)
	}

	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmptyTerrain
	}

	grid := make([][]bool, b.Dy())
	for y := 0; y < b.Dy(); y++ {
		grid[y] = make([]bool, b.Dx())
		for x := 0; x < b.Dx(); x++ {
			_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			grid[y][x] = a < 0x8000
		}
	}
	return grid, nil
}

var (
	solidColor    = color.NRGBA{R: 96, G: 64, B: 32, A: 255}
	passableColor = color.NRGBA{}
)

// EncodeTerrain writes a passability grid as a PNG: solid pixels brown, passable transparent.
// The output round-trips through DecodeTerrain.
func EncodeTerrain(w io.Writer, grid [][]bool) error {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return ErrEmptyTerrain
	}

	img := image.NewNRGBA(image.Rect(0, 0, len(grid[0]), len(grid)))
	for y, row := range grid {
		for x, passable := range row {
			if passable {
				img.SetNRGBA(x, y, passableColor)
			} else {
				img.SetNRGBA(x, y, solidColor)
			}
		}
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding terrain image: %w", err)
	}
	return nil
}
