package tower

import (
	"fmt"
	"math/rand"
)

// Color is a block tint.
type Color uint8

const (
	Red Color = iota
	Blue
	Yellow
	Green
	Violet
	Magenta
	Gray // inactive blocks only
)

// Palette lists the colors a playable block or ball can take.
var Palette = []Color{Red, Blue, Yellow, Green, Violet, Magenta}

var rgba = [...][4]float64{
	Red:     {1, 0, 0, 1},
	Blue:    {0, 0, 1, 1},
	Yellow:  {1, 1, 0, 1},
	Green:   {0, 0.5, 0, 1},
	Violet:  {0.54, 0.16, 0.88, 1},
	Magenta: {1, 0, 1, 1},
	Gray:    {0.25, 0.25, 0.25, 1},
}

var colorNames = [...]string{
	Red:     "red",
	Blue:    "blue",
	Yellow:  "yellow",
	Green:   "green",
	Violet:  "violet",
	Magenta: "magenta",
	Gray:    "gray",
}

// String returns the color name.
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("color(%d)", c)
}

// RGBA returns the tint as red, green, blue, alpha in [0, 1].
func (c Color) RGBA() [4]float64 {
	if int(c) < len(rgba) {
		return rgba[c]
	}
	return rgba[Gray]
}

// RandomColor picks a palette color.
func RandomColor(rng *rand.Rand) Color {
	return Palette[rng.Intn(len(Palette))]
}
