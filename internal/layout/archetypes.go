package layout

import (
	gomath "math"

	"github.com/Faultbox/tower-crash/pkg/math"
)

const (
	blockHeight = 0.15

	defaultDrop   = 0.3
	defaultSettle = 0.05
)

// Every tower stands on the foundation at the same anchor offset.
var towerCenter = math.Vec3{X: 0, Y: 0, Z: 1.075}

func newArchetype(name string, cols, level int, shapes []Shape, templates ...[]Placement) *Archetype {
	byName := make(map[string]Shape, len(shapes))
	for _, s := range shapes {
		byName[s.Name] = s
	}
	return &Archetype{
		Name:            name,
		Cols:            cols,
		Level:           level,
		BlockHeight:     blockHeight,
		Center:          towerCenter,
		Shapes:          byName,
		Templates:       templates,
		DropThreshold:   defaultDrop,
		SettleThreshold: defaultSettle,
	}
}

// cell is a placement with x and y given in edge units.
type cell struct {
	x, y    float64
	shape   string
	heading float64
}

func scaled(edge float64, cells ...cell) []Placement {
	out := make([]Placement, len(cells))
	for i, c := range cells {
		out[i] = Placement{X: c.x * edge, Y: c.y * edge, Shape: c.shape, Heading: c.heading}
	}
	return out
}

// Twin is two slim columns: a square of cylinders capped by one wide disc on
// the left, and an alternating triangle of cylinders on the right.
func Twin() *Archetype {
	const rad = 0.05
	ok := 0.1 / 2 / gomath.Sqrt(3)
	left := math.Vec2{X: -0.25}
	right := math.Vec2{X: 0.25}

	at := func(c math.Vec2, x, y float64, shape string) Placement {
		return Placement{X: c.X + x, Y: c.Y + y, Shape: shape}
	}

	even := []Placement{
		at(left, -rad, rad, "normal"),
		at(left, rad, rad, "normal"),
		at(left, -rad, -rad, "normal"),
		at(left, rad, -rad, "normal"),
		at(right, rad, -ok, "normal"),
		at(right, -rad, -ok, "normal"),
		at(right, 0, 2*ok, "normal"),
	}
	odd := []Placement{
		at(left, 0, 0, "wide"),
		at(right, -rad, ok, "normal"),
		at(right, rad, ok, "normal"),
		at(right, 0, -2*ok, "normal"),
	}

	return newArchetype("twin", 7, 20, []Shape{
		{Name: "normal", Kind: ShapeCylinder, Size: math.Vec3{X: 0.1, Y: 0.1, Z: blockHeight}},
		{Name: "wide", Kind: ShapeCylinder, Size: math.Vec3{X: 0.25, Y: 0.25, Z: blockHeight}},
	}, even, odd)
}

// Thin is a one-brick-thick wall laid in running bond.
func Thin() *Archetype {
	const edge = 0.15

	var even, odd []Placement
	for _, x := range []float64{-0.5, -1.5, -2.5, 0.5, 1.5, 2.5} {
		even = append(even, Placement{X: x * edge, Shape: "normal"})
	}
	for j, x := range []float64{0, -1, -2, -2.75, 1, 2, 2.75} {
		shape := "normal"
		if j == 3 || j == 6 {
			shape = "half"
		}
		odd = append(odd, Placement{X: x * edge, Shape: shape})
	}

	a := newArchetype("thin", 7, 20, []Shape{
		{Name: "normal", Kind: ShapeBox, Size: math.Vec3{X: 0.15, Y: 0.075, Z: blockHeight}},
		{Name: "half", Kind: ShapeBox, Size: math.Vec3{X: 0.075, Y: 0.075, Z: blockHeight}},
	}, even, odd)
	a.DropThreshold = 0.1
	return a
}

// Cylinder is a ring of eighteen upright cylinders, each course turned half
// a step against the one below.
func Cylinder() *Archetype {
	const (
		radius = 0.29
		cols   = 18
		step   = 20.0
	)

	ring := func(start float64) []Placement {
		out := make([]Placement, cols)
		for j := range out {
			deg := start + step*float64(j)
			rad := math.Truncate(deg*gomath.Pi/180, 4)
			out[j] = Placement{
				X:       math.Truncate(radius*gomath.Cos(rad), 4),
				Y:       math.Truncate(radius*gomath.Sin(rad), 4),
				Shape:   "normal",
				Heading: deg,
			}
		}
		return out
	}

	return newArchetype("cylinder", cols, 35, []Shape{
		{Name: "normal", Kind: ShapeCylinder, Size: math.Vec3{X: 0.1, Y: 0.1, Z: blockHeight}},
	}, ring(0), ring(step/2))
}

// Triple is three triangular columns. Even courses are one wide prism per
// column, odd courses a ring of four small prisms.
func Triple() *Archetype {
	const (
		edge = 0.15
		half = edge / 2
	)
	ok := edge / 2 / gomath.Sqrt(3)
	centers := []math.Vec2{{X: 0, Y: 0.2}, {X: -0.18, Y: -0.2}, {X: 0.18, Y: -0.2}}
	ringPts := []math.Vec2{{X: 0, Y: 0}, {X: half, Y: -ok}, {X: -half, Y: -ok}, {X: 0, Y: 2 * ok}}

	var even, odd []Placement
	for _, c := range centers {
		even = append(even, Placement{X: c.X, Y: c.Y, Shape: "wide"})
	}
	for _, c := range centers {
		for _, p := range ringPts {
			heading := 0.0
			// the middle prism of each ring points the other way
			if len(odd)%len(ringPts) == 0 {
				heading = 180
			}
			odd = append(odd, Placement{X: c.X + p.X, Y: c.Y + p.Y, Shape: "normal", Heading: heading})
		}
	}

	return newArchetype("triple", 12, 35, []Shape{
		{Name: "wide", Kind: ShapePrism, Size: math.Vec3{X: 0.3, Y: 0.3, Z: blockHeight}},
		{Name: "normal", Kind: ShapePrism, Size: math.Vec3{X: 0.15, Y: 0.15, Z: blockHeight}},
	}, even, odd)
}

// Cubic is a hollow square whose courses cycle through three brick patterns.
func Cubic() *Archetype {
	const edge = 0.075

	row0 := scaled(edge,
		cell{-3, 3, "normal", 0}, cell{-1, 3, "normal", 0}, cell{1, 3, "normal", 0}, cell{3, 3, "normal", 0},
		cell{3, 1, "normal", 0}, cell{3, -1, "normal", 0}, cell{3, -3, "normal", 0}, cell{1, -3, "normal", 0},
		cell{-1, -3, "normal", 0}, cell{-3, -3, "normal", 0}, cell{-3, -1, "normal", 0}, cell{-3, 1, "normal", 0},
	)
	row1 := scaled(edge,
		cell{-2.5, 3, "long", 0}, cell{0, 3, "normal", 0}, cell{2.5, 3, "long", 0},
		cell{3, 1.32, "short", 90}, cell{3, 0, "short", 90}, cell{3, -1.32, "short", 90},
		cell{-2.5, -3, "long", 0}, cell{0, -3, "normal", 0}, cell{2.5, -3, "long", 0},
		cell{-3, 1.32, "short", 90}, cell{-3, 0, "short", 90}, cell{-3, -1.32, "short", 90},
	)
	row2 := scaled(edge,
		cell{-1.32, 3, "short", 0}, cell{0, 3, "short", 0}, cell{1.32, 3, "short", 0},
		cell{3, 2.5, "long", 90}, cell{3, 0, "normal", 0}, cell{3, -2.5, "long", 90},
		cell{1.32, -3, "short", 0}, cell{0, -3, "short", 0}, cell{-1.32, -3, "short", 0},
		cell{-3, -2.5, "long", 90}, cell{-3, 0, "normal", 0}, cell{-3, 2.5, "long", 90},
	)

	return newArchetype("cubic", 12, 35, []Shape{
		{Name: "normal", Kind: ShapeBox, Size: math.Vec3{X: 0.15, Y: 0.15, Z: blockHeight}},
		{Name: "short", Kind: ShapeBox, Size: math.Vec3{X: 0.099, Y: 0.15, Z: blockHeight}},
		{Name: "long", Kind: ShapeBox, Size: math.Vec3{X: 0.223, Y: 0.15, Z: blockHeight}},
	}, row0, row1, row2)
}

// HShaped is a crossbar wall between two flanges.
func HShaped() *Archetype {
	const edge = 0.075

	even := scaled(edge,
		cell{-1, 0, "normal", 0}, cell{-3, 0, "normal", 0}, cell{1, 0, "normal", 0}, cell{3, 0, "normal", 0},
		cell{4.5, 0, "normal", 90}, cell{4.5, 2, "normal", 90}, cell{4.5, -2, "normal", -90},
		cell{-4.5, 0, "normal", 90}, cell{-4.5, 2, "normal", 90}, cell{-4.5, -2, "normal", -90},
	)
	odd := scaled(edge,
		cell{0, 0, "normal", 0}, cell{-2, 0, "normal", 0}, cell{-4, 0, "normal", 0},
		cell{2, 0, "normal", 0}, cell{4, 0, "normal", 0},
		cell{4.5, 1.75, "large", 90}, cell{4.5, -1.75, "large", 90},
		cell{-4.5, 1.75, "large", 90}, cell{-4.5, -1.75, "large", 90},
	)

	return newArchetype("hshaped", 10, 30, []Shape{
		{Name: "normal", Kind: ShapeBox, Size: math.Vec3{X: 0.15, Y: 0.075, Z: blockHeight}},
		{Name: "large", Kind: ShapeBox, Size: math.Vec3{X: 0.1875, Y: 0.075, Z: blockHeight}},
	}, even, odd)
}

// Cross is a plus-shaped stack; odd courses bind the arms with long bricks
// around a large diagonal core.
func Cross() *Archetype {
	const edge = 0.15

	even := scaled(edge,
		cell{0, 0, "normal", 0}, cell{-1, 0, "normal", 0}, cell{-2, 0, "normal", 0},
		cell{1, 0, "normal", 0}, cell{2, 0, "normal", 0},
		cell{0, 1, "normal", 0}, cell{0, 2, "normal", 0}, cell{0, -1, "normal", 0}, cell{0, -2, "normal", 0},
	)
	odd := scaled(edge,
		cell{0, 0, "large", 45},
		cell{-1.75, 0, "long", 0}, cell{1.75, 0, "long", 0},
		cell{0, -1.75, "long", 90}, cell{0, 1.75, "long", 90},
	)

	return newArchetype("cross", 9, 30, []Shape{
		{Name: "normal", Kind: ShapeBox, Size: math.Vec3{X: 0.15, Y: 0.15, Z: blockHeight}},
		{Name: "large", Kind: ShapeBox, Size: math.Vec3{X: 0.219, Y: 0.219, Z: blockHeight}},
		{Name: "long", Kind: ShapeBox, Size: math.Vec3{X: 0.223, Y: 0.15, Z: blockHeight}},
	}, even, odd)
}
