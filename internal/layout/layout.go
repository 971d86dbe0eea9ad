// Package layout describes tower archetypes and generates block placements.
//
// An archetype is a small set of row templates (one per row parity, or a
// longer cycle) in the tower's local frame. Generation only stacks those
// templates, so every call with the same archetype and row count yields the
// same table.
package layout

import (
	"errors"
	"fmt"

	"github.com/Faultbox/tower-crash/pkg/math"
)

// ErrUnknownArchetype is returned when a registry lookup misses.
var ErrUnknownArchetype = errors.New("unknown archetype")

// ShapeKind is the collision primitive of a block.
type ShapeKind uint8

const (
	ShapeCylinder ShapeKind = iota
	ShapeBox
	ShapePrism // triangular convex hull
)

// String returns the kind name.
func (k ShapeKind) String() string {
	switch k {
	case ShapeCylinder:
		return "cylinder"
	case ShapeBox:
		return "box"
	case ShapePrism:
		return "prism"
	default:
		return fmt.Sprintf("shape(%d)", k)
	}
}

// Shape is a named primitive with full extents along X, Y and Z.
type Shape struct {
	Name string
	Kind ShapeKind
	Size math.Vec3
}

// HalfExtents returns half of Size.
func (s Shape) HalfExtents() math.Vec3 {
	return s.Size.Scale(0.5)
}

// Placement is one block of a row template.
type Placement struct {
	X, Y    float64
	Shape   string
	Heading float64 // degrees about the vertical axis
}

// Archetype is a tower shape family.
type Archetype struct {
	Name        string
	Cols        int // widest row
	Level       int // balls granted per round
	BlockHeight float64
	Center      math.Vec3 // tower origin relative to the foundation anchor

	Shapes    map[string]Shape
	Templates [][]Placement // row r uses Templates[r%len(Templates)]

	// Drop detection tuning, in world units between checks.
	DropThreshold   float64
	SettleThreshold float64
}

// Row returns the template used by the given row.
func (a *Archetype) Row(row int) []Placement {
	if len(a.Templates) == 0 || row < 0 {
		return nil
	}
	return a.Templates[row%len(a.Templates)]
}

// Shape looks up a declared shape.
func (a *Archetype) Shape(name string) (Shape, bool) {
	s, ok := a.Shapes[name]
	return s, ok
}

// Validate checks that the tables are self-consistent.
func (a *Archetype) Validate() error {
	if a.Name == "" {
		return errors.New("archetype has no name")
	}
	if a.Cols <= 0 {
		return fmt.Errorf("%s: cols must be positive, got %d", a.Name, a.Cols)
	}
	if a.BlockHeight <= 0 {
		return fmt.Errorf("%s: block height must be positive", a.Name)
	}
	if a.Level <= 0 {
		return fmt.Errorf("%s: level must be positive", a.Name)
	}
	if len(a.Templates) == 0 {
		return fmt.Errorf("%s: no row templates", a.Name)
	}
	for i, tpl := range a.Templates {
		if len(tpl) == 0 {
			return fmt.Errorf("%s: template %d is empty", a.Name, i)
		}
		if len(tpl) > a.Cols {
			return fmt.Errorf("%s: template %d has %d blocks, cols is %d", a.Name, i, len(tpl), a.Cols)
		}
		for j, p := range tpl {
			if _, ok := a.Shapes[p.Shape]; !ok {
				return fmt.Errorf("%s: template %d block %d uses undeclared shape %q", a.Name, i, j, p.Shape)
			}
		}
	}
	if a.SettleThreshold < 0 || a.DropThreshold <= a.SettleThreshold {
		return fmt.Errorf("%s: drop threshold %.3f must exceed settle threshold %.3f",
			a.Name, a.DropThreshold, a.SettleThreshold)
	}
	return nil
}

// Slot is a generated block position in the tower's local frame.
type Slot struct {
	Row, Col int
	Local    math.Vec3
	Heading  float64
	Shape    Shape
}

// Generate stacks the archetype's templates into rows courses. Row r sits at
// height BlockHeight*(r+1) and column c is the c-th entry of its template.
func Generate(a *Archetype, rows int) [][]Slot {
	if rows <= 0 {
		return nil
	}
	out := make([][]Slot, rows)
	for r := 0; r < rows; r++ {
		tpl := a.Row(r)
		z := a.BlockHeight * float64(r+1)
		row := make([]Slot, len(tpl))
		for c, p := range tpl {
			row[c] = Slot{
				Row:     r,
				Col:     c,
				Local:   math.Vec3{X: p.X, Y: p.Y, Z: z},
				Heading: p.Heading,
				Shape:   a.Shapes[p.Shape],
			}
		}
		out[r] = row
	}
	return out
}
