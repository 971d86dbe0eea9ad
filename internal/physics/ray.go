package physics

import (
	gomath "math"

	"github.com/Faultbox/tower-crash/pkg/math"
)

// Ray is a half-line with a normalized direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// Segment builds the ray from one point towards another and returns the
// segment length.
func Segment(from, to math.Vec3) (Ray, float64) {
	d := to.Sub(from)
	return Ray{Origin: from, Direction: d.Normalize()}, d.Length()
}

// At returns the point at distance t.
func (r Ray) At(t float64) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max math.Vec3
}

// NewAABB creates an AABB from two corners in any order.
func NewAABB(a, b math.Vec3) AABB {
	return AABB{
		Min: math.Vec3{X: gomath.Min(a.X, b.X), Y: gomath.Min(a.Y, b.Y), Z: gomath.Min(a.Z, b.Z)},
		Max: math.Vec3{X: gomath.Max(a.X, b.X), Y: gomath.Max(a.Y, b.Y), Z: gomath.Max(a.Z, b.Z)},
	}
}

// BoundsOf returns the world box of a solid of the given full size turned
// heading degrees about Z. Cylinders are symmetric and ignore heading.
func BoundsOf(shape ShapeKind, pos, size math.Vec3, heading float64) AABB {
	hx, hy, hz := size.X/2, size.Y/2, size.Z/2
	if shape != ShapeCylinder && heading != 0 {
		rad := heading * gomath.Pi / 180
		c, s := gomath.Abs(gomath.Cos(rad)), gomath.Abs(gomath.Sin(rad))
		hx, hy = c*size.X/2+s*size.Y/2, s*size.X/2+c*size.Y/2
	}
	h := math.Vec3{X: hx, Y: hy, Z: hz}
	return AABB{Min: pos.Sub(h), Max: pos.Add(h)}
}

// Center returns the middle of the box.
func (b AABB) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Touches reports whether the boxes overlap or are closer than tol on
// every axis.
func (b AABB) Touches(o AABB, tol float64) bool {
	return b.Min.X <= o.Max.X+tol && o.Min.X <= b.Max.X+tol &&
		b.Min.Y <= o.Max.Y+tol && o.Min.Y <= b.Max.Y+tol &&
		b.Min.Z <= o.Max.Z+tol && o.Min.Z <= b.Max.Z+tol
}

// OverlapXY returns the footprint shared by both boxes, if it is wider than
// tol on both ground axes.
func (b AABB) OverlapXY(o AABB, tol float64) (AABB, bool) {
	lo := math.Vec3{X: gomath.Max(b.Min.X, o.Min.X), Y: gomath.Max(b.Min.Y, o.Min.Y)}
	hi := math.Vec3{X: gomath.Min(b.Max.X, o.Max.X), Y: gomath.Min(b.Max.Y, o.Max.Y)}
	if hi.X-lo.X <= tol || hi.Y-lo.Y <= tol {
		return AABB{}, false
	}
	return AABB{Min: lo, Max: hi}, true
}

// IntersectAABB tests ray intersection with a box using the slab method.
// Returns the distance to the entry point, or to the exit point if the ray
// starts inside.
func (r Ray) IntersectAABB(box AABB) (t float64, hit bool) {
	tmin := -gomath.MaxFloat64
	tmax := gomath.MaxFloat64

	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float64{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float64{box.Min.X, box.Min.Y, box.Min.Z}
	hi := [3]float64{box.Max.X, box.Max.Y, box.Max.Z}

	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false
			}
			continue
		}
		t1 := (lo[i] - origin[i]) / dir[i]
		t2 := (hi[i] - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = gomath.Max(tmin, t1)
		tmax = gomath.Min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectPlaneZ intersects the ray with the horizontal plane at height z.
func (r Ray) IntersectPlaneZ(z float64) (t float64, ok bool) {
	if gomath.Abs(r.Direction.Z) < 1e-9 {
		return 0, false
	}
	t = (z - r.Origin.Z) / r.Direction.Z
	if t < 0 {
		return 0, false
	}
	return t, true
}
