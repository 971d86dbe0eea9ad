package math

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var up = mgl64.Vec3{0, 0, 1}

// HeadingQuat is the rotation of deg degrees about the vertical axis.
func HeadingQuat(deg float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(deg), up)
}

// RotateAbout turns p by deg degrees about the vertical axis through center.
func RotateAbout(p, center Vec3, deg float64) Vec3 {
	if deg == 0 {
		return p
	}
	d := p.Sub(center)
	r := HeadingQuat(deg).Rotate(mgl64.Vec3{d.X, d.Y, d.Z})
	return center.Add(Vec3{r[0], r[1], r[2]})
}

// NormalizeDeg wraps an angle into [0, 360).
func NormalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Truncate cuts v toward zero after the given number of decimal digits.
// Generated layouts use it so that trig results are reproducible.
func Truncate(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Trunc(v*p) / p
}

// QuadBezier evaluates the quadratic Bézier curve p0, p1, p2 at t.
func QuadBezier(p0, p1, p2 Vec3, t float64) Vec3 {
	u := 1 - t
	return p0.Scale(u * u).Add(p1.Scale(2 * u * t)).Add(p2.Scale(t * t))
}
