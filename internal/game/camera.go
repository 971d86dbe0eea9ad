package game

import (
	gomath "math"

	"github.com/Faultbox/tower-crash/pkg/math"
)

// Camera orbits the tower and follows the playable rows down.
type Camera struct {
	Pos       math.Vec3
	Center    math.Vec3 // point on the tower axis the camera orbits
	LowestZ   float64
	Speed     float64 // descent speed, units per second
	Elevation float64

	pending float64
}

// NewCamera places the camera distance units in front of the tower,
// elevation above topZ.
func NewCamera(center math.Vec3, topZ, distance, elevation, lowestZ, speed float64) *Camera {
	return &Camera{
		Pos:       math.Vec3{X: center.X, Y: center.Y - distance, Z: topZ + elevation},
		Center:    center,
		LowestZ:   lowestZ,
		Speed:     speed,
		Elevation: elevation,
	}
}

// Descend queues a downward move of dist units.
func (c *Camera) Descend(dist float64) {
	if dist > 0 {
		c.pending += dist
	}
}

// Pending returns the queued descent.
func (c *Camera) Pending() float64 { return c.pending }

// Update moves the camera towards its queued height, never below LowestZ.
func (c *Camera) Update(dt float64) {
	if c.pending <= 0 {
		return
	}
	step := gomath.Min(c.pending, c.Speed*dt)
	if room := c.Pos.Z - c.LowestZ; step >= room {
		step = gomath.Max(room, 0)
		c.pending = 0
	} else {
		c.pending -= step
	}
	c.Pos.Z -= step
}

// Target is the point the camera looks at.
func (c *Camera) Target() math.Vec3 {
	return math.Vec3{X: c.Center.X, Y: c.Center.Y, Z: c.Pos.Z - c.Elevation}
}

// BallRest is where the ball waits between throws: just in front of and
// below the camera.
func (c *Camera) BallRest() math.Vec3 {
	dir := c.Target().Sub(c.Pos).Normalize()
	return c.Pos.Add(dir.Scale(0.5)).Sub(math.Vec3{Z: 0.2})
}
