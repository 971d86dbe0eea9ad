package game

import (
	"github.com/Faultbox/tower-crash/internal/match"
	"github.com/Faultbox/tower-crash/pkg/math"
)

// Throw flies a ball along a raised quadratic arc. Once started it always
// runs to completion.
type Throw struct {
	Shot match.Shot

	from, ctrl, to math.Vec3
	t, duration    float64
}

// NewThrow starts a throw from the ball's rest position to the shot point.
func NewThrow(shot match.Shot, from math.Vec3, arc, duration float64) *Throw {
	mid := from.Lerp(shot.Point, 0.5)
	return &Throw{
		Shot:     shot,
		from:     from,
		ctrl:     mid.Add(math.Vec3{Z: arc}),
		to:       shot.Point,
		duration: duration,
	}
}

// Advance moves the ball by dt and reports whether it has landed.
func (th *Throw) Advance(dt float64) (math.Vec3, bool) {
	th.t += dt / th.duration
	if th.t >= 1 {
		th.t = 1
	}
	return math.QuadBezier(th.from, th.ctrl, th.to, th.t), th.t >= 1
}

// Progress returns the flight parameter in [0, 1].
func (th *Throw) Progress() float64 { return th.t }
