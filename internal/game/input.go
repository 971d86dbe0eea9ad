package game

import "github.com/Faultbox/tower-crash/pkg/math"

// Input is one frame of pointer state. The click ray is already in world
// space; turning screen coordinates into rays belongs to the renderer.
type Input struct {
	Pressed  bool
	Released bool
	From, To math.Vec3 // click ray, read when Pressed
	DeltaX   float64   // horizontal pointer motion this frame
}

// drag is the rotate gesture started by pressing on empty space. It only
// turns the view after a few held frames so a quick click never rotates.
type drag struct {
	armed  bool
	frames int
}

func (d *drag) arm() {
	d.armed = true
	d.frames = 0
}

func (d *drag) cancel() {
	*d = drag{}
}

// angle returns the rotation for this frame.
func (d *drag) angle(in Input, delay int, speed, dt float64) float64 {
	if !d.armed {
		return 0
	}
	d.frames++
	if d.frames <= delay {
		return 0
	}
	switch {
	case in.DeltaX > 0:
		return speed * dt
	case in.DeltaX < 0:
		return -speed * dt
	}
	return 0
}
