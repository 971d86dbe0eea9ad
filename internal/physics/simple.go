package physics

import (
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/tower-crash/internal/logger"
	"github.com/Faultbox/tower-crash/pkg/math"
)

// SimpleConfig tunes SimpleWorld.
type SimpleConfig struct {
	Gravity    float64
	SinkSpeed  float64 // terminal fall speed below a water plane
	TipSpeed   float64 // sideways speed of a block overhanging its support
	Tolerance  float64 // gap still counted as touching
	SleepAfter float64 // seconds at rest before a deactivatable body sleeps
}

// DefaultSimpleConfig returns settings sized for 0.15-unit blocks.
func DefaultSimpleConfig() SimpleConfig {
	return SimpleConfig{
		Gravity:    9.81,
		SinkSpeed:  0.5,
		TipSpeed:   0.3,
		Tolerance:  0.002,
		SleepAfter: 0.5,
	}
}

type simBody struct {
	Body
	vel  math.Vec3
	rest float64
}

func (b *simBody) bounds() AABB {
	return BoundsOf(b.Shape, b.Pos, b.Size, b.Heading)
}

func (b *simBody) dynamic() bool {
	return b.Kind == BodySolid && b.Mass > 0
}

// SimpleWorld is a deterministic stacking engine: boxes fall under gravity
// until they land, slide off supports that do not hold their center, and
// sink slowly through water. Bodies are visited in attach order.
type SimpleWorld struct {
	cfg    SimpleConfig
	bodies []*simBody
	byName map[string]*simBody
	log    *zap.Logger
}

// NewSimpleWorld creates an empty world. A nil logger uses the global one.
func NewSimpleWorld(cfg SimpleConfig, log *zap.Logger) *SimpleWorld {
	return &SimpleWorld{
		cfg:    cfg,
		byName: make(map[string]*simBody),
		log:    logger.OrNamed(log, "physics"),
	}
}

// Attach adds a body.
func (w *SimpleWorld) Attach(b *Body) error {
	if b == nil || b.Name == "" {
		return fmt.Errorf("attach: %w: empty name", ErrUnknownBody)
	}
	if _, ok := w.byName[b.Name]; ok {
		w.log.Warn("duplicate attach", zap.String("body", b.Name))
		return fmt.Errorf("attach %s: %w", b.Name, ErrDuplicateBody)
	}
	sb := &simBody{Body: *b}
	w.bodies = append(w.bodies, sb)
	w.byName[b.Name] = sb
	return nil
}

// Remove detaches a body. It reports false if the body was not attached.
func (w *SimpleWorld) Remove(name string) bool {
	sb, ok := w.byName[name]
	if !ok {
		return false
	}
	delete(w.byName, name)
	for i, b := range w.bodies {
		if b == sb {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	return true
}

// SetMass changes a body's mass. Zero makes it static.
func (w *SimpleWorld) SetMass(name string, mass float64) {
	if sb, ok := w.byName[name]; ok {
		sb.Mass = mass
		sb.rest = 0
		if mass == 0 {
			sb.vel = math.Vec3{}
		}
	}
}

// SetDeactivation toggles sleeping for a body.
func (w *SimpleWorld) SetDeactivation(name string, enabled bool) {
	if sb, ok := w.byName[name]; ok {
		sb.Deactivation = enabled
		sb.rest = 0
	}
}

// SetPose teleports a body.
func (w *SimpleWorld) SetPose(name string, pos math.Vec3, heading float64) {
	if sb, ok := w.byName[name]; ok {
		sb.Pos = pos
		sb.Heading = heading
		sb.rest = 0
	}
}

// Pose returns a body's position and heading.
func (w *SimpleWorld) Pose(name string) (math.Vec3, float64, bool) {
	sb, ok := w.byName[name]
	if !ok {
		return math.Vec3{}, 0, false
	}
	return sb.Pos, sb.Heading, true
}

// IsActive reports whether a body takes part in the simulation: it is
// dynamic and not asleep.
func (w *SimpleWorld) IsActive(name string) bool {
	sb, ok := w.byName[name]
	if !ok || !sb.dynamic() {
		return false
	}
	return !(sb.Deactivation && sb.rest >= w.cfg.SleepAfter)
}

// Len returns the number of attached bodies.
func (w *SimpleWorld) Len() int { return len(w.bodies) }

// ContactTest lists every body touching the named one.
func (w *SimpleWorld) ContactTest(name string) []Contact {
	a, ok := w.byName[name]
	if !ok {
		return nil
	}
	var out []Contact
	for _, b := range w.bodies {
		if b == a {
			continue
		}
		if p, ok := w.touching(a, b); ok {
			out = append(out, Contact{NodeA: a.Name, NodeB: b.Name, Point: p})
		}
	}
	return out
}

func (w *SimpleWorld) touching(a, b *simBody) (math.Vec3, bool) {
	tol := w.cfg.Tolerance
	switch {
	case a.Kind != BodySolid && b.Kind != BodySolid:
		return math.Vec3{}, false
	case a.Kind != BodySolid:
		a, b = b, a
		fallthrough
	case b.Kind != BodySolid:
		// planes are half-spaces: anything reaching below counts
		box := a.bounds()
		if box.Min.Z > b.Pos.Z+tol {
			return math.Vec3{}, false
		}
		return math.Vec3{X: a.Pos.X, Y: a.Pos.Y, Z: b.Pos.Z}, true
	}
	ab, bb := a.bounds(), b.bounds()
	if !ab.Touches(bb, tol) {
		return math.Vec3{}, false
	}
	return ab.Center().Lerp(bb.Center(), 0.5), true
}

// RayTestClosest returns the nearest body on the segment from..to whose
// mask shares a bit with mask.
func (w *SimpleWorld) RayTestClosest(from, to math.Vec3, mask Mask) (Hit, bool) {
	ray, length := Segment(from, to)
	if length == 0 {
		return Hit{}, false
	}

	best := Hit{Fraction: gomath.Inf(1)}
	found := false
	for _, b := range w.bodies {
		if !b.Mask.Has(mask) {
			continue
		}
		var t float64
		var ok bool
		if b.Kind == BodySolid {
			t, ok = ray.IntersectAABB(b.bounds())
		} else {
			t, ok = ray.IntersectPlaneZ(b.Pos.Z)
		}
		if !ok || t > length {
			continue
		}
		if f := t / length; f < best.Fraction {
			best = Hit{Node: b.Name, Point: ray.At(t), Fraction: f}
			found = true
		}
	}
	if !found {
		return Hit{}, false
	}
	return best, true
}

// Step advances every dynamic body by dt seconds.
func (w *SimpleWorld) Step(dt float64) {
	if dt <= 0 {
		return
	}
	for _, b := range w.bodies {
		if b.dynamic() {
			w.stepBody(b, dt)
		}
	}
}

func (w *SimpleWorld) stepBody(b *simBody, dt float64) {
	tol := w.cfg.Tolerance
	box := b.bounds()

	support, grounded := w.support(b, box)
	if grounded {
		if support == nil || w.centered(b, *support) {
			b.vel = math.Vec3{}
			b.rest += dt
			return
		}
		// Overhanging: slide away from the support until the center clears.
		dir := b.Pos.XY().Sub(support.Center().XY()).Normalize()
		if dir == (math.Vec2{}) {
			dir = math.Vec2{X: 1}
		}
		b.vel = dir.Scale(w.cfg.TipSpeed).Vec3(0)
		b.Pos = b.Pos.Add(b.vel.Scale(dt))
		b.rest = 0
		return
	}

	b.vel.Z -= w.cfg.Gravity * dt
	if w.underwater(b) {
		if b.vel.Z < -w.cfg.SinkSpeed {
			b.vel.Z = -w.cfg.SinkSpeed
		}
		b.vel.X *= 0.9
		b.vel.Y *= 0.9
	}
	next := b.Pos.Add(b.vel.Scale(dt))

	// Land on the highest top crossed during this step.
	half := b.Size.Z / 2
	oldBottom := box.Min.Z
	newBottom := next.Z - half
	landed := false
	moved := BoundsOf(b.Shape, next, b.Size, b.Heading)
	for _, o := range w.bodies {
		if o == b {
			continue
		}
		var top float64
		switch o.Kind {
		case BodyWater:
			continue
		case BodyPlane:
			top = o.Pos.Z
		default:
			ob := o.bounds()
			if _, ok := moved.OverlapXY(ob, tol); !ok {
				continue
			}
			top = ob.Max.Z
		}
		if top <= oldBottom+tol && top >= newBottom {
			newBottom = top
			landed = true
		}
	}
	if landed {
		next.Z = newBottom + half
		b.vel.Z = 0
	}
	b.Pos = next
	b.rest = 0
}

// support reports whether b rests on something, and the combined footprint
// of the solids under it. A nil footprint with grounded set means a plane.
func (w *SimpleWorld) support(b *simBody, box AABB) (*AABB, bool) {
	tol := w.cfg.Tolerance
	var union *AABB
	for _, o := range w.bodies {
		if o == b {
			continue
		}
		switch o.Kind {
		case BodyWater:
			continue
		case BodyPlane:
			if gomath.Abs(box.Min.Z-o.Pos.Z) <= tol {
				return nil, true
			}
			continue
		}
		ob := o.bounds()
		if gomath.Abs(box.Min.Z-ob.Max.Z) > tol {
			continue
		}
		shared, ok := box.OverlapXY(ob, tol)
		if !ok {
			continue
		}
		if union == nil {
			u := shared
			union = &u
		} else {
			u := NewAABB(
				math.Vec3{X: gomath.Min(union.Min.X, shared.Min.X), Y: gomath.Min(union.Min.Y, shared.Min.Y)},
				math.Vec3{X: gomath.Max(union.Max.X, shared.Max.X), Y: gomath.Max(union.Max.Y, shared.Max.Y)},
			)
			union = &u
		}
	}
	return union, union != nil
}

func (w *SimpleWorld) centered(b *simBody, footprint AABB) bool {
	tol := w.cfg.Tolerance
	return b.Pos.X >= footprint.Min.X-tol && b.Pos.X <= footprint.Max.X+tol &&
		b.Pos.Y >= footprint.Min.Y-tol && b.Pos.Y <= footprint.Max.Y+tol
}

func (w *SimpleWorld) underwater(b *simBody) bool {
	for _, o := range w.bodies {
		if o.Kind == BodyWater && b.Pos.Z < o.Pos.Z {
			return true
		}
	}
	return false
}
