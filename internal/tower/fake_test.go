package tower

import (
	"github.com/Faultbox/tower-crash/internal/physics"
	"github.com/Faultbox/tower-crash/pkg/math"
)

// graphWorld is a physics.World whose contacts come from an explicit
// adjacency list instead of geometry.
type graphWorld struct {
	bodies map[string]*physics.Body
	order  []string
	adj    map[string][]string
	asleep map[string]bool
	hit    *physics.Hit
}

func newGraphWorld() *graphWorld {
	return &graphWorld{
		bodies: make(map[string]*physics.Body),
		adj:    make(map[string][]string),
		asleep: make(map[string]bool),
	}
}

func (w *graphWorld) link(a, b string) {
	w.adj[a] = append(w.adj[a], b)
	w.adj[b] = append(w.adj[b], a)
}

func (w *graphWorld) Attach(b *physics.Body) error {
	if _, ok := w.bodies[b.Name]; ok {
		return physics.ErrDuplicateBody
	}
	cp := *b
	w.bodies[b.Name] = &cp
	w.order = append(w.order, b.Name)
	return nil
}

func (w *graphWorld) Remove(name string) bool {
	if _, ok := w.bodies[name]; !ok {
		return false
	}
	delete(w.bodies, name)
	return true
}

func (w *graphWorld) SetMass(name string, mass float64) {
	if b, ok := w.bodies[name]; ok {
		b.Mass = mass
	}
}

func (w *graphWorld) SetDeactivation(name string, enabled bool) {
	if b, ok := w.bodies[name]; ok {
		b.Deactivation = enabled
	}
}

func (w *graphWorld) SetPose(name string, pos math.Vec3, heading float64) {
	if b, ok := w.bodies[name]; ok {
		b.Pos, b.Heading = pos, heading
	}
}

func (w *graphWorld) Pose(name string) (math.Vec3, float64, bool) {
	b, ok := w.bodies[name]
	if !ok {
		return math.Vec3{}, 0, false
	}
	return b.Pos, b.Heading, true
}

func (w *graphWorld) IsActive(name string) bool {
	b, ok := w.bodies[name]
	return ok && b.Mass > 0 && !w.asleep[name]
}

func (w *graphWorld) ContactTest(name string) []physics.Contact {
	if _, ok := w.bodies[name]; !ok {
		return nil
	}
	var out []physics.Contact
	for _, other := range w.adj[name] {
		if _, ok := w.bodies[other]; ok {
			out = append(out, physics.Contact{NodeA: name, NodeB: other})
		}
	}
	return out
}

func (w *graphWorld) RayTestClosest(_, _ math.Vec3, _ physics.Mask) (physics.Hit, bool) {
	if w.hit == nil {
		return physics.Hit{}, false
	}
	return *w.hit, true
}

type recordedEffect struct {
	color Color
	pos   math.Vec3
}

type recordingEffects struct {
	started []recordedEffect
}

type recordingSequence struct {
	fx  *recordingEffects
	rec recordedEffect
}

func (s recordingSequence) Start() { s.fx.started = append(s.fx.started, s.rec) }

func (fx *recordingEffects) Sequence(c Color, pos math.Vec3) Sequence {
	return recordingSequence{fx: fx, rec: recordedEffect{color: c, pos: pos}}
}
