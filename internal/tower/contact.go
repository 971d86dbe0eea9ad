package tower

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/tower-crash/internal/metrics"
	"github.com/Faultbox/tower-crash/internal/physics"
	"github.com/Faultbox/tower-crash/pkg/math"
)

// Floating marks blocks touching the water surface as InWater and lets the
// engine put them to sleep. contacts come from a contact test on the
// surface body. It returns the number of blocks that changed state.
func (t *Tower) Floating(contacts []physics.Contact) int {
	n := 0
	for _, c := range contacts {
		b := t.Block(c.Other(t.scene.Surface))
		if b == nil || (b.State != Active && b.State != Dropping) {
			continue
		}
		b.State = InWater
		t.world.SetDeactivation(b.Tag, true)
		t.log.Debug("block in water", zap.String("tag", b.Tag))
		n++
	}
	return n
}

// Sink removes blocks touching the sea bottom. contacts come from a contact
// test on the bottom body.
func (t *Tower) Sink(contacts []physics.Contact) int {
	n := 0
	for _, c := range contacts {
		if t.remove(t.Block(c.Other(t.scene.Bottom)), metrics.CauseSink) {
			n++
		}
	}
	return n
}

// ClearFoundation sweeps every block still resting on the foundation,
// playing an effect for each. It is the end-of-round cleanup.
func (t *Tower) ClearFoundation(effects Effects) int {
	if effects == nil {
		effects = NopEffects{}
	}
	n := 0
	for _, c := range t.world.ContactTest(t.scene.Foundation) {
		b := t.Block(c.Other(t.scene.Foundation))
		if b == nil {
			continue
		}
		color, pos := b.Color, b.Pos
		if t.remove(b, metrics.CauseFoundation) {
			effects.Sequence(color, pos).Start()
			n++
		}
	}
	if n > 0 {
		t.log.Info("foundation cleared", zap.Int("blocks", n))
	}
	return n
}

// DetectDrops compares each playable block with its reference position.
// Active blocks that moved further than the drop threshold start Dropping;
// dropping blocks that moved less than the settle threshold since the last
// check become Active again. It returns the number of transitions.
func (t *Tower) DetectDrops() int {
	n := 0
	for _, b := range t.grid.Blocks() {
		if b.State != Active && b.State != Dropping {
			continue
		}
		diff := gomath.Abs(b.Origin.Z - b.Pos.Z)
		switch {
		case diff > t.drop:
			if b.State == Active {
				b.State = Dropping
				n++
				t.log.Debug("block dropping", zap.String("tag", b.Tag), zap.Float64("diff", diff))
			}
		case b.State == Dropping && diff < t.settle:
			b.State = Active
			n++
			t.log.Debug("block repositioned", zap.String("tag", b.Tag))
		}
		if b.State == Dropping {
			b.Origin = b.Pos
		}
	}
	return n
}

// PickOutcome classifies a click ray.
type PickOutcome uint8

const (
	PickNone    PickOutcome = iota // nothing hit: the press starts a drag
	PickIgnored                    // hit something that is not a playable block
	PickBlock                      // hit an active block
)

// PickResult is the outcome of Pick.
type PickResult struct {
	Outcome PickOutcome
	Block   *Block
	Node    string
	Point   math.Vec3
}

// Pick casts the click ray from..to against pickable bodies.
func (t *Tower) Pick(from, to math.Vec3) PickResult {
	hit, ok := t.world.RayTestClosest(from, to, physics.MaskPick)
	if !ok {
		return PickResult{Outcome: PickNone}
	}
	res := PickResult{Outcome: PickIgnored, Node: hit.Node, Point: hit.Point}
	if b := t.Block(hit.Node); b != nil && b.Clickable() {
		res.Outcome = PickBlock
		res.Block = b
	}
	return res
}
