package tower

import "github.com/Faultbox/tower-crash/pkg/math"

// Sequence is a fire-and-forget visual effect.
type Sequence interface {
	Start()
}

// Effects builds effect sequences for removed blocks and ball impacts.
type Effects interface {
	Sequence(color Color, pos math.Vec3) Sequence
}

// NopEffects plays nothing.
type NopEffects struct{}

type nopSequence struct{}

func (nopSequence) Start() {}

// Sequence returns a sequence that does nothing.
func (NopEffects) Sequence(Color, math.Vec3) Sequence { return nopSequence{} }
