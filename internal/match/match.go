// Package match decides which blocks a thrown ball removes.
//
// The removal set is computed in full from the tower as it stands when the
// ball lands, and only then applied, so removals never influence the search
// that found them.
package match

import (
	"fmt"
	"math/rand"

	"github.com/Faultbox/tower-crash/internal/tower"
	"github.com/Faultbox/tower-crash/pkg/math"
)

// Kind is a ball variant.
type Kind uint8

const (
	Normal  Kind = iota // removes the struck same-color group
	Multi               // removes every block of the struck color
	TwoTone             // removes every block not of the struck color
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Multi:
		return "multi"
	case TwoTone:
		return "twotone"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// Ball is the projectile in hand.
type Ball struct {
	Kind  Kind
	Color tower.Color
}

// PaintColor is the color the ball's impact effect uses. Normal balls paint
// their own color, multi balls take the struck block's color and two-tone
// balls pick one at random.
func (b Ball) PaintColor(struck *tower.Block, rng *rand.Rand) tower.Color {
	switch b.Kind {
	case Multi:
		if struck != nil {
			return struck.Color
		}
		return b.Color
	case TwoTone:
		return tower.RandomColor(rng)
	default:
		return b.Color
	}
}

// Shot is a ball aimed at a block, fixed when the throw starts.
type Shot struct {
	Ball   Ball
	Target *tower.Block
	Point  math.Vec3
	Paint  tower.Color
}

// Aim fixes the target and paint color of a throw.
func Aim(ball Ball, target *tower.Block, point math.Vec3, rng *rand.Rand) Shot {
	return Shot{Ball: ball, Target: target, Point: point, Paint: ball.PaintColor(target, rng)}
}

// Result is the removal set of a landed shot.
type Result struct {
	Shot    Shot
	Removed []*tower.Block
}

// Hit reports whether the shot removes anything.
func (r Result) Hit() bool { return len(r.Removed) > 0 }

// Resolve computes what a landed shot removes without changing the tower.
// A target that is no longer active yields an empty result.
func Resolve(t *tower.Tower, shot Shot) Result {
	res := Result{Shot: shot}
	target := shot.Target
	if target == nil || !target.Clickable() {
		return res
	}

	struck := target.Color
	switch shot.Ball.Kind {
	case Multi:
		res.Removed = t.JudgeColors(func(c tower.Color) bool { return c == struck })
	case TwoTone:
		res.Removed = t.JudgeColors(func(c tower.Color) bool { return c != struck })
	default:
		if shot.Ball.Color == struck {
			res.Removed = t.Neighbors(target)
		}
	}
	return res
}

// Apply plays the impact effect at the hit point, then removes every block
// of the result with an effect in the block's own color. It returns the
// number of blocks removed.
func Apply(t *tower.Tower, res Result, fx tower.Effects) int {
	if fx == nil {
		fx = tower.NopEffects{}
	}
	fx.Sequence(res.Shot.Paint, res.Shot.Point).Start()

	n := 0
	for _, b := range res.Removed {
		color, pos := b.Color, b.Pos
		if t.CleanUp(b) {
			fx.Sequence(color, pos).Start()
			n++
		}
	}
	return n
}
