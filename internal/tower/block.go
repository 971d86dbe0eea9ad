package tower

import (
	"github.com/Faultbox/tower-crash/internal/layout"
	"github.com/Faultbox/tower-crash/pkg/math"
)

// State is a block's lifecycle stage.
type State uint8

const (
	Inactive State = iota // gray, static, not playable yet
	Active                // playable, simulated
	Dropping              // falling after losing support
	InWater               // touched the water surface
	Removed               // detached; terminal
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case Active:
		return "active"
	case Dropping:
		return "dropping"
	case InWater:
		return "in_water"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Block is one tower piece. Its body in the physics world is named Tag.
type Block struct {
	Row, Col int
	Tag      string
	Shape    layout.Shape

	Pos     math.Vec3
	Heading float64
	Origin  math.Vec3 // reference position for drop detection

	Color Color
	State State
	Mass  float64
}

// Live reports whether the block is still part of the round.
func (b *Block) Live() bool { return b.State != Removed }

// Clickable reports whether a ball or match may target the block.
func (b *Block) Clickable() bool { return b.State == Active }
