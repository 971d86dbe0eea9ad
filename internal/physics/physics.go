// Package physics is the boundary to the rigid-body engine.
//
// The game core never simulates bodies itself: it attaches them, flips
// their mass and deactivation flags, and asks for contacts and ray hits.
// World captures exactly that surface; SimpleWorld is a small deterministic
// engine behind it for headless runs and tests.
package physics

import (
	"errors"

	"github.com/Faultbox/tower-crash/pkg/math"
)

var (
	ErrDuplicateBody = errors.New("body already attached")
	ErrUnknownBody   = errors.New("unknown body")
)

// BodyKind distinguishes finite bodies from the scene's infinite planes.
type BodyKind uint8

const (
	BodySolid BodyKind = iota // finite body: block, foundation, ball
	BodyPlane                 // solid ground at Pos.Z
	BodyWater                 // fluid surface at Pos.Z, slows what falls through
)

// ShapeKind is the collision primitive of a solid body.
type ShapeKind uint8

const (
	ShapeBox ShapeKind = iota
	ShapeCylinder
	ShapePrism
)

// Mask is a collision filter bit set.
type Mask uint32

// Collision groups. A ray or contact only sees bodies sharing a bit.
const (
	MaskPick       Mask = 1 << 1
	MaskFoundation Mask = 1 << 2
	MaskSurface    Mask = 1 << 3
	MaskBottom     Mask = 1 << 4
	MaskBlock           = MaskPick | MaskFoundation | MaskBottom
	MaskBall            = MaskSurface
)

// Bit returns the mask with only bit n set.
func Bit(n uint) Mask { return 1 << n }

// Has reports whether m and other share a bit.
func (m Mask) Has(other Mask) bool { return m&other != 0 }

// Body describes something attached to the world.
type Body struct {
	Name    string
	Kind    BodyKind
	Shape   ShapeKind
	Size    math.Vec3 // full extents, unused for planes
	Pos     math.Vec3
	Heading float64 // degrees
	Mass    float64 // zero is static
	Mask    Mask

	// Deactivation lets the engine put the body to sleep once it rests.
	Deactivation bool
}

// Contact is one touching pair reported by a contact test.
type Contact struct {
	NodeA, NodeB string
	Point        math.Vec3
}

// Other returns the node of c that is not self.
func (c Contact) Other(self string) string {
	if c.NodeA == self {
		return c.NodeB
	}
	return c.NodeA
}

// Hit is the closest body along a ray.
type Hit struct {
	Node     string
	Point    math.Vec3
	Fraction float64 // 0 at the ray start, 1 at its end
}

// World is the rigid-body engine as seen by the game. Unknown names are
// ignored by setters and produce empty results from queries.
type World interface {
	Attach(b *Body) error
	Remove(name string) bool
	SetMass(name string, mass float64)
	SetDeactivation(name string, enabled bool)
	SetPose(name string, pos math.Vec3, heading float64)
	Pose(name string) (pos math.Vec3, heading float64, ok bool)
	IsActive(name string) bool
	ContactTest(name string) []Contact
	RayTestClosest(from, to math.Vec3, mask Mask) (Hit, bool)
}
