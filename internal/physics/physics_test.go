package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/tower-crash/pkg/math"
)

func TestTagRoundTrip(t *testing.T) {
	for _, cols := range []int{7, 9, 12, 18} {
		for row := 0; row < 40; row++ {
			for col := 0; col < cols; col++ {
				r, c, ok := DecodeTag(EncodeTag(row, col, cols), cols)
				require.True(t, ok)
				require.Equal(t, row, r)
				require.Equal(t, col, c)
			}
		}
	}
}

func TestDecodeTagRejects(t *testing.T) {
	for _, tag := range []string{"", "foundation", "-3", "007", "1.5", "ball"} {
		_, _, ok := DecodeTag(tag, 7)
		assert.False(t, ok, tag)
	}
	_, _, ok := DecodeTag("3", 0)
	assert.False(t, ok)
}

func TestClassifier(t *testing.T) {
	c := Classifier{Foundation: "foundation", Surface: "surface", Bottom: "bottom", Cols: 7}

	assert.Equal(t, ContactFoundation, c.Classify("foundation"))
	assert.Equal(t, ContactSurface, c.Classify("surface"))
	assert.Equal(t, ContactBottom, c.Classify("bottom"))
	assert.Equal(t, ContactBlock, c.Classify("42"))
	assert.Equal(t, ContactOther, c.Classify("ball"))
	assert.Equal(t, ContactOther, c.Classify(""))
}

func TestContactOther(t *testing.T) {
	ct := Contact{NodeA: "3", NodeB: "surface"}
	assert.Equal(t, "surface", ct.Other("3"))
	assert.Equal(t, "3", ct.Other("surface"))
}

func TestRayIntersectAABB(t *testing.T) {
	box := NewAABB(math.Vec3{X: 1, Y: 1, Z: 1}, math.Vec3{X: -1, Y: -1, Z: -1})

	ray, _ := Segment(math.Vec3{X: -5}, math.Vec3{X: 5})
	d, hit := ray.IntersectAABB(box)
	require.True(t, hit)
	assert.InDelta(t, 4, d, 1e-9)

	inside := Ray{Origin: math.Vec3{}, Direction: math.Vec3{Z: 1}}
	d, hit = inside.IntersectAABB(box)
	require.True(t, hit)
	assert.InDelta(t, 1, d, 1e-9)

	miss := Ray{Origin: math.Vec3{X: -5, Y: 3}, Direction: math.Vec3{X: 1}}
	_, hit = miss.IntersectAABB(box)
	assert.False(t, hit)

	behind := Ray{Origin: math.Vec3{X: 5}, Direction: math.Vec3{X: 1}}
	_, hit = behind.IntersectAABB(box)
	assert.False(t, hit)
}

func TestRayIntersectPlaneZ(t *testing.T) {
	ray := Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}
	d, ok := ray.IntersectPlaneZ(0)
	require.True(t, ok)
	assert.InDelta(t, 5, d, 1e-9)

	flat := Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{X: 1}}
	_, ok = flat.IntersectPlaneZ(0)
	assert.False(t, ok)
}

func TestBoundsOfHeading(t *testing.T) {
	size := math.Vec3{X: 0.2, Y: 0.1, Z: 0.15}

	straight := BoundsOf(ShapeBox, math.Vec3{}, size, 0)
	assert.InDelta(t, 0.1, straight.Max.X, 1e-9)
	assert.InDelta(t, 0.05, straight.Max.Y, 1e-9)

	turned := BoundsOf(ShapeBox, math.Vec3{}, size, 90)
	assert.InDelta(t, 0.05, turned.Max.X, 1e-9)
	assert.InDelta(t, 0.1, turned.Max.Y, 1e-9)

	cyl := BoundsOf(ShapeCylinder, math.Vec3{}, math.Vec3{X: 0.1, Y: 0.1, Z: 0.15}, 45)
	assert.InDelta(t, 0.05, cyl.Max.X, 1e-9)
}

var brick = math.Vec3{X: 0.15, Y: 0.15, Z: 0.15}

func newTestWorld(t *testing.T) *SimpleWorld {
	t.Helper()
	w := NewSimpleWorld(DefaultSimpleConfig(), nil)
	require.NoError(t, w.Attach(&Body{Name: "ground", Kind: BodyPlane, Pos: math.Vec3{Z: 0}, Mask: MaskFoundation}))
	return w
}

func TestSimpleWorldAttachRemove(t *testing.T) {
	w := newTestWorld(t)

	require.NoError(t, w.Attach(&Body{Name: "0", Size: brick, Pos: math.Vec3{Z: 0.075}}))
	assert.ErrorIs(t, w.Attach(&Body{Name: "0"}), ErrDuplicateBody)
	assert.ErrorIs(t, w.Attach(&Body{}), ErrUnknownBody)
	assert.Equal(t, 2, w.Len())

	assert.True(t, w.Remove("0"))
	assert.False(t, w.Remove("0"))
	assert.Empty(t, w.ContactTest("0"))

	_, _, ok := w.Pose("0")
	assert.False(t, ok)
}

func TestSimpleWorldContacts(t *testing.T) {
	w := newTestWorld(t)
	require.NoError(t, w.Attach(&Body{Name: "0", Size: brick, Pos: math.Vec3{X: 0, Z: 0.075}}))
	require.NoError(t, w.Attach(&Body{Name: "1", Size: brick, Pos: math.Vec3{X: 0.15, Z: 0.075}}))
	require.NoError(t, w.Attach(&Body{Name: "2", Size: brick, Pos: math.Vec3{X: 0.6, Z: 0.075}}))
	require.NoError(t, w.Attach(&Body{Name: "7", Size: brick, Pos: math.Vec3{X: 0, Z: 0.225}}))

	var names []string
	for _, c := range w.ContactTest("0") {
		assert.Equal(t, "0", c.NodeA)
		names = append(names, c.NodeB)
	}
	assert.Equal(t, []string{"ground", "1", "7"}, names)

	names = names[:0]
	for _, c := range w.ContactTest("ground") {
		names = append(names, c.Other("ground"))
	}
	assert.Equal(t, []string{"0", "1", "2"}, names)
}

func TestSimpleWorldRayPicksNearest(t *testing.T) {
	w := newTestWorld(t)
	require.NoError(t, w.Attach(&Body{Name: "near", Size: brick, Pos: math.Vec3{Y: -0.5, Z: 0.075}, Mask: MaskBlock}))
	require.NoError(t, w.Attach(&Body{Name: "far", Size: brick, Pos: math.Vec3{Y: 0.5, Z: 0.075}, Mask: MaskBlock}))

	hit, ok := w.RayTestClosest(math.Vec3{Y: -3, Z: 0.075}, math.Vec3{Y: 3, Z: 0.075}, MaskPick)
	require.True(t, ok)
	assert.Equal(t, "near", hit.Node)
	assert.InDelta(t, -0.575, hit.Point.Y, 1e-9)

	// the ground plane has no pick bit
	_, ok = w.RayTestClosest(math.Vec3{X: 2, Z: 1}, math.Vec3{X: 2, Z: -1}, MaskPick)
	assert.False(t, ok)

	hit, ok = w.RayTestClosest(math.Vec3{X: 2, Z: 1}, math.Vec3{X: 2, Z: -1}, MaskFoundation)
	require.True(t, ok)
	assert.Equal(t, "ground", hit.Node)
}

func TestSimpleWorldFallAndSleep(t *testing.T) {
	w := newTestWorld(t)
	require.NoError(t, w.Attach(&Body{Name: "base", Size: brick, Pos: math.Vec3{Z: 0.075}}))
	require.NoError(t, w.Attach(&Body{Name: "top", Size: brick, Pos: math.Vec3{Z: 0.6}, Mass: 1, Deactivation: true}))

	assert.False(t, w.IsActive("base"), "static bodies are never active")
	assert.True(t, w.IsActive("top"))

	for i := 0; i < 120; i++ {
		w.Step(1.0 / 60)
	}

	pos, _, ok := w.Pose("top")
	require.True(t, ok)
	assert.InDelta(t, 0.225, pos.Z, 1e-9, "lands on the base")
	assert.False(t, w.IsActive("top"), "sleeps after resting")

	w.SetDeactivation("top", false)
	assert.True(t, w.IsActive("top"))
}

func TestSimpleWorldOverhangFallsIntoWater(t *testing.T) {
	w := NewSimpleWorld(DefaultSimpleConfig(), nil)
	require.NoError(t, w.Attach(&Body{Name: "surface", Kind: BodyWater, Pos: math.Vec3{Z: 0}}))
	require.NoError(t, w.Attach(&Body{Name: "bottom", Kind: BodyPlane, Pos: math.Vec3{Z: -10}}))
	require.NoError(t, w.Attach(&Body{Name: "pillar", Size: math.Vec3{X: 0.2, Y: 0.2, Z: 2}, Pos: math.Vec3{Z: 1}}))
	// center sits past the pillar's edge
	require.NoError(t, w.Attach(&Body{Name: "ledge", Size: brick, Pos: math.Vec3{X: 0.15, Z: 2.075}, Mass: 1}))

	for i := 0; i < 600; i++ {
		w.Step(1.0 / 60)
	}

	pos, _, _ := w.Pose("ledge")
	assert.Less(t, pos.Z, 0.0, "slid off and sank")

	var hitSurface bool
	for _, c := range w.ContactTest("surface") {
		if c.Other("surface") == "ledge" {
			hitSurface = true
		}
	}
	assert.True(t, hitSurface)
}

func TestSimpleWorldSetters(t *testing.T) {
	w := newTestWorld(t)
	require.NoError(t, w.Attach(&Body{Name: "b", Size: brick, Pos: math.Vec3{Z: 0.075}}))

	w.SetMass("b", 1)
	assert.True(t, w.IsActive("b"))
	w.SetMass("b", 0)
	assert.False(t, w.IsActive("b"))

	w.SetPose("b", math.Vec3{X: 1, Z: 0.075}, 30)
	pos, heading, _ := w.Pose("b")
	assert.Equal(t, 1.0, pos.X)
	assert.Equal(t, 30.0, heading)

	// unknown names are ignored
	w.SetMass("nope", 1)
	w.SetDeactivation("nope", true)
	w.SetPose("nope", math.Vec3{}, 0)
	assert.False(t, w.IsActive("nope"))
}
