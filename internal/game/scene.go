package game

import (
	"fmt"

	"github.com/Faultbox/tower-crash/internal/config"
	"github.com/Faultbox/tower-crash/internal/layout"
	"github.com/Faultbox/tower-crash/internal/physics"
	"github.com/Faultbox/tower-crash/internal/tower"
	"github.com/Faultbox/tower-crash/pkg/math"
)

// Static body names.
const (
	FoundationBody = "foundation"
	SurfaceBody    = "surface"
	BottomBody     = "bottom"
)

// World is the engine a session drives: the physics boundary plus a clock.
type World interface {
	physics.World
	Step(dt float64)
}

// NewWorld creates the built-in engine from config.
func NewWorld(cfg config.PhysicsConfig) *physics.SimpleWorld {
	return physics.NewSimpleWorld(physics.SimpleConfig{
		Gravity:    cfg.Gravity,
		SinkSpeed:  cfg.SinkSpeed,
		TipSpeed:   cfg.TipSpeed,
		Tolerance:  cfg.ContactTolerance,
		SleepAfter: cfg.SleepAfter.Seconds(),
	}, nil)
}

// BuildScene attaches the foundation pillar, the water surface and the sea
// bottom. The pillar's top face is where row 0 of arch rests.
func BuildScene(w physics.World, cfg config.PhysicsConfig, arch *layout.Archetype, anchor math.Vec3) (tower.Scene, error) {
	center := anchor.Add(arch.Center)
	top := center.Z + arch.BlockHeight/2
	height := top - cfg.BottomZ

	bodies := []*physics.Body{
		{
			Name:  FoundationBody,
			Kind:  physics.BodySolid,
			Shape: physics.ShapeCylinder,
			Size:  math.Vec3{X: 2 * cfg.FoundationRadius, Y: 2 * cfg.FoundationRadius, Z: height},
			Pos:   math.Vec3{X: center.X, Y: center.Y, Z: top - height/2},
			Mask:  physics.MaskFoundation,
		},
		{Name: SurfaceBody, Kind: physics.BodyWater, Pos: math.Vec3{Z: cfg.SurfaceZ}, Mask: physics.MaskSurface},
		{Name: BottomBody, Kind: physics.BodyPlane, Pos: math.Vec3{Z: cfg.BottomZ}, Mask: physics.MaskBottom},
	}
	for _, b := range bodies {
		if err := w.Attach(b); err != nil {
			return tower.Scene{}, fmt.Errorf("build scene: %w", err)
		}
	}
	return tower.Scene{Foundation: FoundationBody, Surface: SurfaceBody, Bottom: BottomBody}, nil
}
