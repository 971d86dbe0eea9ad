package game

import (
	"go.uber.org/zap"

	"github.com/Faultbox/tower-crash/internal/logger"
	"github.com/Faultbox/tower-crash/internal/tower"
	"github.com/Faultbox/tower-crash/pkg/math"
)

// bubbleOffsets spread the five bubbles of one burst.
var bubbleOffsets = [5]math.Vec3{
	{X: 0, Y: 0, Z: 0.15},
	{X: 0.08, Y: 0, Z: 0.1},
	{X: -0.08, Y: 0, Z: 0.1},
	{X: 0, Y: 0.08, Z: 0.05},
	{X: 0, Y: -0.08, Z: 0.05},
}

// LogEffects stands in for a renderer: every burst is logged.
type LogEffects struct {
	log    *zap.Logger
	played int
}

// NewLogEffects creates the effect sink. A nil logger uses the global one.
func NewLogEffects(log *zap.Logger) *LogEffects {
	return &LogEffects{log: logger.OrNamed(log, "effects")}
}

// Played returns how many bursts were started.
func (e *LogEffects) Played() int { return e.played }

// Sequence builds a bubble burst at pos.
func (e *LogEffects) Sequence(color tower.Color, pos math.Vec3) tower.Sequence {
	return &burst{fx: e, color: color, pos: pos}
}

type burst struct {
	fx    *LogEffects
	color tower.Color
	pos   math.Vec3
}

func (b *burst) Start() {
	b.fx.played++
	if ce := b.fx.log.Check(zap.DebugLevel, "bubbles"); ce != nil {
		targets := make([]float64, 0, 3*len(bubbleOffsets))
		for _, off := range bubbleOffsets {
			p := b.pos.Add(off)
			targets = append(targets, p.X, p.Y, p.Z)
		}
		ce.Write(zap.Stringer("color", b.color), zap.Float64s("targets", targets))
	}
}
