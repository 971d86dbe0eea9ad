// Package tower owns the block grid of one round and drives block
// lifecycles: activation from the bottom up, same-color flood fill, and
// removal through water, matches and the final foundation sweep.
package tower

import (
	"errors"
	"fmt"
	gomath "math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/tower-crash/internal/layout"
	"github.com/Faultbox/tower-crash/internal/logger"
	"github.com/Faultbox/tower-crash/internal/metrics"
	"github.com/Faultbox/tower-crash/internal/physics"
	"github.com/Faultbox/tower-crash/pkg/math"
)

// DefaultActiveRows is how many top rows are playable when a round starts.
const DefaultActiveRows = 8

// ErrBuilt is returned by a second Build call.
var ErrBuilt = errors.New("tower already built")

// Scene names the static bodies a tower interacts with.
type Scene struct {
	Foundation string
	Surface    string
	Bottom     string
}

// Options configures New.
type Options struct {
	Archetype  *layout.Archetype
	Rows       int
	ActiveRows int // zero uses DefaultActiveRows
	World      physics.World
	Scene      Scene
	Anchor     math.Vec3 // foundation anchor; the archetype center is relative to it
	Rand       *rand.Rand
	Logger     *zap.Logger
	Metrics    *metrics.Metrics

	// Zero keeps the archetype's thresholds.
	DropThreshold   float64
	SettleThreshold float64
}

// Tower is the block aggregate of one round.
type Tower struct {
	arch    *layout.Archetype
	rows    int
	cols    int
	blockH  float64
	center  math.Vec3
	heading float64

	grid    *Grid
	world   physics.World
	scene   physics.Classifier
	rng     *rand.Rand
	log     *zap.Logger
	metrics *metrics.Metrics

	towerTop    int
	inactiveTop int
	drop        float64
	settle      float64
	built       bool
}

// New creates an unbuilt tower.
func New(opts Options) (*Tower, error) {
	if opts.Archetype == nil {
		return nil, errors.New("tower: archetype is required")
	}
	if opts.World == nil {
		return nil, errors.New("tower: world is required")
	}
	if opts.Rows <= 0 {
		return nil, fmt.Errorf("tower: rows must be positive, got %d", opts.Rows)
	}
	active := opts.ActiveRows
	if active <= 0 {
		active = DefaultActiveRows
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	a := opts.Archetype
	t := &Tower{
		arch:    a,
		rows:    opts.Rows,
		cols:    a.Cols,
		blockH:  a.BlockHeight,
		center:  opts.Anchor.Add(a.Center),
		grid:    NewGrid(opts.Rows, a.Cols),
		world:   opts.World,
		rng:     rng,
		log:     logger.OrNamed(opts.Logger, "tower"),
		metrics: opts.Metrics,
		scene: physics.Classifier{
			Foundation: opts.Scene.Foundation,
			Surface:    opts.Scene.Surface,
			Bottom:     opts.Scene.Bottom,
			Cols:       a.Cols,
		},
		towerTop:    opts.Rows - 1,
		inactiveTop: opts.Rows - active - 1,
		drop:        a.DropThreshold,
		settle:      a.SettleThreshold,
	}
	if opts.DropThreshold > 0 {
		t.drop = opts.DropThreshold
	}
	if opts.SettleThreshold > 0 {
		t.settle = opts.SettleThreshold
	}
	return t, nil
}

// Archetype returns the tower's shape family.
func (t *Tower) Archetype() *layout.Archetype { return t.arch }

// Rows returns the number of courses.
func (t *Tower) Rows() int { return t.rows }

// Cols returns the widest row.
func (t *Tower) Cols() int { return t.cols }

// BlockHeight returns the height of one course.
func (t *Tower) BlockHeight() float64 { return t.blockH }

// Center returns the tower origin in world space.
func (t *Tower) Center() math.Vec3 { return t.center }

// Heading returns the accumulated Spin angle in degrees.
func (t *Tower) Heading() float64 { return t.heading }

// TowerTop returns the highest row considered standing.
func (t *Tower) TowerTop() int { return t.towerTop }

// InactiveTop returns the highest row still inactive, or -1.
func (t *Tower) InactiveTop() int { return t.inactiveTop }

// Grid exposes the block grid.
func (t *Tower) Grid() *Grid { return t.grid }

// Scene returns the contact classifier for this tower's bodies.
func (t *Tower) Scene() physics.Classifier { return t.scene }

// Rand returns the tower's random source.
func (t *Tower) Rand() *rand.Rand { return t.rng }

// Live returns the number of blocks still attached.
func (t *Tower) Live() int { return t.grid.Live() }

// Standing counts live blocks that have not reached the water.
func (t *Tower) Standing() int {
	n := 0
	for _, b := range t.grid.Blocks() {
		if b.State != InWater {
			n++
		}
	}
	return n
}

// Block returns the live block with the given body name, or nil.
func (t *Tower) Block(tag string) *Block {
	row, col, ok := physics.DecodeTag(tag, t.cols)
	if !ok {
		return nil
	}
	b := t.grid.At(row, col)
	if b == nil || b.Tag != tag {
		return nil
	}
	return b
}

// Build generates the layout and attaches every block to the world. Rows up
// to InactiveTop start gray and static, the rest get random colors.
func (t *Tower) Build() error {
	if t.built {
		return ErrBuilt
	}
	t.built = true

	for _, row := range layout.Generate(t.arch, t.rows) {
		for _, s := range row {
			b := &Block{
				Row:     s.Row,
				Col:     s.Col,
				Tag:     physics.EncodeTag(s.Row, s.Col, t.cols),
				Shape:   s.Shape,
				Pos:     math.RotateAbout(t.center.Add(s.Local), t.center, t.heading),
				Heading: s.Heading + t.heading,
			}
			b.Origin = b.Pos
			t.attrib(b)

			body := &physics.Body{
				Name:         b.Tag,
				Kind:         physics.BodySolid,
				Shape:        bodyShape(s.Shape.Kind),
				Size:         s.Shape.Size,
				Pos:          b.Pos,
				Heading:      b.Heading,
				Mass:         b.Mass,
				Mask:         physics.MaskBlock,
				Deactivation: b.State == Inactive,
			}
			if err := t.world.Attach(body); err != nil {
				return fmt.Errorf("build %s tower: %w", t.arch.Name, err)
			}
			t.grid.Set(b)
		}
	}

	t.metrics.SetLive(t.grid.Live())
	t.log.Info("tower built",
		zap.String("archetype", t.arch.Name),
		zap.Int("rows", t.rows),
		zap.Int("blocks", t.grid.Live()),
		zap.Int("inactive_top", t.inactiveTop))
	return nil
}

func (t *Tower) attrib(b *Block) {
	if b.Row <= t.inactiveTop {
		b.Color, b.State, b.Mass = Gray, Inactive, 0
		return
	}
	b.Color, b.State, b.Mass = RandomColor(t.rng), Active, 1
}

func bodyShape(k layout.ShapeKind) physics.ShapeKind {
	switch k {
	case layout.ShapeCylinder:
		return physics.ShapeCylinder
	case layout.ShapePrism:
		return physics.ShapePrism
	default:
		return physics.ShapeBox
	}
}

// Activate turns inactive rows playable, one row for each row the standing
// top has sunk below TowerTop. It returns the number of rows activated.
func (t *Tower) Activate() int {
	if t.inactiveTop < 0 {
		return 0
	}

	top := t.topRow()
	n := 0
	for t.towerTop > top && t.inactiveTop >= 0 {
		t.activateRow(t.inactiveTop)
		t.inactiveTop--
		t.towerTop--
		n++
	}

	if n > 0 {
		t.metrics.RowsActivated(n)
		t.log.Info("rows activated",
			zap.Int("count", n),
			zap.Int("tower_top", t.towerTop),
			zap.Int("inactive_top", t.inactiveTop))
	}
	return n
}

// topRow returns the course nearest to the highest block the world still
// simulates, or -1 when there is none.
func (t *Tower) topRow() int {
	best := gomath.Inf(-1)
	for _, b := range t.grid.Blocks() {
		if b.State == Inactive || !t.world.IsActive(b.Tag) {
			continue
		}
		z := b.Pos.Z
		if pos, _, ok := t.world.Pose(b.Tag); ok {
			z = pos.Z
		}
		best = gomath.Max(best, z)
	}
	if gomath.IsInf(best, -1) {
		return -1
	}
	return t.rowAt(best)
}

// rowAt maps a world height to the nearest course index.
func (t *Tower) rowAt(z float64) int {
	return int(gomath.Floor((z-t.center.Z)/t.blockH+0.5)) - 1
}

func (t *Tower) activateRow(row int) {
	for _, b := range t.grid.Row(row) {
		if b.State != Inactive {
			continue
		}
		b.Color = RandomColor(t.rng)
		b.State = Active
		b.Mass = 1
		b.Origin = b.Pos
		t.world.SetMass(b.Tag, 1)
		t.world.SetDeactivation(b.Tag, false)
	}
}

// GetNeighbors flood-fills from start across touching active blocks of the
// given color. acc is extended and doubles as the visited set, so cyclic
// contact graphs terminate. start itself is always appended.
func (t *Tower) GetNeighbors(start *Block, color Color, acc []*Block) []*Block {
	seen := make(map[*Block]bool, len(acc))
	for _, b := range acc {
		seen[b] = true
	}
	return t.flood(start, color, acc, seen)
}

func (t *Tower) flood(b *Block, color Color, acc []*Block, seen map[*Block]bool) []*Block {
	acc = append(acc, b)
	seen[b] = true
	for _, c := range t.world.ContactTest(b.Tag) {
		other := c.Other(b.Tag)
		if t.scene.Classify(other) != physics.ContactBlock {
			continue
		}
		nb := t.Block(other)
		if nb == nil || seen[nb] || !nb.Clickable() || nb.Color != color {
			continue
		}
		acc = t.flood(nb, color, acc, seen)
	}
	return acc
}

// Neighbors returns the same-color connected group of an active block,
// including the block itself.
func (t *Tower) Neighbors(start *Block) []*Block {
	if start == nil || !start.Clickable() {
		return nil
	}
	return t.GetNeighbors(start, start.Color, nil)
}

// JudgeColors returns the active blocks whose color satisfies pred.
func (t *Tower) JudgeColors(pred func(Color) bool) []*Block {
	var out []*Block
	for _, b := range t.grid.Blocks() {
		if b.Clickable() && pred(b.Color) {
			out = append(out, b)
		}
	}
	return out
}

// CleanUp detaches a block after a match or hit. Removing a block twice is
// a no-op that returns false.
func (t *Tower) CleanUp(b *Block) bool {
	return t.remove(b, metrics.CauseMatch)
}

func (t *Tower) remove(b *Block, cause string) bool {
	if b == nil || b.State == Removed || t.grid.At(b.Row, b.Col) != b {
		return false
	}
	t.world.Remove(b.Tag)
	t.grid.Clear(b.Row, b.Col)
	b.State = Removed

	t.metrics.BlocksRemoved(cause, 1)
	t.metrics.SetLive(t.grid.Live())
	t.log.Debug("block removed", zap.String("tag", b.Tag), zap.String("cause", cause))
	return true
}

// RemoveAll detaches every remaining block and returns how many there were.
func (t *Tower) RemoveAll() int {
	n := 0
	for _, b := range t.grid.Blocks() {
		if t.remove(b, metrics.CauseReset) {
			n++
		}
	}
	return n
}

// Rotate returns where target ends up after turning deg degrees about the
// tower's vertical axis. Cameras and balls orbit the tower this way.
func (t *Tower) Rotate(target math.Vec3, deg float64) math.Vec3 {
	return math.RotateAbout(target, t.center, deg)
}

// Spin turns the tower itself by deg degrees, moving every live block.
func (t *Tower) Spin(deg float64) {
	if deg == 0 {
		return
	}
	for _, b := range t.grid.Blocks() {
		pos, heading := b.Pos, b.Heading
		if p, h, ok := t.world.Pose(b.Tag); ok {
			pos, heading = p, h
		}
		b.Pos = t.Rotate(pos, deg)
		b.Heading = math.NormalizeDeg(heading + deg)
		b.Origin = t.Rotate(b.Origin, deg)
		t.world.SetPose(b.Tag, b.Pos, b.Heading)
	}
	t.heading = math.NormalizeDeg(t.heading + deg)
}

// Sync copies simulated poses into the live, non-inactive blocks.
func (t *Tower) Sync() {
	for _, b := range t.grid.Blocks() {
		if b.State == Inactive {
			continue
		}
		if pos, heading, ok := t.world.Pose(b.Tag); ok {
			b.Pos, b.Heading = pos, heading
		}
	}
}
