// Package game runs rounds of tower-crash: it owns the physics world, the
// tower, the ball dispenser and the per-frame update order.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/tower-crash/internal/config"
	"github.com/Faultbox/tower-crash/internal/layout"
	"github.com/Faultbox/tower-crash/internal/logger"
	"github.com/Faultbox/tower-crash/internal/match"
	"github.com/Faultbox/tower-crash/internal/metrics"
	"github.com/Faultbox/tower-crash/internal/tower"
	"github.com/Faultbox/tower-crash/pkg/math"
)

// Round results.
const (
	ResultCleared = "cleared"
	ResultFailed  = "failed"
)

// Options configures NewSession.
type Options struct {
	Config   *config.Config
	Registry *layout.Registry
	World    World         // nil creates the built-in engine
	Effects  tower.Effects // nil logs effects
	Metrics  *metrics.Metrics
	Logger   *zap.Logger
	Rand     *rand.Rand // nil seeds from Config.Tower.Seed
}

// Session runs rounds on one scene. Each round gets a fresh tower and id.
type Session struct {
	ID string

	cfg       *config.Config
	arch      *layout.Archetype
	scene     tower.Scene
	world     World
	tower     *tower.Tower
	dispenser *match.Dispenser
	camera    *Camera
	states    *Manager
	fx        tower.Effects
	metrics   *metrics.Metrics
	log       *zap.Logger // tagged with the round id
	baseLog   *zap.Logger
	rng       *rand.Rand

	input      Input
	drag       drag
	ball       match.Ball
	ballPos    math.Vec3
	throw      *Throw
	throwsLeft int

	frame     int
	clock     float64
	nextCheck float64
	removed   int
	over      bool
	result    string
}

// NewSession builds the scene and the first round's tower and deals the
// first ball.
func NewSession(opts Options) (*Session, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Registry == nil {
		return nil, errors.New("game: registry is required")
	}
	arch, err := opts.Registry.Lookup(cfg.Tower.Archetype)
	if err != nil {
		return nil, err
	}

	log := logger.OrNamed(opts.Logger, "game")
	rng := opts.Rand
	if rng == nil {
		seed := cfg.Tower.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	world := opts.World
	if world == nil {
		world = NewWorld(cfg.Physics)
	}
	fx := opts.Effects
	if fx == nil {
		fx = NewLogEffects(log)
	}

	scene, err := BuildScene(world, cfg.Physics, arch, math.Vec3{})
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:       cfg,
		arch:      arch,
		scene:     scene,
		world:     world,
		dispenser: match.NewDispenser(rng, cfg.Game.MultiChance, cfg.Game.TwoToneChance, cfg.Game.TwoTonePerRound),
		states:    NewManager(),
		fx:        fx,
		metrics:   opts.Metrics,
		baseLog:   log,
		rng:       rng,
	}
	if err := s.startRound(); err != nil {
		return nil, err
	}
	return s, nil
}

// startRound builds a fresh tower and resets the per-round state.
func (s *Session) startRound() error {
	cfg := s.cfg
	s.ID = uuid.NewString()
	s.log = s.baseLog.With(zap.String("round", s.ID))

	t, err := tower.New(tower.Options{
		Archetype:       s.arch,
		Rows:            cfg.Tower.Stories,
		ActiveRows:      cfg.Tower.ActiveRows,
		World:           s.world,
		Scene:           s.scene,
		Rand:            s.rng,
		Logger:          s.log.Named("tower"),
		Metrics:         s.metrics,
		DropThreshold:   cfg.Tower.DropThreshold,
		SettleThreshold: cfg.Tower.SettleThreshold,
	})
	if err != nil {
		return err
	}
	if err := t.Build(); err != nil {
		return err
	}

	center := t.Center()
	topZ := center.Z + t.BlockHeight()*float64(t.Rows())
	s.tower = t
	s.camera = NewCamera(center, topZ, cfg.Game.CameraDistance, cfg.Game.CameraElevation, cfg.Game.CameraLowestZ, cfg.Game.DescentSpeed)
	s.dispenser.Reset()
	s.drag.cancel()
	s.input = Input{}
	s.throw = nil
	s.throwsLeft = s.arch.Level
	s.frame = 0
	s.clock = 0
	s.nextCheck = cfg.Game.CheckInterval.Seconds()
	s.removed = 0
	s.over = false
	s.result = ""

	s.ball = s.dispenser.Next(t)
	s.ballPos = s.camera.BallRest()
	s.states.Change(&playState{s: s})
	s.metrics.SetLive(t.Live())

	s.log.Info("Round started",
		zap.String("archetype", s.arch.Name),
		zap.Int("rows", t.Rows()),
		zap.Int("blocks", t.Live()),
		zap.Int("throws", s.throwsLeft),
	)
	return nil
}

// Restart tears down the current tower and starts a new round on the same
// scene.
func (s *Session) Restart() error {
	s.Close()
	return s.startRound()
}

// Close detaches every block still in the world and returns how many there
// were. Calling it again is a no-op.
func (s *Session) Close() int {
	n := s.tower.RemoveAll()
	if n > 0 {
		s.log.Debug("Tower destroyed", zap.Int("blocks", n))
	}
	s.metrics.SetLive(s.tower.Live())
	return n
}

// Frame advances the round by dt seconds with this frame's input.
func (s *Session) Frame(dt float64, in Input) error {
	s.input = in
	s.clock += dt
	if err := s.states.Update(dt); err != nil {
		return fmt.Errorf("frame %d: %w", s.frame, err)
	}
	s.world.Step(dt)
	s.metrics.SetLive(s.tower.Live())
	s.frame++
	return nil
}

// Tower returns the round's tower.
func (s *Session) Tower() *tower.Tower { return s.tower }

// Camera returns the view.
func (s *Session) Camera() *Camera { return s.camera }

// Ball returns the ball waiting to be thrown or in flight.
func (s *Session) Ball() match.Ball { return s.ball }

// BallPos returns the ball's current position.
func (s *Session) BallPos() math.Vec3 { return s.ballPos }

// Throwing reports whether a ball is in flight.
func (s *Session) Throwing() bool { return s.throw != nil }

// ThrowsLeft returns the throws remaining this round.
func (s *Session) ThrowsLeft() int { return s.throwsLeft }

// Removed returns the number of blocks removed by matches.
func (s *Session) Removed() int { return s.removed }

// Over reports whether the round has ended.
func (s *Session) Over() bool { return s.over }

// Result returns ResultCleared or ResultFailed once the round is over.
func (s *Session) Result() string { return s.result }

// Frames returns the number of frames run.
func (s *Session) Frames() int { return s.frame }

// resolveContacts reclassifies blocks against the water and the sea bottom.
func (s *Session) resolveContacts() {
	t := s.tower
	t.Sync()
	scene := t.Scene()
	t.Floating(s.world.ContactTest(scene.Surface))
	t.Sink(s.world.ContactTest(scene.Bottom))
}

// periodicCheck runs drop detection and row activation on the check interval.
func (s *Session) periodicCheck() {
	if s.clock+1e-9 < s.nextCheck {
		return
	}
	s.nextCheck += s.cfg.Game.CheckInterval.Seconds()

	s.tower.DetectDrops()
	if n := s.tower.Activate(); n > 0 {
		s.camera.Descend(float64(n) * s.tower.BlockHeight())
		s.log.Debug("Rows activated", zap.Int("rows", n), zap.Int("inactive_top", s.tower.InactiveTop()))
	}
}

// control applies the drag rotation and the camera descent.
func (s *Session) control(dt float64) {
	g := s.cfg.Game
	if s.input.Released {
		s.drag.cancel()
	}
	if deg := s.drag.angle(s.input, g.DragDelayFrames, g.RotateSpeed, dt); deg != 0 {
		if g.SpinTower {
			s.tower.Spin(deg)
		} else {
			s.camera.Pos = s.tower.Rotate(s.camera.Pos, deg)
		}
	}
	s.camera.Update(dt)
	if s.throw == nil {
		s.ballPos = s.camera.BallRest()
	}
}

// click starts a throw at an active block or arms the drag on a miss.
func (s *Session) click() {
	if !s.input.Pressed || s.throw != nil || s.throwsLeft <= 0 {
		return
	}
	res := s.tower.Pick(s.input.From, s.input.To)
	switch res.Outcome {
	case tower.PickNone:
		s.drag.arm()
	case tower.PickIgnored:
		s.log.Debug("Click ignored", zap.String("node", res.Node))
	case tower.PickBlock:
		shot := match.Aim(s.ball, res.Block, res.Point, s.rng)
		s.throw = NewThrow(shot, s.ballPos, s.cfg.Game.ArcHeight, s.cfg.Game.ThrowDuration.Seconds())
		s.throwsLeft--
		s.log.Debug("Throw",
			zap.Stringer("ball", s.ball.Kind),
			zap.Stringer("color", s.ball.Color),
			zap.String("target", res.Block.Tag),
		)
	}
}

// advanceThrow flies the ball and resolves the match when it lands.
func (s *Session) advanceThrow(dt float64) {
	if s.throw == nil {
		return
	}
	pos, done := s.throw.Advance(dt)
	s.ballPos = pos
	if !done {
		return
	}

	res := match.Resolve(s.tower, s.throw.Shot)
	n := match.Apply(s.tower, res, s.fx)
	s.removed += n
	outcome := "miss"
	if n > 0 {
		outcome = "hit"
	}
	s.metrics.Throw(s.throw.Shot.Ball.Kind.String(), outcome)
	s.log.Debug("Throw landed", zap.String("outcome", outcome), zap.Int("removed", n))

	s.throw = nil
	s.ball = s.dispenser.Next(s.tower)
	s.ballPos = s.camera.BallRest()
}

// finished reports whether the round should end this frame.
func (s *Session) finished() bool {
	if s.throw != nil {
		return false
	}
	return s.throwsLeft <= 0 || s.tower.Standing() == 0
}

type playState struct {
	s *Session
}

func (p *playState) Enter() error { return nil }
func (p *playState) Exit() error { return nil }

func (p *playState) Update(dt float64) error {
	s := p.s
	s.resolveContacts()
	s.periodicCheck()
	s.control(dt)
	s.click()
	s.advanceThrow(dt)
	if s.finished() {
		s.finish()
		s.states.Change(&overState{s: s})
	}
	return nil
}

// finish sweeps the foundation and records the result. The round reports
// Over only after this has run.
func (s *Session) finish() {
	swept := s.tower.ClearFoundation(s.fx)
	s.result = ResultFailed
	if s.tower.Standing() == 0 {
		s.result = ResultCleared
	}
	s.over = true
	s.metrics.RoundFinished(s.result)
	s.log.Info("Round over",
		zap.String("result", s.result),
		zap.Int("removed", s.removed),
		zap.Int("swept", swept),
		zap.Int("throws_left", s.throwsLeft),
		zap.Int("frames", s.frame),
	)
}

type overState struct {
	s *Session
}

func (o *overState) Enter() error { return nil }
func (o *overState) Exit() error { return nil }

// Update keeps blocks sinking after the round ends.
func (o *overState) Update(float64) error {
	o.s.resolveContacts()
	return nil
}
