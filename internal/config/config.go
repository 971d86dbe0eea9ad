// Package config handles tower-crash configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all settings.
type Config struct {
	Tower   TowerConfig   `yaml:"tower"`
	Physics PhysicsConfig `yaml:"physics"`
	Game    GameConfig    `yaml:"game"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// TowerConfig selects and sizes the tower for a round.
type TowerConfig struct {
	Archetype  string `yaml:"archetype"`
	Stories    int    `yaml:"stories"`
	ActiveRows int    `yaml:"active_rows"` // rows playable from the start
	Seed       int64  `yaml:"seed"`        // 0 picks a time-based seed

	// Zero keeps the archetype's own threshold.
	DropThreshold   float64 `yaml:"drop_threshold"`
	SettleThreshold float64 `yaml:"settle_threshold"`
}

// PhysicsConfig tunes the built-in physics world and scene planes.
type PhysicsConfig struct {
	Gravity          float64       `yaml:"gravity"`
	SurfaceZ         float64       `yaml:"surface_z"`
	BottomZ          float64       `yaml:"bottom_z"`
	SinkSpeed        float64       `yaml:"sink_speed"`
	TipSpeed         float64       `yaml:"tip_speed"`
	ContactTolerance float64       `yaml:"contact_tolerance"`
	SleepAfter       time.Duration `yaml:"sleep_after"`
	FoundationRadius float64       `yaml:"foundation_radius"`
}

// GameConfig holds session pacing and control settings.
type GameConfig struct {
	CheckInterval   time.Duration `yaml:"check_interval"`
	DragDelayFrames int           `yaml:"drag_delay_frames"`
	RotateSpeed     float64       `yaml:"rotate_speed"`  // degrees per second
	DescentSpeed    float64       `yaml:"descent_speed"` // units per second
	ThrowDuration   time.Duration `yaml:"throw_duration"`
	ArcHeight       float64       `yaml:"arc_height"`
	MultiChance     float64       `yaml:"multi_chance"`
	TwoToneChance   float64       `yaml:"twotone_chance"`
	TwoTonePerRound int           `yaml:"twotone_per_round"`
	SpinTower       bool          `yaml:"spin_tower"`
	CameraDistance  float64       `yaml:"camera_distance"`
	CameraElevation float64       `yaml:"camera_elevation"`
	CameraLowestZ   float64       `yaml:"camera_lowest_z"`
	Frames          int           `yaml:"frames"`
	FPS             int           `yaml:"fps"`
	Rounds          int           `yaml:"rounds"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Tower: TowerConfig{
			Archetype:  "thin",
			Stories:    16,
			ActiveRows: 8,
		},
		Physics: PhysicsConfig{
			Gravity:          9.81,
			SurfaceZ:         0,
			BottomZ:          -10,
			SinkSpeed:        0.5,
			TipSpeed:         0.3,
			ContactTolerance: 0.002,
			SleepAfter:       500 * time.Millisecond,
			FoundationRadius: 0.6,
		},
		Game: GameConfig{
			CheckInterval:   200 * time.Millisecond,
			DragDelayFrames: 5,
			RotateSpeed:     90,
			DescentSpeed:    1.5,
			ThrowDuration:   time.Second,
			ArcHeight:       1,
			MultiChance:     0.1,
			TwoToneChance:   0.1,
			TwoTonePerRound: 1,
			CameraDistance:  4,
			CameraElevation: 1,
			CameraLowestZ:   1.5,
			Frames:          3600,
			FPS:             60,
			Rounds:          1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first setting that cannot drive a round.
func (c *Config) Validate() error {
	switch {
	case c.Tower.Archetype == "":
		return fmt.Errorf("%w: tower.archetype is empty", ErrInvalid)
	case c.Tower.Stories <= 0:
		return fmt.Errorf("%w: tower.stories must be positive, got %d", ErrInvalid, c.Tower.Stories)
	case c.Tower.ActiveRows < 0:
		return fmt.Errorf("%w: tower.active_rows must not be negative, got %d", ErrInvalid, c.Tower.ActiveRows)
	case c.Physics.SurfaceZ <= c.Physics.BottomZ:
		return fmt.Errorf("%w: physics.surface_z %.2f must be above bottom_z %.2f", ErrInvalid, c.Physics.SurfaceZ, c.Physics.BottomZ)
	case c.Physics.FoundationRadius <= 0:
		return fmt.Errorf("%w: physics.foundation_radius must be positive", ErrInvalid)
	case c.Game.CheckInterval <= 0:
		return fmt.Errorf("%w: game.check_interval must be positive", ErrInvalid)
	case c.Game.ThrowDuration <= 0:
		return fmt.Errorf("%w: game.throw_duration must be positive", ErrInvalid)
	case c.Game.FPS <= 0:
		return fmt.Errorf("%w: game.fps must be positive", ErrInvalid)
	case c.Game.Rounds <= 0:
		return fmt.Errorf("%w: game.rounds must be positive", ErrInvalid)
	case c.Game.MultiChance < 0 || c.Game.TwoToneChance < 0 || c.Game.MultiChance+c.Game.TwoToneChance > 1:
		return fmt.Errorf("%w: game ball chances must be non-negative and sum to at most 1", ErrInvalid)
	}
	return nil
}

// FrameTime is the simulated duration of one frame.
func (c *Config) FrameTime() float64 {
	return 1 / float64(c.Game.FPS)
}
