// Package main runs headless tower-crash rounds with an automatic player.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/Faultbox/tower-crash/internal/config"
	"github.com/Faultbox/tower-crash/internal/game"
	"github.com/Faultbox/tower-crash/internal/layout"
	"github.com/Faultbox/tower-crash/internal/logger"
	"github.com/Faultbox/tower-crash/internal/metrics"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	code := play(cfg)
	logger.Sync()
	os.Exit(code)
}

// play runs the configured rounds and returns the process exit code. Deferred
// cleanup runs before main exits.
func play(cfg *config.Config) int {
	if cfg.Tower.Seed == 0 {
		cfg.Tower.Seed = time.Now().UnixNano()
	}

	logger.Info("=== Tower Crash ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m := metrics.New(reg)
	if cfg.Metrics.Addr != "" {
		srv := metrics.Serve(cfg.Metrics.Addr, reg, nil)
		defer srv.Close()
	}

	rng := rand.New(rand.NewSource(cfg.Tower.Seed))
	s, err := game.NewSession(game.Options{
		Config:   cfg,
		Registry: layout.NewRegistry(),
		Metrics:  m,
		Rand:     rng,
	})
	if err != nil {
		logger.Error("failed to create session", zap.Error(err))
		return 1
	}
	defer s.Close()

	p := game.NewAutoPlayer(rng)
	for round := 1; ; round++ {
		if err := run(s, cfg, p); err != nil {
			logger.Error("round error", zap.String("round", s.ID), zap.Error(err))
			return 1
		}
		logger.Info("round closed normally",
			zap.String("round", s.ID),
			zap.Int64("seed", cfg.Tower.Seed),
			zap.String("result", s.Result()),
			zap.Int("removed", s.Removed()),
			zap.Int("frames", s.Frames()),
		)
		if round >= cfg.Game.Rounds {
			return 0
		}
		if err := s.Restart(); err != nil {
			logger.Error("failed to start round", zap.Error(err))
			return 1
		}
	}
}

// run steps the round until it ends and its blocks settle, or until the
// frame limit.
func run(s *game.Session, cfg *config.Config, p *game.AutoPlayer) error {
	dt := cfg.FrameTime()
	tail := cfg.Game.FPS // frames to let blocks sink after the round ends
	for i := 0; i < cfg.Game.Frames; i++ {
		if err := s.Frame(dt, p.Next(s)); err != nil {
			return err
		}
		if s.Over() {
			if tail == 0 {
				break
			}
			tail--
		}
	}
	return nil
}
