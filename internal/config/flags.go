package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagArchetype   = flag.String("archetype", "", "Tower archetype (twin, thin, cylinder, triple, cubic, hshaped, cross)")
	flagStories     = flag.Int("stories", 0, "Number of tower rows")
	flagSeed        = flag.Int64("seed", 0, "Random seed for block colors")
	flagFrames      = flag.Int("frames", 0, "Frames to simulate per round")
	flagRounds      = flag.Int("rounds", 0, "Rounds to play")
	flagLogFile     = flag.String("log-file", "", "Write logs to this file as well")
	flagMetricsAddr = flag.String("metrics-addr", "", "Serve Prometheus metrics on this address")
	flagSpin        = flag.Bool("spin", false, "Rotate the tower instead of orbiting the camera")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagArchetype != "" {
		cfg.Tower.Archetype = *flagArchetype
	}
	if *flagStories > 0 {
		cfg.Tower.Stories = *flagStories
	}
	if *flagSeed != 0 {
		cfg.Tower.Seed = *flagSeed
	}
	if *flagFrames > 0 {
		cfg.Game.Frames = *flagFrames
	}
	if *flagRounds > 0 {
		cfg.Game.Rounds = *flagRounds
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagMetricsAddr != "" {
		cfg.Metrics.Addr = *flagMetricsAddr
	}
	if *flagSpin {
		cfg.Game.SpinTower = true
	}
}
