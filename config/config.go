// Package config holds the game's runtime settings. Values come from
// FIREBATTLE_* environment variables first and command-line flags second.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Debug     bool   `env:"FIREBATTLE_DEBUG"     envDefault:"false"`
	LogLevel  string `env:"FIREBATTLE_LOG_LEVEL" envDefault:"info"`
	Seed      uint64 `env:"FIREBATTLE_SEED"      envDefault:"0"`
	Trainer   string `env:"FIREBATTLE_TRAINER"`
	Area      string `env:"FIREBATTLE_AREA"       envDefault:"route1"`
	PrefabDir string `env:"FIREBATTLE_PREFAB_DIR" envDefault:"prefabs"`
	Watch     bool   `env:"FIREBATTLE_WATCH"      envDefault:"false"`

	SampleRate int     `env:"FIREBATTLE_SAMPLE_RATE" envDefault:"44100"`
	Mute       bool    `env:"FIREBATTLE_MUTE"        envDefault:"false"`
	TextSpeed  float64 `env:"FIREBATTLE_TEXT_SPEED"  envDefault:"0"`
	Scale      int     `env:"FIREBATTLE_SCALE"       envDefault:"3"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// RegisterFlags binds flags to cfg. The current values become the flag
// defaults, so environment settings survive unless a flag overrides them.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.Debug, "debug", c.Debug, "enable debug keys and debug logging")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (trace, debug, info, warn, error)")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "rng seed, 0 picks one from the clock")
	fs.StringVar(&c.Trainer, "trainer", c.Trainer, "trainer npc to fight instead of a wild encounter")
	fs.StringVar(&c.Area, "area", c.Area, "area to roll wild encounters from")
	fs.StringVar(&c.PrefabDir, "prefabs", c.PrefabDir, "on-disk prefab directory")
	fs.BoolVar(&c.Watch, "watch", c.Watch, "reload prefabs when they change on disk")
	fs.IntVar(&c.SampleRate, "sample-rate", c.SampleRate, "audio sample rate")
	fs.BoolVar(&c.Mute, "mute", c.Mute, "disable audio")
	fs.Float64Var(&c.TextSpeed, "text-speed", c.TextSpeed, "dialogue speed in characters per second, 0 uses battle.yaml")
	fs.IntVar(&c.Scale, "scale", c.Scale, "window scale")
}

// Load parses the environment and then args.
func Load(name string, args []string) (Config, error) {
	cfg, err := ParseEnv()
	if err != nil {
		return Config{}, err
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.Scale < 1 {
		cfg.Scale = 1
	}
	return cfg, nil
}

// ResolvedSeed is Seed, or a clock-derived seed when Seed is zero.
func (c Config) ResolvedSeed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}

// Level parses LogLevel; debug mode never logs above debug.
func (c Config) Level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(c.LogLevel)))
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("config: log level %q: %w", c.LogLevel, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if c.Debug && lvl > zerolog.DebugLevel {
		lvl = zerolog.DebugLevel
	}
	return lvl, nil
}

// SetupLogging configures the global zerolog logger. Output is a console
// writer when w is a terminal-facing stream such as os.Stderr.
func SetupLogging(c Config, w io.Writer) error {
	lvl, err := c.Level()
	zerolog.SetGlobalLevel(lvl)
	if w == nil {
		w = os.Stderr
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).With().Timestamp().Logger()
	return err
}
