// Package config assembles host settings from flags, ISING_* environment
// variables, an optional config file and a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"ising-mc/internal/ising"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "ISING"

// Output selects where samples, frames and charts are written.
type Output struct {
	CSV        string
	DB         string
	FramesDir  string
	FrameEvery int
	FrameScale int
	Chart      string
}

// GUI holds window settings for the interactive viewer.
type GUI struct {
	Scale         int
	TPS           int
	StepsPerFrame int
}

// Settings is everything a host needs to start.
type Settings struct {
	Sim    ising.Config
	Output Output
	GUI    GUI

	MetricsAddr   string
	LogLevel      log.Level
	MaxSteps      int
	ProgressEvery int
	Verify        bool
}

// NewFlagSet declares every setting as a flag. Defaults come from
// ising.DefaultConfig.
func NewFlagSet(name string) *pflag.FlagSet {
	d := ising.DefaultConfig()
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.SortFlags = false

	flags.String("config", "", "config file (yaml, toml or json)")
	flags.String("env-file", ".env", "dotenv file loaded before reading ISING_* variables")

	flags.Int("w", d.Width, "lattice width")
	flags.Int("h", d.Height, "lattice height")
	flags.Int64("seed", d.Seed, "random seed")
	flags.Bool("random", d.Randomize, "random initial spins (false starts all up)")
	flags.Float64("temperature", d.Temperature, "initial temperature")
	flags.Float64("field", d.Field, "initial external field")
	flags.String("mode", d.Mode.String(), "schedule: none, tsweep, tloop, fsweep or floop")
	flags.Float64("target", d.Target, "schedule target (step budget in mode none)")
	flags.Float64("increment", d.Increment, "schedule increment per block")
	flags.Int("block", d.BlockSize, "steps per recorded sample")
	flags.Int("trials", 0, "trials per step (0 means w*h)")

	flags.String("out", "", "CSV file for samples")
	flags.String("db", "", "SQLite database for samples")
	flags.String("frames", "", "directory for PNG snapshots")
	flags.Int("frame-every", 0, "steps between snapshots")
	flags.Int("frame-scale", 2, "pixels per cell in snapshots")
	flags.String("chart", "", "PNG chart of the recorded samples")

	flags.Int("scale", 4, "pixels per cell in the window")
	flags.Int("tps", 30, "window ticks per second")
	flags.Int("steps-per-frame", 1, "engine steps per window tick")

	flags.String("metrics-addr", "", "serve Prometheus metrics on this address")
	flags.String("log-level", "info", "debug, info, warn or error")
	flags.Int("max-steps", 0, "stop after this many steps (0 means no limit)")
	flags.Int("progress-every", 0, "log progress every n steps at debug level")
	flags.Bool("verify", false, "recompute the exchange field after every step")
	return flags
}

// Load parses args and resolves every setting. Flags override the
// environment, which overrides the config file.
func Load(name string, args []string) (Settings, error) {
	flags := NewFlagSet(name)
	if err := flags.Parse(args); err != nil {
		return Settings{}, err
	}
	return FromFlags(flags)
}

// FromFlags resolves settings from an already parsed flag set.
func FromFlags(flags *pflag.FlagSet) (Settings, error) {
	if path, _ := flags.GetString("env-file"); path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("load env file %s: %w", path, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return Settings{}, fmt.Errorf("bind flags: %w", err)
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (Settings, error) {
	mode, err := ising.ParseMode(v.GetString("mode"))
	if err != nil {
		return Settings{}, &ising.ConfigError{Field: "mode", Value: v.GetString("mode"), Err: err}
	}
	level, err := log.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return Settings{}, fmt.Errorf("log-level: %w", err)
	}

	s := Settings{
		Sim: ising.Config{
			Width:         v.GetInt("w"),
			Height:        v.GetInt("h"),
			Seed:          v.GetInt64("seed"),
			Randomize:     v.GetBool("random"),
			Temperature:   v.GetFloat64("temperature"),
			Field:         v.GetFloat64("field"),
			Mode:          mode,
			Target:        v.GetFloat64("target"),
			Increment:     v.GetFloat64("increment"),
			BlockSize:     v.GetInt("block"),
			TrialsPerStep: v.GetInt("trials"),
		},
		Output: Output{
			CSV:        v.GetString("out"),
			DB:         v.GetString("db"),
			FramesDir:  v.GetString("frames"),
			FrameEvery: v.GetInt("frame-every"),
			FrameScale: v.GetInt("frame-scale"),
			Chart:      v.GetString("chart"),
		},
		GUI: GUI{
			Scale:         max(v.GetInt("scale"), 1),
			TPS:           max(v.GetInt("tps"), 1),
			StepsPerFrame: max(v.GetInt("steps-per-frame"), 1),
		},
		MetricsAddr:   v.GetString("metrics-addr"),
		LogLevel:      level,
		MaxSteps:      v.GetInt("max-steps"),
		ProgressEvery: v.GetInt("progress-every"),
		Verify:        v.GetBool("verify"),
	}
	if err := s.Sim.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}
