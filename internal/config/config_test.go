package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ising-mc/internal/ising"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	s, err := Load("test", nil)
	require.NoError(t, err)
	assert.Equal(t, ising.DefaultConfig(), s.Sim)
	assert.Equal(t, log.InfoLevel, s.LogLevel)
	assert.Equal(t, GUI{Scale: 4, TPS: 30, StepsPerFrame: 1}, s.GUI)
	assert.Equal(t, 2, s.Output.FrameScale)
	assert.Empty(t, s.Output.CSV)
	assert.Empty(t, s.MetricsAddr)
}

func TestLoadFlags(t *testing.T) {
	s, err := Load("test", []string{
		"--w", "16", "--h", "8",
		"--seed", "99", "--random=false",
		"--temperature", "1.5", "--field", "1",
		"--mode", "FLOOP", "--target", "-1", "--increment", "-0.25",
		"--block", "10", "--trials", "32",
		"--out", "samples.csv", "--db", "runs.db",
		"--frames", "frames", "--frame-every", "100",
		"--log-level", "debug", "--max-steps", "500", "--verify",
		"--steps-per-frame", "0",
	})
	require.NoError(t, err)

	assert.Equal(t, ising.Config{
		Width: 16, Height: 8, Seed: 99, Randomize: false,
		Temperature: 1.5, Field: 1,
		Mode: ising.ModeFieldLoop, Target: -1, Increment: -0.25,
		BlockSize: 10, TrialsPerStep: 32,
	}, s.Sim)
	assert.Equal(t, "samples.csv", s.Output.CSV)
	assert.Equal(t, "runs.db", s.Output.DB)
	assert.Equal(t, "frames", s.Output.FramesDir)
	assert.Equal(t, 100, s.Output.FrameEvery)
	assert.Equal(t, log.DebugLevel, s.LogLevel)
	assert.Equal(t, 500, s.MaxSteps)
	assert.True(t, s.Verify)
	assert.Equal(t, 1, s.GUI.StepsPerFrame)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("ISING_TEMPERATURE", "2.5")
	t.Setenv("ISING_FIELD", "0.75")
	t.Setenv("ISING_FRAME_EVERY", "7")

	s, err := Load("test", []string{"--temperature", "3"})
	require.NoError(t, err)
	assert.Equal(t, 3.0, s.Sim.Temperature)
	assert.Equal(t, 0.75, s.Sim.Field)
	assert.Equal(t, 7, s.Output.FrameEvery)
}

func TestConfigFile(t *testing.T) {
	path := writeFile(t, "ising.yaml", "w: 10\nh: 12\nmode: tloop\ntarget: 2\nincrement: 0.5\nchart: out.png\n")
	t.Setenv("ISING_H", "14")

	s, err := Load("test", []string{"--config", path})
	require.NoError(t, err)
	assert.Equal(t, 10, s.Sim.Width)
	assert.Equal(t, 14, s.Sim.Height, "environment wins over the file")
	assert.Equal(t, ising.ModeTemperatureLoop, s.Sim.Mode)
	assert.Equal(t, 2.0, s.Sim.Target)
	assert.Equal(t, 0.5, s.Sim.Increment)
	assert.Equal(t, "out.png", s.Output.Chart)
}

func TestEnvFile(t *testing.T) {
	path := writeFile(t, "test.env", "ISING_BLOCK=9\nISING_MODE=none\nISING_TARGET=200\n")
	t.Cleanup(func() {
		os.Unsetenv("ISING_BLOCK")
		os.Unsetenv("ISING_MODE")
		os.Unsetenv("ISING_TARGET")
	})

	s, err := Load("test", []string{"--env-file", path})
	require.NoError(t, err)
	assert.Equal(t, 9, s.Sim.BlockSize)
	assert.Equal(t, ising.ModeNone, s.Sim.Mode)
	assert.Equal(t, 200.0, s.Sim.Target)
}

func TestMissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load("test", []string{"--env-file", filepath.Join(t.TempDir(), "absent.env")})
	require.NoError(t, err)
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name  string
		args  []string
		want  error
		field string
	}{
		{"unknown mode", []string{"--mode", "anneal"}, ising.ErrUnknownMode, "mode"},
		{"zero block", []string{"--block", "0"}, ising.ErrInvalidBlockSize, "block"},
		{"zero width", []string{"--w", "0"}, ising.ErrInvalidSize, "width"},
		{"cold start", []string{"--temperature", "0"}, ising.ErrInvalidTemperature, "temperature"},
		{"sweep to zero", []string{"--target", "0"}, ising.ErrInvalidTarget, "target"},
		{"NaN field", []string{"--field", "NaN"}, ising.ErrNonFinite, "field"},
		{"infinite temperature", []string{"--temperature", "+Inf"}, ising.ErrNonFinite, "temperature"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load("test", tc.args)
			require.ErrorIs(t, err, tc.want)
			var cerr *ising.ConfigError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tc.field, cerr.Field)
		})
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	_, err := Load("test", []string{"--log-level", "loud"})
	assert.Error(t, err)

	_, err = Load("test", []string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)

	_, err = Load("test", []string{"--no-such-flag"})
	assert.Error(t, err)
}
