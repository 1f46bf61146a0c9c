package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestEmbeddedYAMLMatchesDefault(t *testing.T) {
	cfg, err := Decode(FileName, DefaultYAML())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Ball.MinSpeed = 20 // above max and initial
	cfg.Level.Chances.Standard = 0.9
	cfg.Level.Chances.Strong = 0.3
	cfg.Session.StartingLives = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "ball.min_speed")
	assert.Contains(t, err.Error(), "standard+strong")
	assert.Contains(t, err.Error(), "starting_lives")
}

func TestLoadCustomYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("session:\n  starting_lives: 7\n  launch_delay: 500ms\nlevel:\n  rows: 5\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Session.StartingLives)
	assert.Equal(t, 500*time.Millisecond, cfg.Session.LaunchDelay)
	assert.Equal(t, 5, cfg.Level.Rows)
	// Untouched keys keep their defaults
	assert.Equal(t, Default().Level.Columns, cfg.Level.Columns)
	assert.Equal(t, Default().Session.RestartDelay, cfg.Session.RestartDelay)
}

func TestLoadCustomTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	data := []byte("[ball]\ninitial_speed = 9.5\n\n[session]\nrestart_delay = \"5s\"\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 9.5, cfg.Ball.InitialSpeed, 1e-9)
	assert.Equal(t, 5*time.Second, cfg.Session.RestartDelay)
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ball: [1, 2"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("ball:\n  min_speed: 50\n"), 0o600))
	_, err = Load(invalid)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadWithoutCustomPathFallsBack(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPicksLocalConfigsDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", FileName), []byte("paddle:\n  speed: 4\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.InDelta(t, 4.0, cfg.Paddle.Speed, 1e-9)
}
