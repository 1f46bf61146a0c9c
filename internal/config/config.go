// Package config provides YAML/TOML-based configuration loading and
// difficulty management for brickfall.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is wrapped by every validation failure returned from Validate.
var ErrInvalid = errors.New("invalid config")

// Config contains all static settings of a brickfall session.
type Config struct {
	Arena      Arena            `yaml:"arena" toml:"arena"`
	Ball       Ball             `yaml:"ball" toml:"ball"`
	Paddle     Paddle           `yaml:"paddle" toml:"paddle"`
	Level      Level            `yaml:"level" toml:"level"`
	Session    Session          `yaml:"session" toml:"session"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
	Loop       Loop             `yaml:"loop" toml:"loop"`
}

// Arena describes the playfield on the XZ plane. The ball travels towards +Z
// when launched; the dead zone sits below the paddle at -Z.
type Arena struct {
	HalfWidth     float64 `yaml:"half_width" toml:"half_width"`         // X extent from the center
	HalfDepth     float64 `yaml:"half_depth" toml:"half_depth"`         // Z extent from the center
	WallThickness float64 `yaml:"wall_thickness" toml:"wall_thickness"` // Thickness of the side and top walls
	BallRadius    float64 `yaml:"ball_radius" toml:"ball_radius"`
	PaddleWidth   float64 `yaml:"paddle_width" toml:"paddle_width"`
	PaddleDepth   float64 `yaml:"paddle_depth" toml:"paddle_depth"`
	PaddleZ       float64 `yaml:"paddle_z" toml:"paddle_z"`           // Paddle anchor Z
	BrickWidth    float64 `yaml:"brick_width" toml:"brick_width"`
	BrickDepth    float64 `yaml:"brick_depth" toml:"brick_depth"`
	PaddleEnglish float64 `yaml:"paddle_english" toml:"paddle_english"` // Sideways deflection at paddle edges (0 = mirror)
}

// Ball defines the constant-speed ball model.
type Ball struct {
	InitialSpeed float64 `yaml:"initial_speed" toml:"initial_speed"`
	MinSpeed     float64 `yaml:"min_speed" toml:"min_speed"`
	MaxSpeed     float64 `yaml:"max_speed" toml:"max_speed"`
	SpawnOffset  float64 `yaml:"spawn_offset" toml:"spawn_offset"` // Distance in front of the paddle on reset
}

// Paddle defines paddle movement.
type Paddle struct {
	Speed  float64 `yaml:"speed" toml:"speed"`
	LimitX float64 `yaml:"limit_x" toml:"limit_x"`
	LimitZ float64 `yaml:"limit_z" toml:"limit_z"`
}

// Level defines the brick grid and its random composition.
type Level struct {
	Rows       int          `yaml:"rows" toml:"rows"`
	Columns    int          `yaml:"columns" toml:"columns"`
	SpacingX   float64      `yaml:"spacing_x" toml:"spacing_x"`
	SpacingZ   float64      `yaml:"spacing_z" toml:"spacing_z"`
	OffsetX    float64      `yaml:"offset_x" toml:"offset_x"`
	OffsetZ    float64      `yaml:"offset_z" toml:"offset_z"`
	OriginX    float64      `yaml:"origin_x" toml:"origin_x"` // Brick container position
	OriginY    float64      `yaml:"origin_y" toml:"origin_y"`
	OriginZ    float64      `yaml:"origin_z" toml:"origin_z"`
	SkipChance float64      `yaml:"skip_chance" toml:"skip_chance"`
	Chances    BrickChances `yaml:"chances" toml:"chances"`
	Standard   BrickStats   `yaml:"standard" toml:"standard"`
	Strong     BrickStats   `yaml:"strong" toml:"strong"`
	Solid      BrickStats   `yaml:"indestructible" toml:"indestructible"`
}

// BrickChances are the per-type spawn probabilities. Indestructible takes
// whatever Standard and Strong leave.
type BrickChances struct {
	Standard       float64 `yaml:"standard" toml:"standard"`
	Strong         float64 `yaml:"strong" toml:"strong"`
	Indestructible float64 `yaml:"indestructible" toml:"indestructible"`
}

// BrickStats is the (hit points, score) pair of a brick type.
type BrickStats struct {
	HitPoints int `yaml:"hit_points" toml:"hit_points"`
	Score     int `yaml:"score" toml:"score"`
}

// Session defines lives and timed transitions.
type Session struct {
	StartingLives int           `yaml:"starting_lives" toml:"starting_lives"`
	LaunchDelay   time.Duration `yaml:"launch_delay" toml:"launch_delay"`
	RestartDelay  time.Duration `yaml:"restart_delay" toml:"restart_delay"`
}

// Loop defines host loop cadences.
type Loop struct {
	PhysicsRate int `yaml:"physics_rate" toml:"physics_rate"` // Fixed physics ticks per second
	FrameRate   int `yaml:"frame_rate" toml:"frame_rate"`     // Frame ticks per second
}

// PhysicsStep returns the fixed physics timestep.
func (l Loop) PhysicsStep() time.Duration {
	if l.PhysicsRate <= 0 {
		return time.Second / 50
	}
	return time.Second / time.Duration(l.PhysicsRate)
}

// Validate checks the configuration for values the simulation cannot use.
// All problems are reported together.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Ball.MinSpeed <= 0 {
		bad("ball.min_speed must be positive, got %v", c.Ball.MinSpeed)
	}
	if c.Ball.MinSpeed > c.Ball.MaxSpeed {
		bad("ball.min_speed %v exceeds ball.max_speed %v", c.Ball.MinSpeed, c.Ball.MaxSpeed)
	}
	if c.Ball.InitialSpeed < c.Ball.MinSpeed || c.Ball.InitialSpeed > c.Ball.MaxSpeed {
		bad("ball.initial_speed %v outside [%v, %v]", c.Ball.InitialSpeed, c.Ball.MinSpeed, c.Ball.MaxSpeed)
	}
	if c.Paddle.Speed < 0 || c.Paddle.LimitX < 0 || c.Paddle.LimitZ < 0 {
		bad("paddle speed and limits must be non-negative")
	}
	if c.Level.Rows < 0 || c.Level.Columns < 0 {
		bad("level grid %dx%d must be non-negative", c.Level.Rows, c.Level.Columns)
	}
	if !unit(c.Level.SkipChance) {
		bad("level.skip_chance %v outside [0, 1]", c.Level.SkipChance)
	}
	ch := c.Level.Chances
	if !unit(ch.Standard) || !unit(ch.Strong) || !unit(ch.Indestructible) {
		bad("level.chances must be within [0, 1]")
	}
	if ch.Standard+ch.Strong > 1+1e-9 {
		bad("level.chances standard+strong = %v exceeds 1", ch.Standard+ch.Strong)
	}
	stats := []struct {
		name string
		BrickStats
	}{{"standard", c.Level.Standard}, {"strong", c.Level.Strong}, {"indestructible", c.Level.Solid}}
	for _, s := range stats {
		if s.HitPoints <= 0 || s.Score < 0 {
			bad("level.%s needs positive hit_points and non-negative score", s.name)
		}
	}
	if c.Session.StartingLives <= 0 {
		bad("session.starting_lives must be positive, got %d", c.Session.StartingLives)
	}
	if c.Session.LaunchDelay < 0 || c.Session.RestartDelay < 0 {
		bad("session delays must be non-negative")
	}
	if c.Loop.PhysicsRate <= 0 || c.Loop.FrameRate <= 0 {
		bad("loop rates must be positive")
	}
	if c.Arena.HalfWidth <= 0 || c.Arena.HalfDepth <= 0 || c.Arena.BallRadius <= 0 {
		bad("arena dimensions must be positive")
	}

	return errors.Join(errs...)
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}
