package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/brickfall.yaml
var defaultYAML []byte

// Default returns the hard-coded configuration. It matches the embedded
// defaults/brickfall.yaml and is used when that cannot be decoded.
func Default() Config {
	return Config{
		Arena: Arena{
			HalfWidth:     9,
			HalfDepth:     6,
			WallThickness: 1,
			BallRadius:    0.25,
			PaddleWidth:   2,
			PaddleDepth:   0.4,
			PaddleZ:       -5,
			BrickWidth:    1.8,
			BrickDepth:    0.6,
			PaddleEnglish: 0.75,
		},
		Ball: Ball{
			InitialSpeed: 8,
			MinSpeed:     6,
			MaxSpeed:     15,
			SpawnOffset:  1.5,
		},
		Paddle: Paddle{
			Speed:  10,
			LimitX: 7,
			LimitZ: 1,
		},
		Level: Level{
			Rows:       3,
			Columns:    8,
			SpacingX:   2,
			SpacingZ:   0.8,
			OffsetX:    -7,
			OffsetZ:    3,
			OriginX:    0,
			OriginY:    0,
			OriginZ:    0,
			SkipChance: 0.1,
			Chances: BrickChances{
				Standard:       0.7,
				Strong:         0.2,
				Indestructible: 0.1,
			},
			Standard: BrickStats{HitPoints: 1, Score: 100},
			Strong:   BrickStats{HitPoints: 2, Score: 200},
			Solid:    BrickStats{HitPoints: 999, Score: 0},
		},
		Session: Session{
			StartingLives: 3,
			LaunchDelay:   2 * time.Second,
			RestartDelay:  3 * time.Second,
		},
		Difficulty: DifficultyConfig{
			Enabled:         true,
			InitialLevel:    0.0,
			MaxAtScore:      3000,
			SpeedMultiplier: 0.5,
		},
		Loop: Loop{
			PhysicsRate: 50,
			FrameRate:   60,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
