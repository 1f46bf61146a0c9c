package config

import "math"

// DifficultyConfig drives score-based ball speed progression.
type DifficultyConfig struct {
	Enabled         bool    `yaml:"enabled" toml:"enabled"`
	InitialLevel    float64 `yaml:"initial_level" toml:"initial_level"`       // 0.0 = easy, 1.0 = hard
	MaxAtScore      int     `yaml:"max_at_score" toml:"max_at_score"`         // Score at which max difficulty is reached
	SpeedMultiplier float64 `yaml:"speed_multiplier" toml:"speed_multiplier"` // Multiplier added to speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Unknown values return "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Session.StartingLives = 5
		cfg.Ball.InitialSpeed = math.Max(cfg.Ball.MinSpeed, cfg.Ball.InitialSpeed*0.8)
		cfg.Level.Chances = BrickChances{Standard: 0.85, Strong: 0.1, Indestructible: 0.05}
	case DifficultyHard:
		cfg.Session.StartingLives = 2
		cfg.Ball.InitialSpeed = math.Min(cfg.Ball.MaxSpeed, cfg.Ball.InitialSpeed*1.25)
		cfg.Level.Chances = BrickChances{Standard: 0.5, Strong: 0.35, Indestructible: 0.15}
	}
}

// DifficultyManager calculates the ball speed from the current score.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	cfg.InitialLevel = clampF(cfg.InitialLevel, 0.0, 1.0)
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d != nil && d.cfg.Enabled
}

// Level returns the current difficulty level (0.0 to 1.0) for a score.
func (d *DifficultyManager) Level(score int) float64 {
	if d == nil {
		return 0
	}
	if !d.cfg.Enabled {
		return d.cfg.InitialLevel
	}

	maxAt := float64(d.cfg.MaxAtScore)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(float64(score)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.cfg.InitialLevel + progress*(1.0-d.cfg.InitialLevel)
}

// Speed returns the ball speed for a score, from base up to
// base * (1 + speedMultiplier) at max difficulty.
func (d *DifficultyManager) Speed(baseSpeed float64, score int) float64 {
	if !d.IsEnabled() {
		return baseSpeed
	}
	return baseSpeed * (1.0 + d.Level(score)*d.cfg.SpeedMultiplier)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
