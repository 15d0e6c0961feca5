// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// FieldConfig is the size of the simulated play field in world pixels.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PachinkoConfig contains all configuration for the pegboard catch games.
type PachinkoConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Physics    PachinkoPhysics  `yaml:"physics"`
	Grid       GridConfig       `yaml:"grid"`
	Basket     BasketConfig     `yaml:"basket"`
	Spawner    SpawnerConfig    `yaml:"spawner"`
	Gameplay   PachinkoGameplay `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PachinkoPhysics defines world physics for the pegboard.
type PachinkoPhysics struct {
	Gravity    float64 `yaml:"gravity"`     // px/s^2, applied to vertical velocity
	MissMargin float64 `yaml:"miss_margin"` // Entities below height+margin are pruned
}

// GridConfig defines the staggered peg layout.
type GridConfig struct {
	Rows        int     `yaml:"rows"`
	Cols        int     `yaml:"cols"`
	StartX      float64 `yaml:"start_x"`
	StartY      float64 `yaml:"start_y"`
	SpacingX    float64 `yaml:"spacing_x"` // 0 = derive from field width
	SpacingY    float64 `yaml:"spacing_y"`
	PegRadius   float64 `yaml:"peg_radius"`
	BodyPadding float64 `yaml:"body_padding"` // Collision radius = peg_radius + padding
}

// BasketConfig defines the collector.
type BasketConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	BottomOffset float64 `yaml:"bottom_offset"` // Center y = field height - offset
	Smoothing    float64 `yaml:"smoothing"`     // Fraction of remaining distance per frame
	KeySpeed     float64 `yaml:"key_speed"`     // Target movement from keys, px/s
}

// SpawnerConfig defines how falling items are created.
type SpawnerConfig struct {
	DelayMs       int     `yaml:"delay_ms"`
	Margin        float64 `yaml:"margin"`
	SpawnY        float64 `yaml:"spawn_y"`
	Radius        float64 `yaml:"radius"`
	BombChance    float64 `yaml:"bomb_chance"`
	BallBounceMin float64 `yaml:"ball_bounce_min"`
	BallBounceMax float64 `yaml:"ball_bounce_max"`
	BombBounceMin float64 `yaml:"bomb_bounce_min"`
	BombBounceMax float64 `yaml:"bomb_bounce_max"`
	BallMaxVX     int     `yaml:"ball_max_vx"`
}

// PachinkoGameplay defines scoring and lives.
type PachinkoGameplay struct {
	Lives      int `yaml:"lives"`
	BallPoints int `yaml:"ball_points"`
}

// LauncherConfig contains configuration for the gravity launcher demo.
type LauncherConfig struct {
	Field    FieldConfig      `yaml:"field"`
	Physics  LauncherPhysics  `yaml:"physics"`
	Launcher LauncherSettings `yaml:"launcher"`
}

// LauncherPhysics defines launcher world physics.
type LauncherPhysics struct {
	Gravity     float64 `yaml:"gravity"`      // px/s^2
	LaunchSpeed float64 `yaml:"launch_speed"` // px/s
	Bounce      float64 `yaml:"bounce"`       // Wall restitution
}

// LauncherSettings defines the cannon.
type LauncherSettings struct {
	Y          float64 `yaml:"y"`           // Launch point height; x is the field center
	BallRadius float64 `yaml:"ball_radius"` // px
	AimSpeed   float64 `yaml:"aim_speed"`   // Radians per second when aiming with keys
	MaxBalls   int     `yaml:"max_balls"`   // Oldest ball is dropped beyond this
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	DelayReduction     int     `yaml:"delay_reduction"`      // Spawn delay reduction (ms) at max difficulty
	BombChanceIncrease float64 `yaml:"bomb_chance_increase"` // Added to bomb chance at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string into a preset. Empty means "keep config".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q: %w", s, ErrInvalidConfig)
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

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
