package config

import (
	"math"
	"time"
)

// Floors keep the game playable at maximum difficulty.
const (
	minSpawnDelay = 250 * time.Millisecond
	maxBombChance = 0.6
)

// DifficultyManager calculates dynamic game parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: cfg.InitialLevel,
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
// A disabled manager reports level 0 so parameters stay at their base values.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.cfg.Enabled {
		return 0
	}
	if d.cfg.Progression.Type == "none" {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// SpawnDelay returns the spawn period for the current difficulty.
func (d *DifficultyManager) SpawnDelay(base time.Duration, score int, ticks int) time.Duration {
	level := d.Level(score, ticks)
	reduction := time.Duration(level*float64(d.cfg.Scaling.DelayReduction)) * time.Millisecond
	result := base - reduction
	if result < minSpawnDelay {
		result = minSpawnDelay
	}
	if result > base {
		result = base
	}
	return result
}

// BombChance returns the bomb probability for the current difficulty.
func (d *DifficultyManager) BombChance(base float64, score int, ticks int) float64 {
	level := d.Level(score, ticks)
	result := base + level*d.cfg.Scaling.BombChanceIncrease
	// Never raise a configured chance past the cap, never lower one above it
	limit := math.Max(base, maxBombChance)
	return clampF(result, 0.0, limit)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
