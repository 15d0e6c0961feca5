package config

import (
	_ "embed"
)

//go:embed defaults/pachinko.yaml
var defaultPachinkoYAML []byte

//go:embed defaults/peggle.yaml
var defaultPeggleYAML []byte

//go:embed defaults/launcher.yaml
var defaultLauncherYAML []byte

// DefaultPachinkoConfig returns the default pegboard configuration:
// 800x600 field, 6x10 staggered pegs, one item per second, 30% bombs.
func DefaultPachinkoConfig() PachinkoConfig {
	return PachinkoConfig{
		Field: FieldConfig{
			Width:  800,
			Height: 600,
		},
		Physics: PachinkoPhysics{
			Gravity:    250,
			MissMargin: 30,
		},
		Grid: GridConfig{
			Rows:        6,
			Cols:        10,
			StartX:      80,
			StartY:      120,
			SpacingX:    0,
			SpacingY:    70,
			PegRadius:   8,
			BodyPadding: 2,
		},
		Basket: BasketConfig{
			Width:        125,
			Height:       40,
			BottomOffset: 10,
			Smoothing:    0.2,
			KeySpeed:     500,
		},
		Spawner: SpawnerConfig{
			DelayMs:       1000,
			Margin:        50,
			SpawnY:        20,
			Radius:        15,
			BombChance:    0.3,
			BallBounceMin: 0.7,
			BallBounceMax: 0.9,
			BombBounceMin: 0.5,
			BombBounceMax: 0.7,
			BallMaxVX:     50,
		},
		Gameplay: PachinkoGameplay{
			Lives:      3,
			BallPoints: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 500,
			},
			Scaling: ScalingConfig{
				DelayReduction:     500,
				BombChanceIncrease: 0.15,
			},
		},
	}
}

// DefaultPeggleConfig returns the denser 8x12 layout variant.
func DefaultPeggleConfig() PachinkoConfig {
	cfg := DefaultPachinkoConfig()
	cfg.Grid.Rows = 8
	cfg.Grid.Cols = 12
	cfg.Grid.StartY = 170
	cfg.Grid.SpacingY = 60
	return cfg
}

// DefaultLauncherConfig returns the gravity launcher configuration.
// 720 px/s^2 and 300 px/s are 0.2 px/frame^2 and 5 px/frame at 60 FPS.
func DefaultLauncherConfig() LauncherConfig {
	return LauncherConfig{
		Field: FieldConfig{
			Width:  800,
			Height: 600,
		},
		Physics: LauncherPhysics{
			Gravity:     720,
			LaunchSpeed: 300,
			Bounce:      0.8,
		},
		Launcher: LauncherSettings{
			Y:          50,
			BallRadius: 10,
			AimSpeed:   1.5,
			MaxBalls:   32,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "pachinko":
		return defaultPachinkoYAML
	case "peggle":
		return defaultPeggleYAML
	case "launcher":
		return defaultLauncherYAML
	default:
		return nil
	}
}
