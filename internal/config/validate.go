package config

import "fmt"

func invalid(format string, args ...any) error {
	return fmt.Errorf("config: "+format+": %w", append(args, ErrInvalidConfig)...)
}

// Validate checks a pegboard config for values that would make the game
// unplayable or silently empty.
func (c PachinkoConfig) Validate() error {
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		return invalid("field size %vx%v must be positive", c.Field.Width, c.Field.Height)
	}
	if c.Physics.Gravity < 0 {
		return invalid("gravity %v must not be negative", c.Physics.Gravity)
	}
	if c.Physics.MissMargin < 0 {
		return invalid("miss_margin %v must not be negative", c.Physics.MissMargin)
	}

	g := c.Grid
	if g.Rows < 1 || g.Cols < 1 {
		return invalid("grid must have at least one row and column, got %dx%d", g.Rows, g.Cols)
	}
	if g.PegRadius <= 0 {
		return invalid("peg_radius %v must be positive", g.PegRadius)
	}
	if g.SpacingX < 0 || g.SpacingY < 0 {
		return invalid("grid spacing must not be negative")
	}

	b := c.Basket
	if b.Width <= 0 || b.Height <= 0 {
		return invalid("basket size %vx%v must be positive", b.Width, b.Height)
	}
	if b.Width > c.Field.Width {
		return invalid("basket width %v exceeds field width %v", b.Width, c.Field.Width)
	}
	if b.Smoothing <= 0 || b.Smoothing > 1 {
		return invalid("basket smoothing %v must be in (0, 1]", b.Smoothing)
	}

	s := c.Spawner
	if s.DelayMs <= 0 {
		return invalid("spawner delay_ms %d must be positive", s.DelayMs)
	}
	if s.Radius <= 0 {
		return invalid("spawner radius %v must be positive", s.Radius)
	}
	if s.Margin < 0 || 2*s.Margin >= c.Field.Width {
		return invalid("spawner margin %v leaves no room in field width %v", s.Margin, c.Field.Width)
	}
	if s.BombChance < 0 || s.BombChance > 1 {
		return invalid("bomb_chance %v must be in [0, 1]", s.BombChance)
	}
	if s.BallBounceMin > s.BallBounceMax || s.BombBounceMin > s.BombBounceMax {
		return invalid("bounce ranges must have min <= max")
	}
	if s.BallMaxVX < 0 {
		return invalid("ball_max_vx %d must not be negative", s.BallMaxVX)
	}

	if c.Gameplay.Lives < 1 {
		return invalid("lives %d must be at least 1", c.Gameplay.Lives)
	}
	if c.Gameplay.BallPoints < 0 {
		return invalid("ball_points %d must not be negative", c.Gameplay.BallPoints)
	}

	return c.Difficulty.validate()
}

// Validate checks a launcher config.
func (c LauncherConfig) Validate() error {
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		return invalid("field size %vx%v must be positive", c.Field.Width, c.Field.Height)
	}
	if c.Physics.LaunchSpeed <= 0 {
		return invalid("launch_speed %v must be positive", c.Physics.LaunchSpeed)
	}
	if c.Physics.Bounce < 0 || c.Physics.Bounce > 1 {
		return invalid("bounce %v must be in [0, 1]", c.Physics.Bounce)
	}
	if c.Launcher.BallRadius <= 0 {
		return invalid("ball_radius %v must be positive", c.Launcher.BallRadius)
	}
	if c.Launcher.Y < 0 || c.Launcher.Y >= c.Field.Height {
		return invalid("launcher y %v must be inside the field", c.Launcher.Y)
	}
	if c.Launcher.MaxBalls < 1 {
		return invalid("max_balls %d must be at least 1", c.Launcher.MaxBalls)
	}
	return nil
}

func (d DifficultyConfig) validate() error {
	switch d.Progression.Type {
	case "", "none", "score", "time":
	default:
		return invalid("unknown progression type %q", d.Progression.Type)
	}
	if d.InitialLevel < 0 || d.InitialLevel > 1 {
		return invalid("initial_level %v must be in [0, 1]", d.InitialLevel)
	}
	return nil
}
