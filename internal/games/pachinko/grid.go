package pachinko

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/pachinko-arcade/internal/config"
	"github.com/vovakirdan/pachinko-arcade/internal/physics"
)

// ErrInvalidGrid is returned when a grid spec cannot produce a valid board.
var ErrInvalidGrid = errors.New("pachinko: invalid grid")

// Peg is a static obstacle. BodyRadius is the collision radius, slightly
// larger than the drawn one.
type Peg struct {
	Pos        mgl64.Vec2
	Radius     float64
	BodyRadius float64
}

// Circle returns the peg's collider.
func (p Peg) Circle() physics.Circle {
	return physics.Circle{Center: p.Pos, Radius: p.BodyRadius}
}

// GridSpec describes a staggered peg layout.
type GridSpec struct {
	FieldW, FieldH float64
	Rows, Cols     int
	StartX, StartY float64
	SpacingX       float64 // 0 = (FieldW - 2*StartX) / Cols
	SpacingY       float64
	PegRadius      float64
	BodyPadding    float64
}

// GridSpecFromConfig builds a GridSpec from a game config.
func GridSpecFromConfig(cfg config.PachinkoConfig) GridSpec {
	return GridSpec{
		FieldW:      cfg.Field.Width,
		FieldH:      cfg.Field.Height,
		Rows:        cfg.Grid.Rows,
		Cols:        cfg.Grid.Cols,
		StartX:      cfg.Grid.StartX,
		StartY:      cfg.Grid.StartY,
		SpacingX:    cfg.Grid.SpacingX,
		SpacingY:    cfg.Grid.SpacingY,
		PegRadius:   cfg.Grid.PegRadius,
		BodyPadding: cfg.Grid.BodyPadding,
	}
}

// GenerateGrid lays out Rows*Cols pegs row by row. Odd rows are shifted right
// by half a column. The result is deterministic and never empty: any spec
// that would place a peg outside the field is rejected.
func GenerateGrid(spec GridSpec) ([]Peg, error) {
	if spec.FieldW <= 0 || spec.FieldH <= 0 {
		return nil, fmt.Errorf("%w: field %vx%v", ErrInvalidGrid, spec.FieldW, spec.FieldH)
	}
	if spec.Rows < 1 {
		return nil, fmt.Errorf("%w: rows=%d", ErrInvalidGrid, spec.Rows)
	}
	if spec.Cols < 1 {
		return nil, fmt.Errorf("%w: cols=%d", ErrInvalidGrid, spec.Cols)
	}
	if spec.PegRadius <= 0 {
		return nil, fmt.Errorf("%w: peg radius=%v", ErrInvalidGrid, spec.PegRadius)
	}

	spacingX := spec.SpacingX
	if spacingX == 0 {
		spacingX = (spec.FieldW - 2*spec.StartX) / float64(spec.Cols)
	}
	if spacingX < 0 || spec.SpacingY < 0 {
		return nil, fmt.Errorf("%w: spacing %vx%v", ErrInvalidGrid, spacingX, spec.SpacingY)
	}

	pegs := make([]Peg, 0, spec.Rows*spec.Cols)
	for row := 0; row < spec.Rows; row++ {
		offset := 0.0
		if row%2 == 1 {
			offset = spacingX / 2
		}
		y := spec.StartY + float64(row)*spec.SpacingY
		for col := 0; col < spec.Cols; col++ {
			x := spec.StartX + offset + float64(col)*spacingX
			if x-spec.PegRadius < 0 || x+spec.PegRadius > spec.FieldW ||
				y-spec.PegRadius < 0 || y+spec.PegRadius > spec.FieldH {
				return nil, fmt.Errorf("%w: peg (%d,%d) at (%.1f, %.1f) outside %vx%v field",
					ErrInvalidGrid, row, col, x, y, spec.FieldW, spec.FieldH)
			}
			pegs = append(pegs, Peg{
				Pos:        mgl64.Vec2{x, y},
				Radius:     spec.PegRadius,
				BodyRadius: spec.PegRadius + spec.BodyPadding,
			})
		}
	}
	return pegs, nil
}
