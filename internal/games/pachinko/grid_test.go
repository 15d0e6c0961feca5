package pachinko

import (
	"errors"
	"testing"

	"github.com/vovakirdan/pachinko-arcade/internal/config"
)

func TestGenerateGridDefaults(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.PachinkoConfig
		wantPegs int
	}{
		{"pachinko", config.DefaultPachinkoConfig(), 60},
		{"peggle", config.DefaultPeggleConfig(), 96},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := GridSpecFromConfig(tt.cfg)
			pegs, err := GenerateGrid(spec)
			if err != nil {
				t.Fatalf("GenerateGrid: %v", err)
			}
			if len(pegs) != tt.wantPegs {
				t.Fatalf("got %d pegs, want %d", len(pegs), tt.wantPegs)
			}
			for i, p := range pegs {
				if p.Pos.X()-p.Radius < 0 || p.Pos.X()+p.Radius > spec.FieldW ||
					p.Pos.Y()-p.Radius < 0 || p.Pos.Y()+p.Radius > spec.FieldH {
					t.Errorf("peg %d at %v is outside the field", i, p.Pos)
				}
				if p.BodyRadius != p.Radius+spec.BodyPadding {
					t.Errorf("peg %d body radius %v, want %v", i, p.BodyRadius, p.Radius+spec.BodyPadding)
				}
			}
		})
	}
}

func TestGenerateGridStagger(t *testing.T) {
	spec := GridSpecFromConfig(config.DefaultPachinkoConfig())
	pegs, err := GenerateGrid(spec)
	if err != nil {
		t.Fatal(err)
	}

	// (800 - 160) / 10 = 64
	first := pegs[0]
	if first.Pos.X() != 80 || first.Pos.Y() != 120 {
		t.Errorf("first peg at %v, want (80, 120)", first.Pos)
	}
	if pegs[1].Pos.X() != 144 {
		t.Errorf("second peg x = %v, want 144", pegs[1].Pos.X())
	}

	secondRow := pegs[spec.Cols]
	if secondRow.Pos.X() != 112 || secondRow.Pos.Y() != 190 {
		t.Errorf("first peg of row 1 at %v, want (112, 190)", secondRow.Pos)
	}
}

func TestGenerateGridDeterministic(t *testing.T) {
	spec := GridSpecFromConfig(config.DefaultPeggleConfig())
	a, err := GenerateGrid(spec)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := GenerateGrid(spec)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("peg %d differs between runs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestGenerateGridInvalid(t *testing.T) {
	base := GridSpecFromConfig(config.DefaultPachinkoConfig())

	tests := []struct {
		name   string
		mutate func(*GridSpec)
	}{
		{"zero rows", func(s *GridSpec) { s.Rows = 0 }},
		{"zero cols", func(s *GridSpec) { s.Cols = 0 }},
		{"zero radius", func(s *GridSpec) { s.PegRadius = 0 }},
		{"empty field", func(s *GridSpec) { s.FieldW = 0 }},
		{"rows below field", func(s *GridSpec) { s.StartY = 590 }},
		{"columns past right edge", func(s *GridSpec) { s.SpacingX = 100 }},
		{"negative spacing", func(s *GridSpec) { s.SpacingY = -10 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := base
			tt.mutate(&spec)
			pegs, err := GenerateGrid(spec)
			if !errors.Is(err, ErrInvalidGrid) {
				t.Errorf("err = %v, want ErrInvalidGrid", err)
			}
			if pegs != nil {
				t.Errorf("expected no pegs on error, got %d", len(pegs))
			}
		})
	}
}

func TestGenerateGridFitsField(t *testing.T) {
	tests := []struct {
		rows, cols       int
		startX, startY   float64
		spacingX, spaceY float64
		radius           float64
	}{
		{1, 1, 80, 120, 0, 70, 8},
		{2, 1, 80, 120, 0, 70, 8},
		{3, 5, 80, 100, 0, 50, 8},
		{10, 20, 40, 60, 0, 50, 5},
		{12, 15, 30, 40, 48, 45, 6},
		{1, 40, 10, 10, 0, 0, 4},
	}

	for _, tt := range tests {
		spec := GridSpec{
			FieldW: 800, FieldH: 600,
			Rows: tt.rows, Cols: tt.cols,
			StartX: tt.startX, StartY: tt.startY,
			SpacingX: tt.spacingX, SpacingY: tt.spaceY,
			PegRadius: tt.radius, BodyPadding: 2,
		}
		pegs, err := GenerateGrid(spec)
		if err != nil {
			t.Errorf("%dx%d: GenerateGrid: %v", tt.rows, tt.cols, err)
			continue
		}
		if len(pegs) != tt.rows*tt.cols {
			t.Errorf("%dx%d: got %d pegs", tt.rows, tt.cols, len(pegs))
		}
		for i, p := range pegs {
			if p.Pos.X()-p.Radius < 0 || p.Pos.X()+p.Radius > spec.FieldW ||
				p.Pos.Y()-p.Radius < 0 || p.Pos.Y()+p.Radius > spec.FieldH {
				t.Errorf("%dx%d: peg %d at %v is outside the field", tt.rows, tt.cols, i, p.Pos)
			}
			wantY := tt.startY + float64(i/tt.cols)*tt.spaceY
			if p.Pos.Y() != wantY {
				t.Errorf("%dx%d: peg %d y = %v, want %v", tt.rows, tt.cols, i, p.Pos.Y(), wantY)
			}
		}
	}
}
