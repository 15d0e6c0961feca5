package pachinko

import (
	"github.com/vovakirdan/pachinko-arcade/internal/config"
	"github.com/vovakirdan/pachinko-arcade/internal/core"
	"github.com/vovakirdan/pachinko-arcade/internal/physics"
)

// Basket is the player-controlled collector. It eases toward a target x.
type Basket struct {
	X, Y          float64
	Width, Height float64
	TargetX       float64

	minX, maxX float64
	smoothing  float64
}

// NewBasket centers a basket at the bottom of the field.
func NewBasket(cfg config.BasketConfig, fieldW, fieldH float64) *Basket {
	b := &Basket{
		Width:     cfg.Width,
		Height:    cfg.Height,
		Y:         fieldH - cfg.BottomOffset,
		minX:      cfg.Width / 2,
		maxX:      fieldW - cfg.Width/2,
		smoothing: cfg.Smoothing,
	}
	b.X = fieldW / 2
	b.TargetX = b.X
	return b
}

// SetTarget sets the x the basket moves toward, clamped so the basket stays
// fully inside the field.
func (b *Basket) SetTarget(x float64) {
	b.TargetX = core.ClampF(x, b.minX, b.maxX)
}

// Nudge moves the target by dx.
func (b *Basket) Nudge(dx float64) {
	b.SetTarget(b.TargetX + dx)
}

// Update advances the smoothing by one frame.
func (b *Basket) Update() {
	b.X = physics.Approach(b.X, b.TargetX, b.smoothing)
}

// Box returns the basket collider.
func (b *Basket) Box() physics.Box {
	return physics.NewBox(b.X, b.Y, b.Width, b.Height)
}
