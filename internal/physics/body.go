// Package physics implements the small amount of 2D rigid-body behavior the
// pegboard games need: gravity integration, circle/circle and circle/box
// contacts, velocity reflection, and wall bounces.
//
// World coordinates are pixels with the origin at the top-left and y growing
// downward, matching the screen. Velocities are pixels per second.
package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Body is a dynamic circle.
type Body struct {
	Pos    mgl64.Vec2
	Vel    mgl64.Vec2
	Radius float64
	Bounce float64 // Restitution in [0, 1]
}

// NewBody creates a body at (x, y) with velocity (vx, vy).
func NewBody(x, y, vx, vy, radius, bounce float64) Body {
	return Body{
		Pos:    mgl64.Vec2{x, y},
		Vel:    mgl64.Vec2{vx, vy},
		Radius: radius,
		Bounce: bounce,
	}
}

// X returns the horizontal position.
func (b *Body) X() float64 { return b.Pos.X() }

// Y returns the vertical position.
func (b *Body) Y() float64 { return b.Pos.Y() }

// Integrate advances the body by dt seconds under vertical acceleration g
// using semi-implicit Euler: velocity first, then position from the new
// velocity.
func (b *Body) Integrate(g, dt float64) {
	b.Vel[1] += g * dt
	b.Pos = b.Pos.Add(b.Vel.Mul(dt))
}

// Step advances the body by one frame with per-frame units: velocity in
// pixels per frame and gravity in pixels per frame squared.
func (b *Body) Step(g float64) {
	b.Integrate(g, 1)
}

// Circle is a static circular collider.
type Circle struct {
	Center mgl64.Vec2
	Radius float64
}

// Box is a static axis-aligned rectangle described by its center.
type Box struct {
	Center mgl64.Vec2
	HalfW  float64
	HalfH  float64
}

// NewBox creates a box centered at (cx, cy) with full width w and height h.
func NewBox(cx, cy, w, h float64) Box {
	return Box{Center: mgl64.Vec2{cx, cy}, HalfW: w / 2, HalfH: h / 2}
}

// Left returns the x of the left edge.
func (b Box) Left() float64 { return b.Center.X() - b.HalfW }

// Right returns the x of the right edge.
func (b Box) Right() float64 { return b.Center.X() + b.HalfW }

// Top returns the y of the top edge.
func (b Box) Top() float64 { return b.Center.Y() - b.HalfH }

// Bottom returns the y of the bottom edge.
func (b Box) Bottom() float64 { return b.Center.Y() + b.HalfH }
