package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Contact describes a resolved collision.
type Contact struct {
	Point  mgl64.Vec2 // Contact point on the static collider
	Normal mgl64.Vec2 // Unit normal pointing from the collider toward the body
	Depth  float64    // Penetration depth before separation
}

// CirclesOverlap reports whether two circles intersect.
func CirclesOverlap(a, b mgl64.Vec2, ra, rb float64) bool {
	r := ra + rb
	return a.Sub(b).LenSqr() < r*r
}

// CircleOverlapsBox reports whether a circle intersects an axis-aligned box.
func CircleOverlapsBox(c mgl64.Vec2, r float64, box Box) bool {
	nearest := mgl64.Vec2{
		mgl64.Clamp(c.X(), box.Left(), box.Right()),
		mgl64.Clamp(c.Y(), box.Top(), box.Bottom()),
	}
	return c.Sub(nearest).LenSqr() <= r*r
}

// ResolveCircle separates body from a static circle and reflects its velocity
// with the body's restitution. Returns ok=false when they do not touch.
// Bodies already moving away are separated but keep their velocity.
func ResolveCircle(b *Body, c Circle) (Contact, bool) {
	delta := b.Pos.Sub(c.Center)
	minDist := b.Radius + c.Radius
	distSq := delta.LenSqr()
	if distSq >= minDist*minDist {
		return Contact{}, false
	}

	dist := math.Sqrt(distSq)
	var normal mgl64.Vec2
	if dist < 1e-9 {
		// Dead center: push straight up
		normal = mgl64.Vec2{0, -1}
	} else {
		normal = delta.Mul(1 / dist)
	}

	depth := minDist - dist
	b.Pos = b.Pos.Add(normal.Mul(depth))
	Reflect(b, normal)

	return Contact{
		Point:  c.Center.Add(normal.Mul(c.Radius)),
		Normal: normal,
		Depth:  depth,
	}, true
}

// Reflect mirrors the body's velocity about the surface with the given unit
// normal, scaling the normal component by the body's restitution. Nothing
// happens if the body is already separating.
func Reflect(b *Body, normal mgl64.Vec2) {
	vn := b.Vel.Dot(normal)
	if vn >= 0 {
		return
	}
	b.Vel = b.Vel.Sub(normal.Mul((1 + b.Bounce) * vn))
}

// Walls describes which edges of the field reflect bodies.
type Walls struct {
	Left, Right, Top, Bottom bool
}

// SideWalls is the pegboard setup: bodies bounce off the sides and fall
// freely through the bottom.
var SideWalls = Walls{Left: true, Right: true}

// BounceWalls keeps body inside [0, w] x [0, h] on the enabled edges.
// Returns true if any wall was hit.
func BounceWalls(b *Body, w, h float64, walls Walls) bool {
	hit := false
	r := b.Radius

	if walls.Left && b.Pos[0]-r < 0 {
		b.Pos[0] = r
		Reflect(b, mgl64.Vec2{1, 0})
		hit = true
	}
	if walls.Right && b.Pos[0]+r > w {
		b.Pos[0] = w - r
		Reflect(b, mgl64.Vec2{-1, 0})
		hit = true
	}
	if walls.Top && b.Pos[1]-r < 0 {
		b.Pos[1] = r
		Reflect(b, mgl64.Vec2{0, 1})
		hit = true
	}
	if walls.Bottom && b.Pos[1]+r > h {
		b.Pos[1] = h - r
		Reflect(b, mgl64.Vec2{0, -1})
		hit = true
	}
	return hit
}

// Approach moves current toward target by fraction k of the remaining
// distance (exponential smoothing).
func Approach(current, target, k float64) float64 {
	return current + (target-current)*k
}

// FromAngle returns a vector of the given length pointing at angle radians.
func FromAngle(angle, length float64) mgl64.Vec2 {
	return mgl64.Vec2{math.Cos(angle) * length, math.Sin(angle) * length}
}
