// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect is a rectangle of screen cells.
type Rect struct {
	X, Y int // Top-left cell
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the first row below the rectangle.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether cell (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(val, hi))
}

// Viewport maps a continuous world rectangle (origin top-left, y down) onto a
// rectangle of screen cells. Games simulate in world units and only convert
// when rendering or when reading pointer input.
type Viewport struct {
	WorldW, WorldH float64
	Screen         Rect
}

// NewViewport creates a viewport showing the whole world inside screen.
func NewViewport(worldW, worldH float64, screen Rect) Viewport {
	return Viewport{WorldW: worldW, WorldH: worldH, Screen: screen}
}

// ScaleX returns how many cells one world unit spans horizontally.
func (v Viewport) ScaleX() float64 {
	if v.WorldW <= 0 {
		return 0
	}
	return float64(v.Screen.W) / v.WorldW
}

// ScaleY returns how many cells one world unit spans vertically.
func (v Viewport) ScaleY() float64 {
	if v.WorldH <= 0 {
		return 0
	}
	return float64(v.Screen.H) / v.WorldH
}

// ToCell converts a world position to the screen cell containing it.
func (v Viewport) ToCell(x, y float64) (int, int) {
	cx := v.Screen.X + int(math.Floor(x*v.ScaleX()))
	cy := v.Screen.Y + int(math.Floor(y*v.ScaleY()))
	return cx, cy
}

// ToWorld converts a screen cell to the world position of its center.
func (v Viewport) ToWorld(cx, cy int) (float64, float64) {
	sx, sy := v.ScaleX(), v.ScaleY()
	if sx == 0 || sy == 0 {
		return 0, 0
	}
	x := (float64(cx-v.Screen.X) + 0.5) / sx
	y := (float64(cy-v.Screen.Y) + 0.5) / sy
	return x, y
}
