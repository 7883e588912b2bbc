// Package core provides fundamental types and utilities for beatdodge.
// It contains no external UI dependencies (especially no Bubble Tea) to keep
// game logic pure and testable.
package core

import (
	"math"
	"math/rand"
)

// Vec2 is a point or direction in world space.
// World space is y-down, matching the terminal screen.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// FromAngle returns the unit vector (cos θ, sin θ).
func FromAngle(theta float64) Vec2 {
	return Vec2{X: math.Cos(theta), Y: math.Sin(theta)}
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul multiplies component-wise.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// Div divides component-wise.
func (v Vec2) Div(o Vec2) Vec2 { return Vec2{v.X / o.X, v.Y / o.Y} }

func (v Vec2) Scale(s float64) Vec2     { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) DivScalar(s float64) Vec2 { return Vec2{v.X / s, v.Y / s} }
func (v Vec2) Neg() Vec2                { return Vec2{-v.X, -v.Y} }
func (v Vec2) Dot(o Vec2) float64       { return v.X*o.X + v.Y*o.Y }
func (v Vec2) LenSq() float64           { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Len() float64             { return math.Sqrt(v.LenSq()) }

// DistSq returns the squared distance between two points.
func (v Vec2) DistSq(o Vec2) float64 { return v.Sub(o).LenSq() }

// Dist returns the distance between two points.
func (v Vec2) Dist(o Vec2) float64 { return math.Sqrt(v.DistSq(o)) }

// Lerp interpolates linearly from v (t=0) to o (t=1). t is not clamped.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Normalize returns the unit vector in v's direction, or zero for a zero vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return v.DivScalar(l)
}

// Angle returns atan2(y, x).
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// RandVec returns a point uniformly distributed in the box [from, to).
func RandVec(rng *rand.Rand, from, to Vec2) Vec2 {
	return Vec2{
		X: RandRange(rng, from.X, to.X),
		Y: RandRange(rng, from.Y, to.Y),
	}
}

// RandRange returns a uniform value in [lo, hi). Returns lo when the range is empty.
func RandRange(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// FloorVec snaps v down to the grid spanned by step.
func FloorVec(v, step Vec2) Vec2 {
	return Vec2{
		X: math.Floor(v.X/step.X) * step.X,
		Y: math.Floor(v.Y/step.Y) * step.Y,
	}
}

// Rect represents an integer axis-aligned box in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Sq returns x*x.
func Sq(x float64) float64 {
	return x * x
}

// RecipEase approaches 1 as t grows: 1 - 1/(t+1).
func RecipEase(t float64) float64 {
	return 1 - 1/(t+1)
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
