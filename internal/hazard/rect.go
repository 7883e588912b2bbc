package hazard

import (
	"math"

	"github.com/vovakirdan/beatdodge/internal/core"
	"github.com/vovakirdan/beatdodge/internal/engine"
)

// RotatableRect is a fixed rectangle with a warning phase. On activation it
// pops in oversized and flashes white, and it shrinks out over the final
// Grow beats.
type RotatableRect struct {
	Center  core.Vec2
	Size    core.Vec2
	Rot     float64
	Warning float64
	Show    float64
	Grow    float64

	t float64
}

var _ engine.Obstacle = (*RotatableRect)(nil)

// NewRotatableRect creates a rectangle hazard.
func NewRotatableRect(center, size core.Vec2, rot, warning, show, grow float64) *RotatableRect {
	return &RotatableRect{
		Center:  center,
		Size:    size,
		Rot:     rot,
		Warning: warning,
		Show:    show,
		Grow:    grow,
	}
}

// SizeAt returns the current size. With oversize the pop-in overshoot is
// included; collision always uses the plain size.
func (r *RotatableRect) SizeAt(oversize bool) core.Vec2 {
	return rectSize(r.Size, r.t, r.Warning, r.Show, r.Grow, oversize)
}

func rectSize(size core.Vec2, t, warning, show, grow float64, oversize bool) core.Vec2 {
	total := warning + show
	switch {
	case grow <= 0:
		return size
	case oversize && t >= warning && t <= warning+grow:
		return size.Scale((t-warning)/-grow + 2)
	case t >= total-grow:
		return size.Scale((total+grow-t)/grow - 1)
	default:
		return size
	}
}

func rectColor(color core.Color, t, warning, grow float64) core.Color {
	if t < warning {
		return color.WithAlpha(t / warning * 0.5)
	}
	if grow > 0 && t <= warning+grow {
		return core.Mix(core.ColorWhite, color, (t-warning)/grow)
	}
	return color
}

// Update implements engine.Obstacle.
func (r *RotatableRect) Update(acc *engine.Accumulator, frameDelta, beatDelta float64) {
	r.t += beatDelta
}

// Draw implements engine.Obstacle.
func (r *RotatableRect) Draw(dst core.Canvas, color core.Color, offset core.Vec2) {
	dst.RotatedRect(r.Center.Add(offset), r.SizeAt(true), r.Rot, rectColor(color, r.t, r.Warning, r.Grow))
}

// Collides implements engine.Obstacle.
func (r *RotatableRect) Collides(p engine.Player) bool {
	return r.t >= r.Warning && core.CollideCR(r.Center, r.SizeAt(false), -r.Rot, p.Pos, p.Radius)
}

// ShouldKill implements engine.Obstacle.
func (r *RotatableRect) ShouldKill() bool {
	return r.t >= r.Warning+r.Show
}

// Clone implements engine.Obstacle.
func (r *RotatableRect) Clone() engine.Obstacle {
	c := *r
	return &c
}

// RotatingRect is a rectangle that spins at RPB revolutions per beat once
// its warning ends.
type RotatingRect struct {
	Center  core.Vec2
	Size    core.Vec2
	Rot     float64 // Rotation at activation
	RPB     float64
	Warning float64
	Show    float64
	Grow    float64

	t float64
}

var _ engine.Obstacle = (*RotatingRect)(nil)

// NewRotatingRect creates a spinning rectangle hazard.
func NewRotatingRect(center, size core.Vec2, rot, rpb, warning, show, grow float64) *RotatingRect {
	return &RotatingRect{
		Center:  center,
		Size:    size,
		Rot:     rot,
		RPB:     rpb,
		Warning: warning,
		Show:    show,
		Grow:    grow,
	}
}

// RotAt returns the current rotation.
func (r *RotatingRect) RotAt() float64 {
	return r.Rot + (r.t-r.Warning)*r.RPB*2*math.Pi
}

// SizeAt returns the current size.
func (r *RotatingRect) SizeAt() core.Vec2 {
	return rectSize(r.Size, r.t, r.Warning, r.Show, r.Grow, false)
}

// Update implements engine.Obstacle.
func (r *RotatingRect) Update(acc *engine.Accumulator, frameDelta, beatDelta float64) {
	r.t += beatDelta
}

// Draw implements engine.Obstacle.
func (r *RotatingRect) Draw(dst core.Canvas, color core.Color, offset core.Vec2) {
	dst.RotatedRect(r.Center.Add(offset), r.SizeAt(), r.RotAt(), rectColor(color, r.t, r.Warning, r.Grow))
}

// Collides implements engine.Obstacle.
func (r *RotatingRect) Collides(p engine.Player) bool {
	return r.t >= r.Warning && core.CollideCR(r.Center, r.SizeAt(), -r.RotAt(), p.Pos, p.Radius)
}

// ShouldKill implements engine.Obstacle.
func (r *RotatingRect) ShouldKill() bool {
	return r.t >= r.Warning+r.Show
}

// Clone implements engine.Obstacle.
func (r *RotatingRect) Clone() engine.Obstacle {
	c := *r
	return &c
}
