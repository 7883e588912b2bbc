package hazard

import (
	"math"

	"github.com/vovakirdan/beatdodge/internal/core"
	"github.com/vovakirdan/beatdodge/internal/engine"
)

// SpinningArc is a section of a ring between two angles that rotates at RPB
// revolutions per beat once its warning ends.
type SpinningArc struct {
	Center core.Vec2
	Inner  float64
	Outer  float64
	From   float64 // Bounding angles at activation
	To     float64
	RPB    float64

	Warning float64
	Show    float64

	t float64
}

var _ engine.Obstacle = (*SpinningArc)(nil)

// NewSpinningArc creates an arc hazard.
func NewSpinningArc(center core.Vec2, inner, outer, from, to, rpb, warning, show float64) *SpinningArc {
	return &SpinningArc{
		Center:  center,
		Inner:   inner,
		Outer:   outer,
		From:    from,
		To:      to,
		RPB:     rpb,
		Warning: warning,
		Show:    show,
	}
}

// Angles returns the current bounding angles.
func (a *SpinningArc) Angles() (float64, float64) {
	rot := (a.t - a.Warning) * a.RPB * 2 * math.Pi
	return a.From + rot, a.To + rot
}

// Update implements engine.Obstacle.
func (a *SpinningArc) Update(acc *engine.Accumulator, frameDelta, beatDelta float64) {
	a.t += beatDelta
}

// Draw implements engine.Obstacle.
func (a *SpinningArc) Draw(dst core.Canvas, color core.Color, offset core.Vec2) {
	if a.t < a.Warning {
		color = color.WithAlpha(a.t / a.Warning * 0.5)
	}
	a1, a2 := a.Angles()
	dst.Arc(a.Center.Add(offset), a.Outer, a.Inner, a1, a2, color)
}

// Collides implements engine.Obstacle.
func (a *SpinningArc) Collides(p engine.Player) bool {
	if a.t < a.Warning {
		return false
	}
	a1, a2 := a.Angles()
	return core.CollideCircArc(p.Pos, p.Radius, a.Center, a.Outer, a.Inner, a1, a2)
}

// ShouldKill implements engine.Obstacle.
func (a *SpinningArc) ShouldKill() bool {
	return a.t >= a.Warning+a.Show
}

// Clone implements engine.Obstacle.
func (a *SpinningArc) Clone() engine.Obstacle {
	c := *a
	return &c
}
