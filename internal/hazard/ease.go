package hazard

import (
	"github.com/vovakirdan/beatdodge/internal/core"
	"github.com/vovakirdan/beatdodge/internal/engine"
)

// Ease runs another obstacle on a remapped clock: the inner obstacle sees
// F(t+dt) - F(t) as its beat delta.
type Ease struct {
	Inner engine.Obstacle
	F     func(t float64) float64

	t float64
}

var (
	_ engine.Obstacle = (*Ease)(nil)
	_ engine.Killer   = (*Ease)(nil)
)

// NewEase wraps inner with the time function f.
func NewEase(inner engine.Obstacle, f func(float64) float64) *Ease {
	return &Ease{Inner: inner, F: f}
}

// Update implements engine.Obstacle.
func (e *Ease) Update(acc *engine.Accumulator, frameDelta, beatDelta float64) {
	dt := e.F(e.t+beatDelta) - e.F(e.t)
	e.t += beatDelta
	e.Inner.Update(acc, frameDelta, dt)
}

// Draw implements engine.Obstacle.
func (e *Ease) Draw(dst core.Canvas, color core.Color, offset core.Vec2) {
	e.Inner.Draw(dst, color, offset)
}

// Collides implements engine.Obstacle.
func (e *Ease) Collides(p engine.Player) bool {
	return e.Inner.Collides(p)
}

// ShouldKill implements engine.Obstacle.
func (e *Ease) ShouldKill() bool {
	return e.Inner.ShouldKill()
}

// Kill forwards to the inner obstacle when it has a death hook.
func (e *Ease) Kill(acc *engine.Accumulator) {
	if k, ok := e.Inner.(engine.Killer); ok {
		k.Kill(acc)
	}
}

// Clone implements engine.Obstacle.
func (e *Ease) Clone() engine.Obstacle {
	return &Ease{Inner: e.Inner.Clone(), F: e.F, t: e.t}
}
