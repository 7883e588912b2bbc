package hazard

import (
	"github.com/vovakirdan/beatdodge/internal/core"
	"github.com/vovakirdan/beatdodge/internal/engine"
)

// Periodic runs an action every Interval beats, MaxSteps times, passing the
// step index through Args.Step. It is invisible and harmless.
type Periodic struct {
	Action   engine.Action
	Interval float64
	MaxSteps int

	elapsed float64
	steps   int
}

var _ engine.Obstacle = (*Periodic)(nil)

// NewPeriodic creates an emitter that fires steps times.
func NewPeriodic(steps int, interval float64, action engine.Action) *Periodic {
	return &Periodic{Action: action, Interval: interval, MaxSteps: steps}
}

// Steps returns how many times the action has run.
func (p *Periodic) Steps() int {
	return p.steps
}

// Remainder returns the beats accumulated toward the next step.
func (p *Periodic) Remainder() float64 {
	return p.elapsed
}

// Update implements engine.Obstacle. A long frame may fire several steps.
func (p *Periodic) Update(acc *engine.Accumulator, frameDelta, beatDelta float64) {
	p.elapsed += beatDelta
	for p.Interval > 0 && p.elapsed >= p.Interval && p.steps < p.MaxSteps {
		p.Action.Run(acc, engine.NewArgs(acc.Time()).WithStep(p.steps))
		p.elapsed -= p.Interval
		p.steps++
	}
}

// Draw implements engine.Obstacle.
func (p *Periodic) Draw(core.Canvas, core.Color, core.Vec2) {}

// Collides implements engine.Obstacle.
func (p *Periodic) Collides(engine.Player) bool { return false }

// ShouldKill implements engine.Obstacle.
func (p *Periodic) ShouldKill() bool {
	return p.steps >= p.MaxSteps
}

// Clone implements engine.Obstacle.
func (p *Periodic) Clone() engine.Obstacle {
	c := *p
	c.Action = p.Action.Clone()
	return &c
}

// Positioner places the rectangle for a trail step.
type Positioner func(step int) (center, size core.Vec2, rot float64)

// RectTrail returns an action that spawns one RotatableRect per step, placed
// by the positioner.
func RectTrail(life, warning, grow float64, pos Positioner) engine.Action {
	return engine.ActionFunc(func(acc *engine.Accumulator, args engine.Args) {
		center, size, rot := pos(args.Step)
		acc.Spawn(NewRotatableRect(center, size, rot, warning, life, grow))
	})
}

// Linear is a RectTrail marching from start by delta each step.
func Linear(life, warning, grow float64, start, delta, size core.Vec2, rot float64) engine.Action {
	return RectTrail(life, warning, grow, func(step int) (core.Vec2, core.Vec2, float64) {
		return start.Add(delta.Scale(float64(step))), size, rot
	})
}
