// Package hazard implements the obstacles levels are built from and the
// spawner actions that create them.
//
// All hazards keep a local clock in beats, advanced by Update. Most follow a
// warning phase (visible, harmless) and a show phase (dangerous); emitters
// such as Periodic and LifeGrid count steps instead.
package hazard

import (
	"github.com/vovakirdan/beatdodge/internal/core"
	"github.com/vovakirdan/beatdodge/internal/engine"
)

// Pellet is a projectile moving in a straight line.
type Pellet struct {
	Pos core.Vec2
	Vel core.Vec2 // World units per beat
	Rad float64

	// Bounds is the area the pellet lives in, inflated by Rad. Zero means
	// the playfield, picked up on the first update.
	Bounds core.Vec2
}

var _ engine.Obstacle = (*Pellet)(nil)

// NewPellet creates a pellet.
func NewPellet(pos, vel core.Vec2, rad float64) *Pellet {
	return &Pellet{Pos: pos, Vel: vel, Rad: rad}
}

// Update implements engine.Obstacle.
func (p *Pellet) Update(acc *engine.Accumulator, frameDelta, beatDelta float64) {
	if p.Bounds == (core.Vec2{}) {
		p.Bounds = acc.World()
	}
	p.Pos = p.Pos.Add(p.Vel.Scale(beatDelta))
}

// Draw implements engine.Obstacle.
func (p *Pellet) Draw(dst core.Canvas, color core.Color, offset core.Vec2) {
	dst.Circle(p.Pos.Add(offset), p.Rad, color)
}

// Collides implements engine.Obstacle.
func (p *Pellet) Collides(pl engine.Player) bool {
	return core.CollideCC(p.Pos, p.Rad, pl.Pos, pl.Radius)
}

// ShouldKill reports whether the pellet left its bounds.
func (p *Pellet) ShouldKill() bool {
	if p.Bounds == (core.Vec2{}) {
		return false
	}
	return p.Pos.X < -p.Rad || p.Pos.Y < -p.Rad ||
		p.Pos.X > p.Bounds.X+p.Rad || p.Pos.Y > p.Bounds.Y+p.Rad
}

// Clone implements engine.Obstacle.
func (p *Pellet) Clone() engine.Obstacle {
	c := *p
	return &c
}

// PelletSpawner spawns one pellet from the Pos, Vel and Rad of its args.
var PelletSpawner engine.Action = engine.ActionFunc(func(acc *engine.Accumulator, args engine.Args) {
	acc.Spawn(NewPellet(args.Pos, args.Vel, args.Rad))
})
