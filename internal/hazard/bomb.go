package hazard

import (
	"math"

	"github.com/vovakirdan/beatdodge/internal/core"
	"github.com/vovakirdan/beatdodge/internal/engine"
)

// Bomb drifts from Start toward Target, slowing as it goes, grows, and
// bursts into a ring of pellets when its life runs out.
type Bomb struct {
	Start  core.Vec2
	Target core.Vec2
	Life   float64 // Beats until the burst

	Pellets     int
	PelletSpeed float64
	PelletRad   float64

	Snappiness float64 // How fast the bomb closes in on Target
	Rad        float64 // Radius growth per beat

	// Spawner receives one call per ring pellet with Pos, Vel and Rad set.
	Spawner engine.Action

	t float64
}

var (
	_ engine.Obstacle = (*Bomb)(nil)
	_ engine.Killer   = (*Bomb)(nil)
)

// NewBomb creates a bomb. A nil spawner defaults to PelletSpawner.
func NewBomb(start, target core.Vec2, life float64, pellets int, speed, rad float64, spawner engine.Action) *Bomb {
	if spawner == nil {
		spawner = PelletSpawner
	}
	b := &Bomb{
		Start:       start,
		Target:      target,
		Life:        life,
		Pellets:     pellets,
		PelletSpeed: speed,
		PelletRad:   rad,
		Spawner:     spawner,
	}
	// A bomb without a life bursts on its first sweep with zero radius.
	if life > 0 {
		b.Snappiness = 20 / life
		b.Rad = 30 / life
	}
	return b
}

// Pos returns the current center: (start-target)/(t*k+1) + target.
func (b *Bomb) Pos() core.Vec2 {
	return b.Start.Sub(b.Target).DivScalar(b.t*b.Snappiness + 1).Add(b.Target)
}

// Radius returns the current collision radius.
func (b *Bomb) Radius() float64 {
	return b.Rad * b.t
}

// Update implements engine.Obstacle.
func (b *Bomb) Update(acc *engine.Accumulator, frameDelta, beatDelta float64) {
	b.t += beatDelta
}

// Draw implements engine.Obstacle.
func (b *Bomb) Draw(dst core.Canvas, color core.Color, offset core.Vec2) {
	pos := b.Pos().Add(offset)
	size := b.Radius()
	dst.Circle(pos, size, color)
	side := size * 1.2 * math.Sqrt2
	dst.RotatedRect(pos, core.V(side, side), b.t*3, color)
}

// Collides implements engine.Obstacle.
func (b *Bomb) Collides(p engine.Player) bool {
	return core.CollideCC(b.Pos(), b.Radius(), p.Pos, p.Radius)
}

// ShouldKill implements engine.Obstacle.
func (b *Bomb) ShouldKill() bool {
	return b.t >= b.Life
}

// Kill bursts the bomb into an even ring. Pellet i heads along angle
// i/N of a full turn, so pellet 0 travels along +x.
func (b *Bomb) Kill(acc *engine.Accumulator) {
	pos := b.Pos()
	for i := 0; i < b.Pellets; i++ {
		dir := core.FromAngle(float64(i) / float64(b.Pellets) * 2 * math.Pi)
		args := engine.NewArgs(acc.Time()).
			WithPos(pos).
			WithVel(dir.Scale(b.PelletSpeed)).
			WithRad(b.PelletRad)
		b.Spawner.Run(acc, args)
	}
}

// Clone implements engine.Obstacle.
func (b *Bomb) Clone() engine.Obstacle {
	c := *b
	if b.Spawner != nil {
		c.Spawner = b.Spawner.Clone()
	}
	return &c
}

// BombSideSpawner launches a bomb from a random point on the right edge
// toward a random point 100 units inside it.
type BombSideSpawner struct {
	Pellets     int
	PelletSpeed float64
	PelletRad   float64
	Life        float64

	// Spawner is handed to every bomb; nil means PelletSpawner.
	Spawner engine.Action
}

var _ engine.Action = BombSideSpawner{}

// Run implements engine.Action.
func (s BombSideSpawner) Run(acc *engine.Accumulator, _ engine.Args) {
	w := acc.World()
	rng := acc.Rand()
	start := core.V(w.X, core.RandRange(rng, 0, w.Y))
	target := core.V(w.X-100, core.RandRange(rng, 0, w.Y))

	var spawner engine.Action
	if s.Spawner != nil {
		spawner = s.Spawner.Clone()
	}
	acc.Spawn(NewBomb(start, target, s.Life, s.Pellets, s.PelletSpeed, s.PelletRad, spawner))
}

// Clone implements engine.Action.
func (s BombSideSpawner) Clone() engine.Action {
	if s.Spawner != nil {
		s.Spawner = s.Spawner.Clone()
	}
	return s
}
