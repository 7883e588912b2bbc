package hazard

import (
	"github.com/vovakirdan/beatdodge/internal/core"
	"github.com/vovakirdan/beatdodge/internal/engine"
)

// MultiSpawner spawns a fresh copy of each of its obstacles.
type MultiSpawner []engine.Obstacle

// Run implements engine.Action.
func (m MultiSpawner) Run(acc *engine.Accumulator, _ engine.Args) {
	for _, o := range m {
		acc.Spawn(o.Clone())
	}
}

// Clone implements engine.Action.
func (m MultiSpawner) Clone() engine.Action {
	out := make(MultiSpawner, len(m))
	for i, o := range m {
		out[i] = o.Clone()
	}
	return out
}

// ObstacleSpawner spawns a copy of one obstacle.
func ObstacleSpawner(o engine.Obstacle) engine.Action {
	return MultiSpawner{o}
}

// LaserSpawner spawns a GrowLaser spanning the playfield at a random height
// (horizontal) or a random column (vertical), overshooting each edge by 100.
type LaserSpawner struct {
	Thickness float64
	Warning   float64
	Show      float64
	Jerk      float64 // Maximum camera kick across the beam
}

// HorLaserSpawner always spawns horizontal beams.
type HorLaserSpawner LaserSpawner

// VertLaserSpawner always spawns vertical beams.
type VertLaserSpawner LaserSpawner

var (
	_ engine.Action = LaserSpawner{}
	_ engine.Action = HorLaserSpawner{}
	_ engine.Action = VertLaserSpawner{}
)

// Run implements engine.Action, choosing an orientation at random.
func (s LaserSpawner) Run(acc *engine.Accumulator, args engine.Args) {
	if acc.Rand().Intn(2) == 0 {
		HorLaserSpawner(s).Run(acc, args)
		return
	}
	VertLaserSpawner(s).Run(acc, args)
}

// Clone implements engine.Action.
func (s LaserSpawner) Clone() engine.Action { return s }

// Run implements engine.Action.
func (s HorLaserSpawner) Run(acc *engine.Accumulator, _ engine.Args) {
	w := acc.World()
	rng := acc.Rand()
	y := core.RandRange(rng, 0, w.Y)
	jerk := core.V(core.RandRange(rng, -s.Jerk, s.Jerk), 0)
	acc.Spawn(NewGrowLaser(core.V(-100, y), core.V(w.X+100, y), s.Thickness, s.Warning, s.Show, jerk))
}

// Clone implements engine.Action.
func (s HorLaserSpawner) Clone() engine.Action { return s }

// Run implements engine.Action.
func (s VertLaserSpawner) Run(acc *engine.Accumulator, _ engine.Args) {
	w := acc.World()
	rng := acc.Rand()
	x := core.RandRange(rng, 0, w.X)
	jerk := core.V(0, core.RandRange(rng, -s.Jerk, s.Jerk))
	acc.Spawn(NewGrowLaser(core.V(x, -100), core.V(x, w.Y+100), s.Thickness, s.Warning, s.Show, jerk))
}

// Clone implements engine.Action.
func (s VertLaserSpawner) Clone() engine.Action { return s }
