package levels

import (
	"github.com/vovakirdan/beatdodge/internal/core"
	"github.com/vovakirdan/beatdodge/internal/engine"
	"github.com/vovakirdan/beatdodge/internal/hazard"
)

// highLife is B36/S23, which grows replicators where Conway's rule dies out.
var highLife = hazard.LifeRule{
	Birth:   [9]bool{3: true, 6: true},
	Survive: [9]bool{2: true, 3: true},
}

func lifeSpawner(rule hazard.LifeRule, population, ticks int) engine.Action {
	return engine.ActionFunc(func(acc *engine.Accumulator, _ engine.Args) {
		g := hazard.NewLifeGrid(32, 18)
		g.Rule = rule
		g.MaxTicks = ticks
		g.Populate(population, acc.Rand())
		acc.Spawn(g)
	})
}

// loadLattice is a 120 bpm grid level: a cellular automaton across the
// field, then marching rectangle trails, then a denser automaton.
func loadLattice(s *engine.Session) engine.LevelInfo {
	w := s.World()

	s.Instantly(colors(core.RGB(0.3, 1, 0.6), core.RGB(0, 0.04, 0.02)))
	s.Schedule(0, lifeSpawner(hazard.Conway, 140, 32))

	cell := core.V(w.X/32, w.Y/18)
	size := cell.Scale(2)
	s.Schedule(36, colors(core.ColorSkyBlue, core.RGB(0, 0.02, 0.06)))
	s.Schedule(36, spawn(hazard.NewPeriodic(16, 0.5,
		hazard.Linear(2, 1, 0.25, size.Scale(0.5), core.V(size.X, 0), size, 0))))
	s.Schedule(40, spawn(hazard.NewPeriodic(16, 0.5,
		hazard.Linear(2, 1, 0.25, core.V(w.X-size.X/2, w.Y-size.Y/2), core.V(-size.X, 0), size, 0))))
	s.Schedule(44, spawn(hazard.NewPeriodic(9, 0.5,
		hazard.Linear(2, 1, 0.25, core.V(w.X/2, size.Y/2), core.V(0, size.Y), core.V(w.X/3, size.Y), 0))))

	s.Schedule(52, colors(core.RGB(0.3, 1, 0.6), core.RGB(0, 0.04, 0.02)))
	s.Schedule(52, lifeSpawner(highLife, 200, 24))

	return engine.LevelInfo{BPM: 120, Track: TrackPath("lattice"), Length: 80}
}
