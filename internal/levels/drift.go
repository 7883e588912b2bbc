package levels

import (
	"math"

	"github.com/vovakirdan/beatdodge/internal/core"
	"github.com/vovakirdan/beatdodge/internal/engine"
	"github.com/vovakirdan/beatdodge/internal/hazard"
)

// easeIn starts slow and settles to real time after two beats.
func easeIn(t float64) float64 {
	if t < 2 {
		return t * t / 4
	}
	return t - 1
}

// loadDrift is a 100 bpm level built around a wandering smoke, followed by
// spinning arcs and eased rotating bars.
func loadDrift(s *engine.Session) engine.LevelInfo {
	w := s.World()
	c := w.Scale(0.5)

	s.Instantly(colors(core.ColorSoftPink, core.RGB(0.02, 0.02, 0.06)))
	s.Instantly(engine.ActionFunc(func(acc *engine.Accumulator, _ engine.Args) {
		acc.Float(3)
	}))

	smoke := hazard.NewSmoke()
	smoke.Amp = 220
	smoke.Rad = 40
	smoke.With(
		hazard.Pulse(0),
		hazard.Pulse(2),
		hazard.PelletRing(4, 12, 150, 10, 0),
		hazard.Pulse(6),
		hazard.LaserRing(8, 6, 0),
		hazard.Spinner(12, 24, 150, 8, 0, 4),
		hazard.Scatter(18, 20, 10, 80, 200),
		hazard.StrongPulse(24, 30),
		hazard.PelletRing(24, 16, 180, 10, 0.5/16),
		hazard.LaserRing(28, 8, 1.0/16),
	)
	s.Schedule(0, spawn(smoke))

	s.Schedule(34, colors(core.ColorYellow, core.RGB(0.06, 0.04, 0)))
	s.Schedule(34, spawn(hazard.NewSpinningArc(c, 180, 230, 0, math.Pi, 0.25, 2, 8)))
	s.Schedule(40, spawn(hazard.NewSpinningArc(c, 320, 370, math.Pi, 2*math.Pi, -0.2, 2, 8)))

	bar := hazard.NewRotatingRect(c, core.V(w.X*0.75, 30), 0, 0.125, 2, 8, 0.5)
	s.Schedule(50, spawn(hazard.NewEase(bar, easeIn)))
	s.Schedule(50, engine.ActionFunc(func(acc *engine.Accumulator, _ engine.Args) {
		acc.Shake(8)
	}))

	cross := hazard.NewRotatingRect(c, core.V(30, w.Y*0.9), math.Pi/4, -0.125, 2, 8, 0.5)
	s.Schedule(58, spawn(hazard.NewEase(cross, easeIn)))

	return engine.LevelInfo{BPM: 100, Track: TrackPath("drift"), Length: 70}
}
