package levels

import (
	"github.com/vovakirdan/beatdodge/internal/core"
	"github.com/vovakirdan/beatdodge/internal/engine"
	"github.com/vovakirdan/beatdodge/internal/hazard"
)

// loadPulse is a laser and bomb level at 128 bpm: sweeping lasers, slams
// across the field, bombs from the right edge, then a rain of rectangles.
func loadPulse(s *engine.Session) engine.LevelInfo {
	w := s.World()

	s.Instantly(colors(core.ColorMagenta, core.ColorBlack))

	// Intro: random lasers on every other beat.
	s.ScheduleEvents(engine.RepeatPeriodic(
		hazard.LaserSpawner{Thickness: 30, Warning: 2, Show: 1, Jerk: 15}, 16, 0, 2)...)

	// Slams sweep down the field, one per beat.
	for i := 0; i < 8; i++ {
		y := w.Y * float64(i+1) / 9
		from, to := core.V(0, y), core.V(w.X, y)
		if i%2 == 1 {
			from, to = to, from
		}
		s.Schedule(32+float64(i), spawn(hazard.NewSlamLaser(from, to, 25, 1, 2, 0.1, core.V(0, 10), 5)))
	}

	s.Schedule(40, colors(core.ColorOrange, core.RGB(0.08, 0.02, 0.1)))
	s.ScheduleEvents(engine.RepeatPeriodic(
		hazard.BombSideSpawner{Pellets: 12, PelletSpeed: 150, PelletRad: 8, Life: 2}, 8, 40, 4)...)

	// Vertical lasers in between the bombs.
	s.ScheduleEvents(engine.RepeatPeriodic(
		hazard.VertLaserSpawner{Thickness: 40, Warning: 1.5, Show: 1, Jerk: 10}, 8, 42, 4)...)

	// Rectangle rain.
	s.Schedule(72, colors(core.ColorSkyBlue, core.RGB(0, 0.03, 0.08)))
	size := core.V(w.X/16, w.Y/9)
	rain := hazard.RectTrail(1, 1, 0.25, func(step int) (core.Vec2, core.Vec2, float64) {
		col := float64(int(scatter(step) * 16))
		row := float64(step % 9)
		return core.V(col*size.X, row*size.Y).Add(size.Scale(0.5)), size, 0
	})
	s.Schedule(72, spawn(hazard.NewPeriodic(64, 0.5, rain)))

	// Finale: everything at once, then a closing cross.
	s.Schedule(104, colors(core.ColorMagenta, core.ColorBlack))
	s.ScheduleEvents(engine.RepeatPeriodic(
		hazard.LaserSpawner{Thickness: 30, Warning: 1, Show: 1, Jerk: 20}, 4, 104, 1)...)
	s.Schedule(106, hazard.BombSideSpawner{Pellets: 16, PelletSpeed: 200, PelletRad: 10, Life: 2})
	c := w.Scale(0.5)
	s.Schedule(110, hazard.MultiSpawner{
		hazard.NewGrowLaser(core.V(-100, c.Y), core.V(w.X+100, c.Y), 60, 2, 2, core.V(0, 30)),
		hazard.NewGrowLaser(core.V(c.X, -100), core.V(c.X, w.Y+100), 60, 2, 2, core.V(30, 0)),
	})

	return engine.LevelInfo{BPM: 128, Track: TrackPath("pulse"), Length: 116}
}
