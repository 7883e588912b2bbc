package engine

import (
	"math/rand"

	"github.com/vovakirdan/beatdodge/internal/core"
)

// Accumulator stages one frame's side effects. Obstacles and actions write
// into it while the session iterates; the session merges it afterwards.
type Accumulator struct {
	time  float64
	world core.Vec2
	rng   *rand.Rand

	spawned  []*Handle
	deferred []func(*Session)

	jerk  core.Vec2
	shake float64
	fg    *core.Color
	bg    *core.Color
	float *float64
}

// NewAccumulator creates an empty accumulator at beat-time t.
// A nil rng is replaced by a fixed-seed source.
func NewAccumulator(t float64, world core.Vec2, rng *rand.Rand) *Accumulator {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Accumulator{time: t, world: world, rng: rng}
}

// Time returns the beat-time of the update or callback in progress.
func (a *Accumulator) Time() float64 {
	return a.time
}

// SetTime moves the accumulator's beat-time context.
func (a *Accumulator) SetTime(t float64) {
	a.time = t
}

// World returns the playfield size.
func (a *Accumulator) World() core.Vec2 {
	return a.world
}

// Center returns the middle of the playfield.
func (a *Accumulator) Center() core.Vec2 {
	return a.world.Scale(0.5)
}

// Rand returns the session's random source.
func (a *Accumulator) Rand() *rand.Rand {
	return a.rng
}

// Spawn adds an obstacle after the sweep. The obstacle is owned by the
// session from now on; spawn a Clone when reusing a template.
func (a *Accumulator) Spawn(o Obstacle) *Handle {
	h := NewHandle(o, a.time)
	a.spawned = append(a.spawned, h)
	return h
}

// SpawnHandle adds an existing handle after the sweep.
func (a *Accumulator) SpawnHandle(h *Handle) {
	a.spawned = append(a.spawned, h)
}

// Spawned returns the handles staged so far.
func (a *Accumulator) Spawned() []*Handle {
	return a.spawned
}

// Jerk adds a camera impulse.
func (a *Accumulator) Jerk(v core.Vec2) {
	a.jerk = a.jerk.Add(v)
}

// Shake adds camera shake magnitude.
func (a *Accumulator) Shake(s float64) {
	a.shake += s
}

// JerkTotal returns the jerk staged this frame.
func (a *Accumulator) JerkTotal() core.Vec2 {
	return a.jerk
}

// ShakeTotal returns the shake staged this frame.
func (a *Accumulator) ShakeTotal() float64 {
	return a.shake
}

// Foreground sets a flat foreground color. Last write wins.
func (a *Accumulator) Foreground(c core.Color) {
	a.fg = &c
}

// Background sets a flat background color. Last write wins.
func (a *Accumulator) Background(c core.Color) {
	a.bg = &c
}

// ForegroundFunc installs an animated foreground once the frame is merged.
func (a *Accumulator) ForegroundFunc(f core.ColorFunc) {
	a.Defer(func(s *Session) { s.SetForeground(f) })
}

// BackgroundFunc installs an animated background once the frame is merged.
func (a *Accumulator) BackgroundFunc(f core.ColorFunc) {
	a.Defer(func(s *Session) { s.SetBackground(f) })
}

// Float sets the ambient camera float amplitude. Last write wins.
func (a *Accumulator) Float(amp float64) {
	a.float = &amp
}

// Defer queues a whole-session mutation, run after everything else merges.
func (a *Accumulator) Defer(fn func(*Session)) {
	a.deferred = append(a.deferred, fn)
}
