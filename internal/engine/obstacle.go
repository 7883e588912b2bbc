// Package engine runs one play-through of a level: the beat-timed scheduler,
// the live obstacle set, the player and the camera.
//
// Obstacles never mutate shared state while the session iterates over them.
// Everything they produce during an update (spawns, camera impulses, color
// changes, whole-session mutations) is staged in an Accumulator and merged
// after the sweep completes.
package engine

import "github.com/vovakirdan/beatdodge/internal/core"

// Obstacle is a hazard living in a session.
// Obstacles keep their own local clock, advanced by the beat delta passed to
// Update, so a template can be cloned and spawned at any time.
type Obstacle interface {
	// Update advances local time by beatDelta beats. frameDelta is the raw
	// wall-clock frame time in seconds.
	Update(acc *Accumulator, frameDelta, beatDelta float64)

	// Draw renders the obstacle in the given foreground color, shifted by the
	// camera offset. Draw must not change state.
	Draw(dst core.Canvas, color core.Color, offset core.Vec2)

	// Collides reports whether the obstacle currently hurts the player.
	Collides(p Player) bool

	// ShouldKill reports whether the obstacle is done.
	ShouldKill() bool

	// Clone returns an independent deep copy.
	Clone() Obstacle
}

// Killer is implemented by obstacles with a terminal action, such as a bomb
// bursting into pellets. Kill runs exactly once, right before removal.
type Killer interface {
	Kill(acc *Accumulator)
}

// Handle owns a live obstacle together with its bookkeeping.
type Handle struct {
	Obstacle Obstacle

	// SpawnedAt is the beat-time at which the obstacle entered the session.
	SpawnedAt float64

	marked bool
}

// NewHandle wraps an obstacle spawned at beat-time at.
func NewHandle(o Obstacle, at float64) *Handle {
	return &Handle{Obstacle: o, SpawnedAt: at}
}

// MarkForRemoval removes the obstacle at the end of the current frame.
// Its Kill action still runs.
func (h *Handle) MarkForRemoval() {
	h.marked = true
}

// Marked reports whether the obstacle is flagged for removal.
func (h *Handle) Marked() bool {
	return h.marked
}

// Clone deep-copies the handle and its obstacle.
func (h *Handle) Clone() *Handle {
	return &Handle{
		Obstacle:  h.Obstacle.Clone(),
		SpawnedAt: h.SpawnedAt,
		marked:    h.marked,
	}
}

// dead reports whether the lifecycle sweep should drop the handle.
func (h *Handle) dead() bool {
	return h.marked || h.Obstacle.ShouldKill()
}
