package engine

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/beatdodge/internal/core"
)

// Player is the avatar dodging hazards.
type Player struct {
	Pos    core.Vec2
	Radius float64

	// Speed is the current movement speed in world units per second.
	Speed float64

	// Dash is the remaining dash time in seconds.
	Dash float64

	// Invulnerable is the remaining post-hit grace time in seconds.
	Invulnerable float64
}

// Player tints for the four hit/dash states.
var (
	HitColor     = core.Mix(core.ColorSoftPink, core.ColorRed, 0.5)
	DashColor    = core.Mix(core.ColorSoftPink, core.ColorSkyBlue, 0.5)
	HitDashColor = core.Mix(HitColor, DashColor, 0.5)
)

// Dashing reports whether a dash is active.
func (p Player) Dashing() bool {
	return p.Dash > 0
}

// Hurt reports whether the player is in post-hit grace.
func (p Player) Hurt() bool {
	return p.Invulnerable > 0
}

// Vulnerable reports whether a collision would cost a hit point.
func (p Player) Vulnerable() bool {
	return !p.Dashing() && !p.Hurt()
}

// Color returns the player tint for its current state.
func (p Player) Color() core.Color {
	switch {
	case p.Hurt() && p.Dashing():
		return HitDashColor
	case p.Hurt():
		return HitColor
	case p.Dashing():
		return DashColor
	default:
		return core.ColorSoftPink
	}
}

// Camera holds the screen-space effects applied when drawing.
type Camera struct {
	Jerk  core.Vec2
	Shake float64
	Float float64
}

// Offset returns the draw offset at beat-time t: the jerk, a random shake
// per axis and an ambient float oscillation.
func (c Camera) Offset(t float64, rng *rand.Rand) core.Vec2 {
	off := c.Jerk
	if c.Shake != 0 && rng != nil {
		s := math.Abs(c.Shake)
		off = off.Add(core.V(core.RandRange(rng, -s, s), core.RandRange(rng, -s, s)))
	}
	return off.Add(core.V(math.Sin(t), math.Sin(t*1.2)).Scale(c.Float))
}

// Decay applies one frame of multiplicative decay to jerk and shake.
func (c *Camera) Decay(jerk, shake float64) {
	c.Jerk = c.Jerk.Scale(jerk)
	c.Shake *= shake
}
