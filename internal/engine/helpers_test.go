package engine

import (
	"math"

	"github.com/vovakirdan/beatdodge/internal/core"
)

// dummy is a minimal obstacle: a circle that lives for life beats.
type dummy struct {
	pos      core.Vec2
	rad      float64
	life     float64
	t        float64
	lastBeat float64
	kills    *int
	onKill   func(acc *Accumulator)
	harmless bool
	updates  int
}

func (p *dummy) Update(acc *Accumulator, frameDelta, beatDelta float64) {
	p.t += beatDelta
	p.lastBeat = beatDelta
	p.updates++
}

func (p *dummy) Draw(dst core.Canvas, color core.Color, offset core.Vec2) {
	dst.Circle(p.pos.Add(offset), p.rad, color)
}

func (p *dummy) Collides(pl Player) bool {
	return !p.harmless && core.CollideCC(p.pos, p.rad, pl.Pos, pl.Radius)
}

func (p *dummy) ShouldKill() bool {
	return p.life > 0 && p.t >= p.life
}

func (p *dummy) Clone() Obstacle {
	c := *p
	return &c
}

func (p *dummy) Kill(acc *Accumulator) {
	if p.kills != nil {
		*p.kills++
	}
	if p.onKill != nil {
		p.onKill(acc)
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func testConfig() SessionConfig {
	cfg := DefaultSessionConfig()
	cfg.Seed = 7
	return cfg
}

func noInput() core.InputFrame {
	return core.NewInputFrame()
}

func held(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}
