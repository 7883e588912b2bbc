package hazard

import (
	"github.com/vovakirdan/beatdodge/internal/core"
	"github.com/vovakirdan/beatdodge/internal/engine"
)

// GrowLaser is a full-length beam that fades in during its warning, then
// grows to Thickness, holds, and shrinks away at the end of its show time.
type GrowLaser struct {
	Start     core.Vec2
	End       core.Vec2
	Thickness float64
	Warning   float64
	Show      float64
	Grow      float64 // Beats spent growing in and out

	// Jerk is applied to the camera once, when the beam turns dangerous.
	Jerk core.Vec2

	FadeIn      float64 // Beats the warning outline takes to reach FadeOpacity
	FadeOpacity float64

	t     float64
	fired bool
}

var _ engine.Obstacle = (*GrowLaser)(nil)

// NewGrowLaser creates a laser with a quarter-beat grow and a warning that
// fades in over the whole warning phase to half opacity.
func NewGrowLaser(start, end core.Vec2, thickness, warning, show float64, jerk core.Vec2) *GrowLaser {
	return &GrowLaser{
		Start:       start,
		End:         end,
		Thickness:   thickness,
		Warning:     warning,
		Show:        show,
		Grow:        0.25,
		Jerk:        jerk,
		FadeIn:      warning,
		FadeOpacity: 0.5,
	}
}

// Thick returns the current beam thickness.
func (l *GrowLaser) Thick() float64 {
	total := l.Warning + l.Show
	switch {
	case l.Grow > 0 && l.t >= l.Warning && l.t <= l.Warning+l.Grow:
		return l.Thickness * (l.t - l.Warning) / l.Grow
	case l.Grow > 0 && l.t > total-l.Grow:
		return l.Thickness * (total - l.t) / l.Grow
	default:
		return l.Thickness
	}
}

// Update implements engine.Obstacle.
func (l *GrowLaser) Update(acc *engine.Accumulator, frameDelta, beatDelta float64) {
	l.t += beatDelta
	if !l.fired && l.t >= l.Warning {
		acc.Jerk(l.Jerk)
		l.fired = true
	}
}

// Draw implements engine.Obstacle.
func (l *GrowLaser) Draw(dst core.Canvas, color core.Color, offset core.Vec2) {
	if l.t < l.Warning {
		alpha := l.FadeOpacity
		if l.t < l.FadeIn {
			alpha = l.t / l.FadeIn * l.FadeOpacity
		}
		color = color.WithAlpha(alpha)
	}
	dst.Line(l.Start.Add(offset), l.End.Add(offset), l.Thick(), color)
}

// Collides implements engine.Obstacle.
func (l *GrowLaser) Collides(p engine.Player) bool {
	return l.t >= l.Warning && core.CollideLine(l.Start, l.End, l.Thick(), p.Pos, p.Radius)
}

// ShouldKill implements engine.Obstacle.
func (l *GrowLaser) ShouldKill() bool {
	return l.t >= l.Warning+l.Show
}

// Clone implements engine.Obstacle.
func (l *GrowLaser) Clone() engine.Obstacle {
	c := *l
	return &c
}

// SlamLaser extends from Start toward End: it creeps forward by
// Anticipation during the warning, slams to full length with a white
// flash, and retracts over the final Leave beats.
type SlamLaser struct {
	Start        core.Vec2
	End          core.Vec2
	Thickness    float64
	Warning      float64
	Show         float64
	Anticipation float64 // Fraction of the length reached during the warning
	Leave        float64 // Beats spent retracting

	Jerk  core.Vec2
	Shake float64

	t     float64
	fired bool
}

var _ engine.Obstacle = (*SlamLaser)(nil)

// NewSlamLaser creates a slam laser that retracts over two beats.
func NewSlamLaser(start, end core.Vec2, thickness, warning, show, anticipation float64, jerk core.Vec2, shake float64) *SlamLaser {
	return &SlamLaser{
		Start:        start,
		End:          end,
		Thickness:    thickness,
		Warning:      warning,
		Show:         show,
		Anticipation: anticipation,
		Leave:        2,
		Jerk:         jerk,
		Shake:        shake,
	}
}

// Slam returns the fraction of the full length currently extended.
func (l *SlamLaser) Slam() float64 {
	total := l.Warning + l.Show
	switch {
	case l.t < l.Warning:
		return l.t / l.Warning * l.Anticipation
	case l.Leave > 0 && l.t > total-l.Leave:
		x := (l.t - (total - l.Leave)) / l.Leave
		return 1 - x*x
	default:
		return 1
	}
}

// Tip returns the current end point of the beam.
func (l *SlamLaser) Tip() core.Vec2 {
	return l.Start.Lerp(l.End, l.Slam())
}

// Update implements engine.Obstacle.
func (l *SlamLaser) Update(acc *engine.Accumulator, frameDelta, beatDelta float64) {
	l.t += beatDelta
	if !l.fired && l.t >= l.Warning {
		acc.Jerk(l.Jerk)
		acc.Shake(l.Shake)
		l.fired = true
	}
}

// Draw implements engine.Obstacle.
func (l *SlamLaser) Draw(dst core.Canvas, color core.Color, offset core.Vec2) {
	c := color
	if l.t >= l.Warning && l.t <= l.Warning+0.5 {
		c = core.Mix(core.ColorWhite, color, (l.t-l.Warning)/0.5)
	}
	start := l.Start.Add(offset)
	dst.Line(start, l.Tip().Add(offset), l.Thickness, c)
	if l.t < l.Warning {
		dst.Line(start, l.End.Add(offset), l.Thickness, color.WithAlpha(l.t/l.Warning*0.5))
	}
}

// Collides implements engine.Obstacle.
func (l *SlamLaser) Collides(p engine.Player) bool {
	return l.t >= l.Warning && core.CollideLine(l.Start, l.Tip(), l.Thickness, p.Pos, p.Radius)
}

// ShouldKill implements engine.Obstacle.
func (l *SlamLaser) ShouldKill() bool {
	return l.t >= l.Warning+l.Show
}

// Clone implements engine.Obstacle.
func (l *SlamLaser) Clone() engine.Obstacle {
	c := *l
	return &c
}
