package hazard

import (
	"math"
	"sort"

	perlin "github.com/aquilax/go-perlin"

	"github.com/vovakirdan/beatdodge/internal/core"
	"github.com/vovakirdan/beatdodge/internal/engine"
)

// SmokeEventKind selects what a SmokeEvent does.
type SmokeEventKind int

const (
	SmokePulse SmokeEventKind = iota
	SmokeStrongPulse
	SmokeLaserRing
	SmokePelletRing
	SmokeSpinner
	SmokeScatter
)

var smokeEventNames = map[SmokeEventKind]string{
	SmokePulse:       "pulse",
	SmokeStrongPulse: "strong_pulse",
	SmokeLaserRing:   "laser_ring",
	SmokePelletRing:  "pellet_ring",
	SmokeSpinner:     "spinner",
	SmokeScatter:     "scatter",
}

func (k SmokeEventKind) String() string {
	if s, ok := smokeEventNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseSmokeEventKind maps a level-file name to its kind.
func ParseSmokeEventKind(s string) (SmokeEventKind, bool) {
	for k, name := range smokeEventNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// SmokeEvent is something a Smoke does At beats after its warning ends.
// Which fields matter depends on Kind.
type SmokeEvent struct {
	At       float64
	Kind     SmokeEventKind
	Count    int
	Speed    float64
	Rad      float64
	Phase    float64 // Fraction of a turn
	Strength float64
	PerBeat  float64 // Spinner pellets per beat
	MinSpeed float64
	MaxSpeed float64
}

// Pulse flashes the smoke and shakes the camera.
func Pulse(at float64) SmokeEvent {
	return SmokeEvent{At: at, Kind: SmokePulse}
}

// StrongPulse is a Pulse with a custom shake strength.
func StrongPulse(at, strength float64) SmokeEvent {
	return SmokeEvent{At: at, Kind: SmokeStrongPulse, Strength: strength}
}

// LaserRing fires count slam lasers outward from the smoke's next-beat position.
func LaserRing(at float64, count int, phase float64) SmokeEvent {
	return SmokeEvent{At: at, Kind: SmokeLaserRing, Count: count, Phase: phase}
}

// PelletRing releases count pellets evenly around the smoke's edge.
func PelletRing(at float64, count int, speed, rad, phase float64) SmokeEvent {
	return SmokeEvent{At: at, Kind: SmokePelletRing, Count: count, Speed: speed, Rad: rad, Phase: phase}
}

// Spinner releases count pellets one after another, perBeat per beat,
// sweeping once around the smoke.
func Spinner(at float64, count int, speed, rad, phase, perBeat float64) SmokeEvent {
	return SmokeEvent{At: at, Kind: SmokeSpinner, Count: count, Speed: speed, Rad: rad, Phase: phase, PerBeat: perBeat}
}

// Scatter releases count pellets in random directions at random speeds.
func Scatter(at float64, count int, rad, minSpeed, maxSpeed float64) SmokeEvent {
	return SmokeEvent{At: at, Kind: SmokeScatter, Count: count, Rad: rad, MinSpeed: minSpeed, MaxSpeed: maxSpeed}
}

// Smoke is a pulsing circle wandering along a noisy loop around Center. It
// carries its own timeline of events, relative to the end of its warning.
type Smoke struct {
	Amp     float64 // Path radius
	Freq    float64
	Rad     float64
	Warning float64
	Show    float64
	Leave   float64 // Beats spent shrinking out
	Phase   float64

	// Center is the loop's center. Zero means the middle of the playfield,
	// picked up on the first update.
	Center core.Vec2
	Seed   int64

	events   []SmokeEvent
	spinners []pelletSpinner
	noise    *perlin.Perlin
	pulse    float64
	t        float64
}

var _ engine.Obstacle = (*Smoke)(nil)

// NewSmoke creates a smoke with the default path and lifetime.
func NewSmoke() *Smoke {
	return &Smoke{
		Amp:     75,
		Freq:    1,
		Rad:     20,
		Warning: 1,
		Show:    32,
		Leave:   0.25,
		Seed:    1,
	}
}

// With adds events, keeping them ordered by time.
func (s *Smoke) With(events ...SmokeEvent) *Smoke {
	s.events = append(s.events, events...)
	sort.SliceStable(s.events, func(i, j int) bool {
		return s.events[i].At < s.events[j].At
	})
	return s
}

// Pending returns how many events have not fired yet.
func (s *Smoke) Pending() int {
	return len(s.events)
}

func (s *Smoke) noise2D(x, y float64) float64 {
	if s.noise == nil {
		s.noise = perlin.NewPerlin(2, 2, 3, s.Seed)
	}
	return s.noise.Noise2D(x, y)
}

// TrackPos returns the smoke's position at local time t.
func (s *Smoke) TrackPos(t float64) core.Vec2 {
	tf := t * s.Freq
	wobble := core.V(s.noise2D(tf, tf), s.noise2D(-tf, -tf)).Scale(0.5)
	sin, cos := math.Sincos(tf*1.25 + s.Phase*2*math.Pi)
	return wobble.Add(core.V(sin, cos)).Scale(s.Amp).Add(s.Center)
}

// Size returns the current radius.
func (s *Smoke) Size() float64 {
	size := s.Rad * (s.pulse + 1)
	if s.Leave > 0 && s.t-s.Warning > s.Show-s.Leave {
		size *= (s.Warning + s.Show - s.t) / s.Leave
	}
	return size
}

// Update implements engine.Obstacle.
func (s *Smoke) Update(acc *engine.Accumulator, frameDelta, beatDelta float64) {
	if s.Center == (core.Vec2{}) {
		s.Center = acc.Center()
	}
	s.t += beatDelta
	s.pulse *= 0.975

	for len(s.events) > 0 && s.t-s.Warning >= s.events[0].At {
		ev := s.events[0]
		s.events = s.events[1:]
		s.employ(acc, ev)
	}

	pos := s.TrackPos(s.t)
	rad := s.Size()
	live := s.spinners[:0]
	for _, sp := range s.spinners {
		if !sp.run(acc, s.t, pos, rad) {
			live = append(live, sp)
		}
	}
	s.spinners = live
}

func (s *Smoke) employ(acc *engine.Accumulator, ev SmokeEvent) {
	switch ev.Kind {
	case SmokePulse:
		s.pulse = 1
		acc.Shake(10)
	case SmokeStrongPulse:
		s.pulse = 1
		acc.Shake(ev.Strength)
	case SmokeLaserRing:
		start := s.TrackPos(s.t + 1)
		for i := 0; i < ev.Count; i++ {
			dir := ringDir(i, ev.Count, ev.Phase)
			l := NewSlamLaser(start, start.Add(dir.Scale(1250)), 20, 1, 1, 0.05, core.Vec2{}, 0)
			l.Leave = 0.5
			acc.Spawn(l)
		}
	case SmokePelletRing:
		start := s.TrackPos(s.t)
		rad := s.Size()
		for i := 0; i < ev.Count; i++ {
			dir := ringDir(i, ev.Count, ev.Phase)
			acc.Spawn(NewPellet(start.Add(dir.Scale(rad-ev.Rad)), dir.Scale(ev.Speed), ev.Rad))
		}
	case SmokeSpinner:
		if ev.PerBeat <= 0 {
			return
		}
		s.spinners = append(s.spinners, pelletSpinner{
			max:    ev.Count,
			phase:  ev.Phase,
			period: 1 / ev.PerBeat,
			start:  s.t,
			rad:    ev.Rad,
			speed:  ev.Speed,
		})
	case SmokeScatter:
		start := s.TrackPos(s.t)
		rng := acc.Rand()
		for i := 0; i < ev.Count; i++ {
			dir := core.FromAngle(rng.Float64() * 2 * math.Pi)
			speed := core.RandRange(rng, ev.MinSpeed, ev.MaxSpeed)
			acc.Spawn(NewPellet(start, dir.Scale(speed), ev.Rad))
		}
	}
}

func ringDir(i, count int, phase float64) core.Vec2 {
	return core.FromAngle((float64(i)/float64(count) + phase) * 2 * math.Pi)
}

// Draw implements engine.Obstacle.
func (s *Smoke) Draw(dst core.Canvas, color core.Color, offset core.Vec2) {
	if s.t < s.Warning {
		color = color.WithAlpha(s.t / s.Warning * 0.5)
	} else {
		color = core.Mix(color, core.ColorWhite, s.pulse)
	}
	dst.Circle(s.TrackPos(s.t).Add(offset), s.Size(), color)
}

// Collides implements engine.Obstacle.
func (s *Smoke) Collides(p engine.Player) bool {
	return s.t >= s.Warning && core.CollideCC(s.TrackPos(s.t), s.Size(), p.Pos, p.Radius)
}

// ShouldKill implements engine.Obstacle.
func (s *Smoke) ShouldKill() bool {
	return s.t > s.Warning+s.Show
}

// Clone implements engine.Obstacle.
func (s *Smoke) Clone() engine.Obstacle {
	c := *s
	c.events = append([]SmokeEvent(nil), s.events...)
	c.spinners = append([]pelletSpinner(nil), s.spinners...)
	return &c
}

// pelletSpinner releases one pellet per period from the smoke's edge,
// stepping around the circle.
type pelletSpinner struct {
	max    int
	count  int
	phase  float64
	period float64
	start  float64
	rad    float64
	speed  float64
}

// run fires at most one pellet and reports whether the spinner is done.
func (p *pelletSpinner) run(acc *engine.Accumulator, t float64, pos core.Vec2, rad float64) bool {
	if p.count < p.max && t >= p.start+p.period*float64(p.count) {
		p.count++
		dir := ringDir(p.count, p.max, p.phase)
		acc.Spawn(NewPellet(pos.Add(dir.Scale(rad-p.rad)), dir.Scale(p.speed), p.rad))
	}
	return p.count >= p.max
}
