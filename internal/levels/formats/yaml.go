// Package formats provides level file format parsers. Parsers turn a file
// into ready-to-schedule events; the levels package wires them into the
// registry.
package formats

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/beatdodge/internal/core"
	"github.com/vovakirdan/beatdodge/internal/engine"
	"github.com/vovakirdan/beatdodge/internal/hazard"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID         string            `yaml:"id"`
	Name       string            `yaml:"name"`
	BPM        float64           `yaml:"bpm"`
	Offset     float64           `yaml:"offset,omitempty"`
	Track      string            `yaml:"track"`
	Length     float64           `yaml:"length,omitempty"`
	Finished   bool              `yaml:"finished,omitempty"`
	Foreground string            `yaml:"foreground,omitempty"`
	Background string            `yaml:"background,omitempty"`
	Setup      []YAMLEvent       `yaml:"setup,omitempty"`
	Events     []YAMLEvent       `yaml:"events"`
	Metadata   map[string]string `yaml:"metadata,omitempty"`
}

// YAMLTime is a beat-time: a number, or "start" for before everything.
type YAMLTime float64

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *YAMLTime) UnmarshalYAML(node *yaml.Node) error {
	if strings.EqualFold(node.Value, "start") {
		*t = YAMLTime(engine.Immediately)
		return nil
	}
	f, err := strconv.ParseFloat(node.Value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("line %d: invalid time %q", node.Line, node.Value)
	}
	*t = YAMLTime(f)
	return nil
}

// YAMLVec is a point written as [x, y].
type YAMLVec []float64

func (v YAMLVec) vec(field string) (core.Vec2, error) {
	switch len(v) {
	case 0:
		return core.Vec2{}, nil
	case 2:
		return core.V(v[0], v[1]), nil
	default:
		return core.Vec2{}, fmt.Errorf("%s: expected [x, y], got %d values", field, len(v))
	}
}

// YAMLColors sets the session palette.
type YAMLColors struct {
	FG string `yaml:"fg,omitempty"`
	BG string `yaml:"bg,omitempty"`
}

// YAMLEvent is one timeline entry. Every action present runs at At; with
// Repeat > 1 the entry fires Repeat times, Every beats apart.
type YAMLEvent struct {
	At     YAMLTime    `yaml:"at"`
	Repeat int         `yaml:"repeat,omitempty"`
	Every  float64     `yaml:"every,omitempty"`
	Spawn  *YAMLSpawn  `yaml:"spawn,omitempty"`
	Colors *YAMLColors `yaml:"colors,omitempty"`
	Float  *float64    `yaml:"float,omitempty"`
	Jerk   YAMLVec     `yaml:"jerk,omitempty"`
	Shake  *float64    `yaml:"shake,omitempty"`
}

// YAMLSpawn describes one hazard. Which fields apply depends on Kind.
type YAMLSpawn struct {
	Kind string `yaml:"kind"`

	Pos    YAMLVec `yaml:"pos,omitempty"`
	Vel    YAMLVec `yaml:"vel,omitempty"`
	Start  YAMLVec `yaml:"start,omitempty"`
	End    YAMLVec `yaml:"end,omitempty"`
	Target YAMLVec `yaml:"target,omitempty"`
	Center YAMLVec `yaml:"center,omitempty"`
	Size   YAMLVec `yaml:"size,omitempty"`
	Delta  YAMLVec `yaml:"delta,omitempty"`
	Jerk   YAMLVec `yaml:"jerk,omitempty"`

	Rad          float64 `yaml:"rad,omitempty"`
	Thickness    float64 `yaml:"thickness,omitempty"`
	Warning      float64 `yaml:"warning,omitempty"`
	Show         float64 `yaml:"show,omitempty"`
	Grow         float64 `yaml:"grow,omitempty"`
	Anticipation float64 `yaml:"anticipation,omitempty"`
	Leave        float64 `yaml:"leave,omitempty"`
	Rot          float64 `yaml:"rot,omitempty"`
	RPB          float64 `yaml:"rpb,omitempty"`
	Life         float64 `yaml:"life,omitempty"`
	Speed        float64 `yaml:"speed,omitempty"`
	Shake        float64 `yaml:"shake,omitempty"`
	Kick         float64 `yaml:"kick,omitempty"`
	Inner        float64 `yaml:"inner,omitempty"`
	Outer        float64 `yaml:"outer,omitempty"`
	From         float64 `yaml:"from,omitempty"`
	To           float64 `yaml:"to,omitempty"`
	Phase        float64 `yaml:"phase,omitempty"`
	Interval     float64 `yaml:"interval,omitempty"`
	Count        int     `yaml:"count,omitempty"`
	Axis         string  `yaml:"axis,omitempty"`
	Ease         string  `yaml:"ease,omitempty"`

	// Cellular automaton
	Width        int       `yaml:"width,omitempty"`
	Height       int       `yaml:"height,omitempty"`
	Rule         string    `yaml:"rule,omitempty"`
	Populate     int       `yaml:"populate,omitempty"`
	Cells        []YAMLVec `yaml:"cells,omitempty"`
	Period       float64   `yaml:"period,omitempty"`
	FirstWarning *float64  `yaml:"first_warning,omitempty"`
	MaxTicks     int       `yaml:"max_ticks,omitempty"`

	// Smoke
	Amp    float64          `yaml:"amp,omitempty"`
	Freq   float64          `yaml:"freq,omitempty"`
	Seed   int64            `yaml:"seed,omitempty"`
	Events []YAMLSmokeEvent `yaml:"events,omitempty"`
}

// YAMLSmokeEvent is a smoke sub-event, relative to the smoke's activation.
type YAMLSmokeEvent struct {
	At       float64 `yaml:"at"`
	Kind     string  `yaml:"kind"`
	Count    int     `yaml:"count,omitempty"`
	Speed    float64 `yaml:"speed,omitempty"`
	Rad      float64 `yaml:"rad,omitempty"`
	Phase    float64 `yaml:"phase,omitempty"`
	Strength float64 `yaml:"strength,omitempty"`
	PerBeat  float64 `yaml:"per_beat,omitempty"`
	MinSpeed float64 `yaml:"min_speed,omitempty"`
	MaxSpeed float64 `yaml:"max_speed,omitempty"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID       string
	Name     string
	BPM      float64
	Offset   float64
	Track    string
	Length   float64
	Finished bool
	Events   []engine.Event
	Metadata map[string]string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if yl.ID == "" {
		return Level{}, fmt.Errorf("missing id")
	}
	if yl.BPM <= 0 {
		return Level{}, fmt.Errorf("level %q: bpm must be positive, got %v", yl.ID, yl.BPM)
	}
	if yl.Track == "" {
		return Level{}, fmt.Errorf("level %q: missing track", yl.ID)
	}

	level := Level{
		ID:       yl.ID,
		Name:     yl.Name,
		BPM:      yl.BPM,
		Offset:   yl.Offset,
		Track:    yl.Track,
		Length:   yl.Length,
		Finished: yl.Finished,
		Metadata: yl.Metadata,
	}
	if level.Name == "" {
		level.Name = yl.ID
	}

	if yl.Foreground != "" || yl.Background != "" {
		a, err := colorsAction(YAMLColors{FG: yl.Foreground, BG: yl.Background})
		if err != nil {
			return Level{}, fmt.Errorf("level %q: %w", yl.ID, err)
		}
		level.Events = append(level.Events, engine.At(engine.Immediately, a))
	}

	for i, ev := range yl.Setup {
		ev.At = YAMLTime(engine.Immediately)
		events, err := ev.events()
		if err != nil {
			return Level{}, fmt.Errorf("level %q: setup %d: %w", yl.ID, i, err)
		}
		level.Events = append(level.Events, events...)
	}
	for i, ev := range yl.Events {
		events, err := ev.events()
		if err != nil {
			return Level{}, fmt.Errorf("level %q: event %d (at %v): %w", yl.ID, i, float64(ev.At), err)
		}
		level.Events = append(level.Events, events...)
	}

	return level, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

func (e YAMLEvent) events() ([]engine.Event, error) {
	var actions engine.Actions

	if e.Spawn != nil {
		a, err := e.Spawn.action()
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	if e.Colors != nil {
		a, err := colorsAction(*e.Colors)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	if e.Float != nil {
		amp := *e.Float
		actions = append(actions, engine.ActionFunc(func(acc *engine.Accumulator, _ engine.Args) {
			acc.Float(amp)
		}))
	}
	if len(e.Jerk) > 0 {
		j, err := e.Jerk.vec("jerk")
		if err != nil {
			return nil, err
		}
		actions = append(actions, engine.ActionFunc(func(acc *engine.Accumulator, _ engine.Args) {
			acc.Jerk(j)
		}))
	}
	if e.Shake != nil {
		amount := *e.Shake
		actions = append(actions, engine.ActionFunc(func(acc *engine.Accumulator, _ engine.Args) {
			acc.Shake(amount)
		}))
	}
	if len(actions) == 0 {
		return nil, fmt.Errorf("event has no action")
	}

	var a engine.Action = actions
	if len(actions) == 1 {
		a = actions[0]
	}

	at := float64(e.At)
	if e.Repeat > 1 {
		if math.IsInf(at, -1) {
			return nil, fmt.Errorf("repeat needs a numeric time")
		}
		return engine.RepeatPeriodic(a, e.Repeat, at, e.Every), nil
	}
	return []engine.Event{engine.At(at, a)}, nil
}

func colorsAction(c YAMLColors) (engine.Action, error) {
	var fg, bg *core.Color
	if c.FG != "" {
		col, err := core.ParseHex(c.FG)
		if err != nil {
			return nil, fmt.Errorf("fg: %w", err)
		}
		fg = &col
	}
	if c.BG != "" {
		col, err := core.ParseHex(c.BG)
		if err != nil {
			return nil, fmt.Errorf("bg: %w", err)
		}
		bg = &col
	}
	return engine.ActionFunc(func(acc *engine.Accumulator, _ engine.Args) {
		if fg != nil {
			acc.Foreground(*fg)
		}
		if bg != nil {
			acc.Background(*bg)
		}
	}), nil
}

type vecField struct {
	name string
	src  YAMLVec
	dst  *core.Vec2
}

func (s *YAMLSpawn) action() (engine.Action, error) {
	var pos, vel, start, end, target, center, size, delta, jerk core.Vec2
	fields := []vecField{
		{"pos", s.Pos, &pos},
		{"vel", s.Vel, &vel},
		{"start", s.Start, &start},
		{"end", s.End, &end},
		{"target", s.Target, &target},
		{"center", s.Center, &center},
		{"size", s.Size, &size},
		{"delta", s.Delta, &delta},
		{"jerk", s.Jerk, &jerk},
	}
	for _, f := range fields {
		v, err := f.src.vec(f.name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Kind, err)
		}
		*f.dst = v
	}

	var o engine.Obstacle
	switch s.Kind {
	case "pellet":
		o = hazard.NewPellet(pos, vel, s.Rad)
	case "bomb":
		if s.Life <= 0 {
			return nil, fmt.Errorf("bomb: life must be positive")
		}
		o = hazard.NewBomb(start, target, s.Life, s.Count, s.Speed, s.Rad, nil)
	case "grow_laser":
		l := hazard.NewGrowLaser(start, end, s.Thickness, s.Warning, s.Show, jerk)
		if s.Grow > 0 {
			l.Grow = s.Grow
		}
		o = l
	case "slam_laser":
		l := hazard.NewSlamLaser(start, end, s.Thickness, s.Warning, s.Show, s.Anticipation, jerk, s.Shake)
		if s.Leave > 0 {
			l.Leave = s.Leave
		}
		o = l
	case "rect":
		o = hazard.NewRotatableRect(center, size, s.Rot, s.Warning, s.Show, s.Grow)
	case "rotating_rect":
		o = hazard.NewRotatingRect(center, size, s.Rot, s.RPB, s.Warning, s.Show, s.Grow)
	case "arc":
		o = hazard.NewSpinningArc(center, s.Inner, s.Outer, s.From, s.To, s.RPB, s.Warning, s.Show)
	case "smoke":
		sm, err := s.smoke(center)
		if err != nil {
			return nil, err
		}
		o = sm
	case "trail":
		if s.Interval <= 0 {
			return nil, fmt.Errorf("trail: interval must be positive")
		}
		o = hazard.NewPeriodic(s.Count, s.Interval, hazard.Linear(s.Show, s.Warning, s.Grow, start, delta, size, s.Rot))
	case "side_bomb":
		if s.Life <= 0 {
			return nil, fmt.Errorf("side_bomb: life must be positive")
		}
		return hazard.BombSideSpawner{Pellets: s.Count, PelletSpeed: s.Speed, PelletRad: s.Rad, Life: s.Life}, nil
	case "laser":
		ls := hazard.LaserSpawner{Thickness: s.Thickness, Warning: s.Warning, Show: s.Show, Jerk: s.Kick}
		switch s.Axis {
		case "":
			return ls, nil
		case "horizontal":
			return hazard.HorLaserSpawner(ls), nil
		case "vertical":
			return hazard.VertLaserSpawner(ls), nil
		default:
			return nil, fmt.Errorf("laser: unknown axis %q", s.Axis)
		}
	case "pellet_ring":
		return pelletRing(center, s.Count, s.Speed, s.Rad, s.Phase)
	case "life":
		return s.life()
	default:
		return nil, fmt.Errorf("unknown hazard kind %q", s.Kind)
	}

	if s.Ease != "" {
		f, ok := easings[s.Ease]
		if !ok {
			return nil, fmt.Errorf("%s: unknown ease %q", s.Kind, s.Ease)
		}
		o = hazard.NewEase(o, f)
	}
	return hazard.ObstacleSpawner(o), nil
}

// easings maps ease names to time functions. All are increasing and
// unbounded so eased hazards still reach the end of their lifetime.
var easings = map[string]func(float64) float64{
	"linear": func(t float64) float64 { return t },
	"in": func(t float64) float64 {
		if t < 2 {
			return t * t / 4
		}
		return t - 1
	},
	"out": func(t float64) float64 {
		if t < 2 {
			return 2*t - t*t/4
		}
		return t + 1
	},
}

func pelletRing(center core.Vec2, count int, speed, rad, phase float64) (engine.Action, error) {
	if count <= 0 {
		return nil, fmt.Errorf("pellet_ring: count must be positive")
	}
	return engine.ActionFunc(func(acc *engine.Accumulator, _ engine.Args) {
		for i := 0; i < count; i++ {
			dir := core.FromAngle((float64(i)/float64(count) + phase) * 2 * math.Pi)
			acc.Spawn(hazard.NewPellet(center, dir.Scale(speed), rad))
		}
	}), nil
}

func (s *YAMLSpawn) smoke(center core.Vec2) (*hazard.Smoke, error) {
	sm := hazard.NewSmoke()
	sm.Center = center
	if s.Amp > 0 {
		sm.Amp = s.Amp
	}
	if s.Freq > 0 {
		sm.Freq = s.Freq
	}
	if s.Rad > 0 {
		sm.Rad = s.Rad
	}
	if s.Warning > 0 {
		sm.Warning = s.Warning
	}
	if s.Show > 0 {
		sm.Show = s.Show
	}
	if s.Leave > 0 {
		sm.Leave = s.Leave
	}
	if s.Seed != 0 {
		sm.Seed = s.Seed
	}
	sm.Phase = s.Phase

	for i, e := range s.Events {
		kind, ok := hazard.ParseSmokeEventKind(e.Kind)
		if !ok {
			return nil, fmt.Errorf("smoke: event %d: unknown kind %q", i, e.Kind)
		}
		sm.With(hazard.SmokeEvent{
			At:       e.At,
			Kind:     kind,
			Count:    e.Count,
			Speed:    e.Speed,
			Rad:      e.Rad,
			Phase:    e.Phase,
			Strength: e.Strength,
			PerBeat:  e.PerBeat,
			MinSpeed: e.MinSpeed,
			MaxSpeed: e.MaxSpeed,
		})
	}
	return sm, nil
}

func (s *YAMLSpawn) life() (engine.Action, error) {
	w, h := s.Width, s.Height
	if w <= 0 {
		w = 32
	}
	if h <= 0 {
		h = 18
	}
	grid := hazard.NewLifeGrid(w, h)
	if s.Rule != "" {
		rule, err := hazard.ParseLifeRule(s.Rule)
		if err != nil {
			return nil, fmt.Errorf("life: %w", err)
		}
		grid.Rule = rule
	}
	if s.MaxTicks > 0 {
		grid.MaxTicks = s.MaxTicks
	}
	if s.Period > 0 {
		grid.Period = s.Period
	}
	grid.Warning = s.Warning
	if s.FirstWarning != nil {
		grid.FirstWarning = *s.FirstWarning
	}
	for i, c := range s.Cells {
		v, err := c.vec(fmt.Sprintf("cells[%d]", i))
		if err != nil {
			return nil, fmt.Errorf("life: %w", err)
		}
		grid.Set(int(v.X), int(v.Y), true)
	}

	populate := s.Populate
	return engine.ActionFunc(func(acc *engine.Accumulator, _ engine.Args) {
		g := grid.Clone().(*hazard.LifeGrid)
		g.Populate(populate, acc.Rand())
		acc.Spawn(g)
	}), nil
}
