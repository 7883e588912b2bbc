package engine

import (
	"math/rand"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/beatdodge/internal/core"
)

// Default session colors.
var (
	DefaultForeground = core.RGB(1, 0, 0.5)
	DefaultBackground = core.ColorBlack
)

// hudLift is how far above the player the hit counter is drawn.
const hudLift = 40.0

// Session is the live state of one play-through: scheduler queue, obstacles,
// player, camera and colors. It is driven by a single goroutine.
type Session struct {
	cfg SessionConfig
	log   *log.Logger
	rng   *rand.Rand
	shake *rand.Rand // Camera shake only, so rendering never moves spawns

	scheduler Scheduler
	obstacles []*Handle

	player   Player
	hitsLeft int
	camera   Camera
	fg       core.ColorFunc
	bg       core.ColorFunc

	time  float64
	bpm   float64
	speed float64

	started  bool
	aborted  bool
	dashHeld bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRand sets the random source used by spawners.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) {
		if r != nil {
			s.rng = r
		}
	}
}

// NewSession creates an empty session.
func NewSession(cfg SessionConfig, opts ...Option) *Session {
	s := &Session{
		cfg:      cfg,
		log:      log.Default(),
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		shake:    rand.New(rand.NewSource(cfg.Seed)),
		hitsLeft: cfg.HitPoints,
		fg:       core.Constant(DefaultForeground),
		bg:       core.Constant(DefaultBackground),
		bpm:      60,
		speed:    1,
		player: Player{
			Pos:    cfg.World.Mul(cfg.PlayerStart),
			Radius: cfg.PlayerRadius,
			Speed:  cfg.PlayerSpeed,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the session configuration.
func (s *Session) Config() SessionConfig {
	return s.cfg
}

// World returns the playfield size.
func (s *Session) World() core.Vec2 {
	return s.cfg.World
}

// Rand returns the session's random source.
func (s *Session) Rand() *rand.Rand {
	return s.rng
}

// SetTempo sets the beat rate used to convert frame time to beats.
func (s *Session) SetTempo(bpm, speed float64) {
	s.bpm = bpm
	s.speed = speed
}

// Tempo returns the beats per minute and playback speed.
func (s *Session) Tempo() (bpm, speed float64) {
	return s.bpm, s.speed
}

// BeatDelta converts a frame delta in seconds to beats.
func (s *Session) BeatDelta(frameDelta float64) float64 {
	return frameDelta / 60 * s.bpm * s.speed
}

// Schedule adds a choreography callback at beat-time at. Before the first
// Update events are appended and must be sorted with Sort; afterwards they
// are inserted in order and fire on the next drain.
func (s *Session) Schedule(at float64, a Action) {
	s.ScheduleEvents(Event{At: at, Action: a})
}

// ScheduleEvents adds several events, see Schedule.
func (s *Session) ScheduleEvents(events ...Event) {
	if !s.started {
		s.scheduler.AddAll(events...)
		return
	}
	for _, e := range events {
		s.scheduler.Insert(e)
	}
}

// Instantly schedules a setup callback that fires before anything else.
func (s *Session) Instantly(a Action) {
	s.Schedule(Immediately, a)
}

// Sort orders the pending events.
func (s *Session) Sort() {
	s.scheduler.Sort()
}

// Snip drops pending events earlier than beat-time t.
func (s *Session) Snip(t float64) {
	s.scheduler.Snip(t)
}

// Pending returns the number of events not yet fired.
func (s *Session) Pending() int {
	return s.scheduler.Len()
}

// AddObstacle inserts an obstacle directly, outside any frame.
func (s *Session) AddObstacle(o Obstacle) *Handle {
	h := NewHandle(o, s.time)
	s.obstacles = append(s.obstacles, h)
	return h
}

// Obstacles returns the live obstacle handles. Order is not stable across
// frames.
func (s *Session) Obstacles() []*Handle {
	out := make([]*Handle, len(s.obstacles))
	copy(out, s.obstacles)
	return out
}

// Player returns a copy of the player state.
func (s *Session) Player() Player {
	return s.player
}

// SetPlayer replaces the player state.
func (s *Session) SetPlayer(p Player) {
	s.player = p
}

// Camera returns the camera state.
func (s *Session) Camera() Camera {
	return s.camera
}

// HitsLeft returns the remaining hit points.
func (s *Session) HitsLeft() int {
	return s.hitsLeft
}

// Time returns the last polled beat-time.
func (s *Session) Time() float64 {
	return s.time
}

// Aborted reports whether the player left the session.
func (s *Session) Aborted() bool {
	return s.aborted
}

// Abort ends the session from outside the frame loop.
func (s *Session) Abort() {
	s.aborted = true
}

// SetForeground installs a foreground color function.
func (s *Session) SetForeground(f core.ColorFunc) {
	if f != nil {
		s.fg = f
	}
}

// SetBackground installs a background color function.
func (s *Session) SetBackground(f core.ColorFunc) {
	if f != nil {
		s.bg = f
	}
}

// Foreground returns the foreground color at the current time.
func (s *Session) Foreground() core.Color {
	return s.fg(s.time)
}

// Background returns the background color at the current time.
func (s *Session) Background() core.Color {
	return s.bg(s.time)
}

// State returns a summary for the platform.
func (s *Session) State() core.GameState {
	return core.GameState{
		HitsLeft: s.hitsLeft,
		MaxHits:  s.cfg.HitPoints,
		Beat:     s.time,
		Finished: s.aborted,
		Aborted:  s.aborted,
	}
}

// Update runs one frame at the polled beat-time with the wall-clock frame
// delta in seconds.
func (s *Session) Update(beat, frameDelta float64, in core.InputFrame) core.StepResult {
	if s.aborted || in.Has(core.ActionBack) {
		s.aborted = true
		return core.StepResult{State: s.State()}
	}
	s.started = true
	s.time = beat

	acc := NewAccumulator(beat, s.cfg.World, s.rng)
	s.scheduler.Drain(beat, acc)

	s.movePlayer(frameDelta, in)
	s.camera.Decay(s.cfg.JerkDecay, s.cfg.ShakeDecay)

	acc.SetTime(s.time)
	beatDelta := s.BeatDelta(frameDelta)
	for _, h := range s.obstacles {
		h.Obstacle.Update(acc, frameDelta, beatDelta)
	}

	hit := s.collide()
	s.sweep(acc)
	s.merge(acc)

	return core.StepResult{State: s.State(), Hit: hit}
}

func (s *Session) movePlayer(frameDelta float64, in core.InputFrame) {
	p := &s.player
	if p.Dash > 0 {
		p.Speed = s.cfg.DashSpeed
		p.Dash -= frameDelta
	} else {
		p.Speed = s.cfg.PlayerSpeed
	}
	if p.Invulnerable > 0 {
		p.Invulnerable -= frameDelta
	}

	p.Pos = p.Pos.Add(in.Direction().Scale(p.Speed * frameDelta))
	if s.cfg.ClampPlayer {
		p.Pos.X = core.ClampF(p.Pos.X, 0, s.cfg.World.X)
		p.Pos.Y = core.ClampF(p.Pos.Y, 0, s.cfg.World.Y)
	}

	dash := in.Has(core.ActionDash)
	if dash && !s.dashHeld && p.Dash <= 0 {
		p.Dash = s.cfg.DashSeconds
	}
	s.dashHeld = dash
}

// collide checks every obstacle against the player and applies at most one
// hit per frame.
func (s *Session) collide() bool {
	if !s.player.Vulnerable() {
		return false
	}
	hit := false
	for _, h := range s.obstacles {
		if h.Obstacle.Collides(s.player) {
			hit = true
			break
		}
	}
	if !hit {
		return false
	}

	s.player.Invulnerable = s.cfg.InvulnerableSeconds
	if s.cfg.ConsumeHits && s.hitsLeft > 0 {
		s.hitsLeft--
	}
	s.log.Debug("player hit", "hits_left", s.hitsLeft, "beat", s.time)
	return true
}

// sweep kills and removes dead obstacles with swap-and-pop.
func (s *Session) sweep(acc *Accumulator) {
	i := 0
	for i < len(s.obstacles) {
		h := s.obstacles[i]
		if !h.dead() {
			i++
			continue
		}
		if k, ok := h.Obstacle.(Killer); ok {
			k.Kill(acc)
		}
		last := len(s.obstacles) - 1
		s.obstacles[i] = s.obstacles[last]
		s.obstacles[last] = nil
		s.obstacles = s.obstacles[:last]
	}
}

func (s *Session) merge(acc *Accumulator) {
	s.obstacles = append(s.obstacles, acc.spawned...)
	s.camera.Jerk = s.camera.Jerk.Add(acc.jerk)
	s.camera.Shake += acc.shake
	if acc.fg != nil {
		s.fg = core.Constant(*acc.fg)
	}
	if acc.bg != nil {
		s.bg = core.Constant(*acc.bg)
	}
	if acc.float != nil {
		s.camera.Float = *acc.float
	}
	for _, fn := range acc.deferred {
		fn(s)
	}
}

// Draw renders the frame: background, obstacles, player and hit counter.
func (s *Session) Draw(dst core.Canvas) {
	offset := s.camera.Offset(s.time, s.shake)
	dst.Clear(s.bg(s.time))

	fg := s.fg(s.time)
	for _, h := range s.obstacles {
		h.Obstacle.Draw(dst, fg, offset)
	}

	p := s.player
	pos := p.Pos.Add(offset)
	dst.Circle(pos, p.Radius, p.Color())
	dst.Text(pos.Add(core.V(-p.Radius, -p.Radius*2-hudLift)), strconv.Itoa(s.hitsLeft), core.ColorWhite)
}

// DrawCollisionOverlay tints every screen cell where a player-sized sample
// would collide with some obstacle, sampling every step-th cell. Slow; meant
// for debugging hazards.
func (s *Session) DrawCollisionOverlay(dst *core.Screen, step int) {
	if step < 1 {
		step = 1
	}
	tint := core.ColorRed.WithAlpha(0.5)
	sample := s.player
	for y := 0; y < dst.Height(); y += step {
		for x := 0; x < dst.Width(); x += step {
			sample.Pos = dst.CellCenter(x, y)
			for _, h := range s.obstacles {
				if h.Obstacle.Collides(sample) {
					dst.Shade(sample.Pos, tint)
					break
				}
			}
		}
	}
}
