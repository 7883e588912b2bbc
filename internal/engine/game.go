package engine

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/beatdodge/internal/core"
)

var (
	// ErrTrackLoad wraps failures to load or start a level's track.
	ErrTrackLoad = errors.New("engine: track load failed")

	// ErrNoLevel is returned when a Game has no loaded level.
	ErrNoLevel = errors.New("engine: no level loaded")
)

// RunResult summarises a finished run.
type RunResult struct {
	HitsLeft    int
	MaxHits     int
	Cleared     bool
	Aborted     bool
	ReachedBeat float64
	Speed       float64
}

// Game couples a Music clock with the current Session.
type Game struct {
	music Music
	cfg   SessionConfig
	opts  []Option
	log   *log.Logger

	session  *Session
	info     LevelInfo
	start    float64
	speed    float64
	finished bool
}

// NewGame creates a game playing through music. Options are applied to
// every session it loads.
func NewGame(music Music, cfg SessionConfig, opts ...Option) *Game {
	return &Game{
		music: music,
		cfg:   cfg,
		opts:  opts,
		log:   NewSession(cfg, opts...).log,
	}
}

// Load builds a session from loader and starts its track at beat start,
// played at speed. On failure the previous state is kept stopped and the
// error is returned.
func (g *Game) Load(loader Loader, start, speed float64) error {
	if speed <= 0 {
		speed = 1
	}
	g.Stop()

	s := NewSession(g.cfg, g.opts...)
	info := loader(s)
	s.SetTempo(info.BPM, speed)
	s.Sort()

	if err := g.music.Load(info.Track); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrTrackLoad, info.Track, err)
	}
	if ls, ok := g.music.(LengthSetter); ok {
		ls.SetLength(info.Length)
	}
	if err := g.music.Replace(info.BPM, info.Offset); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrTrackLoad, info.Track, err)
	}
	g.music.SetSpeed(speed)
	s.Snip(start + info.Offset)
	if err := g.music.Seek(start); err != nil {
		g.music.Stop()
		return fmt.Errorf("engine: seek to beat %.2f: %w", start, err)
	}

	g.session = s
	g.info = info
	g.start = start
	g.speed = speed
	g.finished = false
	g.log.Info("level loaded",
		"track", info.Track,
		"bpm", info.BPM,
		"start", start,
		"speed", speed,
		"events", s.Pending(),
	)
	return nil
}

// Frame advances the loaded session by one frame. The run finishes when the
// player aborts or the track stops.
func (g *Game) Frame(frameDelta float64, in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{State: core.GameState{Finished: true}}
	}
	if g.finished {
		return core.StepResult{State: g.state()}
	}

	beat, ok := g.music.CurrentBeat()
	if !ok || !g.music.IsPlaying() {
		g.finished = true
		g.log.Info("track finished", "hits_left", g.session.HitsLeft())
		return core.StepResult{State: g.state()}
	}

	res := g.session.Update(beat, frameDelta, in)
	if res.State.Aborted {
		g.music.Stop()
		g.finished = true
		g.log.Info("level aborted", "beat", beat)
	}
	res.State = g.state()
	return res
}

func (g *Game) state() core.GameState {
	st := g.session.State()
	st.Length = g.info.Length
	st.Finished = g.finished
	st.Cleared = g.finished && !st.Aborted && st.HitsLeft > 0
	return st
}

// Draw renders the loaded session.
func (g *Game) Draw(dst core.Canvas) {
	if g.session != nil {
		g.session.Draw(dst)
	}
}

// Session returns the current session, or nil.
func (g *Game) Session() *Session {
	return g.session
}

// Music returns the clock.
func (g *Game) Music() Music {
	return g.music
}

// Info returns the loaded level's track information.
func (g *Game) Info() LevelInfo {
	return g.info
}

// Finished reports whether the current run is over.
func (g *Game) Finished() bool {
	return g.session == nil || g.finished
}

// Result summarises the current run.
func (g *Game) Result() (RunResult, error) {
	if g.session == nil {
		return RunResult{}, ErrNoLevel
	}
	st := g.state()
	return RunResult{
		HitsLeft:    st.HitsLeft,
		MaxHits:     st.MaxHits,
		Cleared:     st.Cleared,
		Aborted:     st.Aborted,
		ReachedBeat: st.Beat,
		Speed:       g.speed,
	}, nil
}

// Stop halts playback and marks the run finished.
func (g *Game) Stop() {
	g.music.Stop()
	if g.session != nil {
		g.finished = true
	}
}
