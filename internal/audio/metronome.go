package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/vovakirdan/beatdodge/internal/engine"
)

// Metronome is a silent beat clock driven by wall time. It stands in for
// Music when there is no audio device, such as over SSH or with --mute.
type Metronome struct {
	mu  sync.Mutex
	now func() time.Time

	track   string
	bpm     float64
	offset  float64
	speed   float64
	length  float64 // Track beats; 0 runs forever
	base    float64 // Track beat at start
	start   time.Time
	playing bool
}

var (
	_ engine.Music        = (*Metronome)(nil)
	_ engine.LengthSetter = (*Metronome)(nil)
)

// NewMetronome creates a metronome reading time from now. A nil now uses
// time.Now.
func NewMetronome(now func() time.Time) *Metronome {
	if now == nil {
		now = time.Now
	}
	return &Metronome{now: now, bpm: 60, speed: 1}
}

// Load records the track name. Nothing is read.
func (m *Metronome) Load(track string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.track = track
	m.base = 0
	return nil
}

// Track returns the recorded track name.
func (m *Metronome) Track() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.track
}

// SetLength bounds playback to the given number of track beats.
func (m *Metronome) SetLength(beats float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.length = beats
}

// Replace starts counting from the current position.
func (m *Metronome) Replace(bpm, offset float64) error {
	if bpm <= 0 {
		return fmt.Errorf("audio: invalid bpm %v", bpm)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.bpm = bpm
	m.offset = offset
	m.start = m.now()
	m.playing = true
	return nil
}

func (m *Metronome) positionLocked() float64 {
	if !m.playing {
		return m.base
	}
	return m.base + m.now().Sub(m.start).Seconds()*m.bpm/60*m.speed
}

// Seek moves to the given track beat.
func (m *Metronome) Seek(beats float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.length > 0 && beats > m.length {
		return fmt.Errorf("%w: beat %.2f", ErrSeekPastEnd, beats)
	}
	m.base = beats
	m.start = m.now()
	return nil
}

// SetSpeed changes the tempo multiplier without jumping.
func (m *Metronome) SetSpeed(speed float64) {
	if speed <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.base = m.positionLocked()
	m.start = m.now()
	m.speed = speed
}

// Speed returns the tempo multiplier.
func (m *Metronome) Speed() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.speed
}

func (m *Metronome) expiredLocked() bool {
	return m.length > 0 && m.positionLocked() >= m.length
}

// IsPlaying reports whether the metronome runs and has not passed its length.
func (m *Metronome) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.playing && m.expiredLocked() {
		m.base = m.length
		m.playing = false
	}
	return m.playing
}

// CurrentBeat returns the beat position including the offset.
func (m *Metronome) CurrentBeat() (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.playing {
		return 0, false
	}
	return m.positionLocked() + m.offset, true
}

// Stop halts counting.
func (m *Metronome) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.base = m.positionLocked()
	m.playing = false
}
