// Package audio provides the beat clocks a game runs on: Music plays a
// track through the speaker, Metronome counts beats silently.
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/beatdodge/internal/engine"
)

var (
	// ErrNoTrack is returned when playback is requested before Load.
	ErrNoTrack = errors.New("audio: no track loaded")
	// ErrSeekPastEnd is returned when seeking beyond the end of the track.
	ErrSeekPastEnd = errors.New("audio: seek past end of track")
	// ErrUnsupportedFormat is returned for files other than .wav and .mp3.
	ErrUnsupportedFormat = errors.New("audio: unsupported format")
)

// Options configures speaker output.
type Options struct {
	SampleRate int
	Buffer     time.Duration
	Quality    int // Resampler quality, 1 to 64

	// CompensateLatency subtracts one speaker buffer from the reported
	// position, since the decoder runs that far ahead of what is heard.
	CompensateLatency bool
}

// DefaultOptions returns 44.1kHz output with a 100ms buffer.
func DefaultOptions() Options {
	return Options{
		SampleRate:        44100,
		Buffer:            100 * time.Millisecond,
		Quality:           4,
		CompensateLatency: true,
	}
}

var (
	speakerOnce sync.Once
	speakerErr  error
)

// initSpeaker opens the output device once per process.
func initSpeaker(opts Options) error {
	speakerOnce.Do(func() {
		sr := beep.SampleRate(opts.SampleRate)
		speakerErr = speaker.Init(sr, sr.N(opts.Buffer))
	})
	return speakerErr
}

// Music plays audio files and reports the beat position of playback.
type Music struct {
	mu     sync.Mutex
	opts   Options
	logger *log.Logger

	track     string
	stream    beep.StreamSeekCloser
	format    beep.Format
	resampler *beep.Resampler
	ctrl      *beep.Ctrl

	bpm     float64
	offset  float64
	speed   float64
	started bool

	// playing is flipped by the speaker goroutine when the track ends.
	playing atomic.Bool
}

var _ engine.Music = (*Music)(nil)

// NewMusic creates a player. A nil logger uses the default logger.
func NewMusic(opts Options, logger *log.Logger) *Music {
	if logger == nil {
		logger = log.Default()
	}
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultOptions().SampleRate
	}
	if opts.Buffer <= 0 {
		opts.Buffer = DefaultOptions().Buffer
	}
	if opts.Quality <= 0 {
		opts.Quality = DefaultOptions().Quality
	}
	return &Music{opts: opts, logger: logger, bpm: 60, speed: 1}
}

func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".wav" && ext != ".mp3" {
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	if ext == ".wav" {
		stream, format, err = wav.Decode(f)
	} else {
		stream, format, err = mp3.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("audio: decode %s: %w", path, err)
	}
	return stream, format, nil
}

// Load decodes a track without playing it, replacing any track that was
// loaded but not started.
func (m *Music) Load(track string) error {
	stream, format, err := decode(track)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.closeLocked()
	m.track = track
	m.stream = stream
	m.format = format
	m.logger.Debug("track loaded", "track", track, "sample_rate", int(format.SampleRate), "seconds", m.durationLocked().Seconds())
	return nil
}

// Track returns the loaded track path.
func (m *Music) Track() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.track
}

// Duration returns the length of the loaded track.
func (m *Music) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.durationLocked()
}

func (m *Music) durationLocked() time.Duration {
	if m.stream == nil {
		return 0
	}
	return m.format.SampleRate.D(m.stream.Len())
}

// Length returns the loaded track's length in beats at the current tempo.
func (m *Music) Length() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.durationLocked().Seconds() * m.bpm / 60
}

func (m *Music) ratio() float64 {
	return float64(m.format.SampleRate) / float64(m.opts.SampleRate) * m.speed
}

// Replace stops whatever plays and starts the loaded track from its
// current position.
func (m *Music) Replace(bpm, offset float64) error {
	if bpm <= 0 {
		return fmt.Errorf("audio: invalid bpm %v", bpm)
	}
	if m.Track() == "" {
		return ErrNoTrack
	}
	if err := initSpeaker(m.opts); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stream == nil {
		return ErrNoTrack
	}
	speaker.Clear()

	m.bpm = bpm
	m.offset = offset
	m.resampler = beep.ResampleRatio(m.opts.Quality, m.ratio(), m.stream)
	m.ctrl = &beep.Ctrl{Streamer: m.resampler}
	m.playing.Store(true)
	m.started = true

	speaker.Play(beep.Seq(m.ctrl, beep.Callback(func() {
		m.playing.Store(false)
	})))
	m.logger.Info("playback started", "track", m.track, "bpm", bpm, "offset", offset, "speed", m.speed)
	return nil
}

// Seek moves the track to the given beat.
func (m *Music) Seek(beats float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stream == nil {
		return ErrNoTrack
	}
	pos := m.format.SampleRate.N(time.Duration(beats * 60 / m.bpm * float64(time.Second)))
	if pos < 0 {
		pos = 0
	}
	if pos > m.stream.Len() {
		return fmt.Errorf("%w: beat %.2f", ErrSeekPastEnd, beats)
	}

	speaker.Lock()
	err := m.stream.Seek(pos)
	speaker.Unlock()
	return err
}

// SetSpeed changes the playback rate; pitch follows.
func (m *Music) SetSpeed(speed float64) {
	if speed <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.speed = speed
	if m.resampler != nil {
		speaker.Lock()
		m.resampler.SetRatio(m.ratio())
		speaker.Unlock()
	}
}

// Speed returns the playback rate.
func (m *Music) Speed() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.speed
}

// IsPlaying reports whether a started track has not yet ended.
func (m *Music) IsPlaying() bool {
	return m.playing.Load()
}

// CurrentBeat returns the heard beat position, including the offset.
func (m *Music) CurrentBeat() (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stream == nil || !m.started {
		return 0, false
	}
	speaker.Lock()
	pos := m.stream.Position()
	speaker.Unlock()

	secs := m.format.SampleRate.D(pos).Seconds()
	if m.CompensatesLatency() {
		secs -= m.opts.Buffer.Seconds()
	}
	return secs*m.bpm/60 + m.offset, true
}

// CompensatesLatency reports whether the speaker buffer is subtracted from
// the position.
func (m *Music) CompensatesLatency() bool {
	return m.opts.CompensateLatency
}

// Stop silences playback. The loaded track stays loaded.
func (m *Music) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

func (m *Music) stopLocked() {
	if m.ctrl != nil {
		speaker.Lock()
		m.ctrl.Paused = true
		speaker.Unlock()
		speaker.Clear()
	}
	m.ctrl = nil
	m.resampler = nil
	m.started = false
	m.playing.Store(false)
}

func (m *Music) closeLocked() {
	m.stopLocked()
	if m.stream != nil {
		if err := m.stream.Close(); err != nil {
			m.logger.Warn("cannot close track", "track", m.track, "err", err)
		}
	}
	m.stream = nil
	m.track = ""
}

// Close stops playback and releases the loaded track.
func (m *Music) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
	return nil
}
