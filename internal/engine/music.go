package engine

// Music is the beat clock a Game polls each frame.
type Music interface {
	// Load prepares a track without playing it.
	Load(track string) error

	// Replace stops whatever plays and starts the loaded track with the
	// given tempo and beat offset.
	Replace(bpm, offset float64) error

	// Seek moves playback to the given beat of the track.
	Seek(beats float64) error

	SetSpeed(speed float64)
	Speed() float64
	IsPlaying() bool

	// CurrentBeat returns the beat position, or false when nothing plays.
	CurrentBeat() (float64, bool)

	Stop()
}

// LengthSetter is implemented by clocks with no audio to tell them apart
// from a finished track. Game passes the level length in beats.
type LengthSetter interface {
	SetLength(beats float64)
}

// LevelInfo is what a level loader reports about its track.
type LevelInfo struct {
	// Offset is added to the track position, in beats. Choreography times
	// are relative to the shifted clock.
	Offset float64
	BPM    float64
	Track  string

	// Length is the level duration in beats, 0 when the track decides.
	Length float64
}

// Loader populates a fresh session's schedule and describes its track.
type Loader func(s *Session) LevelInfo
