package core

// RuntimeConfig contains configuration passed to a session at start.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second (default 60)
	Seed     int64 // RNG seed for random placement
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// FrameDelta returns the real seconds per frame.
func (c RuntimeConfig) FrameDelta() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1 / float64(c.TickRate)
}

// GameState represents the current state of a session.
type GameState struct {
	HitsLeft int     // Remaining hits before game over
	MaxHits  int     // Hits the player started with
	Beat     float64 // Current beat position
	Length   float64 // Level length in beats, 0 when unknown
	Finished bool    // Session ended for any reason
	Aborted  bool    // Player left early
	Cleared  bool    // Level reached its end with hits left
}

// GameOver reports whether the player ran out of hits.
func (s GameState) GameOver() bool {
	return s.HitsLeft <= 0
}

// StepResult is returned after each simulation tick.
type StepResult struct {
	State GameState
	Hit   bool // Player took a hit this tick
}
